package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
	"github.com/onewave/qrcheckin-backend/pkg/phonekey"
)

// SyncResult summarizes one roster sync run.
type SyncResult struct {
	Total   int `json:"total"`
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// SyncService reconciles the participant store from the roster the Discord
// bot mirrors into participants_discord.
type SyncService struct {
	discord      DiscordRoster
	participants ParticipantStore
	clock        Clock
	logger       *logrus.Logger
}

// NewSyncService creates a new roster sync service
func NewSyncService(discord DiscordRoster, participants ParticipantStore, clock Clock, logger *logrus.Logger) *SyncService {
	return &SyncService{
		discord:      discord,
		participants: participants,
		clock:        clock,
		logger:       logger,
	}
}

// SyncDiscord upserts every usable Discord roster row into the participant
// store. CANCELED members and members without a normalizable phone number
// are skipped. Existing records keep their document but have their profile
// fields overwritten and their check-in flag cleared, matching a fresh
// import; new records are created with a creation timestamp.
func (s *SyncService) SyncDiscord(ctx context.Context) (*SyncResult, error) {
	members, err := s.discord.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("discord roster listing failed: %w", err)
	}

	now := s.clock.Now()
	result := &SyncResult{Total: len(members)}

	for _, member := range members {
		if member.Status == models.StatusCanceled {
			result.Skipped++
			continue
		}

		key, err := phonekey.Normalize(member.Phone)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"member": member.Name,
				"reason": err.Error(),
			}).Warn("Skipping discord member without usable phone number")
			result.Skipped++
			continue
		}

		teamNumber := member.TeamNumber
		if teamNumber == 0 {
			teamNumber = 1
		}
		status := member.Status
		if status == "" {
			status = models.StatusApproved
		}

		_, err = s.participants.Get(ctx, key)
		switch {
		case err == nil:
			fields := map[string]interface{}{
				"name":              member.Name,
				"email":             member.Email,
				"phone":             member.Phone,
				"position":          member.Position,
				"school":            member.School,
				"teamNumber":        teamNumber,
				"status":            status,
				"memo":              member.Memo,
				"checked_in_status": false,
				"updatedAt":         now,
			}
			if err := s.participants.Apply(ctx, key, fields); err != nil {
				return result, fmt.Errorf("failed to sync %s: %w", key, err)
			}
		case errors.Is(err, database.ErrNotFound):
			rec := &models.ParticipantRecord{
				PhoneKey:   key,
				Name:       member.Name,
				Email:      member.Email,
				Phone:      member.Phone,
				Position:   member.Position,
				School:     member.School,
				TeamNumber: teamNumber,
				Status:     status,
				Memo:       member.Memo,
				CheckedIn:  false,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.participants.Save(ctx, key, rec); err != nil {
				return result, fmt.Errorf("failed to create %s: %w", key, err)
			}
		default:
			return result, fmt.Errorf("failed to look up %s: %w", key, err)
		}

		result.Synced++
	}

	s.logger.WithFields(logrus.Fields{
		"total":   result.Total,
		"synced":  result.Synced,
		"skipped": result.Skipped,
	}).Info("Discord roster sync complete")

	return result, nil
}
