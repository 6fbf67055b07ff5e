package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
)

// CheckinResult is the outcome of a successful check-in transition.
type CheckinResult struct {
	Success  bool   `json:"success"`
	PhoneKey string `json:"phoneKey"`
	Name     string `json:"name"`
	IsStaff  bool   `json:"isStaff"`
}

// CheckinService performs the kiosk check-in transition. Per phone-key the
// state machine has two states, NOT_CHECKED_IN and CHECKED_IN, and only the
// forward transition exists; undo goes through the admin edit path.
type CheckinService struct {
	participants ParticipantStore
	staff        StaffStore
	ledger       CheckinLedger
	committer    CheckinCommitter
	clock        Clock
	logger       *logrus.Logger
}

// NewCheckinService creates a new check-in service
func NewCheckinService(
	participants ParticipantStore,
	staff StaffStore,
	ledger CheckinLedger,
	committer CheckinCommitter,
	clock Clock,
	logger *logrus.Logger,
) *CheckinService {
	return &CheckinService{
		participants: participants,
		staff:        staff,
		ledger:       ledger,
		committer:    committer,
		clock:        clock,
		logger:       logger,
	}
}

// CheckIn marks the owner of phoneKey as checked in and records today's
// ledger entry. Staff records are tried before regular participants.
// Returns ErrValidation on a missing key, ErrNotFound when no store holds
// the key, ErrAlreadyCheckedIn when the transition already happened.
func (s *CheckinService) CheckIn(ctx context.Context, phoneKey string) (*CheckinResult, error) {
	if phoneKey == "" {
		return nil, fmt.Errorf("%w: phoneKey is required", ErrValidation)
	}

	now := s.clock.Now()
	today := DayString(now)

	// The ledger entry is the fast signal for "checked in today".
	if _, err := s.ledger.Get(ctx, today, phoneKey); err == nil {
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("ledger lookup failed: %w", err)
	}

	owner, err := findOwner(ctx, s.participants, s.staff, phoneKey, true)
	if err != nil {
		return nil, err
	}
	if owner.CheckedIn() {
		return nil, ErrAlreadyCheckedIn
	}

	entry := &models.DailyCheckinEntry{
		PhoneKey:    phoneKey,
		Name:        owner.Name(),
		Phone:       owner.Phone(),
		Part:        owner.Part(),
		TeamNumber:  owner.TeamNumber(),
		IsStaff:     owner.IsStaff(),
		CheckedInAt: now,
	}

	if err := s.committer.CommitCheckin(ctx, owner.IsStaff(), phoneKey, today, entry, now); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, ErrAlreadyCheckedIn
		}
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("check-in commit failed: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"phone_key": phoneKey,
		"name":      owner.Name(),
		"is_staff":  owner.IsStaff(),
		"day":       today,
	}).Info("Check-in recorded")

	return &CheckinResult{
		Success:  true,
		PhoneKey: phoneKey,
		Name:     owner.Name(),
		IsStaff:  owner.IsStaff(),
	}, nil
}
