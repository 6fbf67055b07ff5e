package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/onewave/qrcheckin-backend/internal/models"
	"github.com/onewave/qrcheckin-backend/pkg/phonekey"
)

// SearchResult is one kiosk search candidate.
type SearchResult struct {
	PhoneKey   string `json:"phoneKey"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone_number"`
	CheckedIn  bool   `json:"checked_in_status"`
	TeamNumber int    `json:"team_number"`
	Status     string `json:"status"`
}

// SearchService finds check-in candidates by the last four digits of their
// phone number. Both stores are scanned in full; fine at event scale
// (hundreds of records), not designed for more.
type SearchService struct {
	participants ParticipantStore
	staff        StaffStore
}

// NewSearchService creates a new search service
func NewSearchService(participants ParticipantStore, staff StaffStore) *SearchService {
	return &SearchService{
		participants: participants,
		staff:        staff,
	}
}

// Search returns every participant and staff member whose phone number ends
// with the given 4-digit suffix. Fails with ErrValidation before touching
// the store when the suffix is not exactly 4 digits, and with ErrNotFound
// when nothing matches.
func (s *SearchService) Search(ctx context.Context, suffix string) ([]SearchResult, error) {
	if !phonekey.IsSuffix(suffix) {
		return nil, fmt.Errorf("%w: phoneLast4 must be exactly 4 digits", ErrValidation)
	}

	var results []SearchResult

	participants, err := s.participants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("participant scan failed: %w", err)
	}
	for _, p := range participants {
		if phonekey.LastFour(p.Phone) != suffix {
			continue
		}
		status := p.Status
		if status == "" {
			status = models.StatusRejected
		}
		results = append(results, SearchResult{
			PhoneKey:   p.PhoneKey,
			Email:      p.Email,
			Name:       p.Name,
			Phone:      p.Phone,
			CheckedIn:  p.CheckedIn,
			TeamNumber: p.TeamNumber,
			Status:     status,
		})
	}

	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("staff scan failed: %w", err)
	}
	for _, m := range staff {
		if phonekey.LastFour(m.Phone) != suffix {
			continue
		}
		status := m.Status
		if status == "" {
			status = models.StatusApproved
		}
		results = append(results, SearchResult{
			PhoneKey:   m.PhoneKey,
			Email:      m.Email,
			Name:       m.Name,
			Phone:      m.Phone,
			CheckedIn:  m.CheckedIn,
			TeamNumber: models.StaffTeamNumber,
			Status:     status,
		})
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	// Stable order for the kiosk UI and for tests; the underlying scan
	// order is unspecified.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].PhoneKey < results[j].PhoneKey
	})

	return results, nil
}
