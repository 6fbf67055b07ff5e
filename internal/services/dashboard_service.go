package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
)

// DashboardStats summarizes today's check-in progress.
type DashboardStats struct {
	EventName              string `json:"eventName"`
	EventType              string `json:"eventType"`
	TotalParticipants      int    `json:"totalParticipants"`
	TodayCheckInCount      int    `json:"todayCheckInCount"`
	TodayCheckInPercentage int    `json:"todayCheckInPercentage"`
}

// CheckedInView is one checked-in row of the real-time view.
type CheckedInView struct {
	PhoneKey    string    `json:"phoneKey"`
	Phone       string    `json:"phoneNumber"`
	Name        string    `json:"name"`
	Part        string    `json:"part"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

// PendingView is one not-yet-checked-in row of the real-time view.
type PendingView struct {
	PhoneKey string `json:"phoneKey"`
	Phone    string `json:"phoneNumber"`
	Name     string `json:"name"`
	Part     string `json:"part"`
}

// RealtimeStats carries the counters of the real-time view.
type RealtimeStats struct {
	EventName      string `json:"eventName"`
	EventType      string `json:"eventType"`
	CheckedInCount int    `json:"checkedInCount"`
	TotalCount     int    `json:"totalCount"`
	CheckInRate    int    `json:"checkInRate"`
}

// RealtimeCheckin is the full payload of the real-time view.
type RealtimeCheckin struct {
	Event        *models.Event   `json:"event"`
	Stats        RealtimeStats   `json:"stats"`
	CheckedIn    []CheckedInView `json:"checkedIn"`
	NotCheckedIn []PendingView   `json:"notCheckedIn"`
}

// DashboardService aggregates today's event document and check-in ledger
// for the admin dashboard and real-time views.
type DashboardService struct {
	events EventStore
	ledger CheckinLedger
	clock  Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(events EventStore, ledger CheckinLedger, clock Clock) *DashboardService {
	return &DashboardService{
		events: events,
		ledger: ledger,
		clock:  clock,
	}
}

// Stats returns today's aggregate counters. A day without an event yields
// zero-valued stats rather than an error so the dashboard can render idle.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	today := DayString(s.clock.Now())

	event, err := s.events.Get(ctx, today)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return &DashboardStats{}, nil
		}
		return nil, fmt.Errorf("event lookup failed: %w", err)
	}

	entries, err := s.ledger.List(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("ledger listing failed: %w", err)
	}

	total := len(event.Participants)
	checkedIn := len(entries)

	return &DashboardStats{
		EventName:              event.EventName,
		EventType:              event.EventType,
		TotalParticipants:      total,
		TodayCheckInCount:      checkedIn,
		TodayCheckInPercentage: percentage(checkedIn, total),
	}, nil
}

// Realtime returns the live checked-in / pending split for today's event.
// Fails with ErrNotFound when no event is scheduled today.
func (s *DashboardService) Realtime(ctx context.Context) (*RealtimeCheckin, error) {
	today := DayString(s.clock.Now())

	event, err := s.events.Get(ctx, today)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("event lookup failed: %w", err)
	}

	entries, err := s.ledger.List(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("ledger listing failed: %w", err)
	}

	checkedIn := make([]CheckedInView, 0, len(entries))
	checkedInKeys := make(map[string]bool, len(entries))
	for _, entry := range entries {
		checkedIn = append(checkedIn, CheckedInView{
			PhoneKey:    entry.PhoneKey,
			Phone:       entry.Phone,
			Name:        entry.Name,
			Part:        entry.Part,
			CheckedInAt: entry.CheckedInAt,
		})
		checkedInKeys[entry.PhoneKey] = true
	}

	notCheckedIn := make([]PendingView, 0)
	for _, key := range event.Participants {
		if checkedInKeys[key] {
			continue
		}
		profile, err := s.events.GetRosterEntry(ctx, key)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				// Roster gaps are tolerated; the key still counts
				// toward the total.
				continue
			}
			return nil, fmt.Errorf("roster lookup failed: %w", err)
		}
		notCheckedIn = append(notCheckedIn, PendingView{
			PhoneKey: profile.PhoneKey,
			Phone:    profile.Phone,
			Name:     profile.Name,
			Part:     profile.Part,
		})
	}

	total := len(event.Participants)

	return &RealtimeCheckin{
		Event: event,
		Stats: RealtimeStats{
			EventName:      event.EventName,
			EventType:      event.EventType,
			CheckedInCount: len(checkedIn),
			TotalCount:     total,
			CheckInRate:    percentage(len(checkedIn), total),
		},
		CheckedIn:    checkedIn,
		NotCheckedIn: notCheckedIn,
	}, nil
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
