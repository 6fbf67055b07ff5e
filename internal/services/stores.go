package services

import (
	"context"
	"time"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

// Store interfaces implemented by the Firestore repositories in
// internal/database. Services depend on these so tests can swap in
// in-memory fakes; there is no emulator-free way to mock Firestore itself.

// ParticipantStore accesses regular attendee records keyed by phone-key.
type ParticipantStore interface {
	Get(ctx context.Context, key string) (*models.ParticipantRecord, error)
	List(ctx context.Context) ([]*models.ParticipantRecord, error)
	Apply(ctx context.Context, key string, fields map[string]interface{}) error
	Save(ctx context.Context, key string, rec *models.ParticipantRecord) error
}

// StaffStore accesses operations staff records keyed by phone-key.
type StaffStore interface {
	Get(ctx context.Context, key string) (*models.StaffRecord, error)
	List(ctx context.Context) ([]*models.StaffRecord, error)
	Apply(ctx context.Context, key string, fields map[string]interface{}) error
}

// CheckinLedger accesses the per-day check-in ledger.
type CheckinLedger interface {
	Get(ctx context.Context, day, key string) (*models.DailyCheckinEntry, error)
	List(ctx context.Context, day string) ([]*models.DailyCheckinEntry, error)
	Put(ctx context.Context, day, key string, entry *models.DailyCheckinEntry) error
	Apply(ctx context.Context, day, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, day, key string) error
}

// EventStore accesses the per-day event documents and roster profiles.
type EventStore interface {
	Get(ctx context.Context, day string) (*models.Event, error)
	GetRosterEntry(ctx context.Context, key string) (*models.RosterEntry, error)
}

// DiscordRoster reads the roster mirrored from Discord.
type DiscordRoster interface {
	List(ctx context.Context) ([]*models.DiscordMember, error)
}

// CheckinCommitter applies the check-in transition (record flag flip plus
// ledger entry) as one operation. The Firestore implementation wraps both
// writes in a transaction; the contract for other backends is best effort.
type CheckinCommitter interface {
	CommitCheckin(ctx context.Context, isStaff bool, key, day string, entry *models.DailyCheckinEntry, now time.Time) error
}
