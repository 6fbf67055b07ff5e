package handlers

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
)

// Minimal in-memory stores backing real service instances, so handler tests
// exercise the full request path without Firestore.

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type memClock struct {
	now time.Time
}

func (m *memClock) Now() time.Time {
	return m.now
}

type memParticipants struct {
	records map[string]*models.ParticipantRecord
}

func (m *memParticipants) Get(_ context.Context, key string) (*models.ParticipantRecord, error) {
	rec, ok := m.records[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (m *memParticipants) List(_ context.Context) ([]*models.ParticipantRecord, error) {
	var out []*models.ParticipantRecord
	for _, rec := range m.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memParticipants) Apply(_ context.Context, key string, fields map[string]interface{}) error {
	rec, ok := m.records[key]
	if !ok {
		return database.ErrNotFound
	}
	if v, ok := fields["memo"]; ok {
		rec.Memo = v.(string)
	}
	if v, ok := fields["checked_in_status"]; ok {
		rec.CheckedIn = v.(bool)
	}
	if v, ok := fields["checkedInAt"]; ok {
		if v == nil {
			rec.CheckedInAt = nil
		} else {
			t := v.(time.Time)
			rec.CheckedInAt = &t
		}
	}
	return nil
}

func (m *memParticipants) Save(_ context.Context, key string, rec *models.ParticipantRecord) error {
	clone := *rec
	m.records[key] = &clone
	return nil
}

type memStaff struct {
	records map[string]*models.StaffRecord
}

func (m *memStaff) Get(_ context.Context, key string) (*models.StaffRecord, error) {
	rec, ok := m.records[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (m *memStaff) List(_ context.Context) ([]*models.StaffRecord, error) {
	var out []*models.StaffRecord
	for _, rec := range m.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memStaff) Apply(_ context.Context, key string, fields map[string]interface{}) error {
	rec, ok := m.records[key]
	if !ok {
		return database.ErrNotFound
	}
	if v, ok := fields["memo"]; ok {
		rec.Memo = v.(string)
	}
	return nil
}

type memLedger struct {
	entries map[string]map[string]*models.DailyCheckinEntry
}

func (m *memLedger) day(day string) map[string]*models.DailyCheckinEntry {
	if m.entries[day] == nil {
		m.entries[day] = make(map[string]*models.DailyCheckinEntry)
	}
	return m.entries[day]
}

func (m *memLedger) Get(_ context.Context, day, key string) (*models.DailyCheckinEntry, error) {
	entry, ok := m.day(day)[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

func (m *memLedger) List(_ context.Context, day string) ([]*models.DailyCheckinEntry, error) {
	var out []*models.DailyCheckinEntry
	for _, entry := range m.day(day) {
		clone := *entry
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memLedger) Put(_ context.Context, day, key string, entry *models.DailyCheckinEntry) error {
	clone := *entry
	m.day(day)[key] = &clone
	return nil
}

func (m *memLedger) Apply(_ context.Context, day, key string, fields map[string]interface{}) error {
	entry, ok := m.day(day)[key]
	if !ok {
		return database.ErrNotFound
	}
	if v, ok := fields["checkedOutMemo"]; ok {
		entry.CheckedOutMemo = v.(string)
	}
	return nil
}

func (m *memLedger) Delete(_ context.Context, day, key string) error {
	delete(m.day(day), key)
	return nil
}

type memCommitter struct {
	participants *memParticipants
	staff        *memStaff
	ledger       *memLedger
}

func (m *memCommitter) CommitCheckin(ctx context.Context, isStaff bool, key, day string, entry *models.DailyCheckinEntry, now time.Time) error {
	if _, ok := m.ledger.day(day)[key]; ok {
		return database.ErrAlreadyExists
	}
	if isStaff {
		rec, ok := m.staff.records[key]
		if !ok {
			return database.ErrNotFound
		}
		if rec.CheckedIn {
			return database.ErrAlreadyExists
		}
		rec.CheckedIn = true
		rec.CheckedInAt = &now
	} else {
		rec, ok := m.participants.records[key]
		if !ok {
			return database.ErrNotFound
		}
		if rec.CheckedIn {
			return database.ErrAlreadyExists
		}
		rec.CheckedIn = true
		rec.CheckedInAt = &now
	}
	return m.ledger.Put(ctx, day, key, entry)
}

type memEvents struct {
	events map[string]*models.Event
	roster map[string]*models.RosterEntry
}

func (m *memEvents) Get(_ context.Context, day string) (*models.Event, error) {
	event, ok := m.events[day]
	if !ok {
		return nil, database.ErrNotFound
	}
	return event, nil
}

func (m *memEvents) GetRosterEntry(_ context.Context, key string) (*models.RosterEntry, error) {
	entry, ok := m.roster[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	return entry, nil
}

type memDiscord struct {
	members []*models.DiscordMember
}

func (m *memDiscord) List(_ context.Context) ([]*models.DiscordMember, error) {
	return m.members, nil
}
