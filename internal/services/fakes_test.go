package services

import (
	"context"
	"time"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
)

// In-memory stand-ins for the Firestore repositories. They mimic the
// repository contract, including ErrNotFound and the partial-update field
// paths, so service tests run without an emulator.

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func toTimePtr(v interface{}) *time.Time {
	if v == nil {
		return nil
	}
	t := v.(time.Time)
	return &t
}

type fakeParticipantStore struct {
	records   map[string]*models.ParticipantRecord
	listCalls int
}

func newFakeParticipantStore() *fakeParticipantStore {
	return &fakeParticipantStore{records: make(map[string]*models.ParticipantRecord)}
}

func (f *fakeParticipantStore) Get(_ context.Context, key string) (*models.ParticipantRecord, error) {
	rec, ok := f.records[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeParticipantStore) List(_ context.Context) ([]*models.ParticipantRecord, error) {
	f.listCalls++
	var out []*models.ParticipantRecord
	for _, rec := range f.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeParticipantStore) Apply(_ context.Context, key string, fields map[string]interface{}) error {
	rec, ok := f.records[key]
	if !ok {
		return database.ErrNotFound
	}
	applyParticipantFields(rec, fields)
	return nil
}

func (f *fakeParticipantStore) Save(_ context.Context, key string, rec *models.ParticipantRecord) error {
	clone := *rec
	f.records[key] = &clone
	return nil
}

func applyParticipantFields(rec *models.ParticipantRecord, fields map[string]interface{}) {
	for path, value := range fields {
		switch path {
		case "name":
			rec.Name = value.(string)
		case "email":
			rec.Email = value.(string)
		case "phone":
			rec.Phone = value.(string)
		case "position":
			rec.Position = value.(string)
		case "school":
			rec.School = value.(string)
		case "teamNumber":
			rec.TeamNumber = value.(int)
		case "status":
			rec.Status = value.(string)
		case "memo":
			rec.Memo = value.(string)
		case "checked_in_status":
			rec.CheckedIn = value.(bool)
		case "checkedInAt":
			rec.CheckedInAt = toTimePtr(value)
		case "checkedOutAt":
			rec.CheckedOutAt = toTimePtr(value)
		case "checkedOutMemo":
			rec.CheckedOutMemo = value.(string)
		case "updatedAt":
			rec.UpdatedAt = value.(time.Time)
		}
	}
}

type fakeStaffStore struct {
	records map[string]*models.StaffRecord
}

func newFakeStaffStore() *fakeStaffStore {
	return &fakeStaffStore{records: make(map[string]*models.StaffRecord)}
}

func (f *fakeStaffStore) Get(_ context.Context, key string) (*models.StaffRecord, error) {
	rec, ok := f.records[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeStaffStore) List(_ context.Context) ([]*models.StaffRecord, error) {
	var out []*models.StaffRecord
	for _, rec := range f.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeStaffStore) Apply(_ context.Context, key string, fields map[string]interface{}) error {
	rec, ok := f.records[key]
	if !ok {
		return database.ErrNotFound
	}
	for path, value := range fields {
		switch path {
		case "memo":
			rec.Memo = value.(string)
		case "checked_in_status":
			rec.CheckedIn = value.(bool)
		case "checkedInAt":
			rec.CheckedInAt = toTimePtr(value)
		case "checkedOutAt":
			rec.CheckedOutAt = toTimePtr(value)
		case "checkedOutMemo":
			rec.CheckedOutMemo = value.(string)
		case "updatedAt":
			rec.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

type fakeLedger struct {
	days map[string]map[string]*models.DailyCheckinEntry
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{days: make(map[string]map[string]*models.DailyCheckinEntry)}
}

func (f *fakeLedger) day(day string) map[string]*models.DailyCheckinEntry {
	if f.days[day] == nil {
		f.days[day] = make(map[string]*models.DailyCheckinEntry)
	}
	return f.days[day]
}

func (f *fakeLedger) Get(_ context.Context, day, key string) (*models.DailyCheckinEntry, error) {
	entry, ok := f.day(day)[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

func (f *fakeLedger) List(_ context.Context, day string) ([]*models.DailyCheckinEntry, error) {
	var out []*models.DailyCheckinEntry
	for _, entry := range f.day(day) {
		clone := *entry
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeLedger) Put(_ context.Context, day, key string, entry *models.DailyCheckinEntry) error {
	clone := *entry
	f.day(day)[key] = &clone
	return nil
}

func (f *fakeLedger) Apply(_ context.Context, day, key string, fields map[string]interface{}) error {
	entry, ok := f.day(day)[key]
	if !ok {
		return database.ErrNotFound
	}
	for path, value := range fields {
		switch path {
		case "checkedOutAt":
			entry.CheckedOutAt = toTimePtr(value)
		case "checkedOutMemo":
			entry.CheckedOutMemo = value.(string)
		}
	}
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, day, key string) error {
	delete(f.day(day), key)
	return nil
}

// fakeCommitter mirrors the transactional semantics of the Firestore
// transition repository over the in-memory stores.
type fakeCommitter struct {
	participants *fakeParticipantStore
	staff        *fakeStaffStore
	ledger       *fakeLedger
}

func (f *fakeCommitter) CommitCheckin(ctx context.Context, isStaff bool, key, day string, entry *models.DailyCheckinEntry, now time.Time) error {
	if _, ok := f.ledger.day(day)[key]; ok {
		return database.ErrAlreadyExists
	}

	if isStaff {
		rec, ok := f.staff.records[key]
		if !ok {
			return database.ErrNotFound
		}
		if rec.CheckedIn {
			return database.ErrAlreadyExists
		}
		rec.CheckedIn = true
		rec.CheckedInAt = &now
		rec.UpdatedAt = now
	} else {
		rec, ok := f.participants.records[key]
		if !ok {
			return database.ErrNotFound
		}
		if rec.CheckedIn {
			return database.ErrAlreadyExists
		}
		rec.CheckedIn = true
		rec.CheckedInAt = &now
		rec.UpdatedAt = now
	}

	return f.ledger.Put(ctx, day, key, entry)
}

type fakeEventStore struct {
	events map[string]*models.Event
	roster map[string]*models.RosterEntry
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events: make(map[string]*models.Event),
		roster: make(map[string]*models.RosterEntry),
	}
}

func (f *fakeEventStore) Get(_ context.Context, day string) (*models.Event, error) {
	event, ok := f.events[day]
	if !ok {
		return nil, database.ErrNotFound
	}
	return event, nil
}

func (f *fakeEventStore) GetRosterEntry(_ context.Context, key string) (*models.RosterEntry, error) {
	entry, ok := f.roster[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	return entry, nil
}

type fakeDiscordRoster struct {
	members []*models.DiscordMember
}

func (f *fakeDiscordRoster) List(_ context.Context) ([]*models.DiscordMember, error) {
	return f.members, nil
}
