package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
)

// OptionalTime distinguishes an absent JSON field from an explicit null:
// clearing checkedOutAt requires sending null, while leaving the field out
// keeps the stored value.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// ParticipantUpdate carries the optional fields of an admin edit. Only
// fields present in the request body are applied.
type ParticipantUpdate struct {
	Memo           *string      `json:"memo"`
	CheckedIn      *bool        `json:"checked_in_status"`
	CheckedOutAt   OptionalTime `json:"checkedOutAt"`
	CheckedOutMemo *string      `json:"checkedOutMemo"`
}

func (u *ParticipantUpdate) touchesCheckinState() bool {
	return u.CheckedIn != nil || u.CheckedOutAt.Set || u.CheckedOutMemo != nil
}

func (u *ParticipantUpdate) touchesCheckout() bool {
	return u.CheckedOutAt.Set || u.CheckedOutMemo != nil
}

// AdminService applies partial updates to participant and staff records and
// keeps the daily check-in ledger reconciled with the checked-in flag.
type AdminService struct {
	participants ParticipantStore
	staff        StaffStore
	ledger       CheckinLedger
	clock        Clock
	logger       *logrus.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	participants ParticipantStore,
	staff StaffStore,
	ledger CheckinLedger,
	clock Clock,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		participants: participants,
		staff:        staff,
		ledger:       ledger,
		clock:        clock,
		logger:       logger,
	}
}

// UpdateParticipant applies an admin edit to the record owning key.
// Participants are looked up before staff. Staff records accept memo edits
// only; their check-in state belongs to the kiosk flow and edits to it fail
// with ErrStaffEditForbidden.
//
// The record write and the ledger reconciliation are separate document
// operations with no rollback; a ledger failure after a successful record
// write surfaces as an error but leaves the record updated. The record
// flag stays authoritative, so a later edit repairs the ledger.
func (s *AdminService) UpdateParticipant(ctx context.Context, key string, update *ParticipantUpdate) error {
	if key == "" {
		return fmt.Errorf("%w: participant ID is required", ErrValidation)
	}

	owner, err := findOwner(ctx, s.participants, s.staff, key, false)
	if err != nil {
		return err
	}

	if owner.IsStaff() && update.touchesCheckinState() {
		return ErrStaffEditForbidden
	}

	now := s.clock.Now()
	fields := map[string]interface{}{
		"updatedAt": now,
	}

	if update.Memo != nil {
		fields["memo"] = *update.Memo
	}

	wasCheckedIn := owner.CheckedIn()
	if update.CheckedIn != nil {
		fields["checked_in_status"] = *update.CheckedIn
		if *update.CheckedIn && !wasCheckedIn {
			fields["checkedInAt"] = now
		} else if !*update.CheckedIn && wasCheckedIn {
			fields["checkedInAt"] = nil
		}
	}

	// A checkout memo implicitly finalizes checkout; an explicit
	// checkedOutAt in the same request wins over the implicit timestamp.
	var priorCheckedOutAt *time.Time
	if owner.IsStaff() {
		priorCheckedOutAt = owner.Staff.CheckedOutAt
	} else {
		priorCheckedOutAt = owner.Participant.CheckedOutAt
	}
	if update.CheckedOutMemo != nil {
		fields["checkedOutMemo"] = *update.CheckedOutMemo
		if *update.CheckedOutMemo != "" && priorCheckedOutAt == nil {
			fields["checkedOutAt"] = now
		}
	}
	if update.CheckedOutAt.Set {
		if update.CheckedOutAt.Value != nil {
			fields["checkedOutAt"] = *update.CheckedOutAt.Value
		} else {
			fields["checkedOutAt"] = nil
		}
	}

	if owner.IsStaff() {
		err = s.staff.Apply(ctx, key, fields)
	} else {
		err = s.participants.Apply(ctx, key, fields)
	}
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("record update failed: %w", err)
	}

	today := DayString(now)

	if update.CheckedIn != nil {
		if err := s.reconcileLedger(ctx, today, key, owner, *update.CheckedIn, now); err != nil {
			return err
		}
	}

	if update.touchesCheckout() {
		if err := s.mirrorCheckout(ctx, today, key, fields); err != nil {
			return err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"phone_key": key,
		"is_staff":  owner.IsStaff(),
	}).Info("Participant record updated")

	return nil
}

// reconcileLedger inserts or removes today's ledger entry so its presence
// matches the checked-in flag after an out-of-band admin edit.
func (s *AdminService) reconcileLedger(ctx context.Context, day, key string, owner *Owner, checkedIn bool, now time.Time) error {
	if checkedIn {
		_, err := s.ledger.Get(ctx, day, key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("ledger lookup failed: %w", err)
		}

		entry := &models.DailyCheckinEntry{
			PhoneKey:    key,
			Name:        owner.Name(),
			Phone:       owner.Phone(),
			Part:        owner.Part(),
			TeamNumber:  owner.TeamNumber(),
			IsStaff:     owner.IsStaff(),
			CheckedInAt: now,
		}
		if err := s.ledger.Put(ctx, day, key, entry); err != nil {
			return fmt.Errorf("ledger insert failed: %w", err)
		}
		return nil
	}

	if err := s.ledger.Delete(ctx, day, key); err != nil {
		return fmt.Errorf("ledger delete failed: %w", err)
	}
	return nil
}

// mirrorCheckout copies the checkout fields applied to the record onto
// today's ledger entry, when one exists.
func (s *AdminService) mirrorCheckout(ctx context.Context, day, key string, fields map[string]interface{}) error {
	mirror := make(map[string]interface{})
	if v, ok := fields["checkedOutMemo"]; ok {
		mirror["checkedOutMemo"] = v
	}
	if v, ok := fields["checkedOutAt"]; ok {
		mirror["checkedOutAt"] = v
	}
	if len(mirror) == 0 {
		return nil
	}

	if err := s.ledger.Apply(ctx, day, key, mirror); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("ledger checkout sync failed: %w", err)
	}
	return nil
}

// MemberView is one staff row of the admin members listing.
type MemberView struct {
	PhoneKey string `json:"phoneKey"`
	Name     string `json:"name"`
	Phone    string `json:"phoneNumber"`
	Part     string `json:"part"`
	School   string `json:"school"`
	Memo     string `json:"memo"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// ListMembers returns every staff record for the admin UI.
func (s *AdminService) ListMembers(ctx context.Context) ([]MemberView, error) {
	records, err := s.staff.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("staff listing failed: %w", err)
	}

	members := make([]MemberView, 0, len(records))
	for _, m := range records {
		status := m.Status
		if status == "" {
			status = models.StatusApproved
		}
		members = append(members, MemberView{
			PhoneKey: m.PhoneKey,
			Name:     m.Name,
			Phone:    m.Phone,
			Part:     m.Position,
			School:   m.School,
			Memo:     m.Memo,
			Email:    m.Email,
			Status:   status,
		})
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	return members, nil
}

// ParticipantView is one row of the admin participant listing.
type ParticipantView struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	TeamNumber     int        `json:"team_number"`
	Part           string     `json:"part"`
	Phone          string     `json:"phone_number"`
	Status         string     `json:"status"`
	CheckedIn      bool       `json:"isCheckedIn"`
	CheckedInAt    *time.Time `json:"checkedInAt"`
	Memo           string     `json:"memo"`
	CheckedOutAt   *time.Time `json:"checkedOutAt"`
	CheckedOutMemo string     `json:"checkedOutMemo"`
}

// ListParticipants returns every regular participant. Records with team
// number 0 are staff leaked into the wrong store and are excluded.
func (s *AdminService) ListParticipants(ctx context.Context) ([]ParticipantView, error) {
	records, err := s.participants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("participant listing failed: %w", err)
	}

	views := make([]ParticipantView, 0, len(records))
	for _, p := range records {
		if p.IsStaff() {
			continue
		}
		status := p.Status
		if status == "" {
			status = models.StatusRejected
		}
		views = append(views, ParticipantView{
			ID:             p.PhoneKey,
			Email:          p.Email,
			Name:           p.Name,
			TeamNumber:     p.TeamNumber,
			Part:           p.Position,
			Phone:          p.Phone,
			Status:         status,
			CheckedIn:      p.CheckedIn,
			CheckedInAt:    p.CheckedInAt,
			Memo:           p.Memo,
			CheckedOutAt:   p.CheckedOutAt,
			CheckedOutMemo: p.CheckedOutMemo,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Name < views[j].Name
	})

	return views, nil
}
