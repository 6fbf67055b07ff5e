package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/models"
)

// OwnerKind tags which store a phone-key resolved to.
type OwnerKind int

const (
	// OwnerParticipant marks a regular attendee record.
	OwnerParticipant OwnerKind = iota

	// OwnerStaff marks an operations staff record.
	OwnerStaff
)

// Owner is the result of resolving a phone-key against both stores.
// Exactly one of Participant / Staff is set, matching Kind.
type Owner struct {
	Kind        OwnerKind
	Participant *models.ParticipantRecord
	Staff       *models.StaffRecord
}

// IsStaff reports whether the key resolved to the staff store.
func (o *Owner) IsStaff() bool {
	return o.Kind == OwnerStaff
}

// Name returns the owner's display name.
func (o *Owner) Name() string {
	if o.Kind == OwnerStaff {
		return o.Staff.Name
	}
	return o.Participant.Name
}

// Phone returns the owner's display phone number.
func (o *Owner) Phone() string {
	if o.Kind == OwnerStaff {
		return o.Staff.Phone
	}
	return o.Participant.Phone
}

// Part returns the owner's position/part label.
func (o *Owner) Part() string {
	if o.Kind == OwnerStaff {
		return o.Staff.Position
	}
	return o.Participant.Position
}

// TeamNumber returns the team number used on ledger entries: 0 for staff,
// the record's team (default 1) for participants.
func (o *Owner) TeamNumber() int {
	if o.Kind == OwnerStaff {
		return models.StaffTeamNumber
	}
	return o.Participant.EffectiveTeamNumber()
}

// CheckedIn reports the owner's current checked-in flag.
func (o *Owner) CheckedIn() bool {
	if o.Kind == OwnerStaff {
		return o.Staff.CheckedIn
	}
	return o.Participant.CheckedIn
}

// findOwner resolves a phone-key against both stores in the given order.
// The kiosk check-in path tries staff first; the admin edit path tries
// participants first, matching the original lookup order of each endpoint.
func findOwner(ctx context.Context, participants ParticipantStore, staff StaffStore, key string, staffFirst bool) (*Owner, error) {
	lookupStaff := func() (*Owner, error) {
		rec, err := staff.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return &Owner{Kind: OwnerStaff, Staff: rec}, nil
	}
	lookupParticipant := func() (*Owner, error) {
		rec, err := participants.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return &Owner{Kind: OwnerParticipant, Participant: rec}, nil
	}

	first, second := lookupParticipant, lookupStaff
	if staffFirst {
		first, second = lookupStaff, lookupParticipant
	}

	owner, err := first()
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("owner lookup failed: %w", err)
	}

	owner, err = second()
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("owner lookup failed: %w", err)
	}

	return nil, ErrNotFound
}
