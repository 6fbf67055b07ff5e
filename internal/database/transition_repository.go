package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

// ErrAlreadyExists is returned when a check-in commit finds the target
// already checked in (ledger entry present or record flag set).
var ErrAlreadyExists = errors.New("document already exists")

// TransitionRepository commits the check-in transition: the record flag
// flip and the ledger entry land in a single Firestore transaction, so a
// crash can never leave the flag set without its ledger entry. The
// transaction also re-checks the already-checked-in condition, closing the
// read-then-write race between concurrent kiosk requests.
type TransitionRepository struct {
	client *Client
}

// NewTransitionRepository creates a new transition repository
func NewTransitionRepository(client *Client) *TransitionRepository {
	return &TransitionRepository{client: client}
}

// CommitCheckin marks the owner of key as checked in and records the ledger
// entry for the given day. Returns ErrAlreadyExists when the key already
// checked in today, ErrNotFound when the record vanished since the caller's
// lookup.
func (r *TransitionRepository) CommitCheckin(ctx context.Context, isStaff bool, key, day string, entry *models.DailyCheckinEntry, now time.Time) error {
	collection := participantsCollection
	if isStaff {
		collection = staffCollection
	}
	recordRef := r.client.fs.Collection(collection).Doc(key)
	ledgerRef := r.client.fs.Collection(ledgerCollection(day)).Doc(key)

	err := r.client.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ledgerRef); err == nil {
			return ErrAlreadyExists
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		snap, err := tx.Get(recordRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		if checked, ok := snap.Data()["checked_in_status"].(bool); ok && checked {
			return ErrAlreadyExists
		}

		if err := tx.Update(recordRef, []firestore.Update{
			{Path: "checked_in_status", Value: true},
			{Path: "checkedInAt", Value: now},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		return tx.Set(ledgerRef, entry)
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to commit check-in for %s: %w", key, err)
	}

	return nil
}
