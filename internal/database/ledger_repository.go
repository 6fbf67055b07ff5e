package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

// LedgerRepository handles the per-day check-in ledger collections
// (checkIn_<YYYY-MM-DD>, one document per checked-in phone-key).
type LedgerRepository struct {
	client *Client
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(client *Client) *LedgerRepository {
	return &LedgerRepository{client: client}
}

func (r *LedgerRepository) col(day string) *firestore.CollectionRef {
	return r.client.fs.Collection(ledgerCollection(day))
}

// Get fetches the ledger entry for (day, key). Returns ErrNotFound when no
// check-in was recorded.
func (r *LedgerRepository) Get(ctx context.Context, day, key string) (*models.DailyCheckinEntry, error) {
	snap, err := r.col(day).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry %s/%s: %w", day, key, err)
	}

	var entry models.DailyCheckinEntry
	if err := snap.DataTo(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode ledger entry %s/%s: %w", day, key, err)
	}
	entry.PhoneKey = snap.Ref.ID

	return &entry, nil
}

// List returns every ledger entry for the given day.
func (r *LedgerRepository) List(ctx context.Context, day string) ([]*models.DailyCheckinEntry, error) {
	it := r.col(day).Documents(ctx)
	defer it.Stop()

	var entries []*models.DailyCheckinEntry
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list ledger %s: %w", day, err)
		}

		var entry models.DailyCheckinEntry
		if err := snap.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode ledger entry %s/%s: %w", day, snap.Ref.ID, err)
		}
		entry.PhoneKey = snap.Ref.ID
		entries = append(entries, &entry)
	}

	return entries, nil
}

// Put writes the ledger entry for (day, key), replacing any existing one.
func (r *LedgerRepository) Put(ctx context.Context, day, key string, entry *models.DailyCheckinEntry) error {
	if _, err := r.col(day).Doc(key).Set(ctx, entry); err != nil {
		return fmt.Errorf("failed to write ledger entry %s/%s: %w", day, key, err)
	}
	return nil
}

// Apply performs a partial update on a ledger entry, used to mirror
// checkout fields reconciled by admin edits.
func (r *LedgerRepository) Apply(ctx context.Context, day, key string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := r.col(day).Doc(key).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update ledger entry %s/%s: %w", day, key, err)
	}

	return nil
}

// Delete removes the ledger entry for (day, key). Deleting a missing entry
// is not an error.
func (r *LedgerRepository) Delete(ctx context.Context, day, key string) error {
	if _, err := r.col(day).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete ledger entry %s/%s: %w", day, key, err)
	}
	return nil
}

// ResetDay deletes every ledger entry for the given day using batched
// writes. Returns the number of entries removed.
func (r *LedgerRepository) ResetDay(ctx context.Context, day string) (int, error) {
	it := r.col(day).Documents(ctx)
	defer it.Stop()

	batch := r.client.fs.Batch()
	count := 0
	pending := 0

	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to scan ledger %s: %w", day, err)
		}

		batch.Delete(snap.Ref)
		count++
		pending++

		if pending == maxBatchWrites {
			if _, err := batch.Commit(ctx); err != nil {
				return count, fmt.Errorf("failed to commit ledger reset batch: %w", err)
			}
			batch = r.client.fs.Batch()
			pending = 0
		}
	}

	if pending > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return count, fmt.Errorf("failed to commit ledger reset batch: %w", err)
		}
	}

	return count, nil
}
