package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

// ParticipantRepository handles regular attendee documents in the
// participants_checkin collection.
type ParticipantRepository struct {
	client *Client
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(client *Client) *ParticipantRepository {
	return &ParticipantRepository{client: client}
}

func (r *ParticipantRepository) col() *firestore.CollectionRef {
	return r.client.fs.Collection(participantsCollection)
}

// Get fetches a participant record by phone-key. Returns ErrNotFound when
// the document does not exist.
func (r *ParticipantRepository) Get(ctx context.Context, key string) (*models.ParticipantRecord, error) {
	snap, err := r.col().Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participant %s: %w", key, err)
	}

	var rec models.ParticipantRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode participant %s: %w", key, err)
	}
	rec.PhoneKey = snap.Ref.ID

	return &rec, nil
}

// List returns every participant record in the collection. Full scans are
// acceptable at event scale (hundreds of documents).
func (r *ParticipantRepository) List(ctx context.Context) ([]*models.ParticipantRecord, error) {
	it := r.col().Documents(ctx)
	defer it.Stop()

	var records []*models.ParticipantRecord
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list participants: %w", err)
		}

		var rec models.ParticipantRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode participant %s: %w", snap.Ref.ID, err)
		}
		rec.PhoneKey = snap.Ref.ID
		records = append(records, &rec)
	}

	return records, nil
}

// Apply performs a partial update on a participant document. A nil value
// clears the field to null.
func (r *ParticipantRepository) Apply(ctx context.Context, key string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := r.col().Doc(key).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update participant %s: %w", key, err)
	}

	return nil
}

// Save writes a full participant record, replacing any existing document
// under the same phone-key.
func (r *ParticipantRepository) Save(ctx context.Context, key string, rec *models.ParticipantRecord) error {
	if _, err := r.col().Doc(key).Set(ctx, rec); err != nil {
		return fmt.Errorf("failed to save participant %s: %w", key, err)
	}
	return nil
}

// ResetCheckinFlags clears the check-in fields on every participant record
// using batched writes. Returns the number of records touched.
func (r *ParticipantRepository) ResetCheckinFlags(ctx context.Context, now time.Time) (int, error) {
	it := r.col().Documents(ctx)
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
			return count, fmt.Errorf("failed to scan participants: %w", err)
		}

		batch.Update(snap.Ref, []firestore.Update{
			{Path: "checked_in_status", Value: false},
			{Path: "checkedInAt", Value: nil},
			{Path: "checkedOutAt", Value: nil},
			{Path: "checkedOutMemo", Value: ""},
			{Path: "updatedAt", Value: now},
		})
		count++
		pending++

		// Firestore caps a batch at 500 writes.
		if pending == maxBatchWrites {
			if _, err := batch.Commit(ctx); err != nil {
				return count, fmt.Errorf("failed to commit reset batch: %w", err)
			}
			batch = r.client.fs.Batch()
			pending = 0
		}
	}

	if pending > 0 {
		if _, err := batch.Commit(ctx); err != nil {
			return count, fmt.Errorf("failed to commit reset batch: %w", err)
		}
	}

	return count, nil
}
