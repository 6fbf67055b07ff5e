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

// StaffRepository handles operations staff documents in the
// participants_admin collection.
type StaffRepository struct {
	client *Client
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(client *Client) *StaffRepository {
	return &StaffRepository{client: client}
}

func (r *StaffRepository) col() *firestore.CollectionRef {
	return r.client.fs.Collection(staffCollection)
}

// Get fetches a staff record by phone-key. Returns ErrNotFound when the
// document does not exist.
func (r *StaffRepository) Get(ctx context.Context, key string) (*models.StaffRecord, error) {
	snap, err := r.col().Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff %s: %w", key, err)
	}

	var rec models.StaffRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode staff %s: %w", key, err)
	}
	rec.PhoneKey = snap.Ref.ID

	return &rec, nil
}

// List returns every staff record in the collection.
func (r *StaffRepository) List(ctx context.Context) ([]*models.StaffRecord, error) {
	it := r.col().Documents(ctx)
	defer it.Stop()

	var records []*models.StaffRecord
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list staff: %w", err)
		}

		var rec models.StaffRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode staff %s: %w", snap.Ref.ID, err)
		}
		rec.PhoneKey = snap.Ref.ID
		records = append(records, &rec)
	}

	return records, nil
}

// Apply performs a partial update on a staff document. A nil value clears
// the field to null.
func (r *StaffRepository) Apply(ctx context.Context, key string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := r.col().Doc(key).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update staff %s: %w", key, err)
	}

	return nil
}
