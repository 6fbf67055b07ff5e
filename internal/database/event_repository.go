package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

// EventRepository handles the events collection (one document per day) and
// the roster profiles backing the real-time view.
type EventRepository struct {
	client *Client
}

// NewEventRepository creates a new event repository
func NewEventRepository(client *Client) *EventRepository {
	return &EventRepository{client: client}
}

func (r *EventRepository) col() *firestore.CollectionRef {
	return r.client.fs.Collection(eventsCollection)
}

// Get fetches the event scheduled for the given day string. Returns
// ErrNotFound when no event exists for that day.
func (r *EventRepository) Get(ctx context.Context, day string) (*models.Event, error) {
	snap, err := r.col().Doc(day).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", day, err)
	}

	var event models.Event
	if err := snap.DataTo(&event); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", day, err)
	}
	event.Day = snap.Ref.ID

	return &event, nil
}

// GetRosterEntry fetches the roster profile for a phone-key, used to show
// who has not checked in yet. Returns ErrNotFound for unknown keys.
func (r *EventRepository) GetRosterEntry(ctx context.Context, key string) (*models.RosterEntry, error) {
	snap, err := r.client.fs.Collection(rosterCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get roster entry %s: %w", key, err)
	}

	var entry models.RosterEntry
	if err := snap.DataTo(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode roster entry %s: %w", key, err)
	}
	entry.PhoneKey = snap.Ref.ID

	return &entry, nil
}
