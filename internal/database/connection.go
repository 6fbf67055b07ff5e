package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/onewave/qrcheckin-backend/internal/config"
)

// Collection names. The per-day check-in ledger lives in one collection per
// calendar day, named checkIn_<YYYY-MM-DD>.
const (
	participantsCollection = "participants_checkin"
	staffCollection        = "participants_admin"
	eventsCollection       = "events"
	rosterCollection       = "participants_roster"
	discordCollection      = "participants_discord"
	ledgerPrefix           = "checkIn_"
)

// maxBatchWrites is the Firestore limit on writes per batch commit.
const maxBatchWrites = 500

// ErrNotFound is returned by all repositories when a document does not
// exist in its collection.
var ErrNotFound = errors.New("document not found")

// Client wraps the Firestore client shared by all repositories.
type Client struct {
	fs *firestore.Client
}

// NewConnection creates a Firestore client from configuration. An empty
// credentials file falls back to Application Default Credentials.
func NewConnection(ctx context.Context, cfg config.FirestoreConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project ID is required")
	}

	var (
		fs  *firestore.Client
		err error
	)
	if cfg.CredentialsFile != "" {
		fs, err = firestore.NewClient(ctx, cfg.ProjectID, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		fs, err = firestore.NewClient(ctx, cfg.ProjectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Client{fs: fs}, nil
}

// Ping verifies the Firestore connection. Firestore has no ping API, so a
// collection listing stands in for one.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.fs == nil {
		return fmt.Errorf("firestore client is nil")
	}
	if _, err := c.fs.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying Firestore client.
func (c *Client) Close() error {
	if c == nil || c.fs == nil {
		return nil
	}
	return c.fs.Close()
}

// ledgerCollection returns the name of the check-in ledger collection for
// the given day string.
func ledgerCollection(day string) string {
	return ledgerPrefix + day
}
