package database

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/onewave/qrcheckin-backend/internal/models"
)

// DiscordRepository reads the participants_discord collection mirrored by
// the Discord bot. Field names drifted between bot revisions, so documents
// are decoded from raw data with per-field fallbacks instead of struct tags.
type DiscordRepository struct {
	client *Client
}

// NewDiscordRepository creates a new discord roster repository
func NewDiscordRepository(client *Client) *DiscordRepository {
	return &DiscordRepository{client: client}
}

func (r *DiscordRepository) col() *firestore.CollectionRef {
	return r.client.fs.Collection(discordCollection)
}

// List returns every member mirrored from Discord.
func (r *DiscordRepository) List(ctx context.Context) ([]*models.DiscordMember, error) {
	it := r.col().Documents(ctx)
	defer it.Stop()

	var members []*models.DiscordMember
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list discord members: %w", err)
		}
		members = append(members, docToDiscordMember(snap))
	}

	return members, nil
}

func docToDiscordMember(snap *firestore.DocumentSnapshot) *models.DiscordMember {
	data := snap.Data()

	getStr := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := data[k].(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	getInt := func(key string) int {
		switch v := data[key].(type) {
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
		return 0
	}

	return &models.DiscordMember{
		ID:         snap.Ref.ID,
		Name:       getStr("name"),
		Email:      getStr("email"),
		Phone:      getStr("phone", "phoneNumber"),
		Position:   getStr("position", "part"),
		School:     getStr("school", "schoolName"),
		TeamNumber: getInt("teamNumber"),
		Status:     getStr("status"),
		Memo:       getStr("memo"),
	}
}
