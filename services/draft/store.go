package draft

import (
	"context"
	"encoding/json"
	"fmt"

	"hirewheels/models"
	"hirewheels/utils"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when an owner has no persisted draft.
var ErrNotFound = fmt.Errorf("booking draft not found")

// Store persists booking drafts as JSON blobs in Redis, one per owner. Only
// the draft namespace is persisted; writes are last-writer-wins, consistent
// with the sequential per-rider mutation model.
type Store struct {
	Client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{Client: client}
}

func draftKey(ownerID string) string {
	return utils.DraftCachePrefix + ownerID
}

// Save writes the draft under its owner key, refreshing the TTL. Every field
// mutation goes through here so the draft survives reloads and the login
// detour.
func (s *Store) Save(ctx context.Context, d *models.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftKey(d.OwnerID), data, utils.DraftCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

// Get restores the owner's draft.
func (s *Store) Get(ctx context.Context, ownerID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, draftKey(ownerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking draft: %w", err)
	}
	var d models.BookingDraft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &d, nil
}

// Delete purges the owner's draft (successful booking, explicit go-back,
// logout).
func (s *Store) Delete(ctx context.Context, ownerID string) error {
	return s.Client.Del(ctx, draftKey(ownerID)).Err()
}

// Migrate moves a draft from one owner key to another, used when an
// anonymous device draft becomes a rider draft after login. A missing source
// draft is not an error.
func (s *Store) Migrate(ctx context.Context, fromOwner, toOwner string) (*models.BookingDraft, error) {
	d, err := s.Get(ctx, fromOwner)
	if err != nil {
		if err == ErrNotFound {
			return s.Get(ctx, toOwner)
		}
		return nil, err
	}
	d.OwnerID = toOwner
	if err := s.Save(ctx, d); err != nil {
		return nil, err
	}
	if fromOwner != toOwner {
		if err := s.Client.Del(ctx, draftKey(fromOwner)).Err(); err != nil {
			return nil, fmt.Errorf("failed to drop old draft key: %w", err)
		}
	}
	return d, nil
}
