package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MadeInMinsk96/loveblr/internal/domain/model"
)

const profileKeyPrefix = "profile:"

// ProfileCacheRepo is a read-through cache for profile lookups. It is
// fail-open: a nil client or an unreachable redis degrades to cache misses,
// never to request failures.
type ProfileCacheRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewProfileCacheRepo(client *goredis.Client, ttl time.Duration) *ProfileCacheRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ProfileCacheRepo{
		client: client,
		ttl:    ttl,
	}
}

func (r *ProfileCacheRepo) Get(ctx context.Context, userID int64) (model.Profile, bool, error) {
	if r.client == nil || userID <= 0 {
		return model.Profile{}, false, nil
	}

	data, err := r.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.Profile{}, false, nil
		}
		return model.Profile{}, false, fmt.Errorf("get cached profile: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		// Stale encoding from an older build; treat as a miss.
		return model.Profile{}, false, nil
	}

	return profile, true, nil
}

func (r *ProfileCacheRepo) Set(ctx context.Context, profile model.Profile) error {
	if r.client == nil || profile.UserID <= 0 {
		return nil
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile for cache: %w", err)
	}

	if err := r.client.Set(ctx, profileKey(profile.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set cached profile: %w", err)
	}

	return nil
}

func (r *ProfileCacheRepo) Invalidate(ctx context.Context, userID int64) error {
	if r.client == nil || userID <= 0 {
		return nil
	}

	if err := r.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached profile: %w", err)
	}

	return nil
}

func profileKey(userID int64) string {
	return profileKeyPrefix + strconv.FormatInt(userID, 10)
}
