package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit reserves one action slot for the user. A nil redis
// client disables rate limiting entirely (tests, single-node dev).
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID, action string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:user:%s:%s", userID, action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// GetRateLimitTTL reports how long until the user may repeat the action.
func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:user:%s:%s", userID, action)
	return rdb.TTL(ctx, key).Result()
}
