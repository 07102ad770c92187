package cache

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	scanGenerationKey   = "scan:generation"
	scanLatestKeyPrefix = "scan:latest:"

	// DefaultScanTrackTTL bounds how long a user's latest generation is kept.
	DefaultScanTrackTTL = 2 * time.Minute
)

// RedisScanTracker keeps each user's latest scan generation in Redis so that
// "latest scan wins" holds across every instance behind the load balancer.
// Generations come from one INCR counter and are never reused.
type RedisScanTracker struct {
	kv  kvStore
	ttl time.Duration
}

func NewRedisScanTracker(rdb goredis.Cmdable, ttl time.Duration) *RedisScanTracker {
	return newRedisScanTracker(redisKV{rdb: rdb}, ttl)
}

func newRedisScanTracker(kv kvStore, ttl time.Duration) *RedisScanTracker {
	if ttl <= 0 {
		ttl = DefaultScanTrackTTL
	}
	return &RedisScanTracker{kv: kv, ttl: ttl}
}

func (t *RedisScanTracker) Begin(ctx context.Context, userID string) (uint64, error) {
	gen, err := t.kv.Incr(ctx, scanGenerationKey)
	if err != nil {
		return 0, err
	}
	if err := t.kv.Set(ctx, scanLatestKeyPrefix+userID, []byte(strconv.FormatInt(gen, 10)), t.ttl); err != nil {
		return 0, err
	}
	return uint64(gen), nil
}

// IsCurrent treats an expired entry as current: no newer scan was registered.
func (t *RedisScanTracker) IsCurrent(ctx context.Context, userID string, gen uint64) (bool, error) {
	raw, ok, err := t.kv.Get(ctx, scanLatestKeyPrefix+userID)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	latest, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return false, err
	}
	return latest == gen, nil
}

// Finish is a no-op; entries expire after the TTL.
func (t *RedisScanTracker) Finish(context.Context, string, uint64) {}
