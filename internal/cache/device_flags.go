package cache

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

const feedbackAskedKeyPrefix = "device:feedback_asked:"

type redisDeviceFlagRepository struct {
	kv kvStore
}

// NewRedisDeviceFlagRepository keeps device feedback flags in Redis without expiry.
func NewRedisDeviceFlagRepository(rdb goredis.Cmdable) repository.DeviceFlagRepository {
	return &redisDeviceFlagRepository{kv: redisKV{rdb: rdb}}
}

func (r *redisDeviceFlagRepository) FeedbackAsked(ctx context.Context, deviceID string) (bool, error) {
	asked, err := r.kv.Exists(ctx, feedbackAskedKeyPrefix+deviceID)
	if err != nil {
		return false, errors.Join(repository.ErrUnavailable, err)
	}
	return asked, nil
}

func (r *redisDeviceFlagRepository) MarkFeedbackAsked(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.New("device ID is required")
	}
	if err := r.kv.Set(ctx, feedbackAskedKeyPrefix+deviceID, []byte("1"), 0); err != nil {
		return errors.Join(repository.ErrUnavailable, err)
	}
	return nil
}
