package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

var _ domain.CheckInRepository = (*CachedCheckInRepository)(nil)

const checkInCacheTTL = 30 * time.Minute

// CachedCheckInRepository caches per-user check-in ranges in redis. Every
// cached range of a user is dropped when that user writes a check-in.
type CachedCheckInRepository struct {
	next  domain.CheckInRepository
	cache *redis.Client
	log   *logger.Logger
}

func NewCachedCheckInRepository(next domain.CheckInRepository, cache *redis.Client, log *logger.Logger) *CachedCheckInRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedCheckInRepository{
		next:  next,
		cache: cache,
		log:   log.With("component", "checkin_cache"),
	}
}

func (r *CachedCheckInRepository) userKey(userID string) string {
	return fmt.Sprintf("checkins:%s", userID)
}

func rangeField(from, to time.Time) string {
	return bound(from) + ".." + bound(to)
}

func bound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return domain.TruncateToDay(t).Format(domain.DateLayout)
}

func (r *CachedCheckInRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.userKey(userID)).Err(); err != nil {
		r.log.Warn("cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (r *CachedCheckInRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.CheckIn, error) {
	key := r.userKey(userID)
	field := rangeField(from, to)

	val, err := r.cache.HGet(ctx, key, field).Result()
	if err == nil {
		var checkIns []*domain.CheckIn
		if err := json.Unmarshal([]byte(val), &checkIns); err == nil {
			return checkIns, nil
		}

		r.log.Warn("corrupted cache entry, cleaning up", "user_id", userID)
		r.cache.HDel(ctx, key, field)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("redis read failed", "error", err)
	}

	checkIns, err := r.next.ListByUserID(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(checkIns); err == nil {
		_, setErr := r.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, field, data)
			pipe.Expire(ctx, key, checkInCacheTTL)
			return nil
		})
		if setErr != nil {
			r.log.Warn("redis write failed", "error", setErr)
		}
	}

	return checkIns, nil
}

func (r *CachedCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	if err := r.next.Create(ctx, checkIn); err != nil {
		return err
	}
	r.invalidate(ctx, checkIn.UserID)
	return nil
}
