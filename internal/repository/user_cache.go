package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/gambler-service/internal/domain"
)

const userCachePrefix = "user:"

// CachedUserRepository serves GetByID from Redis and falls back to the wrapped repository.
// Cached entries carry no password hash. Cache failures are logged and never fail the lookup.
type CachedUserRepository struct {
	next   UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository decorates next. A nil client disables caching.
func NewCachedUserRepository(next UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	if client == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedUserRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.next.Create(ctx, user)
}

func (r *CachedUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.next.GetByUsername(ctx, username)
}

func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	key := userCachePrefix + strconv.FormatInt(id, 10)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached domain.User
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		r.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("user cache read failed", zap.String("key", key), zap.Error(err))
	}

	user, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(user)
	if err == nil {
		err = r.client.Set(ctx, key, payload, r.ttl).Err()
	}
	if err != nil {
		r.logger.Warn("user cache write failed", zap.String("key", key), zap.Error(err))
	}
	return user, nil
}
