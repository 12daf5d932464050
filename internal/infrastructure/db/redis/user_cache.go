package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/platops/user-directory/internal/api/metrics"
	"github.com/platops/user-directory/internal/core/domain"
	"github.com/platops/user-directory/internal/core/ports"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheKeyBase = "user:"
)

// CachedUserRepository decorates a UserRepository with a Redis lookaside
// cache for single-user reads. Writes invalidate the cached entry so a
// subsequent read never observes a stale or deleted record. Cache failures
// degrade silently to the underlying store.
type CachedUserRepository struct {
	inner  ports.UserRepository
	client *redis.Client
	log    zerolog.Logger
}

func NewCachedUserRepository(inner ports.UserRepository, client *redis.Client, log zerolog.Logger) *CachedUserRepository {
	return &CachedUserRepository{inner: inner, client: client, log: log}
}

// cachedUser carries the full record, including the hash that domain.User
// hides from JSON. Losing the hash in the cache would corrupt reads.
type cachedUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Level        int    `json:"level"`
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	data, err := r.client.Get(ctx, cacheKeyBase+id).Bytes()
	if err == nil {
		var cu cachedUser
		if err := json.Unmarshal(data, &cu); err == nil {
			metrics.UserCacheTotal.WithLabelValues("hit").Inc()
			return &domain.User{
				ID:           cu.ID,
				Name:         cu.Name,
				Email:        cu.Email,
				PasswordHash: cu.PasswordHash,
				Level:        cu.Level,
			}, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.log.Debug().Err(err).Str("user_id", id).Msg("user cache read failed")
	}
	metrics.UserCacheTotal.WithLabelValues("miss").Inc()

	user, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.inner.FindByEmail(ctx, email)
}

func (r *CachedUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.inner.FindAll(ctx)
}

func (r *CachedUserRepository) Insert(ctx context.Context, user *domain.User) error {
	return r.inner.Insert(ctx, user)
}

func (r *CachedUserRepository) Update(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	user, err := r.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return user, nil
}

func (r *CachedUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return user, nil
}

func (r *CachedUserRepository) store(ctx context.Context, user *domain.User) {
	data, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Level:        user.Level,
	})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKeyBase+user.ID, data, cacheTTL).Err(); err != nil {
		r.log.Debug().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id string) {
	if err := r.client.Del(ctx, cacheKeyBase+id).Err(); err != nil {
		r.log.Debug().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}
