// Package redisstore keeps login sessions in Redis so they survive restarts
// and are shared between API replicas.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/repository"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

const keyPrefix = "artmarket:session:"

type SessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewSessionStore returns a store whose sessions expire after ttl. A ttl of
// zero keeps sessions until Redis evicts them.
func NewSessionStore(rdb redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func key(token string) string { return keyPrefix + token }

func (s *SessionStore) Start(ctx context.Context, token string, id entity.Identity) error {
	if token == "" {
		return oops.Code("SESSION_TOKEN_EMPTY").Errorf("session token cannot be empty")
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, key(token), id, s.ttl); err != nil {
		return oops.Code("SESSION_START_FAILED").With("user_id", id.UserID).Wrap(err)
	}
	return nil
}

func (s *SessionStore) Current(ctx context.Context, token string) (entity.Identity, error) {
	if token == "" {
		return entity.Identity{}, apperr.ErrUnauthenticated
	}
	id, ok, err := helpers.RedisGetJSON[entity.Identity](ctx, s.rdb, key(token))
	if err != nil {
		return entity.Identity{}, oops.Code("SESSION_LOOKUP_FAILED").Wrap(err)
	}
	if !ok {
		return entity.Identity{}, apperr.ErrUnauthenticated
	}
	return id, nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
