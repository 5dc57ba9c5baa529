package memory

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/repository"
)

// SessionStore keeps sessions in a sync.Map so each token is updated independently.
type SessionStore struct {
	sessions sync.Map // token -> entity.Identity
}

func NewSessionStore() *SessionStore { return &SessionStore{} }

func (s *SessionStore) Start(_ context.Context, token string, id entity.Identity) error {
	if token == "" {
		return oops.Code("SESSION_TOKEN_EMPTY").Errorf("session token cannot be empty")
	}
	s.sessions.Store(token, id)
	return nil
}

func (s *SessionStore) Current(_ context.Context, token string) (entity.Identity, error) {
	v, ok := s.sessions.Load(token)
	if !ok {
		return entity.Identity{}, apperr.ErrUnauthenticated
	}
	return v.(entity.Identity), nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
