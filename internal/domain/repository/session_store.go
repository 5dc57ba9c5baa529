package repository

import (
	"context"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
)

// SessionStore maps a client-context token to the identity that logged in with it.
// Start overwrites any identity already bound to token. Current returns
// apperr.ErrUnauthenticated when nothing is bound.
type SessionStore interface {
	Start(ctx context.Context, token string, id entity.Identity) error
	Current(ctx context.Context, token string) (entity.Identity, error)
}
