package repository

import (
	"context"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create assigns u.ID and fails with apperr.ErrDuplicate when the email is taken;
// the uniqueness check and the insert are a single transaction.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
