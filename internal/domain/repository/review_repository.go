package repository

import (
	"context"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
)

// ReviewRepository stores reviews. Create checks both UserID and ArtworkID.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	List(ctx context.Context) ([]entity.Review, error)
	ListByArtwork(ctx context.Context, artworkID int64) ([]entity.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Review, error)
	Update(ctx context.Context, id int64, patch entity.ReviewPatch) (*entity.Review, error)
	Delete(ctx context.Context, id int64) error
}
