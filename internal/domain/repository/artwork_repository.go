package repository

import (
	"context"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
)

// ArtworkRepository stores artworks. Create fails with apperr.ErrReference when
// ArtistID does not name an existing user. Delete never cascades to reviews.
type ArtworkRepository interface {
	Create(ctx context.Context, a *entity.Artwork) error
	GetByID(ctx context.Context, id int64) (*entity.Artwork, error)
	List(ctx context.Context) ([]entity.Artwork, error)
	ListByArtist(ctx context.Context, artistID int64) ([]entity.Artwork, error)
	Update(ctx context.Context, id int64, patch entity.ArtworkPatch) (*entity.Artwork, error)
	Delete(ctx context.Context, id int64) error
}
