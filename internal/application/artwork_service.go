package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/event"
	repo "github.com/oksasatya/artwork-marketplace/internal/domain/repository"
)

const searchLimit = 20

// ArtworkIndex is a full-text index over artworks. Search returns matching ids, best first.
type ArtworkIndex interface {
	Index(ctx context.Context, a entity.Artwork) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]int64, error)
}

type ArtworkService struct {
	Artworks repo.ArtworkRepository
	Reviews  repo.ReviewRepository
	Index    ArtworkIndex // optional
	Logger   *logrus.Logger
	events   emitter
}

func NewArtworkService(artworks repo.ArtworkRepository, reviews repo.ReviewRepository, index ArtworkIndex, pub EventPublisher, logger *logrus.Logger) *ArtworkService {
	return &ArtworkService{
		Artworks: artworks,
		Reviews:  reviews,
		Index:    index,
		Logger:   logger,
		events:   emitter{pub: pub, logger: logger},
	}
}

func validateArtwork(title *string, price *float64) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return apperr.Validation("title", "Field title cannot be empty")
	}
	if price != nil && *price < 0 {
		return apperr.Validation("price", "Field price must be zero or greater")
	}
	return nil
}

// Create stores a listing. The artist must exist; whether the user is flagged as an
// artist is not checked.
func (s *ArtworkService) Create(ctx context.Context, a *entity.Artwork) error {
	if err := validateArtwork(&a.Title, &a.Price); err != nil {
		return err
	}
	if err := s.Artworks.Create(ctx, a); err != nil {
		return err
	}
	s.reindex(ctx, *a)
	s.events.emit(ctx, event.ArtworkCreated, event.ArtworkCreatedData{
		ArtworkID: a.ID, ArtistID: a.ArtistID, Title: a.Title, Price: a.Price,
	})
	return nil
}

func (s *ArtworkService) Get(ctx context.Context, id int64) (*entity.Artwork, error) {
	return s.Artworks.GetByID(ctx, id)
}

func (s *ArtworkService) List(ctx context.Context) ([]entity.Artwork, error) {
	return s.Artworks.List(ctx)
}

func (s *ArtworkService) Update(ctx context.Context, id int64, patch entity.ArtworkPatch) (*entity.Artwork, error) {
	if err := validateArtwork(patch.Title, patch.Price); err != nil {
		return nil, err
	}
	a, err := s.Artworks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, *a)
	return a, nil
}

func (s *ArtworkService) Delete(ctx context.Context, id int64) error {
	if err := s.Artworks.Delete(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("artwork_id", id).Warn("remove from search index failed")
		}
	}
	return nil
}

// ReviewsOf lists the reviews of one artwork.
func (s *ArtworkService) ReviewsOf(ctx context.Context, id int64) ([]entity.Review, error) {
	if _, err := s.Artworks.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.Reviews.ListByArtwork(ctx, id)
}

// Search matches q against title and description. The index is used when present and
// reachable; otherwise the store is scanned with a case-insensitive substring match.
func (s *ArtworkService) Search(ctx context.Context, q string) ([]entity.Artwork, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.Validation("q", "Missing required field: q")
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, searchLimit)
		if err == nil {
			return s.load(ctx, ids)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("search index unavailable, scanning store")
		}
	}

	all, err := s.Artworks.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]entity.Artwork, 0)
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Title), needle) || strings.Contains(strings.ToLower(a.Description), needle) {
			out = append(out, a)
		}
	}
	return out, nil
}

// load resolves index hits against the store, dropping ids deleted since indexing.
func (s *ArtworkService) load(ctx context.Context, ids []int64) ([]entity.Artwork, error) {
	out := make([]entity.Artwork, 0, len(ids))
	for _, id := range ids {
		a, err := s.Artworks.GetByID(ctx, id)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *ArtworkService) reindex(ctx context.Context, a entity.Artwork) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, a); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("artwork_id", a.ID).Warn("es index failed")
	}
}
