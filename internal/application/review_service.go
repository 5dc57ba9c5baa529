package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/event"
	repo "github.com/oksasatya/artwork-marketplace/internal/domain/repository"
)

type ReviewService struct {
	Reviews repo.ReviewRepository
	Logger  *logrus.Logger
	events  emitter
}

func NewReviewService(reviews repo.ReviewRepository, pub EventPublisher, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Logger: logger, events: emitter{pub: pub, logger: logger}}
}

// Create stores a review. Both the author and the artwork must exist. Any integer
// rating is accepted.
func (s *ReviewService) Create(ctx context.Context, rv *entity.Review) error {
	if strings.TrimSpace(rv.Content) == "" {
		return apperr.Validation("content", "Field content cannot be empty")
	}
	if err := s.Reviews.Create(ctx, rv); err != nil {
		return err
	}
	s.events.emit(ctx, event.ReviewCreated, event.ReviewCreatedData{
		ReviewID: rv.ID, UserID: rv.UserID, ArtworkID: rv.ArtworkID, Rating: rv.Rating,
	})
	return nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, id)
}

func (s *ReviewService) List(ctx context.Context) ([]entity.Review, error) {
	return s.Reviews.List(ctx)
}

func (s *ReviewService) Update(ctx context.Context, id int64, patch entity.ReviewPatch) (*entity.Review, error) {
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, apperr.Validation("content", "Field content cannot be empty")
	}
	return s.Reviews.Update(ctx, id, patch)
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.Reviews.Delete(ctx, id)
}
