package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/config"
	"github.com/oksasatya/artwork-marketplace/internal/application"
	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/artwork-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

// seed inserts a demo artist, collector, artwork and review through the
// application services. Running it twice reuses the existing accounts.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	store := pginfra.NewStore(pool)
	users := application.NewUserService(store.Users, store.Artworks, store.Reviews, memory.NewSessionStore(),
		helpers.NewBcryptHasher(cfg.BcryptCost), nil, logger)
	artworks := application.NewArtworkService(store.Artworks, store.Reviews, nil, nil, logger)
	reviews := application.NewReviewService(store.Reviews, nil, logger)

	artist := ensureUser(ctx, users, application.RegisterInput{
		Name: "Demo Artist", Email: "artist@example.com", Password: "password123", IsArtist: true,
	})
	collector := ensureUser(ctx, users, application.RegisterInput{
		Name: "Demo Collector", Email: "collector@example.com", Password: "password123",
	})

	owned, err := users.ArtworksOf(ctx, artist.ID)
	if err != nil {
		log.Fatalf("failed to list artworks: %v", err)
	}
	if len(owned) > 0 {
		helpers.LogInfo(logger, "artworks already seeded", logrus.Fields{"artist_id": artist.ID, "count": len(owned)})
		return
	}

	art := &entity.Artwork{
		Title:       "Harbour at Dawn",
		Description: "Oil on canvas, 60x80cm",
		Price:       1250,
		ArtistID:    artist.ID,
	}
	if err := artworks.Create(ctx, art); err != nil {
		log.Fatalf("failed to seed artwork: %v", err)
	}
	rv := &entity.Review{Content: "The light on the water is wonderful.", Rating: 5, UserID: collector.ID, ArtworkID: art.ID}
	if err := reviews.Create(ctx, rv); err != nil {
		log.Fatalf("failed to seed review: %v", err)
	}
	helpers.LogInfo(logger, "seeded", logrus.Fields{
		"artist_id":    artist.ID,
		"collector_id": collector.ID,
		"artwork_id":   art.ID,
		"review_id":    rv.ID,
	})
}

func ensureUser(ctx context.Context, svc *application.UserService, in application.RegisterInput) *entity.User {
	u, err := svc.Register(ctx, in)
	if errors.Is(err, apperr.ErrDuplicate) {
		u, err = svc.Users.GetByEmail(ctx, in.Email)
	}
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", in.Email, err)
	}
	return u
}
