package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/application"
	"github.com/oksasatya/artwork-marketplace/internal/container"
	repo "github.com/oksasatya/artwork-marketplace/internal/domain/repository"
	"github.com/oksasatya/artwork-marketplace/internal/infrastructure/search"
	handlers "github.com/oksasatya/artwork-marketplace/internal/interface/http"
	"github.com/oksasatya/artwork-marketplace/internal/interface/middleware"
	"github.com/oksasatya/artwork-marketplace/internal/router/modules"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

// Deps is everything the HTTP modules need. Index and Events are optional.
type Deps struct {
	Users        repo.UserRepository
	Artworks     repo.ArtworkRepository
	Reviews      repo.ReviewRepository
	Sessions     repo.SessionStore
	Hasher       helpers.PasswordHasher
	Cookies      *helpers.Manager
	Index        application.ArtworkIndex
	Events       application.EventPublisher
	Logger       *logrus.Logger
	DebugMetrics bool
}

func depsFromContainer() Deps {
	cfg := container.GetConfig()
	users, artworks, reviews := container.GetRepositories()
	d := Deps{
		Users:        users,
		Artworks:     artworks,
		Reviews:      reviews,
		Sessions:     container.GetSessions(),
		Hasher:       helpers.NewBcryptHasher(cfg.BcryptCost),
		Cookies:      helpers.NewCookie(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SessionTTL),
		Logger:       container.GetLogger(),
		DebugMetrics: cfg.DebugMetricsEnabled,
	}
	// Assign only non-nil pointers so the optional interfaces stay nil when unset.
	if es := container.GetES(); es != nil {
		d.Index = search.NewArtworkIndex(es, cfg.ESArtworksIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		d.Events = pub
	}
	return d
}

var _ middleware.IdentityResolver = (*application.UserService)(nil)

// Mount builds services and handlers from d and adds their modules to r.
func Mount(r *Registry, d Deps) {
	userSvc := application.NewUserService(d.Users, d.Artworks, d.Reviews, d.Sessions, d.Hasher, d.Events, d.Logger)
	artworkSvc := application.NewArtworkService(d.Artworks, d.Reviews, d.Index, d.Events, d.Logger)
	reviewSvc := application.NewReviewService(d.Reviews, d.Events, d.Logger)

	r.Use(middleware.RequireJSON())
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(userSvc, d.Cookies, d.Logger),
		middleware.Session(userSvc, d.Cookies),
	))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger)))
	r.Add(modules.NewArtworkModule(handlers.NewArtworkHandler(artworkSvc, d.Logger)))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc, d.Logger)))
	if d.DebugMetrics {
		r.Add(modules.NewDebugModule("artmarket_"))
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	Mount(r, depsFromContainer())
}
