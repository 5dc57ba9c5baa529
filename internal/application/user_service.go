package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/event"
	repo "github.com/oksasatya/artwork-marketplace/internal/domain/repository"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

const invalidCredentialsMsg = "Invalid email or password"

type UserService struct {
	Users    repo.UserRepository
	Artworks repo.ArtworkRepository
	Reviews  repo.ReviewRepository
	Sessions repo.SessionStore
	Hasher   helpers.PasswordHasher
	Logger   *logrus.Logger
	events   emitter

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users repo.UserRepository, artworks repo.ArtworkRepository, reviews repo.ReviewRepository, sessions repo.SessionStore, hasher helpers.PasswordHasher, pub EventPublisher, logger *logrus.Logger) *UserService {
	return &UserService{
		Users:    users,
		Artworks: artworks,
		Reviews:  reviews,
		Sessions: sessions,
		Hasher:   hasher,
		Logger:   logger,
		events:   emitter{pub: pub, logger: logger},
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	IsArtist bool
}

// Register creates an account. The lookup by email is a fast path for the common
// duplicate case; the store re-checks inside its transaction.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name", "Field name cannot be empty")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, apperr.Validation("email", "Field email cannot be empty")
	}

	existing, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, oops.Code("USER_EMAIL_TAKEN").With("email", in.Email).Public("User already exists").Wrap(apperr.ErrDuplicate)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, oops.Code("PASSWORD_HASH_FAILED").Wrap(err)
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash, IsArtist: in.IsArtist}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	registrations.Add(1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	s.events.emit(ctx, event.UserRegistered, event.UserRegisteredData{
		UserID: u.ID, Name: u.Name, Email: u.Email, IsArtist: u.IsArtist,
	})
	return u, nil
}

// Login verifies the credentials and binds the user to token. Unknown email and
// wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, token, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		// Unknown emails still pay for one hash comparison.
		s.Hasher.Verify(password, s.placeholderHash())
		return nil, s.rejectLogin(email)
	}
	if err != nil {
		return nil, err
	}
	if !s.Hasher.Verify(password, u.Password) {
		return nil, s.rejectLogin(email)
	}

	id := entity.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, StartedAt: time.Now().UTC()}
	if err := s.Sessions.Start(ctx, token, id); err != nil {
		return nil, err
	}
	logins.Add(1)
	return u, nil
}

// placeholderHash is a hash of a random secret at the hasher's cost. It never
// matches a submitted password.
func (s *UserService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		if h, err := s.Hasher.Hash(uuid.NewString()); err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func (s *UserService) rejectLogin(email string) error {
	failedLogins.Add(1)
	if s.Logger != nil {
		s.Logger.WithField("email", email).Info("login rejected")
	}
	return oops.Code("LOGIN_REJECTED").Public(invalidCredentialsMsg).Wrap(apperr.ErrInvalidCredentials)
}

// Current returns the identity bound to token, or apperr.ErrUnauthenticated.
func (s *UserService) Current(ctx context.Context, token string) (entity.Identity, error) {
	if token == "" {
		return entity.Identity{}, apperr.ErrUnauthenticated
	}
	return s.Sessions.Current(ctx, token)
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperr.Validation("name", "Field name cannot be empty")
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return nil, apperr.Validation("email", "Field email cannot be empty")
	}
	return s.Users.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.Users.Delete(ctx, id)
}

// ArtworksOf lists the artworks whose artist is the given user.
func (s *UserService) ArtworksOf(ctx context.Context, id int64) ([]entity.Artwork, error) {
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.Artworks.ListByArtist(ctx, id)
}

// ReviewsBy lists the reviews written by the given user.
func (s *UserService) ReviewsBy(ctx context.Context, id int64) ([]entity.Review, error) {
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.Reviews.ListByUser(ctx, id)
}
