package application

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/event"
	"github.com/oksasatya/artwork-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Envelope
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, body.(event.Envelope))
	return nil
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store    *memory.Store
	sessions *memory.SessionStore
	pub      *recordingPublisher
	users    *UserService
	artworks *ArtworkService
	reviews  *ReviewService
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newFixture(t *testing.T, index ArtworkIndex) *fixture {
	t.Helper()
	store := memory.NewStore()
	sessions := memory.NewSessionStore()
	pub := &recordingPublisher{}
	log := quietLogger()
	return &fixture{
		store:    store,
		sessions: sessions,
		pub:      pub,
		users:    NewUserService(store.Users(), store.Artworks(), store.Reviews(), sessions, helpers.NewBcryptHasher(bcrypt.MinCost), pub, log),
		artworks: NewArtworkService(store.Artworks(), store.Reviews(), index, pub, log),
		reviews:  NewReviewService(store.Reviews(), pub, log),
	}
}

func (f *fixture) register(t *testing.T, name, email string, artist bool) *entity.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret", IsArtist: artist})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
