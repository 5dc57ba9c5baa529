// Package memory implements the repositories and the session store in process memory.
// It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/oops"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/repository"
)

// Store owns all three collections behind one mutex, so every check-then-write
// sequence is a single critical section.
type Store struct {
	mu sync.RWMutex

	users    map[int64]entity.User
	artworks map[int64]entity.Artwork
	reviews  map[int64]entity.Review

	nextUserID    int64
	nextArtworkID int64
	nextReviewID  int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]entity.User),
		artworks: make(map[int64]entity.Artwork),
		reviews:  make(map[int64]entity.Review),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Artworks() *ArtworkRepository { return &ArtworkRepository{s: s} }
func (s *Store) Reviews() *ReviewRepository   { return &ReviewRepository{s: s} }

// sortedValues returns map values ordered by id, which is insertion order.
func sortedValues[T any](m map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// UserRepository is the memory-backed repository.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return oops.Code("USER_EMAIL_TAKEN").With("email", u.Email).Public("User already exists").Wrap(apperr.ErrDuplicate)
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User", id)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, oops.Code("USER_NOT_FOUND").With("email", email).Wrap(apperr.ErrNotFound)
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.users, nil), nil
}

func (r *UserRepository) Update(_ context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User", id)
	}
	if patch.Email != nil && *patch.Email != u.Email {
		for otherID, other := range r.s.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, oops.Code("USER_EMAIL_TAKEN").With("email", *patch.Email).Public("User already exists").Wrap(apperr.ErrDuplicate)
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.IsArtist != nil {
		u.IsArtist = *patch.IsArtist
	}
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return apperr.NotFound("USER_NOT_FOUND", "User", id)
	}
	delete(r.s.users, id)
	return nil
}

// ArtworkRepository is the memory-backed repository.ArtworkRepository.
type ArtworkRepository struct{ s *Store }

func (r *ArtworkRepository) Create(_ context.Context, a *entity.Artwork) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[a.ArtistID]; !ok {
		return apperr.MissingReference("ARTWORK_ARTIST_MISSING", "artist_id", "Artist", a.ArtistID)
	}
	r.s.nextArtworkID++
	a.ID = r.s.nextArtworkID
	r.s.artworks[a.ID] = *a
	return nil
}

func (r *ArtworkRepository) GetByID(_ context.Context, id int64) (*entity.Artwork, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.artworks[id]
	if !ok {
		return nil, apperr.NotFound("ARTWORK_NOT_FOUND", "Artwork", id)
	}
	return &a, nil
}

func (r *ArtworkRepository) List(_ context.Context) ([]entity.Artwork, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.artworks, nil), nil
}

func (r *ArtworkRepository) ListByArtist(_ context.Context, artistID int64) ([]entity.Artwork, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.artworks, func(a entity.Artwork) bool { return a.ArtistID == artistID }), nil
}

func (r *ArtworkRepository) Update(_ context.Context, id int64, patch entity.ArtworkPatch) (*entity.Artwork, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.artworks[id]
	if !ok {
		return nil, apperr.NotFound("ARTWORK_NOT_FOUND", "Artwork", id)
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Price != nil {
		a.Price = *patch.Price
	}
	r.s.artworks[id] = a
	return &a, nil
}

func (r *ArtworkRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.artworks[id]; !ok {
		return apperr.NotFound("ARTWORK_NOT_FOUND", "Artwork", id)
	}
	delete(r.s.artworks, id)
	return nil
}

// ReviewRepository is the memory-backed repository.ReviewRepository.
type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[rv.UserID]; !ok {
		return apperr.MissingReference("REVIEW_USER_MISSING", "user_id", "User", rv.UserID)
	}
	if _, ok := r.s.artworks[rv.ArtworkID]; !ok {
		return apperr.MissingReference("REVIEW_ARTWORK_MISSING", "artwork_id", "Artwork", rv.ArtworkID)
	}
	r.s.nextReviewID++
	rv.ID = r.s.nextReviewID
	r.s.reviews[rv.ID] = *rv
	return nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id int64) (*entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, apperr.NotFound("REVIEW_NOT_FOUND", "Review", id)
	}
	return &rv, nil
}

func (r *ReviewRepository) List(_ context.Context) ([]entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.reviews, nil), nil
}

func (r *ReviewRepository) ListByArtwork(_ context.Context, artworkID int64) ([]entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.reviews, func(rv entity.Review) bool { return rv.ArtworkID == artworkID }), nil
}

func (r *ReviewRepository) ListByUser(_ context.Context, userID int64) ([]entity.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.reviews, func(rv entity.Review) bool { return rv.UserID == userID }), nil
}

func (r *ReviewRepository) Update(_ context.Context, id int64, patch entity.ReviewPatch) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, apperr.NotFound("REVIEW_NOT_FOUND", "Review", id)
	}
	if patch.Content != nil {
		rv.Content = *patch.Content
	}
	if patch.Rating != nil {
		rv.Rating = *patch.Rating
	}
	r.s.reviews[id] = rv
	return &rv, nil
}

func (r *ReviewRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return apperr.NotFound("REVIEW_NOT_FOUND", "Review", id)
	}
	delete(r.s.reviews, id)
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ArtworkRepository = (*ArtworkRepository)(nil)
	_ repository.ReviewRepository  = (*ReviewRepository)(nil)
)
