// Package event defines the domain events published after successful writes.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	UserRegistered Type = "user.registered"
	ArtworkCreated Type = "artwork.created"
	ReviewCreated  Type = "review.created"
)

// Envelope is the message body put on the queue.
type Envelope struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

func New(typ Type, data any) (Envelope, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Data:       b,
	}, nil
}

// Decode unmarshals the payload into dest.
func (e Envelope) Decode(dest any) error {
	return json.Unmarshal(e.Data, dest)
}

type UserRegisteredData struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsArtist bool   `json:"is_artist"`
}

type ArtworkCreatedData struct {
	ArtworkID int64   `json:"artwork_id"`
	ArtistID  int64   `json:"artist_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
}

type ReviewCreatedData struct {
	ReviewID  int64 `json:"review_id"`
	UserID    int64 `json:"user_id"`
	ArtworkID int64 `json:"artwork_id"`
	Rating    int   `json:"rating"`
}
