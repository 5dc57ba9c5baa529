package entity

import "time"

// Identity is what a session remembers about the logged-in user.
type Identity struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	StartedAt time.Time `json:"started_at"`
}
