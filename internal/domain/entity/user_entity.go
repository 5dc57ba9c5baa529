package entity

// User is an account on the marketplace. Artists are users with IsArtist set.
// Password holds the bcrypt hash and never leaves the service layer.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsArtist bool   `json:"is_artist"`
}

// PublicUser is the outward representation of a User.
type PublicUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsArtist bool   `json:"is_artist"`
}

// Public strips the credential from u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, IsArtist: u.IsArtist}
}

// UserPatch lists the user fields a partial update may change; nil means keep.
type UserPatch struct {
	Name     *string
	Email    *string
	IsArtist *bool
}
