package entity

// Artwork is a listing owned by the user referenced in ArtistID.
type Artwork struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ArtistID    int64   `json:"artist_id"`
}

type ArtworkPatch struct {
	Title       *string
	Description *string
	Price       *float64
}
