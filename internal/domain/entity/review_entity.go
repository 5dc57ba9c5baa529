package entity

// Review is a user's rating of an artwork. Rating is not range checked.
type Review struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	UserID    int64  `json:"user_id"`
	ArtworkID int64  `json:"artwork_id"`
}

type ReviewPatch struct {
	Content *string
	Rating  *int
}
