package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
	"github.com/oksasatya/artwork-marketplace/internal/domain/repository"
)

const reviewColumns = `id, content, rating, user_id, artwork_id`

type ReviewRepository struct {
	db querier
	tx *Transactor
}

func NewReviewRepository(db querier) *ReviewRepository {
	return &ReviewRepository{db: db, tx: NewTransactor(db)}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	rv := &entity.Review{}
	if err := row.Scan(&rv.ID, &rv.Content, &rv.Rating, &rv.UserID, &rv.ArtworkID); err != nil {
		return nil, err
	}
	return rv, nil
}

// Create verifies the author and the artwork exist, then inserts, in one transaction.
func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	return r.tx.InTx(ctx, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, lockUserSQL, rv.UserID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.MissingReference("REVIEW_USER_MISSING", "user_id", "User", rv.UserID)
		}
		if err != nil {
			return oops.Code("REVIEW_CREATE_FAILED").With("operation", "lock user").Wrap(err)
		}
		err = tx.QueryRow(ctx, lockArtworkSQL, rv.ArtworkID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.MissingReference("REVIEW_ARTWORK_MISSING", "artwork_id", "Artwork", rv.ArtworkID)
		}
		if err != nil {
			return oops.Code("REVIEW_CREATE_FAILED").With("operation", "lock artwork").Wrap(err)
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO reviews (content, rating, user_id, artwork_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, rv.Content, rv.Rating, rv.UserID, rv.ArtworkID).Scan(&rv.ID); err != nil {
			if verr := rejectedValue(err); verr != nil {
				return verr
			}
			return oops.Code("REVIEW_CREATE_FAILED").With("operation", "insert review").Wrap(err)
		}
		return nil
	})
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("REVIEW_NOT_FOUND", "Review", id)
	}
	if err != nil {
		return nil, oops.Code("REVIEW_GET_FAILED").With("id", id).Wrap(err)
	}
	return rv, nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]entity.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
}

func (r *ReviewRepository) ListByArtwork(ctx context.Context, artworkID int64) ([]entity.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE artwork_id = $1 ORDER BY id`, artworkID)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *ReviewRepository) list(ctx context.Context, sql string, args ...any) ([]entity.Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.With("operation", "list reviews").Wrap(err)
	}
	defer rows.Close()

	reviews := make([]entity.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, oops.With("operation", "scan review row").Wrap(err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate reviews").Wrap(err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id int64, patch entity.ReviewPatch) (*entity.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, `
		UPDATE reviews
		SET content = COALESCE($2, content),
		    rating = COALESCE($3, rating)
		WHERE id = $1
		RETURNING `+reviewColumns,
		id, patch.Content, patch.Rating))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("REVIEW_NOT_FOUND", "Review", id)
	}
	if verr := rejectedValue(err); verr != nil {
		return nil, verr
	}
	if err != nil {
		return nil, oops.Code("REVIEW_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	return rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return oops.Code("REVIEW_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("REVIEW_NOT_FOUND", "Review", id)
	}
	return nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
