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

const artworkColumns = `id, title, description, price, artist_id`

type ArtworkRepository struct {
	db querier
	tx *Transactor
}

func NewArtworkRepository(db querier) *ArtworkRepository {
	return &ArtworkRepository{db: db, tx: NewTransactor(db)}
}

func scanArtwork(row pgx.Row) (*entity.Artwork, error) {
	a := &entity.Artwork{}
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Price, &a.ArtistID); err != nil {
		return nil, err
	}
	return a, nil
}

// Create verifies the artist exists and inserts the artwork in one transaction.
func (r *ArtworkRepository) Create(ctx context.Context, a *entity.Artwork) error {
	err := r.tx.InTx(ctx, func(tx pgx.Tx) error {
		var artistID int64
		err := tx.QueryRow(ctx, lockUserSQL, a.ArtistID).Scan(&artistID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.MissingReference("ARTWORK_ARTIST_MISSING", "artist_id", "Artist", a.ArtistID)
		}
		if err != nil {
			return oops.Code("ARTWORK_CREATE_FAILED").With("operation", "lock artist").Wrap(err)
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO artworks (title, description, price, artist_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, a.Title, a.Description, a.Price, a.ArtistID).Scan(&a.ID); err != nil {
			if verr := rejectedValue(err); verr != nil {
				return verr
			}
			return oops.Code("ARTWORK_CREATE_FAILED").With("operation", "insert artwork").Wrap(err)
		}
		return nil
	})
	return err
}

func (r *ArtworkRepository) GetByID(ctx context.Context, id int64) (*entity.Artwork, error) {
	a, err := scanArtwork(r.db.QueryRow(ctx, `SELECT `+artworkColumns+` FROM artworks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ARTWORK_NOT_FOUND", "Artwork", id)
	}
	if err != nil {
		return nil, oops.Code("ARTWORK_GET_FAILED").With("id", id).Wrap(err)
	}
	return a, nil
}

func (r *ArtworkRepository) List(ctx context.Context) ([]entity.Artwork, error) {
	return r.list(ctx, `SELECT `+artworkColumns+` FROM artworks ORDER BY id`)
}

func (r *ArtworkRepository) ListByArtist(ctx context.Context, artistID int64) ([]entity.Artwork, error) {
	return r.list(ctx, `SELECT `+artworkColumns+` FROM artworks WHERE artist_id = $1 ORDER BY id`, artistID)
}

func (r *ArtworkRepository) list(ctx context.Context, sql string, args ...any) ([]entity.Artwork, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.With("operation", "list artworks").Wrap(err)
	}
	defer rows.Close()

	artworks := make([]entity.Artwork, 0)
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, oops.With("operation", "scan artwork row").Wrap(err)
		}
		artworks = append(artworks, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate artworks").Wrap(err)
	}
	return artworks, nil
}

func (r *ArtworkRepository) Update(ctx context.Context, id int64, patch entity.ArtworkPatch) (*entity.Artwork, error) {
	a, err := scanArtwork(r.db.QueryRow(ctx, `
		UPDATE artworks
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price)
		WHERE id = $1
		RETURNING `+artworkColumns,
		id, patch.Title, patch.Description, patch.Price))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ARTWORK_NOT_FOUND", "Artwork", id)
	}
	if verr := rejectedValue(err); verr != nil {
		return nil, verr
	}
	if err != nil {
		return nil, oops.Code("ARTWORK_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	return a, nil
}

func (r *ArtworkRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return oops.Code("ARTWORK_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("ARTWORK_NOT_FOUND", "Artwork", id)
	}
	return nil
}

var _ repository.ArtworkRepository = (*ArtworkRepository)(nil)
