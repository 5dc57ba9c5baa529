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

const userColumns = `id, name, email, password, is_artist`

type UserRepository struct {
	db querier
	tx *Transactor
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db, tx: NewTransactor(db)}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsArtist); err != nil {
		return nil, err
	}
	return u, nil
}

// Create checks the email and inserts in one transaction. The unique index on
// email backs the check when two transactions race.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	err := r.tx.InTx(ctx, func(tx pgx.Tx) error {
		var taken bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, u.Email).Scan(&taken); err != nil {
			return oops.Code("USER_CREATE_FAILED").With("operation", "check email").Wrap(err)
		}
		if taken {
			return oops.Code("USER_EMAIL_TAKEN").With("email", u.Email).Public("User already exists").Wrap(apperr.ErrDuplicate)
		}
		return tx.QueryRow(ctx, `
			INSERT INTO users (name, email, password, is_artist)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.Name, u.Email, u.Password, u.IsArtist).Scan(&u.ID)
	})
	if isUniqueViolation(err) {
		return oops.Code("USER_EMAIL_TAKEN").With("email", u.Email).Public("User already exists").Wrap(apperr.ErrDuplicate)
	}
	if verr := rejectedValue(err); verr != nil {
		return verr
	}
	if err != nil && !errors.Is(err, apperr.ErrDuplicate) {
		return oops.Code("USER_CREATE_FAILED").With("email", u.Email).Wrap(err)
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User", id)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").With("id", id).Wrap(err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").With("email", email).Wrap(apperr.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").With("email", email).Wrap(err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, oops.With("operation", "list users").Wrap(err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, oops.With("operation", "scan user row").Wrap(err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate users").Wrap(err)
	}
	return users, nil
}

// Update applies the non-nil fields of patch in one statement.
func (r *UserRepository) Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    is_artist = COALESCE($4, is_artist)
		WHERE id = $1
		RETURNING `+userColumns,
		id, patch.Name, patch.Email, patch.IsArtist))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, apperr.NotFound("USER_NOT_FOUND", "User", id)
	case isUniqueViolation(err):
		return nil, oops.Code("USER_EMAIL_TAKEN").With("id", id).Public("User already exists").Wrap(apperr.ErrDuplicate)
	case rejectedValue(err) != nil:
		return nil, rejectedValue(err)
	case err != nil:
		return nil, oops.Code("USER_UPDATE_FAILED").With("id", id).Wrap(err)
	}
	return u, nil
}

// Delete removes the user only; artworks and reviews keep their artist_id/user_id.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return oops.Code("USER_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("USER_NOT_FOUND", "User", id)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
