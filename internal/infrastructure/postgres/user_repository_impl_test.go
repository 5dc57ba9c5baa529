package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
	"github.com/oksasatya/artwork-marketplace/internal/domain/entity"
)

var userCols = []string{"id", "name", "email", "password", "is_artist"}

func ptr[T any](v T) *T { return &v }

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantID    int64
		wantErr   error
	}{
		{
			name: "inserts when email is free",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ada@x.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ada", "ada@x.com", "hash", false).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
				mock.ExpectCommit()
			},
			wantID: 7,
		},
		{
			name: "duplicate email found by the check",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ada@x.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: apperr.ErrDuplicate,
		},
		{
			name: "duplicate email raced past the check",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ada@x.com").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Ada", "ada@x.com", "hash", false).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
				mock.ExpectRollback()
			},
			wantErr: apperr.ErrDuplicate,
		},
		{
			name: "begin fails",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			u := &entity.User{Name: "Ada", Email: "ada@x.com", Password: "hash"}
			err = repo.Create(context.Background(), u)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, u.ID)
			case errors.Is(tt.wantErr, apperr.ErrDuplicate):
				assert.ErrorIs(t, err, apperr.ErrDuplicate)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, password, is_artist FROM users WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "Ada", "ada@x.com", "hash", true))
	mock.ExpectQuery(`SELECT id, name, email, password, is_artist FROM users WHERE id`).
		WithArgs(int64(999)).
		WillReturnRows(pgxmock.NewRows(userCols))

	repo := NewUserRepository(mock)

	u, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.User{ID: 1, Name: "Ada", Email: "ada@x.com", Password: "hash", IsArtist: true}, *u)

	_, err = repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE email`).
		WithArgs("nobody@x.com").
		WillReturnRows(pgxmock.NewRows(userCols))

	_, err = NewUserRepository(mock).GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      []entity.User
		wantErr   bool
	}{
		{
			name: "returns users in id order",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users ORDER BY id`).
					WillReturnRows(pgxmock.NewRows(userCols).
						AddRow(int64(1), "Ada", "ada@x.com", "h1", false).
						AddRow(int64(2), "Bob", "bob@x.com", "h2", true))
			},
			want: []entity.User{
				{ID: 1, Name: "Ada", Email: "ada@x.com", Password: "h1"},
				{ID: 2, Name: "Bob", Email: "bob@x.com", Password: "h2", IsArtist: true},
			},
		},
		{
			name: "empty table is an empty slice",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users ORDER BY id`).WillReturnRows(pgxmock.NewRows(userCols))
			},
			want: []entity.User{},
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users ORDER BY id`).WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setupMock(mock)

			got, err := NewUserRepository(mock).List(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Update(t *testing.T) {
	t.Run("applies patch", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		name := ptr("Ada L.")
		mock.ExpectQuery(`UPDATE users`).
			WithArgs(int64(1), name, (*string)(nil), (*bool)(nil)).
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "Ada L.", "ada@x.com", "hash", false))

		u, err := NewUserRepository(mock).Update(context.Background(), 1, entity.UserPatch{Name: name})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", u.Name)
		assert.Equal(t, "ada@x.com", u.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`UPDATE users`).
			WithArgs(int64(5), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(userCols))

		_, err = NewUserRepository(mock).Update(context.Background(), 5, entity.UserPatch{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("email collision", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`UPDATE users`).
			WithArgs(int64(2), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err = NewUserRepository(mock).Update(context.Background(), 2, entity.UserPatch{Email: ptr("ada@x.com")})
		assert.ErrorIs(t, err, apperr.ErrDuplicate)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(1)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewUserRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
