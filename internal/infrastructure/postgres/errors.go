package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/oksasatya/artwork-marketplace/internal/domain/apperr"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// rejectedValue turns a column type or CHECK failure into ErrValidation. It
// returns nil for every other error.
func rejectedValue(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.NumericValueOutOfRange, pgerrcode.StringDataRightTruncationDataException, pgerrcode.CheckViolation:
		return oops.Code("VALUE_REJECTED").
			With("pg_code", pgErr.Code).
			With("column", pgErr.ColumnName).
			With("constraint", pgErr.ConstraintName).
			Public("Invalid field value").
			Wrap(apperr.ErrValidation)
	}
	return nil
}

// Lock queries used before inserting a row that references users or artworks.
// FOR KEY SHARE keeps the parent from being deleted until the insert commits.
const (
	lockUserSQL    = `SELECT id FROM users WHERE id = $1 FOR KEY SHARE`
	lockArtworkSQL = `SELECT id FROM artworks WHERE id = $1 FOR KEY SHARE`
)
