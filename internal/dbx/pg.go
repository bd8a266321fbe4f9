package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres class 23 code for unique constraint errors.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a violated unique
// constraint. Repositories use it to translate schema-level uniqueness (the
// backstop for read-then-write checks) into common.ErrConflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
