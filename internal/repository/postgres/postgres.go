// Package postgres contains the pgx implementations of the repository
// contracts. One store struct per table, all sharing the pgxpool.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
