package repositories

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique-constraint conflict.
// Concurrent find-or-create races surface here and are handled by re-running
// the lookup.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// textArray never passes a NULL for a text[] column declared NOT NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
