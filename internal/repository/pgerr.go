package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Page bounds a list query. A zero Limit means no bound.
type Page struct {
	Limit  int
	Offset int
}

// translateErr maps driver errors onto the domain taxonomy: no rows becomes
// NotFound, a unique violation becomes Conflict with the given message.
func translateErr(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, conflictMsg)
	}
	return err
}
