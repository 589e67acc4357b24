package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"kakasaku_backend/internal/domain"
)

const uniqueViolation = "23505"

// translate maps driver-level failures onto the domain error taxonomy so
// handlers never inspect SQLSTATEs themselves.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}
