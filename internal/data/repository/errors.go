package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUniqueViolation wraps SQLSTATE 23505.
	ErrUniqueViolation = errors.New("unique constraint violated")
	// ErrIntegrityViolation wraps every other SQLSTATE class 23 error
	// (foreign key, check, not null).
	ErrIntegrityViolation = errors.New("integrity constraint violated")
)

const (
	pgUniqueViolation = "23505"
	pgIntegrityClass  = "23"
)

// classify tags constraint failures so callers can use errors.Is.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgUniqueViolation:
		return fmt.Errorf("%w (%s): %w", ErrUniqueViolation, pgErr.ConstraintName, err)
	case strings.HasPrefix(pgErr.Code, pgIntegrityClass):
		return fmt.Errorf("%w (%s): %w", ErrIntegrityViolation, pgErr.ConstraintName, err)
	}
	return err
}
