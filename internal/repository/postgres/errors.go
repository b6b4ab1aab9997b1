package postgres

import (
	"errors"
	"fmt"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// translateError maps driver errors onto the domain error classes so callers
// never need to know about gorm or pgx.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s violated", domain.ErrConflict, pgErr.ConstraintName)
		case foreignKeyViolation:
			// The referenced row is gone, e.g. a profile write for a deleted user.
			return fmt.Errorf("%w: %s violated", domain.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}
