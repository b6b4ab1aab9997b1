package repository

import (
	"context"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/google/uuid"
)

// Implementations return an error wrapping domain.ErrNotFound when a lookup
// matches nothing, and one wrapping domain.ErrConflict when a write violates
// a uniqueness constraint.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// Upsert inserts profile, or merges its non-nil attributes into the
	// existing row for profile.UserID, in a single atomic write. On return
	// profile holds the full stored row.
	Upsert(ctx context.Context, profile *domain.Profile) error
}

type Repositories struct {
	User    UserRepository
	Profile ProfileRepository
}
