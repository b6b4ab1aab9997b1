// Package memory implements the repository interfaces on top of maps. It
// enforces the same uniqueness, foreign key and merge rules as the Postgres
// schema and is used for tests and for running the server without a database.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/dom/aura-backend/internal/repository"
	"github.com/google/uuid"
)

func NewRepositories() *repository.Repositories {
	users := NewUserRepository()
	return &repository.Repositories{
		User:    users,
		Profile: NewProfileRepository(users),
	}
}

// UserRepository stores users keyed by id with a unique email index.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("%w: users_email_key violated", domain.ErrConflict)
	}
	if _, ok := r.byID[user.ID]; ok {
		return fmt.Errorf("%w: users_pkey violated", domain.ErrConflict)
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	out := *user
	return &out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user by email: %w", domain.ErrNotFound)
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *UserRepository) exists(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

type profileRepository struct {
	mu       sync.Mutex
	users    *UserRepository
	byUserID map[uuid.UUID]*domain.Profile
}

// NewProfileRepository returns a profile store whose rows must belong to a
// user in users.
func NewProfileRepository(users *UserRepository) *profileRepository {
	return &profileRepository{users: users, byUserID: make(map[uuid.UUID]*domain.Profile)}
}

func (r *profileRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return nil, fmt.Errorf("profile for user %s: %w", userID, domain.ErrNotFound)
	}
	return cloneProfile(p), nil
}

func (r *profileRepository) Upsert(_ context.Context, profile *domain.Profile) error {
	if !r.users.exists(profile.UserID) {
		return fmt.Errorf("%w: profiles_user_id_fkey violated", domain.ErrNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	existing, ok := r.byUserID[profile.UserID]
	if !ok {
		stored := cloneProfile(profile)
		stored.CreatedAt = now
		stored.UpdatedAt = now
		r.byUserID[profile.UserID] = stored
		*profile = *cloneProfile(stored)
		return nil
	}

	existing.Merge(cloneProfile(profile))
	existing.UpdatedAt = now
	*profile = *cloneProfile(existing)
	return nil
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	out := *p
	out.Name = clonePtr(p.Name)
	out.Age = clonePtr(p.Age)
	out.Gender = clonePtr(p.Gender)
	out.City = clonePtr(p.City)
	out.Lifestyle = clonePtr(p.Lifestyle)
	out.VataScore = clonePtr(p.VataScore)
	out.PittaScore = clonePtr(p.PittaScore)
	out.KaphaScore = clonePtr(p.KaphaScore)
	out.DominantDosha = clonePtr(p.DominantDosha)
	out.User = nil
	return &out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
