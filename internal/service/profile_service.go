package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/repository"
	"github.com/google/uuid"
)

var ErrProfileNotFound = fmt.Errorf("%w: profile not found", domain.ErrNotFound)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	log         *logger.Logger
}

func NewProfileService(profileRepo repository.ProfileRepository, log *logger.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		log:         log.With("service", "ProfileService"),
	}
}

// UpsertProfileInput carries a partial profile. A nil field means "not
// provided" and leaves the stored value alone. Values are stored as given;
// no range checks are applied.
type UpsertProfileInput struct {
	Name       *string
	Age        *int
	Gender     *string
	City       *string
	Lifestyle  *string
	VataScore  *float64
	PittaScore *float64
	KaphaScore *float64
}

// HasAllScores reports whether the input carries all three dosha scores.
func (in UpsertProfileInput) HasAllScores() bool {
	return in.VataScore != nil && in.PittaScore != nil && in.KaphaScore != nil
}

// GetProfile returns the stored profile of a user
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile creates the user's profile or merges input into it. The
// dominant dosha is recomputed only when all three scores arrive together;
// otherwise the stored label is kept. ErrUserNotFound means the account no
// longer exists.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, input UpsertProfileInput) (*domain.Profile, error) {
	profile := &domain.Profile{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       input.Name,
		Age:        input.Age,
		Gender:     input.Gender,
		City:       input.City,
		Lifestyle:  input.Lifestyle,
		VataScore:  input.VataScore,
		PittaScore: input.PittaScore,
		KaphaScore: input.KaphaScore,
	}

	if input.HasAllScores() {
		dominant := domain.DominantDosha(*input.VataScore, *input.PittaScore, *input.KaphaScore)
		profile.DominantDosha = &dominant
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	s.log.Debug("profile saved", "user_id", userID, "scores", input.HasAllScores())
	return profile, nil
}
