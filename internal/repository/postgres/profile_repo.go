package postgres

import (
	"context"
	"fmt"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileMergeColumns are coalesced on conflict: a NULL in the incoming row
// keeps the stored value.
var profileMergeColumns = []string{
	"name",
	"age",
	"gender",
	"city",
	"lifestyle",
	"vata_score",
	"pitta_score",
	"kapha_score",
	"dominant_dosha",
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

// Upsert runs a single INSERT ... ON CONFLICT (user_id) DO UPDATE, so
// concurrent writers for the same user serialize on the row lock and the
// later statement wins for the columns it sets.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	table := domain.Profile{}.TableName()

	assignments := make(clause.Set, 0, len(profileMergeColumns)+1)
	for _, col := range profileMergeColumns {
		assignments = append(assignments, clause.Assignment{
			Column: clause.Column{Name: col},
			Value:  gorm.Expr(fmt.Sprintf("COALESCE(EXCLUDED.%s, %s.%s)", col, table, col)),
		})
	}
	assignments = append(assignments, clause.Assignment{
		Column: clause.Column{Name: "updated_at"},
		Value:  gorm.Expr("CURRENT_TIMESTAMP"),
	})

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: assignments,
			},
			clause.Returning{},
		).
		Create(profile).Error
	return translateError(err)
}
