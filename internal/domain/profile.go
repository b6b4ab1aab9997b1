package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dosha is one of the three constitution traits scored during onboarding.
type Dosha string

const (
	DoshaVata  Dosha = "vata"
	DoshaPitta Dosha = "pitta"
	DoshaKapha Dosha = "kapha"
)

// DoshaPriority is the order used to break exact ties between scores.
var DoshaPriority = []Dosha{DoshaVata, DoshaPitta, DoshaKapha}

func (d Dosha) String() string {
	return string(d)
}

// DominantDosha returns the dosha with the highest score. On an exact tie the
// dosha that comes first in DoshaPriority wins.
func DominantDosha(vata, pitta, kapha float64) Dosha {
	scores := [...]float64{vata, pitta, kapha}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return DoshaPriority[best]
}

// Profile holds the onboarding answers for a user. Every attribute is
// optional; nil means "never provided".
type Profile struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name          *string   `json:"name"`
	Age           *int      `json:"age"`
	Gender        *string   `json:"gender"`
	City          *string   `json:"city"`
	Lifestyle     *string   `json:"lifestyle"`
	VataScore     *float64  `json:"vata_score"`
	PittaScore    *float64  `json:"pitta_score"`
	KaphaScore    *float64  `json:"kapha_score"`
	DominantDosha *Dosha    `json:"dominant_dosha" gorm:"type:varchar(16)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Merge copies every non-nil attribute of update onto p. Attributes that are
// nil in update keep their current value.
func (p *Profile) Merge(update *Profile) {
	p.Name = coalesce(update.Name, p.Name)
	p.Age = coalesce(update.Age, p.Age)
	p.Gender = coalesce(update.Gender, p.Gender)
	p.City = coalesce(update.City, p.City)
	p.Lifestyle = coalesce(update.Lifestyle, p.Lifestyle)
	p.VataScore = coalesce(update.VataScore, p.VataScore)
	p.PittaScore = coalesce(update.PittaScore, p.PittaScore)
	p.KaphaScore = coalesce(update.KaphaScore, p.KaphaScore)
	p.DominantDosha = coalesce(update.DominantDosha, p.DominantDosha)
}

func coalesce[T any](v, fallback *T) *T {
	if v != nil {
		return v
	}
	return fallback
}
