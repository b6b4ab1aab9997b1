package domain_test

import (
	"testing"

	"github.com/dom/aura-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDominantDosha(t *testing.T) {
	tests := []struct {
		name               string
		vata, pitta, kapha float64
		want               domain.Dosha
	}{
		{name: "vata highest", vata: 70, pitta: 20, kapha: 10, want: domain.DoshaVata},
		{name: "pitta highest", vata: 10, pitta: 60, kapha: 30, want: domain.DoshaPitta},
		{name: "kapha highest", vata: 10, pitta: 20, kapha: 70, want: domain.DoshaKapha},
		{name: "vata pitta tie", vata: 50, pitta: 50, kapha: 10, want: domain.DoshaVata},
		{name: "vata kapha tie", vata: 45, pitta: 10, kapha: 45, want: domain.DoshaVata},
		{name: "pitta kapha tie", vata: 10, pitta: 45, kapha: 45, want: domain.DoshaPitta},
		{name: "three way tie", vata: 33, pitta: 33, kapha: 33, want: domain.DoshaVata},
		{name: "all zero", want: domain.DoshaVata},
		{name: "negative scores", vata: -5, pitta: -1, kapha: -3, want: domain.DoshaPitta},
		{name: "fractional difference", vata: 33.3, pitta: 33.4, kapha: 33.3, want: domain.DoshaPitta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DominantDosha(tt.vata, tt.pitta, tt.kapha))
		})
	}
}

func TestProfile_Merge(t *testing.T) {
	age := 30
	city := "Pune"
	delhi := "Delhi"
	pitta := domain.DoshaPitta

	p := &domain.Profile{Age: &age, City: &city, DominantDosha: &pitta}
	p.Merge(&domain.Profile{City: &delhi})

	if assert.NotNil(t, p.Age) {
		assert.Equal(t, 30, *p.Age)
	}
	if assert.NotNil(t, p.City) {
		assert.Equal(t, "Delhi", *p.City)
	}
	if assert.NotNil(t, p.DominantDosha) {
		assert.Equal(t, domain.DoshaPitta, *p.DominantDosha)
	}
	assert.Nil(t, p.Name)
	assert.Nil(t, p.VataScore)
}
