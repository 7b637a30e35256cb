package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeThresholds(t *testing.T) {
	// Ten records; the 70th percentile of porc_jovenes lands exactly on
	// the tied order statistics and evaluates to 22.0.
	youth := []float64{10, 11, 12, 13, 14, 15, 22, 22, 25, 30}
	sections := make([]Section, len(youth))
	for i, y := range youth {
		sections[i] = Section{PorcJovenes: y}
	}

	th := ComputeThresholds(sections)
	assert.InDelta(t, 22.0, th.Jovenes, 1e-9)

	// Recomputing over the same table is reproducible.
	assert.Equal(t, th, ComputeThresholds(sections))
}

func TestClassifyProfile(t *testing.T) {
	th := Thresholds{
		Jovenes:        22,
		Migrantes:      15,
		Escolaridad:    9.5,
		AdultosMayores: 12,
		Digitalizacion: 60,
	}

	tests := []struct {
		name    string
		section Section
		want    string
	}{
		{
			name:    "AllBelow",
			section: Section{PorcJovenes: 10, PorcPoblacionMigrante: 5, Escolaridad: 7, PorcAdultosMayores: 8, IndiceDigitalizacion: 40},
			want:    FallbackProfile,
		},
		{
			name:    "OnlyYouth",
			section: Section{PorcJovenes: 25, PorcPoblacionMigrante: 5, Escolaridad: 7, PorcAdultosMayores: 8, IndiceDigitalizacion: 40},
			want:    "Predominantemente Jóvenes",
		},
		{
			name:    "EqualDoesNotCount",
			section: Section{PorcJovenes: 22, PorcPoblacionMigrante: 15, Escolaridad: 9.5, PorcAdultosMayores: 12, IndiceDigitalizacion: 60},
			want:    FallbackProfile,
		},
		{
			name:    "FixedOrder",
			section: Section{PorcJovenes: 30, PorcPoblacionMigrante: 20, Escolaridad: 11, PorcAdultosMayores: 15, IndiceDigitalizacion: 90},
			want:    "Predominantemente Jóvenes, Migrantes, Alta Escolaridad, Adultos Mayores, Alta Digitalización",
		},
		{
			name:    "SchoolingAndDigital",
			section: Section{PorcJovenes: 10, PorcPoblacionMigrante: 5, Escolaridad: 12, PorcAdultosMayores: 8, IndiceDigitalizacion: 80},
			want:    "Predominantemente Alta Escolaridad, Alta Digitalización",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProfile(&tt.section, th)
			assert.Equal(t, tt.want, got)
			// Deterministic: same record, same thresholds, same label.
			assert.Equal(t, got, ClassifyProfile(&tt.section, th))
		})
	}
}
