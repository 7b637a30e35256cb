package dataset

import "strings"

// FallbackProfile is the label for sections that exceed none of the
// profiling thresholds.
const FallbackProfile = "Perfil Mixto / Promedio"

// Thresholds holds the municipal 70th-percentile cutoffs for the five
// profiling attributes. Computed once per dataset load, read-only after.
type Thresholds struct {
	Jovenes        float64
	Migrantes      float64
	Escolaridad    float64
	AdultosMayores float64
	Digitalizacion float64
}

// ComputeThresholds derives the profiling cutoffs from the full section
// set: the 70th percentile of each attribute across the municipality.
func ComputeThresholds(sections []Section) Thresholds {
	collect := func(get func(*Section) float64) []float64 {
		values := make([]float64, len(sections))
		for i := range sections {
			values[i] = get(&sections[i])
		}
		return values
	}

	return Thresholds{
		Jovenes:        Percentile(collect(func(s *Section) float64 { return s.PorcJovenes }), 0.70),
		Migrantes:      Percentile(collect(func(s *Section) float64 { return s.PorcPoblacionMigrante }), 0.70),
		Escolaridad:    Percentile(collect(func(s *Section) float64 { return s.Escolaridad }), 0.70),
		AdultosMayores: Percentile(collect(func(s *Section) float64 { return s.PorcAdultosMayores }), 0.70),
		Digitalizacion: Percentile(collect(func(s *Section) float64 { return s.IndiceDigitalizacion }), 0.70),
	}
}

// ClassifyProfile builds the descriptive profile label for one section.
// Attributes are checked in a fixed order and included when the value
// strictly exceeds its threshold; the order is part of the label contract.
func ClassifyProfile(s *Section, th Thresholds) string {
	var parts []string
	if s.PorcJovenes > th.Jovenes {
		parts = append(parts, "Jóvenes")
	}
	if s.PorcPoblacionMigrante > th.Migrantes {
		parts = append(parts, "Migrantes")
	}
	if s.Escolaridad > th.Escolaridad {
		parts = append(parts, "Alta Escolaridad")
	}
	if s.PorcAdultosMayores > th.AdultosMayores {
		parts = append(parts, "Adultos Mayores")
	}
	if s.IndiceDigitalizacion > th.Digitalizacion {
		parts = append(parts, "Alta Digitalización")
	}
	if len(parts) == 0 {
		return FallbackProfile
	}
	return "Predominantemente " + strings.Join(parts, ", ")
}
