package dataset

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Table is the enriched dataset for one load: all sections with derived
// fields filled in, plus the threshold set they were classified with.
// A Table is immutable after the loader returns it; every consumer (map,
// baselines, agent materialization, detail panel) reads it concurrently.
type Table struct {
	Sections   []Section
	Thresholds Thresholds

	path  string
	stale atomic.Bool

	baselineOnce sync.Once
	baselines    Baselines
}

// Baselines holds the municipality-wide mean of each indicator, used as
// the comparison baseline in the detail panel. Always computed over the
// full table, never over a filtered view.
type Baselines struct {
	TasaParticipacion     float64 `json:"tasa_participacion_promedio"`
	PctVotoMorena         float64 `json:"pct_voto_morena"`
	PctVotoOposicion      float64 `json:"pct_voto_oposicion"`
	IndiceCompetitividad  float64 `json:"indice_competitividad"`
	Escolaridad           float64 `json:"graproes"`
	IndiceDigitalizacion  float64 `json:"indice_digitalizacion"`
	PorcJovenes           float64 `json:"porc_jovenes"`
	PorcAdultosMayores    float64 `json:"porc_adultos_mayores"`
	PorcPoblacionMigrante float64 `json:"porc_poblacion_migrante"`
	PorcHogaresJefaMujer  float64 `json:"porc_hogares_jefa_mujer"`
	TasaDesocupacion      float64 `json:"tasa_desocupacion"`
	PorcSinServiciosSalud float64 `json:"porc_sin_servicios_salud"`
}

// Len returns the number of sections.
func (t *Table) Len() int { return len(t.Sections) }

// Path returns the file the table was loaded from.
func (t *Table) Path() string { return t.path }

// MarkStale records that the backing file changed on disk after load.
// The in-memory table is never invalidated; the flag is surfaced so
// operators know a restart would pick up new data.
func (t *Table) MarkStale() { t.stale.Store(true) }

// Stale reports whether the backing file changed since load.
func (t *Table) Stale() bool { return t.stale.Load() }

// ByID finds a section by its identifier.
func (t *Table) ByID(id string) (*Section, bool) {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i], true
		}
	}
	return nil, false
}

// FilterByProfile returns the sections whose profile label equals perfil.
// An empty perfil is the "show all" sentinel and returns every section.
func (t *Table) FilterByProfile(perfil string) []Section {
	if perfil == "" {
		return t.Sections
	}
	var out []Section
	for _, s := range t.Sections {
		if s.Perfil == perfil {
			out = append(out, s)
		}
	}
	return out
}

// Profiles returns the distinct profile labels, sorted.
func (t *Table) Profiles() []string {
	seen := make(map[string]struct{})
	for _, s := range t.Sections {
		seen[s.Perfil] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Baselines computes (once) and returns the municipal baseline set.
func (t *Table) Baselines() Baselines {
	t.baselineOnce.Do(func() {
		collect := func(get func(*Section) float64) []float64 {
			values := make([]float64, len(t.Sections))
			for i := range t.Sections {
				values[i] = get(&t.Sections[i])
			}
			return values
		}
		t.baselines = Baselines{
			TasaParticipacion:     Mean(collect(func(s *Section) float64 { return s.TasaParticipacion })),
			PctVotoMorena:         Mean(collect(func(s *Section) float64 { return s.PctVotoMorena })),
			PctVotoOposicion:      Mean(collect(func(s *Section) float64 { return s.PctVotoOposicion })),
			IndiceCompetitividad:  Mean(collect(func(s *Section) float64 { return s.IndiceCompetitividad })),
			Escolaridad:           Mean(collect(func(s *Section) float64 { return s.Escolaridad })),
			IndiceDigitalizacion:  Mean(collect(func(s *Section) float64 { return s.IndiceDigitalizacion })),
			PorcJovenes:           Mean(collect(func(s *Section) float64 { return s.PorcJovenes })),
			PorcAdultosMayores:    Mean(collect(func(s *Section) float64 { return s.PorcAdultosMayores })),
			PorcPoblacionMigrante: Mean(collect(func(s *Section) float64 { return s.PorcPoblacionMigrante })),
			PorcHogaresJefaMujer:  Mean(collect(func(s *Section) float64 { return s.PorcHogaresJefaMujer })),
			TasaDesocupacion:      Mean(collect(func(s *Section) float64 { return s.TasaDesocupacion })),
			PorcSinServiciosSalud: Mean(collect(func(s *Section) float64 { return s.PorcSinServiciosSalud })),
		}
	})
	return t.baselines
}

// Ranks returns the section's competition rank (1 = best) for turnout and
// for the competitiveness index, always over the full unfiltered table.
func (t *Table) Ranks(id string) (participacion, competitividad int, ok bool) {
	idx := -1
	partVals := make([]float64, len(t.Sections))
	compVals := make([]float64, len(t.Sections))
	for i := range t.Sections {
		partVals[i] = t.Sections[i].TasaParticipacion
		compVals[i] = t.Sections[i].IndiceCompetitividad
		if t.Sections[i].ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return 0, 0, false
	}
	return CompetitionRanks(partVals)[idx], CompetitionRanks(compVals)[idx], true
}
