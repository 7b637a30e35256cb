// Package dataset loads the sectional electoral dataset and derives the
// descriptive layers the rest of the system consumes: the competitiveness
// index, the sociodemographic profile labels, municipal baselines, rankings
// and the quick strategic insights shown in the detail panel.
package dataset

import "github.com/paulmach/orb"

// Section is one electoral section: a polygon plus its indicator row.
// Fields mirror the columns of the processed dataset; the two derived
// fields (IndiceCompetitividad, Perfil) are filled in by the loader.
type Section struct {
	ID       string
	Geometry orb.Geometry
	Centroid orb.Point

	PartidoDominante  string
	PctVotoMorena     float64
	PctVotoOposicion  float64
	TasaParticipacion float64

	// Competitividad is the raw 0-100 score from the source dataset,
	// where LOW means a close race. IndiceCompetitividad inverts it
	// (100 - raw) so that high = contested, which is how every consumer
	// downstream reads it.
	Competitividad       float64
	IndiceCompetitividad float64

	PorcJovenes           float64
	PorcAdultosMayores    float64
	PorcPoblacionMigrante float64
	Escolaridad           float64 // GRAPROES, mean schooling years
	IndiceDigitalizacion  float64
	PorcHogaresJefaMujer  float64
	TasaDesocupacion      float64
	PorcSinServiciosSalud float64

	Perfil string
}

// Variable identifies a choropleth visualization column. Values are the
// SQL/dataset column names so the HTTP API and the agent speak the same
// vocabulary.
type Variable string

const (
	VarParticipacion  Variable = "tasa_participacion_promedio"
	VarVotoMorena     Variable = "pct_voto_morena"
	VarCompetitividad Variable = "indice_competitividad"
	VarDigitalizacion Variable = "indice_digitalizacion"
)

// Variables lists the selectable visualization variables with their
// display names, in sidebar order.
func Variables() []VariableInfo {
	return []VariableInfo{
		{Name: VarParticipacion, Label: "Tasa de Participación (%)"},
		{Name: VarVotoMorena, Label: "Porcentaje Voto Morena"},
		{Name: VarCompetitividad, Label: "Índice de Competitividad"},
		{Name: VarDigitalizacion, Label: "Índice de Digitalización"},
	}
}

// VariableInfo pairs a visualization column with its display label.
type VariableInfo struct {
	Name  Variable `json:"name"`
	Label string   `json:"label"`
}

// Valid reports whether v names a selectable visualization variable.
func (v Variable) Valid() bool {
	switch v {
	case VarParticipacion, VarVotoMorena, VarCompetitividad, VarDigitalizacion:
		return true
	}
	return false
}

// Value returns the section's value for a visualization variable.
// Callers must validate v first; an unknown variable reads as zero.
func (s *Section) Value(v Variable) float64 {
	switch v {
	case VarParticipacion:
		return s.TasaParticipacion
	case VarVotoMorena:
		return s.PctVotoMorena
	case VarCompetitividad:
		return s.IndiceCompetitividad
	case VarDigitalizacion:
		return s.IndiceDigitalizacion
	}
	return 0
}
