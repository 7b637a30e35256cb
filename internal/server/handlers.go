package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"votelens/internal/dataset"
	"votelens/internal/session"
)

const noDataMessage = "dataset not available"

// handleMeta reports dataset shape, available filters and degraded-state
// flags so the page can render its controls.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	table, err := s.table()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, noDataMessage)
		return
	}

	agentAvailable := false
	if s.agentFor != nil {
		if _, err := s.agentFor(table); err == nil {
			agentAvailable = true
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections":        table.Len(),
		"profiles":        table.Profiles(),
		"variables":       dataset.Variables(),
		"stale":           table.Stale(),
		"agent_available": agentAvailable,
	})
}

// handleSections returns the (optionally profile-filtered) sections as a
// GeoJSON FeatureCollection carrying the chosen visualization value and
// its quantile bin, plus a centroid for the per-section label marker.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	table, err := s.table()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, noDataMessage)
		return
	}

	variable := dataset.Variable(r.URL.Query().Get("variable"))
	if variable == "" {
		variable = dataset.VarParticipacion
	}
	if !variable.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown variable %q", variable))
		return
	}

	perfil := r.URL.Query().Get("perfil")
	sections := table.FilterByProfile(perfil)

	values := make([]float64, len(sections))
	for i := range sections {
		values[i] = sections[i].Value(variable)
	}
	bins := dataset.QuantileBins(values, 5)

	fc := geojson.NewFeatureCollection()
	for i := range sections {
		sec := &sections[i]
		f := geojson.NewFeature(sec.Geometry)
		f.Properties = geojson.Properties{
			"seccion":            sec.ID,
			"perfil_descriptivo": sec.Perfil,
			"value":              values[i],
			"bin":                bins[i],
			"centroid":           []float64{sec.Centroid[0], sec.Centroid[1]},
		}
		fc.Append(f)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":      table.Len(),
		"shown":      len(sections),
		"variable":   variable,
		"collection": fc,
	})
}

// sectionDetail is the detail-panel payload for one section.
type sectionDetail struct {
	Seccion          string             `json:"seccion"`
	Perfil           string             `json:"perfil_descriptivo"`
	PartidoDominante string             `json:"partido_dominante"`
	Indicators       map[string]float64 `json:"indicators"`
	Tier             dataset.Tier       `json:"competitividad_tier"`
	Baselines        dataset.Baselines  `json:"baselines"`
	Deltas           map[string]float64 `json:"deltas"`
	RankTurnout      int                `json:"rank_participacion"`
	RankCompetitivo  int                `json:"rank_competitividad"`
	Insights         []dataset.Insight  `json:"insights"`
}

func (s *Server) handleSectionDetail(w http.ResponseWriter, r *http.Request) {
	table, err := s.table()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, noDataMessage)
		return
	}

	id := chi.URLParam(r, "id")
	sec, ok := table.ByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("section %q not found", id))
		return
	}

	base := table.Baselines()
	// Rankings and baselines are always municipality-wide, even when the
	// map has a profile filter active.
	rankPart, rankComp, _ := table.Ranks(id)

	indicators := map[string]float64{
		"tasa_participacion_promedio": sec.TasaParticipacion,
		"pct_voto_morena":             sec.PctVotoMorena,
		"pct_voto_oposicion":          sec.PctVotoOposicion,
		"indice_competitividad":       sec.IndiceCompetitividad,
		"graproes":                    sec.Escolaridad,
		"indice_digitalizacion":       sec.IndiceDigitalizacion,
		"porc_jovenes":                sec.PorcJovenes,
		"porc_adultos_mayores":        sec.PorcAdultosMayores,
		"porc_poblacion_migrante":     sec.PorcPoblacionMigrante,
		"porc_hogares_jefa_mujer":     sec.PorcHogaresJefaMujer,
		"tasa_desocupacion":           sec.TasaDesocupacion,
		"porc_sin_servicios_salud":    sec.PorcSinServiciosSalud,
	}
	deltas := map[string]float64{
		"tasa_participacion_promedio": sec.TasaParticipacion - base.TasaParticipacion,
		"pct_voto_morena":             sec.PctVotoMorena - base.PctVotoMorena,
		"pct_voto_oposicion":          sec.PctVotoOposicion - base.PctVotoOposicion,
		"indice_competitividad":       sec.IndiceCompetitividad - base.IndiceCompetitividad,
		"graproes":                    sec.Escolaridad - base.Escolaridad,
		"indice_digitalizacion":       sec.IndiceDigitalizacion - base.IndiceDigitalizacion,
		"porc_jovenes":                sec.PorcJovenes - base.PorcJovenes,
		"porc_adultos_mayores":        sec.PorcAdultosMayores - base.PorcAdultosMayores,
		"porc_poblacion_migrante":     sec.PorcPoblacionMigrante - base.PorcPoblacionMigrante,
		"porc_hogares_jefa_mujer":     sec.PorcHogaresJefaMujer - base.PorcHogaresJefaMujer,
		"tasa_desocupacion":           sec.TasaDesocupacion - base.TasaDesocupacion,
		"porc_sin_servicios_salud":    sec.PorcSinServiciosSalud - base.PorcSinServiciosSalud,
	}

	writeJSON(w, http.StatusOK, sectionDetail{
		Seccion:          sec.ID,
		Perfil:           sec.Perfil,
		PartidoDominante: sec.PartidoDominante,
		Indicators:       indicators,
		Tier:             dataset.CompetitivenessTier(sec.IndiceCompetitividad),
		Baselines:        base,
		Deltas:           deltas,
		RankTurnout:      rankPart,
		RankCompetitivo:  rankComp,
		Insights:         dataset.Insights(sec, base),
	})
}

// chatResponse is the payload for every chat endpoint.
type chatResponse struct {
	Turns []session.Turn `json:"turns"`
	Long  bool           `json:"long"`
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	st := s.state(r)
	writeJSON(w, http.StatusOK, chatResponse{Turns: st.Turns(), Long: st.Long()})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "a non-empty text field is required")
		return
	}
	s.askAndRespond(w, r, req.Text)
}

// handleAnalyze seeds the chat with the detailed-analysis question for a
// section and runs it through the same machine as a typed question.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	table, err := s.table()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, noDataMessage)
		return
	}
	id := chi.URLParam(r, "id")
	if _, ok := table.ByID(id); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("section %q not found", id))
		return
	}

	question := fmt.Sprintf(
		"Analiza en detalle la sección %s, incluyendo fortalezas, debilidades y recomendaciones estratégicas específicas",
		id)
	s.askAndRespond(w, r, question)
}

// askAndRespond drives one full chat round: commit the user turn, answer
// it synchronously, return the updated history.
func (s *Server) askAndRespond(w http.ResponseWriter, r *http.Request, text string) {
	st := s.state(r)
	if err := st.Submit(text); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	answerer := s.answerer()
	st.Resolve(r.Context(), answerer)
	writeJSON(w, http.StatusOK, chatResponse{Turns: st.Turns(), Long: st.Long()})
}

// answerer resolves the agent for the current table, or nil for the
// degraded no-agent answer.
func (s *Server) answerer() session.Answerer {
	if s.agentFor == nil {
		return nil
	}
	table, err := s.table()
	if err != nil {
		return nil
	}
	a, err := s.agentFor(table)
	if err != nil {
		s.logger.Warn("agent unavailable", zap.Error(err))
		return nil
	}
	return a
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	st := s.state(r)
	st.Clear()
	writeJSON(w, http.StatusOK, chatResponse{Turns: st.Turns(), Long: st.Long()})
}
