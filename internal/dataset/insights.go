package dataset

import "fmt"

// Insight is one rule-based strategic note for a section.
type Insight struct {
	Severity string `json:"severity"` // strength, risk, warning, critical, info
	Text     string `json:"text"`
}

// BalancedInsight is returned alone when no rule fires.
var BalancedInsight = Insight{
	Severity: "info",
	Text:     "Perfil equilibrado - Sin desviaciones notables frente al promedio municipal",
}

// Insights evaluates the fixed rule set for a section against the
// municipal baselines. Rules use absolute cutoffs from the source
// analysis plus baseline-relative deltas; when nothing fires the single
// balanced-profile note is returned so the panel is never empty.
func Insights(s *Section, base Baselines) []Insight {
	var out []Insight

	if s.TasaParticipacion > 70 {
		out = append(out, Insight{"strength", "Alta participación cívica - Ciudadanía comprometida"})
	} else if s.TasaParticipacion < 50 {
		out = append(out, Insight{"risk", "Baja participación - Oportunidad de movilización"})
	}
	if delta := s.TasaParticipacion - base.TasaParticipacion; delta > 5 {
		out = append(out, Insight{"strength",
			fmt.Sprintf("Participación %.1f puntos sobre el promedio municipal", delta)})
	}

	switch {
	case s.IndiceCompetitividad >= 80:
		out = append(out, Insight{"critical", "Sección muy competitiva - Campo de batalla, cada voto cuenta"})
	case s.IndiceCompetitividad >= 60:
		out = append(out, Insight{"warning", "Sección competitiva - Zona de disputa electoral"})
	case s.IndiceCompetitividad <= 30:
		out = append(out, Insight{"info", "Dominio partidista - Sección consolidada"})
	}

	if s.IndiceDigitalizacion > 70 {
		out = append(out, Insight{"strength", "Alta conectividad - Estrategias digitales efectivas"})
	} else if s.IndiceDigitalizacion < 30 {
		out = append(out, Insight{"warning", "Baja digitalización - Enfocar en medios tradicionales"})
	}

	if s.PorcJovenes > 25 {
		out = append(out, Insight{"info", "Población joven - Mensajes de cambio y oportunidad"})
	}
	if s.PorcAdultosMayores > 15 {
		out = append(out, Insight{"info", "Población envejecida - Mensajes de estabilidad y seguridad"})
	}
	if s.PorcSinServiciosSalud > 20 {
		out = append(out, Insight{"risk", "Vulnerabilidad en salud - Priorizar políticas sanitarias"})
	}

	if len(out) == 0 {
		return []Insight{BalancedInsight}
	}
	return out
}
