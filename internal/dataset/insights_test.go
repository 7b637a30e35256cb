package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsights(t *testing.T) {
	base := Baselines{TasaParticipacion: 55}

	t.Run("Balanced", func(t *testing.T) {
		s := Section{
			TasaParticipacion:    55,
			IndiceCompetitividad: 45,
			IndiceDigitalizacion: 50,
			PorcJovenes:          15,
			PorcAdultosMayores:   10,
		}
		got := Insights(&s, base)
		assert.Equal(t, []Insight{BalancedInsight}, got)
	})

	t.Run("HighTurnoutAboveBaseline", func(t *testing.T) {
		s := Section{
			TasaParticipacion:    72,
			IndiceCompetitividad: 45,
			IndiceDigitalizacion: 50,
		}
		got := Insights(&s, base)
		severities := make([]string, len(got))
		for i, in := range got {
			severities[i] = in.Severity
		}
		// Absolute >70 rule plus the +5 over baseline delta rule.
		assert.Equal(t, []string{"strength", "strength"}, severities)
	})

	t.Run("Battleground", func(t *testing.T) {
		s := Section{
			TasaParticipacion:    55,
			IndiceCompetitividad: 85,
			IndiceDigitalizacion: 50,
		}
		got := Insights(&s, base)
		assert.Len(t, got, 1)
		assert.Equal(t, "critical", got[0].Severity)
	})

	t.Run("VulnerableLowTurnout", func(t *testing.T) {
		s := Section{
			TasaParticipacion:     42,
			IndiceCompetitividad:  20,
			IndiceDigitalizacion:  25,
			PorcAdultosMayores:    18,
			PorcSinServiciosSalud: 28,
		}
		got := Insights(&s, base)
		assert.Len(t, got, 5) // low turnout, consolidated, low digital, elderly, health
		assert.NotContains(t, got, BalancedInsight)
	})
}
