package dataset

// Tier is one level of the competitiveness semaphore shown in the detail
// panel. Severity orders the tiers, 3 = most contested.
type Tier struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
	Color       string `json:"color"`
}

// CompetitivenessTier maps a competitiveness-index value to its semaphore
// tier. The cuts at 80/60/40 are inclusive lower bounds, so the four
// tiers partition [0,100] with no gaps.
func CompetitivenessTier(index float64) Tier {
	switch {
	case index >= 80:
		return Tier{Label: "MUY Alta", Description: "Campo de batalla electoral", Severity: 3, Color: "#d73027"}
	case index >= 60:
		return Tier{Label: "Alta", Description: "Zona de disputa", Severity: 2, Color: "#fc8d59"}
	case index >= 40:
		return Tier{Label: "Media", Description: "Moderadamente disputada", Severity: 1, Color: "#fee08b"}
	default:
		return Tier{Label: "Baja", Description: "Sección consolidada", Severity: 0, Color: "#91cf60"}
	}
}
