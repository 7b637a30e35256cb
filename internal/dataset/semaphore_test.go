package dataset

import "testing"

func TestCompetitivenessTier(t *testing.T) {
	tests := []struct {
		index        float64
		wantLabel    string
		wantSeverity int
	}{
		{0, "Baja", 0},
		{10, "Baja", 0},
		{39.9, "Baja", 0},
		{40, "Media", 1},
		{59.9, "Media", 1},
		{60, "Alta", 2},
		{70, "Alta", 2},
		{79.9, "Alta", 2},
		{80, "MUY Alta", 3},
		{100, "MUY Alta", 3},
	}

	for _, tt := range tests {
		got := CompetitivenessTier(tt.index)
		if got.Label != tt.wantLabel || got.Severity != tt.wantSeverity {
			t.Errorf("CompetitivenessTier(%v) = {%s %d}, want {%s %d}",
				tt.index, got.Label, got.Severity, tt.wantLabel, tt.wantSeverity)
		}
		if got.Description == "" || got.Color == "" {
			t.Errorf("CompetitivenessTier(%v) missing description or color", tt.index)
		}
	}
}

// The semaphore must cover [0,100] with exactly four tiers and no gaps.
func TestCompetitivenessTierTotal(t *testing.T) {
	seen := make(map[string]bool)
	prev := CompetitivenessTier(0).Severity
	for v := 0.0; v <= 100.0; v += 0.5 {
		tier := CompetitivenessTier(v)
		seen[tier.Label] = true
		if tier.Severity < prev {
			t.Fatalf("severity decreased at %v", v)
		}
		prev = tier.Severity
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 tiers over [0,100], saw %d: %v", len(seen), seen)
	}
}

// Raw scores 30 and 90 invert to indexes 70 and 10, landing in Alta and
// Baja respectively.
func TestTierFromRawScores(t *testing.T) {
	for _, tt := range []struct {
		raw  float64
		want string
	}{
		{30, "Alta"},
		{90, "Baja"},
	} {
		index := 100 - tt.raw
		if got := CompetitivenessTier(index).Label; got != tt.want {
			t.Errorf("raw %v -> index %v -> %q, want %q", tt.raw, index, got, tt.want)
		}
	}
}
