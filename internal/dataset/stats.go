package dataset

import "sort"

// Percentile computes the q-th percentile (q in [0,1]) of values using
// linear interpolation between order statistics, matching the convention
// the thresholds were originally derived with. Returns 0 for an empty
// slice.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	rank := q * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// CompetitionRanks assigns standard competition ranks to values, rank 1
// being the highest value. Ties share the best rank and the following
// distinct value skips accordingly: [90, 90, 80] -> [1, 1, 3].
func CompetitionRanks(values []float64) []int {
	ranks := make([]int, len(values))
	for i, v := range values {
		rank := 1
		for _, other := range values {
			if other > v {
				rank++
			}
		}
		ranks[i] = rank
	}
	return ranks
}

// QuantileBins assigns each value to one of k quantile classes (0..k-1),
// the scheme used for the choropleth legend. Bins are computed over the
// given values only, so a filtered map re-bins over the filtered set.
func QuantileBins(values []float64, k int) []int {
	bins := make([]int, len(values))
	if len(values) == 0 || k < 2 {
		return bins
	}

	cuts := make([]float64, k-1)
	for i := 1; i < k; i++ {
		cuts[i-1] = Percentile(values, float64(i)/float64(k))
	}

	for i, v := range values {
		bin := 0
		for _, cut := range cuts {
			if v > cut {
				bin++
			}
		}
		bins[i] = bin
	}
	return bins
}
