package defense

import "sort"

// averageRank ranks values 1..n with average tie handling: tied values all
// receive the mean of the rank positions they occupy. ascending=false ranks
// the largest value first.
func averageRank(values []float64, ascending bool) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if ascending {
			return values[idx[a]] < values[idx[b]]
		}
		return values[idx[a]] > values[idx[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Positions i..j (0-based) share the average of ranks i+1..j+1.
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// denseRank ranks values ascending with dense tie handling: tied values share
// a rank and the next distinct value's rank is exactly one greater.
func denseRank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, n)
	rank := 0.0
	for i, id := range idx {
		if i == 0 || values[id] != values[idx[i-1]] {
			rank++
		}
		ranks[id] = rank
	}
	return ranks
}

// median returns the middle value of vs (mean of the two middles for even n).
// Returns 0 for an empty slice.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}
