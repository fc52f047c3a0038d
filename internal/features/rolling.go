package features

// Rolling-window helpers. Each operates on one (player, season) group's
// series, already sorted by week ascending; index i is the group's i-th
// available week. Windows run over available rows, so a bye week silently
// shortens the effective window (documented approximation).

// trailingMeans returns, per index, the mean of the up-to-window most recent
// values ending at and including that index. Null values inside the window
// are skipped; the result is null only when no non-null value is in the
// window (minimum effective window of one).
func trailingMeans(vals []*float64, window int) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum, count := 0.0, 0
		for j := start; j <= i; j++ {
			if vals[j] == nil {
				continue
			}
			sum += *vals[j]
			count++
		}
		if count > 0 {
			mean := sum / float64(count)
			out[i] = &mean
		}
	}
	return out
}

// priorTrailingMeans is trailingMeans over strictly prior values: the series
// is shifted by one before windowing, so index i never sees its own value.
// The group's first row is always null.
func priorTrailingMeans(vals []*float64, window int) []*float64 {
	shifted := make([]*float64, len(vals))
	for i := 1; i < len(vals); i++ {
		shifted[i] = vals[i-1]
	}
	return trailingMeans(shifted, window)
}

// diffs returns vals[i] - vals[i-1] per index. The group's first row, and any
// pair with a null side, is null.
func diffs(vals []*float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := 1; i < len(vals); i++ {
		if vals[i] == nil || vals[i-1] == nil {
			continue
		}
		d := *vals[i] - *vals[i-1]
		out[i] = &d
	}
	return out
}
