package features

// Two safe-division policies appear in the engine, fixed per stat in the
// position configs:
//
//   - divFloor clamps the denominator to a minimum of 1. Used for per-attempt
//     rates where zero opportunities reads as zero productivity (the QB
//     passing rates).
//   - divOrNull yields null on a zero or negative denominator. Used for rates
//     that are genuinely undefined without opportunities (catch rate with no
//     targets). The null survives until the final dense-fill pass, so the
//     model input never sees it.

func divFloor(num, den float64) float64 {
	if den < 1 {
		den = 1
	}
	return num / den
}

func divOrNull(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den
	return &v
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
