package analysis

import "math"

// LogSpace returns num integers floor(10^x) for x evenly spaced over
// [lo, hi]. Neighbouring values may coincide when the range is narrow.
func LogSpace(lo, hi float64, num int) []int {
	if num <= 0 {
		return nil
	}
	if num == 1 {
		return []int{int(math.Pow(10, lo))}
	}

	out := make([]int, num)
	step := (hi - lo) / float64(num-1)
	for i := 0; i < num; i++ {
		x := lo + float64(i)*step
		if i == num-1 {
			x = hi
		}
		// Round away tiny representation error before truncating so that
		// exact powers such as 10^5 are not reported as 99999.
		out[i] = int(math.Floor(math.Pow(10, x) + 1e-9))
	}
	return out
}

// FitSlope fits log(RelErr) = a + s*log(N) by least squares and returns s.
// Entries with zero error carry no information on a log scale and are
// skipped. A healthy estimator gives s close to -0.5.
func FitSlope(r Record) (float64, error) {
	var sx, sy, sxx, sxy float64
	n := 0
	for _, p := range r {
		if p.RelErr <= 0 || p.N <= 0 || math.IsNaN(p.RelErr) || math.IsInf(p.RelErr, 0) {
			continue
		}
		x := math.Log(float64(p.N))
		y := math.Log(p.RelErr)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		n++
	}
	if n < 2 {
		return 0, ErrTooFewPoints
	}

	fn := float64(n)
	denom := fn*sxx - sx*sx
	if denom == 0 {
		return 0, ErrTooFewPoints
	}
	return (fn*sxy - sx*sy) / denom, nil
}
