package estimate

import (
	"github.com/san-kum/mcint/internal/sampling"
)

// DefaultSampleCount is the sample count used when callers have no preference.
const DefaultSampleCount = 10000

// Integrate1D approximates the integral of f over [a,b] with n samples.
// Reversed bounds negate the result; a == b yields exactly 0.
func Integrate1D(src sampling.Source, f sampling.ScalarFunc, a, b float64, n int) (float64, error) {
	if err := sampling.CheckCount(n); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}

	xs, err := sampling.SampleInterval(src, a, b, n)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, x := range xs {
		sum += f(x)
	}
	return (b - a) * (sum / float64(n)), nil
}

// IntegrateBox approximates the integral of f over the box [mins, maxs].
func IntegrateBox(src sampling.Source, f sampling.VectorFunc, mins, maxs []float64, n int) (float64, error) {
	if err := sampling.CheckCount(n); err != nil {
		return 0, err
	}
	d, err := sampling.NewDomain(mins, maxs)
	if err != nil {
		return 0, err
	}
	return integrateDomain(src, f, d, n)
}

func integrateDomain(src sampling.Source, f sampling.VectorFunc, d sampling.Domain, n int) (float64, error) {
	vol := d.Volume()
	if vol == 0 {
		return 0, nil
	}

	points, err := sampling.SampleBox(src, d, n)
	if err != nil {
		return 0, err
	}
	return vol * points.Mean(f), nil
}
