// Package reference supplies exact values that estimates are checked against.
// None of it is used by the estimators themselves.
package reference

import (
	"fmt"
	"math"
)

// BallVolume returns the volume of the unit ball in n dimensions,
// pi^(n/2) / Gamma(n/2 + 1).
func BallVolume(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	half := float64(n) / 2
	return math.Pow(math.Pi, half) / math.Gamma(half+1)
}

// StandardNormalCDF is the distribution function of N(0, 1).
func StandardNormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// StandardNormalDensity is the joint density of n independent standard
// normal variables evaluated at x.
func StandardNormalDensity(x []float64) float64 {
	sq := 0.0
	for _, v := range x {
		sq += v * v
	}
	norm := math.Pow(2*math.Pi, float64(len(x))/2)
	return math.Exp(-sq/2) / norm
}

// StandardNormalBox returns the probability that a standard normal vector
// with identity covariance falls in the box [mins, maxs]. With independent
// axes this is the product of the per-axis probabilities.
func StandardNormalBox(mins, maxs []float64) (float64, error) {
	if len(mins) != len(maxs) {
		return 0, fmt.Errorf("reference: %d mins, %d maxs", len(mins), len(maxs))
	}
	p := 1.0
	for i := range mins {
		p *= StandardNormalCDF(maxs[i]) - StandardNormalCDF(mins[i])
	}
	return p, nil
}
