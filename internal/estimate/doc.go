// Package estimate implements Monte Carlo integral and volume estimators.
//
// Every estimator takes an explicit [sampling.Source]; no package-level
// generator exists. Results carry no error bound, but their accuracy scales
// as O(1/sqrt(N)) in the sample count.
//
//   - [Integrate1D]: definite integral over an interval
//   - [IntegrateBox]: integral over an axis-aligned box
//   - [BallVolume]: volume of the n-dimensional unit ball
//
// # Example
//
//	src, _ := sampling.NewSource(sampling.SourcePCG, 1)
//	v, _ := estimate.Integrate1D(src, func(x float64) float64 { return x * x }, -4, 2, estimate.DefaultSampleCount)
package estimate
