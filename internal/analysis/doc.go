// Package analysis characterises the error of Monte Carlo estimators.
//
// The package sweeps an estimator across sample counts and compares each
// result with a known reference value:
//
//   - [Analyze]: one estimate per sample count, relative error per entry
//   - [LogSpace]: logarithmically spaced sample counts
//   - [FitSlope]: log-log slope of a [Record]
//
// # Convergence Check
//
// Plain Monte Carlo error falls like 1/sqrt(N), so the fitted slope should
// sit near -0.5:
//
//	rec, _ := analysis.Analyze(src, est, exact, analysis.LogSpace(1, 5, 20))
//	slope, _ := analysis.FitSlope(rec)
//
// Reference values come from the caller; this package never computes them.
package analysis
