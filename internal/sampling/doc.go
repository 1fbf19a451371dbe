// Package sampling provides uniform point generation over axis-aligned domains.
//
// The package defines the primitives shared by every estimator:
//
//   - [Source]: an explicit, seedable random source
//   - [Domain]: an axis-aligned box with validated bounds
//   - [Vector]: a point in n-dimensional space
//   - [Batch]: N points stored contiguously
//
// # Example
//
//	src, _ := sampling.NewSource(sampling.SourcePCG, 42)
//	dom, _ := sampling.NewDomain([]float64{1, -2}, []float64{3, 1})
//	batch, _ := sampling.SampleBox(src, dom, 10000)
//
// # Thread Safety
//
// A Source is NOT safe for concurrent use. Concurrent callers must each own
// an independent Source.
package sampling
