package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/mcint/internal/estimate"
	"github.com/san-kum/mcint/internal/sampling"
)

var (
	// ErrInvalidReference indicates a zero reference value, for which the
	// relative error is undefined.
	ErrInvalidReference = errors.New("analysis: reference value must be non-zero")

	// ErrTooFewPoints indicates a record too short to fit a slope.
	ErrTooFewPoints = errors.New("analysis: need at least two points with non-zero error")
)

// Point is one entry of a convergence record.
type Point struct {
	N        int     `json:"n"`
	Estimate float64 `json:"estimate"`
	RelErr   float64 `json:"relative_error"`
}

// Record pairs each sample count with the relative error of one estimate.
type Record []Point

// Counts returns the sample counts in record order.
func (r Record) Counts() []int {
	out := make([]int, len(r))
	for i, p := range r {
		out[i] = p.N
	}
	return out
}

// Errors returns the relative errors in record order.
func (r Record) Errors() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.RelErr
	}
	return out
}

// Expected returns 1/sqrt(N) for each entry, the reference rate for
// plain Monte Carlo.
func (r Record) Expected() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = 1 / math.Sqrt(float64(p.N))
	}
	return out
}

// RelativeError returns |exact-estimate| / |exact|.
func RelativeError(exact, estimate float64) (float64, error) {
	if exact == 0 {
		return 0, ErrInvalidReference
	}
	return math.Abs(exact-estimate) / math.Abs(exact), nil
}

// Validate checks the reference value and sample counts of a sweep.
func Validate(exact float64, counts []int) error {
	if exact == 0 {
		return ErrInvalidReference
	}
	for i, n := range counts {
		if err := sampling.CheckCount(n); err != nil {
			return fmt.Errorf("count %d: %w", i, err)
		}
	}
	return nil
}

// Analyze runs est once per sample count and records the relative error
// against exact. Each count gets a single independent draw; nothing is
// averaged or retried, so the error sequence is not monotonic.
func Analyze(src sampling.Source, est estimate.Estimator, exact float64, counts []int) (Record, error) {
	if err := Validate(exact, counts); err != nil {
		return nil, err
	}

	rec := make(Record, 0, len(counts))
	for _, n := range counts {
		p, err := Measure(src, est, exact, n)
		if err != nil {
			return rec, err
		}
		rec = append(rec, p)
	}
	return rec, nil
}

// Measure produces a single record entry.
func Measure(src sampling.Source, est estimate.Estimator, exact float64, n int) (Point, error) {
	v, err := est.Estimate(src, n)
	if err != nil {
		return Point{}, fmt.Errorf("estimate with n=%d: %w", n, err)
	}
	relErr, err := RelativeError(exact, v)
	if err != nil {
		return Point{}, err
	}
	return Point{N: n, Estimate: v, RelErr: relErr}, nil
}
