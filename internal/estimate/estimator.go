package estimate

import (
	"fmt"

	"github.com/san-kum/mcint/internal/sampling"
)

// Estimator produces one Monte Carlo estimate from n fresh samples.
type Estimator interface {
	Estimate(src sampling.Source, n int) (float64, error)
}

// EstimatorFunc adapts a plain function to Estimator.
type EstimatorFunc func(src sampling.Source, n int) (float64, error)

func (f EstimatorFunc) Estimate(src sampling.Source, n int) (float64, error) {
	return f(src, n)
}

// Interval integrates a scalar function over [A,B].
type Interval struct {
	F    sampling.ScalarFunc
	A, B float64
}

func (i Interval) Estimate(src sampling.Source, n int) (float64, error) {
	return Integrate1D(src, i.F, i.A, i.B, n)
}

// Box integrates a vector function over [Mins, Maxs].
type Box struct {
	F    sampling.VectorFunc
	Mins []float64
	Maxs []float64
}

func (b Box) Estimate(src sampling.Source, n int) (float64, error) {
	return IntegrateBox(src, b.F, b.Mins, b.Maxs, n)
}

// Validate checks the box bounds without sampling.
func (b Box) Validate() error {
	_, err := sampling.NewDomain(b.Mins, b.Maxs)
	return err
}

// Ball estimates the unit-ball volume in Dim dimensions.
type Ball struct {
	Dim int
}

func (b Ball) Estimate(src sampling.Source, n int) (float64, error) {
	return BallVolume(src, b.Dim, n)
}

func (b Ball) Validate() error {
	if b.Dim < 1 {
		return fmt.Errorf("%w: got %d", sampling.ErrInvalidDimension, b.Dim)
	}
	return nil
}
