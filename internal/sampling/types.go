package sampling

import (
	"fmt"
	"math"
)

type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// ScalarFunc is a one-dimensional integrand.
type ScalarFunc func(x float64) float64

// VectorFunc is an n-dimensional integrand. It must not retain or modify x.
type VectorFunc func(x Vector) float64

// Domain is an axis-aligned box. The zero value is not usable; build one
// with NewDomain or Cube.
type Domain struct {
	mins Vector
	maxs Vector
}

// NewDomain validates the bounds and copies them into a Domain.
func NewDomain(mins, maxs []float64) (Domain, error) {
	if len(mins) != len(maxs) {
		return Domain{}, fmt.Errorf("%w: %d mins, %d maxs", ErrDimensionMismatch, len(mins), len(maxs))
	}
	if len(mins) == 0 {
		return Domain{}, ErrInvalidDimension
	}
	for i := range mins {
		if mins[i] > maxs[i] {
			return Domain{}, &AxisError{Axis: i, Min: mins[i], Max: maxs[i]}
		}
	}
	return Domain{mins: Vector(mins).Clone(), maxs: Vector(maxs).Clone()}, nil
}

// Cube returns the symmetric cube [-1,1]^dim.
func Cube(dim int) (Domain, error) {
	if dim < 1 {
		return Domain{}, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	d := Domain{mins: make(Vector, dim), maxs: make(Vector, dim)}
	for i := 0; i < dim; i++ {
		d.mins[i] = -1
		d.maxs[i] = 1
	}
	return d, nil
}

func (d Domain) Dim() int { return len(d.mins) }

func (d Domain) Min(axis int) float64 { return d.mins[axis] }
func (d Domain) Max(axis int) float64 { return d.maxs[axis] }

// Volume is the product of the side lengths. A degenerate axis gives zero.
func (d Domain) Volume() float64 {
	if len(d.mins) == 0 {
		return 0
	}
	vol := 1.0
	for i := range d.mins {
		vol *= d.maxs[i] - d.mins[i]
	}
	return vol
}

// Batch holds N points of dimension Dim in a single backing slice.
// Point i occupies data[i*Dim : (i+1)*Dim].
type Batch struct {
	data []float64
	dim  int
	n    int
}

func newBatch(n, dim int) *Batch {
	return &Batch{data: make([]float64, n*dim), dim: dim, n: n}
}

func (b *Batch) Len() int { return b.n }
func (b *Batch) Dim() int { return b.dim }

// At returns a view of point i. The view aliases the batch storage.
func (b *Batch) At(i int) Vector {
	off := i * b.dim
	return Vector(b.data[off : off+b.dim : off+b.dim])
}

// Mean evaluates f at every point and returns the arithmetic mean.
func (b *Batch) Mean(f VectorFunc) float64 {
	sum := 0.0
	for i := 0; i < b.n; i++ {
		sum += f(b.At(i))
	}
	return sum / float64(b.n)
}

// CountInside counts points whose Euclidean norm is strictly below radius.
func (b *Batch) CountInside(radius float64) int {
	count := 0
	for i := 0; i < b.n; i++ {
		if b.At(i).Norm() < radius {
			count++
		}
	}
	return count
}
