package problems

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/mcint/internal/estimate"
	"github.com/san-kum/mcint/internal/reference"
	"github.com/san-kum/mcint/internal/sampling"
)

var ErrUnknownProblem = errors.New("problems: unknown problem")

type Kind string

const (
	KindInterval Kind = "interval"
	KindBox      Kind = "box"
	KindBall     Kind = "ball"
)

// Problem is a named integrand together with its domain and, when known,
// its exact value.
type Problem struct {
	Name        string
	Description string
	Kind        Kind

	Scalar sampling.ScalarFunc
	A, B   float64

	Vector sampling.VectorFunc
	Mins   []float64
	Maxs   []float64

	Dim int

	Exact    float64
	HasExact bool
}

// Estimator returns the estimator that matches the problem kind.
func (p Problem) Estimator() estimate.Estimator {
	switch p.Kind {
	case KindInterval:
		return estimate.Interval{F: p.Scalar, A: p.A, B: p.B}
	case KindBall:
		return estimate.Ball{Dim: p.Dim}
	default:
		return estimate.Box{F: p.Vector, Mins: p.Mins, Maxs: p.Maxs}
	}
}

// Dimension is the number of axes sampled per point.
func (p Problem) Dimension() int {
	switch p.Kind {
	case KindInterval:
		return 1
	case KindBall:
		return p.Dim
	default:
		return len(p.Mins)
	}
}

// Convergent reports whether the problem can be used in a relative-error
// sweep.
func (p Problem) Convergent() bool {
	return p.HasExact && p.Exact != 0
}

type Registry struct {
	problems map[string]func() Problem
}

func NewRegistry() *Registry {
	r := &Registry{problems: make(map[string]func() Problem)}

	r.problems["quadratic"] = func() Problem {
		return Problem{
			Name: "quadratic", Description: "x^2 on [-4, 2]", Kind: KindInterval,
			Scalar: func(x float64) float64 { return x * x }, A: -4, B: 2,
			Exact: 24, HasExact: true,
		}
	}
	r.problems["sine"] = func() Problem {
		return Problem{
			Name: "sine", Description: "sin(x) on [-2pi, 2pi]", Kind: KindInterval,
			Scalar: math.Sin, A: -2 * math.Pi, B: 2 * math.Pi,
			Exact: 0, HasExact: true,
		}
	}
	r.problems["reciprocal"] = func() Problem {
		return Problem{
			Name: "reciprocal", Description: "1/x on [1, 10]", Kind: KindInterval,
			Scalar: func(x float64) float64 { return 1 / x }, A: 1, B: 10,
			Exact: math.Ln10, HasExact: true,
		}
	}
	r.problems["oscillating"] = func() Problem {
		return Problem{
			Name: "oscillating", Description: "|sin(10x)cos(10x) + sqrt(x)sin(3x)| on [1, 5]", Kind: KindInterval,
			Scalar: func(x float64) float64 {
				return math.Abs(math.Sin(10*x)*math.Cos(10*x) + math.Sqrt(x)*math.Sin(3*x))
			},
			A: 1, B: 5,
		}
	}
	r.problems["paraboloid"] = func() Problem {
		return Problem{
			Name: "paraboloid", Description: "x0^2 + x1^2 on [0,1]^2", Kind: KindBox,
			Vector: func(x sampling.Vector) float64 { return x[0]*x[0] + x[1]*x[1] },
			Mins:   []float64{0, 0}, Maxs: []float64{1, 1},
			Exact: 2.0 / 3.0, HasExact: true,
		}
	}
	r.problems["plane"] = func() Problem {
		return Problem{
			Name: "plane", Description: "3x0 - 4x1 + x1^2 on [1,3]x[-2,1]", Kind: KindBox,
			Vector: func(x sampling.Vector) float64 { return 3*x[0] - 4*x[1] + x[1]*x[1] },
			Mins:   []float64{1, -2}, Maxs: []float64{3, 1},
			Exact: 54, HasExact: true,
		}
	}
	r.problems["mixed4"] = func() Problem {
		return Problem{
			Name: "mixed4", Description: "x0 + x1 - x3*x2^2 on [-1,1]x[-2,2]x[-3,3]x[-4,4]", Kind: KindBox,
			Vector: func(x sampling.Vector) float64 { return x[0] + x[1] - x[3]*x[2]*x[2] },
			Mins:   []float64{-1, -2, -3, -4}, Maxs: []float64{1, 2, 3, 4},
			Exact: 0, HasExact: true,
		}
	}
	r.problems["gaussian4"] = func() Problem {
		mins := []float64{-1.5, 0, 0, 0}
		maxs := []float64{0.75, 1, 0.5, 1}
		exact, _ := reference.StandardNormalBox(mins, maxs)
		return Problem{
			Name: "gaussian4", Description: "4-d standard normal density on [-3/2,3/4]x[0,1]x[0,1/2]x[0,1]", Kind: KindBox,
			Vector: func(x sampling.Vector) float64 { return reference.StandardNormalDensity(x) },
			Mins:   mins, Maxs: maxs,
			Exact: exact, HasExact: true,
		}
	}
	for _, dim := range []int{2, 3, 4} {
		r.problems[fmt.Sprintf("ball%d", dim)] = func() Problem { return Ball(dim) }
	}

	return r
}

// Ball is the unit-ball volume problem in dim dimensions.
func Ball(dim int) Problem {
	return Problem{
		Name: fmt.Sprintf("ball%d", dim), Description: fmt.Sprintf("volume of the %d-d unit ball", dim), Kind: KindBall,
		Dim: dim, Exact: reference.BallVolume(dim), HasExact: dim >= 1,
	}
}

func (r *Registry) Get(name string) (Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return Problem{}, fmt.Errorf("%w: %s", ErrUnknownProblem, name)
	}
	return fn(), nil
}

// Register adds or replaces a problem.
func (r *Registry) Register(p Problem) {
	r.problems[p.Name] = func() Problem { return p }
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.problems))
	for name := range r.problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
