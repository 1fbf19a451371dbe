package estimate

import (
	"math"

	"github.com/san-kum/mcint/internal/sampling"
)

// BallVolume estimates the volume of the unit ball in dim dimensions by
// acceptance sampling in [-1,1]^dim. Points with norm exactly 1 are rejected.
func BallVolume(src sampling.Source, dim, n int) (float64, error) {
	points, err := sampling.SampleCube(src, dim, n)
	if err != nil {
		return 0, err
	}

	inside := points.CountInside(1)
	cubeVolume := math.Ldexp(1, dim)
	return cubeVolume * (float64(inside) / float64(n)), nil
}
