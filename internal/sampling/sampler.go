package sampling

// SampleBox draws n points uniformly from d. Each coordinate is drawn from
// [0,1) and rescaled per axis as u*(max-min)+min.
func SampleBox(src Source, d Domain, n int) (*Batch, error) {
	if err := CheckCount(n); err != nil {
		return nil, err
	}
	if d.Dim() == 0 {
		return nil, ErrInvalidDimension
	}

	dim := d.Dim()
	b := newBatch(n, dim)
	for i := 0; i < n; i++ {
		off := i * dim
		for j := 0; j < dim; j++ {
			u := src.Float64()
			b.data[off+j] = u*(d.maxs[j]-d.mins[j]) + d.mins[j]
		}
	}
	return b, nil
}

// SampleCube draws n points uniformly from [-1,1]^dim.
func SampleCube(src Source, dim, n int) (*Batch, error) {
	if err := CheckCount(n); err != nil {
		return nil, err
	}
	cube, err := Cube(dim)
	if err != nil {
		return nil, err
	}
	return SampleBox(src, cube, n)
}

// SampleInterval draws n values uniformly between a and b. The bounds may
// be given in either order.
func SampleInterval(src Source, a, b float64, n int) ([]float64, error) {
	if err := CheckCount(n); err != nil {
		return nil, err
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = a + (b-a)*src.Float64()
	}
	return xs, nil
}
