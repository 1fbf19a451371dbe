package sampling_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mcint/internal/sampling"
)

func newSource(seed uint64) sampling.Source {
	src, err := sampling.NewSource(sampling.SourcePCG, seed)
	Expect(err).NotTo(HaveOccurred())
	return src
}

var _ = Describe("Domain", func() {
	It("computes the product of side lengths", func() {
		d, err := sampling.NewDomain([]float64{1, -2}, []float64{3, 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Dim()).To(Equal(2))
		Expect(d.Volume()).To(Equal(6.0))
	})

	It("has zero volume when an axis is degenerate", func() {
		d, err := sampling.NewDomain([]float64{0, 2}, []float64{1, 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Volume()).To(BeZero())
	})

	It("copies its bounds", func() {
		mins := []float64{0, 0}
		d, err := sampling.NewDomain(mins, []float64{1, 1})
		Expect(err).NotTo(HaveOccurred())
		mins[0] = 5
		Expect(d.Min(0)).To(BeZero())
	})

	It("rejects bounds of different length", func() {
		_, err := sampling.NewDomain([]float64{0, 0}, []float64{1, 1, 1})
		Expect(err).To(MatchError(sampling.ErrDimensionMismatch))
	})

	It("rejects an inverted axis and reports it", func() {
		_, err := sampling.NewDomain([]float64{0, 1}, []float64{1, 0})
		Expect(err).To(MatchError(sampling.ErrInvalidDomain))

		var axisErr *sampling.AxisError
		Expect(errors.As(err, &axisErr)).To(BeTrue())
		Expect(axisErr.Axis).To(Equal(1))
	})

	It("rejects an empty domain", func() {
		_, err := sampling.NewDomain(nil, nil)
		Expect(err).To(MatchError(sampling.ErrInvalidDimension))
	})

	It("builds the symmetric cube", func() {
		c, err := sampling.Cube(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Volume()).To(Equal(8.0))
		Expect(c.Min(2)).To(Equal(-1.0))
		Expect(c.Max(2)).To(Equal(1.0))

		_, err = sampling.Cube(0)
		Expect(err).To(MatchError(sampling.ErrInvalidDimension))
	})
})

var _ = Describe("SampleBox", func() {
	It("keeps every coordinate inside its axis bounds", func() {
		d, err := sampling.NewDomain([]float64{-3, 10, 0.5}, []float64{-1, 20, 0.75})
		Expect(err).NotTo(HaveOccurred())

		b, err := sampling.SampleBox(newSource(1), d, 5000)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Len()).To(Equal(5000))
		Expect(b.Dim()).To(Equal(3))

		for i := 0; i < b.Len(); i++ {
			p := b.At(i)
			Expect(p).To(HaveLen(3))
			for j := range p {
				Expect(p[j]).To(BeNumerically(">=", d.Min(j)))
				Expect(p[j]).To(BeNumerically("<=", d.Max(j)))
			}
		}
	})

	It("is centred on the box midpoint", func() {
		d, err := sampling.NewDomain([]float64{2}, []float64{6})
		Expect(err).NotTo(HaveOccurred())

		b, err := sampling.SampleBox(newSource(7), d, 20000)
		Expect(err).NotTo(HaveOccurred())
		mean := b.Mean(func(x sampling.Vector) float64 { return x[0] })
		Expect(mean).To(BeNumerically("~", 4.0, 0.05))
	})

	It("fails on a non-positive sample count", func() {
		d, _ := sampling.NewDomain([]float64{0}, []float64{1})
		_, err := sampling.SampleBox(newSource(1), d, 0)
		Expect(err).To(MatchError(sampling.ErrInvalidSampleCount))

		_, err = sampling.SampleBox(newSource(1), d, -5)
		Expect(err).To(MatchError(sampling.ErrInvalidSampleCount))
	})

	It("is reproducible for a fixed seed", func() {
		d, _ := sampling.NewDomain([]float64{0, 0}, []float64{1, 1})
		a, err := sampling.SampleBox(newSource(99), d, 100)
		Expect(err).NotTo(HaveOccurred())
		b, err := sampling.SampleBox(newSource(99), d, 100)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < a.Len(); i++ {
			Expect(a.At(i)).To(Equal(b.At(i)))
		}
	})
})

var _ = Describe("SampleCube", func() {
	It("stays within [-1,1]", func() {
		b, err := sampling.SampleCube(newSource(3), 4, 2000)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < b.Len(); i++ {
			for _, x := range b.At(i) {
				Expect(math.Abs(x)).To(BeNumerically("<=", 1))
			}
		}
	})

	It("rejects a zero dimension", func() {
		_, err := sampling.SampleCube(newSource(3), 0, 10)
		Expect(err).To(MatchError(sampling.ErrInvalidDimension))
	})

	It("checks the sample count first", func() {
		_, err := sampling.SampleCube(newSource(3), 0, 0)
		Expect(err).To(MatchError(sampling.ErrInvalidSampleCount))
	})
})

var _ = Describe("SampleInterval", func() {
	It("accepts reversed bounds", func() {
		xs, err := sampling.SampleInterval(newSource(5), 2, -1, 1000)
		Expect(err).NotTo(HaveOccurred())
		for _, x := range xs {
			Expect(x).To(BeNumerically(">", -1))
			Expect(x).To(BeNumerically("<=", 2))
		}
	})
})

var _ = Describe("Batch", func() {
	It("counts points strictly inside the radius", func() {
		d, _ := sampling.NewDomain([]float64{1, 0}, []float64{1, 0})
		b, err := sampling.SampleBox(newSource(1), d, 10)
		Expect(err).NotTo(HaveOccurred())
		// Every point is (1, 0), which lies on the boundary.
		Expect(b.CountInside(1)).To(BeZero())
		Expect(b.CountInside(1.5)).To(Equal(10))
	})
})

var _ = Describe("NewSource", func() {
	DescribeTable("produces reproducible streams",
		func(kind string) {
			a, err := sampling.NewSource(kind, 42)
			Expect(err).NotTo(HaveOccurred())
			b, err := sampling.NewSource(kind, 42)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 16; i++ {
				Expect(a.Float64()).To(Equal(b.Float64()))
			}
		},
		Entry("pcg", sampling.SourcePCG),
		Entry("chacha8", sampling.SourceChaCha8),
		Entry("splitmix", sampling.SourceSplitMix),
		Entry("default", ""),
	)

	It("separates different seeds", func() {
		a, _ := sampling.NewSource(sampling.SourcePCG, 1)
		b, _ := sampling.NewSource(sampling.SourcePCG, 2)
		Expect(a.Float64()).NotTo(Equal(b.Float64()))
	})

	It("rejects unknown kinds", func() {
		_, err := sampling.NewSource("mt19937", 1)
		Expect(err).To(MatchError(sampling.ErrUnknownSource))
	})
})

var _ = Describe("Vector", func() {
	It("computes the Euclidean norm", func() {
		Expect(sampling.Vector{3, 4}.Norm()).To(Equal(5.0))
		Expect(sampling.Vector{1, 1, 1, 1}.Norm()).To(Equal(2.0))
	})
})
