package estimate_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mcint/internal/estimate"
	"github.com/san-kum/mcint/internal/sampling"
)

const largeN = 200000

func seeded(seed uint64) sampling.Source {
	src, err := sampling.NewSource(sampling.SourcePCG, seed)
	Expect(err).NotTo(HaveOccurred())
	return src
}

func square(x float64) float64 { return x * x }

func plane(x sampling.Vector) float64 { return 3*x[0] - 4*x[1] + x[1]*x[1] }

var _ = Describe("Integrate1D", func() {
	It("converges to the integral of x^2 over [-4,2]", func() {
		got, err := estimate.Integrate1D(seeded(1), square, -4, 2, largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 24, 0.4))
	})

	It("integrates 1/x over [1,10]", func() {
		got, err := estimate.Integrate1D(seeded(2), func(x float64) float64 { return 1 / x }, 1, 10, largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", math.Log(10), 0.05))
	})

	It("negates the result for reversed bounds", func() {
		forward, err := estimate.Integrate1D(seeded(3), square, -4, 2, largeN)
		Expect(err).NotTo(HaveOccurred())
		backward, err := estimate.Integrate1D(seeded(4), square, 2, -4, largeN)
		Expect(err).NotTo(HaveOccurred())

		Expect(backward).To(BeNumerically("<", 0))
		Expect(forward + backward).To(BeNumerically("~", 0, 0.8))
	})

	It("returns exactly zero for an empty interval", func() {
		got, err := estimate.Integrate1D(seeded(5), func(float64) float64 { return math.Inf(1) }, 3, 3, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(0.0))
	})

	It("rejects non-positive sample counts", func() {
		_, err := estimate.Integrate1D(seeded(5), square, 0, 1, 0)
		Expect(err).To(MatchError(sampling.ErrInvalidSampleCount))
	})

	It("propagates NaN from the integrand", func() {
		got, err := estimate.Integrate1D(seeded(6), func(float64) float64 { return math.NaN() }, 0, 1, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(got)).To(BeTrue())
	})
})

var _ = Describe("IntegrateBox", func() {
	It("converges to 54 for the plane example", func() {
		got, err := estimate.IntegrateBox(seeded(10), plane, []float64{1, -2}, []float64{3, 1}, largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 54, 0.5))
	})

	It("integrates a paraboloid over the unit square", func() {
		f := func(x sampling.Vector) float64 { return x[0]*x[0] + x[1]*x[1] }
		got, err := estimate.IntegrateBox(seeded(11), f, []float64{0, 0}, []float64{1, 1}, largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 2.0/3.0, 0.01))
	})

	It("matches Integrate1D in one dimension", func() {
		f := func(x sampling.Vector) float64 { return x[0] * x[0] * x[0] * x[0] }
		got, err := estimate.IntegrateBox(seeded(12), f, []float64{-4}, []float64{2}, largeN)
		Expect(err).NotTo(HaveOccurred())
		// (2^5 + 4^5) / 5
		Expect(got).To(BeNumerically("~", 211.2, 4))
	})

	It("returns exactly zero when an axis has zero length", func() {
		f := func(sampling.Vector) float64 { return math.Inf(1) }
		got, err := estimate.IntegrateBox(seeded(13), f, []float64{0, 1, 0}, []float64{1, 1, 1}, 1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(0.0))
	})

	It("reports a dimension mismatch", func() {
		_, err := estimate.IntegrateBox(seeded(14), plane, []float64{0, 0}, []float64{1, 1, 1}, 100)
		Expect(err).To(MatchError(sampling.ErrDimensionMismatch))
	})

	It("reports an inverted domain", func() {
		_, err := estimate.IntegrateBox(seeded(14), plane, []float64{1, 1}, []float64{0, 0}, 100)
		Expect(err).To(MatchError(sampling.ErrInvalidDomain))
	})

	It("reports an invalid sample count", func() {
		_, err := estimate.IntegrateBox(seeded(14), plane, []float64{0, 0}, []float64{1, 1}, -1)
		Expect(err).To(MatchError(sampling.ErrInvalidSampleCount))
	})

	It("is deterministic for a fixed seed", func() {
		a, err := estimate.IntegrateBox(seeded(77), plane, []float64{1, -2}, []float64{3, 1}, 1000)
		Expect(err).NotTo(HaveOccurred())
		b, err := estimate.IntegrateBox(seeded(77), plane, []float64{1, -2}, []float64{3, 1}, 1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("BallVolume", func() {
	DescribeTable("converges to the closed-form volume",
		func(dim int, want, tol float64) {
			got, err := estimate.BallVolume(seeded(uint64(20+dim)), dim, largeN)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNumerically("~", want, tol))
		},
		Entry("n=1 is the length 2", 1, 2.0, 1e-3),
		Entry("n=2 is pi", 2, math.Pi, 0.03),
		Entry("n=3 is 4/3 pi", 3, 4.0/3.0*math.Pi, 0.05),
		Entry("n=4 is pi^2/2", 4, math.Pi*math.Pi/2, 0.1),
	)

	It("rejects a zero sample count", func() {
		_, err := estimate.BallVolume(seeded(1), 2, 0)
		Expect(err).To(MatchError(sampling.ErrInvalidSampleCount))
	})

	It("rejects a zero dimension", func() {
		_, err := estimate.BallVolume(seeded(1), 0, 10)
		Expect(err).To(MatchError(sampling.ErrInvalidDimension))
	})

	It("is deterministic for a fixed seed", func() {
		a, _ := estimate.BallVolume(seeded(8), 3, 5000)
		b, _ := estimate.BallVolume(seeded(8), 3, 5000)
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("Estimator adapters", func() {
	It("dispatch to the matching estimator", func() {
		var e estimate.Estimator = estimate.Interval{F: square, A: -4, B: 2}
		got, err := e.Estimate(seeded(30), largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 24, 0.4))

		e = estimate.Box{F: plane, Mins: []float64{1, -2}, Maxs: []float64{3, 1}}
		got, err = e.Estimate(seeded(31), largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", 54, 0.5))

		e = estimate.Ball{Dim: 2}
		got, err = e.Estimate(seeded(32), largeN)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNumerically("~", math.Pi, 0.03))
	})

	It("wraps plain functions", func() {
		e := estimate.EstimatorFunc(func(_ sampling.Source, n int) (float64, error) {
			return float64(n), nil
		})
		got, err := e.Estimate(seeded(1), 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(7.0))
	})

	It("validate bounds without sampling", func() {
		Expect(estimate.Box{Mins: []float64{1}, Maxs: []float64{0}}.Validate()).To(MatchError(sampling.ErrInvalidDomain))
		Expect(estimate.Ball{Dim: 0}.Validate()).To(MatchError(sampling.ErrInvalidDimension))
		Expect(estimate.Ball{Dim: 5}.Validate()).To(Succeed())
	})
})
