package field_test

import (
	"bytes"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/logging"
)

var _ = Describe("Grid", func() {
	var logBuf *bytes.Buffer

	BeforeEach(func() {
		logBuf = &bytes.Buffer{}
		logging.SetWriter(logBuf)
	})

	AfterEach(func() {
		logging.SetWriter(nil)
	})

	Describe("construction", func() {
		It("quantizes the shape with a ceiling", func() {
			cases := []struct {
				w, h, res  float64
				cols, rows int
			}{
				{1, 1, 0.05, 20, 20},
				{100, 100, 0.1, 1000, 1000},
				{1, 1, 0.3, 4, 4},
				{2.5, 1.2, 0.5, 5, 3},
			}
			for _, c := range cases {
				g, err := field.New(c.w, c.h, c.res, 3, field.InvLinear)
				Expect(err).NotTo(HaveOccurred())
				Expect(g.Cols()).To(Equal(c.cols))
				Expect(g.Rows()).To(Equal(c.rows))
			}
		})

		It("rejects non-positive extents and resolution", func() {
			for _, bad := range []struct{ w, h, res float64 }{
				{-1, 1, 0.1},
				{1, 0, 0.1},
				{1, 1, -0.5},
				{1, 1, 0},
			} {
				_, err := field.New(bad.w, bad.h, bad.res, 2, field.InvLinear)
				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(field.ConfigError{}))
			}
		})

		It("clamps a too-small neighbourhood and logs the correction", func() {
			g, err := field.New(1, 1, 0.1, 1, field.InvLinear)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Neighbourhood()).To(Equal(field.MinNeighbourhood))
			Expect(logBuf.String()).To(ContainSubstring("clamping"))
		})

		It("falls back to the default decay for unknown values", func() {
			g, err := field.New(1, 1, 0.1, 2, field.Decay("parabolic"))
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Decay()).To(Equal(field.DefaultDecay))
			Expect(logBuf.String()).To(ContainSubstring("unknown decay"))
		})

		It("accepts all three decay laws silently", func() {
			for _, d := range []field.Decay{field.InvLinear, field.InvQuadratic, field.InvCubic} {
				g, err := field.New(1, 1, 0.1, 2, d)
				Expect(err).NotTo(HaveOccurred())
				Expect(g.Decay()).To(Equal(d))
				Expect(logBuf.Len()).To(BeZero())
			}
		})
	})

	Describe("initialization", func() {
		It("stores the coordinate itself under the identity generator", func() {
			g, err := field.New(1, 1, 0.25, 2, field.InvLinear)
			Expect(err).NotTo(HaveOccurred())
			g.Initialize(field.Identity)

			for i := 0; i < g.Cols(); i++ {
				for j := 0; j < g.Rows(); j++ {
					x, y := g.Coordinate(i, j)
					Expect(g.At(i, j)).To(Equal(field.Vec2{X: x, Y: y}))
				}
			}
		})

		It("populates every cell with the default generator", func() {
			g, err := field.New(2, 3, 0.5, 2, field.InvLinear)
			Expect(err).NotTo(HaveOccurred())

			for _, c := range g.Cells() {
				Expect(c.Vector.IsValid()).To(BeTrue())
				Expect(c.Vector.X).To(And(BeNumerically(">=", 0), BeNumerically("<", g.Width())))
				Expect(c.Vector.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", g.Height())))
			}
		})

		It("overwrites wholesale on re-initialization", func() {
			g, err := field.New(1, 1, 0.5, 2, field.InvLinear)
			Expect(err).NotTo(HaveOccurred())

			g.Initialize(func(x, y float64) field.Vec2 { return field.Vec2{X: 1} })
			g.Initialize(func(x, y float64) field.Vec2 { return field.Vec2{Y: 2} })

			for _, c := range g.Cells() {
				Expect(c.Vector).To(Equal(field.Vec2{Y: 2}))
			}
		})

		It("leaves earlier snapshots untouched", func() {
			g, err := field.New(1, 1, 0.5, 2, field.InvLinear)
			Expect(err).NotTo(HaveOccurred())

			g.Initialize(func(x, y float64) field.Vec2 { return field.Vec2{X: 1} })
			snap := g.Snapshot()
			g.Initialize(func(x, y float64) field.Vec2 { return field.Vec2{X: 9} })

			for _, v := range snap {
				Expect(v).To(Equal(field.Vec2{X: 1}))
			}
		})
	})

	Describe("enumeration", func() {
		It("yields cols*rows pairs in row-major order", func() {
			g, err := field.New(1, 1, 0.5, 2, field.InvLinear)
			Expect(err).NotTo(HaveOccurred())

			cells := g.Cells()
			Expect(cells).To(HaveLen(g.Cols() * g.Rows()))
			Expect(cells[0].I).To(Equal(0))
			Expect(cells[0].J).To(Equal(0))
			Expect(cells[len(cells)-1].I).To(Equal(g.Cols() - 1))
			Expect(cells[len(cells)-1].J).To(Equal(g.Rows() - 1))
		})
	})
})

var _ = Describe("Decay", func() {
	It("parses the closed set of law names", func() {
		for _, name := range []string{"inv_linear", "inv_quadratic", "inv_cubic"} {
			d, ok := field.ParseDecay(name)
			Expect(ok).To(BeTrue())
			Expect(string(d)).To(Equal(name))
		}
		_, ok := field.ParseDecay("linear")
		Expect(ok).To(BeFalse())
	})

	It("weights strictly decrease with distance", func() {
		for _, d := range []field.Decay{field.InvLinear, field.InvQuadratic, field.InvCubic} {
			prev := math.Inf(1)
			for _, dist := range []float64{0.1, 0.5, 1, 2, 10} {
				w := d.Weight(dist)
				Expect(w).To(BeNumerically("<", prev), "decay %s at distance %g", d, dist)
				Expect(w).To(BeNumerically(">", 0))
				prev = w
			}
		}
	})

	It("orders the laws by sharpness beyond unit distance", func() {
		Expect(field.InvCubic.Weight(2)).To(BeNumerically("<", field.InvQuadratic.Weight(2)))
		Expect(field.InvQuadratic.Weight(2)).To(BeNumerically("<", field.InvLinear.Weight(2)))
	})
})

var _ = Describe("Vec2", func() {
	It("does componentwise arithmetic", func() {
		a := field.Vec2{X: 1, Y: 2}
		b := field.Vec2{X: 3, Y: -1}

		Expect(a.Add(b)).To(Equal(field.Vec2{X: 4, Y: 1}))
		Expect(a.Sub(b)).To(Equal(field.Vec2{X: -2, Y: 3}))
		Expect(a.Scale(2)).To(Equal(field.Vec2{X: 2, Y: 4}))
	})

	It("computes the Euclidean norm", func() {
		Expect(field.Vec2{X: 3, Y: 4}.Norm()).To(Equal(5.0))
		Expect(field.Vec2{}.Norm()).To(BeZero())
	})

	It("rejects NaN and infinities", func() {
		Expect(field.Vec2{X: 1, Y: 1}.IsValid()).To(BeTrue())
		Expect(field.Vec2{X: math.NaN()}.IsValid()).To(BeFalse())
		Expect(field.Vec2{Y: math.Inf(-1)}.IsValid()).To(BeFalse())
	})
})
