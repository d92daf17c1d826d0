package odometry_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odosim/internal/odometry"
)

var _ = Describe("DeltaPhi", func() {
	DescribeTable("is zero when the count does not change",
		func(ticks, resolution int) {
			dphi, next := odometry.DeltaPhi(ticks, ticks, resolution)
			Expect(dphi).To(Equal(0.0))
			Expect(next).To(Equal(ticks))
		},
		Entry("origin", 0, 135),
		Entry("positive count", 4096, 1024),
		Entry("negative count", -77, 20),
	)

	It("is linear in the tick delta", func() {
		base, _ := odometry.DeltaPhi(70, 40, 135)
		doubled, _ := odometry.DeltaPhi(100, 40, 135)
		negated, _ := odometry.DeltaPhi(10, 40, 135)

		Expect(doubled).To(BeNumerically("~", 2*base, 1e-12))
		Expect(negated).To(BeNumerically("~", -base, 1e-12))
	})

	It("doubles when the resolution is halved", func() {
		full, _ := odometry.DeltaPhi(25, 0, 200)
		half, _ := odometry.DeltaPhi(25, 0, 100)

		Expect(half).To(BeNumerically("~", 2*full, 1e-12))
	})
})

var _ = Describe("EstimatePose", func() {
	const (
		r        = 0.02
		baseline = 0.1
	)

	Context("when both wheels turn equally", func() {
		DescribeTable("moves along the previous heading without rotating",
			func(theta, phi float64) {
				x, y, newTheta := odometry.EstimatePose(r, baseline, 1, -1, theta, phi, phi)

				Expect(newTheta).To(Equal(theta))
				Expect(x).To(BeNumerically("~", 1+r*phi*math.Cos(theta), 1e-12))
				Expect(y).To(BeNumerically("~", -1+r*phi*math.Sin(theta), 1e-12))
			},
			Entry("heading 0", 0.0, math.Pi/2),
			Entry("heading π/3", math.Pi/3, 2.0),
			Entry("reversing", -2.5, -1.25),
		)
	})

	Context("when the wheels turn in opposite directions", func() {
		It("rotates in place", func() {
			phi := 0.8
			x, y, theta := odometry.EstimatePose(r, baseline, 2, 3, 0.1, -phi, phi)

			Expect(x).To(Equal(2.0))
			Expect(y).To(Equal(3.0))
			Expect(theta).To(BeNumerically("~", 0.1+2*r*phi/baseline, 1e-12))
		})
	})

	It("leaves the pose untouched with no wheel motion", func() {
		x, y, theta := odometry.EstimatePose(r, baseline, -4.5, 9.25, 7.0, 0, 0)
		Expect([]float64{x, y, theta}).To(Equal([]float64{-4.5, 9.25, 7.0}))
	})

	It("matches the reference scenario", func() {
		x, y, theta := odometry.EstimatePose(r, baseline, 0, 0, 0, math.Pi/2, math.Pi/2)

		Expect(theta).To(Equal(0.0))
		Expect(x).To(BeNumerically("~", 0.0314159, 1e-6))
		Expect(y).To(Equal(0.0))
	})
})
