package odometry

import "math"

// DeltaPhi returns the wheel rotation in radians since prevTicks, assuming no
// slip, together with ticks to be passed back as the next prevTicks.
//
// A decreasing count gives a negative rotation; counter wrap-around is the
// caller's concern. The difference is taken in float64 so counts far apart
// cannot overflow int.
func DeltaPhi(ticks, prevTicks, resolution int) (float64, int) {
	deltaTicks := float64(ticks) - float64(prevTicks)
	dphi := 2 * math.Pi * deltaTicks / float64(resolution)
	return dphi, ticks
}

// EstimatePose advances the pose (xPrev, yPrev, thetaPrev) by the wheel
// rotations dPhiLeft and dPhiRight.
//
// r is the wheel radius and baseline the wheel-to-wheel distance. The
// translation is applied along thetaPrev (a first-order step, not the exact
// arc), and theta is not wrapped.
func EstimatePose(r, baseline, xPrev, yPrev, thetaPrev, dPhiLeft, dPhiRight float64) (x, y, theta float64) {
	dl := r * dPhiLeft
	dr := r * dPhiRight

	// distance travelled by the axle centre, and heading change
	dA := (dl + dr) / 2
	dT := (dr - dl) / baseline

	dx := dA * math.Cos(thetaPrev)
	dy := dA * math.Sin(thetaPrev)

	x = xPrev + dx
	y = yPrev + dy
	theta = thetaPrev + dT
	return x, y, theta
}
