// Package odometry computes a differential-drive robot's planar pose from
// incremental wheel-encoder readings by dead reckoning.
//
// Two pure functions compose once per timestep:
//
//   - [DeltaPhi]: encoder ticks (current, previous) to wheel rotation in radians
//   - [EstimatePose]: both wheel rotations plus the previous pose to the new pose
//
// # Example
//
//	dl, prevL := odometry.DeltaPhi(left, prevL, 135)
//	dr, prevR := odometry.DeltaPhi(right, prevR, 135)
//	x, y, theta = odometry.EstimatePose(0.0318, 0.1, x, y, theta, dl, dr)
//
// # Invalid input
//
// Nothing is validated and nothing panics. All arithmetic is float64, so a
// zero resolution or baseline yields ±Inf or NaN, which propagates into the
// returned values. Callers that need guarantees validate their constants up
// front (see the tracking package).
//
// # Thread Safety
//
// Every function is pure and may be called from any goroutine.
package odometry
