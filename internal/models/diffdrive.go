package models

import (
	"math"

	"github.com/san-kum/odosim/internal/sim"
)

// State layout of DiffDrive.
const (
	IdxX = iota
	IdxY
	IdxTheta
	IdxPhiL
	IdxPhiR
)

// DiffDrive is the ground-truth differential-drive robot. Its state is
// [x, y, theta, phiL, phiR] where phiL and phiR are the accumulated wheel
// angles; its control is [omegaL, omegaR] in rad/s.
type DiffDrive struct {
	WheelRadius float64
	Baseline    float64
}

func NewDiffDrive(wheelRadius, baseline float64) *DiffDrive {
	return &DiffDrive{
		WheelRadius: wheelRadius,
		Baseline:    baseline,
	}
}

func (d *DiffDrive) StateDim() int   { return 5 }
func (d *DiffDrive) ControlDim() int { return 2 }

func (d *DiffDrive) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	theta := x[IdxTheta]

	omegaL, omegaR := 0.0, 0.0
	if len(u) >= 2 {
		omegaL, omegaR = u[0], u[1]
	}

	v, w := d.Twist(omegaL, omegaR)
	sin, cos := math.Sincos(theta)

	return sim.State{v * cos, v * sin, w, omegaL, omegaR}
}

// Twist converts wheel angular velocities into the body's linear and
// angular velocity.
func (d *DiffDrive) Twist(omegaL, omegaR float64) (v, w float64) {
	v = d.WheelRadius * (omegaL + omegaR) / 2
	w = d.WheelRadius * (omegaR - omegaL) / d.Baseline
	return v, w
}

// WheelSpeeds is the inverse of Twist.
func (d *DiffDrive) WheelSpeeds(v, w float64) (omegaL, omegaR float64) {
	omegaL = (v - w*d.Baseline/2) / d.WheelRadius
	omegaR = (v + w*d.Baseline/2) / d.WheelRadius
	return omegaL, omegaR
}

func (d *DiffDrive) InitState(x, y, theta float64) sim.State {
	return sim.State{x, y, theta, 0, 0}
}
