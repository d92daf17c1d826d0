package controllers

import "github.com/san-kum/odosim/internal/sim"

// Constant drives both wheels at fixed angular velocities (rad/s). Equal
// speeds give a straight line, opposite speeds a pivot, anything else an arc.
type Constant struct {
	Left, Right float64
}

func NewConstant(left, right float64) *Constant {
	return &Constant{Left: left, Right: right}
}

func (c *Constant) Compute(x sim.State, t float64) sim.Control {
	return sim.Control{c.Left, c.Right}
}
