package controllers

import "github.com/san-kum/odosim/internal/sim"

// None holds both wheels still. A run with it checks that a parked robot's
// estimate never moves.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(x sim.State, t float64) sim.Control {
	return sim.Control{0, 0}
}
