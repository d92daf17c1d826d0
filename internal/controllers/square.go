package controllers

import (
	"math"

	"github.com/san-kum/odosim/internal/sim"
)

// Square drives an open-loop square: a straight side of length Side, then a
// left pivot of π/2, repeated. Phase timing is derived from the wheel
// geometry so no feedback is needed.
type Square struct {
	Speed       float64 // wheel rate on the sides, rad/s
	TurnSpeed   float64 // wheel rate while pivoting, rad/s
	Side        float64
	WheelRadius float64
	Baseline    float64
}

func NewSquare(speed, turnSpeed, side, wheelRadius, baseline float64) *Square {
	return &Square{
		Speed:       speed,
		TurnSpeed:   turnSpeed,
		Side:        side,
		WheelRadius: wheelRadius,
		Baseline:    baseline,
	}
}

func (s *Square) sideTime() float64 {
	return s.Side / (s.WheelRadius * s.Speed)
}

func (s *Square) turnTime() float64 {
	// heading rate while pivoting is 2·R·TurnSpeed/baseline
	return (math.Pi / 2) * s.Baseline / (2 * s.WheelRadius * s.TurnSpeed)
}

func (s *Square) Compute(x sim.State, t float64) sim.Control {
	side, turn := s.sideTime(), s.turnTime()
	phase := math.Mod(t, side+turn)
	if phase < side {
		return sim.Control{s.Speed, s.Speed}
	}
	return sim.Control{-s.TurnSpeed, s.TurnSpeed}
}

// Period is the time taken for one full lap.
func (s *Square) Period() float64 {
	return 4 * (s.sideTime() + s.turnTime())
}
