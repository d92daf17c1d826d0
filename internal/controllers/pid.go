package controllers

import (
	"math"

	"github.com/san-kum/odosim/internal/sim"
)

// PID holds a target heading while driving forward at Speed (rad/s on both
// wheels). It reads the heading from state index HeadingIdx and steers by
// adding a differential correction to the wheel rates.
type PID struct {
	Kp         float64
	Ki         float64
	Kd         float64
	Target     float64
	Speed      float64
	HeadingIdx int
	integral   float64
	prevErr    float64
	prevT      float64
	first      bool
}

func NewPID(kp, ki, kd, target, speed float64, headingIdx int) *PID {
	return &PID{
		Kp:         kp,
		Ki:         ki,
		Kd:         kd,
		Target:     target,
		Speed:      speed,
		HeadingIdx: headingIdx,
		first:      true,
	}
}

func (p *PID) Compute(x sim.State, t float64) sim.Control {
	if len(x) <= p.HeadingIdx {
		return sim.Control{0, 0}
	}

	err := wrapAngle(p.Target - x[p.HeadingIdx])

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.steer(p.Kp * err)
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return p.steer(u)
	}
	return p.steer(p.Kp * err)
}

func (p *PID) steer(u float64) sim.Control {
	return sim.Control{p.Speed - u, p.Speed + u}
}

func wrapAngle(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}
