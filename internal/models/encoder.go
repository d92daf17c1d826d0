package models

import "math"

// Encoder quantises an accumulated wheel angle into a tick count.
type Encoder struct {
	Resolution int
}

func NewEncoder(resolution int) *Encoder {
	return &Encoder{Resolution: resolution}
}

// Ticks counts whole ticks passed since angle zero, flooring toward -Inf so
// a wheel turning backwards through zero keeps a uniform step.
func (e *Encoder) Ticks(phi float64) int {
	return int(math.Floor(phi * float64(e.Resolution) / (2 * math.Pi)))
}

// Angle is the wheel angle at the start of the given tick.
func (e *Encoder) Angle(ticks int) float64 {
	return 2 * math.Pi * float64(ticks) / float64(e.Resolution)
}
