package metrics

import (
	"math"

	"github.com/san-kum/odosim/internal/models"
	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/sim"
)

// PoseSource supplies the dead-reckoning estimate to compare against the
// ground-truth state.
type PoseSource interface {
	Pose() odometry.Pose
}

func truePose(x sim.State) odometry.Pose {
	return odometry.Pose{X: x[models.IdxX], Y: x[models.IdxY], Theta: x[models.IdxTheta]}
}

// PositionDrift is the largest Euclidean distance seen between the estimate
// and the true position.
type PositionDrift struct {
	name   string
	source PoseSource
	max    float64
	final  float64
}

func NewPositionDrift(source PoseSource) *PositionDrift {
	return &PositionDrift{
		name:   "position_drift",
		source: source,
	}
}

func (p *PositionDrift) Name() string {
	return p.name
}

func (p *PositionDrift) Observe(x sim.State, u sim.Control, t float64) {
	p.final = p.source.Pose().Distance(truePose(x))
	p.max = math.Max(p.max, p.final)
}

func (p *PositionDrift) Value() float64 {
	return p.max
}

// Final is the error at the last observed state.
func (p *PositionDrift) Final() float64 {
	return p.final
}

func (p *PositionDrift) Reset() {
	p.max = 0
	p.final = 0
}

// HeadingDrift is the largest absolute heading error. Neither heading is
// wrapped, so a full-turn offset counts as error.
type HeadingDrift struct {
	name   string
	source PoseSource
	max    float64
}

func NewHeadingDrift(source PoseSource) *HeadingDrift {
	return &HeadingDrift{
		name:   "heading_drift",
		source: source,
	}
}

func (h *HeadingDrift) Name() string {
	return h.name
}

func (h *HeadingDrift) Observe(x sim.State, u sim.Control, t float64) {
	h.max = math.Max(h.max, math.Abs(h.source.Pose().Theta-x[models.IdxTheta]))
}

func (h *HeadingDrift) Value() float64 {
	return h.max
}

func (h *HeadingDrift) Reset() {
	h.max = 0
}
