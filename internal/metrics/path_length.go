package metrics

import (
	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/sim"
)

// PathLength is the ground-truth distance travelled.
type PathLength struct {
	name    string
	sum     float64
	prev    odometry.Pose
	samples int
}

func NewPathLength() *PathLength {
	return &PathLength{
		name: "path_length",
	}
}

func (p *PathLength) Name() string {
	return p.name
}

func (p *PathLength) Observe(x sim.State, u sim.Control, t float64) {
	cur := truePose(x)
	if p.samples > 0 {
		p.sum += cur.Distance(p.prev)
	}
	p.prev = cur
	p.samples++
}

func (p *PathLength) Value() float64 {
	return p.sum
}

func (p *PathLength) Reset() {
	p.sum = 0
	p.samples = 0
}
