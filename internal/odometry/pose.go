package odometry

import (
	"fmt"
	"math"
)

// Pose is a planar position and heading in radians.
type Pose struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Theta float64 `json:"theta" yaml:"theta"`
}

// Advance is EstimatePose on a Pose value.
func (p Pose) Advance(r, baseline, dPhiLeft, dPhiRight float64) Pose {
	x, y, theta := EstimatePose(r, baseline, p.X, p.Y, p.Theta, dPhiLeft, dPhiRight)
	return Pose{X: x, Y: y, Theta: theta}
}

// Normalized returns p with Theta wrapped to (-π, π].
func (p Pose) Normalized() Pose {
	theta := math.Remainder(p.Theta, 2*math.Pi)
	if theta == -math.Pi {
		theta = math.Pi
	}
	p.Theta = theta
	return p
}

// Distance is the Euclidean distance between the positions of p and q.
func (p Pose) Distance(q Pose) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Pose) IsValid() bool {
	for _, v := range []float64{p.X, p.Y, p.Theta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Pose) String() string {
	return fmt.Sprintf("(x=%.4f, y=%.4f, theta=%.4f)", p.X, p.Y, p.Theta)
}
