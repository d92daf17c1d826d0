// Package tracking keeps the per-robot state that the odometry functions
// leave to their caller: the running pose and the previous encoder counts.
package tracking

import (
	"fmt"
	"sync"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/models"
	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/sim"
)

// Estimate is one tracker output.
type Estimate struct {
	Time       float64
	LeftTicks  int
	RightTicks int
	Pose       odometry.Pose
}

// Tracker integrates encoder counts into a pose. It is safe for concurrent
// use; updates are serialised.
type Tracker struct {
	mu sync.Mutex

	robot     config.Robot
	pose      odometry.Pose
	prevLeft  int
	prevRight int
	seeded    bool
	steps     int

	leftEnc, rightEnc *models.Encoder
	history           []Estimate
}

func New(robot config.Robot, start odometry.Pose) (*Tracker, error) {
	if err := robot.Validate(); err != nil {
		return nil, fmt.Errorf("tracking: %w", err)
	}
	if !start.IsValid() {
		return nil, fmt.Errorf("tracking: start pose %v: %w", start, sim.ErrInvalidState)
	}
	return &Tracker{
		robot:    robot,
		pose:     start,
		leftEnc:  models.NewEncoder(robot.ResolutionLeft),
		rightEnc: models.NewEncoder(robot.ResolutionRight),
	}, nil
}

// Reset seeds the previous counts without moving the pose.
func (tr *Tracker) Reset(leftTicks, rightTicks int) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.prevLeft, tr.prevRight = leftTicks, rightTicks
	tr.seeded = true
}

// Restart puts the tracker back to a fresh state at start: unseeded, no
// steps and an empty history.
func (tr *Tracker) Restart(start odometry.Pose) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.pose = start
	tr.prevLeft, tr.prevRight = 0, 0
	tr.seeded = false
	tr.steps = 0
	tr.history = nil
}

// Update advances the pose by the wheel motion since the previous counts.
// The first call on an unseeded tracker only seeds.
func (tr *Tracker) Update(leftTicks, rightTicks int) odometry.Pose {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.update(leftTicks, rightTicks)
}

func (tr *Tracker) update(leftTicks, rightTicks int) odometry.Pose {
	if !tr.seeded {
		tr.prevLeft, tr.prevRight = leftTicks, rightTicks
		tr.seeded = true
		return tr.pose
	}

	var dl, dr float64
	dl, tr.prevLeft = odometry.DeltaPhi(leftTicks, tr.prevLeft, tr.robot.ResolutionLeft)
	dr, tr.prevRight = odometry.DeltaPhi(rightTicks, tr.prevRight, tr.robot.ResolutionRight)

	tr.pose = tr.pose.Advance(tr.robot.WheelRadius, tr.robot.Baseline, dl, dr)
	tr.steps++
	return tr.pose
}

// OnStep quantises the ground-truth wheel angles of a models.DiffDrive state
// through the encoders and updates the estimate.
func (tr *Tracker) OnStep(x sim.State, u sim.Control, t float64) {
	if len(x) <= models.IdxPhiR {
		return
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	left := tr.leftEnc.Ticks(x[models.IdxPhiL])
	right := tr.rightEnc.Ticks(x[models.IdxPhiR])
	pose := tr.update(left, right)
	tr.history = append(tr.history, Estimate{Time: t, LeftTicks: left, RightTicks: right, Pose: pose})
}

func (tr *Tracker) Pose() odometry.Pose {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.pose
}

// Steps counts updates that moved the pose.
func (tr *Tracker) Steps() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.steps
}

// History returns the estimates recorded by OnStep.
func (tr *Tracker) History() []Estimate {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]Estimate, len(tr.history))
	copy(out, tr.history)
	return out
}
