package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/metrics"
	"github.com/san-kum/odosim/internal/models"
	"github.com/san-kum/odosim/internal/sim"
	"github.com/san-kum/odosim/internal/tracking"
)

// Result pairs the ground-truth run with the dead-reckoning estimates taken
// at the same instants.
type Result struct {
	*sim.Result
	Estimates []tracking.Estimate
}

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	dyn       *models.DiffDrive
	tracker   *tracking.Tracker
	simulator *sim.Simulator
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	return &Experiment{cfg: cfg, registry: registry}
}

// Setup validates the configuration and wires the robot, integrator,
// profile, tracker and drift metrics together.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	profile, err := e.registry.GetProfile(e.cfg.Profile, e.cfg.Robot, e.cfg.ProfileParams)
	if err != nil {
		return err
	}

	tracker, err := tracking.New(e.cfg.Robot, e.cfg.InitPose)
	if err != nil {
		return err
	}

	e.dyn = models.NewDiffDrive(e.cfg.Robot.WheelRadius, e.cfg.Robot.Baseline)
	e.tracker = tracker
	e.simulator = sim.New(e.dyn, integ, profile)
	e.simulator.AddObserver(tracker)
	e.simulator.AddMetric(metrics.NewPositionDrift(tracker))
	e.simulator.AddMetric(metrics.NewHeadingDrift(tracker))
	e.simulator.AddMetric(metrics.NewPathLength())
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	p := e.cfg.InitPose
	e.tracker.Restart(p)

	simCfg := sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	}

	res, err := e.simulator.Run(ctx, e.dyn.InitState(p.X, p.Y, p.Theta), simCfg)
	if err != nil {
		return nil, err
	}
	return &Result{Result: res, Estimates: e.tracker.History()}, nil
}

func (e *Experiment) Tracker() *tracking.Tracker {
	return e.tracker
}
