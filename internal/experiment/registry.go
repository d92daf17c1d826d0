package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/controllers"
	"github.com/san-kum/odosim/internal/integrators"
	"github.com/san-kum/odosim/internal/models"
	"github.com/san-kum/odosim/internal/sim"
)

// ProfileFactory builds a wheel-speed profile for a robot.
type ProfileFactory func(robot config.Robot, p config.ProfileConfig) sim.Controller

type Registry struct {
	integrators map[string]func() sim.Integrator
	profiles    map[string]ProfileFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() sim.Integrator),
		profiles:    make(map[string]ProfileFactory),
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }

	r.profiles["none"] = func(config.Robot, config.ProfileConfig) sim.Controller {
		return controllers.NewNone()
	}
	r.profiles["constant"] = func(_ config.Robot, p config.ProfileConfig) sim.Controller {
		return controllers.NewConstant(p.Left, p.Right)
	}
	r.profiles["square"] = func(robot config.Robot, p config.ProfileConfig) sim.Controller {
		return controllers.NewSquare(p.Speed, p.TurnSpeed, p.Side, robot.WheelRadius, robot.Baseline)
	}
	r.profiles["heading"] = func(_ config.Robot, p config.ProfileConfig) sim.Controller {
		return controllers.NewPID(p.Kp, p.Ki, p.Kd, p.Heading, p.Speed, models.IdxTheta)
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("integrator %q: %w", name, sim.ErrUnknownName)
	}
	return fn(), nil
}

func (r *Registry) GetProfile(name string, robot config.Robot, p config.ProfileConfig) (sim.Controller, error) {
	fn, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", name, sim.ErrUnknownName)
	}
	return fn(robot, p), nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListProfiles() []string {
	return sortedKeys(r.profiles)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
