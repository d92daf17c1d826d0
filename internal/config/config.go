package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/sim"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 10.0
	DefaultWheelRadius = 0.0318
	DefaultBaseline    = 0.1
	DefaultResolution  = 135
	DefaultWheelSpeed  = 8.0
	DefaultTurnSpeed   = 4.0
	DefaultSide        = 0.5
	DefaultKp          = 10.0
	DefaultKi          = 0.1
	DefaultKd          = 0.5
)

type Config struct {
	Robot         Robot         `yaml:"robot"`
	Profile       string        `yaml:"profile"`
	Integrator    string        `yaml:"integrator"`
	Dt            float64       `yaml:"dt"`
	Duration      float64       `yaml:"duration"`
	InitPose      odometry.Pose `yaml:"init_pose"`
	ProfileParams ProfileConfig `yaml:"profile_params"`
}

// Robot holds the physical constants of a differential-drive robot. Lengths
// share one unit (metres in the presets).
type Robot struct {
	WheelRadius     float64 `yaml:"wheel_radius" json:"wheel_radius"`
	Baseline        float64 `yaml:"baseline" json:"baseline"`
	ResolutionLeft  int     `yaml:"resolution_left" json:"resolution_left"`
	ResolutionRight int     `yaml:"resolution_right" json:"resolution_right"`
}

// ProfileConfig carries the parameters of every wheel-speed profile; each
// profile reads only the fields it needs.
type ProfileConfig struct {
	Left      float64 `yaml:"left"`
	Right     float64 `yaml:"right"`
	Speed     float64 `yaml:"speed"`
	TurnSpeed float64 `yaml:"turn_speed"`
	Side      float64 `yaml:"side"`
	Heading   float64 `yaml:"heading"`
	Kp        float64 `yaml:"kp"`
	Ki        float64 `yaml:"ki"`
	Kd        float64 `yaml:"kd"`
}

func DefaultRobot() Robot {
	return Robot{
		WheelRadius:     DefaultWheelRadius,
		Baseline:        DefaultBaseline,
		ResolutionLeft:  DefaultResolution,
		ResolutionRight: DefaultResolution,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Robot:      DefaultRobot(),
		Profile:    "constant",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		ProfileParams: ProfileConfig{
			Left:      DefaultWheelSpeed,
			Right:     DefaultWheelSpeed,
			Speed:     DefaultWheelSpeed,
			TurnSpeed: DefaultTurnSpeed,
			Side:      DefaultSide,
			Kp:        DefaultKp,
			Ki:        DefaultKi,
			Kd:        DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the constants the odometry functions take on trust.
func (r Robot) Validate() error {
	if !(r.WheelRadius > 0) {
		return fmt.Errorf("wheel radius must be positive, got %v: %w", r.WheelRadius, sim.ErrParameterBounds)
	}
	if !(r.Baseline > 0) {
		return fmt.Errorf("baseline must be positive, got %v: %w", r.Baseline, sim.ErrParameterBounds)
	}
	if r.ResolutionLeft <= 0 || r.ResolutionRight <= 0 {
		return fmt.Errorf("encoder resolution must be positive, got %d/%d: %w", r.ResolutionLeft, r.ResolutionRight, sim.ErrParameterBounds)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Robot.Validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v: %w", c.Dt, sim.ErrParameterBounds)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v: %w", c.Duration, sim.ErrParameterBounds)
	}
	return nil
}
