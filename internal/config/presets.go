package config

import (
	"sort"

	"github.com/san-kum/odosim/internal/odometry"
)

var duckiebot = Robot{WheelRadius: 0.0318, Baseline: 0.1, ResolutionLeft: 135, ResolutionRight: 135}

var turtle = Robot{WheelRadius: 0.033, Baseline: 0.16, ResolutionLeft: 4096, ResolutionRight: 4096}

var Presets = map[string]map[string]*Config{
	"duckiebot": {
		"straight": {
			Robot: duckiebot, Profile: "constant", Integrator: "rk4", Dt: 0.01, Duration: 5.0,
			ProfileParams: ProfileConfig{Left: 8.0, Right: 8.0},
		},
		"pivot": {
			Robot: duckiebot, Profile: "constant", Integrator: "rk4", Dt: 0.01, Duration: 5.0,
			ProfileParams: ProfileConfig{Left: -4.0, Right: 4.0},
		},
		"arc": {
			Robot: duckiebot, Profile: "constant", Integrator: "rk4", Dt: 0.01, Duration: 10.0,
			ProfileParams: ProfileConfig{Left: 6.0, Right: 8.0},
		},
		"square": {
			Robot: duckiebot, Profile: "square", Integrator: "rk4", Dt: 0.005, Duration: 12.0,
			ProfileParams: ProfileConfig{Speed: 8.0, TurnSpeed: 4.0, Side: 0.5},
		},
		"heading": {
			Robot: duckiebot, Profile: "heading", Integrator: "rk4", Dt: 0.01, Duration: 10.0,
			InitPose:      odometry.Pose{Theta: 0.6},
			ProfileParams: ProfileConfig{Speed: 6.0, Heading: 0, Kp: 10.0, Ki: 0.1, Kd: 0.5},
		},
	},
	"turtle": {
		"straight": {
			Robot: turtle, Profile: "constant", Integrator: "rk4", Dt: 0.01, Duration: 5.0,
			ProfileParams: ProfileConfig{Left: 6.0, Right: 6.0},
		},
		"arc": {
			Robot: turtle, Profile: "constant", Integrator: "euler", Dt: 0.02, Duration: 20.0,
			ProfileParams: ProfileConfig{Left: 4.0, Right: 6.0},
		},
	},
}

func GetPreset(robot, preset string) *Config {
	robotPresets, ok := Presets[robot]
	if !ok {
		return nil
	}
	cfg, ok := robotPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(robot string) []string {
	robotPresets, ok := Presets[robot]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(robotPresets))
	for name := range robotPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListRobots() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetRobot returns the physical constants of a preset family.
func GetRobot(name string) (Robot, bool) {
	switch name {
	case "duckiebot":
		return duckiebot, true
	case "turtle":
		return turtle, true
	}
	return Robot{}, false
}
