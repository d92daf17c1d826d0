package optim

import (
	"context"
	"math"
	"runtime"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/replay"
	"github.com/san-kum/odosim/internal/tracking"
)

const (
	ParamWheelRadius = "wheel_radius"
	ParamBaseline    = "baseline"
)

// Measurement is a hand-measured pair of poses bracketing an encoder log.
type Measurement struct {
	Start odometry.Pose
	Final odometry.Pose
}

// Residual is the mismatch between an estimated and measured final pose:
// position error plus headingWeight times the absolute heading error.
func Residual(est, measured odometry.Pose, headingWeight float64) float64 {
	return est.Distance(measured) + headingWeight*math.Abs(est.Theta-measured.Theta)
}

// CalibrationObjective replays samples with the wheel radius and baseline
// taken from the grid point and scores the final pose against m. Each call
// builds its own tracker, so calls may run concurrently.
func CalibrationObjective(robot config.Robot, samples []replay.Sample, m Measurement, headingWeight float64) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		r := robot
		if v, ok := params[ParamWheelRadius]; ok {
			r.WheelRadius = v
		}
		if v, ok := params[ParamBaseline]; ok {
			r.Baseline = v
		}

		tr, err := tracking.New(r, m.Start)
		if err != nil {
			return 0, err
		}
		est := replay.Run(tr, samples)
		if len(est) == 0 {
			return Residual(m.Start, m.Final, headingWeight), nil
		}
		return Residual(est[len(est)-1].Pose, m.Final, headingWeight), nil
	}
}

// Calibrate grid-searches wheel radius and baseline for the robot constants
// that best reproduce the measured final pose.
func Calibrate(ctx context.Context, robot config.Robot, samples []replay.Sample, m Measurement, radii, baselines []float64, headingWeight float64) (config.Robot, float64, error) {
	gs, err := NewGridSearch([]string{ParamWheelRadius, ParamBaseline}, [][]float64{radii, baselines})
	if err != nil {
		return robot, 0, err
	}
	gs.Workers = runtime.NumCPU()

	params, residual, err := gs.Search(ctx, CalibrationObjective(robot, samples, m, headingWeight))
	if err != nil {
		return robot, 0, err
	}

	robot.WheelRadius = params[ParamWheelRadius]
	robot.Baseline = params[ParamBaseline]
	return robot, residual, nil
}
