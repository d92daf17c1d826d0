package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/export"
	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/optim"
	"github.com/san-kum/odosim/internal/replay"
	"github.com/san-kum/odosim/internal/storage"
)

// resolveRobot picks robot constants from --robot, then --config, falling
// back to the default robot.
func resolveRobot() (config.Robot, error) {
	robot := config.DefaultRobot()
	if robotName != "" {
		r, ok := config.GetRobot(robotName)
		if !ok {
			return robot, fmt.Errorf("unknown robot: %s (available: %v)", robotName, config.ListRobots())
		}
		robot = r
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return robot, fmt.Errorf("failed to load config: %w", err)
		}
		robot = cfg.Robot
	}
	return robot, nil
}

func readSamples(path string) ([]replay.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := replay.ReadLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}
	logrus.Debugf("read %d samples from %s", len(samples), path)
	return samples, nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	table, err := storage.New(dataDir).LoadTable(runID)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := export.TrajectorySVG(w, export.PathsFromTable(table), svgWidth, svgHeight); err != nil {
		return fmt.Errorf("%s: %w", runID, err)
	}
	if svgOut != "" {
		logrus.Infof("wrote %s", svgOut)
	}
	return nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	nominal, err := resolveRobot()
	if err != nil {
		return err
	}
	if err := nominal.Validate(); err != nil {
		return err
	}
	if spread <= 0 || spread >= 1 {
		return fmt.Errorf("spread must be in (0, 1), got %v", spread)
	}

	samples, err := readSamples(args[0])
	if err != nil {
		return err
	}

	m := optim.Measurement{
		Start: odometry.Pose{X: startX, Y: startY, Theta: startTheta},
		Final: odometry.Pose{X: finalX, Y: finalY, Theta: finalTheta},
	}
	radii := optim.Linspace(nominal.WheelRadius*(1-spread), nominal.WheelRadius*(1+spread), gridSteps)
	baselines := optim.Linspace(nominal.Baseline*(1-spread), nominal.Baseline*(1+spread), gridSteps)
	logrus.Debugf("searching %d x %d grid", len(radii), len(baselines))

	best, residual, err := optim.Calibrate(cmd.Context(), nominal, samples, m, radii, baselines, headWeight)
	if err != nil {
		return err
	}

	fmt.Printf("wheel_radius: %.6f (nominal %.6f)\n", best.WheelRadius, nominal.WheelRadius)
	fmt.Printf("baseline:     %.6f (nominal %.6f)\n", best.Baseline, nominal.Baseline)
	fmt.Printf("residual:     %.6f\n", residual)
	return nil
}
