package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/odometry"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	robotName  string
	integrator string
	profile    string
	dt         float64
	duration   float64
	startX     float64
	startY     float64
	startTheta float64
	leftSpeed  float64
	rightSpeed float64
	resolution int
	radius     float64
	baseline   float64
	dPhiLeft   float64
	dPhiRight  float64
	normalize  bool
	noSave     bool

	svgOut     string
	svgWidth   int
	svgHeight  int
	finalX     float64
	finalY     float64
	finalTheta float64
	spread     float64
	gridSteps  int
	headWeight float64
)

// main runs the odosim CLI and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags bind to package globals, so each
// call resets them to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "odosim",
		Short:         "differential-drive odometry lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	deltaCmd := &cobra.Command{
		Use:   "delta [ticks] [prev_ticks]",
		Short: "wheel rotation between two encoder readings",
		Args:  cobra.ExactArgs(2),
		RunE:  runDelta,
	}
	deltaCmd.Flags().IntVar(&resolution, "resolution", config.DefaultResolution, "encoder ticks per revolution")

	poseCmd := &cobra.Command{
		Use:   "pose",
		Short: "single dead-reckoning pose update",
		Args:  cobra.NoArgs,
		RunE:  runPose,
	}
	poseCmd.Flags().Float64Var(&radius, "radius", config.DefaultWheelRadius, "wheel radius")
	poseCmd.Flags().Float64Var(&baseline, "baseline", config.DefaultBaseline, "distance between wheels")
	poseCmd.Flags().Float64Var(&startX, "x", 0, "previous x")
	poseCmd.Flags().Float64Var(&startY, "y", 0, "previous y")
	poseCmd.Flags().Float64Var(&startTheta, "theta", 0, "previous heading (rad)")
	poseCmd.Flags().Float64Var(&dPhiLeft, "left", 0, "left wheel rotation (rad)")
	poseCmd.Flags().Float64Var(&dPhiRight, "right", 0, "right wheel rotation (rad)")
	poseCmd.Flags().BoolVar(&normalize, "normalize", false, "wrap the printed heading to (-π, π]")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate a robot and track it by odometry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&robotName, "robot", "duckiebot", "robot preset family")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "ground-truth integrator")
	runCmd.Flags().StringVar(&profile, "profile", "constant", "wheel-speed profile")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Float64Var(&leftSpeed, "left", config.DefaultWheelSpeed, "left wheel speed (rad/s, constant profile)")
	runCmd.Flags().Float64Var(&rightSpeed, "right", config.DefaultWheelSpeed, "right wheel speed (rad/s, constant profile)")
	runCmd.Flags().Float64Var(&startX, "x", 0, "initial x")
	runCmd.Flags().Float64Var(&startY, "y", 0, "initial y")
	runCmd.Flags().Float64Var(&startTheta, "theta", 0, "initial heading (rad)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	replayCmd := &cobra.Command{
		Use:   "replay [log.csv]",
		Short: "dead-reckon a recorded encoder log",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	replayCmd.Flags().StringVar(&robotName, "robot", "", "take robot constants from a preset family")
	replayCmd.Flags().Float64Var(&startX, "x", 0, "initial x")
	replayCmd.Flags().Float64Var(&startY, "y", 0, "initial y")
	replayCmd.Flags().Float64Var(&startTheta, "theta", 0, "initial heading (rad)")
	replayCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot estimate against ground truth",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "draw a run's trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 600, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate [log.csv]",
		Short: "fit wheel radius and baseline to a measured final pose",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalibrate,
	}
	calibrateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	calibrateCmd.Flags().StringVar(&robotName, "robot", "", "take nominal constants from a preset family")
	calibrateCmd.Flags().Float64Var(&startX, "x", 0, "measured start x")
	calibrateCmd.Flags().Float64Var(&startY, "y", 0, "measured start y")
	calibrateCmd.Flags().Float64Var(&startTheta, "theta", 0, "measured start heading (rad)")
	calibrateCmd.Flags().Float64Var(&finalX, "final-x", 0, "measured final x")
	calibrateCmd.Flags().Float64Var(&finalY, "final-y", 0, "measured final y")
	calibrateCmd.Flags().Float64Var(&finalTheta, "final-theta", 0, "measured final heading (rad)")
	calibrateCmd.Flags().Float64Var(&spread, "spread", 0.2, "search +/- this fraction around the nominal constants")
	calibrateCmd.Flags().IntVar(&gridSteps, "steps", 41, "grid points per parameter")
	calibrateCmd.Flags().Float64Var(&headWeight, "heading-weight", 0.1, "metres of cost per radian of heading error")

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "play a stored run back in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  liveRun,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [run_id]",
		Short: "play a stored run back in a window",
		Args:  cobra.ExactArgs(1),
		RunE:  guiRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [robot]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(deltaCmd, poseCmd, runCmd, replayCmd, listCmd, plotCmd, exportCmd, svgCmd, calibrateCmd, liveCmd, guiCmd, presetsCmd)
	return rootCmd
}

func runDelta(cmd *cobra.Command, args []string) error {
	ticks, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("ticks: %w", err)
	}
	prev, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("prev_ticks: %w", err)
	}
	if resolution <= 0 {
		logrus.Warnf("resolution %d is not positive; result will not be finite", resolution)
	}

	dphi, next := odometry.DeltaPhi(ticks, prev, resolution)
	fmt.Printf("dphi: %.6f rad\n", dphi)
	fmt.Printf("ticks: %d\n", next)
	return nil
}

func runPose(cmd *cobra.Command, args []string) error {
	if baseline == 0 {
		logrus.Warn("baseline is zero; heading will not be finite")
	}

	p := odometry.Pose{X: startX, Y: startY, Theta: startTheta}.Advance(radius, baseline, dPhiLeft, dPhiRight)
	if normalize {
		p = p.Normalized()
	}

	fmt.Printf("x: %.6f\n", p.X)
	fmt.Printf("y: %.6f\n", p.Y)
	fmt.Printf("theta: %.6f\n", p.Theta)
	return nil
}
