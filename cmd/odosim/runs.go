package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/experiment"
	"github.com/san-kum/odosim/internal/gui"
	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/replay"
	"github.com/san-kum/odosim/internal/storage"
	"github.com/san-kum/odosim/internal/tracking"
	"github.com/san-kum/odosim/internal/viz"
)

var metricOrder = []string{"position_drift", "heading_drift", "path_length"}

// resolveRunConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveRunConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := profile

	robot, ok := config.GetRobot(robotName)
	if !ok {
		return nil, "", fmt.Errorf("unknown robot: %s (available: %v)", robotName, config.ListRobots())
	}
	cfg.Robot = robot

	if len(args) > 0 {
		preset := config.GetPreset(robotName, args[0])
		if preset == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets(robotName))
		}
		cfg = preset
		name = args[0]
		logrus.Debugf("using preset %s/%s", robotName, args[0])
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
		logrus.Debugf("loaded config %s", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("profile") {
		cfg.Profile = profile
	}
	if flags.Changed("left") {
		cfg.ProfileParams.Left = leftSpeed
	}
	if flags.Changed("right") {
		cfg.ProfileParams.Right = rightSpeed
	}
	if flags.Changed("x") {
		cfg.InitPose.X = startX
	}
	if flags.Changed("y") {
		cfg.InitPose.Y = startY
	}
	if flags.Changed("theta") {
		cfg.InitPose.Theta = startTheta
	}

	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveRunConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.NewRegistry())
	if err := exp.Setup(); err != nil {
		return err
	}

	logrus.Debugf("robot: R=%.4f baseline=%.4f resolution=%d/%d",
		cfg.Robot.WheelRadius, cfg.Robot.Baseline, cfg.Robot.ResolutionLeft, cfg.Robot.ResolutionRight)
	logrus.Infof("running %s (%s, %s) for %.2fs", name, cfg.Profile, cfg.Integrator, cfg.Duration)
	start := time.Now()

	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		logrus.Warnf("simulation: %v", e)
	}
	logrus.Debugf("completed %d steps in %v", res.StepsTaken, time.Since(start))

	final := exp.Tracker().Pose()
	fmt.Printf("estimate: %s\n", final)
	fmt.Println(viz.Summary("metrics", metricOrder, res.Metrics))

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Source:     "sim",
		Preset:     name,
		Profile:    cfg.Profile,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Robot:      cfg.Robot,
		Metrics:    res.Metrics,
	}
	runID, err := st.Save(name, meta, res.Table())
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := args[0]

	robot, err := resolveRobot()
	if err != nil {
		return err
	}

	tr, err := tracking.New(robot, odometry.Pose{X: startX, Y: startY, Theta: startTheta})
	if err != nil {
		return err
	}

	samples, err := readSamples(path)
	if err != nil {
		return err
	}

	estimates := replay.Run(tr, samples)
	final := estimates[len(estimates)-1]
	fmt.Printf("samples: %d\n", len(estimates))
	fmt.Printf("estimate: %s\n", final.Pose)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Source:   path,
		Duration: final.Time - samples[0].Time,
		Robot:    robot,
		Metrics:  map[string]float64{},
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	runID, err := st.Save(name, meta, replay.Table(estimates))
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tDURATION\tSAMPLES\tDRIFT")

	for _, run := range runs {
		drift := "-"
		if v, ok := run.Metrics["position_drift"]; ok {
			drift = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%s\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Samples,
			drift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	table, err := st.LoadTable(runID)
	if err != nil {
		return err
	}

	if len(table.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("samples: %d\n\n", len(table.Rows))

	series := []struct {
		truth, est, caption string
	}{
		{"x", "est_x", "x"},
		{"y", "est_y", "y"},
		{"theta", "est_theta", "theta (rad)"},
	}

	for _, s := range series {
		est := table.Column(s.est)
		if len(est) == 0 {
			continue
		}

		data := [][]float64{est}
		colors := []asciigraph.AnsiColor{asciigraph.Magenta}
		caption := s.caption + " (magenta: estimate)"
		if truth := table.Column(s.truth); len(truth) > 0 {
			data = append([][]float64{truth}, data...)
			colors = append([]asciigraph.AnsiColor{asciigraph.Green}, colors...)
			caption = s.caption + " (green: truth, magenta: estimate)"
		}

		graph := asciigraph.PlotMany(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(colors...),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func liveRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	table, err := st.LoadTable(runID)
	if err != nil {
		return err
	}

	frames := viz.FramesFromTable(table)
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no estimate columns", runID)
	}
	return viz.RunLive(runID, frames)
}

func guiRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	table, err := storage.New(dataDir).LoadTable(runID)
	if err != nil {
		return err
	}
	frames := viz.FramesFromTable(table)
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no estimate columns", runID)
	}
	logrus.Debugf("opening window for %s (%d frames)", runID, len(frames))
	return gui.Run(runID, frames)
}

func listPresets(cmd *cobra.Command, args []string) error {
	robots := config.ListRobots()
	if len(args) > 0 {
		robots = args
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROBOT\tPRESET\tPROFILE\tDURATION")
	for _, robot := range robots {
		presets := config.ListPresets(robot)
		if len(presets) == 0 {
			logrus.Warnf("no presets for robot: %s", robot)
			continue
		}
		for _, name := range presets {
			p := config.GetPreset(robot, name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\n", robot, name, p.Profile, p.Duration)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	fmt.Printf("\nintegrators: %s\n", strings.Join(reg.ListIntegrators(), ", "))
	fmt.Printf("profiles:    %s\n", strings.Join(reg.ListProfiles(), ", "))
	return nil
}
