package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odosim/internal/config"
	"github.com/san-kum/odosim/internal/models"
	"github.com/san-kum/odosim/internal/sim"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetIntegrator("rk4"); err != nil {
		t.Errorf("rk4: %v", err)
	}
	if _, err := r.GetIntegrator("leapfrog"); !errors.Is(err, sim.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}

	for _, name := range r.ListProfiles() {
		if _, err := r.GetProfile(name, config.DefaultRobot(), config.ProfileConfig{}); err != nil {
			t.Errorf("profile %s: %v", name, err)
		}
	}
	if _, err := r.GetProfile("zigzag", config.DefaultRobot(), config.ProfileConfig{}); !errors.Is(err, sim.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestListProfiles(t *testing.T) {
	got := NewRegistry().ListProfiles()
	want := []string{"constant", "heading", "none", "square"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestListIntegrators(t *testing.T) {
	got := NewRegistry().ListIntegrators()
	if len(got) != 2 || got[0] != "euler" || got[1] != "rk4" {
		t.Errorf("expected [euler rk4], got %v", got)
	}
}

func TestRunWithoutSetup(t *testing.T) {
	exp := New(config.DefaultConfig(), NewRegistry())
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error running without setup")
	}
}

func TestSetupRejectsInvalidRobot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Robot.ResolutionRight = 0

	if err := New(cfg, NewRegistry()).Setup(); !errors.Is(err, sim.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestStraightPresetDrift(t *testing.T) {
	cfg := config.GetPreset("duckiebot", "straight")
	exp := New(cfg, NewRegistry())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(res.Estimates) != len(res.States) {
		t.Errorf("expected %d estimates, got %d", len(res.States), len(res.Estimates))
	}

	tick := 2 * math.Pi * cfg.Robot.WheelRadius / float64(cfg.Robot.ResolutionLeft)
	if res.Metrics["position_drift"] > tick {
		t.Errorf("straight drift %.5f exceeds one tick %.5f", res.Metrics["position_drift"], tick)
	}
	if res.Metrics["heading_drift"] != 0 {
		t.Errorf("expected no heading drift, got %f", res.Metrics["heading_drift"])
	}

	wantPath := cfg.ProfileParams.Left * cfg.Robot.WheelRadius * cfg.Duration
	if math.Abs(res.Metrics["path_length"]-wantPath) > 1e-6 {
		t.Errorf("expected path %.5f, got %.5f", wantPath, res.Metrics["path_length"])
	}
}

func TestRunTwiceIsRepeatable(t *testing.T) {
	exp := New(config.GetPreset("duckiebot", "straight"), NewRegistry())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	first, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(second.Estimates) != len(second.States) {
		t.Fatalf("second run: expected %d estimates, got %d", len(second.States), len(second.Estimates))
	}
	if len(first.Estimates) != len(second.Estimates) {
		t.Errorf("expected both runs to record %d estimates, got %d", len(first.Estimates), len(second.Estimates))
	}

	a := first.Estimates[len(first.Estimates)-1].Pose
	b := second.Estimates[len(second.Estimates)-1].Pose
	if a != b {
		t.Errorf("final estimates differ: %v vs %v", a, b)
	}
	if first.Metrics["position_drift"] != second.Metrics["position_drift"] {
		t.Errorf("drift differs: %v vs %v", first.Metrics["position_drift"], second.Metrics["position_drift"])
	}
}

func TestPivotPresetStaysInPlace(t *testing.T) {
	exp := New(config.GetPreset("duckiebot", "pivot"), NewRegistry())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	final := res.States[len(res.States)-1]
	if math.Abs(final[models.IdxX]) > 1e-12 || math.Abs(final[models.IdxY]) > 1e-12 {
		t.Errorf("pivot should not translate, got (%f, %f)", final[models.IdxX], final[models.IdxY])
	}

	// floor quantisation can leave the wheels one tick apart
	cfg := config.GetPreset("duckiebot", "pivot")
	tick := 2 * math.Pi * cfg.Robot.WheelRadius / float64(cfg.Robot.ResolutionLeft)
	est := exp.Tracker().Pose()
	if math.Abs(est.X) > tick || math.Abs(est.Y) > tick {
		t.Errorf("estimate drifted more than a tick: %v", est)
	}
	if est.Theta <= 0 {
		t.Errorf("expected counter-clockwise heading, got %f", est.Theta)
	}
}

func TestSquareReturnsNearStart(t *testing.T) {
	cfg := config.GetPreset("duckiebot", "square")
	exp := New(cfg, NewRegistry())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Metrics["path_length"] < 4*cfg.ProfileParams.Side*0.9 {
		t.Errorf("expected roughly one lap, got path %.3f", res.Metrics["path_length"])
	}
	if len(res.Errors) != 0 {
		t.Errorf("unexpected simulation errors: %v", res.Errors)
	}
}

func TestResultTable(t *testing.T) {
	cfg := config.GetPreset("duckiebot", "arc")
	cfg.Duration = 0.5
	exp := New(cfg, NewRegistry())
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	table := res.Table()
	if len(table.Rows) != len(res.States) {
		t.Fatalf("expected %d rows, got %d", len(res.States), len(table.Rows))
	}
	for i, row := range table.Rows {
		if len(row) != len(Columns) {
			t.Fatalf("row %d has %d values, want %d", i, len(row), len(Columns))
		}
	}

	last := res.Estimates[len(res.Estimates)-1]
	if got := table.Column("est_theta"); got[len(got)-1] != last.Pose.Theta {
		t.Errorf("est_theta column does not match final estimate")
	}
}
