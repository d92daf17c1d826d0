package controllers

import (
	"math"
	"testing"

	"github.com/san-kum/odosim/internal/sim"
)

func TestNone(t *testing.T) {
	ctrl := NewNone()
	u := ctrl.Compute(sim.State{1, 2, 0.5, 3, 4}, 0.0)

	if len(u) != 2 {
		t.Errorf("expected 2 controls, got %d", len(u))
	}
	for i, v := range u {
		if v != 0 {
			t.Errorf("control[%d] should be 0, got %f", i, v)
		}
	}
}

func TestConstant(t *testing.T) {
	ctrl := NewConstant(1.5, -1.5)
	u := ctrl.Compute(nil, 42)

	if len(u) != 2 || u[0] != 1.5 || u[1] != -1.5 {
		t.Errorf("expected [1.5 -1.5], got %v", u)
	}
}

func TestSquarePhases(t *testing.T) {
	ctrl := NewSquare(10, 5, 0.5, 0.05, 0.1)

	side := 0.5 / (0.05 * 10)
	turn := (math.Pi / 2) * 0.1 / (2 * 0.05 * 5)

	u := ctrl.Compute(nil, side/2)
	if u[0] != 10 || u[1] != 10 {
		t.Errorf("expected straight on a side, got %v", u)
	}

	u = ctrl.Compute(nil, side+turn/2)
	if u[0] != -5 || u[1] != 5 {
		t.Errorf("expected pivot after a side, got %v", u)
	}

	u = ctrl.Compute(nil, side+turn+side/2)
	if u[0] != 10 || u[1] != 10 {
		t.Errorf("expected second side, got %v", u)
	}

	if math.Abs(ctrl.Period()-4*(side+turn)) > 1e-12 {
		t.Errorf("expected period %f, got %f", 4*(side+turn), ctrl.Period())
	}
}

func TestPID(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, 0.0, 8.0, 2)
	u := ctrl.Compute(sim.State{0, 0, 0.5}, 0.0)
	if len(u) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(u))
	}
	if u[1] >= u[0] {
		t.Errorf("heading above target should steer right, got %v", u)
	}
}

func TestPIDOnTarget(t *testing.T) {
	ctrl := NewPID(10.0, 0.1, 5.0, 1.0, 8.0, 2)
	u := ctrl.Compute(sim.State{0, 0, 1.0}, 0.0)
	if u[0] != 8.0 || u[1] != 8.0 {
		t.Errorf("expected straight at speed, got %v", u)
	}
}

func TestPIDWrapsError(t *testing.T) {
	ctrl := NewPID(1.0, 0, 0, math.Pi-0.1, 0, 2)
	u := ctrl.Compute(sim.State{0, 0, -math.Pi + 0.1}, 0.0)

	// shortest way round is clockwise by 0.2 rad
	if math.Abs(u[1]+0.2) > 1e-9 {
		t.Errorf("expected correction -0.2, got %v", u[1])
	}
}
