package export

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/odosim/internal/storage"
)

func TestPathsFromTable(t *testing.T) {
	table := storage.Table{
		Columns: []string{"time", "x", "y", "est_x", "est_y"},
		Rows: [][]float64{
			{0, 0, 0, 0, 0},
			{1, 1, 0, 1, 0.1},
			{2, 2, 0, math.NaN(), 0.2},
		},
	}

	paths := PathsFromTable(table)
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	if paths[0].Name != "truth" || len(paths[0].Points) != 3 {
		t.Errorf("truth path = %+v", paths[0])
	}
	if paths[1].Name != "estimate" || len(paths[1].Points) != 2 {
		t.Errorf("estimate path should skip non-finite rows, got %+v", paths[1])
	}
}

func TestPathsFromReplayTable(t *testing.T) {
	table := storage.Table{
		Columns: []string{"time", "est_x", "est_y"},
		Rows:    [][]float64{{0, 0, 0}, {1, 1, 1}},
	}
	paths := PathsFromTable(table)
	if len(paths) != 1 || paths[0].Name != "estimate" {
		t.Fatalf("got %+v", paths)
	}
}

func TestTrajectorySVG(t *testing.T) {
	paths := []Path{
		{Name: "truth", Color: TruthColor, Points: []Point{{0, 0}, {1, 0}, {1, 1}}},
		{Name: "estimate", Color: EstimateColor, Points: []Point{{0, 0}, {1.1, 0}, {1.1, 0.9}}},
	}

	var buf bytes.Buffer
	if err := TrajectorySVG(&buf, paths, 400, 300); err != nil {
		t.Fatalf("TrajectorySVG: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") {
		t.Error("missing xml header")
	}
	if strings.Count(out, "<path ") != 2 {
		t.Errorf("want 2 paths in output:\n%s", out)
	}
	if !strings.Contains(out, `stroke="`+EstimateColor+`"`) {
		t.Error("estimate colour missing")
	}
	if strings.Contains(out, "NaN") || strings.Contains(out, "Inf") {
		t.Errorf("non-finite coordinate in output:\n%s", out)
	}
}

func TestTrajectorySVGStationary(t *testing.T) {
	paths := []Path{{Name: "truth", Color: TruthColor, Points: []Point{{2, 2}, {2, 2}}}}

	var buf bytes.Buffer
	if err := TrajectorySVG(&buf, paths, 100, 100); err != nil {
		t.Fatalf("TrajectorySVG: %v", err)
	}
	if !strings.Contains(buf.String(), "M50.0,50.0") {
		t.Errorf("stationary robot should sit in the centre:\n%s", buf.String())
	}
}

func TestTrajectorySVGNoPath(t *testing.T) {
	var buf bytes.Buffer
	err := TrajectorySVG(&buf, []Path{{Name: "truth", Points: []Point{{0, 0}}}}, 100, 100)
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("got %v, want ErrNoPath", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}
