package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/odosim/internal/storage"
)

var ErrNoPath = errors.New("no drawable path")

type Point struct {
	X, Y float64
}

// Path is one polyline of the plot, drawn in Color.
type Path struct {
	Name   string
	Color  string
	Points []Point
}

const (
	TruthColor    = "#00ff00"
	EstimateColor = "#ff8800"
)

// PathsFromTable pulls the ground-truth (x, y) and estimated (est_x, est_y)
// trajectories out of a stored run. Replay runs only carry the estimate.
func PathsFromTable(t storage.Table) []Path {
	var paths []Path
	if p := pathFromColumns(t, "x", "y"); len(p) > 0 {
		paths = append(paths, Path{Name: "truth", Color: TruthColor, Points: p})
	}
	if p := pathFromColumns(t, "est_x", "est_y"); len(p) > 0 {
		paths = append(paths, Path{Name: "estimate", Color: EstimateColor, Points: p})
	}
	return paths
}

func pathFromColumns(t storage.Table, xCol, yCol string) []Point {
	xs, ys := t.Column(xCol), t.Column(yCol)
	if xs == nil || ys == nil {
		return nil
	}
	n := min(len(xs), len(ys))
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		points = append(points, Point{X: xs[i], Y: ys[i]})
	}
	return points
}

// TrajectorySVG renders paths into one SVG sharing a single world-to-pixel
// mapping with equal x and y scale, so headings read true.
func TrajectorySVG(w io.Writer, paths []Path, width, height int) error {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	drawable := 0
	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		drawable++
		for _, pt := range p.Points {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	if drawable == 0 {
		return ErrNoPath
	}

	// Add padding
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	pad := span * 0.1
	span += 2 * pad
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	minX, minY = cx-span/2, cy-span/2

	size := float64(min(width, height))
	offX := (float64(width) - size) / 2
	offY := (float64(height) - size) / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, p.Name, p.Color)
		for i, pt := range p.Points {
			x := offX + (pt.X-minX)/span*size
			y := offY + size - (pt.Y-minY)/span*size
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
