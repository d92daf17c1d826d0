package gui

import (
	"math"

	"github.com/san-kum/odosim/internal/viz"
)

// view maps world metres to window pixels with equal scale on both axes and
// y pointing up. The world box is centred in the drawable area.
type view struct {
	cx, cy  float64
	scale   float64
	originX float64
	originY float64
}

func fitView(frames []viz.Frame, x0, y0, width, height float64) view {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p [2]float64) {
		if math.IsNaN(p[0]) || math.IsInf(p[0], 0) || math.IsNaN(p[1]) || math.IsInf(p[1], 0) {
			return
		}
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	for _, f := range frames {
		grow([2]float64{f.Estimate.X, f.Estimate.Y})
		if f.HasTruth {
			grow([2]float64{f.Truth.X, f.Truth.Y})
		}
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}

	span := math.Max(math.Max(maxX-minX, maxY-minY), 1e-3) * 1.2
	return view{
		cx:      (minX + maxX) / 2,
		cy:      (minY + maxY) / 2,
		scale:   math.Min(width, height) / span,
		originX: x0 + width/2,
		originY: y0 + height/2,
	}
}

func (v view) project(x, y float64) (float32, float32) {
	return float32(v.originX + (x-v.cx)*v.scale), float32(v.originY - (y-v.cy)*v.scale)
}
