package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights a sub-pixel; the canvas is Width*2 by Height*4 sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas sub-pixels with equal scale
// on both axes, y pointing up.
type Viewport struct {
	MinX, MinY float64
	Scale      float64
	Height     int
}

// Fit returns a viewport containing every point of every path with a small
// margin.
func Fit(c *Canvas, paths ...[][2]float64) Viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, path := range paths {
		for _, p := range path {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}

	spanX := math.Max(maxX-minX, 1e-3)
	spanY := math.Max(maxY-minY, 1e-3)
	pad := 0.05 * math.Max(spanX, spanY)

	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	scale := math.Min(w/(spanX+2*pad), h/(spanY+2*pad))

	return Viewport{MinX: minX - pad, MinY: minY - pad, Scale: scale, Height: c.Height*4 - 1}
}

func (v Viewport) Project(x, y float64) (int, int) {
	px := int(math.Round((x - v.MinX) * v.Scale))
	py := v.Height - int(math.Round((y-v.MinY)*v.Scale))
	return px, py
}

// DrawPath connects consecutive points of path.
func (c *Canvas) DrawPath(v Viewport, path [][2]float64) {
	for i := range path {
		x1, y1 := v.Project(path[i][0], path[i][1])
		if i == 0 {
			c.Set(x1, y1)
			continue
		}
		x0, y0 := v.Project(path[i-1][0], path[i-1][1])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
