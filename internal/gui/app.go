// Package gui plays a stored run back in a raylib window: the ground-truth
// path, the dead-reckoned estimate and the drift between them.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/odosim/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	hudHeight    = 90
	maxSpeed     = 64
)

var (
	ColBg       = rl.NewColor(10, 10, 10, 255)
	ColGrid     = rl.NewColor(30, 30, 30, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTextDim  = rl.NewColor(60, 60, 60, 255)
	ColTruth    = rl.NewColor(0, 255, 0, 255)
	ColEstimate = rl.NewColor(255, 136, 0, 255)
)

var ErrNoFrames = errors.New("gui: nothing to play back")

type App struct {
	Title  string
	Frames []viz.Frame

	idx    int
	speed  int
	paused bool
	view   view
}

func NewApp(title string, frames []viz.Frame) *App {
	return &App{
		Title:  title,
		Frames: frames,
		speed:  1,
		view:   fitView(frames, 0, hudHeight, screenWidth, screenHeight-hudHeight),
	}
}

func initWindow(title string) {
	rl.InitWindow(screenWidth, screenHeight, "odosim :: "+title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens a window and blocks until it is closed.
func Run(title string, frames []viz.Frame) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	initWindow(title)
	defer rl.CloseWindow()

	app := NewApp(title, frames)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances playback. It reports whether the user
// asked to quit.
func (a *App) Update() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		a.paused = !a.paused
	case rl.IsKeyPressed(rl.KeyR):
		a.idx = 0
		a.paused = false
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyRight):
		a.speed = min(a.speed*2, maxSpeed)
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyLeft):
		a.speed = max(a.speed/2, 1)
	}

	if !a.paused {
		a.idx = min(a.idx+a.speed, len(a.Frames)-1)
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawGrid()
	a.drawPaths()
	a.drawRobots()
	a.drawHUD()

	rl.EndDrawing()
}

// drawGrid draws one line per metre, or per 10 cm when zoomed in.
func (a *App) drawGrid() {
	step := 1.0
	if a.view.scale > 400 {
		step = 0.1
	}
	halfW := screenWidth / 2 / a.view.scale
	halfH := (screenHeight - hudHeight) / 2 / a.view.scale

	for x := math.Floor((a.view.cx-halfW)/step) * step; x <= a.view.cx+halfW; x += step {
		x0, y0 := a.view.project(x, a.view.cy-halfH)
		x1, y1 := a.view.project(x, a.view.cy+halfH)
		rl.DrawLineV(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), ColGrid)
	}
	for y := math.Floor((a.view.cy-halfH)/step) * step; y <= a.view.cy+halfH; y += step {
		x0, y0 := a.view.project(a.view.cx-halfW, y)
		x1, y1 := a.view.project(a.view.cx+halfW, y)
		rl.DrawLineV(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), ColGrid)
	}
}

func (a *App) drawPaths() {
	for i := 1; i <= a.idx; i++ {
		prev, cur := a.Frames[i-1], a.Frames[i]
		if cur.HasTruth {
			x0, y0 := a.view.project(prev.Truth.X, prev.Truth.Y)
			x1, y1 := a.view.project(cur.Truth.X, cur.Truth.Y)
			rl.DrawLineEx(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), 2, ColTruth)
		}
		x0, y0 := a.view.project(prev.Estimate.X, prev.Estimate.Y)
		x1, y1 := a.view.project(cur.Estimate.X, cur.Estimate.Y)
		rl.DrawLineEx(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), 2, ColEstimate)
	}
}

// drawRobots marks the current poses with a dot and a heading tick.
func (a *App) drawRobots() {
	f := a.Frames[a.idx]
	if f.HasTruth {
		a.drawRobot(f.Truth.X, f.Truth.Y, f.Truth.Theta, ColTruth)
	}
	a.drawRobot(f.Estimate.X, f.Estimate.Y, f.Estimate.Theta, ColEstimate)
}

func (a *App) drawRobot(x, y, theta float64, col color.RGBA) {
	px, py := a.view.project(x, y)
	rl.DrawCircleV(rl.NewVector2(px, py), 6, col)

	const tick = 18
	hx := px + float32(math.Cos(theta)*tick)
	hy := py - float32(math.Sin(theta)*tick)
	rl.DrawLineEx(rl.NewVector2(px, py), rl.NewVector2(hx, hy), 2, col)
}

func (a *App) drawHUD() {
	f := a.Frames[a.idx]

	rl.DrawText("odosim", 30, 20, 24, ColText)
	rl.DrawText(":: "+a.Title, 140, 26, 16, ColTextDim)

	rl.DrawText(fmt.Sprintf("t %.2fs", f.Time), 30, 56, 16, ColText)
	rl.DrawText("est "+f.Estimate.String(), 160, 56, 16, ColEstimate)
	if f.HasTruth {
		rl.DrawText("truth "+f.Truth.String(), 560, 56, 16, ColTruth)
		rl.DrawText(fmt.Sprintf("drift %.4f m", f.Truth.Distance(f.Estimate)), 1000, 56, 16, ColText)
	}

	status := fmt.Sprintf("PLAYING x%d", a.speed)
	if a.paused {
		status = "PAUSED"
	} else if a.idx == len(a.Frames)-1 {
		status = "DONE"
	}
	rl.DrawText(status, 1130, 20, 16, ColText)
	rl.DrawText("[SPACE] PAUSE  [R] RESTART  [UP/DOWN] SPEED  [Q] QUIT", 30, screenHeight-30, 14, ColTextDim)
}
