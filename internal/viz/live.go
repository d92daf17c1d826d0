package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odosim/internal/odometry"
	"github.com/san-kum/odosim/internal/storage"
)

const (
	frameInterval = time.Second / 30
	maxSpeed      = 64
)

type TickMsg time.Time

// Frame is one playback instant. Replays carry no ground truth.
type Frame struct {
	Time     float64
	Truth    odometry.Pose
	Estimate odometry.Pose
	HasTruth bool
}

// FramesFromTable reads the est_* columns and, when present, the x/y/theta
// ground-truth columns of a stored run.
func FramesFromTable(table storage.Table) []Frame {
	times := table.Column("time")
	ex, ey, et := table.Column("est_x"), table.Column("est_y"), table.Column("est_theta")
	tx, ty, tt := table.Column("x"), table.Column("y"), table.Column("theta")
	hasTruth := len(tx) == len(times) && len(ty) == len(times) && len(tt) == len(times)

	n := len(times)
	for _, col := range [][]float64{ex, ey, et} {
		if len(col) < n {
			n = len(col)
		}
	}

	frames := make([]Frame, n)
	for i := 0; i < n; i++ {
		frames[i] = Frame{
			Time:     times[i],
			Estimate: odometry.Pose{X: ex[i], Y: ey[i], Theta: et[i]},
			HasTruth: hasTruth,
		}
		if hasTruth {
			frames[i].Truth = odometry.Pose{X: tx[i], Y: ty[i], Theta: tt[i]}
		}
	}
	return frames
}

type Live struct {
	title         string
	frames        []Frame
	truth, est    [][2]float64
	idx           int
	speed         int
	paused        bool
	ticking       bool
	width, height int
}

func NewLive(title string, frames []Frame) Live {
	l := Live{
		title:  title,
		frames: frames,
		speed:  1,
		width:  80,
		height: 24,
	}
	for _, f := range frames {
		l.est = append(l.est, [2]float64{f.Estimate.X, f.Estimate.Y})
		if f.HasTruth {
			l.truth = append(l.truth, [2]float64{f.Truth.X, f.Truth.Y})
		}
	}
	return l
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Init() tea.Cmd {
	return tick()
}

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return l.handleKey(msg)
	case tea.WindowSizeMsg:
		l.width, l.height = msg.Width, msg.Height
		return l, nil
	case TickMsg:
		if l.paused || l.done() {
			l.ticking = false
			return l, nil
		}
		l.idx += l.speed
		if l.idx >= len(l.frames) {
			l.idx = len(l.frames) - 1
		}
		l.ticking = true
		return l, tick()
	}
	return l, nil
}

func (l Live) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return l, tea.Quit
	case " ":
		l.paused = !l.paused
	case "+", "=":
		if l.speed < maxSpeed {
			l.speed *= 2
		}
	case "-", "_":
		if l.speed > 1 {
			l.speed /= 2
		}
	case "r":
		l.idx = 0
	default:
		return l, nil
	}
	return l.resume()
}

// resume restarts the tick loop if it stopped at the end or on pause.
func (l Live) resume() (tea.Model, tea.Cmd) {
	if l.ticking || l.paused || l.done() {
		return l, nil
	}
	l.ticking = true
	return l, tick()
}

func (l Live) done() bool {
	return len(l.frames) == 0 || l.idx >= len(l.frames)-1
}

func (l Live) canvasSize() (int, int) {
	w, h := l.width-4, l.height-9
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	return w, h
}

func (l Live) View() string {
	if len(l.frames) == 0 {
		return Subtle.Render("no samples") + "\n"
	}

	w, h := l.canvasSize()
	truthCanvas, estCanvas := NewCanvas(w, h), NewCanvas(w, h)
	view := Fit(truthCanvas, l.truth, l.est)

	if len(l.truth) > l.idx {
		truthCanvas.DrawPath(view, l.truth[:l.idx+1])
	}
	estCanvas.DrawPath(view, l.est[:l.idx+1])

	var b strings.Builder
	f := l.frames[l.idx]

	status := StatusRunning.Render("▶ playing")
	if l.paused {
		status = StatusPaused.Render("⏸ paused")
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s  t=%.2fs  x%d\n",
		Title.Render(l.title), status, ProgressBar(float64(l.idx)/float64(max(len(l.frames)-1, 1)), 20), f.Time, l.speed))

	b.WriteString(Panel.Render(overlay(truthCanvas, estCanvas)))
	b.WriteString("\n")

	b.WriteString(EstimatePath.Render("● estimate ") + Metric("x", f.Estimate.X) + "  " + Metric("y", f.Estimate.Y) + "  " + Metric("θ", f.Estimate.Theta) + "\n")
	if f.HasTruth {
		b.WriteString(TruthPath.Render("● truth    ") + Metric("x", f.Truth.X) + "  " + Metric("y", f.Truth.Y) + "  " + Metric("θ", f.Truth.Theta) + "\n")
		b.WriteString(Metric("position error", f.Estimate.Distance(f.Truth)) + "\n")
	}
	b.WriteString(KeyHint.Render("space pause · +/- speed · r restart · q quit"))
	return b.String()
}

// overlay merges two same-sized canvases cell by cell, colouring cells that
// hold any estimate dots in the estimate colour.
func overlay(truth, est *Canvas) string {
	var b strings.Builder
	for row := range truth.Grid {
		for col := range truth.Grid[row] {
			t, e := truth.Grid[row][col], est.Grid[row][col]
			switch {
			case e != blank:
				b.WriteString(EstimatePath.Render(string(t | e)))
			case t != blank:
				b.WriteString(TruthPath.Render(string(t)))
			default:
				b.WriteRune(' ')
			}
		}
		if row < len(truth.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RunLive plays frames back in the alternate screen until the user quits.
func RunLive(title string, frames []Frame) error {
	_, err := tea.NewProgram(NewLive(title, frames), tea.WithAltScreen()).Run()
	return err
}
