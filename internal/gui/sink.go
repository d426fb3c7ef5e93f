package gui

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rovsim/internal/sim"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "ROV Depth Control"
)

var (
	ColBg      = rl.Black
	ColDepth   = rl.Red
	ColControl = rl.Blue
	ColTarget  = rl.Green
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

// Sink draws the loop into a raylib window. Render must be called from
// the goroutine that called Open, which raylib pins to the main thread.
type Sink struct {
	maxPoints int
	width     int32
	height    int32
	open      bool
}

func NewSink(maxPoints int) *Sink {
	return &Sink{maxPoints: maxPoints, width: windowWidth, height: windowHeight}
}

func (s *Sink) Name() string { return "gui" }

func (s *Sink) Open() error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(s.width, s.height, windowTitle)
	if !rl.IsWindowReady() {
		return errors.New("raylib window could not be created")
	}
	rl.SetTargetFPS(60)
	s.open = true
	return nil
}

func (s *Sink) Render(f sim.Frame) {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	s.drawGrid()
	s.drawTrace(f.Depths, 0, ColDepth)
	s.drawTrace(f.Controls, controlOffset, ColControl)
	s.drawTarget(f.Setpoint)

	rl.DrawText(fmt.Sprintf("Current Depth = %.2f m", f.Depth), 40, 30, 18, ColDepth)
	rl.DrawText(fmt.Sprintf("Control Signal = %.2f", f.Signal), 40, 60, 18, ColControl)
	rl.DrawText(fmt.Sprintf("Target Depth = %.2f m", f.Setpoint), 40, 90, 18, ColTarget)

	rl.EndDrawing()
}

func (s *Sink) drawGrid() {
	for v := plotMin; v <= plotMin+plotSpan; v += 5 {
		_, y := toScreen(0, ndcY(v, 0), s.width, s.height)
		rl.DrawLine(0, int32(y), s.width, int32(y), ColGrid)
	}
}

func (s *Sink) drawTrace(values []float64, offset float64, col rl.Color) {
	pts := tracePoints(values, s.maxPoints, offset, s.width, s.height)
	for i := 1; i < len(pts); i++ {
		a := rl.NewVector2(pts[i-1][0], pts[i-1][1])
		b := rl.NewVector2(pts[i][0], pts[i][1])
		rl.DrawLineEx(a, b, 2, col)
	}
}

func (s *Sink) drawTarget(target float64) {
	_, y := toScreen(0, ndcY(target, 0), s.width, s.height)
	const dash = 12
	for x := int32(0); x < s.width; x += 2 * dash {
		rl.DrawLine(x, int32(y), x+dash, int32(y), ColTarget)
	}
}

// ShouldStop reports a close request on the window.
func (s *Sink) ShouldStop() bool {
	return s.open && rl.WindowShouldClose()
}

func (s *Sink) Close() error {
	if s.open {
		rl.CloseWindow()
		s.open = false
	}
	return nil
}
