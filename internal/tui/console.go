package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/rovsim/internal/sim"
)

const (
	width       = 40
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Console prints one line per tick. With redraw enabled it repaints a
// small depth gauge in place instead.
type Console struct {
	w      io.Writer
	redraw bool
	canvas [][]rune
	err    error
}

func NewConsole(w io.Writer, redraw bool) *Console {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &Console{w: w, redraw: redraw, canvas: canvas}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Open() error {
	if c.redraw {
		_, err := io.WriteString(c.w, hideCursor+clearScreen)
		return err
	}
	return nil
}

// Line is the per-tick status line.
func Line(f sim.Frame) string {
	return fmt.Sprintf("Depth: %.2fm, Thrust: %.2f", f.Depth, f.Signal)
}

func (c *Console) Render(f sim.Frame) {
	if c.err != nil {
		return
	}
	if !c.redraw {
		_, c.err = fmt.Fprintln(c.w, Line(f))
		return
	}

	c.clear()
	c.drawGauge(f)

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  rov  tick=%d  t=%.1fs\n", f.Tick, f.Time)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range c.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString("  " + Line(f) + "\n")
	_, c.err = io.WriteString(c.w, b.String())
}

func (c *Console) Close() error {
	if c.redraw {
		if _, err := io.WriteString(c.w, showCursor); err != nil && c.err == nil {
			c.err = err
		}
	}
	return c.err
}

func (c *Console) clear() {
	for y := range c.canvas {
		for x := range c.canvas[y] {
			c.canvas[y][x] = ' '
		}
	}
}

func (c *Console) set(x, y int, r rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		c.canvas[y][x] = r
	}
}

// drawGauge shows the surface, the target and the vehicle on a vertical
// scale that always holds both depths.
func (c *Console) drawGauge(f sim.Frame) {
	bottom := f.Setpoint * 1.5
	if f.Depth > bottom {
		bottom = f.Depth * 1.1
	}
	if bottom <= 0 {
		bottom = 1
	}
	row := func(d float64) int {
		if d < 0 {
			d = 0
		}
		return int(d / bottom * float64(height-1))
	}

	for x := 0; x < width; x++ {
		c.set(x, 0, '~')
	}
	ty := row(f.Setpoint)
	for x := 0; x < width; x += 2 {
		c.set(x, ty, '-')
	}
	cx := width / 2
	dy := row(f.Depth)
	c.set(cx-1, dy, '[')
	c.set(cx, dy, 'o')
	c.set(cx+1, dy, ']')
	// positive thrust drives the vehicle deeper
	if f.Signal > 0 {
		c.set(cx, dy+1, 'v')
	} else if f.Signal < 0 {
		c.set(cx, dy-1, '^')
	}
}
