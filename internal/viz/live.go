package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rovsim/internal/sim"
)

const (
	columnWidth  = 16
	columnHeight = 20
	chartWidth   = 50
	chartHeight  = 7
	targetStep   = 1.0
)

// FrameMsg carries one tick of the loop into the program.
type FrameMsg sim.Frame

// Hooks connect the view back to the loop.
type Hooks struct {
	Quit    func()
	Restart func(target float64)
}

// Model is the Bubble Tea model of the live view. It only ever sees
// copies of loop frames.
type Model struct {
	frame     sim.Frame
	hasFrame  bool
	paused    bool
	showHelp  bool
	quitting  bool
	theme     Theme
	st        styles
	pending   float64
	maxThrust float64
	canvas    *Canvas
	hooks     Hooks
	ready     func()
}

// NewModel starts with target as the pending restart target.
func NewModel(target, maxThrust float64, hooks Hooks) Model {
	return Model{
		theme:     Themes[0],
		st:        newStyles(Themes[0]),
		pending:   target,
		maxThrust: maxThrust,
		canvas:    NewCanvas(columnWidth, columnHeight),
		hooks:     hooks,
		frame:     sim.Frame{Setpoint: target},
	}
}

// WithTheme returns the model drawn in theme t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.st = newStyles(t)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.ready != nil {
		m.ready()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if !m.paused {
			m.frame = sim.Frame(msg)
			m.hasFrame = true
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.hooks.Quit != nil {
				m.hooks.Quit()
			}
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "t":
			m.theme = NextTheme(m.theme)
			m.st = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		case "+", "=", "up":
			m.pending += targetStep
		case "-", "_", "down":
			m.pending = math.Max(0, m.pending-targetStep)
		case "enter":
			if m.hooks.Restart != nil {
				m.hooks.Restart(m.pending)
			}
		}
	}
	return m, nil
}

// Pending is the target the next restart will use.
func (m Model) Pending() float64 { return m.pending }

func (m Model) Paused() bool { return m.paused }

func (m Model) Frame() sim.Frame { return m.frame }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.st
	f := m.frame

	waterColumn(m.canvas, f.Depth, f.Setpoint, f.Depths)
	column := st.water.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render("ROV DEPTH CONTROL") + "\n")

	status := fmt.Sprintf("RUNNING  t=%.1fs  tick %d", f.Time, f.Tick)
	if !m.hasFrame {
		status = "WAITING FOR LOOP"
	} else if m.paused {
		status = st.warning.Render("FROZEN") + fmt.Sprintf("  t=%.1fs", f.Time)
	}
	s.WriteString(status + "\n\n")

	s.WriteString(st.depth.Render(readout(st, "Current Depth", f.Depth, " m")) + "\n")
	s.WriteString(st.control.Render(readout(st, "Control Signal", f.Signal, "")) + "\n")
	s.WriteString(st.target.Render(readout(st, "Target Depth", f.Setpoint, " m")) + "\n")
	if m.pending != f.Setpoint {
		s.WriteString(st.warning.Render(readout(st, "Next Target", m.pending, " m  [enter]")) + "\n")
	}
	s.WriteString(st.label.Render("Thrust") + ThrustBar(f.Signal, m.maxThrust, 21) + "\n")
	if len(f.Depths) > 1 {
		s.WriteString(st.label.Render("Depth Trend") + st.depth.Render(SparklineChart(f.Depths, 21)) + "\n")
	}

	pid := f.PID
	s.WriteString(st.label.Render("P / I / D") +
		st.value.Render(fmt.Sprintf("%.2f / %.2f / %.2f", pid.P, pid.I, pid.D)) + "\n")
	s.WriteString(st.label.Render("Integral") + st.value.Render(fmt.Sprintf("%.2f", pid.Integral)))
	if pid.Saturated() {
		s.WriteString("  " + st.warning.Render("SATURATED"))
	}
	s.WriteString("\n\n")

	if len(f.Depths) > 1 {
		target := make([]float64, len(f.Depths))
		for i := range target {
			target[i] = f.Setpoint
		}
		chart := asciigraph.PlotMany([][]float64{f.Depths, target},
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
			asciigraph.Caption("Depth (m)"),
		)
		s.WriteString(chart + "\n\n")
	}
	if len(f.Controls) > 1 {
		chart := asciigraph.Plot(f.Controls,
			asciigraph.Height(chartHeight-2),
			asciigraph.Width(chartWidth),
			asciigraph.LowerBound(-m.maxThrust),
			asciigraph.UpperBound(m.maxThrust),
			asciigraph.SeriesColors(asciigraph.Blue),
			asciigraph.Caption("Control Signal"),
		)
		s.WriteString(chart + "\n")
	}

	s.WriteString("\n" + st.hint.Render(Separator(40)+"\nSP:Freeze +/-:Target ENTER:Restart\nT:Theme ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, column, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Freeze/unfreeze display  ║
║  + / Up   - Raise next target (+1m)  ║
║  - / Down - Lower next target (-1m)  ║
║  Enter    - Restart with next target ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
