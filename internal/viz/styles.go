package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles derived from a theme
type styles struct {
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	depth   lipgloss.Style
	control lipgloss.Style
	target  lipgloss.Style
	water   lipgloss.Style
	warning lipgloss.Style
	hint    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		value:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		depth:   lipgloss.NewStyle().Foreground(t.Depth),
		control: lipgloss.NewStyle().Foreground(t.Control),
		target:  lipgloss.NewStyle().Foreground(t.Target),
		water:   lipgloss.NewStyle().Foreground(t.Water).Padding(0, 1),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

// ThrustBar renders a centered bar for a command in [-limit, limit].
// Negative thrust fills left of center.
func ThrustBar(thrust, limit float64, width int) string {
	half := width / 2
	if limit <= 0 || half == 0 {
		return strings.Repeat("─", width)
	}
	n := int(abs(thrust) / limit * float64(half))
	if n > half {
		n = half
	}
	left := strings.Repeat("░", half)
	right := strings.Repeat("░", width-half)
	if thrust < 0 {
		left = strings.Repeat("░", half-n) + strings.Repeat("█", n)
	} else {
		right = strings.Repeat("█", n) + strings.Repeat("░", width-half-n)
	}
	return left + "│" + right
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	// Keep the most recent width values
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - min) / rng * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		result.WriteRune(chars[idx])
	}

	return result.String()
}

// Separator is a decorative rule
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return strings.Repeat("─", width)
	}
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}

func readout(st styles, label string, value float64, unit string) string {
	return st.label.Render(label) + st.value.Render(fmt.Sprintf("%.2f%s", value, unit))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
