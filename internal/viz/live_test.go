package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/sim"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func testFrame(tick int) sim.Frame {
	return sim.Frame{
		Tick:     tick,
		Time:     float64(tick) * 0.1,
		Depths:   []float64{0, 0.5, 1.0},
		Controls: []float64{10, 10, 10},
		Depth:    1.0,
		Signal:   10,
		Setpoint: 10,
		PID:      dynamo.PIDTerms{P: 10.8, I: 0.3, D: -4.5, Integral: 2.9, Raw: 12.1, Output: 10},
	}
}

func TestModel_FrameAndView(t *testing.T) {
	m := NewModel(10, 10, Hooks{})
	if !strings.Contains(m.View(), "WAITING FOR LOOP") {
		t.Error("expected waiting status before the first frame")
	}

	m, _ = update(m, FrameMsg(testFrame(2)))
	if m.Frame().Tick != 2 {
		t.Fatalf("frame not stored, got tick %d", m.Frame().Tick)
	}

	view := m.View()
	for _, want := range []string{"ROV DEPTH CONTROL", "Current Depth", "Control Signal", "Target Depth", "SATURATED", "1.00 m", "10.00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Next Target") {
		t.Error("next target shown while it equals the current one")
	}
}

func TestModel_PauseFreezesFrame(t *testing.T) {
	m := NewModel(10, 10, Hooks{})
	m, _ = update(m, FrameMsg(testFrame(1)))
	m, _ = update(m, key(" "))
	if !m.Paused() {
		t.Fatal("expected paused")
	}

	m, _ = update(m, FrameMsg(testFrame(5)))
	if m.Frame().Tick != 1 {
		t.Errorf("frame changed while frozen: tick %d", m.Frame().Tick)
	}
	if !strings.Contains(m.View(), "FROZEN") {
		t.Error("expected frozen status")
	}

	m, _ = update(m, key(" "))
	m, _ = update(m, FrameMsg(testFrame(6)))
	if m.Frame().Tick != 6 {
		t.Errorf("expected tick 6 after unfreeze, got %d", m.Frame().Tick)
	}
}

func TestModel_TargetAndRestart(t *testing.T) {
	var restarted []float64
	m := NewModel(10, 10, Hooks{Restart: func(v float64) { restarted = append(restarted, v) }})

	m, _ = update(m, key("+"))
	m, _ = update(m, key("+"))
	m, _ = update(m, key("-"))
	if m.Pending() != 11 {
		t.Errorf("expected pending 11, got %f", m.Pending())
	}
	m, _ = update(m, FrameMsg(testFrame(3)))
	if !strings.Contains(m.View(), "Next Target") {
		t.Error("expected pending target readout")
	}

	m, _ = update(m, key("enter"))
	if len(restarted) != 1 || restarted[0] != 11 {
		t.Errorf("expected restart at 11, got %v", restarted)
	}

	for i := 0; i < 20; i++ {
		m, _ = update(m, key("-"))
	}
	if m.Pending() != 0 {
		t.Errorf("expected target to stop at the surface, got %f", m.Pending())
	}
}

func TestModel_Quit(t *testing.T) {
	quit := false
	m := NewModel(10, 10, Hooks{Quit: func() { quit = true }})

	m, cmd := update(m, key("q"))
	if !quit {
		t.Error("quit hook not called")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModel_ThemeAndHelp(t *testing.T) {
	m := NewModel(10, 10, Hooks{})
	m, _ = update(m, key("t"))
	if m.theme.Name != Themes[1].Name {
		t.Errorf("expected theme %s, got %s", Themes[1].Name, m.theme.Name)
	}
	m, _ = update(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}
}

func isSet(c *Canvas, x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func TestWaterColumn(t *testing.T) {
	c := NewCanvas(8, 10)
	waterColumn(c, 5, 10, []float64{0, 2, 5})

	w, _ := c.PixelSize()
	// surface near row 3, vehicle near row 18
	if !isSet(c, w/2, 10) {
		t.Error("expected the tether between surface and vehicle")
	}
	if !isSet(c, w/2-4, 18) || !isSet(c, w/2+4, 18) {
		t.Error("expected the hull at the vehicle depth")
	}
	if isSet(c, w/2, 35) {
		t.Error("nothing should be drawn below the vehicle on the center column")
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != brailleBase|0x1 || c.Grid[0][1] != brailleBase|0x80 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	c.Clear()
	if c.Grid[0][0] != brailleBase || c.Grid[0][1] != brailleBase {
		t.Errorf("expected empty cells, got %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	if strings.Count(c.String(), "\n") != 0 {
		t.Error("single row canvas should have no newline")
	}
}

func TestThrustBar(t *testing.T) {
	full := ThrustBar(10, 10, 10)
	if !strings.HasSuffix(full, "│█████") {
		t.Errorf("expected full right bar, got %q", full)
	}
	neg := ThrustBar(-5, 10, 10)
	if !strings.HasPrefix(neg, "░░░██") {
		t.Errorf("expected half left bar, got %q", neg)
	}
}

func TestSparkline(t *testing.T) {
	got := SparklineChart([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4)
	if got != "▅▆▇█" {
		t.Errorf("expected last four levels, got %q", got)
	}
}

func TestThemes(t *testing.T) {
	for _, name := range ThemeNames() {
		th, ok := GetTheme(name)
		if !ok || th.Name != name {
			t.Errorf("GetTheme(%q) = %q, %v", name, th.Name, ok)
		}
	}
	if th, ok := GetTheme("neon"); ok || th.Name != ThemeOcean.Name {
		t.Errorf("unknown theme should fall back to ocean, got %q, %v", th.Name, ok)
	}

	retro, _ := GetTheme(ThemeRetroGreen.Name)
	m := NewModel(10, 10, Hooks{}).WithTheme(retro)
	m, _ = update(m, key("t"))
	if m.theme.Name != NextTheme(retro).Name {
		t.Errorf("expected cycling to start from the chosen theme, got %q", m.theme.Name)
	}
}

func TestView_DepthTrend(t *testing.T) {
	m := NewModel(10, 10, Hooks{})
	m, _ = update(m, FrameMsg{Tick: 3, Depth: 1, Depths: []float64{0, 0.5, 1}, Controls: []float64{10, 10, 10}, Setpoint: 10})
	if !strings.Contains(m.View(), "Depth Trend") {
		t.Error("expected the depth trend readout once there is history")
	}
}
