package viz

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func headlessSink() *Sink {
	return NewSink(10, 10,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
}

func TestSink_Lifecycle(t *testing.T) {
	s := headlessSink()
	if err := s.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.ShouldStop() {
		t.Fatal("should not stop right after open")
	}

	for i := 0; i < 5; i++ {
		s.Render(testFrame(i))
	}
	if _, ok := s.RestartRequested(); ok {
		t.Error("no restart was requested")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !s.ShouldStop() {
		t.Error("expected stop after the program ended")
	}

	// frames after the program ended are dropped
	s.Render(testFrame(9))
}

func TestSink_RestartQueue(t *testing.T) {
	s := headlessSink()
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.prog.Send(key("+"))
	s.prog.Send(key("enter"))
	s.prog.Send(key("enter"))

	// Send is synchronous with the event loop, so a third message
	// guarantees both enters were handled.
	s.prog.Send(FrameMsg(testFrame(0)))

	target, ok := s.RestartRequested()
	if !ok || target != 11 {
		t.Errorf("expected restart at 11, got %f %v", target, ok)
	}
	if _, ok := s.RestartRequested(); ok {
		t.Error("restart requests should not pile up")
	}
}

func TestSink_OwnsAltScreen(t *testing.T) {
	// callers pass no screen options of their own
	s := NewSink(10, 10)
	if len(s.opts) != 1 {
		t.Errorf("expected only the alt screen option, got %d options", len(s.opts))
	}
}

func TestSink_SetTheme(t *testing.T) {
	s := headlessSink()
	s.SetTheme(ThemeMinimal)
	if s.model.theme.Name != ThemeMinimal.Name {
		t.Errorf("expected %q, got %q", ThemeMinimal.Name, s.model.theme.Name)
	}
}
