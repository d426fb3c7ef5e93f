package viz

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rovsim/internal/sim"
)

// Sink runs the live view as a Bubble Tea program next to the loop.
// The program owns the terminal; the loop only sends it frame copies.
type Sink struct {
	model   Model
	opts    []tea.ProgramOption
	prog    *tea.Program
	ready   chan struct{}
	done    chan struct{}
	stop    atomic.Bool
	restart chan float64
	runErr  error
}

func NewSink(target, maxThrust float64, opts ...tea.ProgramOption) *Sink {
	return &Sink{
		model:   NewModel(target, maxThrust, Hooks{}),
		opts:    append([]tea.ProgramOption{tea.WithAltScreen()}, opts...),
		restart: make(chan float64, 1),
	}
}

func (s *Sink) Name() string { return "viz" }

// SetTheme picks the theme the view starts in. Call it before Open.
func (s *Sink) SetTheme(t Theme) {
	s.model = s.model.WithTheme(t)
}

// Open starts the program and waits until it has taken the terminal.
func (s *Sink) Open() error {
	s.ready = make(chan struct{})
	s.done = make(chan struct{})

	var once sync.Once
	m := s.model
	m.ready = func() { once.Do(func() { close(s.ready) }) }
	m.hooks = Hooks{
		Quit: func() { s.stop.Store(true) },
		Restart: func(target float64) {
			select {
			case s.restart <- target:
			default:
			}
		},
	}

	s.prog = tea.NewProgram(m, s.opts...)
	go func() {
		_, err := s.prog.Run()
		s.runErr = err
		s.stop.Store(true)
		close(s.done)
	}()

	select {
	case <-s.ready:
		return nil
	case <-s.done:
		if s.runErr == nil {
			return errors.New("live view exited before it started")
		}
		return fmt.Errorf("terminal: %w", s.runErr)
	}
}

func (s *Sink) Render(f sim.Frame) {
	if s.stop.Load() {
		return
	}
	s.prog.Send(FrameMsg(f))
}

// ShouldStop reports whether the user quit.
func (s *Sink) ShouldStop() bool {
	return s.stop.Load()
}

func (s *Sink) RestartRequested() (float64, bool) {
	select {
	case t := <-s.restart:
		return t, true
	default:
		return 0, false
	}
}

func (s *Sink) Close() error {
	s.prog.Quit()
	<-s.done
	return s.runErr
}
