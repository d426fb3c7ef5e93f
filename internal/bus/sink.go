package bus

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
	"go.uber.org/zap"

	"github.com/san-kum/rovsim/internal/sim"
)

const DefaultSendTimeout = 50 * time.Millisecond

type Transmitter interface {
	TransmitFrame(ctx context.Context, f can.Frame) error
}

// ThrusterSink sends one THRUSTER_CMD per tick. Send failures are logged
// and do not stop the loop.
type ThrusterSink struct {
	iface   string
	timeout time.Duration
	log     *zap.Logger

	tx      Transmitter
	conn    io.Closer
	counter uint8
	sent    int
	failed  int
}

type Option func(*ThrusterSink)

func WithLogger(l *zap.Logger) Option {
	return func(s *ThrusterSink) { s.log = l }
}

// WithTransmitter skips dialing and sends through tx.
func WithTransmitter(tx Transmitter) Option {
	return func(s *ThrusterSink) { s.tx = tx }
}

func WithSendTimeout(d time.Duration) Option {
	return func(s *ThrusterSink) { s.timeout = d }
}

func NewThrusterSink(iface string, opts ...Option) *ThrusterSink {
	s := &ThrusterSink{
		iface:   iface,
		timeout: DefaultSendTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ThrusterSink) Name() string { return "can:" + s.iface }

func (s *ThrusterSink) Open() error {
	if s.tx != nil {
		return nil
	}
	conn, err := socketcan.DialContext(context.Background(), "can", s.iface)
	if err != nil {
		return fmt.Errorf("socketcan dial %s: %w", s.iface, err)
	}
	s.conn = conn
	s.tx = socketcan.NewTransmitter(conn)
	s.log.Info("thruster bus open", zap.String("iface", s.iface))
	return nil
}

func (s *ThrusterSink) Render(f sim.Frame) {
	frame := Encode(ThrusterCommand{
		Thrust:   f.Signal,
		Depth:    f.Depth,
		Setpoint: f.Setpoint,
		Counter:  s.counter,
	})
	s.counter++

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.tx.TransmitFrame(ctx, frame); err != nil {
		s.failed++
		s.log.Warn("thruster command not sent",
			zap.Int("tick", f.Tick),
			zap.Error(err))
		return
	}
	s.sent++
}

// Stats returns the number of frames sent and failed.
func (s *ThrusterSink) Stats() (sent, failed int) {
	return s.sent, s.failed
}

func (s *ThrusterSink) Close() error {
	s.log.Info("thruster bus closed",
		zap.String("iface", s.iface),
		zap.Int("sent", s.sent),
		zap.Int("failed", s.failed))
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}
