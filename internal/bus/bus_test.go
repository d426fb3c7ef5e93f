package bus

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.einride.tech/can"

	"github.com/san-kum/rovsim/internal/sim"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		cmd  ThrusterCommand
		want ThrusterCommand
	}{
		{
			name: "full thrust at surface",
			cmd:  ThrusterCommand{Thrust: 10, Depth: 0, Setpoint: 10, Counter: 0},
			want: ThrusterCommand{Thrust: 10, Depth: 0, Setpoint: 10, Counter: 0},
		},
		{
			name: "negative thrust",
			cmd:  ThrusterCommand{Thrust: -3.456, Depth: 12.3, Setpoint: 10, Counter: 255},
			want: ThrusterCommand{Thrust: -3.46, Depth: 12.3, Setpoint: 10, Counter: 255},
		},
		{
			name: "saturates high",
			cmd:  ThrusterCommand{Thrust: 1000, Depth: -1000},
			want: ThrusterCommand{Thrust: 327.67, Depth: -327.68},
		},
		{
			name: "nan encodes as zero",
			cmd:  ThrusterCommand{Thrust: math.NaN()},
			want: ThrusterCommand{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Encode(tt.cmd)
			if f.ID != ThrusterCmdID || f.Length != ThrusterCmdDLC {
				t.Fatalf("unexpected header id=0x%X len=%d", f.ID, f.Length)
			}
			got, err := Decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got.Thrust-tt.want.Thrust) > 0.006 ||
				math.Abs(got.Depth-tt.want.Depth) > 0.006 ||
				math.Abs(got.Setpoint-tt.want.Setpoint) > 0.006 ||
				got.Counter != tt.want.Counter {
				t.Errorf("Decode(Encode(%+v)) = %+v, want %+v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	if _, err := Decode(can.Frame{ID: 0x211, Length: ThrusterCmdDLC}); err == nil {
		t.Error("expected error for foreign id")
	}
	if _, err := Decode(can.Frame{ID: ThrusterCmdID, Length: 4}); err == nil {
		t.Error("expected error for short frame")
	}
}

type recorder struct {
	frames []can.Frame
	err    error
}

func (r *recorder) TransmitFrame(_ context.Context, f can.Frame) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, f)
	return nil
}

func TestThrusterSink(t *testing.T) {
	rec := &recorder{}
	s := NewThrusterSink("vcan0", WithTransmitter(rec))
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	s.Render(sim.Frame{Tick: 1, Depth: 0, Signal: 10, Setpoint: 10})
	s.Render(sim.Frame{Tick: 2, Depth: 0.5, Signal: 9.5, Setpoint: 10})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if len(rec.frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(rec.frames))
	}
	second, err := Decode(rec.frames[1])
	if err != nil {
		t.Fatal(err)
	}
	if second.Counter != 1 {
		t.Errorf("counter should roll, got %d", second.Counter)
	}
	if math.Abs(second.Thrust-9.5) > 1e-9 || math.Abs(second.Depth-0.5) > 1e-9 {
		t.Errorf("unexpected decoded frame %+v", second)
	}
	if sent, failed := s.Stats(); sent != 2 || failed != 0 {
		t.Errorf("Stats() = %d, %d", sent, failed)
	}
}

func TestThrusterSink_SendFailureIsCounted(t *testing.T) {
	s := NewThrusterSink("vcan0", WithTransmitter(&recorder{err: errors.New("bus off")}))
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	s.Render(sim.Frame{})
	if sent, failed := s.Stats(); sent != 0 || failed != 1 {
		t.Errorf("Stats() = %d, %d, want 0, 1", sent, failed)
	}
}

type deadlineCheck struct{ left time.Duration }

func (d *deadlineCheck) TransmitFrame(ctx context.Context, _ can.Frame) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		return errors.New("no deadline")
	}
	d.left = time.Until(deadline)
	return nil
}

func TestThrusterSink_SendTimeout(t *testing.T) {
	tx := &deadlineCheck{}
	s := NewThrusterSink("vcan0", WithTransmitter(tx), WithSendTimeout(time.Second))
	s.Render(sim.Frame{})
	if tx.left <= 500*time.Millisecond || tx.left > time.Second {
		t.Errorf("unexpected send deadline %v", tx.left)
	}
}

func TestThrusterSink_Name(t *testing.T) {
	if got := NewThrusterSink("vcan0").Name(); got != "can:vcan0" {
		t.Errorf("Name() = %q", got)
	}
}
