// Package bus drives the vertical thruster over CAN.
package bus

import (
	"fmt"
	"math"

	"go.einride.tech/can"
)

// THRUSTER_CMD layout, little endian:
//
//	bits  0-15  thrust    int16, 0.01 per bit
//	bits 16-31  depth     int16, 0.01 m per bit
//	bits 32-47  setpoint  int16, 0.01 m per bit
//	bits 48-55  counter   uint8, rolling
const (
	ThrusterCmdID  = 0x210
	ThrusterCmdDLC = 7
	Resolution     = 0.01
)

type ThrusterCommand struct {
	Thrust   float64
	Depth    float64
	Setpoint float64
	Counter  uint8
}

// Encode packs a command. Values outside the int16 range saturate and
// NaN encodes as zero.
func Encode(cmd ThrusterCommand) can.Frame {
	f := can.Frame{ID: ThrusterCmdID, Length: ThrusterCmdDLC}
	f.Data.SetSignedBitsLittleEndian(0, 16, toRaw(cmd.Thrust))
	f.Data.SetSignedBitsLittleEndian(16, 16, toRaw(cmd.Depth))
	f.Data.SetSignedBitsLittleEndian(32, 16, toRaw(cmd.Setpoint))
	f.Data.SetUnsignedBitsLittleEndian(48, 8, uint64(cmd.Counter))
	return f
}

func Decode(f can.Frame) (ThrusterCommand, error) {
	if f.ID != ThrusterCmdID {
		return ThrusterCommand{}, fmt.Errorf("unexpected frame id 0x%X", f.ID)
	}
	if f.Length < ThrusterCmdDLC {
		return ThrusterCommand{}, fmt.Errorf("frame 0x%X expects DLC %d, got %d", f.ID, ThrusterCmdDLC, f.Length)
	}
	return ThrusterCommand{
		Thrust:   fromRaw(f.Data.SignedBitsLittleEndian(0, 16)),
		Depth:    fromRaw(f.Data.SignedBitsLittleEndian(16, 16)),
		Setpoint: fromRaw(f.Data.SignedBitsLittleEndian(32, 16)),
		Counter:  uint8(f.Data.UnsignedBitsLittleEndian(48, 8)),
	}, nil
}

func toRaw(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	raw := math.Round(v / Resolution)
	if raw > math.MaxInt16 {
		return math.MaxInt16
	}
	if raw < math.MinInt16 {
		return math.MinInt16
	}
	return int64(raw)
}

func fromRaw(raw int64) float64 {
	return float64(raw) * Resolution
}
