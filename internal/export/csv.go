package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/rovsim/internal/dynamo"
)

var csvHeader = []string{"tick", "time_s", "depth_m", "thrust", "setpoint_m", "error_m"}

// WriteCSV writes one row per sample.
func WriteCSV(w io.Writer, res *dynamo.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, s := range res.Samples {
		row := []string{
			strconv.Itoa(s.Tick),
			f(s.Time),
			f(s.Depth),
			f(s.Signal),
			f(s.Setpoint),
			f(s.Error()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
