package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/rovsim/internal/dynamo"
	"gonum.org/v1/plot"
)

// WriteReport writes run.csv plus depth and thrust charts in PNG and SVG
// into dir and returns the paths written.
func WriteReport(dir string, res *dynamo.Result) ([]string, error) {
	if len(res.Samples) == 0 {
		return nil, dynamo.ErrNoSamples
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create directory: %w", err)
	}

	var written []string

	csvPath := filepath.Join(dir, "run.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return nil, err
	}
	if err := WriteCSV(f, res); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	written = append(written, csvPath)

	charts := []struct {
		name  string
		build func(*dynamo.Result) (*plot.Plot, error)
	}{
		{"depth", DepthChart},
		{"thrust", ControlChart},
	}
	for _, c := range charts {
		p, err := c.build(res)
		if err != nil {
			return written, err
		}
		for _, ext := range []string{"png", "svg"} {
			path := filepath.Join(dir, c.name+"."+ext)
			if err := p.Save(ChartSize.W, ChartSize.H, path); err != nil {
				return written, fmt.Errorf("save %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	return written, nil
}
