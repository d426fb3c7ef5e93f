package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/rovsim/internal/dynamo"
)

func testResult() *dynamo.Result {
	res := &dynamo.Result{}
	depth := 0.0
	for i := 0; i < 20; i++ {
		u := 10.0 - float64(i)
		res.Samples = append(res.Samples, dynamo.Sample{
			Tick: i, Time: float64(i) * 0.1, Depth: depth, Signal: u, Setpoint: 10,
		})
		depth += u * 0.05
	}
	return res
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 21 {
		t.Fatalf("expected header + 20 rows, got %d", len(rows))
	}
	if rows[0][2] != "depth_m" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if got := rows[2]; got[0] != "1" || got[2] != "0.500000" || got[5] != "9.500000" {
		t.Errorf("unexpected second sample row %v", got)
	}
}

func TestWriteChart(t *testing.T) {
	p, err := DepthChart(testResult())
	if err != nil {
		t.Fatal(err)
	}

	var svg bytes.Buffer
	if err := WriteChart(&svg, p, "svg"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("expected svg output")
	}

	var png bytes.Buffer
	if err := WriteChart(&png, p, "png"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("expected png signature")
	}

	if err := WriteChart(&png, p, "bmp2"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCharts_Empty(t *testing.T) {
	if _, err := DepthChart(&dynamo.Result{}); !errors.Is(err, dynamo.ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
	if _, err := ControlChart(&dynamo.Result{}); !errors.Is(err, dynamo.ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")

	paths, err := WriteReport(dir, testResult())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 5 {
		t.Errorf("expected 5 files, got %v", paths)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}
