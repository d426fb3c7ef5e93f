package history

import (
	"testing"
)

func TestHistoryFill(t *testing.T) {
	h := New(4)
	if h.Len() != 0 {
		t.Fatalf("new history should be empty, got %d", h.Len())
	}
	if len(h.Depths()) != 0 {
		t.Error("Depths() on empty history should be empty")
	}

	h.Record(1, 10)
	h.Record(2, 20)

	d, c := h.Depths(), h.Controls()
	if len(d) != 2 || len(c) != 2 {
		t.Fatalf("expected 2 samples, got %d/%d", len(d), len(c))
	}
	if d[0] != 1 || d[1] != 2 || c[0] != 10 || c[1] != 20 {
		t.Errorf("unexpected order: %v %v", d, c)
	}
}

func TestHistoryCapacity(t *testing.T) {
	const maxPoints = 100
	tests := []int{1, 2, 37, 100, 250}

	for _, k := range tests {
		h := New(maxPoints)
		for call := 1; call <= maxPoints+k; call++ {
			h.Record(float64(call), -float64(call))
		}

		d, c := h.Depths(), h.Controls()
		if len(d) != maxPoints || len(c) != maxPoints {
			t.Fatalf("k=%d: expected %d samples, got %d/%d", k, maxPoints, len(d), len(c))
		}
		if d[0] != float64(k+1) {
			t.Errorf("k=%d: first element %v, want call %d", k, d[0], k+1)
		}
		if c[0] != -float64(k+1) {
			t.Errorf("k=%d: first control %v, want %d", k, c[0], -(k + 1))
		}
		if d[maxPoints-1] != float64(maxPoints+k) {
			t.Errorf("k=%d: newest element %v", k, d[maxPoints-1])
		}
		for i := 1; i < len(d); i++ {
			if d[i] != d[i-1]+1 {
				t.Fatalf("k=%d: not chronological at %d: %v", k, i, d)
			}
		}
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := New(3)
	h.Record(1, 1)
	snap := h.Depths()
	snap[0] = 99

	if h.Depths()[0] != 1 {
		t.Error("mutating a snapshot changed the history")
	}
}

func TestHistoryNewestAfterWrap(t *testing.T) {
	h := New(2)
	h.Record(1, 10)
	h.Record(2, 20)
	h.Record(3, 30)

	d, c := h.Depths(), h.Controls()
	if d[len(d)-1] != 3 || c[len(c)-1] != 30 {
		t.Errorf("newest pair = %v %v", d, c)
	}
}

func TestHistoryClear(t *testing.T) {
	h := New(2)
	h.Record(1, 1)
	h.Record(2, 2)
	h.Record(3, 3)
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("after Clear: len=%d", h.Len())
	}
	h.Record(4, 4)
	h.Record(5, 5)
	h.Record(6, 6)
	if h.Len() != 2 {
		t.Errorf("capacity changed after Clear: len=%d", h.Len())
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := New(0)
	for i := 0; i < DefaultMaxPoints+5; i++ {
		h.Record(float64(i), 0)
	}
	if h.Len() != DefaultMaxPoints {
		t.Errorf("expected default capacity %d, got %d", DefaultMaxPoints, h.Len())
	}
}
