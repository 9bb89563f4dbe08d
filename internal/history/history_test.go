package history

import (
	"testing"
	"time"

	"icecream_controller/internal/models"
)

func sample(i int) models.TempSample {
	return models.TempSample{Elapsed: time.Duration(i) * 30 * time.Second, TempC: float64(i)}
}

func TestHistoryEmpty(t *testing.T) {
	h := New(5)
	if h.Count() != 0 {
		t.Fatalf("expected 0, got %d", h.Count())
	}
	if _, ok := h.Latest(); ok {
		t.Error("Latest on empty history should report false")
	}
	if got := h.Snapshot(); len(got) != 0 {
		t.Errorf("expected empty snapshot, got %v", got)
	}
}

func TestHistoryBeforeWrap(t *testing.T) {
	h := New(5)
	for i := 0; i < 3; i++ {
		h.Append(sample(i))
	}
	if h.Count() != 3 {
		t.Fatalf("expected 3, got %d", h.Count())
	}
	for i := 0; i < 3; i++ {
		if got := h.Get(i).TempC; got != float64(i) {
			t.Errorf("Get(%d) = %v, want %v", i, got, i)
		}
	}
}

func TestHistoryWraparoundKeepsLogicalOrder(t *testing.T) {
	const capacity = 5
	h := New(capacity)

	for n := 1; n <= 3*capacity+2; n++ {
		h.Append(sample(n - 1))

		wantCount := n
		if wantCount > capacity {
			wantCount = capacity
		}
		if h.Count() != wantCount {
			t.Fatalf("after %d appends: count=%d, want %d", n, h.Count(), wantCount)
		}

		oldest := n - wantCount
		if got := h.Get(0).TempC; got != float64(oldest) {
			t.Fatalf("after %d appends: Get(0)=%v, want %d", n, got, oldest)
		}
		for i := 1; i < h.Count(); i++ {
			if h.Get(i).Elapsed <= h.Get(i-1).Elapsed {
				t.Fatalf("after %d appends: samples out of order at %d", n, i)
			}
		}
		if latest, _ := h.Latest(); latest.TempC != float64(n-1) {
			t.Fatalf("after %d appends: latest=%v", n, latest.TempC)
		}
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := New(0)
	if h.Capacity() != DefaultCapacity {
		t.Fatalf("capacity=%d, want %d", h.Capacity(), DefaultCapacity)
	}
	for i := 0; i < 250; i++ {
		h.Append(sample(i))
	}
	if h.Count() != DefaultCapacity {
		t.Fatalf("count=%d, want %d", h.Count(), DefaultCapacity)
	}
	if h.Get(0).TempC != 150 {
		t.Fatalf("oldest=%v, want 150", h.Get(0).TempC)
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := New(3)
	h.Append(sample(1))
	snap := h.Snapshot()
	snap[0].TempC = 99
	if h.Get(0).TempC != 1 {
		t.Fatal("snapshot must not alias the ring")
	}
}

func TestHistoryGetOutOfRangePanics(t *testing.T) {
	h := New(3)
	h.Append(sample(0))
	for _, i := range []int{-1, 1, 3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Get(%d) should panic", i)
				}
			}()
			h.Get(i)
		}()
	}
}
