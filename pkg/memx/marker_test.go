package memx_test

import (
	"testing"

	"github.com/Abraxas-365/convmem/pkg/memx"
)

func TestMarker_RoundTrip(t *testing.T) {
	for _, count := range []int{0, 1, 5, 100} {
		m := memx.MarkerForCount(count)
		if got := m.CoveredCount(); got != count {
			t.Errorf("MarkerForCount(%d).CoveredCount() = %d", count, got)
		}
	}
}

func TestMarker_LowValuesMeanNothingSummarized(t *testing.T) {
	for _, m := range []memx.Marker{-1, 0, 1} {
		if got := m.CoveredCount(); got != 0 {
			t.Errorf("Marker(%d).CoveredCount() = %d, want 0", m, got)
		}
	}
}

func TestMarker_NegativeCountClamped(t *testing.T) {
	if got := memx.MarkerForCount(-3).CoveredCount(); got != 0 {
		t.Fatalf("expected 0 coverage for negative count, got %d", got)
	}
}
