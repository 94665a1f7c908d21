package ingress

import (
	"testing"

	"hftbundler/ring"
	"hftbundler/tsc"
	"hftbundler/txn"
)

func init() {
	tsc.Calibrate()
}

func TestGenerateBurst(t *testing.T) {
	r := ring.New[txn.Txn](4096)
	pushed := GenerateBurst(r, 100, 1_000_000, 42)
	if pushed != 100 {
		t.Fatalf("pushed = %d, want 100", pushed)
	}
	if r.Len() != 100 {
		t.Fatalf("ring len = %d, want 100", r.Len())
	}
}

func TestGenerateBurstOverflow(t *testing.T) {
	r := ring.New[txn.Txn](4096)
	pushed := GenerateBurst(r, 5000, 1_000_000, 7)
	if pushed > 4096 {
		t.Fatalf("pushed = %d, exceeds ring capacity", pushed)
	}
}

func TestSyntheticStatsDropRate(t *testing.T) {
	s := SyntheticStats{Generated: 1000, Pushed: 900, Dropped: 100}
	if got := s.DropRate(); got != 0.1 {
		t.Fatalf("DropRate() = %v, want 0.1", got)
	}
}

func TestSyntheticStatsDropRateNoSamples(t *testing.T) {
	var s SyntheticStats
	if got := s.DropRate(); got != 0 {
		t.Fatalf("DropRate() = %v, want 0", got)
	}
}

func TestRunRespectsStopChannel(t *testing.T) {
	r := ring.New[txn.Txn](64)
	stop := make(chan struct{})
	close(stop)
	result := Run(r, 1000, 0, 1, nil, stop)
	if result.Generated != 0 {
		t.Fatalf("expected no generation after immediate stop, got %+v", result)
	}
}
