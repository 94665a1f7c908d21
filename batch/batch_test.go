package batch

import (
	"testing"
	"time"

	"hftbundler/ring"
	"hftbundler/tsc"
	"hftbundler/txn"
)

func init() {
	tsc.Calibrate()
}

func TestBuilderBasic(t *testing.T) {
	out := ring.New[txn.Batch](1024)
	b := NewBuilder()
	tx := txn.NewUnchecked(1, 1000, 100, 0, 0)
	if err := b.Push(tx, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("expected len 1, got %d", b.Len())
	}
}

func TestBuilderAutoFlushOnFull(t *testing.T) {
	out := ring.New[txn.Batch](1024)
	b := NewBuilder()
	for i := 0; i < txn.BatchMax; i++ {
		tx := txn.NewUnchecked(uint64(i), 1000, 100, 0, 0)
		if err := b.Push(tx, out); err != nil {
			t.Fatalf("push %d: unexpected error: %v", i, err)
		}
	}
	if !b.IsEmpty() {
		t.Fatalf("expected builder to auto-flush, len=%d", b.Len())
	}
	if out.Len() != 1 {
		t.Fatalf("expected 1 flushed batch, got %d", out.Len())
	}
	got, ok := out.Pop()
	if !ok || int(got.Count) != txn.BatchMax {
		t.Fatalf("expected full batch, got count=%d ok=%v", got.Count, ok)
	}
}

func TestBuilderManualFlush(t *testing.T) {
	out := ring.New[txn.Batch](1024)
	b := NewBuilder()
	for i := 0; i < 5; i++ {
		tx := txn.NewUnchecked(uint64(i), 1000, 100, 0, 0)
		if err := b.Push(tx, out); err != nil {
			t.Fatalf("push %d: unexpected error: %v", i, err)
		}
	}
	if b.Len() != 5 {
		t.Fatalf("expected len 5, got %d", b.Len())
	}
	if err := b.ForceFlush(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsEmpty() {
		t.Fatalf("expected empty after flush")
	}
	got, ok := out.Pop()
	if !ok || got.Count != 5 {
		t.Fatalf("expected batch of 5, got %d", got.Count)
	}
}

func TestBuilderTimeout(t *testing.T) {
	out := ring.New[txn.Batch](1024)
	b := NewBuilder()
	tx := txn.NewUnchecked(1, 1000, 100, 0, 0)
	if err := b.Push(tx, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(500 * time.Microsecond)
	if !b.shouldFlushTimeout() {
		t.Fatal("expected timeout condition to be true")
	}
	tx2 := txn.NewUnchecked(2, 1000, 100, 0, 0)
	if err := b.Push(tx2, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() < 1 {
		t.Fatal("expected at least one flushed batch")
	}
	got, ok := out.Pop()
	if !ok || got.Count < 1 || got.Count > 2 {
		t.Fatalf("expected batch of 1-2 txns, got %d", got.Count)
	}
}
