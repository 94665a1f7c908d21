package txn

import (
	"testing"
	"unsafe"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(1, 1000, 100, 0, 0); err != nil {
		t.Fatalf("expected valid bid, got %v", err)
	}
	if _, err := New(1, 1000, 100, 1, 0); err != nil {
		t.Fatalf("expected valid ask, got %v", err)
	}
	if _, err := New(1, 1000, 100, 2, 0); err != ErrInvalidSide {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
	if _, err := New(1, -1000, 100, 0, 0); err != ErrNonPositivePrice {
		t.Fatalf("expected ErrNonPositivePrice, got %v", err)
	}
	if _, err := New(1, 0, 100, 0, 0); err != ErrNonPositivePrice {
		t.Fatalf("expected ErrNonPositivePrice for zero price, got %v", err)
	}
	if _, err := New(1, 1000, 0, 0, 0); err != ErrZeroSize {
		t.Fatalf("expected ErrZeroSize, got %v", err)
	}
}

func TestPriceF64(t *testing.T) {
	tx := NewUnchecked(1, 950000, 100, 0, 0)
	if got := tx.PriceF64(); got != 95.0 {
		t.Fatalf("expected 95.0, got %v", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	tx := NewUnchecked(123, 1000000, 50, 0, 1234567890)
	rt := FromBytes(tx.Bytes())
	if rt != tx {
		t.Fatalf("round trip mismatch: got %+v, want %+v", rt, tx)
	}
}

func TestTxnLayout(t *testing.T) {
	var tx Txn
	if sz := int(unsafe.Sizeof(tx)); sz != 32 {
		t.Fatalf("expected 32 bytes, got %d", sz)
	}
}

func TestBatchValidation(t *testing.T) {
	var txns [BatchMax]Txn
	if _, err := WithTxns(txns, 16, 0); err != nil {
		t.Fatalf("expected valid full batch, got %v", err)
	}
	if _, err := WithTxns(txns, 0, 0); err != nil {
		t.Fatalf("expected valid empty batch, got %v", err)
	}
	if _, err := WithTxns(txns, 17, 0); err != ErrCountTooLarge {
		t.Fatalf("expected ErrCountTooLarge, got %v", err)
	}
}

func TestBatchEmptyFull(t *testing.T) {
	b := WithTxnsUnchecked([BatchMax]Txn{}, 0, 0)
	if !b.IsEmpty() || b.IsFull() {
		t.Fatalf("expected empty, non-full batch")
	}
	b.Count = BatchMax
	if b.IsEmpty() || !b.IsFull() {
		t.Fatalf("expected full, non-empty batch")
	}
}
