// txn.go — fixed-layout transaction and batch primitives.
//
// Txn is 32 bytes, 8-byte aligned, and carries no pointers so it can be
// reinterpreted as a byte array without escaping to the heap. Batch wraps
// 16 of them plus a count and a flush timestamp.

package txn

import (
	"errors"
	"unsafe"
)

// BatchMax is the fixed capacity of a Batch.
const BatchMax = 16

var (
	ErrInvalidSide      = errors.New("txn: side must be 0 or 1")
	ErrNonPositivePrice = errors.New("txn: price must be positive")
	ErrZeroSize         = errors.New("txn: size must be non-zero")
	ErrCountTooLarge    = errors.New("txn: count exceeds BatchMax")
)

// Txn represents a single order. Fixed-point price, scale 10000.
type Txn struct {
	ID          uint64
	Price       int64
	Size        uint32
	Side        uint8
	_           [3]byte // pad to 8-byte alignment
	IngressTsNs uint64
}

// New validates and constructs a Txn.
func New(id uint64, price int64, size uint32, side uint8, ingressTsNs uint64) (Txn, error) {
	if side > 1 {
		return Txn{}, ErrInvalidSide
	}
	if price <= 0 {
		return Txn{}, ErrNonPositivePrice
	}
	if size == 0 {
		return Txn{}, ErrZeroSize
	}
	return NewUnchecked(id, price, size, side, ingressTsNs), nil
}

// NewUnchecked builds a Txn without validation, for trusted internal paths.
func NewUnchecked(id uint64, price int64, size uint32, side uint8, ingressTsNs uint64) Txn {
	return Txn{ID: id, Price: price, Size: size, Side: side, IngressTsNs: ingressTsNs}
}

// IsBid reports whether this is a buy order.
func (t Txn) IsBid() bool { return t.Side == 0 }

// IsAsk reports whether this is a sell order.
func (t Txn) IsAsk() bool { return t.Side == 1 }

// PriceF64 returns the decimal price.
func (t Txn) PriceF64() float64 { return float64(t.Price) / 10000.0 }

// Bytes reinterprets t as its in-memory byte form. Not a portable wire
// format: layout matches the current platform's struct alignment only.
func (t Txn) Bytes() [32]byte {
	return *(*[32]byte)(unsafe.Pointer(&t))
}

// FromBytes reinterprets b as a Txn, the inverse of Bytes.
func FromBytes(b [32]byte) Txn {
	return *(*Txn)(unsafe.Pointer(&b))
}

// Batch holds up to BatchMax transactions ready for flush.
type Batch struct {
	Txns        [BatchMax]Txn
	Count       uint8
	_           [7]byte
	FlushedTsNs uint64
}

// WithTxns validates count and builds a Batch.
func WithTxns(txns [BatchMax]Txn, count uint8, flushedTsNs uint64) (Batch, error) {
	if int(count) > BatchMax {
		return Batch{}, ErrCountTooLarge
	}
	return WithTxnsUnchecked(txns, count, flushedTsNs), nil
}

// WithTxnsUnchecked builds a Batch without validation.
func WithTxnsUnchecked(txns [BatchMax]Txn, count uint8, flushedTsNs uint64) Batch {
	return Batch{Txns: txns, Count: count, FlushedTsNs: flushedTsNs}
}

// Active returns the populated prefix of Txns.
func (b *Batch) Active() []Txn { return b.Txns[:b.Count] }

// IsEmpty reports whether the batch holds no transactions.
func (b *Batch) IsEmpty() bool { return b.Count == 0 }

// IsFull reports whether the batch is at capacity.
func (b *Batch) IsFull() bool { return int(b.Count) >= BatchMax }
