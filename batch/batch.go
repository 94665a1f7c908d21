// batch.go — stack-resident batch accumulator.
//
// Flushes when the batch reaches txn.BatchMax, or when TimeoutNs have
// elapsed since the first transaction currently buffered, whichever
// comes first. Timing is driven by the tsc package so the check costs a
// register read rather than a syscall.

package batch

import (
	"errors"

	"hftbundler/ring"
	"hftbundler/tsc"
	"hftbundler/txn"
)

// TimeoutNs is the deadline-flush window, measured from the first
// transaction currently buffered.
const TimeoutNs = 100_000

// ErrFull is returned when a flush cannot land in the output ring.
var ErrFull = errors.New("batch: output ring full")

// Builder accumulates transactions into a txn.Batch.
type Builder struct {
	buf       [txn.BatchMax]txn.Txn
	count     int
	startTick uint64
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{startTick: tsc.Read()}
}

// Len reports the number of transactions currently buffered.
func (bd *Builder) Len() int { return bd.count }

// IsEmpty reports whether the builder holds no transactions.
func (bd *Builder) IsEmpty() bool { return bd.count == 0 }

// IsFull reports whether the builder is at capacity.
func (bd *Builder) IsFull() bool { return bd.count >= txn.BatchMax }

// shouldFlushTimeout reports whether the deadline for the oldest buffered
// transaction has passed.
func (bd *Builder) shouldFlushTimeout() bool {
	if bd.count == 0 {
		return false
	}
	elapsed := tsc.ToNs(tsc.Read() - bd.startTick)
	return elapsed >= TimeoutNs
}

// Push adds t to the batch, flushing first if the batch is full or the
// deadline has expired, and flushing again immediately if t fills it.
func (bd *Builder) Push(t txn.Txn, out *ring.Ring[txn.Batch]) error {
	if bd.count >= txn.BatchMax || (bd.count > 0 && bd.shouldFlushTimeout()) {
		if err := bd.Flush(out); err != nil {
			return err
		}
	}
	if bd.count == 0 {
		bd.startTick = tsc.Read()
	}
	bd.buf[bd.count] = t
	bd.count++
	if bd.count >= txn.BatchMax {
		return bd.Flush(out)
	}
	return nil
}

// Flush pushes the currently buffered transactions as one txn.Batch and
// resets the builder. A no-op if the builder is empty.
func (bd *Builder) Flush(out *ring.Ring[txn.Batch]) error {
	if bd.count == 0 {
		return nil
	}
	b := txn.WithTxnsUnchecked(bd.buf, uint8(bd.count), tsc.ToNs(tsc.Read()))
	if !out.Push(b) {
		return ErrFull
	}
	bd.count = 0
	bd.startTick = tsc.Read()
	return nil
}

// ForceFlush flushes regardless of size or deadline state. Identical to
// Flush today; kept as a distinct name so callers can express intent
// (shutdown drain vs. steady-state trigger check).
func (bd *Builder) ForceFlush(out *ring.Ring[txn.Batch]) error {
	return bd.Flush(out)
}

// Tick checks the deadline trigger without adding a transaction, for
// callers that poll an idle builder between ring pops.
func (bd *Builder) Tick(out *ring.Ring[txn.Batch]) error {
	if bd.shouldFlushTimeout() {
		return bd.Flush(out)
	}
	return nil
}
