// book.go — price-aggregated order book.
//
// Prices bucket into 1024 cache-aligned levels per side, 16 ticks per
// bucket, via a shift-and-mask. This is deliberately not a limit order
// book: it answers "how much size sits near this price" at speed, not
// "which order is first in the queue."

package book

import (
	"errors"
	"sync/atomic"
)

const (
	levels     = 1024
	tickShift  = 4
	levelMask  = levels - 1
	maxRetries = 100
)

var (
	ErrOverflow = errors.New("book: quantity overflow")
	ErrTimeout  = errors.New("book: CAS retry exhausted")
)

// level is one price bucket, cache-padded against its neighbors.
type level struct {
	quantity  int64
	timestamp uint64
	_         [48]byte // pad level to 64 bytes (quantity+timestamp = 16)
}

// Book is a lock-free price-bucketed order book, safe for any number of
// concurrent updaters (not just the pipeline's single book-fold worker).
type Book struct {
	bids [levels]level
	asks [levels]level

	_       [64]byte
	bestBid int64
	_       [56]byte
	bestAsk int64
	_       [56]byte
}

// New constructs an empty book. bestAsk starts at int64 max so the first
// real ask always wins the initial comparison.
func New() *Book {
	b := &Book{}
	b.bestAsk = int64(^uint64(0) >> 1)
	return b
}

func levelIndex(price int64) int {
	return int((price >> tickShift)) & levelMask
}

// UpdateBid applies delta to the bid level containing price.
func (b *Book) UpdateBid(price, delta int64, tsNs uint64) error {
	return b.update(&b.bids[levelIndex(price)], price, delta, tsNs, &b.bestBid, true)
}

// UpdateAsk applies delta to the ask level containing price.
func (b *Book) UpdateAsk(price, delta int64, tsNs uint64) error {
	return b.update(&b.asks[levelIndex(price)], price, delta, tsNs, &b.bestAsk, false)
}

func (b *Book) update(lv *level, price, delta int64, tsNs uint64, best *int64, isBid bool) error {
	backoffN := 1
	for i := 0; i < maxRetries; i++ {
		current := atomic.LoadInt64(&lv.quantity)
		newQty := current + delta
		if (delta > 0 && newQty < current) || (delta < 0 && newQty > current) {
			return ErrOverflow
		}
		if atomic.CompareAndSwapInt64(&lv.quantity, current, newQty) {
			atomic.StoreUint64(&lv.timestamp, tsNs)
			if isBid {
				b.updateBestBid(price, newQty)
			} else {
				b.updateBestAsk(price, newQty)
			}
			return nil
		}
		for j := 0; j < backoffN; j++ {
		}
		if backoffN < 64 {
			backoffN *= 2
		}
	}
	return ErrTimeout
}

// updateBestBid optimistically advances the best-bid hint. Losing a race
// here just leaves a stale hint, corrected on the next successful update.
func (b *Book) updateBestBid(price, newQty int64) {
	if newQty > 0 {
		current := atomic.LoadInt64(&b.bestBid)
		for price > current {
			if atomic.CompareAndSwapInt64(&b.bestBid, current, price) {
				return
			}
			current = atomic.LoadInt64(&b.bestBid)
		}
		return
	}
	if atomic.LoadInt64(&b.bestBid) == price {
		atomic.StoreInt64(&b.bestBid, 0)
	}
}

func (b *Book) updateBestAsk(price, newQty int64) {
	maxI64 := int64(^uint64(0) >> 1)
	if newQty > 0 {
		current := atomic.LoadInt64(&b.bestAsk)
		for price < current {
			if atomic.CompareAndSwapInt64(&b.bestAsk, current, price) {
				return
			}
			current = atomic.LoadInt64(&b.bestAsk)
		}
		return
	}
	if atomic.LoadInt64(&b.bestAsk) == price {
		atomic.StoreInt64(&b.bestAsk, maxI64)
	}
}

// BestBid returns the current best-bid hint; may be slightly stale.
func (b *Book) BestBid() int64 { return atomic.LoadInt64(&b.bestBid) }

// BestAsk returns the current best-ask hint; may be slightly stale.
func (b *Book) BestAsk() int64 { return atomic.LoadInt64(&b.bestAsk) }

// BidQuantity returns the net quantity at the bid level containing price.
func (b *Book) BidQuantity(price int64) int64 {
	return atomic.LoadInt64(&b.bids[levelIndex(price)].quantity)
}

// AskQuantity returns the net quantity at the ask level containing price.
func (b *Book) AskQuantity(price int64) int64 {
	return atomic.LoadInt64(&b.asks[levelIndex(price)].quantity)
}

// Spread returns bestAsk-bestBid, or 0 if either side is empty.
func (b *Book) Spread() int64 {
	bid := b.BestBid()
	ask := b.BestAsk()
	maxI64 := int64(^uint64(0) >> 1)
	if ask == maxI64 || bid == 0 {
		return 0
	}
	return ask - bid
}
