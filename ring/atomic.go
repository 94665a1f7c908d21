// atomic.go
//
// Portable acquire/release helpers for the sequence-stamp handshake.
// sync/atomic's ordering is a conservative superset of what's required
// here, and is the same choice the original single-payload ring made.

package ring

import "sync/atomic"

func loadAcquireUint64(p *uint64) uint64 {
	return atomic.LoadUint64(p)
}

func storeReleaseUint64(p *uint64, v uint64) {
	atomic.StoreUint64(p, v)
}
