// stats.go — shared pipeline counters.
//
// Seven independently cache-padded atomic counters, one per worker-visible
// event. There is no counter for items currently in flight. Padding prevents one stage's hot increments from bouncing the
// cache line a neighboring stage's counter lives on.

package stats

import "sync/atomic"

type counter struct {
	v uint64
	_ [56]byte
}

// Stats holds the pipeline's cross-stage counters.
type Stats struct {
	ingressGenerated counter
	ingressPushed    counter
	ingressDropped   counter
	bookProcessed    counter
	bookTimeout      counter
	batchFlushed     counter
	outputReceived   counter
}

// New returns a zeroed Stats.
func New() *Stats { return &Stats{} }

func (s *Stats) IngressGenerated() uint64 { return atomic.LoadUint64(&s.ingressGenerated.v) }
func (s *Stats) IngressPushed() uint64    { return atomic.LoadUint64(&s.ingressPushed.v) }
func (s *Stats) IngressDropped() uint64   { return atomic.LoadUint64(&s.ingressDropped.v) }
func (s *Stats) BookProcessed() uint64    { return atomic.LoadUint64(&s.bookProcessed.v) }
func (s *Stats) BookTimeout() uint64      { return atomic.LoadUint64(&s.bookTimeout.v) }
func (s *Stats) BatchFlushed() uint64     { return atomic.LoadUint64(&s.batchFlushed.v) }
func (s *Stats) OutputReceived() uint64   { return atomic.LoadUint64(&s.outputReceived.v) }

func (s *Stats) AddIngressGenerated() { atomic.AddUint64(&s.ingressGenerated.v, 1) }
func (s *Stats) AddIngressPushed()    { atomic.AddUint64(&s.ingressPushed.v, 1) }
func (s *Stats) AddIngressDropped()   { atomic.AddUint64(&s.ingressDropped.v, 1) }
func (s *Stats) AddBookProcessed()    { atomic.AddUint64(&s.bookProcessed.v, 1) }
func (s *Stats) AddBookTimeout()      { atomic.AddUint64(&s.bookTimeout.v, 1) }
func (s *Stats) AddBatchFlushed()     { atomic.AddUint64(&s.batchFlushed.v, 1) }
func (s *Stats) AddOutputReceived()   { atomic.AddUint64(&s.outputReceived.v, 1) }

// Snapshot is a point-in-time copy, suitable for logging or JSON
// serialization off the hot path.
type Snapshot struct {
	IngressGenerated uint64 `json:"ingress_generated"`
	IngressPushed    uint64 `json:"ingress_pushed"`
	IngressDropped   uint64 `json:"ingress_dropped"`
	BookProcessed    uint64 `json:"book_processed"`
	BookTimeout      uint64 `json:"book_timeout"`
	BatchFlushed     uint64 `json:"batch_flushed"`
	OutputReceived   uint64 `json:"output_received"`
}

// Snapshot takes a consistent-enough read of every counter.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		IngressGenerated: s.IngressGenerated(),
		IngressPushed:    s.IngressPushed(),
		IngressDropped:   s.IngressDropped(),
		BookProcessed:    s.BookProcessed(),
		BookTimeout:      s.BookTimeout(),
		BatchFlushed:     s.BatchFlushed(),
		OutputReceived:   s.OutputReceived(),
	}
}
