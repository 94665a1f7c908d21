// ring.go
//
// Lock-free single-producer/single-consumer ring buffer tuned for <10 ns
// hand-off latency on modern CPUs. The structure deliberately separates
// producer and consumer fields with full cache-lines to eliminate
// false-sharing, and each slot carries a sequence number so Push/Pop can
// be wait-free without additional atomics. Generic over the payload type,
// replacing what used to require one hand-duplicated ring per fixed
// payload width.

package ring

// slot couples a payload with its sequence stamp.
type slot[T any] struct {
	seq uint64 // position in the sequence space
	val T
}

// Ring is a fixed-capacity circular buffer dedicated to one producer and
// one consumer.
type Ring[T any] struct {
	_    [64]byte // consumer head (next slot to pop) isolated on its own cache-line
	head uint64
	//lint:ignore U1000 padding to keep head & tail on different cache-lines
	_pad1 [64]byte
	tail  uint64
	//lint:ignore U1000 padding to keep hot fields from colliding with metadata
	_pad2 [64]byte
	mask  uint64
	buf   []slot[T]
}

// New allocates a ring whose size must be a power-of-two; otherwise it
// panics so that the bit-masking arithmetic stays valid.
func New[T any](size int) *Ring[T] {
	if size <= 0 || size&(size-1) != 0 {
		panic("ring: size must be >0 and a power of two")
	}
	r := &Ring[T]{
		mask: uint64(size - 1),
		buf:  make([]slot[T], size),
	}
	for i := range r.buf {
		r.buf[i].seq = uint64(i)
	}
	return r
}

// Push enqueues v, returning false if the buffer is full.
//
//go:nosplit
func (r *Ring[T]) Push(v T) bool {
	t := r.tail
	s := &r.buf[t&r.mask]
	if loadAcquireUint64(&s.seq) != t {
		return false // consumer has not yet reclaimed the slot
	}
	s.val = v
	storeReleaseUint64(&s.seq, t+1)
	r.tail = t + 1
	return true
}

// Pop dequeues one value. The second return is false if the buffer is
// empty, in which case the first return is the zero value of T.
//
//go:nosplit
func (r *Ring[T]) Pop() (T, bool) {
	h := r.head
	s := &r.buf[h&r.mask]
	if loadAcquireUint64(&s.seq) != h+1 {
		var zero T
		return zero, false // producer has not yet published to the slot
	}
	v := s.val
	storeReleaseUint64(&s.seq, h+uint64(len(r.buf)))
	r.head = h + 1
	return v, true
}

// PopWait busy-spins until an item becomes available.
func (r *Ring[T]) PopWait() T {
	for {
		if v, ok := r.Pop(); ok {
			return v
		}
		cpuRelax()
	}
}

// Len returns an approximate occupancy; may be stale under concurrent
// access from the opposing side.
func (r *Ring[T]) Len() int {
	return int(r.tail - r.head)
}
