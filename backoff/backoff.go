// backoff.go — three-phase adaptive spin/yield/sleep escalator.
//
// Phase A (steps 0-6): exponential spin, 1<<step cpuRelax iterations.
// Phase B (steps 7-10): cooperative runtime.Gosched().
// Phase C (step 11+): sleep ~100us, saturating.
// Reset() on any successful unit of work.

package backoff

import (
	"runtime"
	"time"
)

const (
	spinLimit  = 6
	yieldLimit = 10
)

// Backoff tracks escalation state for one spin loop. Not safe for
// concurrent use; each worker owns its own instance.
type Backoff struct {
	step uint32
}

// New returns a Backoff at step 0 (Phase A).
func New() *Backoff {
	return &Backoff{}
}

// Reset returns to step 0, called after successful work so the next
// stall starts from the cheapest phase again.
func (b *Backoff) Reset() {
	b.step = 0
}

// IsSpinning reports whether the next Snooze will spin (Phase A) rather
// than yield or sleep.
func (b *Backoff) IsSpinning() bool {
	return b.step <= spinLimit
}

// Snooze performs one escalation step.
func (b *Backoff) Snooze() {
	switch {
	case b.step <= spinLimit:
		n := 1 << b.step
		for i := 0; i < n; i++ {
			cpuRelax()
		}
	case b.step <= yieldLimit:
		runtime.Gosched()
	default:
		time.Sleep(100 * time.Microsecond)
	}
	if b.step < yieldLimit+1 {
		b.step++
	}
}
