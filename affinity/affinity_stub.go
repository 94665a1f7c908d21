//go:build !linux

// affinity_stub.go — non-Linux platforms have no portable
// sched_setaffinity equivalent reachable from golang.org/x/sys; Pin is a
// no-op so callers don't need per-OS branches.

package affinity

// Pin is a no-op outside Linux.
func Pin(cpu int) {}
