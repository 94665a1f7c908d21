//go:build linux

// affinity_linux.go — Linux binding for sched_setaffinity(2), pinning the
// calling OS thread to a single logical CPU. Ported from the teacher's
// precomputed-bitmask raw syscall into golang.org/x/sys/unix's CPUSet
// wrapper, which the module already depended on only indirectly.
//
// Errors are deliberately swallowed: on a containerized or cgroup-heavy
// host the call may return EPERM/EINVAL, and the fallback is simply "no
// pin" rather than a fatal startup failure.

package affinity

import "golang.org/x/sys/unix"

// Pin pins the current OS thread to cpu (0-based). Call after
// runtime.LockOSThread so the pin outlives goroutine rescheduling.
func Pin(cpu int) {
	if cpu < 0 {
		return
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	_ = unix.SchedSetaffinity(0, &set)
}
