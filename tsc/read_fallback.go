//go:build (!amd64 && !arm64) || noasm

// read_fallback.go
//
// Portable fallback for architectures without a dedicated cycle-counter
// read, or when assembly stubs are disabled via 'noasm'. Wall-clock
// nanoseconds stand in for tick count, at reduced precision.

package tsc

import "time"

//go:nosplit
func Read() uint64 {
	return uint64(time.Now().UnixNano())
}
