//go:build amd64 && !noasm

// read_amd64.go
//
// Go declaration for Read on amd64. The implementation lives in
// read_amd64.s and executes RDTSC directly, the same instruction pair
// the Go runtime uses internally for its own cputicks.

package tsc

//go:nosplit
func Read() uint64
