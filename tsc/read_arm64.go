//go:build arm64 && !noasm

// read_arm64.go
//
// Go declaration for Read on arm64. The implementation lives in
// read_arm64.s and reads the CNTVCT_EL0 virtual counter register.

package tsc

//go:nosplit
func Read() uint64
