//go:build arm64 && !noasm

// relax_arm64.go — ARM64 YIELD hint via CGO inline assembly, the same
// technique the teacher codebase uses for this exact instruction (the
// plain Go arm64 assembler has no YIELD mnemonic).

package backoff

/*
#ifdef __aarch64__
static inline void cpu_yield() {
    __asm__ __volatile__("yield" ::: "memory");
}
#else
#error "This file requires ARM64 architecture"
#endif
*/
import "C"

//go:nosplit
func cpuRelax() {
	C.cpu_yield()
}
