//go:build !amd64 && !arm64 || noasm

// relax_stub.go
//
// Portable fall-back for architectures without a hand-written relax hint,
// or when assembly/CGO stubs are disabled via 'noasm'.

package backoff

func cpuRelax() {}
