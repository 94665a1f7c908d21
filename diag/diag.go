// diag.go — cold-path diagnostic logging (zero-alloc)
//
// Ported from the teacher's debug/debug.go + utils/utils.go pair. Used only
// on cold paths: the interrupt notice in main's signal handler and a failed
// JSON marshal in the pipeline monitor — never in the hot
// ingress/fold/flush loops.
//
// Avoids fmt.Sprintf/log.Printf to keep these cold paths allocation-free so
// that an occasional diagnostic write never perturbs the histogram it is
// reporting on.

package diag

import "syscall"

// DropError logs an error with a prefix, writing directly to stderr (fd 2)
// to sidestep the heap allocations log.Logger carries.
//
//go:nosplit
func DropError(prefix string, err error) {
	if err != nil {
		printWarning(prefix + ": " + err.Error() + "\n")
	} else {
		printWarning(prefix + "\n")
	}
}

// DropMessage logs a plain diagnostic message.
//
//go:nosplit
func DropMessage(prefix, message string) {
	printWarning(prefix + ": " + message + "\n")
}

// printWarning writes msg to stderr without going through bufio or fmt.
//
//go:nosplit
//go:inline
func printWarning(msg string) {
	_, _ = syscall.Write(2, []byte(msg))
}
