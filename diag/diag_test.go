package diag

import (
	"errors"
	"testing"
)

func TestDropErrorDoesNotPanic(t *testing.T) {
	DropError("book overflow", errors.New("retry limit exceeded"))
	DropError("shutdown", nil)
}

func TestDropMessageDoesNotPanic(t *testing.T) {
	DropMessage("pipeline", "pin failed, continuing unpinned")
	DropMessage("pipeline", "")
}
