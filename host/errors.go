package host

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every error trapping a guest which passed an
// invalid memory range.
var ErrOutOfBounds = errors.New("memory access out of bounds")

// BoundsError describes an invalid memory range passed by a guest.
type BoundsError struct {
	Func    string // exported function name
	Ptr     uint32 // start address
	Len     int64  // requested length, may be negative
	MemSize uint32 // size of guest memory in bytes
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: range [%d, %d+%d) outside of guest memory of %d bytes: %v",
		e.Func, e.Ptr, e.Ptr, e.Len, e.MemSize, ErrOutOfBounds)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
