package axml

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument is returned by operations that need a valid
	// document.
	ErrInvalidDocument = errors.New("document is not valid")
	ErrNodeTruncated   = errors.New("xml node chunk is truncated")
	ErrAttributeSize   = errors.New("attribute size is smaller than required size")
)

// errAbort stops the chunk walk without failing the parse. It is only
// returned after the document has been marked invalid.
var errAbort = errors.New("abort")

// FatalError is returned when the input cannot be decoded at all. It
// wraps the sentinel of the failed check, such as
// stringpool.ErrNotTerminated, so callers can use errors.Is.
type FatalError struct {
	Offset int
	Err    error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("axml: fatal error at offset 0x%08x: %s", e.Offset, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
