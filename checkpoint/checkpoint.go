// Package checkpoint decorates errors with the location they passed through,
// which gives a short trace of how an error travelled up from the image reads.
// Every error attached to a checkpoint stays visible to errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From wraps err in a checkpoint that records the caller location.
// It returns nil if err is nil.
func From(err error) error {
	// io.EOF has to stay comparable by ==.
	// https://github.com/golang/go/issues/39155
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return err
	}
	if err == nil {
		return nil
	}

	return newCheckpoint(err, nil)
}

// Wrap records a checkpoint for prev and tags it with err, which usually is
// one of the package level sentinel errors:
//  func readBootSector() error {
//  	data, err := read(...)
//  	return checkpoint.Wrap(err, ErrNotFat32)
//  }
// Afterwards errors.Is matches both ErrNotFat32 and the original cause.
// Wrap returns nil if prev is nil, so it can wrap results unconditionally.
func Wrap(prev, err error) error {
	if prev == io.EOF {
		return io.EOF
	}
	if prev == nil {
		return nil
	}

	return newCheckpoint(err, prev)
}

// Reason creates a checkpoint for a sentinel error plus a formatted detail
// message, for failures that have no underlying cause error.
func Reason(err error, format string, args ...interface{}) error {
	return newCheckpoint(err, fmt.Errorf(format, args...))
}

func newCheckpoint(err, prev error) *checkpoint {
	// Skip newCheckpoint and the exported caller.
	_, file, line, ok := runtime.Caller(2)

	return &checkpoint{
		err:      err,
		prev:     prev,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

// Error renders the chain on one line, outermost first:
//  not a FAT32 partition [bootsector.go:42]: fs type "FAT16   "
func (e *checkpoint) Error() string {
	var b strings.Builder

	if e.err != nil {
		b.WriteString(e.err.Error())
	}
	if e.callerOk {
		fmt.Fprintf(&b, " [%s:%d]", e.file, e.line)
	}
	if e.prev != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.prev.Error())
	}

	return b.String()
}

// Location returns the file:line recorded for this checkpoint.
func (e *checkpoint) Location() string {
	if !e.callerOk {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", e.file, e.line)
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}
