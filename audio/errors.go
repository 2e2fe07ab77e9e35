// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidBuffer  = errors.New("invalid audio buffer")
	ErrFormatMismatch = errors.New("audio format mismatch")
	ErrEmptyMerge     = errors.New("nothing to merge")
	ErrSliceRange     = errors.New("slice range out of bounds")
	ErrUnknownFormat  = errors.New("unknown audio format")
	ErrNoProgress     = errors.New("source returned no samples")
)

// DecodeError reports that a decoder rejected its input.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FormatMismatchError is returned by Merge when the buffer at Index does not
// share the sample rate and channel count of the first buffer.
type FormatMismatchError struct {
	Index int
	Want  Format
	Got   Format
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("buffer %d is %s, want %s", e.Index, e.Got, e.Want)
}

func (e *FormatMismatchError) Is(target error) bool { return target == ErrFormatMismatch }
