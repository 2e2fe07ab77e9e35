// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Slice copies the frames between start and end seconds into a new buffer.
// Both bounds are converted with round(t * sampleRate) so every channel is
// cut at the same frame. end may not exceed the buffer duration.
func Slice(buf *Buffer, start, end float64) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(start) || math.IsNaN(end) || start < 0 || end <= start {
		return nil, fmt.Errorf("%w: [%g, %g)", ErrSliceRange, start, end)
	}

	rate := float64(buf.sampleRate)
	lastFrame := math.Round(end * rate)
	if lastFrame > float64(buf.length) {
		return nil, fmt.Errorf("%w: end %gs past %d frames", ErrSliceRange, end, buf.length)
	}
	first := int(math.Round(start * rate))
	last := int(lastFrame)

	out := allocBuffer(buf.Format(), last-first)
	for c := range buf.data {
		copy(out.data[c], buf.data[c][first:last])
	}

	return out, nil
}

// Merge concatenates buffers in time, in the order given. All buffers must
// share the sample rate and channel count of the first one; samples are
// copied as-is, without clamping.
func Merge(bufs ...*Buffer) (*Buffer, error) {
	if len(bufs) == 0 {
		return nil, ErrEmptyMerge
	}

	want := Format{}
	total := 0
	for i, b := range bufs {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
		if i == 0 {
			want = b.Format()
		} else if b.Format() != want {
			return nil, &FormatMismatchError{Index: i, Want: want, Got: b.Format()}
		}
		total += b.length
	}

	out := allocBuffer(want, total)
	offset := 0
	for _, b := range bufs {
		for c := range b.data {
			copy(out.data[c][offset:], b.data[c])
		}
		offset += b.length
	}

	return out, nil
}

// Interleave flattens buf frame-major: element i*channels+c is frame i of
// channel c. A nil buf yields nil.
func Interleave(buf *Buffer) []float32 {
	if buf == nil {
		return nil
	}

	channels := len(buf.data)
	out := make([]float32, buf.length*channels)

	switch channels {
	case 1:
		copy(out, buf.data[0])
	case 2:
		left, right := buf.data[0], buf.data[1]
		for i := range buf.length {
			out[i<<1] = left[i]
			out[i<<1+1] = right[i]
		}
	default:
		for i := range buf.length {
			base := i * channels
			for c := range channels {
				out[base+c] = buf.data[c][i]
			}
		}
	}

	return out
}

// Deinterleave is the inverse of Interleave. A trailing partial frame is
// dropped.
func Deinterleave(samples []float32, f Format) (*Buffer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	frames := len(samples) / f.Channels
	out := allocBuffer(f, frames)
	for i := range frames {
		base := i * f.Channels
		for c := range f.Channels {
			out.data[c][i] = samples[base+c]
		}
	}

	return out, nil
}
