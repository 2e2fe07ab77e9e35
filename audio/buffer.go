// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Format describes the shape of PCM audio: sample rate and channel count.
// A zero field means "keep whatever the input has" where a Format is used as
// a conversion target.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz/%d ch", f.SampleRate, f.Channels)
}

// Validate reports ErrInvalidBuffer when f cannot describe real audio.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidBuffer, f.Channels)
	}

	return nil
}

// Buffer is a decoded, sample-rate-tagged set of equal-length float32
// channels. A Buffer is never modified after construction; every transform
// returns a new one.
type Buffer struct {
	sampleRate int
	data       [][]float32
	length     int
}

// NewBuffer copies channels into a new Buffer.
// Every channel must have the same length and there must be at least one.
func NewBuffer(sampleRate int, channels [][]float32) (*Buffer, error) {
	if err := (Format{SampleRate: sampleRate, Channels: len(channels)}).Validate(); err != nil {
		return nil, err
	}

	length := len(channels[0])
	data := make([][]float32, len(channels))
	for c, ch := range channels {
		if len(ch) != length {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", ErrInvalidBuffer, c, len(ch), length)
		}
		data[c] = append(make([]float32, 0, length), ch...)
	}

	return &Buffer{sampleRate: sampleRate, data: data, length: length}, nil
}

// NewSilence returns a zeroed buffer of the given shape.
func NewSilence(f Format, frames int) (*Buffer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if frames < 0 {
		return nil, fmt.Errorf("%w: %d frames", ErrInvalidBuffer, frames)
	}

	return allocBuffer(f, frames), nil
}

// allocBuffer builds a zeroed buffer whose storage the caller fills in
// before handing it out.
func allocBuffer(f Format, frames int) *Buffer {
	data := make([][]float32, f.Channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{sampleRate: f.SampleRate, data: data, length: frames}
}

// Validate reports ErrInvalidBuffer for a nil or zero-value Buffer.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}

	return b.Format().Validate()
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }

// Len is the number of frames (samples per channel).
func (b *Buffer) Len() int { return b.length }

func (b *Buffer) Format() Format {
	return Format{SampleRate: b.sampleRate, Channels: len(b.data)}
}

// Seconds is Len divided by SampleRate.
func (b *Buffer) Seconds() float64 {
	return float64(b.length) / float64(b.sampleRate)
}

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.length) * time.Second / time.Duration(b.sampleRate)
}

// At returns frame i of channel c.
func (b *Buffer) At(c, i int) float32 { return b.data[c][i] }

// Channel returns a copy of channel c.
func (b *Buffer) Channel(c int) []float32 {
	return append(make([]float32, 0, b.length), b.data[c]...)
}

// Equal reports whether b and o have the same format and identical samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Format() != o.Format() || b.length != o.length {
		return false
	}
	for c := range b.data {
		for i, v := range b.data[c] {
			if o.data[c][i] != v {
				return false
			}
		}
	}

	return true
}

// Source exposes the buffer as an interleaved audio Source.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.data) }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.data)
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	frames := min(len(dst)/channels, s.buf.length-s.pos)
	if frames == 0 && len(dst) > 0 {
		return 0, io.EOF
	}

	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.data[c][s.pos+f]
		}
	}
	s.pos += frames

	return frames * channels, nil
}
