// SPDX-License-Identifier: EPL-2.0

// Package audiotest has synthetic sources and sample generators shared by
// tests across the module.
package audiotest

import (
	"io"
	"math"
)

// Wave produces the sample for a frame of a channel.
type Wave func(frame, channel int) float32

// Silence is zero everywhere.
func Silence(int, int) float32 { return 0 }

// Sine returns a full-scale sine of freq Hz at the given rate, identical on
// every channel.
func Sine(rate int, freq float64) Wave {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Constant returns v on every frame and channel.
func Constant(v float32) Wave {
	return func(int, int) float32 { return v }
}

// Ramp encodes position in the value: frame/1000 plus channel/10, which
// makes misplaced samples easy to spot in assertions.
func Ramp(frame, channel int) float32 {
	return float32(frame)/1000 + float32(channel)/10
}

// Channels renders frames of wave into planar channel slices.
func Channels(channels, frames int, wave Wave) [][]float32 {
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
		for i := range out[c] {
			out[c][i] = wave(i, c)
		}
	}

	return out
}

// MockSource is a test helper that generates interleaved audio.
// It satisfies audio.Source without importing it to avoid cycles.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	wave       Wave

	// MaxRead caps how many samples one ReadSamples call hands out.
	MaxRead int
	// Stalls is how many (0, nil) reads happen before any data.
	Stalls int
	// Err is returned instead of io.EOF once all frames were read.
	Err error

	Closed bool
}

// NewMockSource creates a source of frames frames per channel.
func NewMockSource(sampleRate, channels, frames int, wave Wave) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, Silence)
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.Stalls > 0 {
		m.Stalls--
		return 0, nil
	}
	if m.generated >= m.frames {
		if m.Err != nil {
			return 0, m.Err
		}
		return 0, io.EOF
	}

	limit := len(dst)
	if m.MaxRead > 0 {
		limit = min(limit, m.MaxRead)
	}
	frames := min(limit/m.channels, m.frames-m.generated)

	for f := range frames {
		for c := range m.channels {
			dst[f*m.channels+c] = m.wave(m.generated+f, c)
		}
	}
	m.generated += frames

	return frames * m.channels, nil
}
