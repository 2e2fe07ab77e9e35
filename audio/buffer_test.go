// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ik5/audshare/internal/audiotest"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels [][]float32
		wantErr  error
	}{
		{"mono", 8000, [][]float32{{0.1, 0.2}}, nil},
		{"stereo empty", 44100, [][]float32{{}, {}}, nil},
		{"no channels", 44100, nil, ErrInvalidBuffer},
		{"zero rate", 0, [][]float32{{0}}, ErrInvalidBuffer},
		{"negative rate", -1, [][]float32{{0}}, ErrInvalidBuffer},
		{"ragged", 44100, [][]float32{{0, 0}, {0}}, ErrInvalidBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := NewBuffer(tt.rate, tt.channels)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBuffer() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && buf.Channels() != len(tt.channels) {
				t.Errorf("Channels() = %d, want %d", buf.Channels(), len(tt.channels))
			}
		})
	}
}

func TestNewBuffer_Copies(t *testing.T) {
	t.Parallel()

	in := [][]float32{{0.5, 0.25}}
	buf, err := NewBuffer(8000, in)
	if err != nil {
		t.Fatal(err)
	}

	in[0][0] = 1
	if buf.At(0, 0) != 0.5 {
		t.Error("buffer shares storage with its input")
	}

	ch := buf.Channel(0)
	ch[1] = 1
	if buf.At(0, 1) != 0.25 {
		t.Error("Channel() exposes internal storage")
	}
}

func TestBuffer_Accessors(t *testing.T) {
	t.Parallel()

	buf, err := NewSilence(Format{SampleRate: 44100, Channels: 2}, 88200)
	if err != nil {
		t.Fatal(err)
	}

	if buf.Len() != 88200 {
		t.Errorf("Len() = %d", buf.Len())
	}
	if buf.Seconds() != 2 {
		t.Errorf("Seconds() = %v, want 2", buf.Seconds())
	}
	if buf.Duration() != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", buf.Duration())
	}
	if got := buf.Format().String(); got != "44100 Hz/2 ch" {
		t.Errorf("Format().String() = %q", got)
	}
}

func TestNewSilence_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewSilence(Format{SampleRate: 8000, Channels: 1}, -1); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("negative frames error = %v", err)
	}
	if _, err := NewSilence(Format{SampleRate: 8000}, 1); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("zero channels error = %v", err)
	}
}

func TestBuffer_Validate(t *testing.T) {
	t.Parallel()

	var nilBuf *Buffer
	if err := nilBuf.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("nil Validate() = %v", err)
	}
	if err := (&Buffer{}).Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("zero Validate() = %v", err)
	}
}

func TestBuffer_Equal(t *testing.T) {
	t.Parallel()

	a, _ := NewBuffer(8000, [][]float32{{0.1, 0.2}})
	b, _ := NewBuffer(8000, [][]float32{{0.1, 0.2}})
	c, _ := NewBuffer(16000, [][]float32{{0.1, 0.2}})
	d, _ := NewBuffer(8000, [][]float32{{0.1, 0.3}})

	if !a.Equal(b) {
		t.Error("identical buffers not equal")
	}
	if a.Equal(c) || a.Equal(d) || a.Equal(nil) {
		t.Error("different buffers reported equal")
	}
}

func TestBuffer_Source(t *testing.T) {
	t.Parallel()

	buf, err := NewBuffer(8000, audiotest.Channels(2, 3, audiotest.Ramp))
	if err != nil {
		t.Fatal(err)
	}

	src := buf.Source()
	if src.SampleRate() != 8000 || src.Channels() != 2 {
		t.Fatalf("source format = %d/%d", src.SampleRate(), src.Channels())
	}

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v, want ErrInvalidDstSize", err)
	}

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("first read = %d, %v", n, err)
	}
	if dst[1] != audiotest.Ramp(0, 1) || dst[2] != audiotest.Ramp(1, 0) {
		t.Errorf("samples not interleaved: %v", dst)
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Fatalf("second read = %d, %v", n, err)
	}
	if _, err = src.ReadSamples(dst); !errors.Is(err, io.EOF) {
		t.Errorf("third read error = %v, want EOF", err)
	}
}
