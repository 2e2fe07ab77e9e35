// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audshare/audio"
)

// mockMP3Reader hands out PCM bytes in pieces of at most step bytes.
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	step       int
	err        error
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.data))
	if m.step > 0 {
		n = min(n, m.step)
	}
	copy(buf, m.data[:n])
	m.data = m.data[n:]

	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not MP3 data"),
		"empty":   {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(data))
			if !errors.Is(err, ErrNotMP3) {
				t.Errorf("Decode() error = %v, want ErrNotMP3", err)
			}
		})
	}
}

func TestSource_ReadAllStereo(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockMP3Reader{sampleRate: 44100, data: pcmBytes(0, 16384, -16384, -32768)},
		sampleRate: 44100,
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Channels() != 2 || buf.Len() != 2 || buf.SampleRate() != 44100 {
		t.Fatalf("got %s x %d, want 44100 Hz/2 ch x 2", buf.Format(), buf.Len())
	}

	want := [][]float32{{0, -0.5}, {0.5, -1}}
	for c := range want {
		for i, w := range want[c] {
			if got := buf.At(c, i); got != w {
				t.Errorf("ch %d frame %d = %v, want %v", c, i, got, w)
			}
		}
	}
}

func TestSource_OddByteReads(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, -1000, 2000, -2000, 3000, -3000}
	src := &source{
		dec:        &mockMP3Reader{sampleRate: 22050, data: pcmBytes(samples...), step: 3},
		sampleRate: 22050,
	}

	var got []float32
	dst := make([]float32, 8)
	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{err: io.ErrUnexpectedEOF}}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockMP3Reader{}, sampleRate: 48000, buf: make([]byte, 8192)}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
