// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audshare/audio"
)

// pcmReader is the part of gowav.Decoder the source needs, to allow testing.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type wavSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32
	offset     int
	intBuf     *goaudio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return cap(s.intBuf.Data) }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil {
		return 0, fmt.Errorf("read pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	return n, nil
}

// Decoder reads integer PCM WAV files (8, 16, 24 or 32 bit) of any layout
// go-audio/wav understands, including extra chunks before "data".
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	if err := checkMagic(rs); err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}
	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	src := &wavSource{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		intBuf: &goaudio.IntBuffer{
			Data:   make([]int, 4096),
			Format: dec.Format(),
		},
	}

	switch dec.BitDepth {
	case 8:
		// 8-bit WAV is unsigned
		src.offset = 128
		src.scale = 1.0 / 128.0
	case 16:
		src.scale = 1.0 / 32768.0
	case 24:
		src.scale = 1.0 / 8388608.0
	case 32:
		src.scale = 1.0 / 2147483648.0
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyPCMSupported, dec.BitDepth)
	}

	return src, nil
}

// checkMagic verifies the RIFF/WAVE preamble and rewinds rs.
func checkMagic(rs io.ReadSeeker) error {
	magic := make([]byte, 12)
	if _, err := io.ReadFull(rs, magic); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if !bytes.Equal(magic[:4], []byte("RIFF")) || !bytes.Equal(magic[8:12], []byte("WAVE")) {
		return ErrNotWavFile
	}
	if _, err := rs.Seek(-12, io.SeekCurrent); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}

	return nil
}
