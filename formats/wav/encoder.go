// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audshare/audio"
	"github.com/ik5/audshare/utils"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE/PCM header.
	HeaderSize = 44

	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8

	// chunkSamples is how many samples the streaming writers convert per Write.
	chunkSamples = 8192
)

// Header builds the 44-byte header for dataLen bytes of 16-bit PCM.
// ChunkSize is written as 36 + dataLen.
func Header(sampleRate, channels int, dataLen uint32) []byte {
	header := make([]byte, HeaderSize)
	putHeader(header, sampleRate, channels, dataLen)

	return header
}

func putHeader(header []byte, sampleRate, channels int, dataLen uint32) {
	blockAlign := uint16(channels * bytesPerSample)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataLen)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataLen)
}

// dataLen validates the shape and returns the data chunk size in bytes.
func dataLen(sampleRate, channels, samples int) (uint32, error) {
	f := audio.Format{SampleRate: sampleRate, Channels: channels}
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if channels > math.MaxUint16/bytesPerSample || uint64(sampleRate)*uint64(channels*bytesPerSample) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s", ErrTooLarge, f)
	}
	if samples%channels != 0 {
		return 0, fmt.Errorf("%w: %d samples for %d channels", ErrPartialFrame, samples, channels)
	}

	size := uint64(samples) * bytesPerSample
	if size > math.MaxUint32-36 {
		return 0, fmt.Errorf("%w: %d bytes of PCM", ErrTooLarge, size)
	}

	return uint32(size), nil
}

// Encode serializes buf as a canonical 16-bit PCM WAV file.
// The result is frameCount*channels*2 + 44 bytes long, and encoding the same
// buffer twice yields identical bytes.
func Encode(buf *audio.Buffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	return EncodeInterleaved(audio.Interleave(buf), buf.SampleRate(), buf.Channels())
}

// EncodeInterleaved is Encode for samples that are already frame-major.
func EncodeInterleaved(samples []float32, sampleRate, channels int) ([]byte, error) {
	size, err := dataLen(sampleRate, channels, len(samples))
	if err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+int(size))
	putHeader(out, sampleRate, channels, size)
	quantize(out[HeaderSize:], samples)

	return out, nil
}

// quantize writes samples as little-endian int16 into dst.
func quantize(dst []byte, samples []float32) {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(utils.Float32ToInt16(s)))
	}
}

// WriteBuffer streams buf to w as a WAV file without materializing the whole
// byte stream. Output is identical to Encode.
func WriteBuffer(w io.Writer, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	channels := buf.Channels()
	size, err := dataLen(buf.SampleRate(), channels, buf.Len()*channels)
	if err != nil {
		return err
	}

	if _, err := w.Write(Header(buf.SampleRate(), channels, size)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	framesPerChunk := max(chunkSamples/channels, 1)
	chunk := make([]byte, framesPerChunk*channels*bytesPerSample)

	for start := 0; start < buf.Len(); start += framesPerChunk {
		end := min(start+framesPerChunk, buf.Len())
		off := 0
		for i := start; i < end; i++ {
			for c := range channels {
				binary.LittleEndian.PutUint16(chunk[off:], uint16(utils.Float32ToInt16(buf.At(c, i))))
				off += bytesPerSample
			}
		}

		if _, err := w.Write(chunk[:off]); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	return nil
}

// WritePCM16 writes already-quantized interleaved int16 samples as a WAV file.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	size, err := dataLen(sampleRate, channels, len(samples))
	if err != nil {
		return err
	}

	if _, err := w.Write(Header(sampleRate, channels, size)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSamples)*bytesPerSample)
	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:len(chunk)*bytesPerSample]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	return nil
}
