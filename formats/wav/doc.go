// SPDX-License-Identifier: EPL-2.0

// Package wav encodes audio buffers into canonical 16-bit PCM WAV files and
// decodes integer PCM WAV input.
//
// # Encoding
//
// Encode turns an audio.Buffer into a complete, self-describing WAV byte
// stream with the fixed 44-byte header:
//
//	data, err := wav.Encode(buf)
//
// Samples are interleaved frame by frame in ascending channel order and
// quantized to int16 after clamping to [-1, 1]; negative values scale by
// 32768 and positive values by 32767. There is no dithering, so encoding is
// deterministic.
//
// WriteBuffer produces the same bytes as Encode but streams them to an
// io.Writer in fixed-size chunks, and WritePCM16 writes samples that are
// already int16. EncodeAll encodes many buffers on a bounded worker pool.
//
// # Header
//
// The RIFF ChunkSize field is always 36 + data length, and the data chunk
// size is frames * channels * 2. A file is never patched after writing, so
// io.Writer is enough; no seeking is required.
//
// # Decoding
//
// Decoder reads 8, 16, 24 and 32 bit integer PCM through go-audio/wav and
// yields an audio.Source with float32 samples in [-1, 1]:
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// Inputs that are not RIFF/WAVE fail with ErrNotWavFile, and compressed or
// floating point formats fail with ErrOnlyPCMSupported.
package wav
