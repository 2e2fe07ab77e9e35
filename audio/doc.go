// SPDX-License-Identifier: EPL-2.0

// Package audio holds decoded PCM audio and the transforms applied to it
// before encoding.
//
// # Buffers
//
// A Buffer is a set of equal-length float32 channels tagged with a sample
// rate. Buffers never change after construction, so they can be shared
// between goroutines without locking:
//
//	buf, err := audio.NewBuffer(44100, [][]float32{left, right})
//
// # Transforms
//
// Slice cuts a time range out of a buffer, Merge concatenates buffers of the
// same Format, and Interleave flattens a buffer frame-major for PCM output:
//
//	intro, err := audio.Slice(buf, 0, 12.5)
//	joined, err := audio.Merge(intro, outro)
//	pcm := audio.Interleave(joined) // L0 R0 L1 R1 ...
//
// Merge refuses inputs whose sample rate or channel count differ from the
// first buffer with a *FormatMismatchError. Conform, Remap and Resample bring
// a buffer to a target Format first when that is what the caller wants.
//
// # Sources and decoders
//
// Decoders in the formats/ packages produce a streaming Source of
// interleaved samples. ReadAll drains a Source into a Buffer:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode("wav", file)
//	buf, err := audio.ReadAll(src)
//
// Decode failures are reported as *DecodeError and no partial buffer is
// returned.
//
// # Sample Format
//
// Samples are float32 nominally in [-1.0, 1.0]. Transforms never clamp;
// out-of-range values are only clipped when quantized by an encoder.
package audio
