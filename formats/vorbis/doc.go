// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// # Decoding
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if errors.Is(err, vorbis.ErrNotVorbis) {
//	    // not an Ogg Vorbis stream
//	}
//	buf, err := audio.ReadAll(src)
//
// # Output Format
//
// Vorbis decodes natively to float32, so samples pass through untouched
// and keep the stream's own channel count and sample rate. ReadSamples only
// ever asks the library for whole frames: a dst whose length is not a
// multiple of the channel count is shortened, and a dst shorter than one
// frame reads nothing.
//
// # Limitations
//
//   - Decoding only
package vorbis
