// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes big-endian integer PCM AIFF files with
// github.com/go-audio/aiff.
//
// # Decoding
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//	buf, err := audio.ReadAll(src)
//
// go-audio needs to seek, so input that is not an io.ReadSeeker is read
// into memory first.
//
// # Output Format
//
// 8, 16, 24 and 32 bit samples are supported and normalized to float32 in
// [-1, 1) by dividing by 2^(bits-1). Channel count and sample rate are taken
// from the COMM chunk.
//
// # Errors
//
//   - ErrNotAiffFile: the FORM/AIFF signature is missing
//   - ErrUnsupportedAiffLayout: no COMM chunk or zero channels
//   - ErrUnsupportedBitDepth: any other sample size
package aiff
