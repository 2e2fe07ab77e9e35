// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// # Decoding
//
// Decoder turns an MP3 stream into an audio.Source:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if errors.Is(err, mp3.ErrNotMP3) {
//	    // not an MP3 stream
//	}
//	buf, err := audio.ReadAll(src)
//
// Streams that go-mp3 cannot open, including empty input, fail with
// ErrNotMP3 wrapping the library's own error.
//
// # Output Format
//
//   - Sample format: float32 in [-1, 1)
//   - Channels: always 2; mono files come out with both channels equal
//   - Sample rate: whatever the stream declares, usually 44100 or 48000 Hz
//
// go-mp3 renders 16-bit little-endian bytes. A read can end halfway through
// a sample; the odd byte is carried into the next ReadSamples call, so no
// sample is ever split or lost.
//
// To change the rate or the channel count, decode the whole song and use
// audio.Conform:
//
//	buf, _ := audio.ReadAll(src)
//	mono, _ := audio.Conform(buf, audio.Format{SampleRate: 16000, Channels: 1})
//
// # Limitations
//
//   - Decoding only; songs are shared as WAV (see package wav)
//   - No ID3 metadata is exposed
package mp3
