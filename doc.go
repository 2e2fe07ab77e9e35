// SPDX-License-Identifier: EPL-2.0

// Package audshare turns audio files into songs that peers can exchange and
// plays received songs back as one buffer.
//
// # Supported Formats
//
// DefaultRegistry decodes:
//   - WAV (integer PCM, 8 to 32 bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Sending
//
// PrepareSong decodes a file, optionally cuts and converts it, and encodes
// the result as a canonical 16-bit PCM WAV inside a data URL:
//
//	reg := audshare.DefaultRegistry()
//	rec, err := audshare.PrepareSong(reg, "Blue Monday", "audio/mpeg", data, audshare.Options{
//	    Start:  30,
//	    End:    60,
//	    Target: audio.Format{SampleRate: 44100, Channels: 2},
//	})
//
// With Options.Passthrough the original bytes are framed unchanged.
//
// # Receiving
//
// Preview decodes received records and concatenates them. Records are
// converted to the first record's format so that differing sources can be
// played back to back:
//
//	buf, err := audshare.Preview(ctx, reg, records)
//
// Lower-level building blocks live in the audio package (buffers, slicing,
// merging, conversion) and in formats/wav (encoding).
package audshare
