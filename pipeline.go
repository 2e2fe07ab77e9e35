// SPDX-License-Identifier: EPL-2.0

package audshare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ik5/audshare/audio"
	"github.com/ik5/audshare/dataurl"
	"github.com/ik5/audshare/formats/aiff"
	"github.com/ik5/audshare/formats/mp3"
	"github.com/ik5/audshare/formats/vorbis"
	"github.com/ik5/audshare/formats/wav"
	"github.com/ik5/audshare/song"
	"golang.org/x/sync/errgroup"
)

// WAVType is the media type of every re-encoded song.
const WAVType = "audio/wav"

var ErrEmptyName = errors.New("song name is empty")

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// DecodeBuffer decodes r as format and reads it fully. Any failure,
// including one in the middle of the stream, is a *audio.DecodeError and no
// buffer is returned.
func DecodeBuffer(reg *audio.Registry, format string, r io.Reader) (*audio.Buffer, error) {
	src, err := reg.Decode(format, r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, &audio.DecodeError{Format: format, Err: err}
	}

	return buf, nil
}

// Options controls how a decoded song is turned into a WAV payload.
type Options struct {
	// Start and End select a time range in seconds. End == 0 means the end
	// of the song.
	Start, End float64

	// Target is the format to convert to; zero fields keep the source's.
	Target audio.Format

	// Passthrough skips decoding and sends the original bytes as they are.
	Passthrough bool
}

func (o Options) trimmed() bool { return o.Start != 0 || o.End != 0 }

// Apply cuts and converts buf as o describes.
func (o Options) Apply(buf *audio.Buffer) (*audio.Buffer, error) {
	if o.trimmed() {
		end := o.End
		if end == 0 {
			end = buf.Seconds()
		}

		var err error
		if buf, err = audio.Slice(buf, o.Start, end); err != nil {
			return nil, err
		}
	}

	return audio.Conform(buf, o.Target)
}

// EncodeSong applies o to buf and encodes the result as WAV.
func EncodeSong(buf *audio.Buffer, o Options) ([]byte, error) {
	out, err := o.Apply(buf)
	if err != nil {
		return nil, err
	}

	return wav.Encode(out)
}

// EncodeBatch is EncodeSong for many buffers, spread over workers
// goroutines. out[i] belongs to bufs[i].
func EncodeBatch(ctx context.Context, bufs []*audio.Buffer, o Options, workers int) ([][]byte, error) {
	prepared := make([]*audio.Buffer, len(bufs))
	for i, buf := range bufs {
		out, err := o.Apply(buf)
		if err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
		prepared[i] = out
	}

	return wav.EncodeAll(ctx, prepared, workers)
}

// PrepareSong builds the record sent to other peers from a file's bytes.
// The name is trimmed and must not be empty. Unless o.Passthrough is set,
// the file is decoded according to mediaType and re-encoded as WAV.
func PrepareSong(reg *audio.Registry, name, mediaType string, data []byte, o Options) (song.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return song.Record{}, ErrEmptyName
	}

	if o.Passthrough {
		return song.Record{
			FileName: name,
			FileType: mediaType,
			DataURL:  dataurl.Encode(mediaType, data),
		}, nil
	}

	format, ok := audio.FormatForMIME(mediaType)
	if !ok {
		return song.Record{}, &audio.DecodeError{Format: mediaType, Err: audio.ErrUnknownFormat}
	}

	buf, err := DecodeBuffer(reg, format, bytes.NewReader(data))
	if err != nil {
		return song.Record{}, err
	}

	encoded, err := EncodeSong(buf, o)
	if err != nil {
		return song.Record{}, fmt.Errorf("encode %q: %w", name, err)
	}

	return song.Record{
		FileName: name,
		FileType: WAVType,
		DataURL:  dataurl.Encode(WAVType, encoded),
	}, nil
}

// DecodeRecord decodes the audio embedded in r. The data URL's own media
// type wins over r.FileType when both are known.
func DecodeRecord(reg *audio.Registry, r song.Record) (*audio.Buffer, error) {
	mediaType, data, err := dataurl.Decode(r.DataURL)
	if err != nil {
		return nil, &audio.DecodeError{Format: r.FileType, Err: err}
	}

	format, ok := audio.FormatForMIME(mediaType)
	if !ok {
		if format, ok = audio.FormatForMIME(r.FileType); !ok {
			return nil, &audio.DecodeError{Format: mediaType, Err: audio.ErrUnknownFormat}
		}
	}

	return DecodeBuffer(reg, format, bytes.NewReader(data))
}

// Preview decodes records concurrently and joins them into one buffer in
// the given order, converted to the format of the first record.
func Preview(ctx context.Context, reg *audio.Registry, records []song.Record) (*audio.Buffer, error) {
	if len(records) == 0 {
		return nil, audio.ErrEmptyMerge
	}

	bufs := make([]*audio.Buffer, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, r := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			buf, err := DecodeRecord(reg, r)
			if err != nil {
				return fmt.Errorf("record %q: %w", r.FileName, err)
			}
			bufs[i] = buf

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	target := bufs[0].Format()
	for i, buf := range bufs[1:] {
		conformed, err := audio.Conform(buf, target)
		if err != nil {
			return nil, err
		}
		bufs[i+1] = conformed
	}

	return audio.Merge(bufs...)
}
