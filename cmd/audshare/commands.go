// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audshare"
	"github.com/ik5/audshare/audio"
	"github.com/ik5/audshare/formats/wav"
	"github.com/ik5/audshare/internal/config"
	"github.com/ik5/audshare/relay"
	"github.com/ik5/audshare/song"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errUsage     = errors.New("bad usage")
	errNameClash = errors.New("output name clash")
)

// mediaTypes is the media type announced for each registry key.
var mediaTypes = map[string]string{
	"wav":  "audio/wav",
	"mp3":  "audio/mpeg",
	"ogg":  "audio/ogg",
	"aiff": "audio/aiff",
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// options returns song options from the config, overridable by flags.
func (a *app) options(fs *flag.FlagSet) *audshare.Options {
	o := &audshare.Options{
		Target: audio.Format{
			SampleRate: a.cfg.Audio.SampleRate,
			Channels:   a.cfg.Audio.Channels,
		},
		Passthrough: a.cfg.Audio.Passthrough,
	}
	fs.Float64Var(&o.Start, "start", 0, "start of the range to keep, in seconds")
	fs.Float64Var(&o.End, "end", 0, "end of the range to keep, in seconds (0 = end of file)")
	fs.IntVar(&o.Target.SampleRate, "rate", o.Target.SampleRate, "output sample rate (0 = keep)")
	fs.IntVar(&o.Target.Channels, "channels", o.Target.Channels, "output channel count (0 = keep)")

	return o
}

func (a *app) encode(ctx context.Context, args []string) error {
	fs := a.flags("encode")
	out := fs.String("out", "", "output file, or directory when several inputs are given")
	workers := fs.Int("workers", a.cfg.Audio.EncodeWorkers, "parallel encoders (0 = one per CPU)")
	opts := a.options(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 || *out == "" {
		fmt.Fprintln(a.stderr, "usage: audshare encode -out <file|dir> [-start s] [-end s] [-rate hz] [-channels n] <input>...")
		return errUsage
	}

	var names []string
	if fs.NArg() > 1 {
		var err error
		if names, err = outputNames(fs.Args()); err != nil {
			return err
		}
	}

	reg := audshare.DefaultRegistry()
	bufs := make([]*audio.Buffer, 0, fs.NArg())
	for _, path := range fs.Args() {
		buf, err := decodeFile(reg, path)
		if err != nil {
			return err
		}
		bufs = append(bufs, buf)
	}

	if len(bufs) == 1 {
		buf, err := opts.Apply(bufs[0])
		if err != nil {
			return err
		}
		return writeWAV(*out, buf)
	}

	encoded, err := audshare.EncodeBatch(ctx, bufs, *opts, *workers)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}
	for i, path := range fs.Args() {
		if err := os.WriteFile(filepath.Join(*out, names[i]), encoded[i], 0o644); err != nil {
			return err
		}
		a.logger.Info("encoded", "in", path, "bytes", len(encoded[i]))
	}

	return nil
}

// outputNames maps each input to "<base>.wav" and refuses inputs that would
// land on the same output file.
func outputNames(paths []string) ([]string, error) {
	names := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".wav"
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", errNameClash, prev, path, name)
		}
		seen[name] = path
		names[i] = name
	}

	return names, nil
}

func (a *app) send(ctx context.Context, args []string) error {
	fs := a.flags("send")
	in := fs.String("in", "", "audio file to send")
	name := fs.String("name", "", "song name shown to other peers (default: file name)")
	passthrough := fs.Bool("raw", a.cfg.Audio.Passthrough, "send the original bytes instead of WAV")
	opts := a.options(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fmt.Fprintln(a.stderr, "usage: audshare send -in <file> [-name n] [-raw] [-start s] [-end s]")
		return errUsage
	}
	opts.Passthrough = *passthrough
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
	}

	format, ok := audio.FormatForPath(*in)
	if !ok {
		return fmt.Errorf("%s: %w", *in, audio.ErrUnknownFormat)
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}

	rec, err := audshare.PrepareSong(audshare.DefaultRegistry(), *name, mediaTypes[format], data, *opts)
	if err != nil {
		return err
	}

	client, err := a.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := relay.NewPeer(song.NewMemStore(), client, a.logger).SendSong(rec); err != nil {
		return err
	}
	a.logger.Info("song sent", "name", rec.FileName, "type", rec.FileType, "bytes", len(rec.DataURL))

	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := a.flags("search")
	term := fs.String("term", "", "text to look for in song names")
	wait := fs.Duration("wait", 5*time.Second, "how long to wait for results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, *wait)
	defer cancel()

	peer := relay.NewPeer(song.NewMemStore(), client, a.logger)
	peer.OnResults = func(found []song.Record) {
		if len(found) == 0 {
			fmt.Fprintln(a.stdout, "No songs found.")
		}
		for _, r := range found {
			fmt.Fprintf(a.stdout, "%s\t%s\n", r.FileName, r.FileType)
		}
		cancel()
	}

	sent, err := peer.Search(*term)
	if err != nil {
		return err
	}
	if !sent {
		fmt.Fprintln(a.stderr, "usage: audshare search -term <text>")
		return errUsage
	}

	err = client.Run(ctx, peer.Handle)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *app) listen(ctx context.Context, args []string) error {
	fs := a.flags("listen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, a.cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := a.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	peer := relay.NewPeer(store, client, a.logger)
	peer.OnReceive = func(in relay.ReceiveSong) {
		fmt.Fprintf(a.stdout, "received %q from %s\n", in.SongData.FileName, in.SenderID)
	}

	a.logger.Info("listening", "relay", a.cfg.Relay.URL, "id", client.ID(), "store", a.cfg.Store.Backend)
	err = client.Run(ctx, peer.Handle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) preview(ctx context.Context, args []string) error {
	fs := a.flags("preview")
	out := fs.String("out", "", "output WAV file")
	name := fs.String("name", "", "only songs with exactly this name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		fmt.Fprintln(a.stderr, "usage: audshare preview -out <file.wav> [-name n]")
		return errUsage
	}

	store, closeStore, err := openStore(ctx, a.cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	var records []song.Record
	if *name != "" {
		records, err = store.ByName(ctx, *name)
	} else {
		records, err = store.All(ctx)
	}
	if err != nil {
		return err
	}

	buf, err := audshare.Preview(ctx, audshare.DefaultRegistry(), records)
	if err != nil {
		return err
	}
	a.logger.Info("preview", "songs", len(records), "format", buf.Format().String(), "duration", buf.Duration())

	return writeWAV(*out, buf)
}

func (a *app) dial(ctx context.Context) (*relay.Client, error) {
	id := a.cfg.Relay.ClientID
	if id == "" {
		id = relay.NewClientID()
	}

	return relay.Dial(ctx, a.cfg.Relay.URL, id,
		relay.WithWriteTimeout(a.cfg.Relay.WriteTimeout),
		relay.WithLogger(a.logger),
	)
}

func decodeFile(reg *audio.Registry, path string) (*audio.Buffer, error) {
	format, ok := audio.FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, audio.ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := audshare.DecodeBuffer(reg, format, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return buf, nil
}

func writeWAV(path string, buf *audio.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return wav.WriteBuffer(f, buf)
}

// openStore builds the configured song store and a function releasing it.
func openStore(ctx context.Context, cfg config.StoreConfig) (song.Store, func(), error) {
	switch cfg.Backend {
	case config.StoreFile:
		return song.NewFileStore(cfg.Path), func() {}, nil
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, &song.PersistenceError{Op: "connect", Err: err}
		}
		store := song.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return song.NewMemStore(), func() {}, nil
	}
}
