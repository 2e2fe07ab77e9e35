// SPDX-License-Identifier: EPL-2.0

// Command audshare encodes audio files into shareable songs and exchanges
// them with other peers through a relay server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audshare/internal/config"
)

const usage = `usage: audshare [-config file] <command> [flags]

commands:
  encode   re-encode audio files as 16-bit PCM WAV
  send     send a song to other peers
  search   search other peers' libraries
  listen   stay connected, store received songs and answer searches
  preview  join stored songs into one WAV file
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("audshare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "audshare: %v\n", err)
			return 1
		}
	}

	logger := newLogger(cfg.LogLevel, stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	app := &app{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}

	var err error
	switch cmd {
	case "encode":
		err = app.encode(ctx, cmdArgs)
	case "send":
		err = app.send(ctx, cmdArgs)
	case "search":
		err = app.search(ctx, cmdArgs)
	case "listen":
		err = app.listen(ctx, cmdArgs)
	case "preview":
		err = app.preview(ctx, cmdArgs)
	default:
		fmt.Fprintf(stderr, "audshare: unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		logger.Error("command failed", "command", cmd, "err", err)
		return 1
	}
}

func newLogger(level config.LogLevel, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()}))
}
