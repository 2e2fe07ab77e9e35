// SPDX-License-Identifier: EPL-2.0

// Package config defines the audshare configuration file and its loader.
package config

import (
	"log/slog"
	"time"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// SlogLevel maps l to a slog level; unknown values mean info.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StoreBackend selects where songs are kept.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StoreFile     StoreBackend = "file"
	StorePostgres StoreBackend = "postgres"
)

// Config is the root of the configuration file.
type Config struct {
	LogLevel LogLevel    `yaml:"log_level"`
	Relay    RelayConfig `yaml:"relay"`
	Store    StoreConfig `yaml:"store"`
	Audio    AudioConfig `yaml:"audio"`
}

type RelayConfig struct {
	// URL of the relay websocket endpoint.
	URL string `yaml:"url"`

	// ClientID identifies this peer. A random one is generated when empty.
	ClientID string `yaml:"client_id"`

	// WriteTimeout bounds every message write.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type StoreConfig struct {
	Backend StoreBackend `yaml:"backend"`

	// Path is the JSON-lines file used by the file backend.
	Path string `yaml:"path"`

	// DSN is the PostgreSQL connection string used by the postgres backend.
	DSN string `yaml:"dsn"`
}

// AudioConfig is the format songs are converted to before sending.
// Zero values keep the source's own rate or channel count.
type AudioConfig struct {
	SampleRate    int `yaml:"sample_rate"`
	Channels      int `yaml:"channels"`
	EncodeWorkers int `yaml:"encode_workers"`

	// Passthrough sends the original file bytes instead of a WAV re-encode.
	Passthrough bool `yaml:"passthrough"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Relay: RelayConfig{
			URL:          "ws://localhost:8000/ws",
			WriteTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Backend: StoreFile,
			Path:    "songs.jsonl",
		},
	}
}
