// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default] and validates the
// result. Unknown keys are rejected. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Relay.URL != "" {
		u, err := url.Parse(cfg.Relay.URL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("relay.url: %w", err))
		case u.Scheme != "ws" && u.Scheme != "wss":
			errs = append(errs, fmt.Errorf("relay.url %q must use ws or wss", cfg.Relay.URL))
		}
	}
	if cfg.Relay.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("relay.write_timeout must not be negative"))
	}

	switch cfg.Store.Backend {
	case StoreMemory, "":
	case StoreFile:
		if cfg.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the file backend"))
		}
	case StorePostgres:
		if cfg.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend %q is invalid; valid values: memory, file, postgres", cfg.Store.Backend))
	}

	if cfg.Audio.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must not be negative, got %d", cfg.Audio.SampleRate))
	}
	if cfg.Audio.Channels < 0 {
		errs = append(errs, fmt.Errorf("audio.channels must not be negative, got %d", cfg.Audio.Channels))
	}
	if cfg.Audio.EncodeWorkers < 0 {
		errs = append(errs, fmt.Errorf("audio.encode_workers must not be negative, got %d", cfg.Audio.EncodeWorkers))
	}

	return errors.Join(errs...)
}
