// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromReader_Full(t *testing.T) {
	t.Parallel()

	const yamlDoc = `
log_level: debug
relay:
  url: wss://relay.example.com/ws
  client_id: peer-7
  write_timeout: 3s
store:
  backend: postgres
  dsn: postgres://localhost/songs
audio:
  sample_rate: 22050
  channels: 1
  encode_workers: 4
  passthrough: true
`
	cfg, err := LoadFromReader(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if cfg.LogLevel != LogDebug || cfg.Relay.ClientID != "peer-7" || cfg.Relay.WriteTimeout != 3*time.Second {
		t.Errorf("relay/log = %+v %q", cfg.Relay, cfg.LogLevel)
	}
	if cfg.Store.Backend != StorePostgres || cfg.Store.DSN != "postgres://localhost/songs" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Audio != (AudioConfig{SampleRate: 22050, Channels: 1, EncodeWorkers: 4, Passthrough: true}) {
		t.Errorf("audio = %+v", cfg.Audio)
	}
}

func TestLoadFromReader_DefaultsKept(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"empty":   "",
		"partial": "audio:\n  channels: 2\n",
	} {
		cfg, err := LoadFromReader(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("%s: error = %v", name, err)
		}
		def := Default()
		if cfg.Relay != def.Relay || cfg.Store != def.Store || cfg.LogLevel != def.LogLevel {
			t.Errorf("%s: defaults lost: %+v", name, cfg)
		}
	}
}

func TestLoadFromReader_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr []string
	}{
		{"unknown key", "colour: blue\n", []string{"colour"}},
		{"bad level", "log_level: loud\n", []string{"log_level"}},
		{"bad url", "relay:\n  url: http://x\n", []string{"ws or wss"}},
		{"bad backend", "store:\n  backend: redis\n", []string{"store.backend"}},
		{"missing dsn", "store:\n  backend: postgres\n", []string{"store.dsn"}},
		{"missing path", "store:\n  backend: file\n  path: \"\"\n", []string{"store.path"}},
		{
			"several",
			"log_level: loud\naudio:\n  sample_rate: -1\n  channels: -2\n",
			[]string{"log_level", "audio.sample_rate", "audio.channels"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadFromReader(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audshare.yaml")
	if err := os.WriteFile(path, []byte("store:\n  backend: memory\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != StoreMemory {
		t.Errorf("backend = %q", cfg.Store.Backend)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) returned nil error")
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	t.Parallel()

	if LogDebug.SlogLevel().String() != "DEBUG" || LogLevel("").SlogLevel().String() != "INFO" {
		t.Error("SlogLevel mapping is wrong")
	}
}
