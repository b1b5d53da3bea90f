package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/dendrascience/treehash/internal/config"
	"github.com/dendrascience/treehash/treehash"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treehash.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Pipeline.Workers != 8 || cfg.Pipeline.QueueCapacity != 10 {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg.Pipeline)
	}
	if cfg.Digest.Algorithm != "md5" || cfg.Digest.ChunkSize != 4096 {
		t.Fatalf("unexpected digest defaults: %+v", cfg.Digest)
	}
	if cfg.Walk.Hidden != "include" {
		t.Fatalf("expected hidden entries included by default, got %q", cfg.Walk.Hidden)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected warn log level by default, got %q", cfg.Logging.Level)
	}
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	t.Setenv(config.WorkersEnv, "")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != config.Default() {
		t.Fatalf("Load(\"\") = %+v, want defaults", *cfg)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	t.Setenv(config.WorkersEnv, "")
	path := writeConfig(t, `
[pipeline]
workers = 3

[digest]
algorithm = "SHA256"

[walk]
hidden = "skip"

[output]
format = "json"
stats = true
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Pipeline.Workers != 3 {
		t.Fatalf("workers = %d, want 3", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.QueueCapacity != config.Default().Pipeline.QueueCapacity {
		t.Fatalf("queue capacity should keep its default, got %d", cfg.Pipeline.QueueCapacity)
	}
	if cfg.Digest.Algorithm != "sha256" {
		t.Fatalf("algorithm = %q, want normalized sha256", cfg.Digest.Algorithm)
	}
	if !cfg.Output.Stats || cfg.Output.Format != "json" {
		t.Fatalf("unexpected output section: %+v", cfg.Output)
	}

	opts, err := cfg.RunOptions()
	if err != nil {
		t.Fatalf("RunOptions returned error: %v", err)
	}
	if opts.Hidden != treehash.HiddenSkip || opts.Workers != 3 || opts.Algorithm != "sha256" {
		t.Fatalf("unexpected run options: %+v", opts)
	}
	if format, err := cfg.OutputFormat(); err != nil || format != treehash.FormatJSON {
		t.Fatalf("OutputFormat() = %v, %v", format, err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv(config.WorkersEnv, "5")
	path := writeConfig(t, "[pipeline]\nworkers = 3\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Pipeline.Workers != 5 {
		t.Fatalf("workers = %d, want env override 5", cfg.Pipeline.Workers)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     string
		wantCfg bool
	}{
		{name: "zero workers", body: "[pipeline]\nworkers = 0\n", wantCfg: true},
		{name: "zero capacity", body: "[pipeline]\nqueue_capacity = 0\n", wantCfg: true},
		{name: "negative chunk", body: "[digest]\nchunk_size = -1\n", wantCfg: true},
		{name: "unknown algorithm", body: "[digest]\nalgorithm = \"crc32\"\n", wantCfg: true},
		{name: "bad hidden policy", body: "[walk]\nhidden = \"sometimes\"\n", wantCfg: true},
		{name: "bad format", body: "[output]\nformat = \"xml\"\n", wantCfg: true},
		{name: "bad log level", body: "[logging]\nlevel = \"loud\"\n", wantCfg: true},
		{name: "unknown key", body: "[pipeline]\nthreads = 4\n", wantCfg: true},
		{name: "malformed toml", body: "[pipeline\n", wantCfg: true},
		{name: "bad env", body: "", env: "many", wantCfg: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.WorkersEnv, tt.env)
			_, err := config.Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantCfg && !errors.Is(err, treehash.ErrConfig) {
				t.Fatalf("error %v does not wrap ErrConfig", err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want not-exist", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Walk.Hidden = "skip"

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	for _, key := range []string{"[pipeline]", "queue_capacity = 10", "hidden = ", "skip"} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("marshalled config missing %q:\n%s", key, data)
		}
	}

	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if decoded != cfg {
		t.Fatalf("round trip = %+v, want %+v", decoded, cfg)
	}
}
