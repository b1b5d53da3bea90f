package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dendrascience/treehash/treehash"
)

// WorkersEnv overrides Pipeline.Workers when set to a positive integer.
const WorkersEnv = "TREEHASH_WORKERS"

// Pipeline sizes the producer/consumer pipeline.
type Pipeline struct {
	Workers       int `toml:"workers"`
	QueueCapacity int `toml:"queue_capacity"`
}

// Digest selects the content hash.
type Digest struct {
	Algorithm string `toml:"algorithm"`
	ChunkSize int    `toml:"chunk_size"`
}

// Walk controls traversal.
type Walk struct {
	Hidden string `toml:"hidden"` // include or skip
}

// Output controls how results are written.
type Output struct {
	Format string `toml:"format"` // text, json or cas
	Stats  bool   `toml:"stats"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console, json or auto
}

// Config is the full treehash configuration.
type Config struct {
	Pipeline Pipeline `toml:"pipeline"`
	Digest   Digest   `toml:"digest"`
	Walk     Walk     `toml:"walk"`
	Output   Output   `toml:"output"`
	Logging  Logging  `toml:"logging"`
}

// Load returns the defaults overlaid with the file at path and the
// environment. An empty path means no file; a named file that does not
// exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("%w: %s: %s", treehash.ErrConfig, path, strict.String())
			}
			return nil, fmt.Errorf("%w: parse %s: %w", treehash.ErrConfig, path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	override := strings.TrimSpace(os.Getenv(WorkersEnv))
	if override == "" {
		return nil
	}
	n, err := strconv.Atoi(override)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer, got %q", treehash.ErrConfig, WorkersEnv, override)
	}
	c.Pipeline.Workers = n
	return nil
}

func (c *Config) normalize() {
	c.Digest.Algorithm = strings.ToLower(strings.TrimSpace(c.Digest.Algorithm))
	c.Walk.Hidden = strings.ToLower(strings.TrimSpace(c.Walk.Hidden))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Marshal renders the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// RunOptions translates the configuration into pipeline options. Sink,
// FileSystem and Logger are left for the caller.
func (c Config) RunOptions() (treehash.Options, error) {
	hidden, err := treehash.ParseHiddenPolicy(c.Walk.Hidden)
	if err != nil {
		return treehash.Options{}, err
	}
	return treehash.Options{
		QueueCapacity: c.Pipeline.QueueCapacity,
		Workers:       c.Pipeline.Workers,
		ChunkSize:     c.Digest.ChunkSize,
		Algorithm:     c.Digest.Algorithm,
		Hidden:        hidden,
	}, nil
}

// OutputFormat returns the parsed result format.
func (c Config) OutputFormat() (treehash.Format, error) {
	return treehash.ParseFormat(c.Output.Format)
}
