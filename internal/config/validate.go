package config

import (
	"fmt"
	"slices"

	"github.com/dendrascience/treehash/treehash"
	"github.com/dendrascience/treehash/util"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "console", "json"}
)

// Validate ensures the configuration is usable. Every error wraps
// treehash.ErrConfig. String fields are normalized in place first.
func (c *Config) Validate() error {
	c.normalize()
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateDigest(); err != nil {
		return err
	}
	if _, err := treehash.ParseHiddenPolicy(c.Walk.Hidden); err != nil {
		return fmt.Errorf("walk.hidden: %w", err)
	}
	if _, err := treehash.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return c.validateLogging()
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("%w: pipeline.workers must be positive, got %d", treehash.ErrConfig, c.Pipeline.Workers)
	}
	if c.Pipeline.QueueCapacity <= 0 {
		return fmt.Errorf("%w: pipeline.queue_capacity must be positive, got %d", treehash.ErrConfig, c.Pipeline.QueueCapacity)
	}
	return nil
}

func (c *Config) validateDigest() error {
	if _, err := util.NewHash(c.Digest.Algorithm); err != nil {
		return fmt.Errorf("%w: digest.algorithm: %w", treehash.ErrConfig, err)
	}
	if c.Digest.ChunkSize <= 0 {
		return fmt.Errorf("%w: digest.chunk_size must be positive, got %d", treehash.ErrConfig, c.Digest.ChunkSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("%w: logging.level must be one of %v, got %q", treehash.ErrConfig, logLevels, c.Logging.Level)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format must be one of %v, got %q", treehash.ErrConfig, logFormats, c.Logging.Format)
	}
	return nil
}
