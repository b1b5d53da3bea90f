package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dendrascience/treehash/internal/config"
	"github.com/dendrascience/treehash/internal/logging"
	"github.com/dendrascience/treehash/treehash"
)

// pipelineFlags are shared by every command that runs the pipeline. Values
// only override the loaded configuration when the flag was set.
type pipelineFlags struct {
	configPath string
	workers    int
	queueSize  int
	algorithm  string
	chunkSize  int
	hidden     string
	format     string
	stats      bool
	logLevel   string
	logFormat  string
}

func (f *pipelineFlags) bind(cmd *cobra.Command, withOutput bool) {
	defaults := config.Default()
	flags := cmd.Flags()

	flags.StringVar(&f.configPath, "config", "", "Path to a TOML configuration file")
	flags.IntVarP(&f.workers, "workers", "w", defaults.Pipeline.Workers, "Number of hashing workers")
	flags.IntVarP(&f.queueSize, "queue-size", "q", defaults.Pipeline.QueueCapacity, "Maximum number of paths waiting to be hashed")
	flags.StringVarP(&f.algorithm, "algorithm", "a", defaults.Digest.Algorithm, "Digest algorithm (blake3, md5, sha1, sha256, xxh64)")
	flags.IntVar(&f.chunkSize, "chunk-size", defaults.Digest.ChunkSize, "Bytes read per digest update")
	flags.StringVar(&f.hidden, "hidden", defaults.Walk.Hidden, "Dot-prefixed entries: include or skip")
	flags.StringVar(&f.logLevel, "log-level", defaults.Logging.Level, "Log level (debug, info, warn, error)")
	flags.StringVar(&f.logFormat, "log-format", defaults.Logging.Format, "Log format (auto, console, json)")
	if withOutput {
		flags.StringVarP(&f.format, "format", "f", defaults.Output.Format, "Result format (text, json, cas)")
		flags.BoolVar(&f.stats, "stats", defaults.Output.Stats, "Print a run summary to stderr")
	}
}

// resolve loads the configuration file and overlays every flag the user
// set explicitly.
func (f *pipelineFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = f.workers
	}
	if flags.Changed("queue-size") {
		cfg.Pipeline.QueueCapacity = f.queueSize
	}
	if flags.Changed("algorithm") {
		cfg.Digest.Algorithm = f.algorithm
	}
	if flags.Changed("chunk-size") {
		cfg.Digest.ChunkSize = f.chunkSize
	}
	if flags.Changed("hidden") {
		cfg.Walk.Hidden = f.hidden
	}
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("stats") {
		cfg.Output.Stats = f.stats
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: w,
	})
}

// runOptions builds pipeline options with a logger writing to the command's
// stderr.
func runOptions(cmd *cobra.Command, cfg *config.Config) (treehash.Options, error) {
	opts, err := cfg.RunOptions()
	if err != nil {
		return opts, err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return opts, fmt.Errorf("%w: %w", treehash.ErrConfig, err)
	}
	opts.Logger = logger
	return opts, nil
}

func requirePaths(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return treehash.ErrUsage
}
