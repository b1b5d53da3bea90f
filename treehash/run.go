package treehash

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/treehash/util"
)

const (
	// DefaultWorkers is the size of the hashing pool.
	DefaultWorkers = 8
	// DefaultQueueCapacity bounds how far traversal may run ahead of hashing.
	DefaultQueueCapacity = 10
)

// Options configures a pipeline run.
type Options struct {
	QueueCapacity int
	Workers       int
	ChunkSize     int
	Algorithm     string
	Hidden        HiddenPolicy

	FileSystem FileSystem   // defaults to OSFileSystem
	Sink       Sink         // required by Run
	Logger     *slog.Logger // defaults to a discarding logger
}

// DefaultOptions returns the built-in configuration with no sink.
func DefaultOptions() Options {
	return Options{
		QueueCapacity: DefaultQueueCapacity,
		Workers:       DefaultWorkers,
		ChunkSize:     util.DefaultChunkSize,
		Algorithm:     util.DefaultAlgorithm,
		Hidden:        HiddenInclude,
	}
}

func (o Options) withDefaults() Options {
	if o.FileSystem == nil {
		o.FileSystem = OSFileSystem{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Run hashes every regular file reachable from roots and emits one result
// per file to opts.Sink. It returns once the queue is closed and every
// worker has exited. Per-file and per-entry failures are skipped and only
// counted; the returned error is non-nil only for missing roots (ErrUsage)
// or invalid options (ErrConfig).
func Run(roots []string, opts Options) (*Stats, error) {
	if len(roots) == 0 {
		return nil, ErrUsage
	}
	opts = opts.withDefaults()

	queue, err := NewQueue[string](opts.QueueCapacity)
	if err != nil {
		return nil, err
	}
	stats := NewStats()
	logger := opts.Logger.With("run", stats.RunID)

	pool, err := NewPool(opts.Workers, opts.ChunkSize, opts.Algorithm, queue, opts.FileSystem, opts.Sink, logger, stats)
	if err != nil {
		return nil, err
	}
	producer := NewProducer(opts.FileSystem, queue, opts.Hidden, logger, stats)

	logger.Info("starting run",
		"roots", len(roots),
		"workers", opts.Workers,
		"queue_capacity", opts.QueueCapacity,
		"algorithm", opts.Algorithm,
		"hidden", opts.Hidden.String())

	// Workers are running before the first path is enqueued.
	pool.Start()

	var g errgroup.Group
	g.Go(func() error {
		return producer.Run(roots)
	})
	g.Go(func() error {
		pool.Wait()
		return nil
	})
	err = g.Wait()
	stats.Elapsed = time.Since(stats.Started)

	summary := stats.Summary()
	logger.Info("run complete",
		"files", summary.Files,
		"bytes", summary.Bytes,
		"skipped", summary.Skipped(),
		"elapsed", summary.Elapsed)

	if err != nil {
		return stats, fmt.Errorf("run %s: %w", stats.RunID, err)
	}
	return stats, nil
}

// Count walks roots exactly as Run does but only counts the regular files
// it would hash.
func Count(roots []string, opts Options) (*Stats, error) {
	if len(roots) == 0 {
		return nil, ErrUsage
	}
	opts = opts.withDefaults()

	queue, err := NewQueue[string](opts.QueueCapacity)
	if err != nil {
		return nil, err
	}
	stats := NewStats()
	producer := NewProducer(opts.FileSystem, queue, opts.Hidden, opts.Logger.With("run", stats.RunID), stats)

	var g errgroup.Group
	g.Go(func() error {
		return producer.Run(roots)
	})
	g.Go(func() error {
		for {
			if _, ok := queue.Get(); !ok {
				return nil
			}
			stats.Files.Add(1)
		}
	})
	err = g.Wait()
	stats.Elapsed = time.Since(stats.Started)
	return stats, err
}
