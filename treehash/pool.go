package treehash

import (
	"fmt"
	"hash"
	"log/slog"
	"sync"

	"github.com/dendrascience/treehash/util"
)

// Pool is a fixed set of workers that drain a queue of paths, hash each
// file and hand the result to a sink.
type Pool struct {
	workers   int
	chunkSize int
	algorithm string

	queue  *Queue[string]
	fs     FileSystem
	sink   Sink
	logger *slog.Logger
	stats  *Stats

	wg sync.WaitGroup
}

// NewPool validates the worker configuration. stats may be nil.
func NewPool(workers, chunkSize int, algorithm string, queue *Queue[string], fsys FileSystem, sink Sink, logger *slog.Logger, stats *Stats) (*Pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d", ErrConfig, workers)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfig, chunkSize)
	}
	if _, err := util.NewHash(algorithm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if sink == nil {
		return nil, fmt.Errorf("%w: no result sink", ErrConfig)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Pool{
		workers:   workers,
		chunkSize: chunkSize,
		algorithm: algorithm,
		queue:     queue,
		fs:        fsys,
		sink:      sink,
		logger:    logger,
		stats:     stats,
	}, nil
}

// Start launches the workers and returns immediately.
func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for i := range p.workers {
		go p.worker(i)
	}
}

// Wait blocks until every worker has seen the queue closed and drained.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	// NewPool already validated the algorithm name.
	h, _ := util.NewHash(p.algorithm)
	buf := make([]byte, p.chunkSize)

	p.logger.Debug("worker started", "worker", id)
	for {
		path, ok := p.queue.Get()
		if !ok {
			p.logger.Debug("worker finished", "worker", id)
			return
		}
		p.hashFile(path, h, buf)
	}
}

func (p *Pool) hashFile(path string, h hash.Hash, buf []byte) {
	f, err := p.fs.Open(path)
	if err != nil {
		p.skip(path, err)
		return
	}
	defer f.Close()

	sum, n, err := util.GetHash(f, h, buf)
	if err != nil {
		p.skip(path, err)
		return
	}

	if err := p.sink.Emit(Result{Path: path, Digest: sum, Size: n}); err != nil {
		if p.stats.EmitErrors.Add(1) == 1 {
			p.logger.Error("failed to write result", "path", path, "error", err)
		}
		return
	}
	p.stats.Files.Add(1)
	p.stats.Bytes.Add(n)
}

func (p *Pool) skip(path string, err error) {
	p.stats.SkippedFiles.Add(1)
	p.logger.Debug("skipping file", "path", path, "error", fmt.Errorf("%w: %w", ErrFileRead, err))
}
