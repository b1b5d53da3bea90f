package treehash

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// HiddenPolicy decides whether dot-prefixed directory entries are walked.
// The "." and ".." pseudo-entries are always skipped.
type HiddenPolicy int

const (
	// HiddenInclude walks dot-prefixed files and directories like any other entry.
	HiddenInclude HiddenPolicy = iota
	// HiddenSkip ignores every entry whose name starts with a dot.
	HiddenSkip
)

// ParseHiddenPolicy accepts "include" or "skip".
func ParseHiddenPolicy(s string) (HiddenPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "include", "":
		return HiddenInclude, nil
	case "skip":
		return HiddenSkip, nil
	default:
		return HiddenInclude, fmt.Errorf("%w: hidden policy must be include or skip, got %q", ErrConfig, s)
	}
}

func (p HiddenPolicy) String() string {
	switch p {
	case HiddenInclude:
		return "include"
	case HiddenSkip:
		return "skip"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Producer enumerates regular files below a list of roots and feeds their
// paths into a queue.
type Producer struct {
	fs     FileSystem
	queue  *Queue[string]
	hidden HiddenPolicy
	logger *slog.Logger
	stats  *Stats
}

// NewProducer wires a producer to its queue. stats may be nil.
func NewProducer(fsys FileSystem, queue *Queue[string], hidden HiddenPolicy, logger *slog.Logger, stats *Stats) *Producer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Producer{fs: fsys, queue: queue, hidden: hidden, logger: logger, stats: stats}
}

// dirFrame is a directory waiting to be listed. parent links form the chain
// of ancestors used to detect symlink cycles.
type dirFrame struct {
	path   string
	info   fs.FileInfo
	parent *dirFrame
}

func (d *dirFrame) hasAncestor(info fs.FileInfo) bool {
	for f := d; f != nil; f = f.parent {
		if os.SameFile(f.info, info) {
			return true
		}
	}
	return false
}

// Run walks every root in order and closes the queue when done. Entries
// that cannot be inspected are skipped; the only error returned is a
// failure to enqueue.
func (p *Producer) Run(roots []string) error {
	defer p.queue.Close()

	for _, root := range roots {
		info, err := p.fs.Stat(root)
		if err != nil {
			p.skip(root, err)
			continue
		}
		switch {
		case info.Mode().IsRegular():
			if err := p.enqueue(root); err != nil {
				return err
			}
		case info.IsDir():
			if err := p.walk(&dirFrame{path: root, info: info}); err != nil {
				return err
			}
		default:
			p.logger.Debug("ignoring non-regular root", "path", root, "mode", info.Mode().String())
		}
	}
	return nil
}

// walk traverses a directory tree with an explicit stack so nesting depth
// never grows the goroutine stack.
func (p *Producer) walk(root *dirFrame) error {
	stack := []*dirFrame{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := p.fs.ReadDir(dir.path)
		if err != nil {
			// os.ReadDir returns the entries it managed to read before failing
			p.skip(dir.path, err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if p.ignored(name) {
				continue
			}
			path := filepath.Join(dir.path, name)

			info, err := p.fs.Stat(path)
			if err != nil {
				p.skip(path, err)
				continue
			}

			switch {
			case info.IsDir():
				if dir.hasAncestor(info) {
					p.logger.Debug("skipping directory cycle", "path", path)
					continue
				}
				stack = append(stack, &dirFrame{path: path, info: info, parent: dir})
			case info.Mode().IsRegular():
				if err := p.enqueue(path); err != nil {
					return err
				}
			default:
				p.logger.Debug("ignoring non-regular file", "path", path, "mode", info.Mode().String())
			}
		}
	}
	return nil
}

func (p *Producer) ignored(name string) bool {
	if name == "." || name == ".." {
		return true
	}
	return p.hidden == HiddenSkip && strings.HasPrefix(name, ".")
}

func (p *Producer) enqueue(path string) error {
	if err := p.queue.Put(path); err != nil {
		return fmt.Errorf("enqueue %s: %w", path, err)
	}
	p.stats.Enqueued.Add(1)
	return nil
}

func (p *Producer) skip(path string, err error) {
	p.stats.SkippedEntries.Add(1)
	p.logger.Debug("skipping entry", "path", path, "error", fmt.Errorf("%w: %w", ErrTraversal, err))
}
