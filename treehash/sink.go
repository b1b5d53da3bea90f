package treehash

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/dendrascience/treehash/util"
)

// Result pairs a file path with the digest of its content.
type Result struct {
	Path   string
	Digest []byte
	Size   int64
}

// Hex renders the digest as lowercase hexadecimal.
func (r Result) Hex() string {
	return hex.EncodeToString(r.Digest)
}

// Sink receives results from concurrent workers. Implementations must be
// safe for concurrent use.
type Sink interface {
	Emit(Result) error
}

// Format selects how a LineSink renders each result.
type Format int

const (
	// FormatText writes "<path> <hex-digest>". Paths containing a line break
	// are quoted.
	FormatText Format = iota
	// FormatJSON writes one JSON object per line.
	FormatJSON
	// FormatCAS writes "<path> <bucket>-<subbucket>-<hex-digest>".
	FormatCAS
)

// ParseFormat accepts "text", "json" or "cas".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "cas":
		return FormatCAS, nil
	default:
		return FormatText, fmt.Errorf("%w: output format must be text, json or cas, got %q", ErrConfig, s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatCAS:
		return "cas"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// LineSink writes one line per result. Each line is rendered in full and
// then written with a single Write call while holding the lock, so lines
// from different workers never interleave.
type LineSink struct {
	mu        sync.Mutex
	w         io.Writer
	format    Format
	algorithm string
}

// NewLineSink returns a sink writing to w. algorithm is only used to label
// JSON records.
func NewLineSink(w io.Writer, format Format, algorithm string) *LineSink {
	return &LineSink{w: w, format: format, algorithm: algorithm}
}

type jsonRecord struct {
	Path      string `json:"path"`
	Digest    string `json:"digest"`
	Algorithm string `json:"algorithm,omitempty"`
	Size      int64  `json:"size"`
}

func (s *LineSink) render(r Result) ([]byte, error) {
	digest := r.Hex()
	switch s.format {
	case FormatJSON:
		line, err := json.Marshal(jsonRecord{Path: r.Path, Digest: digest, Algorithm: s.algorithm, Size: r.Size})
		if err != nil {
			return nil, err
		}
		return append(line, '\n'), nil
	case FormatCAS:
		return []byte(linePath(r.Path) + " " + util.HashPathFromHash(digest) + "\n"), nil
	default:
		return []byte(linePath(r.Path) + " " + digest + "\n"), nil
	}
}

// linePath keeps a result on one line. Paths containing a line break, or
// starting with a double quote, are written as Go-quoted strings.
func linePath(path string) string {
	if strings.ContainsAny(path, "\n\r") || strings.HasPrefix(path, `"`) {
		return strconv.Quote(path)
	}
	return path
}

func (s *LineSink) Emit(r Result) error {
	line, err := s.render(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(line)
	return err
}

// CollectSink gathers results into a DigestTable instead of writing them.
type CollectSink struct {
	mu    sync.Mutex
	table util.DigestTable
}

func NewCollectSink() *CollectSink {
	return &CollectSink{}
}

func (s *CollectSink) Emit(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Add(util.DigestEntry{Name: r.Path, Digest: r.Hex(), Size: r.Size})
	return nil
}

// Table returns the collected entries. It must only be called once every
// worker has exited.
func (s *CollectSink) Table() *util.DigestTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &s.table
}
