package treehash

import "errors"

// Sentinel errors for package treehash.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Fatal, reported before any work starts
	ErrUsage  = errors.New("at least one path is required")
	ErrConfig = errors.New("invalid configuration")

	// Recovered per entry; counted in Stats and never returned from Run
	ErrTraversal = errors.New("traversal error")
	ErrFileRead  = errors.New("file read error")

	// Queue errors
	ErrQueueClosed = errors.New("put on closed queue")
)
