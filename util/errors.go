package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Digest errors
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")
)
