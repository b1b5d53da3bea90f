package util

import (
	"crypto/md5"  //nolint:gosec // content fingerprint, not a security boundary
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/taigrr/colorhash"
	"github.com/zeebo/blake3"
)

// DefaultChunkSize is the number of bytes fed to a digest per read.
const DefaultChunkSize = 4096

// DefaultAlgorithm is the digest used when none is configured.
const DefaultAlgorithm = "md5"

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"blake3": func() hash.Hash { return blake3.New() },
	"xxh64":  func() hash.Hash { return xxhash.New() },
}

// Algorithms returns the names of every supported digest, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewHash returns a fresh incremental digest for the named algorithm.
// Names are case-insensitive.
func NewHash(algorithm string) (hash.Hash, error) {
	ctor, ok := algorithms[strings.ToLower(strings.TrimSpace(algorithm))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownAlgorithm, algorithm, strings.Join(Algorithms(), ", "))
	}
	return ctor(), nil
}

// GetHash streams r through h in chunks of len(buf) bytes and returns the
// finalized digest along with the number of bytes consumed. h is reset first,
// so callers may reuse both h and buf across files.
func GetHash(r io.Reader, h hash.Hash, buf []byte) ([]byte, int64, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultChunkSize)
	}
	h.Reset()
	n, err := io.CopyBuffer(onlyWriter{h}, onlyReader{r}, buf)
	if err != nil {
		return nil, n, err
	}
	return h.Sum(nil), n, nil
}

// onlyReader and onlyWriter hide WriterTo/ReaderFrom so io.CopyBuffer
// honours the chunk size.
type onlyReader struct {
	io.Reader
}

type onlyWriter struct {
	io.Writer
}

// HashPathFromHash generates a content-addressed identifier from a hex digest.
// The result is in the format "bucket-subbucket-hash" (e.g., "742-01234-abc123...").
//
// The bucket is derived from a color hash mod 1000; the subbucket comes from
// the trailing five hex characters of the digest. Identical content always
// maps to the same identifier, so the identifier can name a shard directory
// in an external content store.
func HashPathFromHash(hash string) string {
	return HashPathFromHashWithSubbucket(hash, GetSubbucketFromHash(hash))
}

// HashPathFromHashWithSubbucket generates a hash path with a specific subbucket.
func HashPathFromHashWithSubbucket(hash string, subbucket int) string {
	hInt := colorhash.HashString(hash)
	bucket := hInt % 1000
	if bucket < 0 {
		bucket = -bucket
	}
	return fmt.Sprintf("%d-%05d-%s", bucket, subbucket, hash)
}

// GetSubbucketFromHash returns a secondary subbucket index based on the hash.
// Returns a value from 0-99999.
func GetSubbucketFromHash(hash string) int {
	if len(hash) < 5 {
		return 0
	}
	var subbucket int
	for i := len(hash) - 5; i < len(hash); i++ {
		subbucket = subbucket*16 + hexCharToInt(hash[i])
	}
	return subbucket % 100000
}

func hexCharToInt(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return 0
	}
}
