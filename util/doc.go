// Package util provides the digest and content-addressing helpers used by treehash.
//
// Key Components:
//
// Digests:
//   - A registry of incremental digests (md5, sha1, sha256, blake3, xxh64)
//     selected by name through NewHash
//   - GetHash streams any io.Reader through a digest in fixed-size chunks, so
//     memory use does not depend on file size
//
// Content addressing:
//   - HashPathFromHash maps a hex digest to a "bucket-subbucket-hash" identifier
//     using a color hash for the bucket
//
// Digest tables:
//   - DigestTable and DigestEntry collect path/digest pairs and group files
//     that share identical content
//
// Nothing in this package keeps global mutable state; digests and buffers are
// owned by the caller.
package util
