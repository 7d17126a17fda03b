// Package blob stores the raw bytes behind documents. A document row in the
// documents package only carries a URI; the blob store is what that URI
// points at. Two implementations ship: a local directory for on-device use
// and an S3-compatible bucket for setups with a private object store.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Stored describes a successfully written blob.
type Stored struct {
	// URI locates the blob and goes verbatim into Document.URI.
	URI string

	SizeBytes   int64
	ContentHash string
}

// Store writes and serves document payloads.
type Store interface {
	// Put stores data and returns its locator. The file name is advisory
	// only; implementations pick their own storage keys.
	Put(ctx context.Context, fileName, mimeType string, data []byte) (*Stored, error)

	// URL returns an address the caller can fetch the blob from. For
	// remote stores this may be time-limited.
	URL(ctx context.Context, uri string) (string, error)
}

// HashContent returns the hex sha256 of data, the value stored as a
// document's ContentHash.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
