package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mihailsb/homevault/internal/filex"
)

const fileScheme = "file://"

// DiskStore keeps blobs as flat files in a local directory. Stored names are
// random, the original file name only survives on the document row.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare blob dir: %w", err)
	}
	return &DiskStore{dir: abs}, nil
}

func (s *DiskStore) Put(_ context.Context, fileName, _ string, data []byte) (*Stored, error) {
	name := uuid.NewString()
	if ext := filepath.Ext(fileName); ext != "" {
		name += ext
	}
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o660); err != nil {
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	return &Stored{
		URI:         fileScheme + path,
		SizeBytes:   int64(len(data)),
		ContentHash: HashContent(data),
	}, nil
}

// URL for a local blob is the file URI itself.
func (s *DiskStore) URL(_ context.Context, uri string) (string, error) {
	if !strings.HasPrefix(uri, fileScheme) {
		return "", fmt.Errorf("not a local blob uri: %s", uri)
	}
	return uri, nil
}

// Remove deletes the file behind a local blob URI. Missing files are not an
// error, a document delete may race a manual cleanup.
func (s *DiskStore) Remove(_ context.Context, uri string) error {
	if !strings.HasPrefix(uri, fileScheme) {
		return fmt.Errorf("not a local blob uri: %s", uri)
	}
	err := os.Remove(strings.TrimPrefix(uri, fileScheme))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob: %w", err)
	}
	return nil
}
