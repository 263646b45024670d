package resultstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ivargr/snakehelp/internal/fsutil"
)

// Backend reads and writes result blobs by slash-separated path.
type Backend interface {
	Write(ctx context.Context, path string, data []byte) error
	// Read returns an error matching fs.ErrNotExist when nothing is stored
	// at path.
	Read(ctx context.Context, path string) ([]byte, error)
}

// Disk stores blobs as files, creating parent directories on demand.
type Disk struct{}

// Write creates every missing parent directory and replaces the file.
func (Disk) Write(ctx context.Context, path string, data []byte) error {
	native := filepath.FromSlash(path)
	if err := fsutil.EnsureParentDir(native); err != nil {
		return err
	}
	return os.WriteFile(native, data, 0o644)
}

func (Disk) Read(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(path))
}

// Memory keeps blobs in process memory. It is safe for concurrent use and
// suits tests and dry runs that must not touch the file system.
type Memory struct {
	blobs sync.Map // Key: path, Value: []byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Write(ctx context.Context, path string, data []byte) error {
	m.blobs.Store(path, append([]byte(nil), data...))
	return nil
}

func (m *Memory) Read(ctx context.Context, path string) ([]byte, error) {
	v, ok := m.blobs.Load(path)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), v.([]byte)...), nil
}

// Len returns the number of stored blobs.
func (m *Memory) Len() int {
	n := 0
	m.blobs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
