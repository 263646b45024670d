package resultstore

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/pathcodec"
	"github.com/zclconf/go-cty/cty"
)

// NotFoundError is returned by Fetch when no result is stored for an
// instance. It matches fs.ErrNotExist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no result stored at %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// Store writes and reads results at the resolved paths of instances.
type Store struct {
	codec   *pathcodec.Codec
	backend Backend
}

// Option configures a Store.
type Option func(*Store)

// WithBackend replaces the default on-disk backend.
func WithBackend(b Backend) Option {
	return func(s *Store) { s.backend = b }
}

// New creates a store rooted at the codec's data folder.
func New(codec *pathcodec.Codec, opts ...Option) *Store {
	s := &Store{codec: codec, backend: Disk{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns where the result of inst is stored.
func (s *Store) Path(inst *instance.Instance) (string, error) {
	return s.codec.Resolve(inst)
}

// Store writes v as the result of inst, creating missing directories.
func (s *Store) Store(ctx context.Context, inst *instance.Instance, v cty.Value) error {
	logger := ctxlog.FromContext(ctx)

	path, err := s.codec.Resolve(inst)
	if err != nil {
		return err
	}
	blob, err := Encode(v)
	if err != nil {
		return fmt.Errorf("storing result for %s: %w", inst, err)
	}

	logger.Debug("Storing result.", "path", path, "bytes", len(blob))
	if err := s.backend.Write(ctx, path, blob); err != nil {
		return fmt.Errorf("storing result at %s: %w", path, err)
	}
	logger.Info("Stored result.", "schema", inst.Schema().Name(), "path", path)
	return nil
}

// StoreValue is Store for native Go values.
func (s *Store) StoreValue(ctx context.Context, inst *instance.Instance, v any) error {
	cv, err := paramtype.ValueOf(v)
	if err != nil {
		return fmt.Errorf("storing result for %s: %w", inst, err)
	}
	return s.Store(ctx, inst, cv)
}

// Fetch reads the result of inst. Numeric blobs come back as cty.Number,
// others as the raw text. A missing result fails with *NotFoundError.
func (s *Store) Fetch(ctx context.Context, inst *instance.Instance) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := s.codec.Resolve(inst)
	if err != nil {
		return cty.NilVal, err
	}

	logger.Debug("Fetching result.", "path", path)
	raw, err := s.backend.Read(ctx, path)
	if err != nil {
		if isNotExist(err) {
			return cty.NilVal, &NotFoundError{Path: path}
		}
		return cty.NilVal, fmt.Errorf("fetching result at %s: %w", path, err)
	}
	return Decode(raw), nil
}
