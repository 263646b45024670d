package config

import (
	"context"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given files or directories and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Loaders combines several format loaders. Each one sees every path and
// picks up only the files in its own format.
type Loaders []Loader

// Load runs every loader in order and merges their models.
func (ls Loaders) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := &Model{}
	for _, l := range ls {
		m, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	return model, nil
}
