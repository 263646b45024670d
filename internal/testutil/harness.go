// Package testutil runs the application against declaration files written
// into a temporary directory and captures what it prints and logs.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ivargr/snakehelp/internal/app"
	"github.com/ivargr/snakehelp/internal/resultstore"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of one application run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	Dir       string
}

// Run writes files under a fresh temporary directory and runs one command
// with a default background context.
func Run(t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()
	return RunWithContext(context.Background(), t, files, cfg, opts...)
}

// RunWithContext is Run with a caller-provided context.
//
// File names are relative to the temporary directory. When cfg.SchemaPaths
// is empty the whole directory is scanned for declarations. Results go to an
// in-memory backend unless opts install another one.
func RunWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if len(cfg.SchemaPaths) == 0 {
		cfg.SchemaPaths = []string{tmpDir}
	} else {
		paths := make([]string, len(cfg.SchemaPaths))
		for i, p := range cfg.SchemaPaths {
			paths[i] = p
			if !filepath.IsAbs(p) {
				paths[i] = filepath.Join(tmpDir, p)
			}
		}
		cfg.SchemaPaths = paths
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	result := &HarnessResult{Dir: tmpDir}
	defer func() {
		result.Output = out.String()
		result.LogOutput = logs.String()
		if os.Getenv("SNAKEHELP_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	}()

	validated, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = err
		return result
	}

	opts = append([]app.Option{app.WithBackend(resultstore.NewMemory())}, opts...)
	a, err := app.NewApp(ctx, out, logs, validated, opts...)
	if err != nil {
		result.Err = err
		return result
	}
	result.App = a
	result.Err = a.Run(ctx)
	return result
}
