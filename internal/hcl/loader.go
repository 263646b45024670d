package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/fsutil"
)

// FileExtension is the extension of HCL declaration files.
const FileExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths. Files are read in
// path order, and each directory's files in lexical order, so declaration
// order is deterministic.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findFiles(paths, FileExtension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		fileModel, err := l.decodeFile(ctx, file, hclFile.Body)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "parameter_sets", len(model.Parameters), "sweeps", len(model.Sweeps))
	return model, nil
}

// LoadSource parses a single in-memory HCL document. filename is only used
// in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decodeFile(ctx, filename, hclFile.Body)
}

func (l *Loader) decodeFile(ctx context.Context, file string, body hcl.Body) (*config.Model, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	model := &config.Model{}
	for _, p := range root.Parameters {
		set, err := translateParameterSet(ctx, p, file)
		if err != nil {
			return nil, err
		}
		model.Parameters = append(model.Parameters, set)
	}
	for _, s := range root.Sweeps {
		sweep, err := translateSweep(ctx, s, file)
		if err != nil {
			return nil, err
		}
		model.Sweeps = append(model.Sweeps, sweep)
	}
	return model, nil
}

// findFiles expands directories into the matching files they contain and
// drops duplicates. A missing path is an error.
func findFiles(paths []string, extensions ...string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range found {
			if _, wasSeen := seen[f]; !wasSeen {
				all = append(all, f)
				seen[f] = struct{}{}
			}
		}
	}
	return all, nil
}
