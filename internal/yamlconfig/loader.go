package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/fsutil"
	"github.com/ivargr/snakehelp/internal/hcl"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// FileExtensions lists the extensions of YAML declaration files.
var FileExtensions = []string{".yaml", ".yml"}

type fileRoot struct {
	Parameters []parametersDoc `yaml:"parameters"`
	Sweeps     []sweepDoc      `yaml:"sweeps"`
}

type parametersDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	FileName    string     `yaml:"file_name"`
	FileEnding  string     `yaml:"file_ending"`
	Params      []paramDoc `yaml:"params"`
}

type paramDoc struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Description string    `yaml:"description"`
	Default     yaml.Node `yaml:"default"`
}

type sweepDoc struct {
	Name    string    `yaml:"name"`
	Targets []string  `yaml:"targets"`
	Axes    []axisDoc `yaml:"axes"`
}

type axisDoc struct {
	Name   string    `yaml:"name"`
	Values yaml.Node `yaml:"values"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml and .yml file under the given paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}
	seen := make(map[string]struct{})
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, FileExtensions...)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, file := range files {
			if _, ok := seen[file]; ok {
				continue
			}
			seen[file] = struct{}{}

			src, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}
			fileModel, err := l.LoadSource(ctx, file, src)
			if err != nil {
				return nil, err
			}
			model.Merge(fileModel)
		}
	}

	logger.Debug("YAML loading complete.", "parameter_sets", len(model.Parameters), "sweeps", len(model.Sweeps))
	return model, nil
}

// LoadSource parses a single in-memory YAML document.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	model := &config.Model{}
	for _, p := range root.Parameters {
		set, err := translateParameterSet(ctx, p, filename)
		if err != nil {
			return nil, err
		}
		model.Parameters = append(model.Parameters, set)
	}
	for _, s := range root.Sweeps {
		sweep, err := translateSweep(s, filename)
		if err != nil {
			return nil, err
		}
		model.Sweeps = append(model.Sweeps, sweep)
	}
	return model, nil
}

func translateParameterSet(ctx context.Context, p parametersDoc, file string) (*config.ParameterSet, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%s: parameters entry without a name", file)
	}
	set := &config.ParameterSet{
		Name:        p.Name,
		Description: p.Description,
		FileName:    p.FileName,
		FileEnding:  p.FileEnding,
		Source:      file,
	}
	seen := make(map[string]struct{}, len(p.Params))
	for _, in := range p.Params {
		if in.Name == "" {
			return nil, fmt.Errorf("%s: parameters %q has a param without a name", file, p.Name)
		}
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("%s: parameters %q declares param %q more than once", file, p.Name, in.Name)
		}
		seen[in.Name] = struct{}{}

		if in.Type == "" {
			return nil, fmt.Errorf("%s: in parameters %q, param %q: type is required", file, p.Name, in.Name)
		}
		typ, err := hcl.ParseTypeString(ctx, in.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: in parameters %q, param %q: %w", file, p.Name, in.Name, err)
		}

		var defaultVal *cty.Value
		if !isEmpty(&in.Default) {
			v, err := nodeValue(&in.Default)
			if err != nil {
				return nil, fmt.Errorf("%s: in parameters %q, param %q: invalid default value: %w", file, p.Name, in.Name, err)
			}
			if !v.IsNull() {
				defaultVal = &v
			}
		}

		set.Params = append(set.Params, &config.ParamDefinition{
			Name:        in.Name,
			Type:        typ,
			Description: in.Description,
			Default:     defaultVal,
		})
	}
	return set, nil
}

func translateSweep(s sweepDoc, file string) (*config.Sweep, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%s: sweeps entry without a name", file)
	}
	sweep := &config.Sweep{Name: s.Name, Targets: s.Targets, Source: file}
	seen := make(map[string]struct{}, len(s.Axes))
	for _, a := range s.Axes {
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("%s: sweep %q declares axis %q more than once", file, s.Name, a.Name)
		}
		seen[a.Name] = struct{}{}

		if isEmpty(&a.Values) {
			return nil, fmt.Errorf("%s: in sweep %q, axis %q: values are required", file, s.Name, a.Name)
		}
		v, err := nodeValue(&a.Values)
		if err != nil {
			return nil, fmt.Errorf("%s: in sweep %q, axis %q: %w", file, s.Name, a.Name, err)
		}
		values := []cty.Value{v}
		if v.Type().IsTupleType() {
			values = v.AsValueSlice()
		}
		sweep.Axes = append(sweep.Axes, &config.Axis{Name: a.Name, Values: values})
	}
	return sweep, nil
}
