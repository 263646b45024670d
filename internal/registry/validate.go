package registry

import (
	"errors"
	"fmt"

	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
)

// resolveSweeps checks every sweep against the schemas it targets. All
// problems are reported together.
func (r *Registry) resolveSweeps(decls []*config.Sweep, lookup func(string) (*schema.Schema, bool)) ([]*Sweep, error) {
	var errs []error
	seen := make(map[string]struct{}, len(decls))
	out := make([]*Sweep, 0, len(decls))

	for _, d := range decls {
		if _, dup := seen[d.Name]; dup {
			errs = append(errs, fmt.Errorf("sweep %q: declared more than once", d.Name))
			continue
		}
		if _, exists := r.sweeps[d.Name]; exists {
			errs = append(errs, fmt.Errorf("sweep %q: already registered", d.Name))
			continue
		}
		seen[d.Name] = struct{}{}

		s, err := resolveSweep(d, lookup)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: sweep %q: %w", d.Source, d.Name, err))
			continue
		}
		out = append(out, s)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}
	return out, nil
}

func resolveSweep(d *config.Sweep, lookup func(string) (*schema.Schema, bool)) (*Sweep, error) {
	if len(d.Targets) == 0 {
		return nil, &paramtype.SchemaError{Subject: d.Name, Reason: "a sweep needs at least one target"}
	}

	targets := make([]*schema.Schema, len(d.Targets))
	known := make(map[string]struct{})
	for i, name := range d.Targets {
		s, ok := lookup(name)
		if !ok {
			return nil, &paramtype.SchemaError{Subject: name, Reason: "unknown sweep target"}
		}
		targets[i] = s
		for _, p := range s.ReachableParameters() {
			known[p] = struct{}{}
		}
	}

	axes := binding.New()
	for _, a := range d.Axes {
		if _, ok := known[a.Name]; !ok {
			return nil, &paramtype.ValueError{Field: a.Name, Reason: fmt.Sprintf("not a parameter of any target %v", d.Targets)}
		}
		axes.Set(a.Name, a.Values...)
	}
	return &Sweep{Name: d.Name, Targets: targets, Axes: axes}, nil
}
