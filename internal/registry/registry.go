package registry

import (
	"fmt"
	"sort"

	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
)

// Sweep is a resolved sweep declaration: its target schemas and the ordered
// axes to combine.
type Sweep struct {
	Name    string
	Targets []*schema.Schema
	Axes    *binding.Bindings
}

// Registry holds every schema and sweep known to a single application
// instance.
type Registry struct {
	schemas     map[string]*schema.Schema
	schemaOrder []string
	sweeps      map[string]*Sweep
	sweepOrder  []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		schemas: make(map[string]*schema.Schema),
		sweeps:  make(map[string]*Sweep),
	}
}

// Register adds a schema built in Go. Names must be unique.
func (r *Registry) Register(s *schema.Schema) error {
	if s == nil {
		return &paramtype.SchemaError{Subject: "registry", Reason: "cannot register a nil schema"}
	}
	if _, exists := r.schemas[s.Name()]; exists {
		return &paramtype.SchemaError{Subject: s.Name(), Reason: "a schema with this name is already registered"}
	}
	r.schemas[s.Name()] = s
	r.schemaOrder = append(r.schemaOrder, s.Name())
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(s *schema.Schema) {
	if err := r.Register(s); err != nil {
		panic(fmt.Sprintf("registering schema: %v", err))
	}
}

// Schema returns the schema registered under name.
func (r *Registry) Schema(name string) (*schema.Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Lookup is like Schema but reports an unknown name as an error listing the
// known ones.
func (r *Registry) Lookup(name string) (*schema.Schema, error) {
	if s, ok := r.schemas[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown schema %q, known schemas: %v", name, r.SchemaNames())
}

// Schemas returns every schema in registration order.
func (r *Registry) Schemas() []*schema.Schema {
	out := make([]*schema.Schema, len(r.schemaOrder))
	for i, name := range r.schemaOrder {
		out[i] = r.schemas[name]
	}
	return out
}

// SchemaNames returns the registered schema names, sorted.
func (r *Registry) SchemaNames() []string {
	names := append([]string(nil), r.schemaOrder...)
	sort.Strings(names)
	return names
}

// Sweep returns the sweep declared under name.
func (r *Registry) Sweep(name string) (*Sweep, bool) {
	s, ok := r.sweeps[name]
	return s, ok
}

// LookupSweep is like Sweep but reports an unknown name as an error.
func (r *Registry) LookupSweep(name string) (*Sweep, error) {
	if s, ok := r.sweeps[name]; ok {
		return s, nil
	}
	names := append([]string(nil), r.sweepOrder...)
	sort.Strings(names)
	return nil, fmt.Errorf("unknown sweep %q, known sweeps: %v", name, names)
}

// Sweeps returns every sweep in declaration order.
func (r *Registry) Sweeps() []*Sweep {
	out := make([]*Sweep, len(r.sweepOrder))
	for i, name := range r.sweepOrder {
		out[i] = r.sweeps[name]
	}
	return out
}
