package binding

import (
	"fmt"
	"strings"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/zclconf/go-cty/cty"
)

// Bindings maps parameter names to one or more candidate values. Insertion
// order is preserved; it is the axis order of combinatorial sweeps.
type Bindings struct {
	names  []string
	values map[string][]cty.Value
}

// New returns an empty set of bindings.
func New() *Bindings {
	return &Bindings{values: make(map[string][]cty.Value)}
}

// Set binds name to values. A single value is a singleton axis. Rebinding a
// name replaces its values but keeps its original position.
func (b *Bindings) Set(name string, values ...cty.Value) *Bindings {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = append([]cty.Value(nil), values...)
	return b
}

// SetAny is Set for native Go values such as ints, floats and strings.
func (b *Bindings) SetAny(name string, values ...any) error {
	converted := make([]cty.Value, len(values))
	for i, v := range values {
		cv, err := paramtype.ValueOf(v)
		if err != nil {
			return fmt.Errorf("binding %q: %w", name, err)
		}
		converted[i] = cv
	}
	b.Set(name, converted...)
	return nil
}

// Names returns the bound names in insertion order.
func (b *Bindings) Names() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.names...)
}

// Values returns the candidate values bound to name.
func (b *Bindings) Values(name string) ([]cty.Value, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether name is bound.
func (b *Bindings) Has(name string) bool {
	_, ok := b.Values(name)
	return ok
}

// Len returns the number of bound names.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

// Cardinality returns the number of combinations the bindings expand to.
func (b *Bindings) Cardinality() int {
	n := 1
	for _, name := range b.Names() {
		n *= len(b.values[name])
	}
	return n
}

// Combinations expands the bindings into every combination of values, one
// map per combination, in axis order with the last axis varying fastest.
func (b *Bindings) Combinations() []map[string]cty.Value {
	names := b.Names()
	axes := make([][]cty.Value, len(names))
	for i, name := range names {
		axes[i] = b.values[name]
	}

	tuples := Product(axes)
	out := make([]map[string]cty.Value, len(tuples))
	for i, tuple := range tuples {
		combo := make(map[string]cty.Value, len(names))
		for j, name := range names {
			combo[name] = tuple[j]
		}
		out[i] = combo
	}
	return out
}

func (b *Bindings) String() string {
	parts := make([]string, 0, b.Len())
	for _, name := range b.Names() {
		vals := b.values[name]
		rendered := make([]string, len(vals))
		for i, v := range vals {
			if s, err := paramtype.Format(v); err == nil {
				rendered[i] = s
			} else {
				rendered[i] = v.GoString()
			}
		}
		parts = append(parts, name+"="+strings.Join(rendered, ","))
	}
	return strings.Join(parts, " ")
}
