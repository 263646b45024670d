package binding

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Parse reads command-line style bindings of the form name=v1,v2. Values are
// kept as strings; the field type they end up in decides their conversion.
func Parse(args []string) (*Bindings, error) {
	b := New()
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid binding %q: expected name=value[,value...]", arg)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid binding %q: empty name", arg)
		}
		if b.Has(name) {
			return nil, fmt.Errorf("parameter %q is bound more than once", name)
		}

		parts := strings.Split(raw, ",")
		values := make([]cty.Value, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				return nil, fmt.Errorf("invalid binding %q: empty value", arg)
			}
			values = append(values, cty.StringVal(p))
		}
		b.Set(name, values...)
	}
	return b, nil
}

// FromStrings builds bindings where every name has exactly one value, in the
// given name order. It is the shape of a workflow engine's wildcard mapping.
func FromStrings(names []string, values map[string]string) *Bindings {
	b := New()
	for _, name := range names {
		if v, ok := values[name]; ok {
			b.Set(name, cty.StringVal(v))
		}
	}
	return b
}
