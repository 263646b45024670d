package pathcodec

import (
	"fmt"

	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Templates returns the wildcard path template(s) for s. Bound fields are
// emitted as literals, single-variant enums as their variant and every other
// field as a {name,regex} wildcard. Each multi-valued binding multiplies the
// result: one path per combination, in binding value order.
func (c *Codec) Templates(s *schema.Schema, b *binding.Bindings) ([]string, error) {
	slots, err := templateSlots(s)
	if err != nil {
		return nil, err
	}

	available := make(map[string]struct{}, len(slots))
	names := make([]string, len(slots))
	for i, sl := range slots {
		available[sl.name] = struct{}{}
		names[i] = sl.name
	}
	for _, name := range b.Names() {
		if _, ok := available[name]; !ok {
			return nil, &paramtype.ValueError{
				Field:  name,
				Reason: fmt.Sprintf("trying to force a field that is not among the available fields of %s, which are %v", s.Name(), names),
			}
		}
	}

	candidates := make([][]string, len(slots))
	for i, sl := range slots {
		if values, ok := b.Values(sl.name); ok {
			literals, err := boundLiterals(sl, values)
			if err != nil {
				return nil, err
			}
			candidates[i] = literals
			continue
		}
		if sl.typ.IsSingleVariant() {
			candidates[i] = sl.typ.Variants()
			continue
		}
		regex, err := sl.regex()
		if err != nil {
			return nil, err
		}
		candidates[i] = []string{"{" + sl.name + "," + regex + "}"}
	}

	combos := binding.Product(candidates)
	out := make([]string, len(combos))
	for i, segments := range combos {
		out[i] = c.join(segments, s.FileName(), s.FileEnding())
	}
	return out, nil
}

// Template is Templates for callers that expect exactly one path.
func (c *Codec) Template(s *schema.Schema, b *binding.Bindings) (string, error) {
	paths, err := c.Templates(s, b)
	if err != nil {
		return "", err
	}
	if len(paths) != 1 {
		return "", fmt.Errorf("template for %s expands to %d paths, expected exactly one", s.Name(), len(paths))
	}
	return paths[0], nil
}

func boundLiterals(sl slot, values []cty.Value) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		lit, err := paramtype.Format(v)
		if err != nil {
			return nil, &paramtype.ValueError{Field: sl.name, Value: v.GoString(), Reason: err.Error()}
		}
		if sl.opaque {
			if lit == "" {
				return nil, &paramtype.ValueError{Field: sl.name, Value: lit, Reason: "an empty segment cannot be forced"}
			}
			out = append(out, lit)
			continue
		}
		ok, err := paramtype.IsValid(lit, sl.typ)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &paramtype.ValueError{
				Field:  sl.name,
				Value:  lit,
				Reason: fmt.Sprintf("not compatible with the field type %s", sl.typ),
			}
		}
		out = append(out, lit)
	}
	return out, nil
}
