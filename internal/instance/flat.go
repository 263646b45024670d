package instance

import (
	"fmt"
	"sort"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// FromFlatParams builds an instance from a flat name to value mapping. Every
// leaf absent from flat takes its declared default; a leaf with no default
// fails with *MissingDefaultError. Names that are not parameters of s fail
// with *paramtype.ValueError.
//
// For a nested union field the member whose parameters are most represented
// in flat is tried first, ties going to declaration order.
func FromFlatParams(s *schema.Schema, flat map[string]cty.Value) (*Instance, error) {
	reachable := make(map[string]struct{})
	for _, name := range s.ReachableParameters() {
		reachable[name] = struct{}{}
	}
	for _, name := range sortedKeys(flat) {
		if _, ok := reachable[name]; !ok {
			return nil, &paramtype.ValueError{
				Field:  name,
				Value:  formatLeaf(flat[name]),
				Reason: fmt.Sprintf("not a parameter of %s (parameters: %v)", s.Name(), s.Parameters()),
			}
		}
	}
	return build(s, flat)
}

// MustFromFlatParams is like FromFlatParams but panics on error.
func MustFromFlatParams(s *schema.Schema, flat map[string]cty.Value) *Instance {
	i, err := FromFlatParams(s, flat)
	if err != nil {
		panic(err)
	}
	return i
}

func build(s *schema.Schema, flat map[string]cty.Value) (*Instance, error) {
	declared := s.Fields()
	inst := &Instance{schema: s, values: make([]Value, len(declared))}
	for i, f := range declared {
		if f.Type.Kind() == paramtype.KindNested || f.Type.IsNestedUnion() {
			v, err := buildField(f, flat)
			if err != nil {
				return nil, err
			}
			inst.values[i] = v
			continue
		}

		if raw, ok := flat[f.Name]; ok {
			v, text, err := paramtype.NormalizeSegment(f.Name, raw, f.Type)
			if err != nil {
				return nil, err
			}
			inst.values[i] = Value{leaf: v, text: text}
			continue
		}
		if !f.HasDefault() {
			return nil, &MissingDefaultError{Schema: s.Name(), Field: f.Name}
		}
		inst.values[i] = Leaf(*f.Default)
	}
	return inst, nil
}

// buildField expands a nested or nested-union field. Flat values take
// precedence over the field's object default, which takes precedence over the
// nested schema's own defaults.
func buildField(f schema.Field, flat map[string]cty.Value) (Value, error) {
	merged := withFieldDefaults(f, flat)

	if f.Type.Kind() == paramtype.KindNested {
		nested, err := schema.Deref(f.Type)
		if err != nil {
			return Value{}, err
		}
		sub, err := build(nested, merged)
		if err != nil {
			return Value{}, err
		}
		return Sub(sub), nil
	}

	members, err := schema.UnionMembers(f.Type)
	if err != nil {
		return Value{}, err
	}
	var firstErr error
	for _, m := range rankMembers(members, merged) {
		sub, err := build(m, merged)
		if err == nil {
			return Sub(sub), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return Value{}, fmt.Errorf("field %q: no member of %s can be built: %w", f.Name, f.Type, firstErr)
}

func withFieldDefaults(f schema.Field, flat map[string]cty.Value) map[string]cty.Value {
	if !f.HasDefault() {
		return flat
	}
	merged := make(map[string]cty.Value, len(flat))
	for it := f.Default.ElementIterator(); it.Next(); {
		k, v := it.Element()
		merged[k.AsString()] = v
	}
	for k, v := range flat {
		merged[k] = v
	}
	return merged
}

func rankMembers(members []*schema.Schema, flat map[string]cty.Value) []*schema.Schema {
	scores := make(map[*schema.Schema]int, len(members))
	for _, m := range members {
		for _, name := range m.ReachableParameters() {
			if _, ok := flat[name]; ok {
				scores[m]++
			}
		}
	}
	ranked := append([]*schema.Schema(nil), members...)
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})
	return ranked
}
