package instance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// MissingDefaultError reports a required field that was neither supplied nor
// declared with a default.
type MissingDefaultError struct {
	Schema string
	Field  string
}

func (e *MissingDefaultError) Error() string {
	return fmt.Sprintf("%s: field %q was not supplied and has no default", e.Schema, e.Field)
}

// Value is the value of one top-level field: a primitive leaf or a nested
// instance.
type Value struct {
	leaf cty.Value
	text string
	sub  *Instance
}

// Leaf wraps a primitive value.
func Leaf(v cty.Value) Value { return Value{leaf: v} }

// Sub wraps a nested instance.
func Sub(i *Instance) Value { return Value{sub: i} }

// IsNested reports whether the value holds a nested instance.
func (v Value) IsNested() bool { return v.sub != nil }

// Instance is an immutable set of concrete values for a schema.
type Instance struct {
	schema *schema.Schema
	values []Value
}

// LeafValue pairs a flattened leaf field with its concrete value. Text is
// the segment spelling the value was supplied as, or empty when the value
// came from Go or a declared default.
type LeafValue struct {
	Field schema.Field
	Value cty.Value
	Text  string
}

// Segment returns the path segment of the leaf.
func (l LeafValue) Segment() (string, error) {
	if l.Text != "" {
		return l.Text, nil
	}
	return paramtype.Format(l.Value)
}

// New constructs an instance from top-level field values. Missing fields take
// their declared default; a nested field's object default is expanded the
// way FromFlatParams expands flat values.
func New(s *schema.Schema, fields map[string]Value) (*Instance, error) {
	declared := s.Fields()
	known := make(map[string]struct{}, len(declared))
	for _, f := range declared {
		known[f.Name] = struct{}{}
	}
	for _, name := range sortedKeys(fields) {
		if _, ok := known[name]; !ok {
			return nil, &paramtype.ValueError{Field: name, Value: "", Reason: fmt.Sprintf("not a field of %s", s.Name())}
		}
	}

	inst := &Instance{schema: s, values: make([]Value, len(declared))}
	for i, f := range declared {
		v, supplied := fields[f.Name]
		if !supplied {
			if !f.HasDefault() {
				return nil, &MissingDefaultError{Schema: s.Name(), Field: f.Name}
			}
			dv, err := defaultValue(f)
			if err != nil {
				return nil, err
			}
			inst.values[i] = dv
			continue
		}
		checked, err := checkValue(f, v)
		if err != nil {
			return nil, err
		}
		inst.values[i] = checked
	}
	return inst, nil
}

// MustNew is like New but panics on error.
func MustNew(s *schema.Schema, fields map[string]Value) *Instance {
	i, err := New(s, fields)
	if err != nil {
		panic(err)
	}
	return i
}

func checkValue(f schema.Field, v Value) (Value, error) {
	switch {
	case f.Type.Kind() == paramtype.KindNested:
		want, err := schema.Deref(f.Type)
		if err != nil {
			return Value{}, err
		}
		if v.sub == nil || v.sub.schema != want {
			return Value{}, &paramtype.ValueError{Field: f.Name, Value: describe(v), Reason: "expected an instance of " + want.Name()}
		}
		return v, nil

	case f.Type.IsNestedUnion():
		members, err := schema.UnionMembers(f.Type)
		if err != nil {
			return Value{}, err
		}
		if v.sub != nil {
			for _, m := range members {
				if v.sub.schema == m {
					return v, nil
				}
			}
		}
		return Value{}, &paramtype.ValueError{Field: f.Name, Value: describe(v), Reason: "expected an instance of one of " + f.Type.String()}

	default:
		if v.sub != nil {
			return Value{}, &paramtype.ValueError{Field: f.Name, Value: describe(v), Reason: "expected a primitive value, got an instance"}
		}
		normalized, text, err := paramtype.NormalizeSegment(f.Name, v.leaf, f.Type)
		if err != nil {
			return Value{}, err
		}
		return Value{leaf: normalized, text: text}, nil
	}
}

func defaultValue(f schema.Field) (Value, error) {
	if f.Type.Kind() != paramtype.KindNested && !f.Type.IsNestedUnion() {
		return Leaf(*f.Default), nil
	}
	sub, err := buildField(f, nil)
	if err != nil {
		return Value{}, err
	}
	return sub, nil
}

// Schema returns the schema the instance belongs to.
func (i *Instance) Schema() *schema.Schema { return i.schema }

// Field returns the value of a top-level field.
func (i *Instance) Field(name string) (Value, bool) {
	for idx, f := range i.schema.Fields() {
		if f.Name == name {
			return i.values[idx], true
		}
	}
	return Value{}, false
}

// Sub returns the nested instance held by a top-level field, or nil.
func (i *Instance) Sub(name string) *Instance {
	v, ok := i.Field(name)
	if !ok {
		return nil
	}
	return v.sub
}

// Leaves returns every leaf field with its value in flattening order. Nested
// union fields contribute the leaves of the member they hold.
func (i *Instance) Leaves() []LeafValue {
	var out []LeafValue
	for idx, f := range i.schema.Fields() {
		v := i.values[idx]
		if v.sub != nil {
			out = append(out, v.sub.Leaves()...)
			continue
		}
		out = append(out, LeafValue{Field: f, Value: v.leaf, Text: v.text})
	}
	return out
}

// Flatten returns the leaf values in flattening order.
func (i *Instance) Flatten() []cty.Value {
	leaves := i.Leaves()
	out := make([]cty.Value, len(leaves))
	for idx, l := range leaves {
		out[idx] = l.Value
	}
	return out
}

// FlatParams returns the leaf values keyed by parameter name. When a name
// occurs more than once the first occurrence wins.
func (i *Instance) FlatParams() map[string]cty.Value {
	out := make(map[string]cty.Value)
	for _, l := range i.Leaves() {
		if _, ok := out[l.Field.Name]; !ok {
			out[l.Field.Name] = l.Value
		}
	}
	return out
}

// Get returns the value of the first leaf named name.
func (i *Instance) Get(name string) (cty.Value, bool) {
	for _, l := range i.Leaves() {
		if l.Field.Name == name {
			return l.Value, true
		}
	}
	return cty.NilVal, false
}

// Equal reports whether both instances belong to the same schema and hold
// equal flattened values. Values are compared, not their spelling: "0.50"
// and "0.5" are equal.
func (i *Instance) Equal(o *Instance) bool {
	if i == nil || o == nil {
		return i == o
	}
	if i.schema != o.schema {
		return false
	}
	a, b := i.Leaves(), o.Leaves()
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx].Field.Name != b[idx].Field.Name {
			return false
		}
		if !a[idx].Value.Type().Equals(b[idx].Value.Type()) || !a[idx].Value.Equals(b[idx].Value).True() {
			return false
		}
	}
	return true
}

func (i *Instance) String() string {
	parts := make([]string, 0)
	for _, l := range i.Leaves() {
		text, err := l.Segment()
		if err != nil {
			text = l.Value.GoString()
		}
		parts = append(parts, l.Field.Name+"="+text)
	}
	return i.schema.Name() + "(" + strings.Join(parts, ", ") + ")"
}

func formatLeaf(v cty.Value) string {
	if s, err := paramtype.Format(v); err == nil {
		return s
	}
	return v.GoString()
}

func describe(v Value) string {
	if v.sub != nil {
		return v.sub.String()
	}
	if v.leaf == cty.NilVal {
		return "<nil>"
	}
	return formatLeaf(v.leaf)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
