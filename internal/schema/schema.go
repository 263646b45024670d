package schema

import (
	"fmt"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/zclconf/go-cty/cty"
)

// Field is one declared parameter slot. After flattening, every returned Field
// is a leaf: its type is never KindNested.
type Field struct {
	Name        string
	Type        paramtype.Type
	Description string
	// Default is nil when the field is required. For nested fields it is an
	// object whose attributes supply defaults for the nested leaf fields.
	Default *cty.Value
}

// HasDefault reports whether the field declares a default value.
func (f Field) HasDefault() bool { return f.Default != nil }

// Schema is an immutable, validated parameter declaration. Construct it with
// New; the zero value is not usable.
type Schema struct {
	name        string
	description string
	fields      []Field
	fileName    string
	fileEnding  string
}

// Option configures schema-level metadata.
type Option func(*Schema)

// WithFileName appends name as an extra trailing path segment when instances
// are resolved.
func WithFileName(name string) Option {
	return func(s *Schema) { s.fileName = name }
}

// WithFileEnding appends ending to resolved paths with no separator.
func WithFileEnding(ending string) Option {
	return func(s *Schema) { s.fileEnding = ending }
}

// WithDescription attaches free-form documentation to the schema.
func WithDescription(desc string) Option {
	return func(s *Schema) { s.description = desc }
}

// New builds and validates a schema. Every type is checked eagerly so that an
// unreflectable declaration fails here rather than on first use.
func New(name string, fields []Field, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, &paramtype.SchemaError{Reason: "schema name cannot be empty"}
	}

	s := &Schema{name: name, fields: make([]Field, 0, len(fields))}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		subject := fmt.Sprintf("%s.%s", name, f.Name)
		if f.Name == "" {
			return nil, &paramtype.SchemaError{Subject: name, Reason: "field name cannot be empty"}
		}
		if _, dup := seen[f.Name]; dup {
			return nil, &paramtype.SchemaError{Subject: subject, Reason: "duplicate field name"}
		}
		seen[f.Name] = struct{}{}

		if err := f.Type.Validate(); err != nil {
			return nil, &paramtype.SchemaError{Subject: subject, Reason: err.Error()}
		}
		if err := checkNestedRefs(subject, f.Type); err != nil {
			return nil, err
		}

		if f.Default != nil {
			def, err := normalizeDefault(subject, f)
			if err != nil {
				return nil, err
			}
			f.Default = &def
		}
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustNew is like New but panics on error. It is intended for package-level
// schema declarations.
func MustNew(name string, fields []Field, opts ...Option) *Schema {
	s, err := New(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Nested returns the type of a field holding an instance of s.
func Nested(s *Schema) paramtype.Type { return paramtype.Nested(s) }

// SchemaName implements paramtype.Reference.
func (s *Schema) SchemaName() string { return s.name }

func (s *Schema) Name() string        { return s.name }
func (s *Schema) Description() string { return s.description }
func (s *Schema) FileName() string    { return s.fileName }
func (s *Schema) FileEnding() string  { return s.fileEnding }

// Fields returns the declared top-level fields, in declaration order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Field looks up a top-level field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Schema) String() string { return s.name }

// Deref returns the schema a nested type points at.
func Deref(t paramtype.Type) (*Schema, error) {
	if t.Kind() != paramtype.KindNested {
		return nil, &paramtype.SchemaError{Subject: t.String(), Reason: "not a nested type"}
	}
	s, ok := t.Ref().(*Schema)
	if !ok || s == nil {
		return nil, &paramtype.SchemaError{Subject: t.String(), Reason: "nested type cannot be flattened: it does not reference a parameter schema"}
	}
	return s, nil
}

// UnionMembers returns the schemas of a nested union, in declared order.
func UnionMembers(t paramtype.Type) ([]*Schema, error) {
	if !t.IsNestedUnion() {
		return nil, &paramtype.SchemaError{Subject: t.String(), Reason: "not a union of nested schemas"}
	}
	members := t.Members()
	out := make([]*Schema, len(members))
	for i, m := range members {
		s, err := Deref(m)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func checkNestedRefs(subject string, t paramtype.Type) error {
	switch {
	case t.Kind() == paramtype.KindNested:
		if _, err := Deref(t); err != nil {
			return &paramtype.SchemaError{Subject: subject, Reason: err.Error()}
		}
	case t.IsNestedUnion():
		if _, err := UnionMembers(t); err != nil {
			return &paramtype.SchemaError{Subject: subject, Reason: err.Error()}
		}
	}
	return nil
}

// normalizeDefault checks a declared default against the field type. Nested
// defaults are objects keyed by leaf names of the nested schema(s).
func normalizeDefault(subject string, f Field) (cty.Value, error) {
	def := *f.Default
	if def.IsNull() || !def.IsKnown() {
		return cty.NilVal, &paramtype.SchemaError{Subject: subject, Reason: "default value must be known and non-null"}
	}

	var known map[string]struct{}
	switch {
	case f.Type.Kind() == paramtype.KindNested:
		nested, _ := Deref(f.Type)
		known = nested.reachableSet()
	case f.Type.IsNestedUnion():
		members, _ := UnionMembers(f.Type)
		known = make(map[string]struct{})
		for _, m := range members {
			for name := range m.reachableSet() {
				known[name] = struct{}{}
			}
		}
	default:
		v, err := paramtype.Normalize(f.Name, def, f.Type)
		if err != nil {
			return cty.NilVal, &paramtype.SchemaError{Subject: subject, Reason: "invalid default: " + err.Error()}
		}
		return v, nil
	}

	if !def.Type().IsObjectType() && !def.Type().IsMapType() {
		return cty.NilVal, &paramtype.SchemaError{Subject: subject, Reason: "default of a nested field must be an object of leaf values"}
	}
	for it := def.ElementIterator(); it.Next(); {
		k, _ := it.Element()
		if _, ok := known[k.AsString()]; !ok {
			return cty.NilVal, &paramtype.SchemaError{Subject: subject, Reason: fmt.Sprintf("default sets unknown nested parameter %q", k.AsString())}
		}
	}
	return def, nil
}
