package schema

// FlattenOptions controls which single-variant enum fields are dropped.
// Minimal applies to the schema's own fields and MinimalChildren to every
// nested schema below it.
type FlattenOptions struct {
	Minimal         bool
	MinimalChildren bool
}

// Flatten walks the declared fields depth-first and returns the ordered leaf
// fields. Nested schemas are spliced in place; unions, including unions of
// nested schemas, stay a single leaf. With minimal set, single-variant enums
// are skipped at every level.
func (s *Schema) Flatten(minimal bool) []Field {
	return s.FlattenWith(FlattenOptions{Minimal: minimal, MinimalChildren: minimal})
}

// FlattenWith is Flatten with independent control over nested minimality.
func (s *Schema) FlattenWith(opts FlattenOptions) []Field {
	var out []Field
	for _, f := range s.fields {
		if opts.Minimal && f.Type.IsSingleVariant() {
			continue
		}
		nested, err := Deref(f.Type)
		if err != nil {
			out = append(out, f)
			continue
		}
		out = append(out, nested.FlattenWith(FlattenOptions{
			Minimal:         opts.MinimalChildren,
			MinimalChildren: opts.MinimalChildren,
		})...)
	}
	return out
}

// Parameters returns the names of the flattened leaf fields.
func (s *Schema) Parameters() []string {
	return names(s.Flatten(false))
}

// MinimalParameters returns the names of the leaf fields that discriminate
// between instances, i.e. Parameters without single-variant enums.
func (s *Schema) MinimalParameters() []string {
	return names(s.Flatten(true))
}

// ReachableParameters returns Parameters with every nested union expanded
// into the leaf names of all its members. It is the set of names a flat
// parameter mapping may legally use.
func (s *Schema) ReachableParameters() []string {
	var out []string
	seen := make(map[string]struct{})
	var walk func(*Schema)
	walk = func(cur *Schema) {
		for _, f := range cur.Flatten(false) {
			if f.Type.IsNestedUnion() {
				members, _ := UnionMembers(f.Type)
				for _, m := range members {
					walk(m)
				}
				continue
			}
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			out = append(out, f.Name)
		}
	}
	walk(s)
	return out
}

func (s *Schema) reachableSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range s.ReachableParameters() {
		set[name] = struct{}{}
	}
	return set
}

func names(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
