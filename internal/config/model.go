package config

import (
	"fmt"
	"strings"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every declaration
// loaded from one or more files. Slices keep declaration order.
type Model struct {
	Parameters []*ParameterSet
	Sweeps     []*Sweep
}

// Merge appends the declarations of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Parameters = append(m.Parameters, other.Parameters...)
	m.Sweeps = append(m.Sweeps, other.Sweeps...)
}

// ParameterSet is the format-agnostic representation of a `parameters` block.
type ParameterSet struct {
	Name        string
	Description string
	FileName    string
	FileEnding  string
	Params      []*ParamDefinition
	// Source is the file the block was read from, for error messages.
	Source string
}

// ParamDefinition declares a single parameter of a set.
type ParamDefinition struct {
	Name        string
	Type        TypeExpr
	Description string
	Default     *cty.Value
}

// TypeExpr is a parsed, unresolved type expression. Nested references are
// kept by name until the registry resolves them.
type TypeExpr struct {
	Kind     paramtype.Kind
	Variants []string   // KindEnum
	Members  []TypeExpr // KindUnion
	Ref      string     // KindNested
}

func (t TypeExpr) String() string {
	switch t.Kind {
	case paramtype.KindEnum:
		quoted := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return "enum(" + strings.Join(quoted, ", ") + ")"
	case paramtype.KindUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return "union(" + strings.Join(parts, ", ") + ")"
	case paramtype.KindNested:
		return t.Ref
	default:
		return t.Kind.String()
	}
}

// Refs returns every parameter set name the expression refers to.
func (t TypeExpr) Refs() []string {
	switch t.Kind {
	case paramtype.KindNested:
		return []string{t.Ref}
	case paramtype.KindUnion:
		var out []string
		for _, m := range t.Members {
			out = append(out, m.Refs()...)
		}
		return out
	default:
		return nil
	}
}

// Sweep is the format-agnostic representation of a `sweep` block: the
// target parameter sets and the ordered axes to combine.
type Sweep struct {
	Name    string
	Targets []string
	Axes    []*Axis
	Source  string
}

// Axis binds a parameter name to one or more candidate values.
type Axis struct {
	Name   string
	Values []cty.Value
}
