package paramtype

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of semantic types a parameter field may declare.
type Kind int

const (
	KindInvalid Kind = iota
	KindInteger
	KindFloat
	KindString
	KindEnum
	KindUnion
	KindNested
)

// String returns the keyword used for the kind in declaration files.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindNested:
		return "nested"
	default:
		return "invalid"
	}
}

// Reference is a schema that can be nested inside a field. The schema
// package provides the only implementation; keeping it an interface here
// lets the type codec stay free of schema reflection.
type Reference interface {
	SchemaName() string
}

// Type is a semantic parameter type. The zero value is KindInvalid and is
// rejected by every codec operation.
type Type struct {
	kind     Kind
	variants []string
	members  []Type
	ref      Reference
}

// Integer returns the non-negative integer type.
func Integer() Type { return Type{kind: KindInteger} }

// Float returns the signed decimal type.
func Float() Type { return Type{kind: KindFloat} }

// String returns the word-character string type.
func String() Type { return Type{kind: KindString} }

// Enum returns a type admitting exactly the given literal variants, in order.
func Enum(variants ...string) Type {
	return Type{kind: KindEnum, variants: append([]string(nil), variants...)}
}

// Union returns a type admitting any value one of its members admits.
func Union(members ...Type) Type {
	return Type{kind: KindUnion, members: append([]Type(nil), members...)}
}

// Nested returns a type whose value is an instance of another schema.
func Nested(ref Reference) Type {
	return Type{kind: KindNested, ref: ref}
}

func (t Type) Kind() Kind { return t.kind }

// Variants returns a copy of the enum variants.
func (t Type) Variants() []string { return append([]string(nil), t.variants...) }

// Members returns a copy of the union members.
func (t Type) Members() []Type { return append([]Type(nil), t.members...) }

// Ref returns the nested schema reference, or nil.
func (t Type) Ref() Reference { return t.ref }

// IsSingleVariant reports whether t is an enum with exactly one variant. Such
// a field never discriminates between instances.
func (t Type) IsSingleVariant() bool {
	return t.kind == KindEnum && len(t.variants) == 1
}

// IsNestedUnion reports whether t is a union whose members are all nested
// schemas.
func (t Type) IsNestedUnion() bool {
	if t.kind != KindUnion || len(t.members) == 0 {
		return false
	}
	for _, m := range t.members {
		if m.kind != KindNested {
			return false
		}
	}
	return true
}

// Validate checks that t is a finite composition of recognized kinds.
func (t Type) Validate() error {
	switch t.kind {
	case KindInteger, KindFloat, KindString:
		return nil
	case KindEnum:
		if len(t.variants) == 0 {
			return &SchemaError{Subject: t.String(), Reason: "enum must declare at least one variant"}
		}
		seen := make(map[string]struct{}, len(t.variants))
		for _, v := range t.variants {
			if _, dup := seen[v]; dup {
				return &SchemaError{Subject: t.String(), Reason: fmt.Sprintf("duplicate enum variant %q", v)}
			}
			seen[v] = struct{}{}
		}
		return nil
	case KindUnion:
		if len(t.members) == 0 {
			return &SchemaError{Subject: t.String(), Reason: "union must declare at least one member"}
		}
		nested := 0
		for _, m := range t.members {
			if err := m.Validate(); err != nil {
				return err
			}
			if m.kind == KindNested {
				nested++
			}
			if m.kind == KindUnion {
				return &SchemaError{Subject: t.String(), Reason: "unions cannot contain unions"}
			}
		}
		if nested > 0 && nested != len(t.members) {
			return &SchemaError{Subject: t.String(), Reason: "a union cannot mix nested schemas with primitive types"}
		}
		return nil
	case KindNested:
		if t.ref == nil {
			return &SchemaError{Subject: t.String(), Reason: "nested type has no schema"}
		}
		return nil
	default:
		return &SchemaError{Subject: t.String(), Reason: "unrecognized type"}
	}
}

// String renders t in declaration-file syntax, e.g. enum("a", "b").
func (t Type) String() string {
	switch t.kind {
	case KindInteger, KindFloat, KindString:
		return t.kind.String()
	case KindEnum:
		quoted := make([]string, len(t.variants))
		for i, v := range t.variants {
			quoted[i] = strconv.Quote(v)
		}
		return "enum(" + strings.Join(quoted, ", ") + ")"
	case KindUnion:
		names := make([]string, len(t.members))
		for i, m := range t.members {
			names[i] = m.String()
		}
		return "union(" + strings.Join(names, ", ") + ")"
	case KindNested:
		if t.ref == nil {
			return "nested(<nil>)"
		}
		return t.ref.SchemaName()
	default:
		return "invalid"
	}
}
