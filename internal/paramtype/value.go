package paramtype

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// CtyType returns the cty type that leaf values of t are stored as. Unions
// and nested schemas have no single representation.
func (t Type) CtyType() cty.Type {
	switch t.kind {
	case KindInteger, KindFloat:
		return cty.Number
	case KindString, KindEnum:
		return cty.String
	default:
		return cty.DynamicPseudoType
	}
}

// Format renders a primitive leaf value as path segment text. Numbers never
// use exponent notation so that they stay inside the Float regex.
func Format(v cty.Value) (string, error) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("cannot format a null or unknown value")
	}
	switch {
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case v.Type() == cty.String:
		return v.AsString(), nil
	default:
		return "", fmt.Errorf("cannot format a value of type %s as a path segment", v.Type().FriendlyName())
	}
}

// Normalize converts v into the representation of t and checks it against
// the type's validity rule. field names the owner for error reporting.
func Normalize(field string, v cty.Value, t Type) (cty.Value, error) {
	converted, _, err := NormalizeSegment(field, v, t)
	return converted, err
}

// NormalizeSegment is Normalize that also returns the path segment for the
// value. Text input keeps its spelling once it passes the validity rule, so
// "0.50" converts to the number 0.5 but still resolves to the segment "0.50".
// Other input is rendered with Format.
func NormalizeSegment(field string, v cty.Value, t Type) (cty.Value, string, error) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return cty.NilVal, "", &ValueError{Field: field, Value: "<null>", Reason: "a value is required"}
	}

	switch t.kind {
	case KindInteger, KindFloat, KindString, KindEnum:
		converted, err := convert.Convert(v, t.CtyType())
		if err != nil {
			return cty.NilVal, "", &ValueError{Field: field, Value: display(v), Reason: fmt.Sprintf("not convertible to %s", t)}
		}
		var segment string
		if v.Type() == cty.String {
			segment = v.AsString()
		} else if segment, err = Format(converted); err != nil {
			return cty.NilVal, "", &ValueError{Field: field, Value: display(v), Reason: err.Error()}
		}
		ok, err := IsValid(segment, t)
		if err != nil {
			return cty.NilVal, "", err
		}
		if !ok {
			return cty.NilVal, "", &ValueError{Field: field, Value: segment, Reason: fmt.Sprintf("not a valid %s", t)}
		}
		return converted, segment, nil

	case KindUnion:
		if err := t.Validate(); err != nil {
			return cty.NilVal, "", err
		}
		if t.IsNestedUnion() {
			return cty.NilVal, "", &SchemaError{Subject: t.String(), Reason: "nested union values are instances, not primitive values"}
		}
		for _, m := range t.members {
			if converted, segment, err := NormalizeSegment(field, v, m); err == nil {
				return converted, segment, nil
			}
		}
		return cty.NilVal, "", &ValueError{Field: field, Value: display(v), Reason: fmt.Sprintf("accepted by no member of %s", t)}

	case KindNested:
		return cty.NilVal, "", &SchemaError{Subject: t.String(), Reason: "nested values are instances, not primitive values"}

	default:
		return cty.NilVal, "", &SchemaError{Subject: t.String(), Reason: "unrecognized type"}
	}
}

// ValueOf converts a native Go value (int, float64, string, ...) into a
// cty.Value. A cty.Value is returned unchanged.
func ValueOf(v any) (cty.Value, error) {
	if cv, ok := v.(cty.Value); ok {
		return cv, nil
	}
	if v == nil {
		return cty.NilVal, fmt.Errorf("cannot convert nil to a parameter value")
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// MustValueOf is like ValueOf but panics on error.
func MustValueOf(v any) cty.Value {
	cv, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return cv
}

func display(v cty.Value) string {
	if s, err := Format(v); err == nil {
		return s
	}
	return v.GoString()
}
