package paramtype

import (
	"regexp"
	"strconv"
	"strings"
)

// Regex fragments in the dialect of the workflow engine's wildcard syntax.
const (
	integerRegex = `\d+`
	floatRegex   = `[+-]?([0-9]*[.])?[0-9]+`
	stringRegex  = `\w+`
)

// floatPattern accepts exactly the segments floatRegex matches. Exponents,
// infinities and NaN are not float segments.
var floatPattern = regexp.MustCompile(`^(?:` + floatRegex + `)$`)

// RegexFor compiles t into a regex fragment usable inside a `{name,regex}`
// wildcard marker.
func RegexFor(t Type) (string, error) {
	switch t.kind {
	case KindInteger:
		return integerRegex, nil
	case KindFloat:
		return floatRegex, nil
	case KindString:
		return stringRegex, nil
	case KindEnum:
		if len(t.variants) == 0 {
			return "", &SchemaError{Subject: t.String(), Reason: "enum must declare at least one variant"}
		}
		alts := make([]string, len(t.variants))
		for i, v := range t.variants {
			alts[i] = regexp.QuoteMeta(v)
		}
		return strings.Join(alts, "|"), nil
	case KindUnion:
		if len(t.members) == 0 {
			return "", &SchemaError{Subject: t.String(), Reason: "union must declare at least one member"}
		}
		alts := make([]string, len(t.members))
		for i, m := range t.members {
			frag, err := RegexFor(m)
			if err != nil {
				return "", err
			}
			alts[i] = frag
		}
		return strings.Join(alts, "|"), nil
	case KindNested:
		return "", &SchemaError{Subject: t.String(), Reason: "a nested schema has no single-segment regex"}
	default:
		return "", &SchemaError{Subject: t.String(), Reason: "unrecognized type"}
	}
}

// IsValid reports whether the path segment s is an acceptable value of t.
func IsValid(s string, t Type) (bool, error) {
	switch t.kind {
	case KindInteger:
		return isDigits(s), nil
	case KindFloat:
		if !floatPattern.MatchString(s) {
			return false, nil
		}
		_, err := strconv.ParseFloat(s, 64)
		return err == nil, nil
	case KindString:
		return true, nil
	case KindEnum:
		for _, v := range t.variants {
			if v == s {
				return true, nil
			}
		}
		return false, nil
	case KindUnion:
		if len(t.members) == 0 {
			return false, &SchemaError{Subject: t.String(), Reason: "union must declare at least one member"}
		}
		for _, m := range t.members {
			ok, err := IsValid(s, m)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case KindNested:
		return false, &SchemaError{Subject: t.String(), Reason: "a nested schema cannot be validated as a single segment"}
	default:
		return false, &SchemaError{Subject: t.String(), Reason: "unrecognized type"}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
