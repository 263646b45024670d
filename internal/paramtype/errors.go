package paramtype

import "fmt"

// SchemaError reports a malformed or unreflectable type declaration. It is a
// programming error in the schema, never a data error.
type SchemaError struct {
	Subject string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.Subject == "" {
		return "schema error: " + e.Reason
	}
	return fmt.Sprintf("schema error in %s: %s", e.Subject, e.Reason)
}

// ValueError reports a bound or supplied value that its field cannot accept.
type ValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q: %s", e.Value, e.Field, e.Reason)
}
