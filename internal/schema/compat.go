package schema

import (
	"fmt"
	"slices"
)

// CompatibilityError reports two schemas whose flattened parameter names
// differ, so their instances cannot share one tabular row layout.
type CompatibilityError struct {
	Left, Right             string
	LeftParams, RightParams []string
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("schema %s has other parameters than %s: %v != %v; their results cannot be combined",
		e.Right, e.Left, e.RightParams, e.LeftParams)
}

// Compatible returns a *CompatibilityError unless a and b flatten to the
// same leaf names in the same order.
func Compatible(a, b *Schema) error {
	left, right := a.Parameters(), b.Parameters()
	if slices.Equal(left, right) {
		return nil
	}
	return &CompatibilityError{
		Left:        a.Name(),
		Right:       b.Name(),
		LeftParams:  left,
		RightParams: right,
	}
}

// CheckCompatible checks every schema against the first one.
func CheckCompatible(schemas ...*Schema) error {
	for i := 1; i < len(schemas); i++ {
		if err := Compatible(schemas[0], schemas[i]); err != nil {
			return err
		}
	}
	return nil
}
