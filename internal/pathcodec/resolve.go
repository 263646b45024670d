package pathcodec

import (
	"fmt"
	"sort"

	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/schema"
)

// Resolve returns the concrete path of inst: one segment per flattened leaf
// value, then the schema's file name segment and file ending. A leaf given
// as text resolves to that text, the way Input and Templates render it.
func (c *Codec) Resolve(inst *instance.Instance) (string, error) {
	leaves := inst.Leaves()
	segments := make([]string, len(leaves))
	for i, l := range leaves {
		s, err := l.Segment()
		if err != nil {
			return "", fmt.Errorf("resolving %s, field %q: %w", inst.Schema().Name(), l.Field.Name, err)
		}
		segments[i] = s
	}
	s := inst.Schema()
	return c.join(segments, s.FileName(), s.FileEnding()), nil
}

// ResolveAll resolves every instance, preserving order.
func (c *Codec) ResolveAll(insts []*instance.Instance) ([]string, error) {
	out := make([]string, len(insts))
	for i, inst := range insts {
		p, err := c.Resolve(inst)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Input builds the path of s from a workflow engine's wildcard values.
// Wildcards that are not fields of s are ignored; fields without a wildcard
// stay wildcards in the result.
func (c *Codec) Input(s *schema.Schema, wildcards map[string]string) (string, error) {
	names, err := Fields(s)
	if err != nil {
		return "", err
	}
	return c.Template(s, binding.FromStrings(names, wildcards))
}

// MissingWildcards lists the fields of s a wildcard mapping leaves unset,
// sorted by name. Single-variant enums are never missing.
func MissingWildcards(s *schema.Schema, wildcards map[string]string) ([]string, error) {
	slots, err := templateSlots(s)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, sl := range slots {
		if _, ok := wildcards[sl.name]; ok || sl.typ.IsSingleVariant() {
			continue
		}
		missing = append(missing, sl.name)
	}
	sort.Strings(missing)
	return missing, nil
}
