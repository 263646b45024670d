package pathcodec

import (
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
)

// UnknownUnionSuffix names the opaque wildcard standing in for the diverging
// tail of a union of nested schemas.
const UnknownUnionSuffix = "_unknown_union_params"

const anyRegex = ".*"

// slot is one segment position of a template.
type slot struct {
	name   string
	typ    paramtype.Type
	opaque bool
}

func (s slot) regex() (string, error) {
	if s.opaque {
		return anyRegex, nil
	}
	return paramtype.RegexFor(s.typ)
}

// templateSlots lists the segment positions of s in flattening order.
// Unions of nested schemas contribute the leaves shared by all members,
// compared by name, and one opaque slot for the rest.
func templateSlots(s *schema.Schema) ([]slot, error) {
	return slotsFor(s.Flatten(false))
}

func slotsFor(fields []schema.Field) ([]slot, error) {
	var out []slot
	for _, f := range fields {
		if !f.Type.IsNestedUnion() {
			out = append(out, slot{name: f.Name, typ: f.Type})
			continue
		}

		members, err := schema.UnionMembers(f.Type)
		if err != nil {
			return nil, err
		}
		shared, remainder := sharedPrefix(members)
		sharedSlots, err := slotsFor(shared)
		if err != nil {
			return nil, err
		}
		out = append(out, sharedSlots...)
		if remainder {
			out = append(out, slot{name: f.Name + UnknownUnionSuffix, opaque: true})
		}
	}
	return out, nil
}

// sharedPrefix returns the longest leading run of leaf fields whose names
// agree across all members, taking types from the first member, and whether
// any member has fields beyond that run.
func sharedPrefix(members []*schema.Schema) ([]schema.Field, bool) {
	leaves := make([][]schema.Field, len(members))
	shortest := -1
	for i, m := range members {
		leaves[i] = m.Flatten(false)
		if shortest < 0 || len(leaves[i]) < shortest {
			shortest = len(leaves[i])
		}
	}

	n := 0
	for ; n < shortest; n++ {
		name := leaves[0][n].Name
		same := true
		for _, l := range leaves[1:] {
			if l[n].Name != name {
				same = false
				break
			}
		}
		if !same {
			break
		}
	}

	remainder := false
	for _, l := range leaves {
		if len(l) > n {
			remainder = true
			break
		}
	}
	return leaves[0][:n], remainder
}

// Fields returns the names a template for s can bind, in segment order.
func Fields(s *schema.Schema) ([]string, error) {
	slots, err := templateSlots(s)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(slots))
	for i, sl := range slots {
		names[i] = sl.name
	}
	return names, nil
}
