package pathcodec

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoMatch is returned by Match when a path is not the resolved path of
// any instance of the schema.
var ErrNoMatch = errors.New("path does not match schema")

// Match parses a path produced by Resolve back into an instance of s. Each
// member of a nested union is tried in declared order; the first layout that
// matches and resolves back to the same path wins.
func (c *Codec) Match(s *schema.Schema, path string) (*instance.Instance, error) {
	var lastErr error
	for _, leaves := range leafVariants(s.Flatten(false)) {
		re, err := c.variantRegex(s, leaves)
		if err != nil {
			return nil, err
		}
		m := re.FindStringSubmatch(path)
		if m == nil {
			continue
		}

		flat, ok := capturedParams(re, m, leaves)
		if !ok {
			continue
		}
		inst, err := instance.FromFlatParams(s, flat)
		if err != nil {
			lastErr = err
			continue
		}
		resolved, err := c.Resolve(inst)
		if err != nil {
			return nil, err
		}
		if resolved != path {
			lastErr = fmt.Errorf("parsed parameters resolve to %q", resolved)
			continue
		}
		return inst, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrNoMatch, s.Name(), path, lastErr)
	}
	return nil, fmt.Errorf("%w: %s %q", ErrNoMatch, s.Name(), path)
}

func (c *Codec) variantRegex(s *schema.Schema, leaves []schema.Field) (*regexp.Regexp, error) {
	groups := make([]string, len(leaves))
	for i, f := range leaves {
		frag, err := paramtype.RegexFor(f.Type)
		if err != nil {
			return nil, err
		}
		groups[i] = fmt.Sprintf("(?P<f%d>%s)", i, frag)
	}

	var b strings.Builder
	b.WriteString("^")
	parts := append([]string(nil), groups...)
	if s.FileName() != "" {
		parts = append(parts, regexp.QuoteMeta(s.FileName()))
	}
	if len(parts) == 0 {
		b.WriteString(regexp.QuoteMeta(c.dataFolder))
	} else {
		b.WriteString(regexp.QuoteMeta(c.prefix()))
		b.WriteString(strings.Join(parts, regexp.QuoteMeta(Separator)))
	}
	b.WriteString(regexp.QuoteMeta(s.FileEnding()))
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// capturedParams maps the captured segments to field names. A name captured
// twice with different text makes the layout inconsistent.
func capturedParams(re *regexp.Regexp, m []string, leaves []schema.Field) (map[string]cty.Value, bool) {
	flat := make(map[string]cty.Value, len(leaves))
	for i, f := range leaves {
		text := m[re.SubexpIndex(fmt.Sprintf("f%d", i))]
		if prev, ok := flat[f.Name]; ok && prev.AsString() != text {
			return nil, false
		}
		flat[f.Name] = cty.StringVal(text)
	}
	return flat, true
}

// leafVariants expands every nested union into one leaf layout per member.
func leafVariants(fields []schema.Field) [][]schema.Field {
	out := [][]schema.Field{{}}
	for _, f := range fields {
		options := [][]schema.Field{{f}}
		if f.Type.IsNestedUnion() {
			members, err := schema.UnionMembers(f.Type)
			if err != nil {
				continue
			}
			options = nil
			for _, m := range members {
				options = append(options, leafVariants(m.Flatten(false))...)
			}
		}

		next := make([][]schema.Field, 0, len(out)*len(options))
		for _, prefix := range out {
			for _, opt := range options {
				layout := make([]schema.Field, 0, len(prefix)+len(opt))
				layout = append(layout, prefix...)
				layout = append(layout, opt...)
				next = append(next, layout)
			}
		}
		out = next
	}
	return out
}
