package yamlconfig

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func isEmpty(n *yaml.Node) bool {
	return n.Kind == 0
}

// nodeValue converts a decoded YAML node into a cty value: scalars by their
// resolved tag, sequences to tuples and mappings to objects.
func nodeValue(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return nodeValue(n.Content[0])

	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return cty.NullVal(cty.DynamicPseudoType), nil
		case "!!int", "!!float":
			v, err := cty.ParseNumberVal(n.Value)
			if err != nil {
				return cty.NilVal, fmt.Errorf("line %d: %q is not a decimal number", n.Line, n.Value)
			}
			return v, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return cty.BoolVal(b), nil
		default:
			return cty.StringVal(n.Value), nil
		}

	case yaml.SequenceNode:
		elems := make([]cty.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil

	case yaml.MappingNode:
		attrs := make(map[string]cty.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = v
		}
		return cty.ObjectVal(attrs), nil

	default:
		return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}
