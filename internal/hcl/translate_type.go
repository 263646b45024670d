// This file contains the logic for parsing HCL type expressions (e.g., `int`,
// `enum("a", "b")`, `union(int, Config)`) into config.TypeExpr values.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ParseTypeExpr converts an HCL type expression into its config.TypeExpr
// equivalent. Any identifier that is not a primitive keyword is taken as a
// reference to another parameters block.
func ParseTypeExpr(ctx context.Context, expr hcl.Expression) (config.TypeExpr, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return config.TypeExpr{}, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		switch rootName {
		case "int", "integer":
			return config.TypeExpr{Kind: paramtype.KindInteger}, nil
		case "float", "number":
			return config.TypeExpr{Kind: paramtype.KindFloat}, nil
		case "string", "str":
			return config.TypeExpr{Kind: paramtype.KindString}, nil
		default:
			logger.Debug("Parsing type expression as a nested reference.", "ref", rootName)
			return config.TypeExpr{Kind: paramtype.KindNested, Ref: rootName}, nil
		}

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a function call.", "call", v.Name)
		switch v.Name {
		case "enum":
			if len(v.Args) == 0 {
				return config.TypeExpr{}, fmt.Errorf("the enum() type constructor requires at least one variant")
			}
			variants := make([]string, len(v.Args))
			for i, arg := range v.Args {
				variant, err := enumVariant(arg)
				if err != nil {
					return config.TypeExpr{}, fmt.Errorf("enum variant %d: %w", i+1, err)
				}
				variants[i] = variant
			}
			return config.TypeExpr{Kind: paramtype.KindEnum, Variants: variants}, nil

		case "union":
			if len(v.Args) == 0 {
				return config.TypeExpr{}, fmt.Errorf("the union() type constructor requires at least one member")
			}
			members := make([]config.TypeExpr, len(v.Args))
			for i, arg := range v.Args {
				m, err := ParseTypeExpr(ctx, arg)
				if err != nil {
					return config.TypeExpr{}, fmt.Errorf("union member %d: %w", i+1, err)
				}
				members[i] = m
			}
			return config.TypeExpr{Kind: paramtype.KindUnion, Members: members}, nil

		default:
			return config.TypeExpr{}, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.TemplateExpr:
		return config.TypeExpr{}, fmt.Errorf("type expressions are keywords, not strings: write int instead of \"int\"")

	default:
		return config.TypeExpr{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// ParseTypeString parses a type expression given as source text, as used by
// declaration formats other than HCL.
func ParseTypeString(ctx context.Context, src string) (config.TypeExpr, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "type", hcl.InitialPos)
	if diags.HasErrors() {
		return config.TypeExpr{}, fmt.Errorf("invalid type expression %q: %w", src, diags)
	}
	return ParseTypeExpr(ctx, expr)
}

func enumVariant(expr hcl.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("variant must be a literal string")
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("variant must be a literal string: %w", err)
	}
	return s.AsString(), nil
}
