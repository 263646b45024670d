// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic declaration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateParameterSet converts a `parameters` block into the agnostic model.
func translateParameterSet(ctx context.Context, p *parametersBlock, file string) (*config.ParameterSet, error) {
	logger := ctxlog.FromContext(ctx).With("parameters", p.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL parameters block to internal config model.")

	set := &config.ParameterSet{
		Name:        p.Name,
		Description: p.Description,
		FileName:    p.FileName,
		FileEnding:  p.FileEnding,
		Source:      file,
	}
	seen := make(map[string]struct{}, len(p.Params))
	for _, in := range p.Params {
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("%s: parameters %q declares param %q more than once", file, p.Name, in.Name)
		}
		seen[in.Name] = struct{}{}

		def, err := translateParam(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("%s: in parameters %q, param %q: %w", file, p.Name, in.Name, err)
		}
		set.Params = append(set.Params, def)
	}
	return set, nil
}

// translateParam processes a single `param` block, handling its default
// value and type parsing.
func translateParam(ctx context.Context, in *paramBlock) (*config.ParamDefinition, error) {
	var defaultVal *cty.Value
	if isExprDefined(ctx, in.Default, "default") {
		val, diags := in.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value: %w", diags)
		}
		if !val.IsNull() {
			defaultVal = &val
		}
	}

	parsedType, err := ParseTypeExpr(ctx, in.Type)
	if err != nil {
		return nil, err
	}

	return &config.ParamDefinition{
		Name:        in.Name,
		Type:        parsedType,
		Description: in.Description,
		Default:     defaultVal,
	}, nil
}

// translateSweep converts a `sweep` block into the agnostic model.
func translateSweep(ctx context.Context, s *sweepBlock, file string) (*config.Sweep, error) {
	ctxlog.FromContext(ctx).Debug("Translating HCL sweep block.", "sweep", s.Name, "axes", len(s.Axes))

	sweep := &config.Sweep{Name: s.Name, Targets: s.Targets, Source: file}
	seen := make(map[string]struct{}, len(s.Axes))
	for _, a := range s.Axes {
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("%s: sweep %q declares axis %q more than once", file, s.Name, a.Name)
		}
		seen[a.Name] = struct{}{}

		values, err := axisValues(a.Values)
		if err != nil {
			return nil, fmt.Errorf("%s: in sweep %q, axis %q: %w", file, s.Name, a.Name, err)
		}
		sweep.Axes = append(sweep.Axes, &config.Axis{Name: a.Name, Values: values})
	}
	return sweep, nil
}

// axisValues evaluates an axis expression. A list or tuple gives one value
// per element; any other value is a single-valued axis.
func axisValues(expr hcl.Expression) ([]cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("values must be a literal value or list of values")
	}

	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return []cty.Value{val}, nil
	}
	values := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		values = append(values, v)
	}
	return values, nil
}
