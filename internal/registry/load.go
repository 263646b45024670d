package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
)

// PopulateFromModel resolves every parameter set of the model into a schema
// and then every sweep. Nothing is registered unless the whole model
// resolves.
func (r *Registry) PopulateFromModel(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry resolving declarations...", "parameter_sets", len(model.Parameters), "sweeps", len(model.Sweeps))

	res := &resolver{
		reg:      r,
		decls:    make(map[string]*config.ParameterSet, len(model.Parameters)),
		built:    make(map[string]*schema.Schema, len(model.Parameters)),
		visiting: make(map[string]bool),
	}
	for _, set := range model.Parameters {
		if prev, dup := res.decls[set.Name]; dup {
			return &paramtype.SchemaError{
				Subject: set.Name,
				Reason:  fmt.Sprintf("declared in both %s and %s", prev.Source, set.Source),
			}
		}
		if _, exists := r.schemas[set.Name]; exists {
			return &paramtype.SchemaError{Subject: set.Name, Reason: "a schema with this name is already registered"}
		}
		res.decls[set.Name] = set
	}

	for _, set := range model.Parameters {
		if _, err := res.resolve(set.Name, nil); err != nil {
			return err
		}
	}

	sweeps, err := r.resolveSweeps(model.Sweeps, res.lookup)
	if err != nil {
		return err
	}

	for _, set := range model.Parameters {
		r.schemas[set.Name] = res.built[set.Name]
		r.schemaOrder = append(r.schemaOrder, set.Name)
		logger.Debug("Registered schema.", "schema", set.Name, "parameters", res.built[set.Name].Parameters())
	}
	for _, s := range sweeps {
		r.sweeps[s.Name] = s
		r.sweepOrder = append(r.sweepOrder, s.Name)
	}

	logger.Info("Registry loaded successfully.", "schemas", len(r.schemas), "sweeps", len(r.sweeps))
	return nil
}

// resolver builds schemas depth first so that references may appear in
// any order.
type resolver struct {
	reg      *Registry
	decls    map[string]*config.ParameterSet
	built    map[string]*schema.Schema
	visiting map[string]bool
}

// lookup finds a schema among the newly built and the already registered.
func (res *resolver) lookup(name string) (*schema.Schema, bool) {
	if s, ok := res.built[name]; ok {
		return s, true
	}
	return res.reg.Schema(name)
}

func (res *resolver) resolve(name string, chain []string) (*schema.Schema, error) {
	if s, ok := res.lookup(name); ok {
		return s, nil
	}
	chain = append(chain, name)
	if res.visiting[name] {
		return nil, &paramtype.SchemaError{
			Subject: name,
			Reason:  "reference cycle: " + strings.Join(chain, " -> "),
		}
	}
	decl, ok := res.decls[name]
	if !ok {
		return nil, &paramtype.SchemaError{Subject: name, Reason: "no parameters block or registered schema has this name"}
	}

	res.visiting[name] = true
	defer delete(res.visiting, name)

	fields := make([]schema.Field, len(decl.Params))
	for i, p := range decl.Params {
		typ, err := res.typeOf(p.Type, chain)
		if err != nil {
			return nil, fmt.Errorf("%s: in parameters %q, param %q: %w", decl.Source, decl.Name, p.Name, err)
		}
		fields[i] = schema.Field{
			Name:        p.Name,
			Type:        typ,
			Description: p.Description,
			Default:     p.Default,
		}
	}

	s, err := schema.New(decl.Name, fields,
		schema.WithDescription(decl.Description),
		schema.WithFileName(decl.FileName),
		schema.WithFileEnding(decl.FileEnding),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", decl.Source, err)
	}
	res.built[name] = s
	return s, nil
}

func (res *resolver) typeOf(expr config.TypeExpr, chain []string) (paramtype.Type, error) {
	switch expr.Kind {
	case paramtype.KindInteger:
		return paramtype.Integer(), nil
	case paramtype.KindFloat:
		return paramtype.Float(), nil
	case paramtype.KindString:
		return paramtype.String(), nil
	case paramtype.KindEnum:
		return paramtype.Enum(expr.Variants...), nil
	case paramtype.KindUnion:
		members := make([]paramtype.Type, len(expr.Members))
		for i, m := range expr.Members {
			t, err := res.typeOf(m, chain)
			if err != nil {
				return paramtype.Type{}, err
			}
			members[i] = t
		}
		return paramtype.Union(members...), nil
	case paramtype.KindNested:
		s, err := res.resolve(expr.Ref, chain)
		if err != nil {
			return paramtype.Type{}, err
		}
		return schema.Nested(s), nil
	default:
		return paramtype.Type{}, &paramtype.SchemaError{Subject: expr.String(), Reason: "unrecognized type expression"}
	}
}
