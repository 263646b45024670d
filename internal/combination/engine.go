package combination

import (
	"context"
	"fmt"

	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Fetcher returns the stored result of an instance.
type Fetcher interface {
	Fetch(ctx context.Context, inst *instance.Instance) (cty.Value, error)
}

// Row holds one instance per target schema, in target order.
type Row []*instance.Instance

// Engine builds instances of its target schemas for every axis combination.
type Engine struct {
	targets   []*schema.Schema
	reachable []map[string]struct{}
}

// New creates an engine over the given target schemas. Targets are checked
// up front; a nil or invalid target fails with *paramtype.SchemaError.
func New(targets ...*schema.Schema) (*Engine, error) {
	if len(targets) == 0 {
		return nil, &paramtype.SchemaError{Subject: "combination", Reason: "at least one target schema is required"}
	}
	e := &Engine{
		targets:   append([]*schema.Schema(nil), targets...),
		reachable: make([]map[string]struct{}, len(targets)),
	}
	for i, t := range targets {
		if t == nil {
			return nil, &paramtype.SchemaError{Subject: fmt.Sprintf("target %d", i), Reason: "not a parameter schema"}
		}
		set := make(map[string]struct{})
		for _, name := range t.ReachableParameters() {
			set[name] = struct{}{}
		}
		e.reachable[i] = set
	}
	return e, nil
}

// Targets returns the target schemas in order.
func (e *Engine) Targets() []*schema.Schema {
	return append([]*schema.Schema(nil), e.targets...)
}

// Combinations returns one row per combination of axis values. Each target
// only receives the axes that are among its parameters; an axis that no
// target knows fails with *paramtype.ValueError.
func (e *Engine) Combinations(axes *binding.Bindings) ([]Row, error) {
	for _, name := range axes.Names() {
		if !e.knows(name) {
			return nil, &paramtype.ValueError{
				Field:  name,
				Reason: "not a parameter of any target schema",
			}
		}
	}

	combos := axes.Combinations()
	rows := make([]Row, len(combos))
	for r, combo := range combos {
		row := make(Row, len(e.targets))
		for i, target := range e.targets {
			inst, err := instance.FromFlatParams(target, e.restrict(i, combo))
			if err != nil {
				return nil, fmt.Errorf("combination %d, %s: %w", r, target.Name(), err)
			}
			row[i] = inst
		}
		rows[r] = row
	}
	return rows, nil
}

// Instances returns every instance of every row, row by row.
func (e *Engine) Instances(axes *binding.Bindings) ([]*instance.Instance, error) {
	rows, err := e.Combinations(axes)
	if err != nil {
		return nil, err
	}
	out := make([]*instance.Instance, 0, len(rows)*len(e.targets))
	for _, row := range rows {
		out = append(out, row...)
	}
	return out, nil
}

// ResultsTable fetches the result of every instance of every row. Columns
// are the first target's parameters followed by one column per target.
func (e *Engine) ResultsTable(ctx context.Context, axes *binding.Bindings, f Fetcher) (*Table, error) {
	logger := ctxlog.FromContext(ctx)

	if err := schema.CheckCompatible(e.targets...); err != nil {
		return nil, err
	}
	rows, err := e.Combinations(axes)
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: e.columns(rows)}
	params := len(table.Columns) - len(e.targets)
	for r, row := range rows {
		leaves := row[0].Leaves()
		if len(leaves) != params {
			return nil, fmt.Errorf("row %d of %s has %d parameters, expected %d", r, e.targets[0].Name(), len(leaves), params)
		}

		cells := make([]cty.Value, 0, len(table.Columns))
		for _, l := range leaves {
			cells = append(cells, l.Value)
		}
		for _, inst := range row {
			v, err := f.Fetch(ctx, inst)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			cells = append(cells, v)
		}
		logger.Debug("Collected results row.", "row", r, "instance", row[0].String())
		table.Rows = append(table.Rows, cells)
	}

	logger.Info("Results table collected.", "rows", len(table.Rows), "columns", len(table.Columns))
	return table, nil
}

func (e *Engine) columns(rows []Row) []string {
	var params []string
	if len(rows) > 0 {
		for _, l := range rows[0][0].Leaves() {
			params = append(params, l.Field.Name)
		}
	} else {
		params = e.targets[0].Parameters()
	}
	cols := append([]string(nil), params...)
	for _, t := range e.targets {
		cols = append(cols, t.Name())
	}
	return cols
}

func (e *Engine) knows(name string) bool {
	for _, set := range e.reachable {
		if _, ok := set[name]; ok {
			return true
		}
	}
	return false
}

func (e *Engine) restrict(target int, combo map[string]cty.Value) map[string]cty.Value {
	out := make(map[string]cty.Value, len(combo))
	for name, v := range combo {
		if _, ok := e.reachable[target][name]; ok {
			out[name] = v
		}
	}
	return out
}
