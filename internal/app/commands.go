package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/combination"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/resultstore"
	"github.com/zclconf/go-cty/cty"
)

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int // -1 is unbounded
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"list": {
		usage: "", summary: "List declared schemas and sweeps.",
		minArgs: 0, maxArgs: 0, run: (*App).list,
	},
	"params": {
		usage: "SCHEMA", summary: "Print the flattened parameter names of a schema (-minimal drops fixed fields).",
		minArgs: 1, maxArgs: 1, run: (*App).params,
	},
	"describe": {
		usage: "SCHEMA", summary: "Print a schema, its template and its parameters as YAML.",
		minArgs: 1, maxArgs: 1, run: (*App).describe,
	},
	"template": {
		usage: "SCHEMA [name=v1,v2 ...]", summary: "Print wildcard path templates, one per combination of forced values.",
		minArgs: 1, maxArgs: -1, run: (*App).template,
	},
	"resolve": {
		usage: "SCHEMA [name=value ...]", summary: "Print the path of the instance built from the given parameters and defaults.",
		minArgs: 1, maxArgs: -1, run: (*App).resolve,
	},
	"input": {
		usage: "SCHEMA [wildcard=value ...]", summary: "Print the path for a set of workflow wildcards, ignoring unrelated ones.",
		minArgs: 1, maxArgs: -1, run: (*App).input,
	},
	"match": {
		usage: "SCHEMA PATH", summary: "Print the parameters encoded in a resolved path.",
		minArgs: 2, maxArgs: 2, run: (*App).match,
	},
	"store": {
		usage: "SCHEMA VALUE [name=value ...]", summary: "Store a result for an instance.",
		minArgs: 2, maxArgs: -1, run: (*App).storeResult,
	},
	"fetch": {
		usage: "SCHEMA [name=value ...]", summary: "Print the stored result of an instance.",
		minArgs: 1, maxArgs: -1, run: (*App).fetch,
	},
	"paths": {
		usage: "SWEEP", summary: "Print the path of every instance in a sweep.",
		minArgs: 1, maxArgs: 1, run: (*App).paths,
	},
	"table": {
		usage: "SWEEP", summary: "Print the results table of a sweep (-format text|csv|yaml).",
		minArgs: 1, maxArgs: 1, run: (*App).table,
	},
}

// CommandNames returns the known command names in lexical order.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandUsage returns one usage line per command, for help output.
func CommandUsage() []string {
	var lines []string
	for _, name := range CommandNames() {
		cmd := commands[name]
		lines = append(lines, fmt.Sprintf("%s %s\n      %s", name, cmd.usage, cmd.summary))
	}
	return lines
}

func (a *App) list(_ context.Context, _ []string) error {
	for _, s := range a.registry.Schemas() {
		fmt.Fprintf(a.outW, "schema %s\t%s\n", s.Name(), s.Description())
	}
	for _, sw := range a.registry.Sweeps() {
		targets := make([]string, len(sw.Targets))
		for i, t := range sw.Targets {
			targets[i] = t.Name()
		}
		fmt.Fprintf(a.outW, "sweep %s\t%s (%d combinations)\n", sw.Name, strings.Join(targets, ", "), sw.Axes.Cardinality())
	}
	return nil
}

func (a *App) params(_ context.Context, args []string) error {
	s, err := a.registry.Lookup(args[0])
	if err != nil {
		return err
	}
	names := s.Parameters()
	if a.config.Minimal {
		names = s.MinimalParameters()
	}
	for _, name := range names {
		fmt.Fprintln(a.outW, name)
	}
	return nil
}

func (a *App) template(_ context.Context, args []string) error {
	s, err := a.registry.Lookup(args[0])
	if err != nil {
		return err
	}
	b, err := binding.Parse(args[1:])
	if err != nil {
		return err
	}
	templates, err := a.codec.Templates(s, b)
	if err != nil {
		return err
	}
	for _, t := range templates {
		fmt.Fprintln(a.outW, t)
	}
	return nil
}

func (a *App) resolve(_ context.Context, args []string) error {
	inst, err := a.instanceFromArgs(args[0], args[1:])
	if err != nil {
		return err
	}
	path, err := a.codec.Resolve(inst)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, path)
	return nil
}

func (a *App) input(_ context.Context, args []string) error {
	s, err := a.registry.Lookup(args[0])
	if err != nil {
		return err
	}
	wildcards := make(map[string]string, len(args)-1)
	for _, arg := range args[1:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid wildcard %q: expected name=value", arg)
		}
		wildcards[name] = value
	}
	path, err := a.codec.Input(s, wildcards)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, path)
	return nil
}

func (a *App) match(_ context.Context, args []string) error {
	s, err := a.registry.Lookup(args[0])
	if err != nil {
		return err
	}
	inst, err := a.codec.Match(s, args[1])
	if err != nil {
		return err
	}
	for _, leaf := range inst.Leaves() {
		text, err := leaf.Segment()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s=%s\n", leaf.Field.Name, text)
	}
	return nil
}

func (a *App) storeResult(ctx context.Context, args []string) error {
	inst, err := a.instanceFromArgs(args[0], args[2:])
	if err != nil {
		return err
	}
	return a.store.Store(ctx, inst, resultstore.Decode([]byte(args[1])))
}

func (a *App) fetch(ctx context.Context, args []string) error {
	inst, err := a.instanceFromArgs(args[0], args[1:])
	if err != nil {
		return err
	}
	v, err := a.store.Fetch(ctx, inst)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, combination.CellText(v))
	return nil
}

func (a *App) paths(ctx context.Context, args []string) error {
	sw, err := a.registry.LookupSweep(args[0])
	if err != nil {
		return err
	}
	engine, err := combination.New(sw.Targets...)
	if err != nil {
		return err
	}
	insts, err := engine.Instances(sw.Axes)
	if err != nil {
		return err
	}
	paths, err := a.codec.ResolveAll(insts)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Resolved sweep paths.", "sweep", sw.Name, "count", len(paths))
	for _, p := range paths {
		fmt.Fprintln(a.outW, p)
	}
	return nil
}

func (a *App) table(ctx context.Context, args []string) error {
	sw, err := a.registry.LookupSweep(args[0])
	if err != nil {
		return err
	}
	engine, err := combination.New(sw.Targets...)
	if err != nil {
		return err
	}
	t, err := engine.ResultsTable(ctx, sw.Axes, a.store)
	if err != nil {
		return err
	}
	return t.Write(a.outW, a.config.OutputFormat)
}

// instanceFromArgs builds an instance of the named schema from name=value
// arguments. Every absent parameter takes its default.
func (a *App) instanceFromArgs(schemaName string, args []string) (*instance.Instance, error) {
	s, err := a.registry.Lookup(schemaName)
	if err != nil {
		return nil, err
	}
	flat, err := flatParams(args)
	if err != nil {
		return nil, err
	}
	return instance.FromFlatParams(s, flat)
}

func flatParams(args []string) (map[string]cty.Value, error) {
	b, err := binding.Parse(args)
	if err != nil {
		return nil, err
	}
	flat := make(map[string]cty.Value, b.Len())
	for _, name := range b.Names() {
		values, _ := b.Values(name)
		if len(values) != 1 {
			return nil, fmt.Errorf("parameter %q takes a single value, got %d", name, len(values))
		}
		flat[name] = values[0]
	}
	return flat, nil
}

var _ combination.Fetcher = (*resultstore.Store)(nil)
