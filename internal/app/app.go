package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/hcl"
	"github.com/ivargr/snakehelp/internal/pathcodec"
	"github.com/ivargr/snakehelp/internal/registry"
	"github.com/ivargr/snakehelp/internal/resultstore"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/ivargr/snakehelp/internal/yamlconfig"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	codec    *pathcodec.Codec
	store    *resultstore.Store
}

// Option customises an App before declarations are loaded.
type Option func(*options)

type options struct {
	loader  config.Loader
	backend resultstore.Backend
	schemas []*schema.Schema
}

// WithLoader replaces the default HCL plus YAML declaration loader.
func WithLoader(l config.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithBackend replaces the on-disk result store backend.
func WithBackend(b resultstore.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithSchemas registers schemas built in Go. Declaration files may refer to
// them by name.
func WithSchemas(schemas ...*schema.Schema) Option {
	return func(o *options) { o.schemas = append(o.schemas, schemas...) }
}

// DefaultLoader reads both HCL and YAML declaration files.
func DefaultLoader() config.Loader {
	return config.Loaders{hcl.NewLoader(), yamlconfig.NewLoader()}
}

// NewApp is the constructor for the main application. Command output goes
// to outW and log records to logW. Every declaration under cfg.SchemaPaths
// is loaded and resolved here, so a returned App is ready to Run.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	o := &options{loader: DefaultLoader()}
	for _, opt := range opts {
		opt(o)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	for _, s := range o.schemas {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}

	model, err := o.loader.Load(ctx, cfg.SchemaPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}
	logger.Debug("Declarations loaded into unified model.", "parameter_sets", len(model.Parameters), "sweeps", len(model.Sweeps))

	if err := reg.PopulateFromModel(ctx, model); err != nil {
		return nil, err
	}
	if len(reg.Schemas()) == 0 {
		logger.Warn("No parameter schemas found.", "paths", cfg.SchemaPaths)
	}

	codec := pathcodec.New(cfg.DataFolder)
	var storeOpts []resultstore.Option
	if o.backend != nil {
		storeOpts = append(storeOpts, resultstore.WithBackend(o.backend))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		codec:    codec,
		store:    resultstore.New(codec, storeOpts...),
	}, nil
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command, "args", a.config.Args)

	cmd, ok := commands[a.config.Command]
	if !ok {
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
	if err := cmd.run(a, ctx, a.config.Args); err != nil {
		return fmt.Errorf("%s: %w", a.config.Command, err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Store returns the application's result store.
func (a *App) Store() *resultstore.Store {
	return a.store
}
