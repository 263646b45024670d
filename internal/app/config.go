package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ivargr/snakehelp/internal/combination"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchemaPaths []string // hcl and yaml declaration files or directories
	DataFolder  string   // prefix of every resolved path

	Command string
	Args    []string
	Minimal bool

	LogFormat    string
	LogLevel     string
	OutputFormat string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SchemaPaths) == 0 {
		return nil, errors.New("SchemaPaths is a required configuration field and cannot be empty")
	}

	cmd, ok := commands[cfg.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command %q, expected one of %s", cfg.Command, strings.Join(CommandNames(), ", "))
	}
	if len(cfg.Args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(cfg.Args) > cmd.maxArgs) {
		return nil, fmt.Errorf("usage: %s %s", cfg.Command, cmd.usage)
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if !slices.Contains(combination.Formats, cfg.OutputFormat) {
		return nil, fmt.Errorf("invalid output format %q, expected one of %s", cfg.OutputFormat, strings.Join(combination.Formats, ", "))
	}

	return &cfg, nil
}
