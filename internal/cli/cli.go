package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ivargr/snakehelp/internal/app"
	"github.com/ivargr/snakehelp/internal/combination"
)

// Environment variables that provide flag defaults.
const (
	EnvDataFolder = "SNAKEHELP_DATA_FOLDER"
	EnvSchemas    = "SNAKEHELP_SCHEMAS"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList is a repeatable flag; each occurrence may also hold a
// comma-separated list.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*p = append(*p, part)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags may appear before or after the command; everything after "--" is
// positional.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("snakehelp", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
snakehelp - typed parameter schemas mapped to workflow file paths.

Usage:
  snakehelp [options] COMMAND [ARGS...]

Commands:
`)
		for _, line := range app.CommandUsage() {
			fmt.Fprintf(output, "  %s\n", line)
		}
		fmt.Fprint(output, "\nOptions:\n")
		flagSet.PrintDefaults()
	}

	var schemas pathList
	flagSet.Var(&schemas, "schemas", "Declaration file or directory (.hcl, .yaml). Repeatable. Defaults to $"+EnvSchemas+" or 'schemas'.")
	dataFolderFlag := flagSet.String("data-folder", os.Getenv(EnvDataFolder), "Prefix of every resolved path. Defaults to $"+EnvDataFolder+".")
	formatFlag := flagSet.String("format", "text", "Results table format. Options: "+strings.Join(combination.Formats, ", ")+".")
	minimalFlag := flagSet.Bool("minimal", false, "Leave out single-variant enum parameters.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	flagArgs, tail := splitAtTerminator(args)
	var positional []string
	for {
		if err := flagSet.Parse(flagArgs); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		flagArgs = flagSet.Args()
		if len(flagArgs) == 0 {
			break
		}
		positional = append(positional, flagArgs[0])
		flagArgs = flagArgs[1:]
	}
	positional = append(positional, tail...)
	slog.Debug("Arguments parsed successfully.", "positional", positional)

	if len(positional) == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if len(schemas) == 0 {
		if env := os.Getenv(EnvSchemas); env != "" {
			_ = schemas.Set(env)
		} else {
			schemas = pathList{"schemas"}
		}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SchemaPaths:  schemas,
		DataFolder:   *dataFolderFlag,
		Command:      positional[0],
		Args:         positional[1:],
		Minimal:      *minimalFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		OutputFormat: strings.ToLower(*formatFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitAtTerminator(args []string) (flags, tail []string) {
	if i := slices.Index(args, "--"); i >= 0 {
		return args[:i], args[i+1:]
	}
	return args, nil
}
