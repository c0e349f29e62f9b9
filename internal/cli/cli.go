package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/tiledtomap/internal/app"
	"github.com/specialistvlad/tiledtomap/internal/render"
)

// Environment variables consulted when the matching flag is not given.
const (
	EnvStyle     = "TILED2MAP_STYLE"
	EnvLogLevel  = "TILED2MAP_LOG_LEVEL"
	EnvLogFormat = "TILED2MAP_LOG_FORMAT"

	defaultEnvFile = ".env"
)

// ExitError is a custom error type that includes a specific exit code. An
// empty Message means the problem was already reported.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Help and version text go to outW, usage errors to errW.
func Parse(args []string, outW, errW io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet(app.ProgramName, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}

	inputFlag := flagSet.String("input-path", "", "Path to the Tiled map (.tmx) to convert.")
	outputFlag := flagSet.String("output-path", "", "Output path without extension. Defaults to the input path without its extension.")
	configFlag := flagSet.String("config", "", "Path to an optional HCL configuration file.")
	styleFlag := flagSet.String("style", "", "Tile value style: 'decimal' or 'hex'. Env: "+EnvStyle+".")
	strictFlag := flagSet.Bool("strict", false, "Fail when the tile count differs from width*height.")
	headerTplFlag := flagSet.String("header-template", "", "Replace the built-in header template with this file.")
	sourceTplFlag := flagSet.String("source-template", "", "Replace the built-in source template with this file.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Env: "+EnvLogLevel+".")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. Env: "+EnvLogFormat+".")
	envFileFlag := flagSet.String("env-file", "", "Dotenv file with default settings. Defaults to ./.env when present.")
	versionFlag := flagSet.Bool("version", false, "Show version information.")
	flagSet.BoolVar(versionFlag, "v", false, "Show version information (shorthand).")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(flagSet, outW)
			return nil, true, nil
		}
		printUsage(flagSet, errW)
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag {
		printVersion(outW)
		return nil, true, nil
	}

	if *inputFlag == "" {
		slog.Debug("No input path provided, printing usage and exiting.")
		fmt.Fprintln(errW, "Missing input-path")
		fmt.Fprintln(errW)
		printUsage(flagSet, errW)
		return nil, false, &ExitError{Code: 1}
	}

	env, err := loadEnv(*envFileFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	style := strings.ToLower(firstNonEmpty(*styleFlag, env.get(EnvStyle), render.StyleDecimal.String()))
	if _, err := render.ParseStyle(style); err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid style: must be 'decimal' or 'hex'"}
	}

	logFormat := strings.ToLower(firstNonEmpty(*logFormatFlag, env.get(EnvLogFormat), "text"))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(firstNonEmpty(*logLevelFlag, env.get(EnvLogLevel), "warn"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	// style is left empty unless chosen explicitly so the config file can set it.
	explicitStyle := ""
	if *styleFlag != "" || env.get(EnvStyle) != "" {
		explicitStyle = style
	}

	config, err := app.NewConfig(app.Config{
		InputPath:      *inputFlag,
		OutputPath:     *outputFlag,
		ConfigPath:     *configFlag,
		Style:          explicitStyle,
		Strict:         *strictFlag,
		HeaderTemplate: *headerTplFlag,
		SourceTemplate: *sourceTplFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func printUsage(flagSet *flag.FlagSet, w io.Writer) {
	flagSet.SetOutput(w)
	defer flagSet.SetOutput(io.Discard)

	fmt.Fprintf(w, `Usage: %[1]s --input-path [inputPath] --output-path [outputPath]

Converts the first layer of a Tiled map into a C header and source file.

Example:
  %[1]s --input-path level1.tmx --output-path src/level1

Options:
`, app.ProgramName)
	flagSet.PrintDefaults()
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s - %s - %s\n", app.ProgramName, app.Version, app.ProgramAuthorFull)
	fmt.Fprintf(w, "Copyright (c) %s - %s\n", app.ProgramCopyrightYears, app.ProgramAuthorShort)
	fmt.Fprintln(w, "This is a free software (GPLv3) - Share/Hack it")
	fmt.Fprintf(w, "Check %s for more :)\n", app.ProgramWebsite)
	fmt.Fprintln(w)
}

// envSource resolves settings from the process environment first and the
// dotenv file second. The process environment is never modified.
type envSource map[string]string

func (e envSource) get(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return e[key]
}

func loadEnv(path string) (envSource, error) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return envSource{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	slog.Debug("Env file loaded.", "path", path, "keys", len(values))
	return values, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
