package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/tiledtomap/internal/app"
	"github.com/specialistvlad/tiledtomap/internal/apperr"
	"github.com/specialistvlad/tiledtomap/internal/cli"
)

// main is the entrypoint for the tiled-to-map converter.
func main() {
	// Use a minimal logger until the app configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	os.Exit(exitCode(os.Stderr, run(os.Stdout, os.Stderr, os.Args[1:])))
}

// exitCode reports err on errW and returns the process exit status.
func exitCode(errW io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(errW, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(errW, err)
	return apperr.ExitCode(err)
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	converter := app.NewApp(errW, appConfig)
	return converter.Run(context.Background())
}
