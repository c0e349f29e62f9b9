package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// App is a single configured conversion run.
type App struct {
	logger *slog.Logger
	config *Config
	runID  string
	now    func() time.Time
}

// Option customizes an App.
type Option func(*App)

// WithClock replaces the clock used for the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// NewApp returns an App that logs to logW.
func NewApp(logW io.Writer, cfg *Config, opts ...Option) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	a := &App{
		logger: logger,
		config: cfg,
		runID:  runID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunID identifies this run in log output.
func (a *App) RunID() string {
	return a.runID
}
