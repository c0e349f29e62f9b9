package app

import (
	"fmt"

	"github.com/specialistvlad/tiledtomap/internal/apperr"
	"github.com/specialistvlad/tiledtomap/internal/fsutil"
	"github.com/specialistvlad/tiledtomap/internal/hclconfig"
	"github.com/specialistvlad/tiledtomap/internal/render"
)

// Config holds everything a conversion run needs. Empty string fields are
// unset and may be filled from the config file.
type Config struct {
	InputPath  string
	OutputPath string // without extension; defaults to InputPath minus its extension
	ConfigPath string // optional HCL file

	Style              string // "decimal" or "hex"
	Strict             bool
	HeaderTemplate     string
	SourceTemplate     string
	IncludeGuardSuffix string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, apperr.Usage("missing input-path", nil)
	}
	if cfg.Style != "" {
		if _, err := render.ParseStyle(cfg.Style); err != nil {
			return nil, apperr.Usage("style", err)
		}
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, apperr.Usage("log-format", fmt.Errorf("invalid value %q: must be 'text' or 'json'", cfg.LogFormat))
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, apperr.Usage("log-level", fmt.Errorf("invalid value %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	return &cfg, nil
}

// withFile fills the fields that are still unset from the config file.
func (c Config) withFile(f *hclconfig.File) Config {
	if f == nil {
		return c
	}
	if c.Style == "" && f.Style != nil {
		c.Style = *f.Style
	}
	if !c.Strict && f.Strict != nil {
		c.Strict = *f.Strict
	}
	if c.OutputPath == "" && f.OutputPath != nil {
		c.OutputPath = *f.OutputPath
	}
	if t := f.Templates; t != nil {
		if c.HeaderTemplate == "" && t.Header != nil {
			c.HeaderTemplate = *t.Header
		}
		if c.SourceTemplate == "" && t.Source != nil {
			c.SourceTemplate = *t.Source
		}
	}
	if n := f.Naming; n != nil && c.IncludeGuardSuffix == "" && n.IncludeGuardSuffix != nil {
		c.IncludeGuardSuffix = *n.IncludeGuardSuffix
	}
	return c
}

// resolvedOutputPath is the output path without the .h/.c extension.
func (c Config) resolvedOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return fsutil.TrimExt(c.InputPath)
}
