package app

import (
	"context"
	"os"

	"github.com/specialistvlad/tiledtomap/internal/apperr"
	"github.com/specialistvlad/tiledtomap/internal/ctxlog"
	"github.com/specialistvlad/tiledtomap/internal/fsutil"
	"github.com/specialistvlad/tiledtomap/internal/hclconfig"
	"github.com/specialistvlad/tiledtomap/internal/render"
	"github.com/specialistvlad/tiledtomap/internal/templates"
	"github.com/specialistvlad/tiledtomap/internal/tmx"
)

const outputPerm = 0644

// Run converts the configured map. Either both output files are written or
// neither is.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx = ctxlog.With(ctx, "input", a.config.InputPath)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	cfg, err := a.effectiveConfig(ctx)
	if err != nil {
		return err
	}
	style, err := render.ParseStyle(cfg.Style)
	if err != nil {
		return apperr.Usage("style", err)
	}
	outputPath := cfg.resolvedOutputPath()

	raw, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return apperr.IO("read input "+cfg.InputPath, err)
	}
	logger.Debug("Input read.", "bytes", len(raw))

	var parseOpts []tmx.Option
	if cfg.Strict {
		parseOpts = append(parseOpts, tmx.WithStrictSize())
	}
	doc, err := tmx.Parse(string(raw), parseOpts...)
	if err != nil {
		return err
	}
	if len(doc.Tiles) == 0 {
		logger.Warn("Layer has no tiles, writing a single empty cell.", "width", doc.Width, "height", doc.Height)
	}
	if !doc.SizeMatches() {
		logger.Warn("Tile count does not match map size.", "tiles", len(doc.Tiles), "width", doc.Width, "height", doc.Height, "expected", doc.CellCount())
	}
	logger.Debug("Map parsed.", "width", doc.Width, "height", doc.Height, "tiles", len(doc.Tiles))

	set, err := templates.Load(cfg.HeaderTemplate, cfg.SourceTemplate)
	if err != nil {
		return err
	}

	rctx := render.Context{
		OutputBaseName:     render.BaseName(outputPath),
		SourcePath:         cfg.InputPath,
		GeneratedAt:        a.now(),
		ToolName:           ProgramName,
		ToolVersion:        Version,
		IncludeGuardSuffix: cfg.IncludeGuardSuffix,
	}
	out, err := render.New(set.Header, set.Source, style).Render(doc, rctx)
	if err != nil {
		return err
	}
	logger.Debug("Outputs rendered.", "style", style.String(), "base_name", rctx.OutputBaseName)

	if err := ctx.Err(); err != nil {
		return err
	}

	headerPath, sourcePath := outputPath+".h", outputPath+".c"
	err = fsutil.WriteFilesAtomic([]fsutil.File{
		{Path: headerPath, Content: []byte(out.Header)},
		{Path: sourcePath, Content: []byte(out.Source)},
	}, outputPerm)
	if err != nil {
		return apperr.IO("write output", err)
	}

	logger.Info("Map converted.", "header", headerPath, "source", sourcePath)
	return nil
}

// effectiveConfig merges the optional config file under the CLI values.
func (a *App) effectiveConfig(ctx context.Context) (Config, error) {
	cfg := *a.config
	if cfg.ConfigPath == "" {
		return cfg, nil
	}

	file, err := hclconfig.Load(ctx, cfg.ConfigPath, hclconfig.Variables{
		ProgramName:    ProgramName,
		ProgramVersion: Version,
		InputPath:      cfg.InputPath,
		InputName:      render.BaseName(cfg.InputPath),
	})
	if err != nil {
		return Config{}, err
	}
	ctxlog.FromContext(ctx).Debug("Config file merged.", "path", cfg.ConfigPath)
	return cfg.withFile(file), nil
}
