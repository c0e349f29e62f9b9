package hclconfig

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/tiledtomap/internal/apperr"
	"github.com/specialistvlad/tiledtomap/internal/ctxlog"
	"github.com/specialistvlad/tiledtomap/internal/render"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// File is the decoded configuration file. Attributes left out of the file
// are nil so that callers can tell them apart from zero values.
type File struct {
	Style      *string         `hcl:"style,optional"`
	Strict     *bool           `hcl:"strict,optional"`
	OutputPath *string         `hcl:"output_path,optional"`
	Templates  *TemplatesBlock `hcl:"templates,block"`
	Naming     *NamingBlock    `hcl:"naming,block"`
}

// TemplatesBlock points at template files that replace the embedded ones.
type TemplatesBlock struct {
	Header *string `hcl:"header,optional"`
	Source *string `hcl:"source,optional"`
}

// NamingBlock customizes generated identifiers.
type NamingBlock struct {
	IncludeGuardSuffix *string `hcl:"include_guard_suffix,optional"`
}

// Variables are the values exposed to expressions in the file.
type Variables struct {
	ProgramName    string
	ProgramVersion string
	InputPath      string
	InputName      string
}

// Load parses and decodes the configuration file at path.
func Load(ctx context.Context, path string, vars Variables) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL config loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.IO("read config "+path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, apperr.Parse("config "+path, diags)
	}

	var file File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(vars), &file)
	if diags.HasErrors() {
		return nil, apperr.Schema("config "+path, diags)
	}

	if file.Style != nil {
		if _, err := render.ParseStyle(*file.Style); err != nil {
			return nil, apperr.Schema("config "+path, fmt.Errorf("attribute style: %w", err))
		}
	}
	if file.OutputPath != nil && *file.OutputPath == "" {
		return nil, apperr.Schema("config "+path, errors.New("attribute output_path must not be empty"))
	}

	logger.Debug("HCL config decoded.", "path", path, "has_templates", file.Templates != nil, "has_naming", file.Naming != nil)
	return &file, nil
}

func evalContext(vars Variables) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"program": cty.ObjectVal(map[string]cty.Value{
				"name":    cty.StringVal(vars.ProgramName),
				"version": cty.StringVal(vars.ProgramVersion),
			}),
			"input": cty.ObjectVal(map[string]cty.Value{
				"path": cty.StringVal(vars.InputPath),
				"name": cty.StringVal(vars.InputName),
			}),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
		},
	}
}
