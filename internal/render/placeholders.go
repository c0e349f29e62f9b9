package render

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/tiledtomap/internal/apperr"
)

// Placeholder names, written as __NAME__ inside templates.
const (
	ExportHeaderFilename = "EXPORT_HEADER_FILENAME"
	ExportSourceFilename = "EXPORT_SOURCE_FILENAME"
	MapWidth             = "MAP_WIDTH"
	MapHeight            = "MAP_HEIGHT"
	ImportTiledFilename  = "IMPORT_TILED_FILENAME"
	ProgramName          = "PROGRAM_NAME"
	ProgramVersion       = "PROGRAM_VERSION"
	CurrentDate          = "CURRENT_DATE"
	IncludeGuard         = "INCLUDE_GUARD"
	DefineMapWidth       = "DEFINE_MAP_WIDTH"
	DefineMapHeight      = "DEFINE_MAP_HEIGHT"
	VarMapName           = "VAR_MAP_NAME"
	MapData              = "MAP_DATA"
)

// DefaultIncludeGuardSuffix is appended to the upper-cased base name.
const DefaultIncludeGuardSuffix = "__INCLUDE"

// DateLayout is the textual form of CURRENT_DATE.
const DateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

var knownPlaceholders = map[string]struct{}{
	ExportHeaderFilename: {}, ExportSourceFilename: {}, MapWidth: {}, MapHeight: {},
	ImportTiledFilename: {}, ProgramName: {}, ProgramVersion: {}, CurrentDate: {},
	IncludeGuard: {}, DefineMapWidth: {}, DefineMapHeight: {}, VarMapName: {}, MapData: {},
}

var placeholderPattern = regexp.MustCompile(`__([A-Z][A-Z0-9_]*?)__`)

// Context carries the per-run values that are not part of the map itself.
type Context struct {
	// OutputBaseName is the output file name without directory or extension.
	OutputBaseName     string
	SourcePath         string
	GeneratedAt        time.Time
	ToolName           string
	ToolVersion        string
	IncludeGuardSuffix string
}

// BaseName strips the directory and extension from an output path.
func BaseName(outputPath string) string {
	base := filepath.Base(outputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Placeholders maps placeholder names to their substituted text.
type Placeholders map[string]string

// Names returns the placeholder names in sorted order.
func (p Placeholders) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func commonPlaceholders(rctx Context, width, height int) Placeholders {
	suffix := rctx.IncludeGuardSuffix
	if suffix == "" {
		suffix = DefaultIncludeGuardSuffix
	}
	base := rctx.OutputBaseName
	return Placeholders{
		MapWidth:            strconv.Itoa(width),
		MapHeight:           strconv.Itoa(height),
		ImportTiledFilename: rctx.SourcePath,
		ProgramName:         rctx.ToolName,
		ProgramVersion:      rctx.ToolVersion,
		CurrentDate:         rctx.GeneratedAt.Format(DateLayout),
		IncludeGuard:        strings.ToUpper(base) + suffix,
		DefineMapWidth:      base + "_WIDTH",
		DefineMapHeight:     base + "_HEIGHT",
		VarMapName:          base + "_TILES",
	}
}

// HeaderPlaceholders returns the values available to the header template.
func HeaderPlaceholders(rctx Context, width, height int) Placeholders {
	p := commonPlaceholders(rctx, width, height)
	p[ExportHeaderFilename] = rctx.OutputBaseName + ".h"
	return p
}

// SourcePlaceholders returns the values available to the source template.
// grid is the output of FormatGrid.
func SourcePlaceholders(rctx Context, width, height int, grid string) Placeholders {
	p := commonPlaceholders(rctx, width, height)
	p[ExportSourceFilename] = rctx.OutputBaseName + ".c"
	p[MapData] = grid
	return p
}

// Substitute replaces every occurrence of every placeholder in one pass.
// Substituted text is never rescanned. A known placeholder left in the result
// is reported as a template error.
func Substitute(template string, values Placeholders) (string, error) {
	pairs := make([]string, 0, len(values)*2)
	for _, name := range values.Names() {
		pairs = append(pairs, "__"+name+"__", values[name])
	}
	out := strings.NewReplacer(pairs...).Replace(template)

	// Only the template text can carry unresolved tokens, so check it rather
	// than the output, which may legitimately contain anything.
	if missing := unresolved(template, values); len(missing) > 0 {
		return "", apperr.Template("", fmt.Errorf("unresolved placeholders: %s", strings.Join(missing, ", ")))
	}
	return out, nil
}

func unresolved(template string, values Placeholders) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, known := knownPlaceholders[name]; !known {
			continue
		}
		if _, ok := values[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, "__"+name+"__")
	}
	return missing
}
