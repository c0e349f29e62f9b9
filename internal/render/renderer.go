package render

import (
	"fmt"

	"github.com/specialistvlad/tiledtomap/internal/tmx"
)

// Output holds the two generated texts.
type Output struct {
	Header string
	Source string
}

// Renderer fills a header and a source template from a parsed map.
type Renderer struct {
	headerTemplate string
	sourceTemplate string
	style          Style
}

// New returns a Renderer for the given template texts.
func New(headerTemplate, sourceTemplate string, style Style) *Renderer {
	return &Renderer{
		headerTemplate: headerTemplate,
		sourceTemplate: sourceTemplate,
		style:          style,
	}
}

// Render produces both texts. Neither is returned unless both resolve.
func (r *Renderer) Render(doc *tmx.MapDocument, rctx Context) (*Output, error) {
	grid := FormatGrid(doc.Tiles, doc.Width, r.style)
	if grid == "" {
		// An empty initializer list is not valid C before C23.
		grid = FormatValue(StoredValue(0), r.style)
	}

	header, err := Substitute(r.headerTemplate, HeaderPlaceholders(rctx, doc.Width, doc.Height))
	if err != nil {
		return nil, fmt.Errorf("header template: %w", err)
	}
	source, err := Substitute(r.sourceTemplate, SourcePlaceholders(rctx, doc.Width, doc.Height, grid))
	if err != nil {
		return nil, fmt.Errorf("source template: %w", err)
	}

	return &Output{Header: header, Source: source}, nil
}
