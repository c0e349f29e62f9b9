package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/tiledtomap/internal/apperr"
)

const (
	rootElement  = "map"
	layerElement = "layer"
	separator    = ","
)

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// Parse converts the text of a TMX document into a MapDocument.
func Parse(text string, opts ...Option) (*MapDocument, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	root, layer, err := scan(text)
	if err != nil {
		return nil, err
	}

	if root.Name.Local != rootElement {
		return nil, apperr.Schema("root element", fmt.Errorf("expected <%s>, found <%s>", rootElement, root.Name.Local))
	}
	width, err := dimension(root, "width")
	if err != nil {
		return nil, err
	}
	height, err := dimension(root, "height")
	if err != nil {
		return nil, err
	}

	if layer == nil {
		return nil, apperr.Schema("layer", errors.New("map has no <layer> element"))
	}
	if layer.Data == nil {
		return nil, apperr.Schema("layer data", fmt.Errorf("layer %q has no <data> element", layer.Name))
	}
	if err := checkEncoding(layer.Data); err != nil {
		return nil, err
	}

	tiles, err := splitTiles(layer.Data.Payload)
	if err != nil {
		return nil, err
	}

	doc := &MapDocument{Width: width, Height: height, Tiles: tiles}
	if o.strictSize && !doc.SizeMatches() {
		return nil, apperr.Schema("layer data", fmt.Errorf("found %d tiles, map is %dx%d (%d cells)", len(tiles), width, height, doc.CellCount()))
	}
	return doc, nil
}

// scan reads every token of the document so that malformed content anywhere
// is reported. It returns the root start element and the first layer.
func scan(text string) (*xml.StartElement, *xmlLayer, error) {
	decoder := xml.NewDecoder(strings.NewReader(text))

	var root *xml.StartElement
	var layer *xmlLayer
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperr.Parse("", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if root == nil {
			el := start.Copy()
			root = &el
			continue
		}
		if layer == nil && start.Name.Local == layerElement {
			var l xmlLayer
			if err := decoder.DecodeElement(&l, &start); err != nil {
				return nil, nil, apperr.Parse("", err)
			}
			layer = &l
		}
	}

	if root == nil {
		return nil, nil, apperr.Parse("", errors.New("document has no root element"))
	}
	return root, layer, nil
}

func dimension(root *xml.StartElement, name string) (int, error) {
	for _, attr := range root.Attr {
		if attr.Name.Local != name {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(attr.Value))
		if err != nil {
			return 0, apperr.Schema("attribute "+name, fmt.Errorf("%q is not a number", attr.Value))
		}
		if v <= 0 {
			return 0, apperr.Schema("attribute "+name, fmt.Errorf("must be positive, got %d", v))
		}
		return v, nil
	}
	return 0, apperr.Schema("attribute "+name, fmt.Errorf("missing on <%s>", root.Name.Local))
}

func checkEncoding(data *xmlData) error {
	if data.Encoding != "" && data.Encoding != "csv" {
		return apperr.Schema("layer data", fmt.Errorf("unsupported encoding %q, only csv is handled", data.Encoding))
	}
	if data.Compression != "" {
		return apperr.Schema("layer data", fmt.Errorf("unsupported compression %q", data.Compression))
	}
	if len(data.Tiles) > 0 {
		return apperr.Schema("layer data", fmt.Errorf("unsupported XML tile layout (%d <tile> elements), only csv is handled", len(data.Tiles)))
	}
	if len(data.Chunks) > 0 {
		return apperr.Schema("layer data", fmt.Errorf("unsupported infinite map layout (%d <chunk> elements), only csv is handled", len(data.Chunks)))
	}
	return nil
}

// splitTiles strips line breaks from the payload and parses the separated
// indices. Empty tokens left by trailing separators are dropped; an empty
// token anywhere else is an error.
func splitTiles(payload string) ([]int, error) {
	tokens := strings.Split(lineBreaks.Replace(payload), separator)
	for i := range tokens {
		tokens[i] = strings.Trim(tokens[i], " \t")
	}
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}

	tiles := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		if tok == "" {
			return nil, apperr.Schema("layer data", fmt.Errorf("empty tile token at position %d", i))
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, apperr.Schema("layer data", fmt.Errorf("tile token %q at position %d is not a number", tok, i))
		}
		tiles = append(tiles, v)
	}
	return tiles, nil
}
