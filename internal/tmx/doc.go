// Package tmx reads the subset of the Tiled TMX map format that the converter
// understands: the map's width and height, and the tile indices of its first
// layer stored as uncompressed CSV.
//
// Parse walks the whole document, so a map whose first layer is valid but
// whose tail is malformed is still rejected as a parse error. Tile indices are
// returned exactly as Tiled writes them: 1-based, with 0 meaning "no tile".
package tmx
