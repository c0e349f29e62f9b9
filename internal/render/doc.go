// Package render turns a parsed map into the text of the generated header and
// source files.
//
// Tile indices are rebased before they are written: Tiled uses 1-based indices
// with 0 for an empty cell, the generated array uses 0-based indices with -1
// for an empty cell. Templates reference computed values through placeholders
// of the form __NAME__, which are all replaced in a single pass.
package render
