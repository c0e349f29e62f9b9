// Package templates provides the header and source templates used to render
// a map. The defaults are compiled into the binary; either one can be
// replaced by a file on disk.
package templates

import (
	_ "embed"
	"os"

	"github.com/specialistvlad/tiledtomap/internal/apperr"
)

//go:embed template.h
var defaultHeader string

//go:embed template.c
var defaultSource string

// Set is a header/source template pair.
type Set struct {
	Header string
	Source string
}

// Default returns the embedded templates.
func Default() Set {
	return Set{Header: defaultHeader, Source: defaultSource}
}

// Load reads template overrides. An empty path keeps the embedded default
// for that side.
func Load(headerPath, sourcePath string) (Set, error) {
	set := Default()
	if headerPath != "" {
		text, err := readTemplate(headerPath)
		if err != nil {
			return Set{}, err
		}
		set.Header = text
	}
	if sourcePath != "" {
		text, err := readTemplate(sourcePath)
		if err != nil {
			return Set{}, err
		}
		set.Source = text
	}
	return set, nil
}

func readTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.IO("read template "+path, err)
	}
	return string(b), nil
}
