package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects how each stored tile value is written.
type Style int

const (
	StyleDecimal Style = iota
	StyleHex
)

const (
	// fieldDigits is the minimum digit width of a formatted value.
	fieldDigits = 3
	rowIndent   = "    "
)

func (s Style) String() string {
	switch s {
	case StyleDecimal:
		return "decimal"
	case StyleHex:
		return "hex"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle accepts the names returned by Style.String.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "decimal", "dec":
		return StyleDecimal, nil
	case "hex", "hexadecimal":
		return StyleHex, nil
	default:
		return StyleDecimal, fmt.Errorf("unknown style %q: must be 'decimal' or 'hex'", name)
	}
}

// StoredValue rebases a Tiled index so that the empty cell becomes -1.
func StoredValue(tile int) int {
	return tile - 1
}

// FormatValue renders an already rebased value, including its trailing comma.
//
// Decimal values get a leading space and are right-aligned in a 3 character
// field. Hex values are zero-padded to 3 digits behind a 0x prefix; the sign
// is not handled, so -1 becomes 0x0-1.
func FormatValue(v int, style Style) string {
	switch style {
	case StyleHex:
		digits := strconv.FormatInt(int64(v), 16)
		if pad := fieldDigits - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		return "0x" + digits + ","
	default:
		return fmt.Sprintf(" %*d,", fieldDigits, v)
	}
}

// FormatTile rebases and formats a single Tiled index.
func FormatTile(tile int, style Style) string {
	return FormatValue(StoredValue(tile), style)
}

// FormatGrid formats every tile and starts a new indented line after each
// full row of width tiles. A non-positive width disables wrapping.
func FormatGrid(tiles []int, width int, style Style) string {
	var b strings.Builder
	for i, tile := range tiles {
		if width > 0 && i != 0 && i%width == 0 {
			b.WriteString("\n")
			b.WriteString(rowIndent)
		}
		b.WriteString(FormatTile(tile, style))
	}
	return b.String()
}
