package tmx

// MapDocument is the normalized result of parsing a map file.
type MapDocument struct {
	Width  int
	Height int
	// Tiles holds the first layer's indices in row-major order.
	Tiles []int
}

// CellCount is the number of tiles a Width x Height grid should hold.
func (d *MapDocument) CellCount() int {
	return d.Width * d.Height
}

// SizeMatches reports whether the tile count agrees with the declared size.
func (d *MapDocument) SizeMatches() bool {
	return len(d.Tiles) == d.CellCount()
}

// xmlLayer is decoded from the first <layer> element found in the document.
type xmlLayer struct {
	Name string   `xml:"name,attr"`
	Data *xmlData `xml:"data"`
}

type xmlData struct {
	Encoding    string `xml:"encoding,attr"`
	Compression string `xml:"compression,attr"`
	Payload     string `xml:",chardata"`
	// Tiles and Chunks are only decoded to detect layouts that are not read.
	Tiles  []struct{} `xml:"tile"`
	Chunks []struct{} `xml:"chunk"`
}
