package app

// Program identity, printed by --version and written into generated files.
const (
	ProgramName           = "tiled-to-map"
	ProgramAuthorFull     = "mateus.digital <hello@mateus.digital>"
	ProgramAuthorShort    = "mateus.digital"
	ProgramCopyrightYears = "2024"
	ProgramWebsite        = "https://mateus.digital"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "1.0.0"
