// Package app contains the conversion run itself: it resolves the effective
// configuration, reads the map, renders both outputs and writes them. It is
// decoupled from the command line, which only builds a Config.
package app
