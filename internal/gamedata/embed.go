// Package gamedata provides the embedded face data: buzzer melodies and the
// display theme, plus utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
