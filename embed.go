// Package kibitzer embeds the browser client served by cmd/server.
package kibitzer

import "embed"

// WebFS holds the web/ directory.
//
//go:embed web
var WebFS embed.FS
