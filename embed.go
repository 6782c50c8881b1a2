package pixelplaque

import "embed"

// ContentFS holds the Markdown pages served under /legal.
//
//go:embed content/legal
var ContentFS embed.FS
