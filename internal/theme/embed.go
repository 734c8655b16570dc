package theme

import "embed"

// EmbeddedThemes holds the themes shipped with stageplot.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
