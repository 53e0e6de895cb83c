// Package html assembles the self-contained interactive diagram document.
//
// The document combines an SVG canvas (nodes and edges at their exact
// computed positions, pan/zoom and hover behavior via inline script), a
// legend panel, and static branding chrome into a single HTML file that is
// viewable offline. All markup is produced by explicit data-to-markup
// composition; node and edge labels are treated as untrusted text and
// escaped before embedding.
package html

import (
	_ "embed"
)

// Logo is the branding image embedded into the document header.
// It is bundled with the tool so the artifact has no external references.
//
//go:embed assets/logo.svg
var Logo string
