package html

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowplot/pkg/render/styles"
)

// renderLegend writes the legend panel: one row per style category, each
// with a small SVG swatch and a caption.
func renderLegend(buf *bytes.Buffer, entries []styles.LegendEntry) {
	buf.WriteString(`<aside class="legend"><h2>Legend</h2>` + "\n")
	for _, e := range entries {
		buf.WriteString(`<div class="legend-row">`)
		renderSwatch(buf, e)
		fmt.Fprintf(buf, `<span>%s</span></div>`+"\n", html.EscapeString(e.Label))
	}
	buf.WriteString("</aside>\n")
}

func renderSwatch(buf *bytes.Buffer, e styles.LegendEntry) {
	buf.WriteString(`<svg class="swatch" viewBox="0 0 36 20" width="36" height="20">`)
	switch e.Kind {
	case "node":
		renderNodeSwatch(buf, e)
	default:
		dash := ""
		if e.Dashed {
			dash = ` stroke-dasharray="4,3"`
		}
		fmt.Fprintf(buf, `<line x1="2" y1="10" x2="30" y2="10" stroke="%s" stroke-width="2"%s/>`, e.Fill, dash)
		fmt.Fprintf(buf, `<path d="M 28 6 L 34 10 L 28 14 z" fill="%s"/>`, e.Fill)
	}
	buf.WriteString("</svg>")
}

func renderNodeSwatch(buf *bytes.Buffer, e styles.LegendEntry) {
	switch e.Shape {
	case styles.ShapeStadium:
		fmt.Fprintf(buf, `<rect x="3" y="3" width="30" height="14" rx="7" fill="%s" stroke="%s"/>`, e.Fill, e.Border)
	case styles.ShapeDiamond:
		fmt.Fprintf(buf, `<polygon points="18,2 32,10 18,18 4,10" fill="%s" stroke="%s"/>`, e.Fill, e.Border)
	case styles.ShapeHexagon:
		fmt.Fprintf(buf, `<polygon points="9,3 27,3 33,10 27,17 9,17 3,10" fill="%s" stroke="%s"/>`, e.Fill, e.Border)
	default:
		fmt.Fprintf(buf, `<rect x="3" y="3" width="30" height="14" rx="3" fill="%s" stroke="%s"/>`, e.Fill, e.Border)
	}
}
