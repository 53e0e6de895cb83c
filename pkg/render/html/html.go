package html

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/flowplot/pkg/graph"
	"github.com/matzehuels/flowplot/pkg/render/styles"
)

// Options configures document assembly.
type Options struct {
	// Title is shown in the page header and the browser tab.
	Title string
	// CanvasID prefixes every SVG element id so multiple documents can be
	// embedded in one page without collisions. Required.
	CanvasID string
}

// Render assembles the complete diagram document: header chrome with the
// embedded logo, the interactive SVG canvas, and the legend panel. The
// output is a single self-contained HTML page with no external references.
//
// Node positions in the output are exactly the computed ones - the inline
// script implements pan, zoom, and hover highlighting but never moves
// nodes (no physics, no layout drift). Rendering the same graph twice
// with the same options produces byte-identical output.
func Render(g *graph.Graph, levels map[string]int, pos map[string]graph.Point, theme styles.Theme, opts Options) []byte {
	var buf bytes.Buffer

	title := opts.Title
	if title == "" {
		title = "Flow Plot"
	}

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	renderCSS(&buf, theme)
	buf.WriteString("</head>\n<body>\n")

	buf.WriteString(`<header class="chrome">`)
	buf.WriteString(Logo)
	fmt.Fprintf(&buf, `<h1>%s</h1></header>`+"\n", html.EscapeString(title))

	buf.WriteString(`<main class="stage">` + "\n")
	c := newCanvas(g, levels, pos, theme, opts.CanvasID)
	c.renderSVG(&buf)
	renderLegend(&buf, styles.Legend(theme))
	buf.WriteString("</main>\n")

	renderScript(&buf, opts.CanvasID)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func renderCSS(buf *bytes.Buffer, theme styles.Theme) {
	fmt.Fprintf(buf, `<style>
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; background: %s; }
  .chrome { display: flex; align-items: center; gap: 16px; padding: 10px 20px; border-bottom: 1px solid #E0E0E0; }
  .chrome h1 { font-size: 18px; color: #333333; margin: 0; font-weight: 600; }
  .stage { display: flex; }
  .stage svg { flex: 1; height: calc(100vh - 53px); cursor: grab; }
  .stage svg.panning { cursor: grabbing; }
  .legend { width: 200px; padding: 16px; border-left: 1px solid #E0E0E0; }
  .legend h2 { font-size: 14px; color: #333333; margin: 0 0 10px; }
  .legend-row { display: flex; align-items: center; gap: 8px; font-size: 13px; color: #555555; margin-bottom: 8px; }
  .node { cursor: pointer; }
  .node.highlight rect, .node.highlight polygon { stroke-width: 4; }
  .node-label { pointer-events: none; user-select: none; }
  .edge-label { user-select: none; }
</style>
`, theme.Background)
}

// renderScript emits the pan/zoom and hover interaction handlers.
// The viewport group receives a translate+scale transform; node positions
// themselves are never rewritten.
func renderScript(buf *bytes.Buffer, canvasID string) {
	fmt.Fprintf(buf, `<script>
(function () {
  var svg = document.getElementById(%q);
  var viewport = document.getElementById(%q);
  var tx = 0, ty = 0, scale = 1;
  var panning = false, px = 0, py = 0;

  function apply() {
    viewport.setAttribute('transform',
      'translate(' + tx + ',' + ty + ') scale(' + scale + ')');
  }

  svg.addEventListener('wheel', function (ev) {
    ev.preventDefault();
    var factor = ev.deltaY < 0 ? 1.1 : 0.9;
    var next = Math.min(5, Math.max(0.2, scale * factor));
    var rect = svg.getBoundingClientRect();
    var mx = ev.clientX - rect.left, my = ev.clientY - rect.top;
    tx = mx - (mx - tx) * (next / scale);
    ty = my - (my - ty) * (next / scale);
    scale = next;
    apply();
  }, { passive: false });

  svg.addEventListener('mousedown', function (ev) {
    panning = true; px = ev.clientX; py = ev.clientY;
    svg.classList.add('panning');
  });
  window.addEventListener('mousemove', function (ev) {
    if (!panning) return;
    tx += ev.clientX - px; ty += ev.clientY - py;
    px = ev.clientX; py = ev.clientY;
    apply();
  });
  window.addEventListener('mouseup', function () {
    panning = false;
    svg.classList.remove('panning');
  });

  svg.querySelectorAll('.node').forEach(function (el) {
    el.addEventListener('mouseenter', function () { el.classList.add('highlight'); });
    el.addEventListener('mouseleave', function () { el.classList.remove('highlight'); });
  });
})();
</script>
`, canvasID, canvasID+"-viewport")
}
