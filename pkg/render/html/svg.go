package html

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/flowplot/pkg/graph"
	"github.com/matzehuels/flowplot/pkg/render/styles"
)

// Node geometry constants. Positions from the layout are node centers;
// shapes are drawn around them.
const (
	nodeWidth  = 120.0
	nodeHeight = 52.0
	margin     = 80.0
)

// Edge trim distances keep arrowheads clear of the node shapes.
const (
	edgeTrimSource = 30.0
	edgeTrimTarget = 38.0
)

// canvas collects everything needed to draw the SVG body.
type canvas struct {
	graph  *graph.Graph
	levels map[string]int
	pos    map[string]graph.Point
	theme  styles.Theme
	id     string // element id prefix, keeps embedded documents from colliding

	offsetX, offsetY float64
	width, height    float64
}

func newCanvas(g *graph.Graph, levels map[string]int, pos map[string]graph.Point, theme styles.Theme, id string) canvas {
	minX, minY, maxX, maxY := graph.Bounds(pos)
	return canvas{
		graph:   g,
		levels:  levels,
		pos:     pos,
		theme:   theme,
		id:      id,
		offsetX: margin + nodeWidth/2 - minX,
		offsetY: margin + nodeHeight/2 - minY,
		width:   (maxX - minX) + nodeWidth + 2*margin,
		height:  (maxY - minY) + nodeHeight + 2*margin,
	}
}

// renderSVG writes the complete <svg> canvas: defs, edges below, nodes on
// top, all inside a viewport group the pan/zoom script transforms.
func (c canvas) renderSVG(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<svg id="%s" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" style="background:%s">`+"\n",
		c.id, c.width, c.height, c.theme.Canvas)

	c.renderDefs(buf)

	fmt.Fprintf(buf, `<g id="%s-viewport">`+"\n", c.id)
	for _, e := range c.graph.Edges() {
		c.renderEdge(buf, e)
	}
	for _, n := range c.graph.Nodes() {
		c.renderNode(buf, n)
	}
	buf.WriteString("</g>\n</svg>\n")
}

// renderDefs emits one arrowhead marker per edge kind in use.
func (c canvas) renderDefs(buf *bytes.Buffer) {
	kinds := make(map[graph.EdgeKind]bool)
	for _, e := range c.graph.Edges() {
		kinds[e.Kind] = true
	}

	buf.WriteString("<defs>\n")
	for _, k := range []graph.EdgeKind{graph.EdgeNormal, graph.EdgeConditional, graph.EdgeCyclic} {
		if !kinds[k] {
			continue
		}
		s := c.theme.Edge(k)
		fmt.Fprintf(buf, `<marker id="%s-arrow-%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">`+
			`<path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n",
			c.id, k, s.Color)
	}
	buf.WriteString("</defs>\n")
}

func (c canvas) center(id string) (x, y float64) {
	p := c.pos[id]
	return p.X + c.offsetX, p.Y + c.offsetY
}

func (c canvas) renderEdge(buf *bytes.Buffer, e *graph.Edge) {
	s := c.theme.Edge(e.Kind)

	dash := ""
	if s.Dashed {
		dash = ` stroke-dasharray="7,5"`
	}
	arrow := ""
	if s.Arrow {
		arrow = fmt.Sprintf(` marker-end="url(#%s-arrow-%s)"`, c.id, e.Kind)
	}

	if e.From == e.To {
		c.renderSelfLoop(buf, e, s, dash, arrow)
		return
	}

	x1, y1 := c.center(e.From)
	x2, y2 := c.center(e.To)

	// Trim endpoints so the line and arrowhead start and stop at the
	// shape boundaries instead of the node centers.
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist > edgeTrimSource+edgeTrimTarget {
		ux, uy := dx/dist, dy/dist
		x1, y1 = x1+ux*edgeTrimSource, y1+uy*edgeTrimSource
		x2, y2 = x2-ux*edgeTrimTarget, y2-uy*edgeTrimTarget
	}

	fmt.Fprintf(buf, `<line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"%s%s/>`+"\n",
		x1, y1, x2, y2, s.Color, dash, arrow)

	if e.Label != "" {
		mx, my := (x1+x2)/2, (y1+y2)/2
		fmt.Fprintf(buf, `<text class="edge-label" x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="middle">%s</text>`+"\n",
			mx, my-6, s.Color, html.EscapeString(e.Label))
	}
}

// renderSelfLoop draws a small loop arc on the right side of the node.
func (c canvas) renderSelfLoop(buf *bytes.Buffer, e *graph.Edge, s styles.EdgeStyle, dash, arrow string) {
	cx, cy := c.center(e.From)
	x := cx + nodeWidth/2
	fmt.Fprintf(buf, `<path class="edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="2"%s%s/>`+"\n",
		x, cy-12, x+56, cy-36, x+56, cy+36, x, cy+12, s.Color, dash, arrow)
	if e.Label != "" {
		fmt.Fprintf(buf, `<text class="edge-label" x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="middle">%s</text>`+"\n",
			x+48, cy+4, s.Color, html.EscapeString(e.Label))
	}
}

func (c canvas) renderNode(buf *bytes.Buffer, n *graph.Node) {
	s := c.theme.Node(n.Kind)
	cx, cy := c.center(n.ID)

	fmt.Fprintf(buf, `<g class="node" id="%s-node-%s">`+"\n", c.id, html.EscapeString(n.ID))
	fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(nodeTitle(n, c.levels[n.ID])))
	renderShape(buf, s, cx, cy)
	fmt.Fprintf(buf, `<text class="node-label" x="%.1f" y="%.1f" fill="%s" font-size="14" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		cx, cy, s.Text, html.EscapeString(n.ID))
	buf.WriteString("</g>\n")
}

// nodeTitle builds the hover tooltip text.
func nodeTitle(n *graph.Node, level int) string {
	title := fmt.Sprintf("%s (%s, level %d)", n.ID, n.Kind, level)
	if n.AndJoin {
		title += " - requires all triggers"
	}
	if len(n.Outcomes) > 0 {
		title += " - outcomes:"
		for _, o := range n.Outcomes {
			title += " " + o
		}
	}
	return title
}

func renderShape(buf *bytes.Buffer, s styles.NodeStyle, cx, cy float64) {
	hw, hh := nodeWidth/2, nodeHeight/2
	switch s.Shape {
	case styles.ShapeStadium:
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			cx-hw, cy-hh, nodeWidth, nodeHeight, hh, s.Fill, s.Border)
	case styles.ShapeDiamond:
		fmt.Fprintf(buf, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			cx, cy-hh-8, cx+hw-16, cy, cx, cy+hh+8, cx-hw+16, cy, s.Fill, s.Border)
	case styles.ShapeHexagon:
		inset := 18.0
		fmt.Fprintf(buf, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			cx-hw+inset, cy-hh, cx+hw-inset, cy-hh, cx+hw, cy, cx+hw-inset, cy+hh, cx-hw+inset, cy+hh, cx-hw, cy,
			s.Fill, s.Border)
	default: // box
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			cx-hw, cy-hh, nodeWidth, nodeHeight, s.Fill, s.Border)
	}
}
