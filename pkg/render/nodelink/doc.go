// Package nodelink renders flow graphs as classic node-link diagrams
// using Graphviz.
//
// This is the supplemental export path: where the primary HTML artifact
// places nodes at the exact coordinates computed by the layout stages,
// nodelink hands placement to Graphviz's dot engine, which is convenient
// for embedding static images in documentation.
//
//	dot := nodelink.ToDOT(g, styles.Default())
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
package nodelink
