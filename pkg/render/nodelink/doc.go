// Package nodelink renders an exported item graph as a static node-link
// diagram.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// The generated DOT lays dependencies out left to right (rankdir=LR) with
// rounded boxes colored by item type. It can also be saved and processed
// with external Graphviz tools.
//
// SVG rendering runs in-process via [github.com/goccy/go-graphviz]. PDF and
// PNG conversion requires librsvg (rsvg-convert).
package nodelink
