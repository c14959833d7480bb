// Package render provides static renderings of the exported item graph.
//
// The interactive D3 view is served by the viewer package; this package
// and its [nodelink] subpackage produce files:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg).
//
// [nodelink]: github.com/matzehuels/itemgraph/pkg/render/nodelink
package render
