package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/itemgraph/pkg/render/nodelink"
	"github.com/matzehuels/itemgraph/pkg/viz"
)

// RenderOptions configures static artifact rendering.
type RenderOptions struct {
	Detailed bool    // Include type and ID in node labels
	Scale    float64 // PNG scale factor (default 2.0)
}

// Render produces a single artifact for g in the given format.
func Render(ctx context.Context, g viz.Graph, format string, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return marshalViz(g)
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2.0
		}
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// RenderAll renders g in every requested format, keyed by format.
func RenderAll(ctx context.Context, g viz.Graph, formats []string, opts RenderOptions) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, f := range formats {
		data, err := Render(ctx, g, f, opts)
		if err != nil {
			return nil, err
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

func marshalViz(g viz.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := viz.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
