package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/itemgraph/pkg/pipeline"
	"github.com/matzehuels/itemgraph/pkg/viz"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // dot, svg, png, pdf, json
	detailed bool     // add type and ID to node labels
	scale    float64  // PNG scale factor
}

// renderCommand creates the render command for static diagrams of an
// exported graph.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 2.0}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render an exported graph as a static diagram",
		Long: `Render draws an exported node/link graph with Graphviz.

PNG and PDF output need rsvg-convert on the PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := pipeline.DefaultOutput
			if len(args) == 1 {
				input = args[0]
			}
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(withLogger(cmd.Context(), c.Logger), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include item type and ID in node labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := viz.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded graph", "path", input, "nodes", len(g.Nodes), "links", len(g.Links))

	artifacts, err := pipeline.RenderAll(ctx, g, opts.formats, pipeline.RenderOptions{
		Detailed: opts.detailed,
		Scale:    opts.scale,
	})
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, f := range opts.formats {
		path := base + "." + f
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if path == input {
			path = base + ".rendered." + f
		}
		if err := writeArtifact(path, artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}
	prog.done("Rendered " + filepath.Base(input))
	return nil
}

// basePath derives the base output path: the output path without a known
// format extension, or the input path without its extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
