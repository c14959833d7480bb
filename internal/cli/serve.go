package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/itemgraph/pkg/pipeline"
	"github.com/matzehuels/itemgraph/pkg/viewer"
)

// serveCommand creates the serve command for the interactive viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve the interactive D3 viewer for an exported graph",
		Long: `Serve starts a local web server that shows the exported graph as a D3
force layout. The file is re-read on every page load, so re-running export
and refreshing the browser shows the new graph. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pipeline.DefaultOutput
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("graph file: %w", err)
			}

			h := viewer.NewHandler(viewer.FileSource(path), c.Logger)
			printSuccess("Serving %s", StyleHighlight.Render(path))
			printKeyValue("URL", StyleLink.Render("http://"+addr))
			printDetail("Press Ctrl+C to stop")
			return viewer.Serve(cmd.Context(), addr, h, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}
