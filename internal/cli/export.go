package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/itemgraph/pkg/config"
	"github.com/matzehuels/itemgraph/pkg/integrations/portal"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
	"github.com/matzehuels/itemgraph/pkg/pipeline"
)

// exportFlags holds the command-line flags for the export command.
// Flags that were not set on the command line leave the config untouched.
type exportFlags struct {
	ids            string // comma-separated seed item IDs
	owner          string // search items owned by this user
	query          string // portal search query
	exclude        string // comma-separated item types to drop
	output         string // node/link JSON path
	snapshot       string // build from a saved item graph instead of the portal
	saveSnapshot   string // also write the raw item graph here
	svg            string // also render a static SVG here
	portalURL      string
	graphService   string
	dedupe         bool
	outsideOrg     bool
	includeReverse bool
	noCache        bool
	refresh        bool
	pick           bool // choose seeds interactively
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export [item-id...]",
		Short: "Export the dependency graph of portal items as D3 JSON",
		Long: `Export fetches the seed items (by ID, or by searching an owner's content),
asks the graph service for every item they depend on and every item that
depends on them, and writes the result as D3 force-layout nodes and links.

Items of excluded types (by default "Service Definition" and "Code Attachment")
are dropped together with every link that touches them.`,
		Example: `  itemgraph export 9f2b6c1e0d8a4b7f9e3c2a1b0d9e8f7a
  itemgraph export --owner jdoe --query 'type:"Web Map"' --pick
  itemgraph export --snapshot output/items.json --exclude "" -o output/all.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cfg, args, cmd.Flags().Changed)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ids, "ids", "", "seed item IDs (comma-separated)")
	cmd.Flags().StringVar(&flags.owner, "owner", "", "use all items owned by this user as seeds")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "portal search query selecting the seeds")
	cmd.Flags().StringVar(&flags.exclude, "exclude", "", "item types to exclude (comma-separated, empty to keep all)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutput, "output JSON file")
	cmd.Flags().StringVar(&flags.snapshot, "snapshot", "", "build from a saved item graph instead of the portal")
	cmd.Flags().StringVar(&flags.saveSnapshot, "save-snapshot", "", "also save the item graph for offline runs")
	cmd.Flags().StringVar(&flags.svg, "svg", "", "also render a static SVG diagram")
	cmd.Flags().StringVar(&flags.portalURL, "portal", "", "portal URL (default "+portal.DefaultURL+")")
	cmd.Flags().StringVar(&flags.graphService, "graph-service", "", "dependency graph service URL")
	cmd.Flags().BoolVar(&flags.dedupe, "dedupe-links", false, "drop repeated source/target pairs")
	cmd.Flags().BoolVar(&flags.outsideOrg, "outside-org", true, "follow dependencies outside the organization")
	cmd.Flags().BoolVar(&flags.includeReverse, "include-reverse", true, "include items that depend on the seeds")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached responses and graphs")
	cmd.Flags().BoolVar(&flags.pick, "pick", false, "choose seed items interactively")

	return cmd
}

// apply copies explicitly set flags (and positional item IDs) onto cfg.
func (f *exportFlags) apply(cfg *config.Config, args []string, changed func(string) bool) {
	if changed("ids") || len(args) > 0 {
		cfg.Export.ItemIDs = append(splitList(f.ids), args...)
	}
	if changed("owner") {
		cfg.Export.Owner = f.owner
	}
	if changed("query") {
		cfg.Export.Query = f.query
	}
	if changed("exclude") {
		cfg.Export.ExcludeTypes = splitList(f.exclude)
	}
	if changed("output") {
		cfg.Export.Output = f.output
	}
	if changed("snapshot") {
		cfg.Export.Snapshot = f.snapshot
	}
	if changed("dedupe-links") {
		cfg.Export.DedupeLinks = f.dedupe
	}
	if changed("portal") {
		cfg.Portal.URL = f.portalURL
	}
	if changed("graph-service") {
		cfg.Portal.GraphServiceURL = f.graphService
	}
	if changed("outside-org") {
		cfg.Portal.OutsideOrg = f.outsideOrg
	}
	if changed("include-reverse") {
		cfg.Portal.IncludeReverse = f.includeReverse
	}
}

// exportOptions converts the merged settings into pipeline options.
func exportOptions(cfg *config.Config, f exportFlags) pipeline.Options {
	return pipeline.Options{
		ItemIDs: cfg.Export.ItemIDs,
		Owner:   cfg.Export.Owner,
		Query:   cfg.Export.Query,
		Build: itemgraph.BuildOptions{
			OutsideOrg:     cfg.Portal.OutsideOrg,
			IncludeReverse: cfg.Portal.IncludeReverse,
		},
		ExcludeTypes:   cfg.Export.ExcludeTypes,
		DedupeLinks:    cfg.Export.DedupeLinks,
		Output:         cfg.Export.Output,
		SVGOutput:      f.svg,
		SnapshotOutput: f.saveSnapshot,
		Snapshot:       cfg.Export.Snapshot,
		Refresh:        f.refresh,
		GraphTTL:       cfg.Cache.TTL,
	}
}

func (c *CLI) runExport(ctx context.Context, cfg *config.Config, flags exportFlags) error {
	ctx = withLogger(ctx, c.Logger)

	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	opts := exportOptions(cfg, flags)
	opts.Logger = c.Logger

	var (
		src     pipeline.ItemSource
		builder itemgraph.Builder
	)
	if opts.Snapshot == "" {
		sess, err := portal.Open(ctx, portal.Config{
			URL:             cfg.Portal.URL,
			Token:           cfg.Portal.Token,
			GraphServiceURL: cfg.Portal.GraphServiceURL,
			Cache:           runner.Cache,
			CacheTTL:        cfg.Cache.TTL,
		})
		if err != nil {
			return err
		}
		defer sess.Close()
		c.Logger.Info("Connected", "portal", sess.PortalName(), "user", sess.Username(), "url", sess.BaseURL())
		src, builder = sess, sess
	}

	var spinner *Spinner
	if flags.pick {
		opts.Select = pickItems
	} else {
		spinner = newSpinnerWithContext(ctx, "Exporting item graph...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, src, builder, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Export failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	printSuccess("Exported %s", StyleHighlight.Render(opts.Output))
	printStats(result.Stats, result.CacheInfo.BuildHit)
	if result.Stats.NodeCount == 0 {
		printWarning("Every item was excluded; the graph is empty")
	}
	for _, f := range result.Files {
		printFile(f)
	}
	printNewline()
	printNextStep("View it", appName+" serve "+opts.Output)
	return nil
}
