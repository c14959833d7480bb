// Package pipeline runs an item graph export from seed items to the D3 JSON
// file.
//
// This package implements the fetch → build → transform → export flow used
// by the CLI. The stages are:
//
//  1. Fetch: look up seed items by ID, or search the portal by owner/query
//  2. Build: obtain the dependency graph spanning the seeds from a builder
//  3. Transform: filter and relabel the graph for visualization
//  4. Export: write the node/link JSON (and optional extra artifacts)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ItemIDs:      []string{"9f2b...", "41c0..."},
//	    ExcludeTypes: viz.DefaultExcludeTypes,
//	    Output:       "output/graph.json",
//	}
//	result, err := runner.Execute(ctx, session, session, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.NodeCount, result.Stats.LinkCount)
//
// Built graphs are cached by seed set and builder options, so repeated
// exports of the same items only pay for the transform.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/itemgraph/pkg/cache"
	ierrors "github.com/matzehuels/itemgraph/pkg/errors"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
	"github.com/matzehuels/itemgraph/pkg/viz"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutput is where the node/link JSON is written.
	DefaultOutput = "output/graph.json"

	// DefaultGraphTTL is how long built graphs stay cached.
	DefaultGraphTTL = 24 * time.Hour
)

// Format constants for extra artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return ierrors.New(ierrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Selector narrows the fetched seed items before the graph is built, for
// example through an interactive picker. Returning an empty slice aborts
// the run.
type Selector func(items []itemgraph.Item) ([]itemgraph.Item, error)

// Options contains all configuration for an export run.
type Options struct {
	// Seed selection. ItemIDs wins over Owner/Query.
	ItemIDs []string
	Owner   string
	Query   string

	// Graph builder switches.
	Build itemgraph.BuildOptions

	// Transform options.
	ExcludeTypes []string
	DedupeLinks  bool

	// Output paths. SVGOutput and SnapshotOutput are optional.
	Output         string
	SVGOutput      string
	SnapshotOutput string

	// Snapshot replaces fetch and build with a saved item graph.
	Snapshot string

	// Refresh bypasses cached responses and graphs.
	Refresh bool

	// GraphTTL is the cache lifetime of built graphs.
	GraphTTL time.Duration

	// Runtime options
	Logger *log.Logger
	Select Selector
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Snapshot == "" && len(o.ItemIDs) == 0 && o.Owner == "" && o.Query == "" {
		return ierrors.New(ierrors.ErrCodeInvalidInput, "item ids, owner, query, or snapshot is required")
	}
	if len(o.ItemIDs) > 0 {
		if err := ierrors.ValidateItemIDs(o.ItemIDs); err != nil {
			return err
		}
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if err := ierrors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if o.GraphTTL <= 0 {
		o.GraphTTL = DefaultGraphTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// TransformOptions returns the options for the visualization transform.
func (o *Options) TransformOptions() viz.Options {
	return viz.Options{
		ExcludeTypes: o.ExcludeTypes,
		DedupeLinks:  o.DedupeLinks,
	}
}

// GraphKeyOpts returns cache key options for built graphs.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		OutsideOrg:     o.Build.OutsideOrg,
		IncludeReverse: o.Build.IncludeReverse,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	// Seeds are the items the graph was built from. Empty for snapshot runs.
	Seeds []itemgraph.Item

	// Graph is the item graph as returned by the builder.
	Graph *itemgraph.Graph

	// Viz is the transformed graph that was written to Output.
	Viz viz.Graph

	// Files lists every file written, output first.
	Files []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeedCount  int
	ItemCount  int
	EdgeCount  int
	NodeCount  int
	LinkCount  int
	FetchTime  time.Duration
	BuildTime  time.Duration
	ExportTime time.Duration
}

// Excluded returns how many items the transform dropped.
func (s Stats) Excluded() int { return s.ItemCount - s.NodeCount }

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit bool // Whether the item graph came from cache
}
