package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/itemgraph/pkg/cache"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
	"github.com/matzehuels/itemgraph/pkg/observability"
	"github.com/matzehuels/itemgraph/pkg/viz"
)

// ErrNoItems is returned when the seed selection is empty.
var ErrNoItems = errors.New("no items selected")

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fetch → build → transform → export pipeline.
//
// src supplies seed items and builder constructs the graph; both are
// usually the same portal session. Neither is used when opts.Snapshot is
// set, and src may then be nil.
func (r *Runner) Execute(ctx context.Context, src ItemSource, builder itemgraph.Builder, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{RunID: uuid.NewString()}
	ctx = observability.WithRunID(ctx, result.RunID)
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Fetch
	if opts.Snapshot == "" {
		fetchStart := time.Now()
		seeds, err := r.fetch(ctx, src, opts)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		result.Stats.FetchTime = time.Since(fetchStart)

		if opts.Select != nil && len(seeds) > 0 {
			if seeds, err = opts.Select(seeds); err != nil {
				return nil, fmt.Errorf("select: %w", err)
			}
		}
		if len(seeds) == 0 {
			return nil, ErrNoItems
		}
		result.Seeds = seeds
		result.Stats.SeedCount = len(seeds)

		logger.Info("fetched items", "items", len(seeds), "duration", result.Stats.FetchTime)
		for _, it := range seeds {
			logger.Debug("seed", "id", it.ID, "type", it.Type, "title", it.Title)
		}
	} else {
		builder = itemgraph.SnapshotBuilder{Path: opts.Snapshot}
		logger.Info("using snapshot", "path", opts.Snapshot)
	}

	// Stage 2: Build
	buildStart := time.Now()
	g, hit, err := r.BuildWithCacheInfo(ctx, builder, result.Seeds, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.ItemCount = g.ItemCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.BuildHit = hit

	logger.Info("built item graph",
		"items", g.ItemCount(),
		"edges", g.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.BuildTime)
	for _, it := range g.AllItems() {
		logger.Debug("item", "id", it.ID, "type", it.Type, "title", it.Title)
	}

	// Stages 3 and 4: Transform and export
	exportStart := time.Now()
	files, vg, err := r.Export(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Viz = vg
	result.Files = files
	result.Stats.NodeCount = len(vg.Nodes)
	result.Stats.LinkCount = len(vg.Links)
	result.Stats.ExportTime = time.Since(exportStart)

	logger.Info("exported graph",
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"excluded", result.Stats.Excluded(),
		"path", opts.Output)

	return result, nil
}

func (r *Runner) fetch(ctx context.Context, src ItemSource, opts Options) ([]itemgraph.Item, error) {
	if src == nil {
		return nil, errors.New("no item source")
	}
	source := fetchSource(opts)
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, source)
	start := time.Now()

	items, err := Fetch(ctx, src, opts)
	hooks.OnFetchComplete(ctx, source, len(items), time.Since(start), err)
	return items, err
}

// BuildWithCacheInfo builds the item graph for seeds, consulting the cache
// first, and reports whether the result came from cache. Builders that
// implement [itemgraph.CacheScoper] get their own key space.
//
// Snapshot builds are never cached. Empty graphs are not cached either.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, builder itemgraph.Builder, seeds []itemgraph.Item, opts Options) (*itemgraph.Graph, bool, error) {
	if builder == nil {
		return nil, false, errors.New("no graph builder")
	}
	_, fromSnapshot := builder.(itemgraph.SnapshotBuilder)

	keyOpts := opts.GraphKeyOpts()
	if s, ok := builder.(itemgraph.CacheScoper); ok {
		keyOpts.Scope = s.CacheScope()
	}
	cacheKey := r.Keyer.GraphKey(itemgraph.IDs(seeds), keyOpts)
	if !fromSnapshot && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := itemgraph.ReadSnapshot(bytes.NewReader(data))
			if err == nil {
				return g, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(seeds))
	start := time.Now()

	g, err := builder.Build(ctx, seeds, opts.Build)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnBuildComplete(ctx, g.ItemCount(), g.EdgeCount(), time.Since(start), nil)

	if !fromSnapshot && g.ItemCount() > 0 {
		var buf bytes.Buffer
		if err := itemgraph.WriteSnapshot(g, &buf); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, buf.Bytes(), opts.GraphTTL)
		}
	}
	return g, false, nil
}

// Export transforms g and writes the node/link JSON to opts.Output, plus
// the optional snapshot and SVG files. It returns the written paths.
func (r *Runner) Export(ctx context.Context, g *itemgraph.Graph, opts Options) ([]string, viz.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Output)
	start := time.Now()

	vg := viz.Transform(*g, opts.TransformOptions())
	files, err := r.writeOutputs(ctx, g, vg, opts)
	hooks.OnExportComplete(ctx, opts.Output, len(vg.Nodes), len(vg.Links), time.Since(start), err)
	if err != nil {
		return nil, viz.Graph{}, err
	}
	return files, vg, nil
}

func (r *Runner) writeOutputs(ctx context.Context, g *itemgraph.Graph, vg viz.Graph, opts Options) ([]string, error) {
	if err := viz.ExportJSON(vg, opts.Output); err != nil {
		return nil, err
	}
	files := []string{opts.Output}

	if opts.SnapshotOutput != "" {
		if err := itemgraph.ExportSnapshot(g, opts.SnapshotOutput); err != nil {
			return files, fmt.Errorf("save snapshot: %w", err)
		}
		files = append(files, opts.SnapshotOutput)
	}

	if opts.SVGOutput != "" {
		data, err := Render(ctx, vg, FormatSVG, RenderOptions{})
		if err != nil {
			return files, err
		}
		if err := writeFile(opts.SVGOutput, data); err != nil {
			return files, err
		}
		files = append(files, opts.SVGOutput)
	}
	return files, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
