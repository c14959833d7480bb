// Package cli implements the itemgraph command-line interface.
//
// The CLI exports the dependency graph of portal items as D3 node/link JSON
// and offers a few helpers around that file: rendering static diagrams,
// serving an interactive viewer, and managing the response cache.
//
// # Commands
//
//   - export: Fetch seed items, build their dependency graph, write graph.json
//   - render: Turn an exported graph.json into DOT, SVG, PNG, or PDF
//   - serve: Serve the interactive D3 viewer for an exported graph.json
//   - cache: Manage the response cache
//   - config: Print the effective configuration
//
// # Configuration
//
// Settings are read from a TOML file (--config, or the default location),
// then from ITEMGRAPH_* environment variables (a .env file in the working
// directory is loaded first), and finally from command-line flags.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/itemgraph/pkg/buildinfo"
	"github.com/matzehuels/itemgraph/pkg/cache"
	"github.com/matzehuels/itemgraph/pkg/config"
	"github.com/matzehuels/itemgraph/pkg/observability"
	"github.com/matzehuels/itemgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "itemgraph"

	// defaultAddr is where the viewer listens unless --addr is given.
	defaultAddr = "127.0.0.1:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Export ArcGIS item dependency graphs for D3",
		Long:         `itemgraph fetches portal items, builds the graph of items they depend on (and that depend on them), and writes it as a D3 force-layout node/link JSON file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			if c.Logger.GetLevel() <= log.DebugLevel {
				c.registerHooks()
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// registerHooks routes observability events to the debug log.
func (c *CLI) registerHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCache picks the cache backend: none, Redis when a URL is configured,
// otherwise files under the cache directory. Persistent backends get an
// in-memory tier in front.
func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	back, err := persistentCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	front, err := cache.NewMemoryCache(cache.DefaultMemoryEntries)
	if err != nil {
		return back, nil
	}
	return cache.NewTieredCache(front, back), nil
}

func persistentCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Cache.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/itemgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if formats := splitList(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
