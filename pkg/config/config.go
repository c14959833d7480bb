// Package config loads itemgraph settings from a TOML file, a .env file and
// environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, environment
// variables, command-line flags (applied by the CLI).
//
//	[portal]
//	url = "https://www.arcgis.com"
//	token = ""
//	graph_service_url = "https://graphs.example.com/build"
//	outside_org = true
//	include_reverse = true
//
//	[export]
//	item_ids = ["9f2b...", "41c0..."]
//	owner = ""
//	query = ""
//	exclude_types = ["Service Definition", "Code Attachment"]
//	output = "output/graph.json"
//	dedupe_links = false
//
//	[cache]
//	ttl = "24h"
//	redis_url = ""
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	ierrors "github.com/matzehuels/itemgraph/pkg/errors"
	"github.com/matzehuels/itemgraph/pkg/integrations/portal"
	"github.com/matzehuels/itemgraph/pkg/viz"
)

const appName = "itemgraph"

// Environment variables that override file values.
const (
	EnvPortalURL       = "ITEMGRAPH_PORTAL_URL"
	EnvPortalToken     = "ITEMGRAPH_PORTAL_TOKEN"
	EnvGraphServiceURL = "ITEMGRAPH_GRAPH_SERVICE_URL"
	EnvRedisURL        = "ITEMGRAPH_REDIS_URL"
)

// Defaults.
const (
	DefaultOutput   = "output/graph.json"
	DefaultCacheTTL = 24 * time.Hour
)

// Config is the full set of settings for a run.
type Config struct {
	Portal PortalConfig `toml:"portal"`
	Export ExportConfig `toml:"export"`
	Cache  CacheConfig  `toml:"cache"`
}

// PortalConfig locates the portal and the graph service.
type PortalConfig struct {
	URL             string `toml:"url"`
	Token           string `toml:"token"`
	GraphServiceURL string `toml:"graph_service_url"`
	OutsideOrg      bool   `toml:"outside_org"`
	IncludeReverse  bool   `toml:"include_reverse"`
}

// ExportConfig selects the seed items and shapes the output.
type ExportConfig struct {
	ItemIDs      []string `toml:"item_ids"`
	Owner        string   `toml:"owner"`
	Query        string   `toml:"query"`
	ExcludeTypes []string `toml:"exclude_types"`
	Output       string   `toml:"output"`
	DedupeLinks  bool     `toml:"dedupe_links"`
	Snapshot     string   `toml:"snapshot"`
}

// CacheConfig selects the response cache backend.
// An empty RedisURL means the file cache under the user cache directory.
type CacheConfig struct {
	TTL      time.Duration `toml:"ttl"`
	RedisURL string        `toml:"redis_url"`
	Dir      string        `toml:"dir"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Portal: PortalConfig{
			URL:            portal.DefaultURL,
			OutsideOrg:     true,
			IncludeReverse: true,
		},
		Export: ExportConfig{
			ExcludeTypes: slices.Clone(viz.DefaultExcludeTypes),
			Output:       DefaultOutput,
		},
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/itemgraph/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides.
//
// With an empty path the default location is tried and a missing file is
// not an error. An explicit path must exist. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ierrors.Wrap(ierrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return ierrors.Wrap(ierrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return ierrors.New(ierrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Decode reads TOML settings from r on top of c.
func (c *Config) Decode(r io.Reader) error {
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return ierrors.Wrap(ierrors.ErrCodeInvalidConfig, err, "parse config")
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Variables that are already set win.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ierrors.Wrap(ierrors.ErrCodeInvalidConfig, err, "load %s", p)
		}
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. lookup is
// normally [os.LookupEnv]. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvPortalURL, &c.Portal.URL)
	set(EnvPortalToken, &c.Portal.Token)
	set(EnvGraphServiceURL, &c.Portal.GraphServiceURL)
	set(EnvRedisURL, &c.Cache.RedisURL)
}

// Validate checks that the settings describe a runnable export.
func (c *Config) Validate() error {
	e := c.Export
	if len(e.ItemIDs) == 0 && e.Owner == "" && e.Query == "" && e.Snapshot == "" {
		return ierrors.New(ierrors.ErrCodeInvalidConfig, "no items selected: set item ids, an owner, a query, or a snapshot")
	}
	if len(e.ItemIDs) > 0 {
		if err := ierrors.ValidateItemIDs(e.ItemIDs); err != nil {
			return err
		}
	}
	if err := ierrors.ValidateOutputPath(e.Output); err != nil {
		return err
	}
	if e.Snapshot == "" {
		if err := ierrors.ValidateURL(c.Portal.URL); err != nil {
			return ierrors.Wrap(ierrors.ErrCodeInvalidConfig, err, "portal url")
		}
		if c.Portal.GraphServiceURL == "" {
			return ierrors.New(ierrors.ErrCodeInvalidConfig, "graph service url is required unless a snapshot is given")
		}
		if err := ierrors.ValidateURL(c.Portal.GraphServiceURL); err != nil {
			return ierrors.Wrap(ierrors.ErrCodeInvalidConfig, err, "graph service url")
		}
	}
	if c.Cache.TTL < 0 {
		return ierrors.New(ierrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if r := c.Cache.RedisURL; r != "" && !strings.HasPrefix(r, "redis://") && !strings.HasPrefix(r, "rediss://") {
		return ierrors.New(ierrors.ErrCodeInvalidConfig, "redis url must use redis:// or rediss://")
	}
	return nil
}

// Redacted returns a copy safe to print: the token is masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Export.ItemIDs = slices.Clone(c.Export.ItemIDs)
	out.Export.ExcludeTypes = slices.Clone(c.Export.ExcludeTypes)
	if out.Portal.Token != "" {
		out.Portal.Token = "********"
	}
	return &out
}

// Write encodes c as TOML to w.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
