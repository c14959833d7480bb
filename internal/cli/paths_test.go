package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/itemgraph/pkg/cache"
	"github.com/matzehuels/itemgraph/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		c, err := newCache(ctx, config.Default(), true)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := c.(*cache.NullCache); !ok {
			t.Errorf("got %T, want *cache.NullCache", c)
		}
	})

	t.Run("configured dir", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Dir = filepath.Join(t.TempDir(), "c")

		c, err := newCache(ctx, cfg, false)
		if err != nil {
			t.Fatal(err)
		}
		tc, ok := c.(*cache.TieredCache)
		if !ok {
			t.Fatalf("got %T, want *cache.TieredCache", c)
		}
		fc, ok := tc.Back().(*cache.FileCache)
		if !ok {
			t.Fatalf("got %T, want *cache.FileCache", c)
		}
		if fc.Dir() != cfg.Cache.Dir {
			t.Errorf("Dir() = %q, want %q", fc.Dir(), cfg.Cache.Dir)
		}
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", t.TempDir())

		c, err := persistentCache(ctx, config.Default())
		if err != nil {
			t.Fatal(err)
		}
		fc, ok := c.(*cache.FileCache)
		if !ok {
			t.Fatalf("got %T, want *cache.FileCache", c)
		}
		if !strings.HasSuffix(fc.Dir(), appName) {
			t.Errorf("Dir() = %q, should end with %q", fc.Dir(), appName)
		}
	})
}

func TestResolveCacheDir(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.cfg = config.Default()
	c.cfg.Cache.Dir = "/var/cache/itemgraph"

	dir, err := c.resolveCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/var/cache/itemgraph" {
		t.Errorf("resolveCacheDir() = %q", dir)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ,,c ", []string{"a", "b", "c"}},
		{",", nil},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg, dot"); len(got) != 2 || got[1] != "dot" {
		t.Errorf("parseFormats = %v", got)
	}
}
