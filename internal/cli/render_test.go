package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/itemgraph/pkg/itemgraph"
	"github.com/matzehuels/itemgraph/pkg/viz"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "output/graph.json", "output/graph"},
		{"out/diagram.svg", "graph.json", "out/diagram"},
		{"out/diagram", "graph.json", "out/diagram"},
		{"out/diagram.v2", "graph.json", "out/diagram.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRunRenderDOT(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	g := viz.Transform(itemgraph.Graph{
		Items: []itemgraph.Item{{ID: "a", Title: "Viewer", Type: "Web Map"}, {ID: "b", Title: "Parcels", Type: "Feature Service"}},
		Edges: []itemgraph.Edge{{Source: "a", Target: "b"}},
	}, viz.Options{})
	if err := viz.ExportJSON(g, input); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	if err := c.runRender(context.Background(), input, renderOpts{formats: []string{"dot"}}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "graph.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph") || !strings.Contains(string(data), "Viewer") {
		t.Errorf("unexpected DOT output:\n%s", data)
	}
}

func TestRunRenderJSONDoesNotOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	if err := viz.ExportJSON(viz.Graph{}, input); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	if err := c.runRender(context.Background(), input, renderOpts{formats: []string{"json"}}); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "graph.rendered.json")); err != nil {
		t.Errorf("expected renamed output: %v", err)
	}
}

func TestRunRenderMissingInput(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	err := c.runRender(context.Background(), filepath.Join(t.TempDir(), "nope.json"), renderOpts{formats: []string{"dot"}})
	if err == nil {
		t.Error("expected error for missing input")
	}
}
