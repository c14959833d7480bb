package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/itemgraph/pkg/viz"
)

func sampleGraph() viz.Graph {
	return viz.Graph{
		Nodes: []viz.Node{
			{ID: "m1", Name: "Viewer (Web Map)", Type: "Web Map", Group: "Web Map"},
			{ID: "a1", Name: "Parcels (Feature Service)", Type: "Feature Service", Group: "Feature Service"},
			{ID: "a2", Name: "Roads (Feature Service)", Type: "Feature Service", Group: "Feature Service"},
		},
		Links: []viz.Link{
			{Source: "m1", Target: "a1"},
			{Source: "m1", Target: "a2"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT should start with digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`"m1" [label="Viewer (Web Map)"`,
		`"a1" [label="Parcels (Feature Service)"`,
		`"a2" [label="Roads (Feature Service)"`,
		`"m1" -> "a1";`,
		`"m1" -> "a2";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Viewer (Web Map)\nWeb Map\nm1"`) {
		t.Errorf("detailed label missing type and id:\n%s", dot)
	}
}

func TestToDOTGroupColors(t *testing.T) {
	colors := groupColors(sampleGraph().Nodes)
	if len(colors) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(colors))
	}
	if colors["Web Map"] == colors["Feature Service"] {
		t.Error("distinct groups should get distinct colors")
	}
	if colors["Web Map"] != palette[0] {
		t.Errorf("first group color = %s, want %s", colors["Web Map"], palette[0])
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(viz.Graph{}, Options{})
	if !strings.Contains(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph should still produce a valid digraph:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") {
		t.Fatal("output is not SVG")
	}
	if !strings.Contains(s, `viewBox="0 0 `) {
		t.Error("viewBox should be normalized to a zero origin")
	}
	if !strings.Contains(s, "Parcels (Feature Service)") {
		t.Error("node label missing from SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.50 200.00" width="100" height="200"`) {
		t.Errorf("unexpected root: %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be returned unchanged")
	}
}
