package viz

import (
	"fmt"
	"html"

	"github.com/matzehuels/itemgraph/pkg/itemgraph"
)

// DefaultExcludeTypes lists item types that clutter a dependency view and
// are dropped unless the caller says otherwise.
var DefaultExcludeTypes = []string{"Service Definition", "Code Attachment"}

// =============================================================================
// Visualization Graph
// =============================================================================

// Graph is the node/link document consumed by D3.js force layouts.
// Every link endpoint refers to a node present in Nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is one visible item.
type Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`  // "{title} ({type})"
	Title string `json:"title"` // HTML hover snippet
	Type  string `json:"type"`
	Group string `json:"group"` // same as Type; D3 colors by group
}

// Link is a dependency between two visible items.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// =============================================================================
// Transform
// =============================================================================

// Options configures [Transform].
type Options struct {
	// ExcludeTypes removes items of these types along with every link that
	// touches them. May be empty.
	ExcludeTypes []string

	// DedupeLinks emits each (source, target) pair once. Repeated pairs are
	// kept by default.
	DedupeLinks bool
}

// Transform converts an item dependency graph into a visualization graph.
//
// Items whose type is excluded are skipped. An ID that appears more than
// once yields a single node: it keeps the position of its first occurrence
// and takes its fields from the last one. Edges are kept only when both
// endpoints survived; others are dropped silently. Output order follows
// input order, so the same input always produces the same output.
//
// Missing item fields are not validated and pass through as empty strings.
func Transform(g itemgraph.Graph, opts Options) Graph {
	excluded := make(map[string]bool, len(opts.ExcludeTypes))
	for _, t := range opts.ExcludeTypes {
		excluded[t] = true
	}

	out := Graph{
		Nodes: make([]Node, 0, len(g.Items)),
		Links: make([]Link, 0, len(g.Edges)),
	}

	index := make(map[string]int, len(g.Items))
	for _, it := range g.AllItems() {
		if excluded[it.Type] {
			continue
		}
		if i, ok := index[it.ID]; ok {
			out.Nodes[i] = NodeFor(it)
			continue
		}
		index[it.ID] = len(out.Nodes)
		out.Nodes = append(out.Nodes, NodeFor(it))
	}

	var seen map[Link]bool
	if opts.DedupeLinks {
		seen = make(map[Link]bool, len(g.Edges))
	}
	for _, e := range g.Edges {
		_, srcOK := index[e.Source]
		_, dstOK := index[e.Target]
		if !srcOK || !dstOK {
			continue
		}
		l := Link{Source: e.Source, Target: e.Target}
		if seen != nil {
			if seen[l] {
				continue
			}
			seen[l] = true
		}
		out.Links = append(out.Links, l)
	}

	return out
}

// NodeFor builds the visualization node for a single item.
func NodeFor(it itemgraph.Item) Node {
	return Node{
		ID:    it.ID,
		Name:  Label(it),
		Title: HoverTitle(it),
		Type:  it.Type,
		Group: it.Type,
	}
}

// Label returns the plain-text node name "{title} ({type})".
func Label(it itemgraph.Item) string {
	return fmt.Sprintf("%s (%s)", it.Title, it.Type)
}

// HoverTitle returns the HTML snippet shown when hovering a node: the title
// in bold (linked to the item URL when it has one), then type and ID on
// their own lines.
//
// Title, URL, type and ID are HTML-escaped, so a URL containing "&" appears
// as "&amp;" in the returned string. Compare against escaped text when
// matching on it.
func HoverTitle(it itemgraph.Item) string {
	title := html.EscapeString(it.Title)
	if it.HasURL() {
		title = fmt.Sprintf("<a href='%s' target='_blank'>%s</a>", html.EscapeString(it.URL), title)
	}
	return fmt.Sprintf("<b>%s</b><br/>%s<br/>%s<br/>",
		title, html.EscapeString(it.Type), html.EscapeString(it.ID))
}
