package itemgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Item is a content entity in the portal (a map, service, application, ...).
// Identity is by ID; two items with the same ID are the same entity.
//
// Fields absent from the source decode to the empty string. URL is empty
// for items that are not hosted.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	URL   string `json:"url,omitempty"`
	Owner string `json:"owner,omitempty"`
}

// HasURL reports whether the item is hosted at a non-empty URL.
func (i Item) HasURL() bool { return i.URL != "" }

// Edge is a directed dependency: Source depends on (or references) Target.
//
// On the wire an edge is a two-element array ["source", "target"], the shape
// produced by the portal's graph builder. The object form
// {"source": ..., "target": ...} is accepted on input as well.
type Edge struct {
	Source string
	Target string
}

// MarshalJSON encodes the edge as a [source, target] pair.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Source, e.Target})
}

// UnmarshalJSON decodes either a [source, target] pair or an object with
// source/target keys.
func (e *Edge) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Source string `json:"source"`
			Target string `json:"target"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		e.Source, e.Target = obj.Source, obj.Target
		return nil
	}

	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("edge must have 2 endpoints, got %d", len(pair))
	}
	e.Source, e.Target = pair[0], pair[1]
	return nil
}

// Graph is the full set of items and dependency edges supplied by the graph
// builder. It is read-only input to the visualization transform.
//
// Duplicate edges are kept as supplied.
type Graph struct {
	Items []Item `json:"items"`
	Edges []Edge `json:"edges"`
}

// AllItems returns the items in builder order.
func (g Graph) AllItems() []Item { return g.Items }

// ItemCount returns the number of items in the graph.
func (g Graph) ItemCount() int { return len(g.Items) }

// EdgeCount returns the number of edges in the graph, duplicates included.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// BuildOptions controls how far the graph builder reaches.
type BuildOptions struct {
	// OutsideOrg follows dependencies onto items owned by other organizations.
	OutsideOrg bool `json:"outside_org"`
	// IncludeReverse also discovers items that depend on the seed items.
	IncludeReverse bool `json:"include_reverse"`
}

// Builder constructs the dependency graph spanning a set of seed items.
// Traversal and dependency discovery belong to the implementation.
type Builder interface {
	Build(ctx context.Context, items []Item, opts BuildOptions) (*Graph, error)
}

// CacheScoper is implemented by builders whose graphs depend on the portal,
// service or credentials they were built with. Graphs cached under one
// scope are never served for another.
type CacheScoper interface {
	CacheScope() string
}

// IDs returns the IDs of items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
