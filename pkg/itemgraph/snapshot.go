package itemgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadSnapshot decodes an item-graph snapshot from r.
//
// The input is a JSON object with "items" and "edges" arrays:
//
//	{
//	  "items": [{"id": "a1", "title": "Parcels", "type": "Feature Service"}],
//	  "edges": [["m1", "a1"]]
//	}
//
// No validation is performed: edges may reference unknown items and items
// may repeat. ReadSnapshot does not close r.
func ReadSnapshot(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &g, nil
}

// ImportSnapshot reads a snapshot file at path.
func ImportSnapshot(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// WriteSnapshot encodes g as a snapshot to w.
func WriteSnapshot(g *Graph, w io.Writer) error {
	out := Graph{Items: g.Items, Edges: g.Edges}
	if out.Items == nil {
		out.Items = []Item{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSnapshot writes g to path, creating parent directories as needed.
func ExportSnapshot(g *Graph, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SnapshotBuilder serves a previously saved graph regardless of the seed
// items. It lets a run proceed without a portal connection.
type SnapshotBuilder struct {
	Path string
}

// Build loads the snapshot file. The seed items and options are ignored.
func (b SnapshotBuilder) Build(ctx context.Context, _ []Item, _ BuildOptions) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ImportSnapshot(b.Path)
}

var _ Builder = SnapshotBuilder{}
