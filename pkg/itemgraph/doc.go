// Package itemgraph models the dependency graph between portal content items.
//
// # Overview
//
// A [Graph] holds the [Item] records and directed [Edge] pairs returned by a
// graph builder. An edge (source, target) means source depends on or
// references target. The graph is treated as immutable input: nothing in
// this module mutates it after construction.
//
// # Builders
//
// [Builder] is the seam to whatever discovers dependencies. The portal
// integration provides a remote builder; [SnapshotBuilder] replays a graph
// saved earlier with [ExportSnapshot], which is useful offline and in tests.
//
// # Snapshot Format
//
//	{
//	  "items": [
//	    {"id": "a1", "title": "Parcels", "type": "Feature Service", "url": "https://..."},
//	    {"id": "m1", "title": "Parcel Viewer", "type": "Web Map"}
//	  ],
//	  "edges": [["m1", "a1"]]
//	}
package itemgraph
