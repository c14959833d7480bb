// Package viz turns an item dependency graph into a D3.js node/link document.
//
// # Transform
//
// [Transform] filters and relabels an [itemgraph.Graph]:
//
//   - items of an excluded type are dropped (see [DefaultExcludeTypes])
//   - each remaining item becomes a [Node] with a plain-text name and an
//     HTML hover title that links to the item URL when there is one
//   - edges become [Link] records only when both endpoints are still present
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "m1", "name": "Viewer (Web Map)", "title": "<b>Viewer</b><br/>Web Map<br/>m1<br/>",
//	     "type": "Web Map", "group": "Web Map"}
//	  ],
//	  "links": [
//	    {"source": "m1", "target": "a1"}
//	  ]
//	}
//
// [ExportJSON] writes this document to a file, creating parent directories;
// [ImportJSON] reads it back.
//
// [itemgraph.Graph]: github.com/matzehuels/itemgraph/pkg/itemgraph.Graph
package viz
