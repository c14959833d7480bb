// Package pkg holds the libraries behind itemgraph.
//
// # Overview
//
// itemgraph exports the dependency graph of ArcGIS portal items (web maps,
// apps, services, layers) as a D3 force-layout document. The packages are:
//
//   - [itemgraph]: portal items, dependency edges, and graph snapshots
//   - [viz]: the transform from item graph to D3 nodes/links, and its JSON export
//   - [integrations]: the cached HTTP client and the portal REST client
//   - [pipeline]: orchestration (fetch → build → transform → export)
//   - [config]: TOML, .env and environment settings
//   - [cache], [observability], [errors]: shared infrastructure
//   - [render], [viewer]: static diagrams and the interactive browser view
//
// # Data Flow
//
//	portal search / item lookup      (integrations/portal)
//	         ↓
//	graph service                    (itemgraph.Builder)
//	         ↓
//	viz.Transform                    (exclude types, build nodes and links)
//	         ↓
//	graph.json                       (viz.ExportJSON)
//
// # Quick Start
//
//	sess, err := portal.Open(ctx, portal.Config{
//	    URL:             "https://www.arcgis.com",
//	    GraphServiceURL: "https://graph.example.com/build",
//	})
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, sess, sess, pipeline.Options{
//	    Owner:        "jdoe",
//	    ExcludeTypes: viz.DefaultExcludeTypes,
//	})
//
// [itemgraph]: github.com/matzehuels/itemgraph/pkg/itemgraph
// [viz]: github.com/matzehuels/itemgraph/pkg/viz
// [integrations]: github.com/matzehuels/itemgraph/pkg/integrations
// [pipeline]: github.com/matzehuels/itemgraph/pkg/pipeline
// [config]: github.com/matzehuels/itemgraph/pkg/config
// [cache]: github.com/matzehuels/itemgraph/pkg/cache
// [observability]: github.com/matzehuels/itemgraph/pkg/observability
// [errors]: github.com/matzehuels/itemgraph/pkg/errors
// [render]: github.com/matzehuels/itemgraph/pkg/render
// [viewer]: github.com/matzehuels/itemgraph/pkg/viewer
package pkg
