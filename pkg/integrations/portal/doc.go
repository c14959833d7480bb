// Package portal provides a client for a GIS content portal's sharing REST
// API and for the dependency graph service that sits next to it.
//
// # Usage
//
//	sess, err := portal.Open(ctx, portal.Config{
//	    URL:             "https://www.arcgis.com",
//	    Token:           token,
//	    GraphServiceURL: "https://graphs.example.com/build",
//	    CacheTTL:        time.Hour,
//	})
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	item, err := sess.GetItem(ctx, "9f2b...", false)
//	res, err := sess.Search(ctx, portal.OwnerQuery("jdoe", ""), false)
//	g, err := sess.Build(ctx, res.Items, itemgraph.BuildOptions{OutsideOrg: true})
//
// # Errors
//
// The sharing API reports many failures in a JSON body with HTTP 200:
//
//	{"error": {"code": 400, "message": "Item does not exist or is inaccessible."}}
//
// These are mapped to the same sentinels as HTTP status failures:
// [integrations.ErrNotFound], [integrations.ErrUnauthorized] (codes 401,
// 403, 498 and 499), and [integrations.ErrNetwork].
//
// # Pagination
//
// [Client.Search] reads only the first page of results.
// [SearchResult.Truncated] reports when matches were left behind.
//
// [integrations.ErrNotFound]: github.com/matzehuels/itemgraph/pkg/integrations.ErrNotFound
// [integrations.ErrUnauthorized]: github.com/matzehuels/itemgraph/pkg/integrations.ErrUnauthorized
// [integrations.ErrNetwork]: github.com/matzehuels/itemgraph/pkg/integrations.ErrNetwork
package portal
