// Package integrations provides the shared HTTP client used to talk to the
// content portal and the dependency graph service.
//
// # Overview
//
// Service-specific clients live in subpackages and embed [Client]:
//
//   - [portal]: item lookup, search, and graph building
//
// # Client Pattern
//
//	client := portal.NewClient(backend, "https://www.arcgis.com", graphURL, token, time.Hour)
//	item, err := client.GetItem(ctx, "9f2b...", false)  // false = use cache
//
// [Client] handles:
//   - HTTP requests with retry on transport errors, 429 and 5xx
//   - Response caching through a [cache.Cache] backend and [cache.Keyer]
//   - Mapping status codes to [ErrNotFound], [ErrUnauthorized] and [ErrNetwork]
//
// Requests and cache lookups are reported to the hooks registered with the
// observability package.
//
// [portal]: github.com/matzehuels/itemgraph/pkg/integrations/portal
// [cache.Cache]: github.com/matzehuels/itemgraph/pkg/cache.Cache
// [cache.Keyer]: github.com/matzehuels/itemgraph/pkg/cache.Keyer
package integrations
