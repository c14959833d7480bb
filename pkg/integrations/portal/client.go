package portal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/itemgraph/pkg/cache"
	ierrors "github.com/matzehuels/itemgraph/pkg/errors"
	"github.com/matzehuels/itemgraph/pkg/integrations"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
)

// DefaultURL is the ArcGIS Online portal.
const DefaultURL = "https://www.arcgis.com"

// searchPageSize is the number of results requested from the search
// endpoint. Only the first page is read.
const searchPageSize = 100

// SearchResult is the first page of a portal search.
type SearchResult struct {
	Items []itemgraph.Item `json:"items"`
	// Total is the number of matches reported by the portal. It is larger
	// than len(Items) when results were left on later pages.
	Total int `json:"total"`
}

// Truncated reports whether the portal had more matches than were returned.
func (r *SearchResult) Truncated() bool { return r.Total > len(r.Items) }

// Client talks to the portal sharing REST API and the dependency graph
// service.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL  string
	graphURL string
	token    string
}

// NewClient creates a portal client.
//
// baseURL is the portal root (e.g. "https://www.arcgis.com" or
// "https://gis.example.com/portal"). graphURL is the endpoint of the graph
// service; it may be empty when graphs come from a snapshot instead. token
// is sent with every portal request when non-empty.
//
// Cached responses are scoped by portal host so item IDs from different
// portals never collide.
func NewClient(backend cache.Cache, baseURL, graphURL, token string, cacheTTL time.Duration) *Client {
	baseURL = integrations.NormalizeBaseURL(baseURL)
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		Client:   integrations.NewClient(backend, "portal", cacheTTL, nil),
		baseURL:  baseURL,
		graphURL: strings.TrimSpace(graphURL),
		token:    token,
	}
	c.SetKeyer(cache.NewScopedKeyer(nil, integrations.HostOf(baseURL)+":"))
	return c
}

// BaseURL returns the normalized portal root.
func (c *Client) BaseURL() string { return c.baseURL }

// CacheScope identifies the portal host, graph service and token behind
// built graphs. The token only contributes a short fingerprint.
func (c *Client) CacheScope() string {
	scope := integrations.HostOf(c.baseURL) + "|" + c.graphURL
	if c.token != "" {
		scope += "|" + cache.Hash([]byte(c.token))[:12]
	}
	return scope
}

// GetItem fetches a single item by ID.
//
// If refresh is true, the cache is bypassed.
//
// Returns [integrations.ErrNotFound] if the item does not exist or is not
// visible to the token, and [integrations.ErrUnauthorized] if the token is
// missing or invalid.
func (c *Client) GetItem(ctx context.Context, id string, refresh bool) (*itemgraph.Item, error) {
	var item itemgraph.Item
	err := c.Cached(ctx, "item:"+id, refresh, &item, func() error {
		return c.fetchItem(ctx, id, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) fetchItem(ctx context.Context, id string, item *itemgraph.Item) error {
	var data itemResponse
	u := c.restURL("content/items/"+integrations.PathEscape(id), nil)
	if err := c.Get(ctx, u, &data); err != nil {
		return wrapNotFound(err, "item "+id)
	}
	if data.Error != nil {
		return wrapNotFound(data.Error.err(), "item "+id)
	}
	*item = data.Item
	return nil
}

// Search runs a portal search query and returns the first page of results.
// Pagination is not followed; check [SearchResult.Truncated].
func (c *Client) Search(ctx context.Context, query string, refresh bool) (*SearchResult, error) {
	var res SearchResult
	err := c.Cached(ctx, "search:"+query, refresh, &res, func() error {
		return c.fetchSearch(ctx, query, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) fetchSearch(ctx context.Context, query string, res *SearchResult) error {
	var data searchResponse
	u := c.restURL("search", url.Values{
		"q":   {query},
		"num": {strconv.Itoa(searchPageSize)},
	})
	if err := c.Get(ctx, u, &data); err != nil {
		return err
	}
	if data.Error != nil {
		return data.Error.err()
	}
	items := data.Results
	if items == nil {
		items = []itemgraph.Item{}
	}
	*res = SearchResult{Items: items, Total: data.Total}
	return nil
}

// Build asks the graph service for the dependency graph spanning items.
// It implements [itemgraph.Builder]. Responses are not cached here; the
// pipeline caches whole graphs.
func (c *Client) Build(ctx context.Context, items []itemgraph.Item, opts itemgraph.BuildOptions) (*itemgraph.Graph, error) {
	if c.graphURL == "" {
		return nil, ErrNoGraphService
	}
	if len(items) == 0 {
		return &itemgraph.Graph{Items: []itemgraph.Item{}, Edges: []itemgraph.Edge{}}, nil
	}

	req := buildRequest{
		ItemIDs:        itemgraph.IDs(items),
		OutsideOrg:     opts.OutsideOrg,
		IncludeReverse: opts.IncludeReverse,
		Token:          c.token,
	}
	var data graphResponse
	err := cache.RetryWithBackoff(ctx, func() error {
		return c.PostJSON(ctx, c.graphURL, req, &data)
	})
	if err != nil {
		return nil, fmt.Errorf("graph service: %w", err)
	}
	if data.Error != nil {
		return nil, fmt.Errorf("graph service: %w", data.Error.err())
	}
	return &itemgraph.Graph{Items: data.Items, Edges: data.Edges}, nil
}

func (c *Client) restURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("f", "json")
	if c.token != "" {
		params.Set("token", c.token)
	}
	return c.baseURL + "/sharing/rest/" + path + "?" + params.Encode()
}

// OwnerQuery combines an owner filter with a free-text query into a portal
// search expression. Either argument may be empty.
func OwnerQuery(owner, query string) string {
	owner = strings.TrimSpace(owner)
	query = strings.TrimSpace(query)
	switch {
	case owner == "":
		return query
	case query == "":
		return "owner:" + owner
	default:
		return "owner:" + owner + " AND (" + query + ")"
	}
}

// wrapNotFound tags a missing item with ITEM_NOT_FOUND, keeping the
// sentinel reachable through errors.Is.
func wrapNotFound(err error, what string) error {
	if errors.Is(err, integrations.ErrNotFound) {
		return ierrors.Wrap(ierrors.ErrCodeItemNotFound, err, "%s", what)
	}
	return err
}

var _ itemgraph.Builder = (*Client)(nil)
