package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/itemgraph/pkg/integrations/portal"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
)

// ItemSource looks up seed items. [portal.Session] implements it.
type ItemSource interface {
	GetItem(ctx context.Context, id string, refresh bool) (*itemgraph.Item, error)
	Search(ctx context.Context, query string, refresh bool) (*portal.SearchResult, error)
}

// Fetch resolves the seed items for opts: each of opts.ItemIDs in order, or
// the first page of results for the owner/query search.
func Fetch(ctx context.Context, src ItemSource, opts Options) ([]itemgraph.Item, error) {
	if len(opts.ItemIDs) > 0 {
		items := make([]itemgraph.Item, 0, len(opts.ItemIDs))
		for _, id := range opts.ItemIDs {
			it, err := src.GetItem(ctx, id, opts.Refresh)
			if err != nil {
				return nil, fmt.Errorf("get item %s: %w", id, err)
			}
			items = append(items, *it)
		}
		return items, nil
	}

	query := portal.OwnerQuery(opts.Owner, opts.Query)
	res, err := src.Search(ctx, query, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if res.Truncated() && opts.Logger != nil {
		opts.Logger.Warn("search returned more items than one page; only the first page is used",
			"query", query, "total", res.Total, "used", len(res.Items))
	}
	return res.Items, nil
}

// fetchSource names the fetch mode for hooks and logs.
func fetchSource(opts Options) string {
	if len(opts.ItemIDs) > 0 {
		return "ids"
	}
	return "search"
}
