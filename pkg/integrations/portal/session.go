package portal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matzehuels/itemgraph/pkg/cache"
	"github.com/matzehuels/itemgraph/pkg/errors"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
)

// Config describes how to reach a portal.
type Config struct {
	URL             string
	Token           string
	GraphServiceURL string
	Cache           cache.Cache
	CacheTTL        time.Duration
}

// Session is an open connection to a portal, scoped to a single run.
//
// A Session is opened with [Open], passed to whatever needs portal access,
// and released with [Session.Close]. Methods on a closed session return
// [ErrClosed].
type Session struct {
	client   *Client
	name     string
	username string

	mu     sync.RWMutex
	closed bool
}

// Open validates cfg and checks that the portal is reachable and accepts
// the token. The portal's self description is never cached.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.URL != "" {
		if err := errors.ValidateURL(cfg.URL); err != nil {
			return nil, err
		}
	}
	if cfg.GraphServiceURL != "" {
		if err := errors.ValidateURL(cfg.GraphServiceURL); err != nil {
			return nil, err
		}
	}

	c := NewClient(cfg.Cache, cfg.URL, cfg.GraphServiceURL, cfg.Token, cfg.CacheTTL)

	var self selfResponse
	if err := c.Get(ctx, c.restURL("portals/self", nil), &self); err != nil {
		return nil, fmt.Errorf("open portal %s: %w", c.BaseURL(), err)
	}
	if self.Error != nil {
		return nil, fmt.Errorf("open portal %s: %w", c.BaseURL(), self.Error.err())
	}

	s := &Session{client: c, name: self.Name}
	if self.User != nil {
		s.username = self.User.Username
	}
	return s, nil
}

// PortalName returns the name the portal reported when the session opened.
func (s *Session) PortalName() string { return s.name }

// Username returns the user the token belongs to, or "" for anonymous access.
func (s *Session) Username() string { return s.username }

// BaseURL returns the portal root.
func (s *Session) BaseURL() string { return s.client.BaseURL() }

// GetItem fetches a single item by ID. See [Client.GetItem].
func (s *Session) GetItem(ctx context.Context, id string, refresh bool) (*itemgraph.Item, error) {
	c, err := s.use()
	if err != nil {
		return nil, err
	}
	return c.GetItem(ctx, id, refresh)
}

// Search returns the first page of results for query. See [Client.Search].
func (s *Session) Search(ctx context.Context, query string, refresh bool) (*SearchResult, error) {
	c, err := s.use()
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, query, refresh)
}

// Build asks the graph service for the graph spanning items.
func (s *Session) Build(ctx context.Context, items []itemgraph.Item, opts itemgraph.BuildOptions) (*itemgraph.Graph, error) {
	c, err := s.use()
	if err != nil {
		return nil, err
	}
	return c.Build(ctx, items, opts)
}

// CacheScope returns the client's graph cache scope. See [Client.CacheScope].
func (s *Session) CacheScope() string { return s.client.CacheScope() }

// Close releases the session. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) use() (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.client, nil
}

var (
	_ itemgraph.Builder     = (*Session)(nil)
	_ itemgraph.CacheScoper = (*Session)(nil)
)
