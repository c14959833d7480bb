package portal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/itemgraph/pkg/cache"
	"github.com/matzehuels/itemgraph/pkg/integrations"
	"github.com/matzehuels/itemgraph/pkg/itemgraph"
)

var (
	// ErrNoGraphService is returned by [Client.Build] when no graph service
	// URL was configured.
	ErrNoGraphService = errors.New("graph service url not configured")

	// ErrClosed is returned when a closed [Session] is used.
	ErrClosed = errors.New("portal session closed")
)

// apiError is the error envelope the sharing API returns with HTTP 200.
type apiError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// err maps the in-body error to the integrations sentinels.
func (e *apiError) err() error {
	msg := e.Message
	if msg == "" {
		msg = "portal error"
	}
	lower := strings.ToLower(msg)

	switch {
	case e.Code == 404,
		e.Code == 400 && (strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist")):
		return fmt.Errorf("%w: %s", integrations.ErrNotFound, msg)
	case e.Code == 401, e.Code == 403, e.Code == 498, e.Code == 499:
		return fmt.Errorf("%w: %s (code %d)", integrations.ErrUnauthorized, msg, e.Code)
	case e.Code >= 500:
		return cache.Retryable(fmt.Errorf("%w: %s (code %d)", integrations.ErrNetwork, msg, e.Code))
	default:
		return fmt.Errorf("%w: %s (code %d)", integrations.ErrNetwork, msg, e.Code)
	}
}

type itemResponse struct {
	itemgraph.Item
	Error *apiError `json:"error"`
}

type searchResponse struct {
	Total     int              `json:"total"`
	Start     int              `json:"start"`
	Num       int              `json:"num"`
	NextStart int              `json:"nextStart"`
	Results   []itemgraph.Item `json:"results"`
	Error     *apiError        `json:"error"`
}

type buildRequest struct {
	ItemIDs        []string `json:"item_ids"`
	OutsideOrg     bool     `json:"outside_org"`
	IncludeReverse bool     `json:"include_reverse"`
	Token          string   `json:"token,omitempty"`
}

type graphResponse struct {
	Items []itemgraph.Item `json:"items"`
	Edges []itemgraph.Edge `json:"edges"`
	Error *apiError        `json:"error"`
}

type selfResponse struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	User  *selfUser `json:"user"`
	Error *apiError `json:"error"`
}

type selfUser struct {
	Username string `json:"username"`
}
