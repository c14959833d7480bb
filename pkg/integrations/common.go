package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when an item or resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the portal rejects the token or the
	// caller lacks access to the item.
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with a standard timeout.
// Graph construction can take a while on large item sets, hence the
// generous limit.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizeBaseURL trims whitespace and trailing slashes from a base URL
// so that paths can be appended with a single "/".
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// HostOf returns the host portion of rawURL, or rawURL unchanged when it
// cannot be parsed. Used to scope cache keys per portal.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// PathEscape percent-encodes a string for use as a URL path segment.
func PathEscape(s string) string { return url.PathEscape(s) }
