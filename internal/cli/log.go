package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/itemgraph/pkg/observability"
)

// newLogger creates a logger that writes to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered graph.svg (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks writes pipeline, cache and HTTP events to the debug log.
// It is registered only with --verbose.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)

func (h *logHooks) with(ctx context.Context) *log.Logger {
	if id := observability.RunID(ctx); len(id) >= 8 {
		return h.logger.With("run", id[:8])
	}
	return h.logger
}

func (h *logHooks) OnFetchStart(ctx context.Context, source string) {
	h.with(ctx).Debug("fetch start", "source", source)
}

func (h *logHooks) OnFetchComplete(ctx context.Context, source string, itemCount int, d time.Duration, err error) {
	h.with(ctx).Debug("fetch done", "source", source, "items", itemCount, "duration", d, "err", err)
}

func (h *logHooks) OnBuildStart(ctx context.Context, seedCount int) {
	h.with(ctx).Debug("build start", "seeds", seedCount)
}

func (h *logHooks) OnBuildComplete(ctx context.Context, itemCount, edgeCount int, d time.Duration, err error) {
	h.with(ctx).Debug("build done", "items", itemCount, "edges", edgeCount, "duration", d, "err", err)
}

func (h *logHooks) OnExportStart(ctx context.Context, path string) {
	h.with(ctx).Debug("export start", "path", path)
}

func (h *logHooks) OnExportComplete(ctx context.Context, path string, nodeCount, linkCount int, d time.Duration, err error) {
	h.with(ctx).Debug("export done", "path", path, "nodes", nodeCount, "links", linkCount, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.with(ctx).Debug("cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.with(ctx).Debug("cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.with(ctx).Debug("cache set", "key", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.with(ctx).Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	h.with(ctx).Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.with(ctx).Warn("http error", "method", method, "host", host, "path", path, "err", err)
}
