// Package viewer serves an exported graph in a browser as an interactive
// D3 force layout.
//
//	h := viewer.NewHandler(viewer.FileSource("output/graph.json"), logger)
//	err := viewer.Serve(ctx, "127.0.0.1:8080", h, logger)
//
// Routes (all readable cross-origin):
//
//	GET /            D3 page
//	GET /graph.json  the node/link document
//	GET /healthz     liveness probe
//
// The graph is re-read on every request, so re-running an export and
// reloading the page shows the new graph.
package viewer

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/itemgraph/pkg/viz"
)

//go:embed index.html
var indexHTML []byte

// GraphSource returns the graph to display.
type GraphSource func(ctx context.Context) (viz.Graph, error)

// FileSource reads the graph from a node/link JSON file.
func FileSource(path string) GraphSource {
	return func(context.Context) (viz.Graph, error) {
		return viz.ImportJSON(path)
	}
}

// StaticSource always returns g.
func StaticSource(g viz.Graph) GraphSource {
	return func(context.Context) (viz.Graph, error) { return g, nil }
}

// NewHandler returns the viewer routes.
func NewHandler(src GraphSource, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	// Other pages (notebooks, dashboards) may load the graph directly.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})

	r.Get("/graph.json", func(w http.ResponseWriter, r *http.Request) {
		g, err := src(r.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, fs.ErrNotExist) {
				status = http.StatusNotFound
			}
			logger.Warn("load graph", "err", err)
			writeError(w, status, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := viz.WriteJSON(g, w); err != nil {
			logger.Warn("write graph", "err", err)
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	return r
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start))
		})
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		if logger != nil {
			logger.Info("shutting down viewer")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
