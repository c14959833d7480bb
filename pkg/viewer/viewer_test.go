package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/itemgraph/pkg/viz"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func sampleGraph() viz.Graph {
	return viz.Graph{
		Nodes: []viz.Node{
			{ID: "m1", Name: "Viewer (Web Map)", Title: "<b>Viewer</b><br/>Web Map<br/>m1<br/>", Type: "Web Map", Group: "Web Map"},
			{ID: "a1", Name: "Parcels (Feature Service)", Title: "<b>Parcels</b><br/>Feature Service<br/>a1<br/>", Type: "Feature Service", Group: "Feature Service"},
		},
		Links: []viz.Link{{Source: "m1", Target: "a1"}},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndex(t *testing.T) {
	rec := get(t, NewHandler(StaticSource(viz.Graph{}), testLogger()), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `d3.json("graph.json")`) {
		t.Error("page should load graph.json")
	}
	for _, id := range []string{`id="load-data"`, `id="enable-popups"`, `id="save-svg"`} {
		if !strings.Contains(body, id) {
			t.Errorf("page is missing control %s", id)
		}
	}
}

func TestGraphJSON(t *testing.T) {
	rec := get(t, NewHandler(StaticSource(sampleGraph()), testLogger()), "/graph.json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	got, err := viz.ReadJSON(rec.Body)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Links) != 1 {
		t.Errorf("got %d nodes, %d links", len(got.Nodes), len(got.Links))
	}
}

func TestGraphJSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	h := NewHandler(FileSource(path), testLogger())

	if rec := get(t, h, "/graph.json"); rec.Code != http.StatusNotFound {
		t.Errorf("missing file: status = %d, want 404", rec.Code)
	}

	if err := viz.ExportJSON(sampleGraph(), path); err != nil {
		t.Fatal(err)
	}
	rec := get(t, h, "/graph.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"source": "m1"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGraphJSONError(t *testing.T) {
	src := func(context.Context) (viz.Graph, error) { return viz.Graph{}, errors.New("corrupt") }
	rec := get(t, NewHandler(src, testLogger()), "/graph.json")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "corrupt" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHealthz(t *testing.T) {
	rec := get(t, NewHandler(StaticSource(viz.Graph{}), testLogger()), "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("healthz: %d %s", rec.Code, rec.Body.String())
	}
}

func TestGraphJSONCrossOrigin(t *testing.T) {
	h := NewHandler(StaticSource(sampleGraph()), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/graph.json", nil)
	req.Header.Set("Origin", "https://notebook.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, NewHandler(StaticSource(viz.Graph{}), testLogger()), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", NewHandler(StaticSource(viz.Graph{}), testLogger()), testLogger())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
