package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/observability"
	"github.com/matzehuels/layercanvas/pkg/store"
)

const chainJSON = `{
  "nodes": [{"id": "A"}, {"id": "B"}],
  "edges": [{"source": "A", "target": "B"}]
}`

func newTestServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	s, err := New(Options{Store: st})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func do(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, nil).Handler(), http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestInsertAndGet(t *testing.T) {
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "canvases"))
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, st).Handler()

	w := do(t, h, http.MethodPost, "/canvases/board/fragments?prefix=p-", "application/json", chainJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("insert status = %d, body %s", w.Code, w.Body.String())
	}
	var res canvas.InsertResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Prefix != "p-" || res.Nodes != 2 || res.Edges != 1 {
		t.Errorf("result = %+v", res)
	}

	t.Run("repeat is a no-op", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/canvases/board/fragments?prefix=p-", "application/json", chainJSON)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("get", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/canvases/board", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		snap, err := graph.UnmarshalSnapshot(w.Body.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if snap.ID != "board" || len(snap.Nodes) != 2 {
			t.Errorf("snapshot id=%q nodes=%d", snap.ID, len(snap.Nodes))
		}
	})

	t.Run("persisted", func(t *testing.T) {
		snap, err := st.Load(context.Background(), "board")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := snap.Node("p-B"); !ok {
			t.Error("stored snapshot missing p-B")
		}

		// A fresh server picks the canvas up from the store.
		w := do(t, newTestServer(t, st).Handler(), http.MethodGet, "/canvases/board/dot", "", "")
		if !strings.Contains(w.Body.String(), `"p-A" -> "p-B";`) {
			t.Errorf("dot = %s", w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("list", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/canvases", "", "")
		if !strings.Contains(w.Body.String(), `"canvases":["board"]`) {
			t.Errorf("list = %s", w.Body.String())
		}
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, h, http.MethodDelete, "/canvases/board", "", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d", w.Code)
		}
		w = do(t, h, http.MethodGet, "/canvases/board", "", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", w.Code)
		}
	})
}

func TestInsertTOML(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	body := "[[nodes]]\nid = \"solo\"\n"
	w := do(t, h, http.MethodPost, "/canvases/t/fragments", "application/toml", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"prefix":"f1-"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestErrors(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown canvas", http.MethodGet, "/canvases/nope", "", http.StatusNotFound, "CANVAS_NOT_FOUND"},
		{"malformed body", http.MethodPost, "/canvases/x/fragments", `{"nodes": [`, http.StatusBadRequest, "INVALID_FRAGMENT"},
		{
			"missing root", http.MethodPost, "/canvases/x/fragments",
			`{"nodes":[{"id":"A"},{"id":"B"}],"edges":[{"source":"A","target":"B"},{"source":"B","target":"A"}]}`,
			http.StatusUnprocessableEntity, "MISSING_ROOT",
		},
		{"bad policy", http.MethodPost, "/canvases/x/fragments?policy=bogus", chainJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad id", http.MethodGet, "/canvases/%20b", "", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, "application/json", tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error != tt.code {
				t.Errorf("code = %q, want %q", resp.Error, tt.code)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s, err := New(Options{MaxBodyBytes: 16})
	if err != nil {
		t.Fatal(err)
	}
	w := do(t, s.Handler(), http.MethodPost, "/canvases/x/fragments", "application/json", chainJSON)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestConcurrentInserts(t *testing.T) {
	h := newTestServer(t, nil).Handler()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			do(t, h, http.MethodPost, "/canvases/shared/fragments", "application/json", chainJSON)
		}()
	}
	wg.Wait()

	w := do(t, h, http.MethodGet, "/canvases/shared", "", "")
	snap, err := graph.UnmarshalSnapshot(w.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Nodes) != 16 || snap.Revision != 8 {
		t.Errorf("nodes = %d revision = %d, want 16 and 8", len(snap.Nodes), snap.Revision)
	}
}

// flakyStore fails every Save while fail is set.
type flakyStore struct {
	store.Store
	fail atomic.Bool
}

func (s *flakyStore) Save(ctx context.Context, snap *graph.Snapshot) error {
	if s.fail.Load() {
		return errors.New("disk full")
	}
	return s.Store.Save(ctx, snap)
}

func TestInsertSaveFailure(t *testing.T) {
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "canvases"))
	if err != nil {
		t.Fatal(err)
	}
	st := &flakyStore{Store: fs}
	st.fail.Store(true)
	h := newTestServer(t, st).Handler()

	w := do(t, h, http.MethodPost, "/canvases/board/fragments", "application/json", chainJSON)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (body %s)", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/canvases/board", "", "")
	snap, err := graph.UnmarshalSnapshot(w.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Nodes) != 0 || snap.Revision != 0 {
		t.Errorf("after failed save: nodes = %d revision = %d, want 0 and 0", len(snap.Nodes), snap.Revision)
	}

	st.fail.Store(false)
	w = do(t, h, http.MethodPost, "/canvases/board/fragments", "application/json", chainJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("retry status = %d, body %s", w.Code, w.Body.String())
	}
	var res canvas.InsertResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Prefix != "f1-" || res.Revision != 1 {
		t.Errorf("retry prefix = %q revision = %d, want f1- and 1", res.Prefix, res.Revision)
	}

	stored, err := fs.Load(context.Background(), "board")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Nodes) != 2 || stored.Revision != 1 {
		t.Errorf("stored nodes = %d revision = %d, want 2 and 1", len(stored.Nodes), stored.Revision)
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestInstrument(t *testing.T) {
	rec := &recordingHTTPHooks{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	h := newTestServer(t, nil).Handler()
	do(t, h, http.MethodGet, "/canvases/missing/dot", "", "")

	if len(rec.routes) != 1 {
		t.Fatalf("got %d responses, want 1", len(rec.routes))
	}
	if rec.routes[0] != "/canvases/{id}/dot" {
		t.Errorf("route = %q", rec.routes[0])
	}
	if rec.status[0] != http.StatusNotFound {
		t.Errorf("status = %d", rec.status[0])
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s, err := New(Options{Addr: "127.0.0.1:0"})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
