package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/layercanvas/pkg/buildinfo"
	"github.com/matzehuels/layercanvas/pkg/canvas"
	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/render/dot"
	"github.com/matzehuels/layercanvas/pkg/store"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	stored, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ids := append(append([]string{}, stored...), s.ids()...)
	slices.Sort(ids)
	writeJSON(w, http.StatusOK, map[string][]string{"canvases": slices.Compact(ids)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.canvasID(w, r)
	if !ok {
		return
	}
	s.forget(id)
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	id, ok := s.canvasID(w, r)
	if !ok {
		return
	}

	format := graph.FormatJSON
	if ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && ct == "application/toml" {
		format = graph.FormatTOML
	}
	frag, err := graph.ReadFragment(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.open(r.Context(), id, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	q := r.URL.Query()
	res, err := e.canvas.Insert(r.Context(), frag, canvas.InsertOptions{
		Prefix: q.Get("prefix"),
		Policy: canvas.IDPolicy(q.Get("policy")),
		Commit: s.store.Save,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if res.Changed() {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(dot.ToDOT(snap, dotOptions(r))))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	svg, err := dot.RenderSVG(r.Context(), dot.ToDOT(snap, dotOptions(r)))
	if err != nil {
		s.writeError(w, r, lcerrors.Wrap(lcerrors.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func dotOptions(r *http.Request) dot.Options {
	q := r.URL.Query()
	internal, _ := strconv.ParseBool(q.Get("internal"))
	detailed, _ := strconv.ParseBool(q.Get("detailed"))
	return dot.Options{Internal: internal, Detailed: detailed}
}

// snapshot resolves the {id} parameter to the current snapshot, writing an
// error response when it cannot.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*graph.Snapshot, bool) {
	id, ok := s.canvasID(w, r)
	if !ok {
		return nil, false
	}
	e, err := s.open(r.Context(), id, false)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return e.canvas.Snapshot(), true
}

func (s *Server) canvasID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := lcerrors.ValidateID("canvas", id); err != nil {
		s.writeError(w, r, lcerrors.New(lcerrors.ErrCodeInvalidInput, "%s", lcerrors.UserMessage(err)))
		return "", false
	}
	return id, true
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := lcerrors.GetCode(err)
	if code == "" {
		code = lcerrors.ErrCodeInternal
	}
	if errors.Is(err, store.ErrNotFound) {
		code = lcerrors.ErrCodeCanvasNotFound
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: string(code), Message: lcerrors.UserMessage(err)})
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	}
	switch lcerrors.GetCode(err) {
	case lcerrors.ErrCodeMissingRoot:
		return http.StatusUnprocessableEntity
	case lcerrors.ErrCodeInvalidFragment, lcerrors.ErrCodeInvalidInput, lcerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case lcerrors.ErrCodeNotFound, lcerrors.ErrCodeCanvasNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
