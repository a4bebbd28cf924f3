// Package server exposes canvases over HTTP for rendering consumers.
//
// Routes:
//
//	GET    /healthz
//	GET    /canvases
//	GET    /canvases/{id}
//	DELETE /canvases/{id}
//	POST   /canvases/{id}/fragments?prefix=&policy=
//	GET    /canvases/{id}/dot?internal=&detailed=
//	GET    /canvases/{id}/svg
//
// Fragments are posted as JSON, or as TOML with Content-Type
// application/toml. A canvas that does not exist is created by its first
// fragment.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/store"
)

// DefaultMaxBodyBytes limits posted fragments.
const DefaultMaxBodyBytes = 4 << 20

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Store persists canvases. Nil keeps them in memory only.
	Store store.Store
	// Canvas configures every canvas the server opens.
	Canvas canvas.Options
	// MaxBodyBytes limits request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	Logger       *log.Logger
}

// Server serves canvases from a store, keeping one Canvas per ID in memory.
type Server struct {
	opts   Options
	store  store.Store
	logger *log.Logger
	router chi.Router

	mu       sync.Mutex // guards canvases
	canvases map[string]*entry
}

// entry serializes insert-and-save for one canvas so saves land in
// revision order.
type entry struct {
	mu     sync.Mutex
	canvas *canvas.Canvas
}

// New builds a server. It does not start listening.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Canvas.Logger == nil {
		opts.Canvas.Logger = opts.Logger
	}
	if err := opts.Canvas.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		opts.Store = store.NewNullStore()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		opts:     opts,
		store:    opts.Store,
		logger:   opts.Logger,
		canvases: make(map[string]*entry),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", handleHealth)
	r.Route("/canvases", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/fragments", s.handleInsert)
			r.Get("/dot", s.handleDOT)
			r.Get("/svg", s.handleSVG)
		})
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// open returns the registry entry for id, loading the canvas from the store
// on first use. With create set, a canvas missing from the store is created.
// The store is read without holding the registry lock; when two requests race
// to load the same canvas, the first entry registered wins.
func (s *Server) open(ctx context.Context, id string, create bool) (*entry, error) {
	s.mu.Lock()
	e, ok := s.canvases[id]
	s.mu.Unlock()
	if ok {
		return e, nil
	}

	snap, err := s.store.Load(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound) && create:
		snap = graph.NewSnapshot()
		snap.ID = id
	case err != nil:
		return nil, err
	}
	c, err := canvas.Load(snap, s.opts.Canvas)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.canvases[id]; ok {
		return e, nil
	}
	e = &entry{canvas: c}
	s.canvases[id] = e
	return e, nil
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.canvases, id)
	s.mu.Unlock()
}

func (s *Server) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.canvases))
	for id := range s.canvases {
		ids = append(ids, id)
	}
	return ids
}
