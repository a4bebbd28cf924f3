package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/render/dot"
	"github.com/matzehuels/layercanvas/pkg/store"
)

// Runner executes the pipeline against a store.
//
// The Runner is stateless except for the store and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner. If s is nil, a NullStore is used (nothing is
// persisted). If logger is nil, output is discarded.
func NewRunner(s store.Store, logger *log.Logger) *Runner {
	if s == nil {
		s = store.NewNullStore()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Store: s, Logger: logger}
}

// Execute runs the complete load → insert → save → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Canvas.Logger == nil {
		opts.Canvas.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	c, created, err := r.Open(ctx, opts.CanvasID, opts.Canvas)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Created = created
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Insert
	insertStart := time.Now()
	inserts, insertErr := r.InsertFiles(ctx, c, opts.Fragments, canvas.InsertOptions{Prefix: opts.Prefix, Policy: opts.Policy})
	result.Inserts = inserts
	result.Snapshot = c.Snapshot()
	result.Stats.InsertTime = time.Since(insertStart)
	for _, ins := range inserts {
		result.Stats.Added += ins.Added()
		result.Stats.Warnings += len(ins.Warnings)
	}

	r.Logger.Info("inserted fragments",
		"canvas", c.ID(),
		"fragments", len(inserts),
		"added", result.Stats.Added,
		"revision", result.Snapshot.Revision,
		"duration", result.Stats.InsertTime)

	// Stage 3: Save
	// A failing fragment aborts only its own insertion, so the files applied
	// before it are still persisted.
	if !opts.NoSave && (result.Changed() || (created && insertErr == nil)) {
		if err := r.Save(ctx, result.Snapshot); err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
		result.Saved = true
	}
	if insertErr != nil {
		if result.Saved {
			r.Logger.Warn("saved fragments applied before the failure", "canvas", c.ID(), "fragments", len(inserts))
		}
		return nil, fmt.Errorf("insert: %w", insertErr)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, err := RenderArtifacts(ctx, result.Snapshot, opts.Formats, opts.Render)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Open loads the canvas with the given ID, or creates it when the store does
// not have it. An empty ID creates a canvas with a fresh ID. The returned
// flag reports whether the canvas was created.
func (r *Runner) Open(ctx context.Context, id string, opts canvas.Options) (*canvas.Canvas, bool, error) {
	if id == "" {
		c, err := canvas.New(opts)
		return c, true, err
	}

	snap, err := r.Store.Load(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		r.Logger.Debug("canvas not found, creating", "canvas", id)
		snap = graph.NewSnapshot()
		snap.ID = id
		c, err := canvas.Load(snap, opts)
		return c, true, err
	case err != nil:
		return nil, false, err
	}

	r.Logger.Debug("canvas loaded", "canvas", id, "revision", snap.Revision, "nodes", len(snap.Nodes))
	c, err := canvas.Load(snap, opts)
	return c, false, err
}

// InsertFiles reads each fragment file and inserts it into c, in order. The
// first failing file stops the run; earlier insertions stay applied and are
// returned with the error.
//
// With an explicit prefix and more than one file, each file gets its own
// prefix from [FilePrefix] so that equal local IDs in different files do not
// collapse into one element.
func (r *Runner) InsertFiles(ctx context.Context, c *canvas.Canvas, paths []string, opts canvas.InsertOptions) ([]*canvas.InsertResult, error) {
	results := make([]*canvas.InsertResult, 0, len(paths))
	for i, path := range paths {
		frag, err := graph.ReadFragmentFile(path)
		if err != nil {
			return results, err
		}
		fileOpts := opts
		fileOpts.Prefix = FilePrefix(opts.Prefix, i, len(paths))
		res, err := c.Insert(ctx, frag, fileOpts)
		if err != nil {
			return results, fmt.Errorf("%s: %w", path, err)
		}
		r.Logger.Debug("fragment applied", "file", path, "prefix", res.Prefix, "added", res.Added())
		results = append(results, res)
	}
	return results, nil
}

// FilePrefix returns the prefix for the i-th of n fragment files. A single
// file, or an empty prefix, is used unchanged; otherwise the 1-based file
// position is appended, e.g. "p-" becomes "p-1-", "p-2-".
func FilePrefix(prefix string, i, n int) string {
	if prefix == "" || n <= 1 {
		return prefix
	}
	return fmt.Sprintf("%s%d-", prefix, i+1)
}

// Save writes the snapshot to the store.
func (r *Runner) Save(ctx context.Context, snap *graph.Snapshot) error {
	if err := r.Store.Save(ctx, snap); err != nil {
		return err
	}
	r.Logger.Debug("canvas saved", "canvas", snap.ID, "revision", snap.Revision)
	return nil
}

// RenderArtifacts produces one artifact per format.
func RenderArtifacts(ctx context.Context, snap *graph.Snapshot, formats []string, opts dot.Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if format == FormatJSON {
			data, err := graph.MarshalSnapshot(snap)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
			continue
		}
		data, err := dot.Render(ctx, snap, format, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
