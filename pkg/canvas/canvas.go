package canvas

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/layout"
	"github.com/matzehuels/layercanvas/pkg/observability"
)

// Options configures a Canvas.
type Options struct {
	// Layout holds node sizes and gaps. Zero value means layout.DefaultConfig.
	Layout layout.Config

	// IDPolicy is the default policy for insertions that do not set one.
	IDPolicy IDPolicy

	// Anchor selects where unconnected fragments are placed.
	Anchor layout.Anchor

	// RenderInternalEdges emits declared intra-container edges into the
	// main edge list instead of the internal one.
	RenderInternalEdges bool

	// Logger receives insertion progress and warnings.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	}
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	policy, err := ParseIDPolicy(string(o.IDPolicy))
	if err != nil {
		return lcerrors.Wrap(lcerrors.ErrCodeInvalidConfig, err, "canvas options")
	}
	o.IDPolicy = policy
	anchor, err := layout.ParseAnchor(string(o.Anchor))
	if err != nil {
		return lcerrors.Wrap(lcerrors.ErrCodeInvalidConfig, err, "canvas options")
	}
	o.Anchor = anchor
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// InsertOptions overrides canvas defaults for one insertion.
type InsertOptions struct {
	// Prefix is the disambiguation prefix. Empty means generate one.
	Prefix string
	// Policy overrides Options.IDPolicy when set.
	Policy IDPolicy
	// Commit, when set, receives the changed snapshot before the canvas
	// adopts it. An error aborts the insertion and leaves the canvas
	// unchanged.
	Commit func(ctx context.Context, next *graph.Snapshot) error
}

// Canvas is an incrementally laid out graph. It is safe for concurrent use.
type Canvas struct {
	opts   Options
	logger *log.Logger

	insertMu sync.Mutex // serializes Insert

	mu   sync.RWMutex // guards snap
	snap *graph.Snapshot
}

// New returns an empty canvas.
func New(opts Options) (*Canvas, error) {
	return Load(graph.NewSnapshot(), opts)
}

// Load returns a canvas that continues from a stored snapshot. The snapshot
// is copied.
func Load(snap *graph.Snapshot, opts Options) (*Canvas, error) {
	if snap == nil {
		return nil, lcerrors.New(lcerrors.ErrCodeInvalidInput, "nil snapshot")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Canvas{opts: opts, logger: opts.Logger, snap: snap.Clone()}, nil
}

// ID returns the canvas ID.
func (c *Canvas) ID() string {
	return c.Snapshot().ID
}

// Snapshot returns the current state. The returned snapshot is shared and
// must not be modified; Clone it first.
func (c *Canvas) Snapshot() *graph.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Options returns the canvas options with defaults applied.
func (c *Canvas) Options() Options { return c.opts }

// Insert merges a fragment into the canvas.
//
// New elements are placed in free space; existing elements keep their
// position. Elements, containers and edges that already exist are skipped,
// so repeating an insertion with the same prefix is a no-op. A fragment
// without a root fails with MISSING_ROOT and leaves the canvas unchanged.
func (c *Canvas) Insert(ctx context.Context, frag graph.Fragment, opts InsertOptions) (*InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := frag.Validate(); err != nil {
		return nil, err
	}

	policy := c.opts.IDPolicy
	if opts.Policy != "" {
		p, err := ParseIDPolicy(string(opts.Policy))
		if err != nil {
			return nil, lcerrors.Wrap(lcerrors.ErrCodeInvalidInput, err, "insert")
		}
		policy = p
	}
	if opts.Prefix != "" {
		if err := lcerrors.ValidateID("prefix", opts.Prefix); err != nil {
			return nil, err
		}
	}

	c.insertMu.Lock()
	defer c.insertMu.Unlock()

	cur := c.Snapshot()
	prefix, auto := opts.Prefix, opts.Prefix == ""
	if auto {
		prefix = AutoPrefix(cur.NextPrefix + 1)
	}

	ns := namespace{prefix: prefix, policy: policy, containers: make(map[string]bool, len(frag.Containers))}
	for _, fc := range frag.Containers {
		ns.containers[fc.ID] = true
	}

	res := &InsertResult{CanvasID: cur.ID, Prefix: prefix, Policy: policy, Revision: cur.Revision}
	hooks := observability.Canvas()
	hooks.OnInsertStart(ctx, cur.ID, prefix, len(frag.Nodes))
	start := time.Now()

	c.logger.Debug("inserting fragment", "canvas", cur.ID, "prefix", prefix, "policy", policy,
		"nodes", len(frag.Nodes), "edges", len(frag.Edges), "containers", len(frag.Containers))

	next, err := newMerger(cur, ns, c.opts, res).merge(frag)
	if err != nil {
		hooks.OnInsertComplete(ctx, cur.ID, prefix, 0, time.Since(start), err)
		c.logger.Error("fragment rejected", "prefix", prefix, "err", err)
		return nil, err
	}

	for _, w := range res.Warnings {
		c.logger.Warn(w.Message, "code", w.Code, "subject", w.Subject)
		hooks.OnWarning(ctx, cur.ID, string(w.Code), w.Subject)
	}

	if res.Changed() {
		next.Revision++
		if auto {
			next.NextPrefix++
		}
		if opts.Commit != nil {
			if err := opts.Commit(ctx, next); err != nil {
				hooks.OnInsertComplete(ctx, cur.ID, prefix, 0, time.Since(start), err)
				c.logger.Error("commit failed", "prefix", prefix, "err", err)
				return nil, err
			}
		}
		c.mu.Lock()
		c.snap = next
		c.mu.Unlock()
		res.Revision = next.Revision
	}

	hooks.OnInsertComplete(ctx, cur.ID, prefix, res.Added(), time.Since(start), nil)
	c.logger.Debug("fragment inserted", "prefix", prefix, "revision", res.Revision,
		"nodes", res.Nodes, "containers", res.Containers, "edges", res.Edges,
		"internal", res.InternalEdges, "skipped", res.Skipped, "dropped", res.Dropped)
	return res, nil
}
