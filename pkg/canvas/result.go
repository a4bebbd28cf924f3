package canvas

import lcerrors "github.com/matzehuels/layercanvas/pkg/errors"

// InsertResult summarizes one insertion.
type InsertResult struct {
	CanvasID string   `json:"canvasId"`
	Prefix   string   `json:"prefix"`
	Policy   IDPolicy `json:"policy"`
	Revision int      `json:"revision"`

	// Added records.
	Nodes         int `json:"nodes"`
	Containers    int `json:"containers"`
	Edges         int `json:"edges"`
	InternalEdges int `json:"internalEdges"`

	// Skipped counts nodes, containers and edges that already existed.
	Skipped int `json:"skipped"`
	// Suppressed counts intra-container edges that were not rendered.
	Suppressed int `json:"suppressed"`
	// Dropped counts edges with a missing endpoint.
	Dropped int `json:"dropped"`

	Warnings []lcerrors.Warning `json:"warnings,omitempty"`
}

// Added returns the number of records the insertion created.
func (r *InsertResult) Added() int {
	return r.Nodes + r.Containers + r.Edges + r.InternalEdges
}

// Changed reports whether the insertion modified the canvas.
func (r *InsertResult) Changed() bool { return r.Added() > 0 }

func (r *InsertResult) warn(code lcerrors.Code, subject, format string, args ...any) {
	r.Warnings = append(r.Warnings, lcerrors.Warn(code, subject, format, args...))
}
