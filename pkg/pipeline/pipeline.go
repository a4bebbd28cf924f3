// Package pipeline runs the batch flow shared by the CLI and the HTTP server:
// load a canvas from a store, insert fragments, save it, and render outputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(st, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CanvasID:  "team-board",
//	    Fragments: []string{"intake.json", "review.toml"},
//	    Formats:   []string{"json", "svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Stages can also be run on their own with [Runner.Open],
// [Runner.InsertFiles], [Runner.Save] and [RenderArtifacts].
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/render"
	"github.com/matzehuels/layercanvas/pkg/render/dot"
)

// =============================================================================
// Formats
// =============================================================================

// FormatJSON is the snapshot itself, as consumed by rendering clients.
const FormatJSON = "json"

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatJSON}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:       true,
	render.FormatDOT: true,
	render.FormatSVG: true,
	render.FormatPDF: true,
	render.FormatPNG: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// CanvasID names the stored canvas. A missing canvas is created with
	// this ID; an empty ID always starts a new canvas.
	CanvasID string `json:"canvas_id,omitempty"`

	// Fragments are fragment files (JSON or TOML) inserted in order.
	Fragments []string `json:"fragments"`

	// Prefix and Policy apply to every insertion of the run. With several
	// fragments, each file gets its own prefix derived from Prefix (see
	// FilePrefix).
	Prefix string          `json:"prefix,omitempty"`
	Policy canvas.IDPolicy `json:"policy,omitempty"`

	// Formats lists the artifacts to produce.
	Formats []string `json:"formats,omitempty"`

	// Render configures DOT based formats.
	Render dot.Options `json:"-"`

	// Canvas configures layout and defaults for the loaded canvas.
	Canvas canvas.Options `json:"-"`

	// NoSave skips writing the canvas back to the store.
	NoSave bool `json:"no_save,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Policy != "" {
		if _, err := canvas.ParseIDPolicy(string(o.Policy)); err != nil {
			return err
		}
	}
	return o.Canvas.ValidateAndSetDefaults()
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format %q: must be json, dot, svg, pdf or png", format)
	}
	return nil
}

// ValidateFormats checks every format in the list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of [Runner.Execute].
type Result struct {
	Snapshot  *graph.Snapshot
	Inserts   []*canvas.InsertResult
	Artifacts map[string][]byte

	// Created is set when the canvas did not exist in the store.
	Created bool
	// Saved is set when the canvas was written back.
	Saved bool

	Stats Stats
}

// Stats records timing and size information for one run.
type Stats struct {
	LoadTime   time.Duration
	InsertTime time.Duration
	RenderTime time.Duration
	Added      int
	Warnings   int
}

// Changed reports whether any insertion modified the canvas.
func (r *Result) Changed() bool {
	for _, ins := range r.Inserts {
		if ins.Changed() {
			return true
		}
	}
	return false
}
