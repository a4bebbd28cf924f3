package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/pkg/pipeline"
	"github.com/matzehuels/layercanvas/pkg/render"
	"github.com/matzehuels/layercanvas/pkg/render/dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: dot, svg, pdf, png, json
	internal bool     // draw intra-container edges, dashed
	detailed bool     // add record IDs and fragment prefixes to labels
}

// renderCommand creates the render command for static canvas previews.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [snapshot.json | canvas-id]",
		Short: "Render a canvas preview with pinned positions",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: c.completeCanvasRef,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, render.FormatSVG)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.internal, "internal", false, "draw intra-container edges")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show record IDs and fragment prefixes")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, ref string, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx), "render")

	snap, err := c.loadSnapshot(ctx, ref)
	if err != nil {
		return err
	}
	prog.step("canvas loaded", "canvas", snap.ID, "revision", snap.Revision)

	artifacts, err := pipeline.RenderArtifacts(ctx, snap, opts.formats, dot.Options{
		Internal: opts.internal,
		Detailed: opts.detailed,
	})
	if err != nil {
		return err
	}
	prog.done("rendered canvas", "canvas", snap.ID, "nodes", len(snap.Nodes), "formats", opts.formats)

	base := opts.output
	if base == "" {
		base = snap.ID
	}
	printSuccess("Rendered canvas %s", StyleHighlight.Render(snap.ID))
	return writeArtifacts(base, opts.formats, artifacts)
}
