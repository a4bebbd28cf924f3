package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	"github.com/matzehuels/layercanvas/pkg/layout"
	"github.com/matzehuels/layercanvas/pkg/pipeline"
)

// insertOpts holds the command-line flags for the insert command.
type insertOpts struct {
	canvasID string   // stored canvas to insert into (created if missing)
	prefix   string   // explicit fragment prefix, empty for automatic
	policy   string   // id policy override: "isolate" or "share"
	anchor   string   // placement anchor override: "below" or "right"
	output   string   // base path for artifacts
	formats  []string // artifact formats: json, dot, svg, pdf, png
	noSave   bool     // do not write the canvas back to the store
	noStore  bool     // work on a fresh in-memory canvas
	internal bool     // draw intra-container edges in previews
}

// insertCommand creates the insert command.
func (c *CLI) insertCommand() *cobra.Command {
	var formatsStr string
	var opts insertOpts

	cmd := &cobra.Command{
		Use:   "insert [fragment...]",
		Short: "Insert fragment files into a canvas",
		Long: `Insert one or more fragment files (JSON or TOML) into a canvas, in order.

The canvas is loaded from the configured store and created when missing.
Existing elements keep their positions; new ones are placed in free space.
Repeating an insertion with the same --prefix changes nothing. With several
files, --prefix p- gives each file its own prefix: p-1-, p-2-, ...
When a file fails, the files inserted before it are still saved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr != "" || opts.output != "" {
				opts.formats = parseFormats(formatsStr, pipeline.FormatJSON)
			}
			return c.runInsert(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.canvasID, "canvas", "c", "", "canvas ID (default: a new canvas)")
	cmd.Flags().StringVarP(&opts.prefix, "prefix", "p", "", "fragment prefix (default: generated f<N>-)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "id policy: isolate, share (default from config)")
	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "placement of unconnected fragments: below, right (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "base path for output files (default: canvas ID)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json, dot, svg, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not save the canvas")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "start from an empty in-memory canvas")
	cmd.Flags().BoolVar(&opts.internal, "internal", false, "draw intra-container edges in previews")

	_ = cmd.RegisterFlagCompletionFunc("canvas", c.completeCanvasID)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("policy", fixedValues(policyValues...))
	_ = cmd.RegisterFlagCompletionFunc("anchor", fixedValues(anchorValues...))

	return cmd
}

func (c *CLI) runInsert(ctx context.Context, files []string, opts insertOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "insert")

	runner, err := c.newRunner(ctx, opts.noStore)
	if err != nil {
		return err
	}
	defer runner.Store.Close()

	canvasOpts := c.cfg.CanvasOptions(logger)
	if opts.anchor != "" {
		canvasOpts.Anchor = layout.Anchor(opts.anchor)
	}

	popts := pipeline.Options{
		CanvasID:  opts.canvasID,
		Fragments: files,
		Prefix:    opts.prefix,
		Policy:    canvas.IDPolicy(opts.policy),
		Formats:   opts.formats,
		Canvas:    canvasOpts,
		NoSave:    opts.noSave || opts.noStore,
	}
	popts.Render.Internal = opts.internal

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done("insert finished", "canvas", result.Snapshot.ID, "fragments", len(result.Inserts),
		"added", result.Stats.Added, "saved", result.Saved)

	snap := result.Snapshot
	if result.Created {
		printSuccess("Created canvas %s", StyleHighlight.Render(snap.ID))
	} else {
		printSuccess("Updated canvas %s", StyleHighlight.Render(snap.ID))
	}
	for i, ins := range result.Inserts {
		printDetail("%s  prefix %s  +%d nodes  +%d containers  +%d edges  %d skipped",
			files[i], ins.Prefix, ins.Nodes, ins.Containers, ins.Edges+ins.InternalEdges, ins.Skipped)
		for _, w := range ins.Warnings {
			printWarning("%s: %s", w.Subject, w.Message)
		}
	}
	printStats(len(snap.Nodes), len(snap.Edges), snap.Revision, result.Saved)

	if len(opts.formats) > 0 {
		base := opts.output
		if base == "" {
			base = snap.ID
		}
		if err := writeArtifacts(base, opts.formats, result.Artifacts); err != nil {
			return err
		}
	}

	if result.Saved {
		printNewline()
		printNextStep("Preview", fmt.Sprintf("%s render %s -f svg", appName, snap.ID))
	}
	return nil
}

// writeArtifacts writes each artifact to base.<format>, or to base itself
// when there is a single format and base already carries its extension.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) error {
	single := len(formats) == 1
	for _, format := range slices.Compact(slices.Clone(formats)) {
		path := outputPath(base, format, single)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
