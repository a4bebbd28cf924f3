package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/observability"
	"github.com/matzehuels/layercanvas/pkg/render"
)

// pointsPerInch converts canvas units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Internal also draws intra-container edges, dashed.
	Internal bool
	// Detailed adds the record ID and fragment prefix to labels.
	Detailed bool
}

// ToDOT converts a snapshot to DOT with pinned node positions.
func ToDOT(s *graph.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=12];\n")
	buf.WriteString("\n")

	// Containers first so their children are drawn on top.
	for _, n := range s.Nodes {
		if n.IsContainer() {
			writeNode(&buf, n, n.Position, opts)
		}
	}
	for _, n := range s.Nodes {
		if n.IsContainer() {
			continue
		}
		pos := n.Position
		if parent, ok := s.Node(n.ParentID); ok && n.IsChild() {
			pos.X += parent.Position.X
			pos.Y += parent.Position.Y
		}
		writeNode(&buf, n, pos, opts)
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}
	if opts.Internal {
		for _, e := range s.Internal {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n graph.NodeRecord, abs graph.Position, opts Options) {
	cx := abs.X + n.Width/2
	cy := -(abs.Y + n.Height/2)
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(cy)),
		fmt.Sprintf("width=%s", fmtFloat(n.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", fmtFloat(n.Height/pointsPerInch)),
	}
	if n.IsContainer() {
		attrs = append(attrs,
			"style=\"rounded,filled\"",
			"fillcolor=\"#94a3b81f\"",
			"color=\"#94a3b8\"",
			"labelloc=t",
		)
	}
	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
}

func fmtLabel(n graph.NodeRecord, detailed bool) string {
	if !detailed {
		return n.Data.Label
	}
	parts := []string{n.Data.Label, "id: " + n.ID}
	if n.Fragment != "" {
		parts = append(parts, "fragment: "+n.Fragment)
	}
	return strings.Join(parts, "\n")
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG using Graphviz's neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, render.FormatSVG, strings.Count(dot, "pos="))
	svg, err := renderSVG(ctx, dot)
	observability.Render().OnRenderComplete(ctx, render.FormatSVG, time.Since(start), err)
	return svg, err
}

func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Render produces the requested format: dot, svg, pdf or png.
func Render(ctx context.Context, s *graph.Snapshot, format string, opts Options) ([]byte, error) {
	src := ToDOT(s, opts)
	switch format {
	case render.FormatDOT:
		return []byte(src), nil
	case render.FormatSVG:
		return RenderSVG(ctx, src)
	case render.FormatPDF:
		svg, err := RenderSVG(ctx, src)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	case render.FormatPNG:
		svg, err := RenderSVG(ctx, src)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, 2.0)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
