package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/pkg/graph"
)

// showCommand creates the show command, which prints a canvas summary.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [snapshot.json | canvas-id]",
		Short: "Print a summary of a canvas",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: c.completeCanvasRef,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runShow(ctx context.Context, ref string) error {
	snap, err := c.loadSnapshot(ctx, ref)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Canvas " + snap.ID))
	printKeyValue("revision", strconv.Itoa(snap.Revision))
	printKeyValue("nodes", strconv.Itoa(len(snap.Nodes)))
	printKeyValue("edges", strconv.Itoa(len(snap.Edges)))
	if len(snap.Internal) > 0 {
		printKeyValue("internal", strconv.Itoa(len(snap.Internal)))
	}
	if minX, minY, maxX, maxY, ok := snap.Bounds(); ok {
		printKeyValue("bounds", fmt.Sprintf("%s,%s → %s,%s", fmtCoord(minX), fmtCoord(minY), fmtCoord(maxX), fmtCoord(maxY)))
	}
	if len(snap.Nodes) == 0 {
		printInfo("Canvas is empty")
		return nil
	}
	printNewline()
	fmt.Println(summaryTable(snap))
	return nil
}

// summaryTable renders one row per top-level element. Containers list their
// children in column order.
func summaryTable(snap *graph.Snapshot) string {
	var rows [][]string
	for _, n := range snap.TopLevel() {
		kind := "node"
		detail := ""
		if n.IsContainer() {
			kind = "container"
			detail = strings.Join(n.Children, ", ")
		}
		rows = append(rows, []string{
			n.ID,
			kind,
			n.Data.Label,
			fmtCoord(n.Position.X) + "," + fmtCoord(n.Position.Y),
			fmtCoord(n.Width) + "×" + fmtCoord(n.Height),
			n.Fragment,
			detail,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Kind", "Label", "Position", "Size", "Fragment", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 3 || col == 4:
				return StyleNumber
			case col == 5 || col == 6:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
