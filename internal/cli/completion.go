package cli

import (
	"context"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/pkg/canvas"
	"github.com/matzehuels/layercanvas/pkg/layout"
	"github.com/matzehuels/layercanvas/pkg/pipeline"
)

// completionTimeout bounds store lookups during completion, so a slow
// remote store never stalls the shell.
const completionTimeout = 2 * time.Second

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for layercanvas.

Besides commands and flags, the scripts complete stored canvas IDs for
render, show and insert --canvas, and the values of --format, --policy
and --anchor:

  $ layercanvas render bo<TAB>        ->  layercanvas render board
  $ layercanvas insert -f json,s<TAB> ->  layercanvas insert -f json,svg

Bash:
  $ source <(layercanvas completion bash)
  $ layercanvas completion bash > /etc/bash_completion.d/layercanvas

Zsh:
  $ layercanvas completion zsh > "${fpath[1]}/_layercanvas"

Fish:
  $ layercanvas completion fish > ~/.config/fish/completions/layercanvas.fish

PowerShell:
  PS> layercanvas completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// =============================================================================
// Completion Functions
// =============================================================================

type completionFunc = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

// completeCanvasRef completes the single snapshot-or-ID argument of render
// and show. Stored IDs are offered alongside ordinary file completion.
func (c *CLI) completeCanvasRef(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.storedIDs(cmd.Context(), toComplete), cobra.ShellCompDirectiveDefault
}

// completeCanvasID completes the value of --canvas.
func (c *CLI) completeCanvasID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.storedIDs(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// storedIDs lists stored canvas IDs starting with prefix. Lookup failures
// yield no candidates.
func (c *CLI) storedIDs(ctx context.Context, prefix string) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	if err := c.loadConfig(); err != nil {
		return nil
	}
	st, err := c.openStore(ctx, false)
	if err != nil {
		return nil
	}
	defer st.Close()

	ids, err := st.List(ctx)
	if err != nil {
		loggerFromContext(ctx).Debug("completion: list canvases", "err", err)
		return nil
	}
	matches := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	slices.Sort(matches)
	return matches
}

// completeFormats completes a comma-separated format list. Formats already
// in the list are not offered again.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, last = toComplete[:i+1], toComplete[i+1:]
	}
	chosen := strings.Split(strings.TrimSuffix(done, ","), ",")

	var out []string
	for _, f := range allFormats() {
		if strings.HasPrefix(f, last) && !slices.Contains(chosen, f) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func allFormats() []string {
	formats := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// fixedValues completes a flag from a closed set of values.
func fixedValues(values ...string) completionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

var (
	policyValues = []string{string(canvas.PolicyIsolate), string(canvas.PolicyShare)}
	anchorValues = []string{string(layout.AnchorBelow), string(layout.AnchorRight)}
)
