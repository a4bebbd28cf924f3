// Package cli implements the layercanvas command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/pkg/buildinfo"
	"github.com/matzehuels/layercanvas/pkg/config"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/pipeline"
	"github.com/matzehuels/layercanvas/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "layercanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and built-in settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Layercanvas lays out graph fragments on an incremental canvas",
		Long:         `Layercanvas places nodes, edges and containers on a layered canvas. Each inserted fragment lands in free space while everything already on the canvas keeps its position.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/layercanvas/config.toml)")

	root.AddCommand(c.insertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath, c.Logger)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Store & Runner Factory
// =============================================================================

// openStore opens the configured store. With noStore set, nothing is
// persisted.
func (c *CLI) openStore(ctx context.Context, noStore bool) (store.Store, error) {
	if noStore {
		return store.NewNullStore(), nil
	}
	return store.Open(ctx, c.cfg.Store)
}

// newRunner creates a pipeline runner for CLI use. The caller closes the
// runner's store.
func (c *CLI) newRunner(ctx context.Context, noStore bool) (*pipeline.Runner, error) {
	st, err := c.openStore(ctx, noStore)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(st, c.Logger), nil
}

// loadSnapshot reads ref as a snapshot file when it names one, and as a
// stored canvas ID otherwise.
func (c *CLI) loadSnapshot(ctx context.Context, ref string) (*graph.Snapshot, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return graph.ReadSnapshotFile(ref)
	}

	st, err := c.openStore(ctx, false)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	snap, err := st.Load(ctx, ref)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%q is neither a snapshot file nor a stored canvas", ref)
	}
	return snap, err
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, def string) []string {
	if s == "" {
		return []string{def}
	}
	return strings.Split(s, ",")
}
