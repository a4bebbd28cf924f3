package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored canvases",
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeClearCommand())
	cmd.AddCommand(c.storePathCommand())

	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored canvas IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				ids, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No stored canvases")
					return nil
				}
				for _, id := range ids {
					fmt.Println(id)
				}
				return nil
			})
		},
	}
}

// storeClearCommand creates the "store clear" subcommand.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored canvases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				count, err := store.Clear(cmd.Context(), st)
				if err != nil {
					return err
				}
				if count == 0 {
					printInfo("Store is empty")
					return nil
				}
				printSuccess("Cleared %d stored canvases", count)
				printDetail("Backend: %s", c.cfg.Store.Backend)
				return nil
			})
		},
	}
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Store.Backend != "" && c.cfg.Store.Backend != store.BackendFile {
				return fmt.Errorf("store backend is %q, not %q", c.cfg.Store.Backend, store.BackendFile)
			}
			dir := c.cfg.Store.Dir
			if dir == "" {
				var err error
				if dir, err = store.DefaultDir(); err != nil {
					return fmt.Errorf("get store dir: %w", err)
				}
			}
			fmt.Println(dir)
			return nil
		},
	}
}

func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
