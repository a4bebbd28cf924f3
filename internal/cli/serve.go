package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layercanvas/internal/server"
)

// serveCommand creates the serve command, which exposes canvases over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve canvases over HTTP",
		Long: `Serve canvases from the configured store over HTTP.

Routes:
  GET    /healthz
  GET    /canvases
  GET    /canvases/{id}
  DELETE /canvases/{id}
  POST   /canvases/{id}/fragments?prefix=&policy=
  GET    /canvases/{id}/dot
  GET    /canvases/{id}/svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	st, err := c.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer st.Close()

	srv, err := server.New(server.Options{
		Addr:   addr,
		Store:  st,
		Canvas: c.cfg.CanvasOptions(logger),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	printInfo("Serving canvases on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printDetail("Store: %s", c.cfg.Store.Backend)
	return srv.ListenAndServe(ctx)
}

// displayAddr turns a listen address like ":8080" into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
