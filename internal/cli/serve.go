package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/internal/server"
)

// serveCommand creates the serve command for the HTTP inspection service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots over HTTP for inspection",
		Long: `Serve snapshots over HTTP for inspection.

The service is read-only: it lists stored snapshots and serves each one as
raw JSON, as the debug pretty rendering, or as a Graphviz DOT digraph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:    addr,
				Handler: server.New(st, c.Logger).Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			c.Logger.Info("serving snapshots", "addr", addr)

			select {
			case err := <-errCh:
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8420", "listen address")
	return cmd
}
