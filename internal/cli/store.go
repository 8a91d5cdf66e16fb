package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/internal/config"
	"github.com/refgraph/refgraph/pkg/encoding"
	"github.com/refgraph/refgraph/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the snapshot store",
		Long: `Manage the snapshot store.

Snapshots are stored in the backend selected by the configuration file:
a local directory by default, or redis / mongo for shared deployments.`,
	}

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// openStore resolves the configuration and opens the selected backend.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := config.OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	return st, nil
}

// storePutCommand creates the "store put" subcommand.
func (c *CLI) storePutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put [graph.json]",
		Short: "Store a graph file as a new snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Decode before storing so corrupt files are rejected here,
			// not on first read.
			value, err := encoding.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			graph, err := encoding.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", args[0], err)
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			prog := newProgress(c.Logger)
			snap := store.NewSnapshot(graph)

			spinner := newSpinner(ctx, "Storing snapshot...")
			spinner.Start()
			if err := st.Put(ctx, snap); err != nil {
				spinner.StopWithError("Store failed")
				return fmt.Errorf("store snapshot: %w", err)
			}
			spinner.Stop()

			prog.done(fmt.Sprintf("Stored snapshot %s", snap.ID))
			printSuccess("Stored %s", args[0])
			printDetail("Snapshot: %s", snap.ID)
			return nil
		},
	}
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Fetch a snapshot and write its graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			spinner := newSpinner(ctx, "Fetching snapshot...")
			spinner.Start()
			snap, err := st.Get(ctx, args[0])
			if err != nil {
				spinner.StopWithError("Fetch failed")
				return fmt.Errorf("fetch snapshot %s: %w", args[0], err)
			}
			spinner.Stop()

			if output == "" {
				fmt.Print(string(snap.Graph))
				return nil
			}
			if err := os.WriteFile(output, snap.Graph, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Fetched snapshot %s", snap.ID)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshot ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			ids, err := st.List(ctx)
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			if len(ids) == 0 {
				printInfo("Store is empty")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete snapshot %s: %w", args[0], err)
			}
			printSuccess("Deleted snapshot %s", args[0])
			return nil
		},
	}
}
