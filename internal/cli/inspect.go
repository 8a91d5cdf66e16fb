package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/pkg/encoding"
)

// inspectCommand creates the inspect command for pretty-printing graph files.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Pretty-print a serialized graph file",
		Long: `Pretty-print a serialized graph file.

The inspect command decodes a graph file and prints it in the human-readable
debug format: one entry per line, definitions prefixed with &d<id> and
references shown as &r<id><Type>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := encoding.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			fmt.Println(value.String())
			return nil
		},
	}
}
