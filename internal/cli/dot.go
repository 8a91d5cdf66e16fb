package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/pkg/encoding"
	"github.com/refgraph/refgraph/pkg/render"
)

// dotCommand creates the dot command for rendering reference topology.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dot [graph.json]",
		Short: "Render the reference topology of a graph file",
		Long: `Render the reference topology of a graph file.

Every object definition becomes a node and every object reference becomes a
directed edge. With --detailed, edges are labeled with the field path that
holds the reference (e.g. "peers[0]").

Output is Graphviz DOT by default; use --format svg to render through
Graphviz directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := encoding.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			dot, err := render.ToDOT(value, render.Options{Detailed: detailed})
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			var out []byte
			switch format {
			case "dot":
				out = []byte(dot)
			case "svg":
				out, err = render.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q: use dot or svg", format)
			}

			if output == "" {
				fmt.Print(string(out))
				if !strings.HasSuffix(string(out), "\n") {
					fmt.Println()
				}
				return nil
			}
			if err := os.WriteFile(output, out, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label edges with the referencing field path")

	return cmd
}
