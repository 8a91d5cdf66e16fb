package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refgraph/refgraph/pkg/encoding"
	"github.com/refgraph/refgraph/pkg/serial"
)

// graphStats summarizes the contents of an exported graph.
type graphStats struct {
	Types       int // distinct type buckets
	Definitions int // object definitions across all buckets
	References  int // object references anywhere in the data
	Values      int // total values, containers included
}

// statsCommand creates the stats command for summarizing graph files.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Summarize the contents of a serialized graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := encoding.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			stats, err := collectStats(value)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", args[0], err)
			}

			printKeyValue("types", fmt.Sprintf("%d", stats.Types))
			printKeyValue("definitions", fmt.Sprintf("%d", stats.Definitions))
			printKeyValue("references", fmt.Sprintf("%d", stats.References))
			printKeyValue("values", fmt.Sprintf("%d", stats.Values))
			return nil
		},
	}
}

// collectStats walks an export dictionary and counts its contents.
func collectStats(data *serial.Value) (graphStats, error) {
	var stats graphStats

	entries, err := data.AsDict()
	if err != nil {
		return graphStats{}, err
	}
	stats.Types = len(entries)

	for _, entry := range entries {
		defs, err := entry.Value.AsList()
		if err != nil {
			return graphStats{}, fmt.Errorf("bucket %s: %w", entry.Key, err)
		}
		stats.Definitions += len(defs)
	}

	countValues(data, &stats)
	return stats, nil
}

// countValues recursively tallies values and references under v.
func countValues(v *serial.Value, stats *graphStats) {
	stats.Values++
	if v.IsRef() {
		stats.References++
		return
	}
	if items, err := v.AsList(); err == nil {
		for _, item := range items {
			countValues(item, stats)
		}
		return
	}
	if entries, err := v.AsDict(); err == nil {
		for _, entry := range entries {
			countValues(entry.Value, stats)
		}
	}
}
