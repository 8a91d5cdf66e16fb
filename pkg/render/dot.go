// Package render produces Graphviz visualizations of exported object graphs.
//
// The input is an export-shaped wire dictionary (type name buckets of
// definition bodies, see package objgraph). Every definition becomes a node
// labeled Type#id and every reference inside its body becomes a directed
// edge, so shared instances and cycles are visible at a glance. Like the
// debug pretty printer, this is an inspection aid, not a persistence format.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/refgraph/refgraph/pkg/serial"
)

// Options configures DOT generation.
type Options struct {
	// Detailed labels each edge with the field path it came from.
	// When false, edges are unlabeled.
	Detailed bool
}

type edge struct {
	from, to, label string
}

// ToDOT converts an export-shaped dictionary to Graphviz DOT format.
// The resulting string can be rendered with [RenderSVG].
func ToDOT(data *serial.Value, opts Options) (string, error) {
	buckets, err := data.AsDict()
	if err != nil {
		return "", err
	}

	var nodes []string
	var edges []edge
	for _, bucket := range buckets {
		items, err := bucket.Value.AsList()
		if err != nil {
			return "", fmt.Errorf("bucket %s: %w", bucket.Key, err)
		}
		for _, item := range items {
			id, err := item.AsDefinition()
			if err != nil {
				return "", fmt.Errorf("bucket %s: %w", bucket.Key, err)
			}
			from := nodeID(bucket.Key, id)
			nodes = append(nodes, from)
			collectEdges(item, from, "", &edges)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q;\n", n)
	}
	buf.WriteString("\n")
	for _, e := range edges {
		if opts.Detailed && e.label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.from, e.to, e.label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// collectEdges walks a definition body and records one edge per reference.
func collectEdges(v *serial.Value, from, path string, edges *[]edge) {
	switch v.Kind() {
	case serial.KindRef:
		ref, _ := v.AsRef()
		*edges = append(*edges, edge{from: from, to: nodeID(ref.Type, ref.ID), label: path})

	case serial.KindList:
		items, _ := v.AsList()
		for i, item := range items {
			collectEdges(item, from, fmt.Sprintf("%s[%d]", path, i), edges)
		}

	case serial.KindDict:
		entries, _ := v.AsDict()
		for _, e := range entries {
			child := e.Key
			if path != "" {
				child = path + "." + e.Key
			}
			collectEdges(e.Value, from, child, edges)
		}
	}
}

// nodeID builds a display id like "demo.Node#3", shortening package-qualified
// type names to their last segment.
func nodeID(typeName string, id int64) string {
	if i := strings.LastIndexByte(typeName, '/'); i >= 0 {
		typeName = typeName[i+1:]
	}
	return fmt.Sprintf("%s#%d", typeName, id)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
