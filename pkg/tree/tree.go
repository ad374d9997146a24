// Package tree draws the building, story and room hierarchy of a district
// model as a Graphviz graph.
//
// [ToDOT] writes the DOT source and [RenderSVG] lays it out with the
// WebAssembly build of Graphviz, so no system install is needed.
package tree

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

// Options configures the tree drawing.
type Options struct {
	// Detailed adds multipliers, elevations and floor areas to the labels.
	Detailed bool
}

// Stats counts the nodes of a drawn tree.
type Stats struct {
	Buildings int
	Stories   int
	Rooms     int
}

// Count returns the hierarchy sizes of m.
func Count(m *dragonfly.Model) Stats {
	var s Stats
	for _, b := range m.Buildings {
		s.Buildings++
		for _, st := range b.UniqueStories {
			s.Stories++
			s.Rooms += len(st.Room2Ds)
		}
	}
	return s
}

// ToDOT converts m to a top-down DOT digraph. Node ids carry a kind prefix
// so a story and a room sharing an identifier stay distinct.
func ToDOT(m *dragonfly.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph District {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	root := "model:" + m.Identifier
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=\"#74eded\"];\n", root, nameOr(m.DisplayName, m.Identifier))
	for _, b := range m.Buildings {
		bid := "building:" + b.Identifier
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#d6f5f5\"];\n", bid, b.Name())
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, bid)
		for _, s := range b.UniqueStories {
			sid := "story:" + s.Identifier
			label := s.Name()
			if opts.Detailed {
				label += fmt.Sprintf("\nx%d @ %.2f", max(s.Multiplier, 1), s.FloorHeight)
			}
			fmt.Fprintf(&buf, "  %q [label=%q, shape=box3d];\n", sid, label)
			fmt.Fprintf(&buf, "  %q -> %q;\n", bid, sid)
			for _, r := range s.Room2Ds {
				rid := "room:" + r.Identifier
				label := r.Name()
				if opts.Detailed {
					label += fmt.Sprintf("\n%.1f m2", r.FloorArea())
					if r.Program != "" {
						label += "\n" + r.Program
					}
				}
				fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", rid, label)
				fmt.Fprintf(&buf, "  %q -> %q;\n", sid, rid)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph and returns it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return buf.Bytes(), nil
}

func nameOr(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
