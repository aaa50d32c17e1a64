// Package depgraph renders the dependency structure of a scene as a
// Graphviz node-link diagram: one node per entity, one labeled edge per
// dependency relation.
//
// This is a diagnostic view of the constraint graph the resolver walks,
// not a drawing of the geometry itself.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/daschober/planesketch/pkg/observability"
	"github.com/daschober/planesketch/pkg/scene"
)

// Options configures dependency-graph rendering.
type Options struct {
	// Detailed includes coordinates and coefficients in node labels.
	// When false, only the display name (or id) is shown.
	Detailed bool
}

// ToDOT converts a scene's dependency graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Node shape encodes the entity kind (point: ellipse, line: box, conic:
// hexagon); hidden entities are dashed; edges are labeled with their
// dependency kind.
func ToDOT(s scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, e := range s.Entities() {
		label := fmtLabel(e, opts.Detailed)
		attrs := fmtAttrs(e, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", e.Common().ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, edge := range s.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", edge.From, edge.To, edge.Kind.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(e scene.Entity, detailed bool) string {
	m := e.Common()
	label := m.Name
	if label == "" {
		label = shortID(m.ID)
	}
	if !detailed {
		return label
	}

	var parts []string
	switch e := e.(type) {
	case *scene.Point:
		parts = append(parts, fmt.Sprintf("(%.3g, %.3g)", e.X, e.Y))
		if e.Free {
			parts = append(parts, "free")
		}
	case *scene.Line:
		parts = append(parts, fmt.Sprintf("%.3gx + %.3gy + %.3g = 0", e.A, e.B, e.C))
	case *scene.Conic:
		parts = append(parts, e.Class.String())
		parts = append(parts, fmt.Sprintf("a=%.3g b=%.3g", e.Standard.A, e.Standard.B))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(e scene.Entity, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch e.Kind() {
	case scene.KindPoint:
		attrs = append(attrs, "shape=ellipse")
	case scene.KindLine:
		attrs = append(attrs, "shape=box")
	case scene.KindConic:
		attrs = append(attrs, "shape=hexagon")
	}

	if e.Common().Hidden {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	if c := e.Common().Color; c != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c))
	}
	return attrs
}

// shortID truncates a uuid-length id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "svg", strings.Count(dot, "\n"))

	svg, err := renderSVG(ctx, dot)
	observability.Render().OnRenderComplete(ctx, "svg", time.Since(start), err)
	return svg, err
}

func renderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer <svg> tag so the viewBox starts at
// the origin and the pixel size matches it, which keeps embedding hosts
// from clipping the diagram.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
