package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// pointsPerPixel converts CSS pixels to Graphviz points.
const pointsPerPixel = 0.75

// ToDOT converts a wall to an undirected Graphviz graph with one plaintext
// node per word, pinned at its placement. Render it with the neato engine
// ([RenderGraphviz] does this).
//
// Graphviz has no per-node rotation, so words are drawn upright.
func ToDOT(res wall.Result, words []wall.Word, theme styles.Theme) string {
	var buf bytes.Buffer
	buf.WriteString("graph wall {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", theme.Background)
	fmt.Fprintf(&buf, "  bb=\"0,0,%.2f,%.2f\";\n",
		res.Canvas.Width*pointsPerPixel, res.Canvas.Height*pointsPerPixel)
	fmt.Fprintf(&buf, "  node [shape=plaintext, margin=0, fontname=%q];\n", firstFamily(theme.FontFamily))
	buf.WriteString("\n")

	for _, i := range drawOrder(res, len(words)) {
		w, p := words[i], res.Placements[i]
		// Graphviz y grows upward.
		x := p.X * pointsPerPixel
		y := (res.Canvas.Height - p.Y) * pointsPerPixel
		color := theme.Color(p.ColorClass)
		if w.Mastered {
			color += alphaHex(theme.MasteredOpacity)
		}
		fmt.Fprintf(&buf, "  w%d [label=%q, pos=\"%.2f,%.2f!\", fontsize=%.2f, fontcolor=%q];\n",
			i, w.Text, x, y, p.FontSize*pointsPerPixel, color)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Graphviz output formats supported by [RenderGraphviz].
const (
	GraphvizSVG = "svg"
	GraphvizPNG = "png"
)

// RenderGraphviz lays out DOT with neato and renders it as svg or png.
func RenderGraphviz(ctx context.Context, dot, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case GraphvizSVG:
		gvFormat = graphviz.SVG
	case GraphvizPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func firstFamily(families string) string {
	name, _, _ := strings.Cut(families, ",")
	return strings.Trim(strings.TrimSpace(name), `"'`)
}

func alphaHex(opacity float64) string {
	a := int(opacity*255 + 0.5)
	a = max(0, min(255, a))
	return fmt.Sprintf("%02x", a)
}
