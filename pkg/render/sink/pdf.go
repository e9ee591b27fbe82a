package sink

import (
	"github.com/matzehuels/wordwall/pkg/render"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// RenderPDF renders the wall as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(res wall.Result, words []wall.Word, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(res, words, opts...))
}
