// Package render turns computed word walls into output formats.
//
// # Overview
//
//   - [sink]: SVG, PNG, PDF, JSON and Graphviz writers for a [wall.Result]
//   - [styles]: color themes (built-in light and dark, or TOML files)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). PDF output always goes through it. PNG output is drawn
// natively by [sink.RenderPNG] unless the rsvg engine is requested.
//
//	svg := sink.RenderSVG(res, words, sink.WithTheme(styles.Dark()))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
//
// [sink]: github.com/matzehuels/wordwall/pkg/render/sink
// [styles]: github.com/matzehuels/wordwall/pkg/render/styles
// [wall.Result]: github.com/matzehuels/wordwall/pkg/wall#Result
package render
