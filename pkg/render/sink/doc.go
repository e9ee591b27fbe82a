// Package sink writes a computed word wall in the supported output formats.
//
// Every writer takes the [wall.Result] together with the word snapshot it
// was computed from; Placements[i] belongs to words[i].
//
//   - [RenderSVG]: SVG via svgo, one rotated <text> per word
//   - [RenderPNG]: native raster drawing with the Go Regular font
//   - [RenderPDF]: SVG converted by rsvg-convert
//   - [RenderJSON]: placements plus resolved colors for custom front ends
//   - [ToDOT] and [RenderGraphviz]: a pinned-position neato graph
//
// [FontMeasurer] measures text with the same font [RenderPNG] draws with,
// so layouts computed with it fit the raster output exactly.
package sink
