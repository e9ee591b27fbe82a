package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/wordwall/pkg/render"
	"github.com/matzehuels/wordwall/pkg/render/sink"
	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// ResolveTheme picks the theme from opts: an explicit Theme, then a TOML
// file, then a built-in style name.
func ResolveTheme(opts Options) (styles.Theme, error) {
	switch {
	case opts.Theme != nil:
		return *opts.Theme, nil
	case opts.ThemePath != "":
		return styles.LoadTheme(opts.ThemePath)
	default:
		return styles.Get(opts.Style)
	}
}

// RenderFromLayout generates output artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, res wall.Result, in Input, opts Options) (map[string][]byte, error) {
	theme, err := ResolveTheme(opts)
	if err != nil {
		return nil, err
	}

	words := in.Words
	if len(words) != len(res.Placements) {
		return nil, fmt.Errorf("layout has %d placements for %d words", len(res.Placements), len(words))
	}

	svgOpts := []sink.SVGOption{sink.WithTheme(theme), sink.WithTooltips(in.Translations)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res, words, svgOpts...)
		case FormatPNG:
			if opts.PNGEngine == EngineRSVG {
				data, err = render.ToPNG(sink.RenderSVG(res, words, svgOpts...), opts.Scale)
			} else {
				data, err = sink.RenderPNG(res, words, sink.WithPNGTheme(theme), sink.WithScale(opts.Scale))
			}
		case FormatPDF:
			data, err = sink.RenderPDF(res, words, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(res, words,
				sink.WithJSONTheme(theme),
				sink.WithJSONTranslations(in.Translations),
				sink.WithJSONMeasurer(measurer(opts)))
		case FormatDOT:
			data = []byte(sink.ToDOT(res, words, theme))
		case FormatGraphviz:
			data, err = sink.RenderGraphviz(ctx, sink.ToDOT(res, words, theme), sink.GraphvizSVG)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
