package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/wordwall/pkg/pipeline"
)

// defaultOutputBase names rendered files when -o is not given.
const defaultOutputBase = "wordwall"

// layoutFlags holds the flags shared by layout and render.
type layoutFlags struct {
	noCache bool
	refresh bool
	opts    pipeline.Options
}

// register adds the layout flags. Canvas size, seed and attempts default to
// the configuration and are bound to it in PreRun.
func (f *layoutFlags) register(flags *pflag.FlagSet) {
	flags.Float64("width", pipeline.DefaultWidth, "canvas width in pixels")
	flags.Float64("height", pipeline.DefaultHeight, "canvas height in pixels")
	flags.Uint64("seed", pipeline.DefaultSeed, "random seed")
	flags.Int("max-attempts", 0, "placement attempts per word (default 1000)")
	flags.StringVar(&f.opts.Measure, "measure", pipeline.MeasureFont, "text measurement: font, estimate")
	flags.BoolVar(&f.opts.NoCorrect, "no-correct", false, "skip moving overflowing words back inside the canvas")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	flags.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

var layoutFlagKeys = map[string]string{
	"width":        keyCanvasWidth,
	"height":       keyCanvasHeight,
	"seed":         keyLayoutSeed,
	"max-attempts": keyLayoutAttempts,
}

// options merges the configuration with the command's flags.
func (c *CLI) options(f *layoutFlags) pipeline.Options {
	opts := c.settings().pipelineOptions()
	opts.Measure = f.opts.Measure
	opts.NoCorrect = f.opts.NoCorrect
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the word wall and print placements as JSON",
		Long: `Compute the word wall and print placements as JSON.

Each word gets a center position, font size, rotation and color class.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			c.bindFlags(cmd.Flags(), layoutFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(&flags)
			opts.Formats = []string{pipeline.FormatJSON}
			result, err := c.execute(cmd.Context(), opts, flags.noCache, "Computing layout...")
			if err != nil {
				return err
			}
			data := result.Artifacts[pipeline.FormatJSON]
			if output == "" {
				_, err := stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Layout complete")
			printFile(output)
			printWallStats(result.Stats.WordCount, result.Stats.Exhausted, result.CacheInfo.LayoutHit)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      layoutFlags
		output     string
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the word wall to SVG, PNG, PDF, JSON or DOT",
		Long: `Render the word wall.

Unmastered words are drawn larger and stronger; mastered words fade. Use
--style dark or --theme theme.toml to change colors. PDF output and the
rsvg PNG engine need rsvg-convert on PATH; graphviz renders the DOT export
through neato with pinned positions.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			c.bindFlags(cmd.Flags(), layoutFlagKeys)
			c.bindFlags(cmd.Flags(), map[string]string{"style": keyRenderStyle, "theme": keyRenderTheme})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(&flags)
			opts.Formats = parseFormats(formatsStr)
			opts.Scale = flags.opts.Scale
			opts.PNGEngine = flags.opts.PNGEngine
			opts.Title = flags.opts.Title
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			result, err := c.execute(cmd.Context(), opts, flags.noCache, "Rendering word wall...")
			if err != nil {
				return err
			}
			paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
			if err != nil {
				return err
			}

			printSuccess("Rendered word wall")
			for _, p := range paths {
				printFile(p)
			}
			printWallStats(result.Stats.WordCount, result.Stats.Exhausted, result.CacheInfo.RenderHit)
			if result.Stats.Exhausted > 0 {
				printNewline()
				printNextStep("Make room", "wordwall render --width 1600 --height 1000")
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graphviz (comma-separated)")
	cmd.Flags().String("style", pipeline.DefaultStyle, "color style: light, dark")
	cmd.Flags().String("theme", "", "TOML theme file (overrides --style)")
	cmd.Flags().Float64Var(&flags.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&flags.opts.PNGEngine, "engine", pipeline.EngineNative, "PNG engine: native, rsvg")
	cmd.Flags().StringVar(&flags.opts.Title, "title", "", "SVG document title")
	return cmd
}

// execute runs the pipeline over the stored words behind a spinner.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options, noCache bool, message string) (*pipeline.Result, error) {
	store, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	watch := startStopwatch(c.Logger)
	spin := startSpinner(ctx, message)
	result, err := runner.Execute(ctx, store.All(), opts)
	if err != nil {
		spin.fail("Failed")
		return nil, err
	}
	spin.done()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	c.Logger.Debug("pipeline finished", "layout", result.Stats.LayoutTime, "render", result.Stats.RenderTime)
	watch.done("Wall ready", "words", result.Stats.WordCount, "exhausted", result.Stats.Exhausted)
	return result, nil
}

// writeArtifacts writes one file per format. A single format is written to
// output as given; several formats share output as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func outputPath(output, format string, multi bool) string {
	ext := pipeline.Extension(format)
	switch {
	case output == "":
		return defaultOutputBase + ext
	case multi:
		return strings.TrimSuffix(output, filepath.Ext(output)) + ext
	default:
		return output
	}
}
