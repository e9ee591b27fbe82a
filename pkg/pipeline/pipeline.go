// Package pipeline runs the layout → render pipeline for a word wall.
//
// The CLI and the HTTP server both go through a [Runner] so that defaults,
// validation and caching behave the same everywhere.
//
// # Stages
//
//  1. Layout: size, rank and place the words ([wall.Layout]), then pull any
//     word that crosses the canvas edge back inside ([wall.Correct])
//  2. Render: write the placed words in the requested formats
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, store.All(), pipeline.Options{
//	    Width:   1200,
//	    Height:  800,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordwall/pkg/cache"
	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/wall"
)

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 800.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the raster scale for PNG output.
	DefaultScale = 2.0

	// DefaultStyle is the default theme.
	DefaultStyle = styles.StyleLight
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraphviz}

// PNG engines.
const (
	EngineNative = "native"
	EngineRSVG   = "rsvg"
)

// Measurers select how text is sized during layout.
const (
	MeasureFont     = "font"
	MeasureEstimate = "estimate"
)

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	Seed            uint64  `json:"seed,omitempty"`
	MaxAttempts     int     `json:"max_attempts,omitempty"`
	CollisionFactor float64 `json:"collision_factor,omitempty"`
	Measure         string  `json:"measure,omitempty"`
	NoCorrect       bool    `json:"no_correct,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	ThemePath string   `json:"theme,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	PNGEngine string   `json:"png_engine,omitempty"`
	Title     string   `json:"title,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Theme  *styles.Theme `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Input is the word snapshot the wall was computed from.
	Input Input

	// Layout is the computed wall.
	Layout wall.Result

	// Corrected is the number of words moved back inside the canvas.
	Corrected int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount  int
	Exhausted  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style names a built-in theme.
func ValidateStyle(style string) error {
	_, err := styles.Get(style)
	return err
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = wall.DefaultMaxAttempts
	}
	if o.CollisionFactor == 0 {
		o.CollisionFactor = wall.DefaultCollisionFactor
	}
	if o.Measure == "" {
		o.Measure = MeasureFont
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if o.CollisionFactor < 0 || o.CollisionFactor > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"collision factor must be within (0, 1], got %g", o.CollisionFactor)
	}
	if o.MaxAttempts < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max attempts must be positive, got %d", o.MaxAttempts)
	}
	if o.Measure != MeasureFont && o.Measure != MeasureEstimate {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid measure: %q (must be one of: %s, %s)", o.Measure, MeasureFont, MeasureEstimate)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.PNGEngine == "" {
		o.PNGEngine = EngineNative
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Theme == nil && o.ThemePath == "" {
		if err := ValidateStyle(o.Style); err != nil {
			return err
		}
	}
	if o.PNGEngine != EngineNative && o.PNGEngine != EngineRSVG {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid png engine: %q (must be one of: %s, %s)", o.PNGEngine, EngineNative, EngineRSVG)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// ValidateAndSetDefaults checks and defaults the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		Seed:        o.Seed,
		MaxAttempts: o.MaxAttempts,
		Collision:   o.CollisionFactor,
		Measurer:    o.Measure,
		Correct:     !o.NoCorrect,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Style: o.Style, Theme: o.ThemePath}
	if o.Theme != nil {
		k.Style = o.Theme.Name
		if h, err := cache.HashJSON(o.Theme); err == nil {
			k.Theme = h
		}
	}
	if format == FormatPNG {
		k.Scale = o.Scale
		k.Engine = o.PNGEngine
	}
	return k
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatGraphviz {
		return ".gv.svg"
	}
	return "." + format
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraphviz:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

func (r Result) String() string {
	return fmt.Sprintf("%d words, %d exhausted, %d corrected", r.Stats.WordCount, r.Stats.Exhausted, r.Corrected)
}
