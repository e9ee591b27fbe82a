package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordwall/pkg/cache"
	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"graphviz", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"light", false},
		{"dark", false},
		{"", false},
		{"handdrawn", true},
	}
	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v", opts.Width, opts.Height)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d", opts.Seed)
	}
	if opts.Measure != MeasureFont {
		t.Errorf("Measure = %q", opts.Measure)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Style != DefaultStyle || opts.Scale != DefaultScale || opts.PNGEngine != EngineNative {
		t.Errorf("render defaults = %+v", opts)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1, Height: 10}, errors.ErrCodeInvalidGeometry},
		{"collision", Options{CollisionFactor: 1.5}, errors.ErrCodeInvalidInput},
		{"measure", Options{Measure: "ruler"}, errors.ErrCodeInvalidInput},
		{"attempts", Options{MaxAttempts: -3}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	ok := Options{}
	if err := ok.ValidateForLayout(); err != nil {
		t.Errorf("zero options should validate: %v", err)
	}
}

func TestValidateForRender(t *testing.T) {
	bad := Options{PNGEngine: "cairo"}
	if err := bad.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("engine: %v", err)
	}
	bad = Options{Style: "neon"}
	if err := bad.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("style: %v", err)
	}
	th := styles.Dark()
	custom := Options{Style: "neon", Theme: &th}
	if err := custom.ValidateForRender(); err != nil {
		t.Errorf("explicit theme should skip style check: %v", err)
	}
}

func TestKeyOpts(t *testing.T) {
	a := Options{Seed: 1}
	b := Options{Seed: 2}
	a.SetLayoutDefaults()
	b.SetLayoutDefaults()
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("seed should change the layout key")
	}

	o := Options{Scale: 2, PNGEngine: EngineNative, Style: "light"}
	if o.ArtifactKeyOpts(FormatSVG).Scale != 0 {
		t.Error("scale only applies to png")
	}
	if o.ArtifactKeyOpts(FormatPNG).Engine != EngineNative {
		t.Error("engine should be part of the png key")
	}

	th := styles.Dark()
	o.Theme = &th
	if k := o.ArtifactKeyOpts(FormatSVG); k.Style != "dark" || k.Theme == "" {
		t.Errorf("theme key = %+v", k)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	if Extension(FormatPNG) != ".png" || Extension(FormatGraphviz) != ".gv.svg" {
		t.Error("unexpected extensions")
	}
	if ContentType(FormatSVG) != "image/svg+xml" || ContentType("x") != "application/octet-stream" {
		t.Error("unexpected content types")
	}
}

func TestNewInput(t *testing.T) {
	words := []vocab.Word{
		{Text: "Hello", Translation: "你好"},
		{Text: "World", Translation: "世界", Mastered: true},
	}
	in := NewInput(words)
	if len(in.Words) != 2 || in.Words[1].Text != "World" || !in.Words[1].Mastered {
		t.Errorf("Words = %+v", in.Words)
	}
	if in.Translations[0] != "你好" {
		t.Errorf("Translations = %v", in.Translations)
	}

	words[1].Mastered = false
	if NewInput(words).Hash == in.Hash {
		t.Error("mastered state should change the hash")
	}

	words[1].Mastered = true
	words[0].Translation = "hallo"
	other := NewInput(words)
	if other.Hash != in.Hash {
		t.Error("translations do not affect the layout hash")
	}
	if other.contentHash() == in.contentHash() {
		t.Error("translations affect the content hash")
	}
}

func TestComputeLayout(t *testing.T) {
	in := NewInput(vocab.ExampleWords())
	opts := Options{Width: 600, Height: 400}
	opts.SetLayoutDefaults()

	res, _, err := ComputeLayout(context.Background(), in, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Placements) != len(in.Words) {
		t.Fatalf("placements = %d", len(res.Placements))
	}
	for i, b := range res.Boxes {
		if !opts.NoCorrect && !b.Within(res.Canvas) && b.W <= res.Canvas.Width && b.H <= res.Canvas.Height {
			t.Errorf("word %d not corrected into the canvas: %+v", i, b)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ComputeLayout(ctx, in, opts); err != context.Canceled {
		t.Errorf("canceled ctx: %v", err)
	}
}

func TestComputeLayoutDeterministic(t *testing.T) {
	in := NewInput(vocab.ExampleWords())
	opts := Options{Measure: MeasureEstimate}
	opts.SetLayoutDefaults()

	a, _, err := ComputeLayout(context.Background(), in, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _, _ := ComputeLayout(context.Background(), in, opts)
	for i := range a.Placements {
		if a.Placements[i] != b.Placements[i] {
			t.Fatalf("placement %d differs between runs", i)
		}
	}
}

// countingCache wraps a cache and counts writes.
type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func newTestRunner(t *testing.T) (*Runner, *countingCache, *bytes.Buffer) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cc := &countingCache{Cache: fc}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewRunner(cc, nil, logger), cc, &buf
}

func TestRunnerExecuteCaches(t *testing.T) {
	r, cc, logs := newTestRunner(t)
	ctx := context.Background()
	words := vocab.ExampleWords()
	opts := Options{Width: 800, Height: 600, Formats: []string{FormatSVG, FormatJSON, FormatDOT}}

	first, err := r.Execute(ctx, words, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(logs.String(), "computed layout") {
		t.Error("runner logger should be used when opts has none")
	}

	second, err := r.Execute(ctx, words, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}
	sets := cc.sets

	opts.Refresh = true
	third, err := r.Execute(ctx, words, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
	if cc.sets <= sets {
		t.Error("refresh should rewrite the cache")
	}
}

func TestRunnerMasteredChangeMissesLayout(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx := context.Background()
	words := vocab.ExampleWords()

	if _, err := r.Execute(ctx, words, Options{}); err != nil {
		t.Fatal(err)
	}
	words[0].Mastered = true
	res, err := r.Execute(ctx, words, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("mastering a word changes the ranking, so the layout must be recomputed")
	}
}

func TestRunnerExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), nil, Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestRunnerEmptyWords(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), nil, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Words []json.RawMessage `json:"words"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Words) != 0 {
		t.Errorf("words = %d", len(out.Words))
	}
}

func TestRenderFromLayoutMismatch(t *testing.T) {
	in := NewInput(vocab.ExampleWords())
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	res, _, err := ComputeLayout(context.Background(), in, opts)
	if err != nil {
		t.Fatal(err)
	}
	in.Words = in.Words[:2]
	if _, err := RenderFromLayout(context.Background(), res, in, opts); err == nil {
		t.Error("mismatched snapshot should fail")
	}
}

func TestResolveTheme(t *testing.T) {
	th, err := ResolveTheme(Options{Style: "dark"})
	if err != nil || th.Name != "dark" {
		t.Errorf("style: %v %v", th.Name, err)
	}
	custom := styles.Light()
	custom.Name = "mine"
	th, err = ResolveTheme(Options{Style: "dark", Theme: &custom})
	if err != nil || th.Name != "mine" {
		t.Errorf("explicit theme should win: %v %v", th.Name, err)
	}
	if _, err := ResolveTheme(Options{ThemePath: "/nonexistent/theme.toml"}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing theme file: %v", err)
	}
}
