package pipeline

import (
	"context"
	"sync"

	"github.com/matzehuels/wordwall/pkg/render/sink"
	"github.com/matzehuels/wordwall/pkg/wall"
)

var (
	fontMeasurerOnce sync.Once
	fontMeasurer     wall.Measurer
)

// measurer returns the text measurer selected by opts. The font measurer
// falls back to the estimator if the embedded font cannot be parsed.
func measurer(opts Options) wall.Measurer {
	if opts.Measure == MeasureEstimate {
		return wall.Estimator{}
	}
	fontMeasurerOnce.Do(func() {
		m, err := sink.NewFontMeasurer()
		if err != nil {
			fontMeasurer = wall.Estimator{}
			return
		}
		fontMeasurer = m
	})
	return fontMeasurer
}

// ComputeLayout places the words and, unless disabled, corrects words that
// cross the canvas edge. It returns the number of corrected words.
func ComputeLayout(ctx context.Context, in Input, opts Options) (wall.Result, int, error) {
	if err := ctx.Err(); err != nil {
		return wall.Result{}, 0, err
	}
	m := measurer(opts)
	res, err := wall.Layout(in.Words, wall.Canvas{Width: opts.Width, Height: opts.Height}, &wall.Options{
		Seed:            opts.Seed,
		MaxAttempts:     opts.MaxAttempts,
		CollisionFactor: opts.CollisionFactor,
		Measurer:        m,
	})
	if err != nil {
		return wall.Result{}, 0, err
	}
	if opts.NoCorrect {
		return res, 0, nil
	}
	return res, wall.Correct(&res, in.Words, m), nil
}
