// Package pkg provides the core libraries for wordwall.
//
// # Overview
//
// Wordwall arranges a vocabulary list as a word cloud. Words that still need
// practice are drawn large and near the center; mastered words shrink and
// fade. The pkg directory is organized as:
//
//  1. [wall] - the layout engine (size model, ranking, placement, correction)
//  2. [vocab] - the word store and its storage backends
//  3. [io] - JSON, YAML and text import/export
//  4. [pipeline] - orchestration (words → layout → render) with caching
//  5. [render] - SVG, PNG, PDF, JSON and Graphviz output
//  6. [cache], [translate], [server], [observability], [errors], [buildinfo]
//
// # Data flow
//
//	vocab.Store
//	     ↓  vocab.Snapshot
//	wall.Layout + wall.Correct
//	     ↓
//	render/sink (SVG, PNG, JSON, DOT) → render (PDF via rsvg-convert)
//
// # Quick Start
//
//	words := []wall.Word{{Text: "Hello"}, {Text: "World", Mastered: true}}
//	res, err := wall.Layout(words, wall.Canvas{Width: 800, Height: 600}, nil)
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(res, words)
//
// [wall]: github.com/matzehuels/wordwall/pkg/wall
// [vocab]: github.com/matzehuels/wordwall/pkg/vocab
// [io]: github.com/matzehuels/wordwall/pkg/io
// [pipeline]: github.com/matzehuels/wordwall/pkg/pipeline
// [render]: github.com/matzehuels/wordwall/pkg/render
// [cache]: github.com/matzehuels/wordwall/pkg/cache
// [translate]: github.com/matzehuels/wordwall/pkg/translate
// [server]: github.com/matzehuels/wordwall/pkg/server
// [observability]: github.com/matzehuels/wordwall/pkg/observability
// [errors]: github.com/matzehuels/wordwall/pkg/errors
// [buildinfo]: github.com/matzehuels/wordwall/pkg/buildinfo
package pkg
