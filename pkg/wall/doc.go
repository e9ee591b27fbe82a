// Package wall computes word-cloud ("word wall") layouts.
//
// # Overview
//
// Given a snapshot of vocabulary words and a canvas, [Layout] picks a font
// size class, a rotation and a position for every word so that the words
// fill the canvas without overlapping. The computation runs in three stages:
//
//  1. Size model ([ComputeSizes]): derives a range of discrete size classes
//     (1..10) from the canvas area and the word count.
//  2. Importance ranking ([Rank]): orders words so that short and
//     unmastered words are placed first and get the larger sizes.
//  3. Placement ([Layout]): places words in rank order using a coarse grid to
//     spread them out, randomized candidate sampling, and axis-aligned
//     bounding box (AABB) rejection against already placed words.
//
// # Best-Effort Placement
//
// Each word has a fixed retry budget. When the budget is exhausted the word
// falls back to [FallbackSizeClass] with no rotation and gets a short second
// search. If that also fails, the last candidate is accepted even though it
// overlaps. A word is never dropped and exhaustion is never reported as an
// error; it is visible only through [Placement.Exhausted] and
// [Result.Exhausted].
//
// # Determinism
//
// All randomness comes from the injected source in [Options]. Two calls with
// the same words, canvas and seed return identical results.
//
// # Measurement
//
// Glyph footprints come from a [Measurer]. The default [Estimator] is a pure
// per-character width table, so layouts do not depend on any rendering
// surface. Renderers that know real font metrics can supply their own
// Measurer and run [Correct] over the result to pull any word whose real
// box crosses the canvas edge back inside.
package wall
