package wall

import (
	"math"
	"math/rand/v2"
)

const (
	minGridSize    = 2
	maxGridSize    = 5
	centerDistCost = 0.5
)

// grid partitions the canvas into size×size cells and counts how many words
// were assigned to each.
type grid struct {
	size         int
	cellW, cellH float64
	counts       []int
}

func newGrid(count int, c Canvas) *grid {
	size := int(math.Round(math.Sqrt(float64(count) / 2)))
	size = max(minGridSize, min(size, maxGridSize))
	return &grid{
		size:   size,
		cellW:  c.Width / float64(size),
		cellH:  c.Height / float64(size),
		counts: make([]int, size*size),
	}
}

// bounds returns the rectangle of cell i as (x0, y0, x1, y1).
func (g *grid) bounds(i int) (float64, float64, float64, float64) {
	col, row := i%g.size, i/g.size
	x0, y0 := float64(col)*g.cellW, float64(row)*g.cellH
	return x0, y0, x0 + g.cellW, y0 + g.cellH
}

// centerDistance is the distance from cell i to the grid center in cell units.
func (g *grid) centerDistance(i int) float64 {
	mid := float64(g.size-1) / 2
	col, row := float64(i%g.size), float64(i/g.size)
	return math.Hypot(col-mid, row-mid)
}

// pickCentral returns the cell with the lowest occupancy plus a penalty for
// distance from the center. Ties go to the lowest index.
func (g *grid) pickCentral() int {
	best, bestScore := 0, math.Inf(1)
	for i, n := range g.counts {
		if score := float64(n) + centerDistCost*g.centerDistance(i); score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// pickEmptiest returns a least occupied cell, breaking ties with rng.
func (g *grid) pickEmptiest(rng *rand.Rand) int {
	lowest := math.MaxInt
	var ties []int
	for i, n := range g.counts {
		switch {
		case n < lowest:
			lowest = n
			ties = append(ties[:0], i)
		case n == lowest:
			ties = append(ties, i)
		}
	}
	return ties[rng.IntN(len(ties))]
}

func (g *grid) add(i int) { g.counts[i]++ }
