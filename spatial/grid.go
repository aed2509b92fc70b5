package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Positions is the read-only view of a particle population the grid indexes
type Positions interface {
	Len() int
	At(i int) r2.Vec
}

// Cell is an integer grid coordinate
type Cell struct {
	X, Y int
}

// pruneFactor bounds retained empty buckets relative to the population before they are dropped
const pruneFactor = 4

// Grid is a uniform spatial hash rebuilt from scratch every frame
// Bucket slices are truncated rather than freed so steady-state rebuilds do not allocate
type Grid struct {
	cellSize float64
	inv      float64

	buckets map[Cell][]int
	cells   []Cell // cell of particle i from the last Rebuild
}

// NewGrid creates a grid with square cells of cellSize, non-positive sizes fall back to 1
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		inv:      1 / cellSize,
		buckets:  make(map[Cell][]int),
	}
}

// CellSize returns the cell edge length
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// CellOf maps a position to its cell
func (g *Grid) CellOf(p r2.Vec) Cell {
	return Cell{X: int(math.Floor(p.X * g.inv)), Y: int(math.Floor(p.Y * g.inv))}
}

// Rebuild clears every bucket and re-inserts all positions
func (g *Grid) Rebuild(ps Positions) {
	n := ps.Len()
	for c, b := range g.buckets {
		g.buckets[c] = b[:0]
	}
	if len(g.buckets) > pruneFactor*max(n, 1) {
		clear(g.buckets)
	}

	if cap(g.cells) < n {
		g.cells = make([]Cell, n)
	}
	g.cells = g.cells[:n]

	for i := 0; i < n; i++ {
		c := g.CellOf(ps.At(i))
		g.cells[i] = c
		g.buckets[c] = append(g.buckets[c], i)
	}
}

// Bucket returns the indices in cell c from the last Rebuild, valid until the next Rebuild
func (g *Grid) Bucket(c Cell) []int {
	return g.buckets[c]
}

// Cell returns the cell of particle i from the last Rebuild
func (g *Grid) Cell(i int) Cell {
	return g.cells[i]
}

// Occupied returns the number of non-empty cells
func (g *Grid) Occupied() int {
	n := 0
	for _, b := range g.buckets {
		if len(b) > 0 {
			n++
		}
	}
	return n
}

// ScanPairs reports each unordered pair (i < j) closer than threshold exactly once
// Only the 3x3 block around each particle's cell is scanned, so the result matches
// an exhaustive scan whenever threshold <= CellSize
// ps must be the set passed to the last Rebuild
func (g *Grid) ScanPairs(ps Positions, threshold float64, fn func(i, j int, distSq float64)) {
	thresholdSq := threshold * threshold
	n := len(g.cells)
	for i := 0; i < n; i++ {
		a := ps.At(i)
		base := g.cells[i]
		for oy := -1; oy <= 1; oy++ {
			for ox := -1; ox <= 1; ox++ {
				bucket := g.buckets[Cell{X: base.X + ox, Y: base.Y + oy}]
				for _, j := range bucket {
					if j <= i {
						continue
					}
					distSq := r2.Norm2(r2.Sub(a, ps.At(j)))
					if distSq >= thresholdSq {
						continue
					}
					fn(i, j, distSq)
				}
			}
		}
	}
}
