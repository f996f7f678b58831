package gridpath

import (
	"fmt"
	"math"
)

// Coord is a cell position. X indexes columns and Y indexes rows.
type Coord struct {
	X, Y int
}

// String provides a string representation of Coord
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Move order: up, right, down, left, then the diagonals clockwise from up-right.
var directions = [8]Coord{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// DefaultMaxCells bounds width×height when no WithMaxCells option is given.
const DefaultMaxCells = 1 << 24

// gridOptions holds the movement model and the size limit.
type gridOptions struct {
	diagonal     bool
	diagonalCost float64
	maxCells     int
}

// GridOption configures the movement model of a Grid.
type GridOption func(*gridOptions)

// WithDiagonal enables 8-directional movement.
func WithDiagonal(enabled bool) GridOption {
	return func(o *gridOptions) { o.diagonal = enabled }
}

// WithDiagonalCost sets the cost of a diagonal move, in [1, 2].
// Use math.Sqrt2 for Euclidean step lengths.
func WithDiagonalCost(cost float64) GridOption {
	return func(o *gridOptions) { o.diagonalCost = cost }
}

// WithMaxCells caps width×height. Larger grids fail with ErrInvalidGrid
// before any memory is reserved. n <= 0 keeps DefaultMaxCells.
func WithMaxCells(n int) GridOption {
	return func(o *gridOptions) {
		if n > 0 {
			o.maxCells = n
		}
	}
}

// Grid is a width×height lattice with blocked cells. It is read-only after
// construction and safe to share between concurrent searches.
type Grid struct {
	width, height int
	blocked       []bool
	opts          gridOptions
}

// NewGrid builds a grid. Every obstacle must lie inside [0,width)×[0,height);
// duplicate obstacles are allowed and collapse into one blocked cell. Grids
// larger than the cell limit are rejected before anything is allocated.
func NewGrid(width, height int, obstacles []Coord, options ...GridOption) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidGrid, width, height)
	}

	opts := gridOptions{diagonalCost: 1, maxCells: DefaultMaxCells}
	for _, option := range options {
		option(&opts)
	}
	if width > opts.maxCells/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds the limit of %d cells", ErrInvalidGrid, width, height, opts.maxCells)
	}
	if math.IsNaN(opts.diagonalCost) || opts.diagonalCost < 1 || opts.diagonalCost > 2 {
		return nil, fmt.Errorf("%w: diagonal cost %v outside [1, 2]", ErrInvalidGrid, opts.diagonalCost)
	}

	g := &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		opts:    opts,
	}
	for i, obstacle := range obstacles {
		if !g.InBounds(obstacle) {
			return nil, fmt.Errorf("%w: obstacle %d at %s outside %dx%d", ErrInvalidGrid, i, obstacle, width, height)
		}
		g.blocked[g.index(obstacle)] = true
	}
	return g, nil
}

func (g *Grid) index(c Coord) int { return c.Y*g.width + c.X }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Diagonal reports whether diagonal moves are allowed.
func (g *Grid) Diagonal() bool { return g.opts.diagonal }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsWalkable reports whether c is in bounds and not blocked.
func (g *Grid) IsWalkable(c Coord) bool {
	return g.InBounds(c) && !g.blocked[g.index(c)]
}

// Obstacles returns the blocked cells in row-major order.
func (g *Grid) Obstacles() []Coord {
	var out []Coord
	for i, b := range g.blocked {
		if b {
			out = append(out, Coord{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// Neighbors returns the walkable cells reachable from c in one move, in the
// fixed order up, right, down, left, then up-right, down-right, down-left, up-left.
func (g *Grid) Neighbors(c Coord) []Neighbor[Coord] {
	n := 4
	if g.opts.diagonal {
		n = 8
	}
	out := make([]Neighbor[Coord], 0, n)
	for i, d := range directions[:n] {
		next := Coord{X: c.X + d.X, Y: c.Y + d.Y}
		if !g.IsWalkable(next) {
			continue
		}
		cost := 1.0
		if i >= 4 {
			cost = g.opts.diagonalCost
		}
		out = append(out, Neighbor[Coord]{ID: next, Cost: cost})
	}
	return out
}

// Heuristic estimates the remaining cost from a to b under the grid's movement
// model: Manhattan distance for 4-way movement, octile distance for 8-way.
// Both never overestimate and are consistent.
func (g *Grid) Heuristic(a, b Coord) float64 {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if !g.opts.diagonal {
		return float64(dx + dy)
	}
	return float64(dx+dy) + (g.opts.diagonalCost-2)*float64(min(dx, dy))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
