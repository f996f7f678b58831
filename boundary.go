package gridpath

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// DecodeObstacles turns a flat, interleaved x,y sequence into coordinates.
// An odd-length sequence or a pair outside [0,width)×[0,height) fails with
// ErrInvalidGrid.
func DecodeObstacles(width, height int, flat []int) ([]Coord, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: obstacle sequence has odd length %d", ErrInvalidGrid, len(flat))
	}
	out := make([]Coord, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		c := Coord{X: flat[i], Y: flat[i+1]}
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y >= height {
			return nil, fmt.Errorf("%w: obstacle %d at %s outside %dx%d", ErrInvalidGrid, i/2, c, width, height)
		}
		out = append(out, c)
	}
	return out, nil
}

// EncodePath flattens p into interleaved x,y pairs in traversal order.
// An empty path encodes as an empty, non-nil slice.
func EncodePath(p Path) []int {
	out := make([]int, 0, 2*len(p))
	for _, c := range p {
		out = append(out, c.X, c.Y)
	}
	return out
}

// Request is the grid editor's view of one search: dimensions, endpoints and
// the obstacle cells as a flat x,y sequence.
type Request struct {
	Cols         int     `json:"cols" yaml:"cols"`
	Rows         int     `json:"rows" yaml:"rows"`
	StartX       int     `json:"start_x" yaml:"start_x"`
	StartY       int     `json:"start_y" yaml:"start_y"`
	EndX         int     `json:"end_x" yaml:"end_x"`
	EndY         int     `json:"end_y" yaml:"end_y"`
	Obstacles    []int   `json:"obstacles" yaml:"obstacles"`
	Diagonal     bool    `json:"diagonal,omitempty" yaml:"diagonal,omitempty"`
	DiagonalCost float64 `json:"diagonal_cost,omitempty" yaml:"diagonal_cost,omitempty"`
}

// Start returns the start cell.
func (r Request) Start() Coord { return Coord{X: r.StartX, Y: r.StartY} }

// End returns the end cell.
func (r Request) End() Coord { return Coord{X: r.EndX, Y: r.EndY} }

// Grid decodes the request into a Grid, failing fast with ErrInvalidGrid.
// Extra options such as WithMaxCells are applied after the request's own.
func (r Request) Grid(options ...GridOption) (*Grid, error) {
	if r.Cols <= 0 || r.Rows <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidGrid, r.Cols, r.Rows)
	}
	obstacles, err := DecodeObstacles(r.Cols, r.Rows, r.Obstacles)
	if err != nil {
		return nil, err
	}
	gridOptions := []GridOption{WithDiagonal(r.Diagonal)}
	if r.Diagonal && r.DiagonalCost != 0 {
		gridOptions = append(gridOptions, WithDiagonalCost(r.DiagonalCost))
	}
	return NewGrid(r.Cols, r.Rows, obstacles, append(gridOptions, options...)...)
}

// Solve runs the search and returns the path as interleaved x,y pairs, or an
// empty slice when the end is unreachable.
func (r Request) Solve(options ...Option) ([]int, error) {
	g, err := r.Grid(WithMaxCells(applyOptions(options).MaxCells))
	if err != nil {
		return nil, err
	}
	path, _, err := FindPath(g, r.Start(), r.End(), options...)
	if err != nil {
		return nil, err
	}
	return EncodePath(path), nil
}

// Key returns a digest identifying the request's semantics: obstacle order
// and duplicates do not change it. The grid options are those given to Grid.
func (r Request) Key(options ...GridOption) (string, error) {
	_, key, err := r.GridAndKey(options...)
	return key, err
}

// GridAndKey builds the grid once and returns it together with Key.
func (r Request) GridAndKey(options ...GridOption) (*Grid, string, error) {
	g, err := r.Grid(options...)
	if err != nil {
		return nil, "", err
	}
	return g, r.keyFor(g), nil
}

func (r Request) keyFor(g *Grid) string {
	obstacles := g.Obstacles()

	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d|%d,%d|%d,%d|", r.Cols, r.Rows, r.StartX, r.StartY, r.EndX, r.EndY)
	if g.Diagonal() {
		cost := r.DiagonalCost
		if cost == 0 {
			cost = 1
		}
		b.WriteString("d" + strconv.FormatFloat(cost, 'g', -1, 64))
	}
	b.WriteByte('|')
	for _, c := range obstacles {
		b.WriteString(strconv.Itoa(c.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Y))
		b.WriteByte(';')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// AStar is the single-call boundary used by the grid editor: cols×rows grid,
// start and end cells, obstacles as interleaved x,y pairs. It returns the path
// as interleaved x,y pairs from start to end, or an empty slice if no path exists.
func AStar(cols, rows, startX, startY, endX, endY int, obstacles []int) ([]int, error) {
	return Request{
		Cols:      cols,
		Rows:      rows,
		StartX:    startX,
		StartY:    startY,
		EndX:      endX,
		EndY:      endY,
		Obstacles: obstacles,
	}.Solve()
}
