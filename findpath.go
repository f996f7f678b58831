package gridpath

import (
	"context"
	"fmt"
)

// Path is an ordered sequence of cells from start to end inclusive.
type Path []Coord

// Len returns the number of cells on the path.
func (p Path) Len() int { return len(p) }

// Steps returns the number of moves on the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// ValidateEndpoints checks that start and end are distinct walkable cells of g.
func ValidateEndpoints(g *Grid, start, end Coord) error {
	switch {
	case !g.InBounds(start):
		return fmt.Errorf("%w: start %s outside %dx%d", ErrInvalidEndpoints, start, g.width, g.height)
	case !g.InBounds(end):
		return fmt.Errorf("%w: end %s outside %dx%d", ErrInvalidEndpoints, end, g.width, g.height)
	case start == end:
		return fmt.Errorf("%w: start and end are both %s", ErrInvalidEndpoints, start)
	case !g.IsWalkable(start):
		return fmt.Errorf("%w: start %s is an obstacle", ErrInvalidEndpoints, start)
	case !g.IsWalkable(end):
		return fmt.Errorf("%w: end %s is an obstacle", ErrInvalidEndpoints, end)
	}
	return nil
}

// FindPath searches g for a cheapest path from start to end. The outcome is
// PathFound with a non-empty path, or Unreachable with a nil path. Invalid
// endpoints fail with ErrInvalidEndpoints before any search work.
func FindPath(g *Grid, start, end Coord, options ...Option) (Path, Outcome, error) {
	return FindPathContext(context.Background(), g, start, end, options...)
}

// FindPathContext is FindPath with cancellation; a cancelled search reports
// Aborted and an error wrapping ErrAborted.
func FindPathContext(ctx context.Context, g *Grid, start, end Coord, options ...Option) (Path, Outcome, error) {
	if g == nil {
		return nil, Unreachable, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if err := ValidateEndpoints(g, start, end); err != nil {
		return nil, Unreachable, err
	}

	result, err := Search[Coord](ctx, g, start, end, g.Heuristic, options...)
	if err != nil {
		return nil, result.Outcome, err
	}
	if !result.Found() {
		return nil, result.Outcome, nil
	}
	return Path(result.Path), result.Outcome, nil
}
