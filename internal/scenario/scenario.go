// Package scenario loads grid descriptions from YAML files.
//
// A scenario lists dimensions, endpoints and obstacles explicitly, or draws
// the grid as ASCII rows where '#' is an obstacle, 'S' the start, 'E' the end
// and '.' a free cell. Both forms may be combined.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdrpinto/gridpath"
	"gopkg.in/yaml.v3"
)

// Scenario is one grid description.
type Scenario struct {
	Name         string   `yaml:"name,omitempty"`
	Width        int      `yaml:"width,omitempty"`
	Height       int      `yaml:"height,omitempty"`
	Start        []int    `yaml:"start,omitempty"`
	End          []int    `yaml:"end,omitempty"`
	Diagonal     bool     `yaml:"diagonal,omitempty"`
	DiagonalCost float64  `yaml:"diagonal_cost,omitempty"`
	Obstacles    [][]int  `yaml:"obstacles,omitempty"`
	Rows         []string `yaml:"rows,omitempty"`

	start, end gridpath.Coord
	obstacles  []gridpath.Coord
}

// Load reads and parses a scenario file. The file name becomes the scenario
// name when the file does not set one.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes and normalises a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

func pair(field string, v []int) (gridpath.Coord, error) {
	if len(v) != 2 {
		return gridpath.Coord{}, fmt.Errorf("%s must be [x, y], got %v", field, v)
	}
	return gridpath.Coord{X: v[0], Y: v[1]}, nil
}

func (s *Scenario) normalize() error {
	var fromRows struct {
		start, end    *gridpath.Coord
		obstacles     []gridpath.Coord
		width, height int
	}

	if len(s.Rows) > 0 {
		fromRows.height = len(s.Rows)
		fromRows.width = len(s.Rows[0])
		for y, row := range s.Rows {
			if len(row) != fromRows.width {
				return fmt.Errorf("row %d has %d cells, expected %d", y, len(row), fromRows.width)
			}
			for x, cell := range row {
				c := gridpath.Coord{X: x, Y: y}
				switch cell {
				case '.', ' ':
				case '#':
					fromRows.obstacles = append(fromRows.obstacles, c)
				case 'S':
					if fromRows.start != nil {
						return fmt.Errorf("rows contain more than one 'S'")
					}
					fromRows.start = &c
				case 'E':
					if fromRows.end != nil {
						return fmt.Errorf("rows contain more than one 'E'")
					}
					fromRows.end = &c
				default:
					return fmt.Errorf("row %d: unknown cell %q at column %d", y, cell, x)
				}
			}
		}
		if s.Width != 0 && s.Width != fromRows.width {
			return fmt.Errorf("width %d disagrees with rows (%d columns)", s.Width, fromRows.width)
		}
		if s.Height != 0 && s.Height != fromRows.height {
			return fmt.Errorf("height %d disagrees with rows (%d rows)", s.Height, fromRows.height)
		}
		s.Width, s.Height = fromRows.width, fromRows.height
	}

	var err error
	switch {
	case s.Start != nil:
		if s.start, err = pair("start", s.Start); err != nil {
			return err
		}
		if fromRows.start != nil && *fromRows.start != s.start {
			return fmt.Errorf("start %s disagrees with 'S' at %s", s.start, *fromRows.start)
		}
	case fromRows.start != nil:
		s.start = *fromRows.start
	default:
		return fmt.Errorf("start is required")
	}

	switch {
	case s.End != nil:
		if s.end, err = pair("end", s.End); err != nil {
			return err
		}
		if fromRows.end != nil && *fromRows.end != s.end {
			return fmt.Errorf("end %s disagrees with 'E' at %s", s.end, *fromRows.end)
		}
	case fromRows.end != nil:
		s.end = *fromRows.end
	default:
		return fmt.Errorf("end is required")
	}

	s.obstacles = fromRows.obstacles
	for i, o := range s.Obstacles {
		c, err := pair(fmt.Sprintf("obstacles[%d]", i), o)
		if err != nil {
			return err
		}
		s.obstacles = append(s.obstacles, c)
	}
	return nil
}

// StartCoord returns the start cell.
func (s *Scenario) StartCoord() gridpath.Coord { return s.start }

// EndCoord returns the end cell.
func (s *Scenario) EndCoord() gridpath.Coord { return s.end }

// Request converts the scenario to the flat boundary form.
func (s *Scenario) Request() gridpath.Request {
	flat := make([]int, 0, 2*len(s.obstacles))
	for _, c := range s.obstacles {
		flat = append(flat, c.X, c.Y)
	}
	return gridpath.Request{
		Cols:         s.Width,
		Rows:         s.Height,
		StartX:       s.start.X,
		StartY:       s.start.Y,
		EndX:         s.end.X,
		EndY:         s.end.Y,
		Obstacles:    flat,
		Diagonal:     s.Diagonal,
		DiagonalCost: s.DiagonalCost,
	}
}

// demoObstacles is the 10x10 map of the grid editor demo,
// as interleaved x,y pairs.
var demoObstacles = []int{
	7, 2, 8, 2, 5, 3, 6, 3, 7, 3, 8, 3, 4, 4, 5, 4, 6, 4, 5, 5, 3, 6, 4, 6,
	5, 6, 1, 7, 2, 7, 3, 7, 4, 7, 5, 7, 0, 8, 1, 8, 2, 8, 3, 8, 0, 9, 1, 9,
}

// Demo returns the demo map with the start in the top-left corner and the end
// in the bottom-right corner.
func Demo() *Scenario {
	s := &Scenario{Name: "demo", Width: 10, Height: 10, Start: []int{0, 0}, End: []int{9, 9}}
	for i := 0; i < len(demoObstacles); i += 2 {
		s.Obstacles = append(s.Obstacles, []int{demoObstacles[i], demoObstacles[i+1]})
	}
	if err := s.normalize(); err != nil {
		panic(err)
	}
	return s
}

// String draws the scenario as ASCII rows.
func (s *Scenario) String() string {
	blocked := make(map[gridpath.Coord]bool, len(s.obstacles))
	for _, o := range s.obstacles {
		blocked[o] = true
	}
	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := gridpath.Coord{X: x, Y: y}
			switch {
			case c == s.start:
				b.WriteByte('S')
			case c == s.end:
				b.WriteByte('E')
			case blocked[c]:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
