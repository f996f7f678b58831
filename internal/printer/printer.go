package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pdrpinto/gridpath"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)

	pathCell     = color.New(color.FgGreen, color.Bold)
	obstacleCell = color.New(color.FgRed)
	endpointCell = color.New(color.FgCyan, color.Bold)
)

// Success prints a success message to w in green with a checkmark prefix
func Success(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Fprintf(w, "✓ %s", msg)
	} else {
		green.Fprint(w, msg)
	}
}

// Info prints an informational message to w in the default color
func Info(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format, a...)
}

// Warning prints a warning message to w in yellow with a warning prefix
func Warning(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Fprintf(w, "⚠️  %s", msg)
	} else {
		yellow.Fprint(w, msg)
	}
}

// Step prints a step message to w with emphasis
func Step(w io.Writer, format string, a ...any) {
	cyan.Fprintf(w, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a title, an explanation and suggestions to stderr and returns
// a plain error carrying the title for cobra.
func Error(title string, explanation string, suggestions []string) error {
	return writeError(os.Stderr, title, explanation, suggestions)
}

func writeError(w io.Writer, title string, explanation string, suggestions []string) error {
	red.Fprintf(w, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(w, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(w, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(w, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(w, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(w, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}

// RenderGrid draws g to w, one row per line: 'S' and 'E' for the endpoints,
// '#' for obstacles, '*' for path cells and '.' for free cells.
func RenderGrid(w io.Writer, g *gridpath.Grid, start, end gridpath.Coord, path gridpath.Path) {
	onPath := make(map[gridpath.Coord]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				fmt.Fprint(w, " ")
			}
			c := gridpath.Coord{X: x, Y: y}
			switch {
			case c == start:
				endpointCell.Fprint(w, "S")
			case c == end:
				endpointCell.Fprint(w, "E")
			case !g.IsWalkable(c):
				obstacleCell.Fprint(w, "#")
			case onPath[c]:
				pathCell.Fprint(w, "*")
			default:
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
}
