package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/printer"
	"github.com/pdrpinto/gridpath/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	solveFile          string
	solveDemo          bool
	solveCols          int
	solveRows          int
	solveStart         []int
	solveEnd           []int
	solveObstacles     []int
	solveDiagonal      bool
	solveDiagonalCost  float64
	solveMaxExpansions int
	solveOutputFormat  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find a shortest path on one grid",
	Long: `Find a shortest path between start and end on one grid.

The grid comes from a scenario file (--file), the built-in demo map (--demo),
or from flags. Obstacles given by flag are a flat list of x,y pairs.

Output Formats:
  text - the grid drawn with S, E, # (obstacle) and * (path)
  json - {"path": [x0,y0,x1,y1,...], "found": bool, "steps": n}

Examples:
  # 5x5 open grid, corner to corner
  gridpath solve --cols 5 --rows 5 --start 0,0 --end 4,4

  # Wall down column 1
  gridpath solve --cols 3 --rows 3 --start 0,0 --end 2,0 --obstacles 1,0,1,1,1,2

  # Scenario file with diagonal moves
  gridpath solve --file maze.yaml --diagonal --output json`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Scenario YAML file")
	solveCmd.Flags().BoolVar(&solveDemo, "demo", false, "Use the built-in 10x10 demo map")
	solveCmd.Flags().IntVar(&solveCols, "cols", 0, "Grid width")
	solveCmd.Flags().IntVar(&solveRows, "rows", 0, "Grid height")
	solveCmd.Flags().IntSliceVar(&solveStart, "start", nil, "Start cell as x,y")
	solveCmd.Flags().IntSliceVar(&solveEnd, "end", nil, "End cell as x,y")
	solveCmd.Flags().IntSliceVar(&solveObstacles, "obstacles", nil, "Obstacle cells as x,y,x,y,...")
	solveCmd.Flags().BoolVar(&solveDiagonal, "diagonal", false, "Allow diagonal moves")
	solveCmd.Flags().Float64Var(&solveDiagonalCost, "diagonal-cost", 1, "Cost of a diagonal move, between 1 and 2")
	solveCmd.Flags().IntVar(&solveMaxExpansions, "max-expansions", 0, "Abort after this many node expansions (0 = unlimited)")
	solveCmd.Flags().StringVarP(&solveOutputFormat, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(solveCmd)
}

// solveResult is the JSON output of solve.
type solveResult struct {
	Path  []int `json:"path"`
	Found bool  `json:"found"`
	Steps int   `json:"steps"`
}

func solveRequest(cmd *cobra.Command) (gridpath.Request, error) {
	var req gridpath.Request

	switch {
	case solveFile != "" && solveDemo:
		return req, printer.Error("Conflicting inputs", "--file and --demo cannot be used together.", nil)
	case solveFile != "":
		s, err := scenario.Load(solveFile)
		if err != nil {
			return req, printer.Error("Cannot load scenario", err.Error(), []string{"Check the file path and YAML syntax"})
		}
		req = s.Request()
	case solveDemo:
		req = scenario.Demo().Request()
	default:
		if len(solveStart) != 2 || len(solveEnd) != 2 {
			return req, printer.Error(
				"No grid given",
				"solve needs a scenario file, the demo map, or --cols, --rows, --start and --end.",
				[]string{"Pass --file scenario.yaml", "Pass --demo", "Pass --cols 5 --rows 5 --start 0,0 --end 4,4"},
			)
		}
		req = gridpath.Request{
			Cols:      solveCols,
			Rows:      solveRows,
			StartX:    solveStart[0],
			StartY:    solveStart[1],
			EndX:      solveEnd[0],
			EndY:      solveEnd[1],
			Obstacles: solveObstacles,
		}
	}

	if cmd.Flags().Changed("diagonal") {
		req.Diagonal = solveDiagonal
	}
	if cmd.Flags().Changed("diagonal-cost") {
		req.DiagonalCost = solveDiagonalCost
	}
	return req, nil
}

// searchError prints a formatted explanation of a search failure.
func searchError(err error) error {
	switch {
	case errors.Is(err, gridpath.ErrInvalidGrid):
		return printer.Error("Invalid grid", err.Error(), []string{
			"Width and height must be positive",
			"Obstacles must be x,y pairs inside the grid",
		})
	case errors.Is(err, gridpath.ErrInvalidEndpoints):
		return printer.Error("Invalid endpoints", err.Error(), []string{
			"Start and end must be different free cells inside the grid",
		})
	case errors.Is(err, gridpath.ErrAborted):
		return printer.Error("Search aborted", err.Error(), []string{"Raise or remove --max-expansions"})
	default:
		return printer.Error("Search failed", err.Error(), nil)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	if solveOutputFormat != "text" && solveOutputFormat != "json" {
		return printer.Error("Invalid output format", fmt.Sprintf("Unknown format %q.", solveOutputFormat), []string{"Use --output text or --output json"})
	}

	req, err := solveRequest(cmd)
	if err != nil {
		return err
	}

	g, err := req.Grid()
	if err != nil {
		return searchError(err)
	}
	path, outcome, err := gridpath.FindPath(g, req.Start(), req.End(), gridpath.WithMaxExpansions(solveMaxExpansions))
	if err != nil {
		return searchError(err)
	}

	out := cmd.OutOrStdout()
	if solveOutputFormat == "json" {
		enc := json.NewEncoder(out)
		return enc.Encode(solveResult{
			Path:  gridpath.EncodePath(path),
			Found: outcome == gridpath.PathFound,
			Steps: path.Steps(),
		})
	}

	printer.RenderGrid(out, g, req.Start(), req.End(), path)
	fmt.Fprintln(out)
	if outcome == gridpath.PathFound {
		printer.Success(out, "Path found: %d steps from %s to %s\n", path.Steps(), req.Start(), req.End())
	} else {
		printer.Warning(out, "No path from %s to %s\n", req.Start(), req.End())
	}
	return nil
}
