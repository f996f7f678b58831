package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/printer"
	"github.com/pdrpinto/gridpath/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	batchWorkers       int
	batchMaxExpansions int
	batchOutputFormat  string
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Solve several scenario files concurrently",
	Long: `Solve several scenario files concurrently.

Each file is an independent search; up to --workers searches run at once.
Results are printed in argument order.

Output Formats:
  text  - one line per file
  jsonl - one JSON object per file`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of concurrent searches")
	batchCmd.Flags().IntVar(&batchMaxExpansions, "max-expansions", 0, "Abort a search after this many node expansions (0 = unlimited)")
	batchCmd.Flags().StringVarP(&batchOutputFormat, "output", "o", "text", "Output format: text or jsonl")

	rootCmd.AddCommand(batchCmd)
}

type batchLine struct {
	File  string `json:"file"`
	Path  []int  `json:"path"`
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchOutputFormat != "text" && batchOutputFormat != "jsonl" {
		return printer.Error("Invalid output format", fmt.Sprintf("Unknown format %q.", batchOutputFormat), []string{"Use --output text or --output jsonl"})
	}

	requests := make([]gridpath.Request, len(args))
	for i, file := range args {
		s, err := scenario.Load(file)
		if err != nil {
			return printer.Error("Cannot load scenario", err.Error(), []string{"Check the file path and YAML syntax"})
		}
		requests[i] = s.Request()
	}

	results := gridpath.SolveBatch(context.Background(), requests,
		gridpath.WithWorkers(batchWorkers),
		gridpath.WithMaxExpansions(batchMaxExpansions),
	)

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	failed := 0
	for i, res := range results {
		line := batchLine{File: args[i], Path: res.Path, Found: res.Found()}
		if res.Err != nil {
			failed++
			line.Error = res.Err.Error()
			line.Path = []int{}
		}

		if batchOutputFormat == "jsonl" {
			if err := enc.Encode(line); err != nil {
				return err
			}
			continue
		}
		switch {
		case line.Error != "":
			printer.Info(out, "%s: error: %s\n", line.File, line.Error)
		case line.Found:
			printer.Success(out, "%s: %d steps\n", line.File, len(line.Path)/2-1)
		default:
			printer.Warning(out, "%s: unreachable\n", line.File)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}
