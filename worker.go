package gridpath

import (
	"context"
	"fmt"
	"sync"
)

// BatchResult is the outcome of one Request in a SolveBatch call.
type BatchResult struct {
	Path []int
	Err  error
}

// Found reports whether the request produced a non-empty path.
func (r BatchResult) Found() bool { return r.Err == nil && len(r.Path) > 0 }

// solveTask is a request handed from SolveBatch to a worker.
type solveTask struct {
	Index   int
	Request Request
}

// SolveBatch runs each request as an independent search on a pool of
// WithWorkers goroutines. Every search stays single-threaded; results are
// returned in input order. Requests not started before ctx is done report an
// error wrapping ErrAborted.
func SolveBatch(ctx context.Context, requests []Request, options ...Option) []BatchResult {
	searchOptions := applyOptions(options)
	results := make([]BatchResult, len(requests))
	if len(requests) == 0 {
		return results
	}

	workers := min(searchOptions.NumberOfWorkers, len(requests))
	taskChannel := make(chan solveTask)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChannel {
				results[task.Index] = solveOne(ctx, task.Request, options)
			}
		}()
	}

	sent := 0
dispatch:
	for ; sent < len(requests); sent++ {
		select {
		case <-ctx.Done():
			break dispatch
		case taskChannel <- solveTask{Index: sent, Request: requests[sent]}:
		}
	}
	close(taskChannel)
	wg.Wait()

	for i := sent; i < len(requests); i++ {
		results[i] = BatchResult{Err: abortedError(ctx)}
	}
	return results
}

func solveOne(ctx context.Context, request Request, options []Option) BatchResult {
	g, err := request.Grid(WithMaxCells(applyOptions(options).MaxCells))
	if err != nil {
		return BatchResult{Err: err}
	}
	path, _, err := FindPathContext(ctx, g, request.Start(), request.End(), options...)
	if err != nil {
		return BatchResult{Err: err}
	}
	return BatchResult{Path: EncodePath(path)}
}

func abortedError(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrAborted, context.Cause(ctx))
}
