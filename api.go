package gridpath

import (
	"container/heap"
	"context"
	"fmt"
	"runtime"

	"github.com/pdrpinto/gridpath/internal"
)

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	// Neighbors must return nodes in a fixed order; ties in the frontier are
	// resolved by that order, which keeps search output reproducible.
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// Outcome is the terminal state of a search.
type Outcome int

const (
	// Unreachable means the frontier emptied without reaching the goal.
	Unreachable Outcome = iota
	// PathFound means the goal was popped from the frontier.
	PathFound
	// Aborted means the search was stopped before a terminal outcome.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case PathFound:
		return "path found"
	case Unreachable:
		return "unreachable"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result contains the outcome of a search
type Result[NodeType comparable] struct {
	Outcome       Outcome
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
}

// Found reports whether the search produced a path.
func (r Result[NodeType]) Found() bool { return r.Outcome == PathFound }

// Options defines parameters for the search.
type Options struct {
	// MaxExpansions caps node expansions per search. Zero means no cap.
	MaxExpansions int
	// NumberOfWorkers bounds how many searches SolveBatch runs at once.
	NumberOfWorkers int
	// MaxCells caps the grids Request builds. Zero means DefaultMaxCells.
	MaxCells int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxExpansions stops a search with ErrAborted once it has expanded n nodes.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithWorkers specifies how many worker goroutines SolveBatch uses.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithCellLimit rejects request grids larger than n cells with ErrInvalidGrid.
func WithCellLimit(n int) Option {
	return func(options *Options) { options.MaxCells = n }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Search runs A* from startNode until goalNode is popped from the frontier or
// the frontier is empty. Unreachable is reported through Result.Outcome with a
// nil error; only Aborted returns an error, wrapping ErrAborted.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)

	// --- Initialize state ---
	var sequence uint64
	openSet := make(PriorityQueue[NodeType], 0)
	heap.Init(&openSet)

	startItem := &PriorityQueueItem[NodeType]{
		Node:     startNode,
		GScore:   0.0,
		FCost:    heuristic(startNode, goalNode),
		Sequence: sequence,
	}
	heap.Push(&openSet, startItem)

	cameFrom := make(map[NodeType]NodeType)
	pathCostFromStart := map[NodeType]float64{startNode: 0.0}
	closedSet := make(map[NodeType]bool)
	openSetMap := map[NodeType]*PriorityQueueItem[NodeType]{startNode: startItem}

	expandedNodes := 0
	for openSet.Len() > 0 {
		if err := contextObject.Err(); err != nil {
			return Result[NodeType]{Outcome: Aborted, ExpandedNodes: expandedNodes},
				fmt.Errorf("%w: %w", ErrAborted, err)
		}

		currentItem := heap.Pop(&openSet).(*PriorityQueueItem[NodeType])
		currentNode := currentItem.Node
		delete(openSetMap, currentNode)

		if closedSet[currentNode] {
			continue
		}

		if currentNode == goalNode {
			return Result[NodeType]{
				Outcome:       PathFound,
				Path:          internal.ReconstructPath(cameFrom, currentNode, startNode, int(currentItem.GScore)+1),
				TotalCost:     currentItem.GScore,
				ExpandedNodes: expandedNodes,
			}, nil
		}

		if searchOptions.MaxExpansions > 0 && expandedNodes >= searchOptions.MaxExpansions {
			return Result[NodeType]{Outcome: Aborted, ExpandedNodes: expandedNodes},
				fmt.Errorf("%w: expansion limit %d reached", ErrAborted, searchOptions.MaxExpansions)
		}
		closedSet[currentNode] = true
		expandedNodes++

		for _, neighbor := range graph.Neighbors(currentNode) {
			if closedSet[neighbor.ID] {
				continue
			}
			tentativeG := currentItem.GScore + neighbor.Cost
			if currentG, exists := pathCostFromStart[neighbor.ID]; exists && tentativeG >= currentG {
				continue
			}

			pathCostFromStart[neighbor.ID] = tentativeG
			cameFrom[neighbor.ID] = currentNode
			sequence++
			fCost := tentativeG + heuristic(neighbor.ID, goalNode)

			if item, inOpen := openSetMap[neighbor.ID]; inOpen {
				item.GScore = tentativeG
				item.FCost = fCost
				item.Sequence = sequence
				heap.Fix(&openSet, item.IndexInQueue)
				continue
			}
			item := &PriorityQueueItem[NodeType]{
				Node:     neighbor.ID,
				GScore:   tentativeG,
				FCost:    fCost,
				Sequence: sequence,
			}
			heap.Push(&openSet, item)
			openSetMap[neighbor.ID] = item
		}
	}

	return Result[NodeType]{Outcome: Unreachable, ExpandedNodes: expandedNodes}, nil
}
