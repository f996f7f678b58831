// Package gridpath provides a deterministic A* shortest-path engine for
// rectangular grids with blocked cells.
//
// It exposes three layers:
//
//   - Search: the generic A* algorithm over any Graph, run to completion.
//   - Grid and FindPath: the grid model (bounds, walkability, neighbor order)
//     and a validated start/end search on top of Search.
//   - AStar, Request and SolveBatch: the flat-integer boundary used by the
//     grid editor front-end, where obstacles and paths travel as interleaved
//     x,y sequences.
//
// Every search owns its own frontier, score and came-from maps, so the package
// holds no state between calls and identical inputs always produce identical paths.
package gridpath
