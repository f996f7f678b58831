package internal

import "slices"

// ReconstructPath walks cameFrom back from current to start and returns the
// nodes in start-to-current order. sizeHint preallocates the result and is
// clamped to len(cameFrom)+1; the walk stops early if a predecessor is missing.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
	sizeHint int,
) []NodeType {
	path := make([]NodeType, 0, min(max(sizeHint, 1), len(cameFrom)+1))
	for node, ok := current, true; ok; node, ok = cameFrom[node] {
		path = append(path, node)
		if node == start {
			break
		}
	}
	slices.Reverse(path)
	return path
}
