package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	cameFrom := map[string]string{"b": "a", "c": "b", "d": "c"}

	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath(cameFrom, "d", "a", 4))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath(cameFrom, "d", "a", 0))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath(cameFrom, "d", "a", 1<<40))
	assert.Equal(t, []string{"a"}, ReconstructPath(cameFrom, "a", "a", 1))
}

func TestReconstructPath_MissingPredecessor(t *testing.T) {
	cameFrom := map[int]int{3: 2}
	assert.Equal(t, []int{2, 3}, ReconstructPath(cameFrom, 3, 0, 4))
}
