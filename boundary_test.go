package gridpath

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObstacles(t *testing.T) {
	coords, err := DecodeObstacles(3, 3, []int{1, 0, 1, 1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []Coord{{1, 0}, {1, 1}, {1, 2}}, coords)

	coords, err = DecodeObstacles(3, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, coords)

	_, err = DecodeObstacles(3, 3, []int{1, 0, 1})
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.Contains(t, err.Error(), "odd length")

	_, err = DecodeObstacles(3, 3, []int{3, 0})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = DecodeObstacles(3, 3, []int{0, -1})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestEncodePath(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 0, 1, 1}, EncodePath(Path{{0, 0}, {1, 0}, {1, 1}}))

	empty := EncodePath(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAStar(t *testing.T) {
	t.Run("open grid", func(t *testing.T) {
		out, err := AStar(5, 5, 0, 0, 4, 4, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 4, 1, 4, 2, 4, 3, 4, 4}, out)
	})

	t.Run("walled off", func(t *testing.T) {
		out, err := AStar(3, 3, 0, 0, 2, 0, []int{1, 0, 1, 1, 1, 2})
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("obstacle order does not matter", func(t *testing.T) {
		a, err := AStar(6, 4, 0, 0, 5, 3, []int{2, 0, 2, 1, 2, 2, 4, 3, 4, 2})
		require.NoError(t, err)
		b, err := AStar(6, 4, 0, 0, 5, 3, []int{4, 2, 2, 2, 4, 3, 2, 0, 2, 1, 2, 1})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("zero width", func(t *testing.T) {
		_, err := AStar(0, 3, 0, 0, 0, 1, nil)
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("obstacle at width", func(t *testing.T) {
		_, err := AStar(3, 3, 0, 0, 2, 2, []int{3, 0})
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("odd obstacle sequence", func(t *testing.T) {
		_, err := AStar(3, 3, 0, 0, 2, 2, []int{1})
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("grid above cell limit", func(t *testing.T) {
		_, err := AStar(1<<31, 1<<31, 0, 0, 1, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := AStar(3, 3, 1, 1, 1, 1, nil)
		assert.ErrorIs(t, err, ErrInvalidEndpoints)
	})

	t.Run("end on obstacle", func(t *testing.T) {
		_, err := AStar(3, 3, 0, 0, 2, 2, []int{2, 2})
		assert.ErrorIs(t, err, ErrInvalidEndpoints)
	})
}

func TestRequest_Key(t *testing.T) {
	base := Request{Cols: 4, Rows: 4, StartX: 0, StartY: 0, EndX: 3, EndY: 3, Obstacles: []int{1, 1, 2, 2}}
	key, err := base.Key()
	require.NoError(t, err)
	assert.Len(t, key, 64)

	shuffled := base
	shuffled.Obstacles = []int{2, 2, 1, 1, 2, 2}
	same, err := shuffled.Key()
	require.NoError(t, err)
	assert.Equal(t, key, same)

	moved := base
	moved.EndX = 2
	other, err := moved.Key()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	diagonal := base
	diagonal.Diagonal = true
	diagKey, err := diagonal.Key()
	require.NoError(t, err)
	assert.NotEqual(t, key, diagKey)

	bad := base
	bad.Obstacles = []int{1}
	_, err = bad.Key()
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestRequest_SolveDiagonalCost(t *testing.T) {
	r := Request{Cols: 3, Rows: 3, EndX: 2, EndY: 2, Diagonal: true, DiagonalCost: 1.5}
	out, err := r.Solve()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2}, out)

	r.DiagonalCost = 3
	_, err = r.Solve()
	assert.ErrorIs(t, err, ErrInvalidGrid)

	r.Diagonal = false
	out, err = r.Solve()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 0, 2, 0, 2, 1, 2, 2}, out)
	_, err = r.Key()
	assert.NoError(t, err)
}

func TestRequest_CellLimit(t *testing.T) {
	r := Request{Cols: 10, Rows: 10, EndX: 9}
	_, err := r.Solve(WithCellLimit(99))
	assert.ErrorIs(t, err, ErrInvalidGrid)

	out, err := r.Solve(WithCellLimit(100))
	require.NoError(t, err)
	assert.Len(t, out, 20)

	g, key, err := r.GridAndKey(WithMaxCells(100))
	require.NoError(t, err)
	assert.Equal(t, 10, g.Width())
	plain, err := r.Key()
	require.NoError(t, err)
	assert.Equal(t, plain, key)

	results := SolveBatch(context.Background(), []Request{r, {Cols: 1 << 31, Rows: 1 << 31, EndX: 1}}, WithCellLimit(100))
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrInvalidGrid)
}

func TestSolveBatch(t *testing.T) {
	requests := []Request{
		{Cols: 5, Rows: 5, EndX: 4, EndY: 4},
		{Cols: 3, Rows: 3, EndX: 2, Obstacles: []int{1, 0, 1, 1, 1, 2}},
		{Cols: 0, Rows: 3},
		{Cols: 3, Rows: 1, EndX: 2},
	}

	results := SolveBatch(context.Background(), requests, WithWorkers(3))
	require.Len(t, results, 4)

	assert.True(t, results[0].Found())
	assert.Len(t, results[0].Path, 18)

	assert.NoError(t, results[1].Err)
	assert.False(t, results[1].Found())
	assert.Empty(t, results[1].Path)

	assert.ErrorIs(t, results[2].Err, ErrInvalidGrid)

	assert.Equal(t, []int{0, 0, 1, 0, 2, 0}, results[3].Path)
}

func TestSolveBatch_Empty(t *testing.T) {
	assert.Empty(t, SolveBatch(context.Background(), nil))
}

func TestSolveBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := SolveBatch(ctx, []Request{{Cols: 5, Rows: 5, EndX: 4, EndY: 4}}, WithWorkers(1))
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrAborted)
}
