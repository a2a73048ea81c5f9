package pathfinder

import (
	"fmt"
	"testing"

	"github.com/beka-birhanu/micromouse-api/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openGrid builds a maze with every internal wall removed, leaving only the
// boundary.
func openGrid(t *testing.T, width, height int, goals []maze.CellPosition) *maze.GridMaze {
	t.Helper()

	m, err := maze.NewSealed(maze.Config{
		Width:  width,
		Height: height,
		Start:  maze.CellPosition{Row: 0, Col: 0},
		Goals:  goals,
	})
	require.NoError(t, err)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pos := maze.CellPosition{Row: row, Col: col}
			if col+1 < width {
				require.NoError(t, m.OpenWall(pos, maze.East))
			}
			if row+1 < height {
				require.NoError(t, m.OpenWall(pos, maze.South))
			}
		}
	}
	return m
}

// bfsDistance returns the true shortest distance from start to any goal, or
// -1 when unreachable.
func bfsDistance(m *maze.GridMaze, start maze.CellPosition, goals []maze.CellPosition) int {
	isGoal := make(map[maze.CellPosition]bool, len(goals))
	for _, g := range goals {
		isGoal[g] = true
	}

	dist := map[maze.CellPosition]int{start: 0}
	queue := []maze.CellPosition{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if isGoal[current] {
			return dist[current]
		}
		for _, d := range maze.Directions() {
			if !m.CanStep(current, d) {
				continue
			}
			next := current.Step(d)
			if _, seen := dist[next]; !seen {
				dist[next] = dist[current] + 1
				queue = append(queue, next)
			}
		}
	}
	return -1
}

func generated(t *testing.T, width, height int, seed int64) *maze.GridMaze {
	t.Helper()

	m, err := maze.New(maze.Config{
		Width:  width,
		Height: height,
		Seed:   seed,
		Start:  maze.CellPosition{Row: 0, Col: 0},
		Goals:  maze.CenterGoals(width, height),
	})
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	goal := []maze.CellPosition{{Row: 1, Col: 1}}

	t.Run("Rejects a missing maze", func(t *testing.T) {
		_, err := New(nil, maze.CellPosition{}, goal, nil)
		assert.ErrorIs(t, err, ErrMissingMaze)
	})

	t.Run("Rejects an empty goal set", func(t *testing.T) {
		m := openGrid(t, 2, 2, goal)
		_, err := New(m, maze.CellPosition{}, nil, nil)
		assert.ErrorIs(t, err, maze.ErrEmptyGoals)
	})

	t.Run("Rejects out-of-bound positions", func(t *testing.T) {
		m := openGrid(t, 2, 2, goal)

		_, err := New(m, maze.CellPosition{Row: 5, Col: 0}, goal, nil)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)

		_, err = New(m, maze.CellPosition{}, []maze.CellPosition{{Row: 0, Col: 9}}, nil)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})
}

func TestOpenGridScenario(t *testing.T) {
	// Boundary-only 4x4, start (0,0), goal (3,3): six steps, seven cells,
	// and a fully pinned expansion sequence from the h- and
	// insertion-order tie-breaks.
	start := maze.CellPosition{Row: 0, Col: 0}
	goal := maze.CellPosition{Row: 3, Col: 3}
	m := openGrid(t, 4, 4, []maze.CellPosition{goal})

	assert.Equal(t, 6, maze.Manhattan(start, goal))

	search, err := New(m, start, []maze.CellPosition{goal}, nil)
	require.NoError(t, err)
	result := search.Run()

	require.True(t, result.Found)
	assert.Equal(t, 6, result.Cost)
	assert.Len(t, result.Path, 7)
	assert.Equal(t, []maze.CellPosition{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
		{Row: 1, Col: 3}, {Row: 2, Col: 3}, {Row: 3, Col: 3},
	}, result.Path)
	assert.Equal(t, []maze.CellPosition{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
		{Row: 1, Col: 3}, {Row: 2, Col: 3},
	}, result.Expanded, "goal pop is not an expansion")
}

func TestMultiGoalTakesTheNearest(t *testing.T) {
	goals := []maze.CellPosition{{Row: 0, Col: 3}, {Row: 3, Col: 0}}
	m := openGrid(t, 4, 4, goals)

	search, err := New(m, maze.CellPosition{Row: 0, Col: 0}, goals, nil)
	require.NoError(t, err)
	result := search.Run()

	require.True(t, result.Found)
	assert.Equal(t, 3, result.Cost)
	assert.Equal(t, maze.CellPosition{Row: 0, Col: 3}, result.Path[len(result.Path)-1])
}

func TestStartOnGoal(t *testing.T) {
	start := maze.CellPosition{Row: 0, Col: 0}
	m := openGrid(t, 3, 3, []maze.CellPosition{start})

	search, err := New(m, start, []maze.CellPosition{start}, nil)
	require.NoError(t, err)
	result := search.Run()

	require.True(t, result.Found)
	assert.Equal(t, 0, result.Cost)
	assert.Equal(t, []maze.CellPosition{start}, result.Path)
	assert.Empty(t, result.Expanded)
}

func TestEnclosedGoalIsNotFound(t *testing.T) {
	// Nothing is carved: the goal cell cannot be entered from anywhere.
	m, err := maze.NewSealed(maze.Config{
		Width:  2,
		Height: 2,
		Start:  maze.CellPosition{Row: 0, Col: 0},
		Goals:  []maze.CellPosition{{Row: 1, Col: 1}},
	})
	require.NoError(t, err)

	search, err := New(m, m.Start, m.Goals, nil)
	require.NoError(t, err)
	result := search.Run()

	assert.False(t, result.Found)
	assert.Nil(t, result.Path)
	assert.Equal(t, -1, result.Cost)
	assert.Equal(t, []maze.CellPosition{{Row: 0, Col: 0}}, result.Expanded)
}

func TestMatchesBreadthFirstSearch(t *testing.T) {
	t.Run("Perfect mazes", func(t *testing.T) {
		for _, seed := range []int64{1, 2, 3, 99} {
			t.Run(fmt.Sprintf("Seed %d", seed), func(t *testing.T) {
				m := generated(t, 16, 16, seed)

				search, err := New(m, m.Start, m.Goals, nil)
				require.NoError(t, err)
				result := search.Run()

				require.True(t, result.Found)
				assert.Equal(t, bfsDistance(m, m.Start, m.Goals), result.Cost)
				assert.Len(t, result.Path, result.Cost+1)
			})
		}
	})

	t.Run("Mazes with loops", func(t *testing.T) {
		// Extra openings create multiple routes and stale open-set
		// entries; optimality must hold regardless.
		m := generated(t, 8, 8, 5)
		for col := 0; col+1 < m.Width; col++ {
			require.NoError(t, m.OpenWall(maze.CellPosition{Row: 1, Col: col}, maze.East))
			require.NoError(t, m.OpenWall(maze.CellPosition{Row: 6, Col: col}, maze.East))
		}

		search, err := New(m, m.Start, m.Goals, nil)
		require.NoError(t, err)
		result := search.Run()

		require.True(t, result.Found)
		assert.Equal(t, bfsDistance(m, m.Start, m.Goals), result.Cost)
	})
}

func TestPathIsWalkable(t *testing.T) {
	m := generated(t, 16, 16, 7)

	search, err := New(m, m.Start, m.Goals, nil)
	require.NoError(t, err)
	result := search.Run()
	require.True(t, result.Found)

	assert.Equal(t, m.Start, result.Path[0])
	assert.True(t, m.IsGoal(result.Path[len(result.Path)-1]))
	for k := 0; k+1 < len(result.Path); k++ {
		dir, ok := maze.DirectionBetween(result.Path[k], result.Path[k+1])
		require.True(t, ok, "cells %d and %d are not adjacent", k, k+1)
		assert.True(t, m.CanStep(result.Path[k], dir), "wall between path cells %d and %d", k, k+1)
	}
}

func TestDeterminism(t *testing.T) {
	first := generated(t, 16, 16, 1234)
	second := generated(t, 16, 16, 1234)

	s1, err := New(first, first.Start, first.Goals, nil)
	require.NoError(t, err)
	s2, err := New(second, second.Start, second.Goals, nil)
	require.NoError(t, err)

	r1 := s1.Run()
	r2 := s2.Run()

	assert.Equal(t, r1.Path, r2.Path)
	assert.Equal(t, r1.Expanded, r2.Expanded)
	assert.Equal(t, r1.Cost, r2.Cost)
}

func TestStepIsResumable(t *testing.T) {
	goal := maze.CellPosition{Row: 3, Col: 3}
	m := openGrid(t, 4, 4, []maze.CellPosition{goal})

	search, err := New(m, maze.CellPosition{Row: 0, Col: 0}, []maze.CellPosition{goal}, nil)
	require.NoError(t, err)

	// Three single steps expand exactly the pinned prefix.
	for i := 0; i < 3; i++ {
		require.False(t, search.Done())
		require.Nil(t, search.Result())
		search.Step()
	}
	assert.Equal(t, []maze.CellPosition{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, search.Expanded())

	result := search.Run()
	require.True(t, result.Found)
	assert.Equal(t, 6, result.Cost)

	// Stepping a finished search changes nothing.
	search.Step()
	assert.Equal(t, result, search.Result())
}
