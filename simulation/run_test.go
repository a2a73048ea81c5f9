package simulation

import (
	"fmt"
	"testing"

	"github.com/beka-birhanu/micromouse-api/maze"
	"github.com/beka-birhanu/micromouse-api/mouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runToEnd ticks until the run reaches a terminal phase, failing the test if
// it does not get there within a generous cell-count-derived cap.
func runToEnd(t *testing.T, r *Run) {
	t.Helper()

	snap := r.Snapshot()
	limit := 10*snap.Width*snap.Height + 20
	for i := 0; i < limit; i++ {
		if r.Finished() {
			return
		}
		require.NoError(t, r.Tick())
	}
	require.Fail(t, "run did not finish", "still %s after %d ticks", r.Phase(), limit)
}

func assertSameWalls(t *testing.T, want, got *maze.GridMaze) {
	t.Helper()

	for row := 0; row < want.Height; row++ {
		for col := 0; col < want.Width; col++ {
			w, g := want.Grid[row][col], got.Grid[row][col]
			assert.Equal(t, w.NorthWall, g.NorthWall, "north wall of (%d,%d)", row, col)
			assert.Equal(t, w.SouthWall, g.SouthWall, "south wall of (%d,%d)", row, col)
			assert.Equal(t, w.EastWall, g.EastWall, "east wall of (%d,%d)", row, col)
			assert.Equal(t, w.WestWall, g.WestWall, "west wall of (%d,%d)", row, col)
		}
	}
}

func TestNewRun(t *testing.T) {
	t.Run("Rejects invalid dimensions", func(t *testing.T) {
		_, err := NewRun(Config{Width: 0, Height: 4}, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("Rejects out-of-bound positions", func(t *testing.T) {
		_, err := NewRun(Config{Width: 2, Height: 2, Start: maze.CellPosition{Row: 5, Col: 0}}, nil)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)

		_, err = NewRun(Config{Width: 2, Height: 2, Goals: []maze.CellPosition{{Row: 9, Col: 9}}}, nil)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("Defaults to corner start and center goals", func(t *testing.T) {
		r, err := NewRun(Config{Width: 6, Height: 6, Seed: 1}, nil)
		require.NoError(t, err)

		snap := r.Snapshot()
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, snap.Start)
		assert.ElementsMatch(t, maze.CenterGoals(6, 6), snap.Goals)
		assert.Equal(t, Exploring, snap.Phase)
		assert.Equal(t, 0, snap.Ticks)
	})
}

func TestNewRunFromMaze(t *testing.T) {
	t.Run("Rejects a missing maze", func(t *testing.T) {
		_, err := NewRunFromMaze(nil, maze.North, nil)
		assert.ErrorIs(t, err, ErrMissingMaze)
	})

	t.Run("Rejects a maze without goals", func(t *testing.T) {
		m, err := maze.New(maze.Config{Width: 3, Height: 3, Seed: 1, Goals: []maze.CellPosition{{Row: 1, Col: 1}}})
		require.NoError(t, err)
		m.Goals = nil

		_, err = NewRunFromMaze(m, maze.North, nil)
		assert.ErrorIs(t, err, maze.ErrEmptyGoals)
	})
}

func TestPhasesAdvanceInOrder(t *testing.T) {
	r, err := NewRun(Config{Width: 8, Height: 8, Seed: 3}, nil)
	require.NoError(t, err)

	// Record each phase transition as it happens.
	seen := []Phase{r.Phase()}
	for !r.Finished() {
		require.NoError(t, r.Tick())
		if p := r.Phase(); p != seen[len(seen)-1] {
			seen = append(seen, p)
		}
		require.Less(t, r.Snapshot().Ticks, 10*8*8+20, "run is not terminating")
	}

	assert.Equal(t, []Phase{Exploring, Pathfinding, Replaying, Done}, seen)

	snap := r.Snapshot()
	assert.LessOrEqual(t, snap.Moves, 2*8*8, "exploration move budget")
	assert.Equal(t, "DONE", snap.Phase.String())
}

func TestSnapshotIsConsistentPerPhase(t *testing.T) {
	r, err := NewRun(Config{Width: 6, Height: 6, Seed: 11}, nil)
	require.NoError(t, err)

	for !r.Finished() {
		snap := r.Snapshot()

		switch snap.Phase {
		case Exploring:
			assert.Nil(t, snap.Path)
			assert.Equal(t, -1, snap.Cost)
			assert.True(t, snap.Maze.InBound(snap.Mouse.Pos.Row, snap.Mouse.Pos.Col))
			assert.NotEmpty(t, snap.Visited)
		case Pathfinding:
			// Planning starts only once the discovered map is complete.
			assertSameWalls(t, snap.Maze, snap.Discovered)
			assert.Equal(t, 6*6, len(snap.Visited))
		case Replaying:
			require.NotEmpty(t, snap.Path)
			assert.Equal(t, snap.Start, snap.Path[0])
			assert.Equal(t, len(snap.Path)-1, snap.Cost)
			assert.Equal(t, snap.Path[snap.Cursor], snap.Mouse.Pos)
		}

		require.NoError(t, r.Tick())
	}

	snap := r.Snapshot()
	require.Equal(t, Done, snap.Phase)
	assert.Equal(t, len(snap.Path)-1, snap.Cursor, "replay ends on the last cell")
	last := snap.Path[len(snap.Path)-1]
	assert.True(t, snap.Maze.IsGoal(last))
	assert.Equal(t, last, snap.Mouse.Pos)
	assert.Empty(t, snap.Err)

	// The distance field is the display heuristic: zero exactly on goals.
	for _, g := range snap.Goals {
		assert.Equal(t, 0, snap.Distances[g.Row][g.Col])
	}
}

func TestResetReplaysTheSameOutcome(t *testing.T) {
	r, err := NewRun(Config{Width: 10, Height: 10, Seed: 77}, nil)
	require.NoError(t, err)

	runToEnd(t, r)
	first := r.Snapshot()
	require.Equal(t, Done, first.Phase)

	require.NoError(t, r.Reset())
	snap := r.Snapshot()
	assert.Equal(t, Exploring, snap.Phase)
	assert.Equal(t, 0, snap.Ticks)
	assert.Nil(t, snap.Path)

	runToEnd(t, r)
	second := r.Snapshot()

	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Expanded, second.Expanded)
	assert.Equal(t, first.Visited, second.Visited)
	assert.Equal(t, first.Ticks, second.Ticks)
}

func TestEnclosedGoalEndsInNoPath(t *testing.T) {
	// No wall is ever opened: the goals cannot be reached, which must be a
	// normal outcome rather than an error.
	m, err := maze.NewSealed(maze.Config{
		Width:  4,
		Height: 4,
		Goals:  maze.CenterGoals(4, 4),
	})
	require.NoError(t, err)

	r, err := NewRunFromMaze(m, maze.North, nil)
	require.NoError(t, err)

	runToEnd(t, r)

	snap := r.Snapshot()
	assert.Equal(t, NoPath, snap.Phase)
	assert.Nil(t, snap.Path)
	assert.Equal(t, -1, snap.Cost)
	assert.Empty(t, snap.Err)
	assert.NoError(t, r.Err())

	// Terminal runs ignore further ticks.
	before := snap.Ticks
	require.NoError(t, r.Tick())
	assert.Equal(t, before, r.Snapshot().Ticks)
}

func TestCorruptedMazeFailsTheRun(t *testing.T) {
	m, err := maze.New(maze.Config{
		Width:  3,
		Height: 3,
		Seed:   5,
		Goals:  []maze.CellPosition{{Row: 2, Col: 2}},
	})
	require.NoError(t, err)

	r, err := NewRunFromMaze(m, maze.North, nil)
	require.NoError(t, err)

	// Breaking the boundary behind the run's back trips the sense
	// consistency check on the next exploration tick.
	r.truth.Grid[0][0].NorthWall = false

	var tickErr error
	for i := 0; i < 10*3*3 && !r.Finished(); i++ {
		if tickErr = r.Tick(); tickErr != nil {
			break
		}
	}

	require.ErrorIs(t, tickErr, mouse.ErrSenseConflict)
	snap := r.Snapshot()
	assert.Equal(t, Failed, snap.Phase)
	assert.Contains(t, snap.Err, "wall")
}

func TestScrubbingTheFinishedPath(t *testing.T) {
	r, err := NewRun(Config{Width: 5, Height: 5, Seed: 9}, nil)
	require.NoError(t, err)

	// No path exists yet, so scrubbing is refused.
	_, err = r.StepForward()
	assert.ErrorIs(t, err, ErrNotReplayable)
	_, err = r.StepBackward()
	assert.ErrorIs(t, err, ErrNotReplayable)

	runToEnd(t, r)
	require.Equal(t, Done, r.Phase())
	end := r.Snapshot().Cursor

	moved, err := r.StepForward()
	require.NoError(t, err)
	assert.False(t, moved, "cursor already on the last cell")

	moved, err = r.StepBackward()
	require.NoError(t, err)
	assert.True(t, moved)

	snap := r.Snapshot()
	assert.Equal(t, end-1, snap.Cursor)
	assert.Equal(t, Done, snap.Phase, "scrubbing does not reopen the run")
	assert.Equal(t, snap.Path[snap.Cursor], snap.Mouse.Pos)
}

func TestSnapshotDoesNotAliasLiveState(t *testing.T) {
	r, err := NewRun(Config{Width: 4, Height: 4, Seed: 2}, nil)
	require.NoError(t, err)
	runToEnd(t, r)

	snap := r.Snapshot()
	snap.Maze.Grid[0][0].NorthWall = false
	snap.Path[0] = maze.CellPosition{Row: 9, Col: 9}
	snap.Visited[0] = maze.CellPosition{Row: 9, Col: 9}

	fresh := r.Snapshot()
	assert.True(t, fresh.Maze.Grid[0][0].NorthWall)
	assert.Equal(t, fresh.Start, fresh.Path[0])
	assert.Equal(t, fresh.Start, fresh.Visited[0])
}

func TestRunsAreSeedDeterministic(t *testing.T) {
	for _, size := range []struct{ w, h int }{{4, 4}, {9, 7}} {
		t.Run(fmt.Sprintf("%dx%d", size.w, size.h), func(t *testing.T) {
			a, err := NewRun(Config{Width: size.w, Height: size.h, Seed: 42}, nil)
			require.NoError(t, err)
			b, err := NewRun(Config{Width: size.w, Height: size.h, Seed: 42}, nil)
			require.NoError(t, err)

			runToEnd(t, a)
			runToEnd(t, b)

			sa, sb := a.Snapshot(), b.Snapshot()
			assert.Equal(t, sa.Path, sb.Path)
			assert.Equal(t, sa.Cost, sb.Cost)
			assert.Equal(t, sa.Ticks, sb.Ticks)
			assertSameWalls(t, sa.Maze, sb.Maze)
		})
	}
}
