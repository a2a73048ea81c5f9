package simulation

import (
	"github.com/beka-birhanu/micromouse-api/maze"
)

// Pose is a cell position plus the direction faced there.
type Pose struct {
	Pos    maze.CellPosition
	Facing maze.Direction
}

// Snapshot is a consistent copy of everything a display layer needs to
// render the run: the wall grids, the visit and expansion orders, the final
// path with its replay cursor, the mouse pose, and the run statistics.
// Nothing in it aliases live state.
type Snapshot struct {
	Phase Phase
	Ticks int

	Width  int
	Height int
	Seed   int64
	Start  maze.CellPosition
	Goals  []maze.CellPosition

	// Maze is the true layout with the explored cells marked visited;
	// Discovered is the map the mouse built from sensing alone.
	Maze       *maze.GridMaze
	Discovered *maze.GridMaze

	Mouse   Pose
	Visited []maze.CellPosition
	Moves   int

	Expanded []maze.CellPosition
	Path     []maze.CellPosition
	Cost     int
	Cursor   int

	Distances [][]int
	Err       string
}

// Snapshot captures the current state of the run.
func (r *Run) Snapshot() Snapshot {
	r.RLock()
	defer r.RUnlock()

	snap := Snapshot{
		Phase:      r.phase,
		Ticks:      r.ticks,
		Width:      r.truth.Width,
		Height:     r.truth.Height,
		Seed:       r.truth.Seed,
		Start:      r.truth.Start,
		Goals:      append([]maze.CellPosition(nil), r.truth.Goals...),
		Maze:       r.overlayTruth(),
		Discovered: r.mouse.Discovered().Clone(),
		Mouse:      r.pose(),
		Visited:    r.mouse.Explored(),
		Moves:      r.mouse.Moves(),
		Cost:       -1,
		Distances:  r.truth.DistanceField(),
	}

	if r.search != nil {
		snap.Expanded = r.search.Expanded()
	}
	if r.result != nil && r.result.Found {
		snap.Path = append([]maze.CellPosition(nil), r.result.Path...)
		snap.Cost = r.result.Cost
	}
	if r.buffer != nil {
		snap.Cursor = r.buffer.Cursor()
	}
	if r.runErr != nil {
		snap.Err = r.runErr.Error()
	}
	return snap
}

// overlayTruth clones the true maze and marks the cells the mouse has
// visited, so rendering the clone shows exploration progress.
func (r *Run) overlayTruth() *maze.GridMaze {
	m := r.truth.Clone()
	for _, pos := range r.mouse.Explored() {
		m.At(pos).SetVisited(true)
	}
	return m
}

// pose locates the mouse: the live explorer while no path exists, the
// replay cursor afterward. During replay the facing follows the path.
func (r *Run) pose() Pose {
	if r.buffer == nil {
		return Pose{Pos: r.mouse.Pos(), Facing: r.mouse.Facing()}
	}

	path := r.result.Path
	cursor := r.buffer.Cursor()
	facing := r.mouse.Facing()
	switch {
	case cursor > 0:
		if d, ok := maze.DirectionBetween(path[cursor-1], path[cursor]); ok {
			facing = d
		}
	case len(path) > 1:
		if d, ok := maze.DirectionBetween(path[0], path[1]); ok {
			facing = d
		}
	}
	return Pose{Pos: r.buffer.Pos(), Facing: facing}
}
