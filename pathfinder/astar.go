/*
Package pathfinder computes optimal routes over a known maze with A*.

The search expands cells in order of f = g + h, where g counts unit steps
from the start and h is the minimum Manhattan distance to any goal cell.
Walls gate the edges, every step costs one, and the heuristic never
overestimates, so the first goal popped closes an optimal route. Ties on f
fall back to smaller h and then to insertion order, which makes the
expansion sequence fully reproducible.

An unreachable goal set is a normal outcome, not an error: the search
drains its open set and reports a result without a path.
*/
package pathfinder

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/beka-birhanu/micromouse-api/i"
	"github.com/beka-birhanu/micromouse-api/maze"
)

var ErrMissingMaze = errors.New("pathfinder needs a map to search")

// Result is the outcome of one search. Path runs from the start to the
// reached goal inclusive; it is nil and Cost is -1 when no route exists.
// Expanded lists the cells in expansion order, goal excluded, for
// visualization.
type Result struct {
	Found    bool
	Path     []maze.CellPosition
	Cost     int
	Expanded []maze.CellPosition
}

// AStar is a resumable best-first search over a known maze. Each Step pops
// and expands at most one open-set entry, so an external driver can
// interleave search work with anything else.
type AStar struct {
	m     *maze.GridMaze
	start maze.CellPosition
	goals []maze.CellPosition

	open     openQueue
	gScore   map[maze.CellPosition]int
	cameFrom map[maze.CellPosition]maze.CellPosition
	expanded []maze.CellPosition
	seq      int
	result   *Result
	logger   i.Logger
}

// New prepares a search over the known map from start toward the nearest
// reachable goal. The map is read-only to the search. A nil logger
// disables the per-expansion log.
func New(m *maze.GridMaze, start maze.CellPosition, goals []maze.CellPosition, logger i.Logger) (*AStar, error) {
	if m == nil {
		return nil, ErrMissingMaze
	}
	if len(goals) == 0 {
		return nil, maze.ErrEmptyGoals
	}
	if !m.InBound(start.Row, start.Col) {
		return nil, fmt.Errorf("%w: start (%d,%d)", maze.ErrOutOfBounds, start.Row, start.Col)
	}
	for _, g := range goals {
		if !m.InBound(g.Row, g.Col) {
			return nil, fmt.Errorf("%w: goal (%d,%d)", maze.ErrOutOfBounds, g.Row, g.Col)
		}
	}
	if logger == nil {
		logger = i.NopLogger{}
	}

	a := &AStar{
		m:        m,
		start:    start,
		goals:    append([]maze.CellPosition(nil), goals...),
		gScore:   map[maze.CellPosition]int{start: 0},
		cameFrom: map[maze.CellPosition]maze.CellPosition{start: start},
		logger:   logger,
	}
	heap.Init(&a.open)
	heap.Push(&a.open, &node{pos: start, g: 0, h: a.h(start)})
	return a, nil
}

// Step performs one unit of search work: pop the best open entry and either
// close the route, skip it as stale, or expand its neighbors. Calling Step
// after the search finished is a no-op.
func (a *AStar) Step() {
	if a.result != nil {
		return
	}

	if a.open.Len() == 0 {
		a.result = &Result{Found: false, Cost: -1, Expanded: a.Expanded()}
		a.logger.Info(fmt.Sprintf("open set exhausted after %d expansions: no path", len(a.expanded)))
		return
	}

	current := heap.Pop(&a.open).(*node)

	// A cheaper route to this cell was queued after this entry.
	if best, ok := a.gScore[current.pos]; ok && current.g > best {
		return
	}

	if a.isGoal(current.pos) {
		a.result = &Result{
			Found:    true,
			Path:     a.reconstruct(current.pos),
			Cost:     current.g,
			Expanded: a.Expanded(),
		}
		a.logger.Info(fmt.Sprintf("reached goal (%d,%d) at cost %d after %d expansions",
			current.pos.Row, current.pos.Col, current.g, len(a.expanded)))
		return
	}

	a.expanded = append(a.expanded, current.pos)
	a.logger.Debug(fmt.Sprintf("expanding (%d,%d) g=%d h=%d", current.pos.Row, current.pos.Col, current.g, current.h))

	for _, d := range maze.Directions() {
		if !a.m.CanStep(current.pos, d) {
			continue
		}
		next := current.pos.Step(d)
		tentative := current.g + 1
		if old, seen := a.gScore[next]; seen && tentative >= old {
			continue
		}
		a.gScore[next] = tentative
		a.cameFrom[next] = current.pos
		a.seq++
		heap.Push(&a.open, &node{pos: next, g: tentative, h: a.h(next), seq: a.seq})
	}
}

// Run steps the search to completion and returns its result.
func (a *AStar) Run() *Result {
	for a.result == nil {
		a.Step()
	}
	return a.result
}

// Done reports whether the search has finished, either way.
func (a *AStar) Done() bool {
	return a.result != nil
}

// Result returns the outcome, or nil while the search is still running.
func (a *AStar) Result() *Result {
	return a.result
}

// Expanded returns the cells expanded so far, in order.
func (a *AStar) Expanded() []maze.CellPosition {
	return append([]maze.CellPosition(nil), a.expanded...)
}

// h is the minimum Manhattan distance from the position to any goal.
func (a *AStar) h(pos maze.CellPosition) int {
	best := -1
	for _, g := range a.goals {
		if d := maze.Manhattan(pos, g); best < 0 || d < best {
			best = d
		}
	}
	return best
}

func (a *AStar) isGoal(pos maze.CellPosition) bool {
	for _, g := range a.goals {
		if g == pos {
			return true
		}
	}
	return false
}

// reconstruct walks the back-pointers from the reached goal to the start
// and returns the route in walking order.
func (a *AStar) reconstruct(goal maze.CellPosition) []maze.CellPosition {
	path := []maze.CellPosition{goal}
	for current := goal; current != a.start; {
		current = a.cameFrom[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
