/*
Package mouse implements the exploring micromouse: a depth-first
wall-following agent that maps an unknown maze through local sensing alone.

The mouse starts on the maze's start cell with a blank, fully walled map of
its own. Each step it senses the walls around its pose, records them on its
map, and advances into the first open unvisited neighbor in front, left,
right order. When every open side is already visited it walks back along the
trail it came by. Exploration ends back on the start cell once nothing
unvisited remains, at which point the discovered map matches the true maze
wall for wall.
*/
package mouse

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/micromouse-api/i"
	"github.com/beka-birhanu/micromouse-api/maze"
	"github.com/beka-birhanu/micromouse-api/sensor"
)

var (
	ErrMissingMaze        = errors.New("mouse needs a maze to explore")
	ErrBudgetExceeded     = errors.New("exploration exceeded its move budget")
	ErrIncompleteCoverage = errors.New("exploration finished with unvisited reachable cells")
	ErrSenseConflict      = errors.New("sensor reading contradicts the grid boundary")
	ErrBrokenTrail        = errors.New("backtrack trail is not contiguous")
)

// State tells what the mouse will do on its next step.
type State uint8

const (
	Exploring State = iota
	Backtracking
	Done
)

var stateNames = [...]string{
	Exploring:    "EXPLORING",
	Backtracking: "BACKTRACKING",
	Done:         "DONE",
}

// String returns the name of the state.
func (s State) String() string {
	if int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Allow up to a full in-place rotation before giving up on the start cell.
const maxStartTurns = 3

// Mouse is the exploration agent. It reads the true maze exclusively
// through the sensor and keeps every conclusion on its own discovered map,
// so the truth is never mutated.
type Mouse struct {
	truth  *maze.GridMaze // sensed, never written
	known  *maze.GridMaze // discovered walls and visited marks
	pos    maze.CellPosition
	facing maze.Direction
	state  State

	// trail holds the cells from the start to the current position along
	// the route actually traveled. It is never empty before Done.
	trail      []maze.CellPosition
	order      []maze.CellPosition // cells in first-visit order
	moves      int
	budget     int
	startTurns int
	logger     i.Logger
}

// New places a mouse on the maze's start cell with the given facing. The
// discovered map starts fully walled; only sensing opens it up. A nil
// logger disables the per-step decision log.
func New(truth *maze.GridMaze, facing maze.Direction, logger i.Logger) (*Mouse, error) {
	if truth == nil {
		return nil, ErrMissingMaze
	}
	if logger == nil {
		logger = i.NopLogger{}
	}

	known, err := maze.NewSealed(maze.Config{
		Width:  truth.Width,
		Height: truth.Height,
		Start:  truth.Start,
		Goals:  truth.Goals,
	})
	if err != nil {
		return nil, err
	}

	m := &Mouse{
		truth:  truth,
		known:  known,
		pos:    truth.Start,
		facing: facing,
		state:  Exploring,
		trail:  []maze.CellPosition{truth.Start},
		budget: 2 * truth.Width * truth.Height,
		logger: logger,
	}
	m.markVisited(truth.Start)
	return m, nil
}

// Step advances exploration by one unit of work: a forward move, a backward
// move, or an in-place probe turn on the start cell. Calling Step after
// Done is a no-op. A non-nil error means an invariant broke; the mouse
// freezes and must not be stepped further.
func (m *Mouse) Step() error {
	if m.state == Done {
		return nil
	}

	reading := sensor.Sense(m.truth, m.pos, m.facing)
	if err := m.recordReading(reading); err != nil {
		m.state = Done
		return err
	}

	decision := Decide(reading, m.visitedAt, m.pos, m.facing)
	m.logger.Debug(fmt.Sprintf("at (%d,%d) facing %s: %s", m.pos.Row, m.pos.Col, m.facing, decision))

	if decision != NoMove {
		return m.advance(decision.Apply(m.facing))
	}

	if len(m.trail) == 1 {
		// Nothing visited yet means the start pose may simply face a
		// wall; probe the remaining sides before concluding.
		if len(m.order) == 1 && m.startTurns < maxStartTurns {
			m.startTurns++
			m.facing = m.facing.TurnRight()
			return nil
		}
		return m.finish()
	}
	return m.retreat()
}

// Run steps the mouse until exploration is done or an invariant breaks.
func (m *Mouse) Run() error {
	for m.state != Done {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// advance moves one cell in the given absolute direction, marking and
// recording the new cell.
func (m *Mouse) advance(dir maze.Direction) error {
	m.facing = dir
	m.pos = m.pos.Step(dir)
	m.markVisited(m.pos)
	m.trail = append(m.trail, m.pos)
	m.state = Exploring
	return m.countMove()
}

// retreat pops the trail and walks back one cell toward the start.
func (m *Mouse) retreat() error {
	prev := pop(&m.trail)
	back := m.trail[len(m.trail)-1]

	dir, ok := maze.DirectionBetween(prev, back)
	if !ok {
		m.state = Done
		return fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrBrokenTrail, prev.Row, prev.Col, back.Row, back.Col)
	}

	m.facing = dir
	m.pos = back
	m.state = Backtracking
	m.logger.Debug(fmt.Sprintf("backtracking to (%d,%d)", back.Row, back.Col))
	return m.countMove()
}

// countMove charges one move against the budget. Breaching the budget means
// the walk revisited edges it should not have, which is an invariant bug,
// not a big maze.
func (m *Mouse) countMove() error {
	m.moves++
	if m.moves > m.budget {
		m.state = Done
		return fmt.Errorf("%w: %d moves on a %dx%d maze", ErrBudgetExceeded, m.moves, m.truth.Width, m.truth.Height)
	}
	return nil
}

// finish freezes the mouse and checks what the walk promised: every cell
// reachable on the discovered map was visited exactly once. Goals the walk
// never reached are only warned about; the pathfinder reports those as its
// own no-path outcome.
func (m *Mouse) finish() error {
	m.state = Done

	if err := m.known.Validate(); err != nil {
		return err
	}
	if reachable := m.reachableOnKnown(); reachable != len(m.order) {
		return fmt.Errorf("%w: visited %d of %d", ErrIncompleteCoverage, len(m.order), reachable)
	}
	for _, g := range m.truth.Goals {
		if !m.visitedAt(g) {
			m.logger.Warning(fmt.Sprintf("goal (%d,%d) was unreachable during exploration", g.Row, g.Col))
		}
	}

	m.logger.Info(fmt.Sprintf("exploration done: %d cells in %d moves", len(m.order), m.moves))
	return nil
}

// recordReading writes the three sensed walls onto the discovered map, both
// sides at once. An open reading pointing off the grid is a corrupt maze.
func (m *Mouse) recordReading(r sensor.Reading) error {
	sides := []struct {
		dir     maze.Direction
		blocked bool
	}{
		{m.facing, r.Front},
		{m.facing.TurnLeft(), r.Left},
		{m.facing.TurnRight(), r.Right},
	}

	for _, side := range sides {
		to := m.pos.Step(side.dir)
		if !m.known.InBound(to.Row, to.Col) {
			if !side.blocked {
				return fmt.Errorf("%w: open %s wall at (%d,%d)", ErrSenseConflict, side.dir, m.pos.Row, m.pos.Col)
			}
			continue
		}

		var err error
		if side.blocked {
			err = m.known.CloseWall(m.pos, side.dir)
		} else {
			err = m.known.OpenWall(m.pos, side.dir)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// visitedAt reports whether the cell was already visited. Positions off the
// grid count as visited so they are never move candidates.
func (m *Mouse) visitedAt(pos maze.CellPosition) bool {
	cell := m.known.At(pos)
	return cell == nil || cell.IsVisited()
}

func (m *Mouse) markVisited(pos maze.CellPosition) {
	m.known.At(pos).SetVisited(true)
	m.order = append(m.order, pos)
}

// reachableOnKnown counts cells reachable from the start over the open
// walls of the discovered map.
func (m *Mouse) reachableOnKnown() int {
	seen := map[maze.CellPosition]bool{m.known.Start: true}
	queue := []maze.CellPosition{m.known.Start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range maze.Directions() {
			if !m.known.CanStep(current, d) {
				continue
			}
			next := current.Step(d)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]maze.CellPosition) maze.CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// Pos returns the mouse's current cell.
func (m *Mouse) Pos() maze.CellPosition {
	return m.pos
}

// Facing returns the direction the mouse currently faces.
func (m *Mouse) Facing() maze.Direction {
	return m.facing
}

// State returns what the mouse will do next.
func (m *Mouse) State() State {
	return m.state
}

// Done reports whether exploration has terminated.
func (m *Mouse) Done() bool {
	return m.state == Done
}

// Moves returns how many cell moves the mouse has made.
func (m *Mouse) Moves() int {
	return m.moves
}

// VisitCount returns how many distinct cells have been visited.
func (m *Mouse) VisitCount() int {
	return len(m.order)
}

// Explored returns the visited cells in first-visit order.
func (m *Mouse) Explored() []maze.CellPosition {
	return append([]maze.CellPosition(nil), m.order...)
}

// Discovered returns the mouse's own map. Callers own reads only; after
// Done it matches the true maze wall for wall.
func (m *Mouse) Discovered() *maze.GridMaze {
	return m.known
}
