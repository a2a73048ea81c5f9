/*
Package simulation drives one full micromouse run: a mouse explores the
maze, a search plans the shortest route on what the mouse discovered, and a
replay walks that route back to the goal.

The phases advance strictly in order, EXPLORING to PATHFINDING to REPLAYING
to DONE, one unit of work per Tick. Planning starts only after exploration
has finished, so the search always sees the complete discovered map. A maze
whose goals cannot be reached ends in NO_PATH, which is a normal outcome; a
broken invariant ends in FAILED.
*/
package simulation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/micromouse-api/i"
	"github.com/beka-birhanu/micromouse-api/maze"
	"github.com/beka-birhanu/micromouse-api/mouse"
	"github.com/beka-birhanu/micromouse-api/pathfinder"
	"github.com/beka-birhanu/micromouse-api/replay"
)

var (
	ErrMissingMaze   = errors.New("simulation needs a maze to run")
	ErrNotReplayable = errors.New("run has no path to scrub yet")
)

// Phase is the stage a run is currently in. Done, NoPath and Failed are
// terminal.
type Phase uint8

const (
	Exploring Phase = iota
	Pathfinding
	Replaying
	Done
	NoPath
	Failed
)

var phaseNames = [...]string{
	Exploring:   "EXPLORING",
	Pathfinding: "PATHFINDING",
	Replaying:   "REPLAYING",
	Done:        "DONE",
	NoPath:      "NO_PATH",
	Failed:      "FAILED",
}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) >= len(phaseNames) {
		return "UNKNOWN"
	}
	return phaseNames[p]
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == Done || p == NoPath || p == Failed
}

// Config carries everything needed to set up a run. The zero value of Start
// is the top-left corner and the zero value of Facing is North; nil Goals
// selects the center block.
type Config struct {
	Width  int
	Height int
	// Seed drives maze generation; a value <= 0 derives one from the
	// clock. The built run remembers the derived seed, so Reset always
	// replays the same maze.
	Seed   int64
	Start  maze.CellPosition
	Goals  []maze.CellPosition
	Facing maze.Direction
}

// Run owns the true maze and the actors working on it: the exploring mouse,
// the shortest-path search, and the replay of the found route. All methods
// are safe for concurrent use.
type Run struct {
	truth  *maze.GridMaze // never mutated after construction
	facing maze.Direction // initial facing, kept for Reset

	mouse  *mouse.Mouse
	search *pathfinder.AStar
	result *pathfinder.Result
	buffer *replay.Buffer

	phase  Phase
	ticks  int
	runErr error
	logger i.Logger
	sync.RWMutex
}

// NewRun generates a maze from the configuration and places a fresh run on
// it. Configuration errors surface here, before any state exists.
func NewRun(cfg Config, logger i.Logger) (*Run, error) {
	goals := cfg.Goals
	if goals == nil {
		goals = maze.CenterGoals(cfg.Width, cfg.Height)
	}

	m, err := maze.New(maze.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Start:  cfg.Start,
		Goals:  goals,
	})
	if err != nil {
		return nil, err
	}
	return newRun(m, cfg.Facing, logger)
}

// NewRunFromMaze places a run on an existing maze layout instead of
// generating one. The maze is cloned, so the caller's copy stays untouched.
func NewRunFromMaze(m *maze.GridMaze, facing maze.Direction, logger i.Logger) (*Run, error) {
	if m == nil {
		return nil, ErrMissingMaze
	}
	if len(m.Goals) == 0 {
		return nil, maze.ErrEmptyGoals
	}
	if !m.InBound(m.Start.Row, m.Start.Col) {
		return nil, fmt.Errorf("%w: start (%d,%d)", maze.ErrOutOfBounds, m.Start.Row, m.Start.Col)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return newRun(m.Clone(), facing, logger)
}

func newRun(m *maze.GridMaze, facing maze.Direction, logger i.Logger) (*Run, error) {
	if logger == nil {
		logger = i.NopLogger{}
	}

	ms, err := mouse.New(m, facing, logger)
	if err != nil {
		return nil, err
	}

	return &Run{
		truth:  m,
		facing: facing,
		mouse:  ms,
		phase:  Exploring,
		logger: logger,
	}, nil
}

// Tick performs one unit of work for the current phase: one exploration
// step, one search expansion, or one replay move. Phase transitions happen
// inside the tick that completes a phase. Ticking a terminal run is a
// no-op; a non-nil error means the run is now FAILED.
func (r *Run) Tick() error {
	r.Lock()
	defer r.Unlock()

	if r.phase.Terminal() {
		return nil
	}
	r.ticks++

	switch r.phase {
	case Exploring:
		return r.tickExploring()
	case Pathfinding:
		return r.tickPathfinding()
	case Replaying:
		r.tickReplaying()
	}
	return nil
}

func (r *Run) tickExploring() error {
	if err := r.mouse.Step(); err != nil {
		return r.fail(err)
	}
	if !r.mouse.Done() {
		return nil
	}

	// The mouse is back on the start cell with its map complete; plan on
	// that map, not on the hidden truth.
	discovered := r.mouse.Discovered()
	search, err := pathfinder.New(discovered, discovered.Start, discovered.Goals, r.logger)
	if err != nil {
		return r.fail(err)
	}

	r.search = search
	r.phase = Pathfinding
	r.logger.Info(fmt.Sprintf("exploration finished after %d moves, planning a route", r.mouse.Moves()))
	return nil
}

func (r *Run) tickPathfinding() error {
	r.search.Step()
	if !r.search.Done() {
		return nil
	}

	r.result = r.search.Result()
	if !r.result.Found {
		r.phase = NoPath
		r.logger.Warning("no route to any goal on the discovered map")
		return nil
	}

	buffer, err := replay.New(r.result.Path)
	if err != nil {
		return r.fail(err)
	}
	r.buffer = buffer
	r.phase = Replaying
	r.logger.Info(fmt.Sprintf("route found: %d cells, cost %d", len(r.result.Path), r.result.Cost))
	return nil
}

func (r *Run) tickReplaying() {
	r.buffer.Forward()
	if r.buffer.AtEnd() {
		r.phase = Done
		r.logger.Info(fmt.Sprintf("goal reached, run done after %d ticks", r.ticks))
	}
}

// fail freezes the run in FAILED and remembers why.
func (r *Run) fail(err error) error {
	r.phase = Failed
	r.runErr = err
	r.logger.Error(fmt.Sprintf("run failed: %v", err))
	return err
}

// StepForward moves the replay cursor one cell toward the goal and reports
// whether it moved. It needs a finished path, so it only works in the
// REPLAYING and DONE phases.
func (r *Run) StepForward() (bool, error) {
	r.Lock()
	defer r.Unlock()

	if r.buffer == nil || r.phase == Failed {
		return false, ErrNotReplayable
	}
	return r.buffer.Forward(), nil
}

// StepBackward moves the replay cursor one cell back toward the start and
// reports whether it moved.
func (r *Run) StepBackward() (bool, error) {
	r.Lock()
	defer r.Unlock()

	if r.buffer == nil || r.phase == Failed {
		return false, ErrNotReplayable
	}
	return r.buffer.Backward(), nil
}

// Reset rebuilds the run on its own maze: a fresh mouse, no search result,
// no path, tick count zero. Runs never mutate the layout, so resetting
// replays the identical maze and therefore the identical outcome.
func (r *Run) Reset() error {
	r.Lock()
	defer r.Unlock()

	ms, err := mouse.New(r.truth, r.facing, r.logger)
	if err != nil {
		return err
	}

	r.mouse = ms
	r.search = nil
	r.result = nil
	r.buffer = nil
	r.phase = Exploring
	r.ticks = 0
	r.runErr = nil
	return nil
}

// Phase returns the stage the run is currently in.
func (r *Run) Phase() Phase {
	r.RLock()
	defer r.RUnlock()
	return r.phase
}

// Finished reports whether the run reached a terminal phase.
func (r *Run) Finished() bool {
	r.RLock()
	defer r.RUnlock()
	return r.phase.Terminal()
}

// Err returns the error that failed the run, or nil.
func (r *Run) Err() error {
	r.RLock()
	defer r.RUnlock()
	return r.runErr
}
