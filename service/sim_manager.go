package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	general_i "github.com/beka-birhanu/micromouse-api/i"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/beka-birhanu/micromouse-api/simulation"
	"github.com/google/uuid"
)

const (
	defaultMaxLiveRuns  = 64
	defaultMazeWidth    = 16
	defaultMazeHeight   = 16
	defaultSolveStepCap = 10000

	// costBoard ranks archived runs by path cost, lowest first.
	costBoard = "leaderboard:cost"

	archiveTimeout = 5 * time.Second
)

// Simulation manager errors.
var (
	ErrRunNotFound = errors.New("no live run with that id")
	ErrNotRunOwner = errors.New("run belongs to another user")
	ErrTooManyRuns = errors.New("too many live runs")
)

// Options tunes the simulation manager.
type Options struct {
	// MaxLiveRuns caps how many runs are held in memory at once.
	MaxLiveRuns int

	// DefaultWidth and DefaultHeight apply when a create request leaves
	// the dimensions out.
	DefaultWidth  int
	DefaultHeight int

	// SolveStepCap bounds how many ticks a single solve call may spend.
	SolveStepCap int
}

// Config carries the simulation manager's dependencies.
type Config struct {
	RunRepo    i.RunRepo
	ScoreBoard i.ScoreBoard
	Logger     general_i.Logger
	Options    *Options
}

type runEntry struct {
	run      *simulation.Run
	owner    uuid.UUID
	archived bool
}

// SimulationManager keeps the live runs, drives them on request, and
// archives them when they finish.
type SimulationManager struct {
	runs    map[uuid.UUID]*runEntry
	runRepo i.RunRepo
	board   i.ScoreBoard
	opts    *Options
	logger  general_i.Logger
	sync.RWMutex
}

// NewSimulationManager creates a manager from the given dependencies. Nil
// or non-positive options fall back to the defaults.
func NewSimulationManager(c *Config) (*SimulationManager, error) {
	if c.RunRepo == nil {
		return nil, errors.New("simulation manager needs a run repository")
	}
	if c.ScoreBoard == nil {
		return nil, errors.New("simulation manager needs a score board")
	}

	opts := c.Options
	if opts == nil {
		opts = &Options{}
	}
	if opts.MaxLiveRuns <= 0 {
		opts.MaxLiveRuns = defaultMaxLiveRuns
	}
	if opts.DefaultWidth <= 0 {
		opts.DefaultWidth = defaultMazeWidth
	}
	if opts.DefaultHeight <= 0 {
		opts.DefaultHeight = defaultMazeHeight
	}
	if opts.SolveStepCap <= 0 {
		opts.SolveStepCap = defaultSolveStepCap
	}

	logger := c.Logger
	if logger == nil {
		logger = general_i.NopLogger{}
	}

	return &SimulationManager{
		runs:    make(map[uuid.UUID]*runEntry),
		runRepo: c.RunRepo,
		board:   c.ScoreBoard,
		opts:    opts,
		logger:  logger,
	}, nil
}

// Create starts a new run owned by the given user and returns its id with
// the initial snapshot.
func (s *SimulationManager) Create(owner uuid.UUID, cfg simulation.Config) (uuid.UUID, simulation.Snapshot, error) {
	if cfg.Width <= 0 {
		cfg.Width = s.opts.DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = s.opts.DefaultHeight
	}

	run, err := simulation.NewRun(cfg, s.logger)
	if err != nil {
		return uuid.Nil, simulation.Snapshot{}, err
	}

	s.Lock()
	defer s.Unlock()
	if len(s.runs) >= s.opts.MaxLiveRuns {
		return uuid.Nil, simulation.Snapshot{}, ErrTooManyRuns
	}

	id := uuid.New()
	for {
		if _, ok := s.runs[id]; !ok {
			break
		}
		id = uuid.New()
	}
	s.runs[id] = &runEntry{run: run, owner: owner}

	snap := run.Snapshot()
	s.logger.Info(fmt.Sprintf("created run %s: %dx%d seed %d for user %s", id, snap.Width, snap.Height, snap.Seed, owner))
	return id, snap, nil
}

// Snapshot returns the current state of a live run.
func (s *SimulationManager) Snapshot(id uuid.UUID) (simulation.Snapshot, error) {
	e, err := s.entry(id)
	if err != nil {
		return simulation.Snapshot{}, err
	}
	return e.run.Snapshot(), nil
}

// Tick advances a run by n units of work (at least one). A run that fails
// mid-tick stays live in its FAILED phase; the snapshot carries the error.
func (s *SimulationManager) Tick(owner, id uuid.UUID, n int) (simulation.Snapshot, error) {
	e, err := s.ownedEntry(owner, id)
	if err != nil {
		return simulation.Snapshot{}, err
	}

	if n <= 0 {
		n = 1
	}
	for step := 0; step < n && !e.run.Finished(); step++ {
		if err := e.run.Tick(); err != nil {
			break
		}
	}

	s.maybeArchive(id, e)
	return e.run.Snapshot(), nil
}

// Solve ticks a run until it reaches a terminal phase, bounded by the
// manager's step cap.
func (s *SimulationManager) Solve(owner, id uuid.UUID) (simulation.Snapshot, error) {
	e, err := s.ownedEntry(owner, id)
	if err != nil {
		return simulation.Snapshot{}, err
	}

	for step := 0; step < s.opts.SolveStepCap && !e.run.Finished(); step++ {
		if err := e.run.Tick(); err != nil {
			break
		}
	}
	if !e.run.Finished() {
		s.logger.Warning(fmt.Sprintf("run %s still %s after %d solve ticks", id, e.run.Phase(), s.opts.SolveStepCap))
	}

	s.maybeArchive(id, e)
	return e.run.Snapshot(), nil
}

// Forward moves the replay cursor of a finished path one cell ahead.
func (s *SimulationManager) Forward(owner, id uuid.UUID) (simulation.Snapshot, error) {
	e, err := s.ownedEntry(owner, id)
	if err != nil {
		return simulation.Snapshot{}, err
	}
	if _, err := e.run.StepForward(); err != nil {
		return simulation.Snapshot{}, err
	}
	return e.run.Snapshot(), nil
}

// Backward moves the replay cursor one cell back.
func (s *SimulationManager) Backward(owner, id uuid.UUID) (simulation.Snapshot, error) {
	e, err := s.ownedEntry(owner, id)
	if err != nil {
		return simulation.Snapshot{}, err
	}
	if _, err := e.run.StepBackward(); err != nil {
		return simulation.Snapshot{}, err
	}
	return e.run.Snapshot(), nil
}

// Reset rewinds a run to the beginning of exploration on its own maze. A
// reset run that finishes again is archived again, as a new record.
func (s *SimulationManager) Reset(owner, id uuid.UUID) (simulation.Snapshot, error) {
	e, err := s.ownedEntry(owner, id)
	if err != nil {
		return simulation.Snapshot{}, err
	}
	if err := e.run.Reset(); err != nil {
		return simulation.Snapshot{}, err
	}

	s.Lock()
	e.archived = false
	s.Unlock()
	return e.run.Snapshot(), nil
}

// Delete evicts a live run. Archived records of it are kept.
func (s *SimulationManager) Delete(owner, id uuid.UUID) error {
	s.Lock()
	defer s.Unlock()

	e, ok := s.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	if e.owner != owner {
		return ErrNotRunOwner
	}

	delete(s.runs, id)
	s.logger.Info(fmt.Sprintf("deleted run %s", id))
	return nil
}

// Leaderboard returns the best archived costs, lowest first.
func (s *SimulationManager) Leaderboard(ctx context.Context, n int64) ([]dmn.ScoreEntry, error) {
	return s.board.Top(ctx, costBoard, n)
}

// Records returns recently archived runs, newest first.
func (s *SimulationManager) Records(limit int64) ([]*dmn.RunRecord, error) {
	return s.runRepo.Recent(limit)
}

// Live returns the number of runs currently held in memory.
func (s *SimulationManager) Live() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.runs)
}

func (s *SimulationManager) entry(id uuid.UUID) (*runEntry, error) {
	s.RLock()
	defer s.RUnlock()

	e, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return e, nil
}

func (s *SimulationManager) ownedEntry(owner, id uuid.UUID) (*runEntry, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	if e.owner != owner {
		return nil, ErrNotRunOwner
	}
	return e, nil
}

// maybeArchive persists a freshly finished run in the background, exactly
// once per completion. Failed runs are logged, not archived.
func (s *SimulationManager) maybeArchive(id uuid.UUID, e *runEntry) {
	if !e.run.Finished() {
		return
	}

	s.Lock()
	if e.archived {
		s.Unlock()
		return
	}
	e.archived = true
	s.Unlock()

	snap := e.run.Snapshot()
	if snap.Phase == simulation.Failed {
		s.logger.Error(fmt.Sprintf("run %s failed, not archiving: %s", id, snap.Err))
		return
	}

	go s.archive(e.owner, snap)
}

func (s *SimulationManager) archive(owner uuid.UUID, snap simulation.Snapshot) {
	outcome := dmn.OutcomeSolved
	if snap.Phase == simulation.NoPath {
		outcome = dmn.OutcomeNoPath
	}

	record := &dmn.RunRecord{
		ID:         uuid.New(),
		Owner:      owner,
		Width:      snap.Width,
		Height:     snap.Height,
		Seed:       snap.Seed,
		Outcome:    outcome,
		PathLen:    len(snap.Path),
		Cost:       snap.Cost,
		Explored:   len(snap.Visited),
		Expanded:   len(snap.Expanded),
		Ticks:      snap.Ticks,
		FinishedAt: time.Now().UTC(),
	}

	if err := s.runRepo.Save(record); err != nil {
		s.logger.Error(fmt.Sprintf("archiving run %s: %v", record.ID, err))
		return
	}

	if record.Outcome == dmn.OutcomeSolved {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := s.board.Submit(ctx, costBoard, float64(record.Cost), record.ID.String()); err != nil {
			s.logger.Error(fmt.Sprintf("submitting run %s to the leaderboard: %v", record.ID, err))
			return
		}
	}

	s.logger.Info(fmt.Sprintf("archived run %s: %s, cost %d", record.ID, record.Outcome, record.Cost))
}
