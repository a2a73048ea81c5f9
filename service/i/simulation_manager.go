package i

import (
	"context"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/simulation"
	"github.com/google/uuid"
)

// SimulationManager owns the live simulation runs and their lifecycle:
// creation, stepping, replay scrubbing, archiving, and eviction.
type SimulationManager interface {
	// Create starts a new run owned by the given user and returns its id
	// with the initial snapshot.
	Create(owner uuid.UUID, cfg simulation.Config) (uuid.UUID, simulation.Snapshot, error)

	// Snapshot returns the current state of a live run.
	Snapshot(id uuid.UUID) (simulation.Snapshot, error)

	// Tick advances a run by n units of work (at least one).
	Tick(owner, id uuid.UUID, n int) (simulation.Snapshot, error)

	// Forward moves the replay cursor of a finished path one cell ahead.
	Forward(owner, id uuid.UUID) (simulation.Snapshot, error)

	// Backward moves the replay cursor one cell back.
	Backward(owner, id uuid.UUID) (simulation.Snapshot, error)

	// Reset rewinds a run to the beginning of exploration on its own maze.
	Reset(owner, id uuid.UUID) (simulation.Snapshot, error)

	// Solve ticks a run until it reaches a terminal phase, bounded by the
	// manager's step cap.
	Solve(owner, id uuid.UUID) (simulation.Snapshot, error)

	// Delete evicts a live run.
	Delete(owner, id uuid.UUID) error

	// Leaderboard returns the best archived costs, lowest first.
	Leaderboard(ctx context.Context, n int64) ([]dmn.ScoreEntry, error)

	// Records returns recently archived runs, newest first.
	Records(limit int64) ([]*dmn.RunRecord, error)
}
