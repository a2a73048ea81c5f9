// Package simapi provides HTTP handlers for creating, steering, and
// replaying micromouse simulation runs.
package simapi

import (
	"strings"
	"time"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/maze"
	"github.com/beka-birhanu/micromouse-api/simulation"
	"github.com/google/uuid"
)

// CreateRunRequest represents a request to start a new simulation run.
// Zero values fall back to the server's configured defaults.
type CreateRunRequest struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`
}

// TickRequest represents a request to advance a run by a number of
// work units. Values below one advance by exactly one.
type TickRequest struct {
	Steps int `json:"steps"`
}

// Position is a cell position on the maze grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pose is the mouse position plus the direction it faces there.
type Pose struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Facing string `json:"facing"`
}

// RunResponse represents the full observable state of a simulation run:
// identity and inputs, the current phase, both wall grids rendered as
// ASCII rows, and every ordered trace a client needs to animate the run.
type RunResponse struct {
	ID     string `json:"id"`
	Phase  string `json:"phase"`
	Ticks  int    `json:"ticks"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed"`

	Start Position   `json:"start"`
	Goals []Position `json:"goals"`
	Mouse Pose       `json:"mouse"`
	Moves int        `json:"moves"`

	Visited  []Position `json:"visited"`
	Expanded []Position `json:"expanded"`
	Path     []Position `json:"path"`
	Cost     int        `json:"cost"`
	Cursor   int        `json:"cursor"`

	Maze       []string `json:"maze"`
	Discovered []string `json:"discovered"`
	Distances  [][]int  `json:"distances"`

	Err string `json:"error,omitempty"`
}

// ScoreResponse represents one leaderboard entry: the archived run and
// the path cost it finished with.
type ScoreResponse struct {
	RunID string  `json:"run_id"`
	Cost  float64 `json:"cost"`
}

// RecordResponse represents one archived run.
type RecordResponse struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Seed       int64     `json:"seed"`
	Outcome    string    `json:"outcome"`
	PathLen    int       `json:"path_len"`
	Cost       int       `json:"cost"`
	Explored   int       `json:"explored"`
	Expanded   int       `json:"expanded"`
	Ticks      int       `json:"ticks"`
	FinishedAt time.Time `json:"finished_at"`
}

// newRunResponse flattens a snapshot for transport.
func newRunResponse(id uuid.UUID, snap simulation.Snapshot) *RunResponse {
	return &RunResponse{
		ID:         id.String(),
		Phase:      snap.Phase.String(),
		Ticks:      snap.Ticks,
		Width:      snap.Width,
		Height:     snap.Height,
		Seed:       snap.Seed,
		Start:      Position{Row: snap.Start.Row, Col: snap.Start.Col},
		Goals:      positions(snap.Goals),
		Mouse:      Pose{Row: snap.Mouse.Pos.Row, Col: snap.Mouse.Pos.Col, Facing: snap.Mouse.Facing.String()},
		Moves:      snap.Moves,
		Visited:    positions(snap.Visited),
		Expanded:   positions(snap.Expanded),
		Path:       positions(snap.Path),
		Cost:       snap.Cost,
		Cursor:     snap.Cursor,
		Maze:       asciiRows(snap.Maze),
		Discovered: asciiRows(snap.Discovered),
		Distances:  snap.Distances,
		Err:        snap.Err,
	}
}

// newRecordResponse flattens an archived run for transport.
func newRecordResponse(record *dmn.RunRecord) *RecordResponse {
	return &RecordResponse{
		ID:         record.ID.String(),
		Owner:      record.Owner.String(),
		Width:      record.Width,
		Height:     record.Height,
		Seed:       record.Seed,
		Outcome:    record.Outcome,
		PathLen:    record.PathLen,
		Cost:       record.Cost,
		Explored:   record.Explored,
		Expanded:   record.Expanded,
		Ticks:      record.Ticks,
		FinishedAt: record.FinishedAt,
	}
}

func positions(cells []maze.CellPosition) []Position {
	out := make([]Position, 0, len(cells))
	for _, cell := range cells {
		out = append(out, Position{Row: cell.Row, Col: cell.Col})
	}
	return out
}

// asciiRows renders a maze as one string per grid row, ready for a
// monospace display.
func asciiRows(m *maze.GridMaze) []string {
	if m == nil {
		return nil
	}
	return strings.Split(strings.TrimRight(m.String(), "\n"), "\n")
}
