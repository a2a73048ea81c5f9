/*
Package maze provides the grid maze model shared by every part of the
simulation: generation, sensing, exploration, and pathfinding.

It defines the `GridMaze` structure, composed of `Cell` objects that carry a
wall configuration and a visited marker. Mazes are generated with randomized
recursive backtracking, which yields a perfect maze: the open-wall graph is
connected and acyclic, so exactly one route exists between any two cells.

Utility functions cover neighbor detection, symmetric wall manipulation,
invariant validation, Manhattan distance fields, and ASCII visualization.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
	ErrEmptyGoals        = errors.New("maze needs at least one goal cell")
	ErrOutOfBounds       = errors.New("cell position outside the maze")
	ErrNotAdjacent       = errors.New("cells are not orthogonally adjacent")
	ErrAsymmetricWalls   = errors.New("adjacent cells disagree about a shared wall")
	ErrOpenBoundary      = errors.New("boundary wall is open")
)

// Config carries everything needed to build a maze. Start and goal cells are
// explicit policy supplied by the caller, never inferred at runtime.
type Config struct {
	Width  int
	Height int
	// Seed drives generation; the same seed always produces the same maze.
	// A value <= 0 means "derive a seed from the clock".
	Seed  int64
	Start CellPosition
	Goals []CellPosition
}

// GridMaze represents a rectangular maze consisting of cells with walls,
// plus the designated start cell and goal cell set.
type GridMaze struct {
	Width  int            // Width of the maze (number of columns)
	Height int            // Height of the maze (number of rows)
	Seed   int64          // Seed the layout was carved from
	Start  CellPosition   // Entry cell of the mouse
	Goals  []CellPosition // Target cells, usually the center block
	Grid   [][]*Cell      // 2D grid of cells forming the maze
}

// New builds a maze of the configured dimensions and carves its layout with
// randomized recursive backtracking. The result is a perfect maze: every
// cell is reachable from every other cell through exactly one route.
func New(cfg Config) (*GridMaze, error) {
	m, err := NewSealed(cfg)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	m.Seed = seed
	m.carve(rand.New(rand.NewSource(seed)))
	return m, nil
}

// NewSealed builds a maze of the configured dimensions with every wall
// present and no passages carved. The exploring mouse uses it as the blank
// slate for its discovered map; tests use it to lay out walls by hand.
func NewSealed(cfg Config) (*GridMaze, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	grid := make([][]*Cell, cfg.Height)
	for i := range grid {
		grid[i] = make([]*Cell, cfg.Width)
		for j := range grid[i] {
			grid[i][j] = &Cell{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
			}
		}
	}

	return &GridMaze{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Start:  cfg.Start,
		Goals:  append([]CellPosition(nil), cfg.Goals...),
		Grid:   grid,
	}, nil
}

// validateConfig rejects impossible dimensions and out-of-range positions
// before any state is built.
func validateConfig(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	if len(cfg.Goals) == 0 {
		return ErrEmptyGoals
	}

	inBound := func(p CellPosition) bool {
		return p.Row >= 0 && p.Row < cfg.Height && p.Col >= 0 && p.Col < cfg.Width
	}
	if !inBound(cfg.Start) {
		return fmt.Errorf("%w: start (%d,%d)", ErrOutOfBounds, cfg.Start.Row, cfg.Start.Col)
	}
	for _, g := range cfg.Goals {
		if !inBound(g) {
			return fmt.Errorf("%w: goal (%d,%d)", ErrOutOfBounds, g.Row, g.Col)
		}
	}
	return nil
}

// CenterGoals returns the 2x2 goal block nearest the grid center, the
// conventional micromouse target. Degenerate grids get whatever part of the
// block fits, down to a single cell.
func CenterGoals(width, height int) []CellPosition {
	r0 := height/2 - 1
	if r0 < 0 {
		r0 = 0
	}
	c0 := width/2 - 1
	if c0 < 0 {
		c0 = 0
	}

	goals := make([]CellPosition, 0, 4)
	for _, r := range []int{r0, r0 + 1} {
		for _, c := range []int{c0, c0 + 1} {
			if r < height && c < width {
				goals = append(goals, CellPosition{Row: r, Col: c})
			}
		}
	}
	return goals
}

// carve hollows out a perfect maze with an iterative recursive backtracker:
// walk to a random unvisited neighbor, knocking down the shared wall, and
// pop back when stuck. The explicit stack keeps deep mazes off the call
// stack.
func (m *GridMaze) carve(rng *rand.Rand) {
	visited := make([][]bool, m.Height)
	for i := range visited {
		visited[i] = make([]bool, m.Width)
	}

	stack := []CellPosition{m.Start}
	visited[m.Start.Row][m.Start.Col] = true

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		moves := m.unvisitedMoves(current, visited)
		if len(moves) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		move := moves[rng.Intn(len(moves))]
		m.setWall(move, false)
		visited[move.To.Row][move.To.Col] = true
		stack = append(stack, move.To)
	}
}

// neighbors finds all in-bound moves from a given cell position, in fixed
// compass order so generation stays deterministic for a seed.
func (m *GridMaze) neighbors(pos CellPosition) []Move {
	var result []Move
	for d := North; d < directionCount; d++ {
		to := pos.Step(d)
		if m.InBound(to.Row, to.Col) {
			result = append(result, Move{From: pos, To: to, Direction: d})
		}
	}
	return result
}

// unvisitedMoves filters neighbors down to those not yet carved into.
func (m *GridMaze) unvisitedMoves(pos CellPosition, visited [][]bool) []Move {
	var result []Move
	for _, move := range m.neighbors(pos) {
		if !visited[move.To.Row][move.To.Col] {
			result = append(result, move)
		}
	}
	return result
}

// setWall raises or lowers the wall between the two cells of a move on both
// sides at once, preserving the wall-symmetry invariant.
func (m *GridMaze) setWall(move Move, hasWall bool) {
	from := m.Grid[move.From.Row][move.From.Col]
	to := m.Grid[move.To.Row][move.To.Col]

	switch move.Direction {
	case North:
		from.NorthWall = hasWall
		to.SouthWall = hasWall
	case South:
		from.SouthWall = hasWall
		to.NorthWall = hasWall
	case East:
		from.EastWall = hasWall
		to.WestWall = hasWall
	case West:
		from.WestWall = hasWall
		to.EastWall = hasWall
	}
}

// OpenWall removes the wall between a cell and its neighbor in the given
// direction, updating both sides.
func (m *GridMaze) OpenWall(from CellPosition, dir Direction) error {
	return m.changeWall(from, dir, false)
}

// CloseWall raises the wall between a cell and its neighbor in the given
// direction, updating both sides.
func (m *GridMaze) CloseWall(from CellPosition, dir Direction) error {
	return m.changeWall(from, dir, true)
}

func (m *GridMaze) changeWall(from CellPosition, dir Direction, hasWall bool) error {
	if !m.InBound(from.Row, from.Col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, from.Row, from.Col)
	}
	to := from.Step(dir)
	if !m.InBound(to.Row, to.Col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, to.Row, to.Col)
	}
	m.setWall(Move{From: from, To: to, Direction: dir}, hasWall)
	return nil
}

// InBound reports whether the row/col pair lies inside the grid.
func (m *GridMaze) InBound(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// At returns the cell at the given position, or nil when out of bounds.
func (m *GridMaze) At(pos CellPosition) *Cell {
	if !m.InBound(pos.Row, pos.Col) {
		return nil
	}
	return m.Grid[pos.Row][pos.Col]
}

// HasWall reports whether the cell at pos has a wall on the given side.
// Out-of-bound positions read as fully walled.
func (m *GridMaze) HasWall(pos CellPosition, dir Direction) bool {
	cell := m.At(pos)
	if cell == nil {
		return true
	}

	switch dir {
	case North:
		return cell.NorthWall
	case South:
		return cell.SouthWall
	case East:
		return cell.EastWall
	default:
		return cell.WestWall
	}
}

// CanStep reports whether a single step from the cell in the given
// direction is open: both cells in bounds and both sides of the shared wall
// down.
func (m *GridMaze) CanStep(from CellPosition, dir Direction) bool {
	to := from.Step(dir)
	if !m.InBound(from.Row, from.Col) || !m.InBound(to.Row, to.Col) {
		return false
	}
	return !m.HasWall(from, dir) && !m.HasWall(to, dir.Opposite())
}

// Neighbor returns the adjacent position in the given direction and whether
// it lies inside the grid.
func (m *GridMaze) Neighbor(pos CellPosition, dir Direction) (CellPosition, bool) {
	to := pos.Step(dir)
	return to, m.InBound(to.Row, to.Col)
}

// IsGoal reports whether the position is one of the maze's goal cells.
func (m *GridMaze) IsGoal(pos CellPosition) bool {
	for _, g := range m.Goals {
		if g == pos {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the maze: every boundary
// wall closed and every internal wall agreed on from both sides. A non-nil
// error means the layout was corrupted after generation.
func (m *GridMaze) Validate() error {
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			cell := m.Grid[row][col]

			if row == 0 && !cell.NorthWall {
				return fmt.Errorf("%w: north of (%d,%d)", ErrOpenBoundary, row, col)
			}
			if row == m.Height-1 && !cell.SouthWall {
				return fmt.Errorf("%w: south of (%d,%d)", ErrOpenBoundary, row, col)
			}
			if col == 0 && !cell.WestWall {
				return fmt.Errorf("%w: west of (%d,%d)", ErrOpenBoundary, row, col)
			}
			if col == m.Width-1 && !cell.EastWall {
				return fmt.Errorf("%w: east of (%d,%d)", ErrOpenBoundary, row, col)
			}

			if row+1 < m.Height && cell.SouthWall != m.Grid[row+1][col].NorthWall {
				return fmt.Errorf("%w: between (%d,%d) and (%d,%d)", ErrAsymmetricWalls, row, col, row+1, col)
			}
			if col+1 < m.Width && cell.EastWall != m.Grid[row][col+1].WestWall {
				return fmt.Errorf("%w: between (%d,%d) and (%d,%d)", ErrAsymmetricWalls, row, col, row, col+1)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the maze, including visited markers.
func (m *GridMaze) Clone() *GridMaze {
	grid := make([][]*Cell, m.Height)
	for i := range grid {
		grid[i] = make([]*Cell, m.Width)
		for j := range grid[i] {
			copied := *m.Grid[i][j]
			grid[i][j] = &copied
		}
	}

	return &GridMaze{
		Width:  m.Width,
		Height: m.Height,
		Seed:   m.Seed,
		Start:  m.Start,
		Goals:  append([]CellPosition(nil), m.Goals...),
		Grid:   grid,
	}
}

// String provides a textual representation of the maze. The start cell is
// marked S, goal cells G, and visited cells a dot.
func (m *GridMaze) String() string {
	var output string

	// Top boundary
	output += "+" + strings.Repeat("---+", m.Width) + "\n"

	for row := 0; row < m.Height; row++ {
		// Cell rows
		cellRow := "|"
		for col := 0; col < m.Width; col++ {
			cell := m.Grid[row][col]
			pos := CellPosition{Row: row, Col: col}

			switch {
			case pos == m.Start:
				cellRow += " S "
			case m.IsGoal(pos):
				cellRow += " G "
			case cell.Visited:
				cellRow += " . "
			default:
				cellRow += "   "
			}

			// Add east wall or space
			if cell.EastWall {
				cellRow += "|"
			} else {
				cellRow += " "
			}
		}
		output += cellRow + "\n"

		// Wall rows
		wallRow := "+"
		for col := 0; col < m.Width; col++ {
			cell := m.Grid[row][col]

			// Add south wall or space
			if cell.SouthWall {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output += wallRow + "\n"
	}

	return output
}
