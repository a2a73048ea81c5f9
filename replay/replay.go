// Package replay walks a solved path one cell at a time. The simulation
// drives it forward on ticks and lets clients scrub backward and forward
// through the final run without recomputing anything.
package replay

import (
	"errors"

	"github.com/beka-birhanu/micromouse-api/maze"
)

var ErrEmptyPath = errors.New("replay needs a path with at least one cell")

// Buffer holds an immutable path and a cursor into it. The cursor always
// points at a valid cell: moves past either end are refused, not clamped
// after the fact.
type Buffer struct {
	path   []maze.CellPosition
	cursor int
}

// New copies the path into a fresh buffer with the cursor on its first cell.
func New(path []maze.CellPosition) (*Buffer, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	return &Buffer{path: append([]maze.CellPosition(nil), path...)}, nil
}

// Forward advances the cursor one cell and reports whether it moved. At the
// last cell it stays put and returns false.
func (b *Buffer) Forward() bool {
	if b.cursor+1 >= len(b.path) {
		return false
	}
	b.cursor++
	return true
}

// Backward moves the cursor one cell back and reports whether it moved. At
// the first cell it stays put and returns false.
func (b *Buffer) Backward() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// Reset puts the cursor back on the first cell.
func (b *Buffer) Reset() {
	b.cursor = 0
}

// Pos returns the cell under the cursor.
func (b *Buffer) Pos() maze.CellPosition {
	return b.path[b.cursor]
}

// Cursor returns the current index into the path.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Len returns the number of cells in the path.
func (b *Buffer) Len() int {
	return len(b.path)
}

// AtEnd reports whether the cursor sits on the last cell.
func (b *Buffer) AtEnd() bool {
	return b.cursor == len(b.path)-1
}

// Path returns a copy of the full path.
func (b *Buffer) Path() []maze.CellPosition {
	return append([]maze.CellPosition(nil), b.path...)
}
