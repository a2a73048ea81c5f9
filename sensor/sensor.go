// Package sensor models the micromouse's local wall sensors. It is the only
// read path the exploration layer has into the true maze: three boolean
// readings relative to the mouse's pose, nothing global.
package sensor

import (
	"github.com/beka-birhanu/micromouse-api/maze"
)

// Reading reports wall presence around a pose. True means blocked.
type Reading struct {
	Front bool // wall in the facing direction
	Left  bool // wall 90 degrees counter-clockwise from facing
	Right bool // wall 90 degrees clockwise from facing
}

// Sense reads the walls around the given pose on the true maze. It is a
// pure function: no side effects, no randomness, no noise. Positions
// outside the grid read as fully blocked.
func Sense(m *maze.GridMaze, pos maze.CellPosition, facing maze.Direction) Reading {
	return Reading{
		Front: m.HasWall(pos, facing),
		Left:  m.HasWall(pos, facing.TurnLeft()),
		Right: m.HasWall(pos, facing.TurnRight()),
	}
}
