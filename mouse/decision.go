package mouse

import (
	"github.com/beka-birhanu/micromouse-api/maze"
	"github.com/beka-birhanu/micromouse-api/sensor"
)

// Decision is the outcome of one exploration choice: which relative
// direction to advance in, or NoMove when every open side is already
// visited.
type Decision uint8

const (
	Forward Decision = iota
	Left
	Right
	NoMove
)

var decisionNames = [...]string{
	Forward: "Forward",
	Left:    "Left",
	Right:   "Right",
	NoMove:  "NoMove",
}

// String returns the name of the decision.
func (d Decision) String() string {
	if int(d) >= len(decisionNames) {
		return "Unknown"
	}
	return decisionNames[d]
}

// Apply resolves the relative decision against a facing direction into an
// absolute compass direction. NoMove maps to the facing unchanged.
func (d Decision) Apply(facing maze.Direction) maze.Direction {
	switch d {
	case Left:
		return facing.TurnLeft()
	case Right:
		return facing.TurnRight()
	default:
		return facing
	}
}

// Decide picks the next move from a wall reading and a visited lookup. It
// prefers the first open unvisited neighbor in front, left, right order and
// returns NoMove when none qualifies. The function is pure: same reading,
// pose, and lookup always give the same answer.
func Decide(reading sensor.Reading, visited func(maze.CellPosition) bool, pos maze.CellPosition, facing maze.Direction) Decision {
	if !reading.Front && !visited(pos.Step(facing)) {
		return Forward
	}
	if !reading.Left && !visited(pos.Step(facing.TurnLeft())) {
		return Left
	}
	if !reading.Right && !visited(pos.Step(facing.TurnRight())) {
		return Right
	}
	return NoMove
}
