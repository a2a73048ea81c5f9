package maze

// Direction is one of the four compass directions a mouse can face or move
// in. The values are ordered clockwise so that turning is modular
// arithmetic.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// directionCount is the size of the compass; turns wrap around it.
const directionCount = 4

// deltas maps each direction to its row/col offset. Row 0 is the top of the
// grid, so North decreases the row index.
var deltas = [directionCount]CellPosition{
	North: {Row: -1, Col: 0},
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
}

var directionNames = [directionCount]string{
	North: "North",
	East:  "East",
	South: "South",
	West:  "West",
}

// Directions returns the four compass directions in fixed North, East,
// South, West order. Iterating with it keeps grid walks deterministic.
func Directions() [directionCount]Direction {
	return [directionCount]Direction{North, East, South, West}
}

// TurnRight returns the direction 90 degrees clockwise.
func (d Direction) TurnRight() Direction {
	return (d + 1) % directionCount
}

// TurnLeft returns the direction 90 degrees counter-clockwise.
func (d Direction) TurnLeft() Direction {
	return (d + directionCount - 1) % directionCount
}

// Opposite returns the direction 180 degrees away.
func (d Direction) Opposite() Direction {
	return (d + 2) % directionCount
}

// Delta returns the row/col offset of a single step in the direction.
func (d Direction) Delta() CellPosition {
	return deltas[d]
}

// String returns the compass name of the direction.
func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return "Unknown"
	}
	return directionNames[d]
}

// DirectionBetween returns the direction of a single step from one cell to
// an adjacent cell. The second return value is false when the cells are not
// orthogonally adjacent.
func DirectionBetween(from, to CellPosition) (Direction, bool) {
	for d := North; d < directionCount; d++ {
		if from.Step(d) == to {
			return d, true
		}
	}
	return North, false
}
