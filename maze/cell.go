package maze

// CellInterface defines the methods that a cell must implement.
type CellInterface interface {
	// HasNorthWall returns true if there is a wall on the north side of the cell.
	HasNorthWall() bool

	// HasSouthWall returns true if there is a wall on the south side of the cell.
	HasSouthWall() bool

	// HasEastWall returns true if there is a wall on the east side of the cell.
	HasEastWall() bool

	// HasWestWall returns true if there is a wall on the west side of the cell.
	HasWestWall() bool

	// IsVisited returns true if the cell has been visited during exploration.
	IsVisited() bool

	// SetNorthWall sets the presence of a wall on the north side of the cell.
	SetNorthWall(bool)

	// SetSouthWall sets the presence of a wall on the south side of the cell.
	SetSouthWall(bool)

	// SetEastWall sets the presence of a wall on the east side of the cell.
	SetEastWall(bool)

	// SetWestWall sets the presence of a wall on the west side of the cell.
	SetWestWall(bool)

	// SetVisited marks whether the cell has been visited during exploration.
	SetVisited(bool)
}

// Cell represents a single cell in a maze grid.
// Wall flags are fixed once generation finishes; the visited flag belongs to
// the exploring mouse and is only ever mutated on the mouse's own map.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.
	Visited   bool // Visited marks that the exploring mouse has entered the cell.
}

// HasNorthWall returns true if there is a wall on the north side of the cell.
func (c *Cell) HasNorthWall() bool {
	return c.NorthWall
}

// HasSouthWall returns true if there is a wall on the south side of the cell.
func (c *Cell) HasSouthWall() bool {
	return c.SouthWall
}

// HasEastWall returns true if there is a wall on the east side of the cell.
func (c *Cell) HasEastWall() bool {
	return c.EastWall
}

// HasWestWall returns true if there is a wall on the west side of the cell.
func (c *Cell) HasWestWall() bool {
	return c.WestWall
}

// IsVisited returns true if the cell has been visited during exploration.
func (c *Cell) IsVisited() bool {
	return c.Visited
}

// SetNorthWall sets the presence of a wall on the north side of the cell.
func (c *Cell) SetNorthWall(hasWall bool) {
	c.NorthWall = hasWall
}

// SetSouthWall sets the presence of a wall on the south side of the cell.
func (c *Cell) SetSouthWall(hasWall bool) {
	c.SouthWall = hasWall
}

// SetEastWall sets the presence of a wall on the east side of the cell.
func (c *Cell) SetEastWall(hasWall bool) {
	c.EastWall = hasWall
}

// SetWestWall sets the presence of a wall on the west side of the cell.
func (c *Cell) SetWestWall(hasWall bool) {
	c.WestWall = hasWall
}

// SetVisited marks whether the cell has been visited during exploration.
func (c *Cell) SetVisited(visited bool) {
	c.Visited = visited
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// GetRow returns the row index of the cell.
func (cp *CellPosition) GetRow() int {
	return cp.Row
}

// GetCol returns the column index of the cell.
func (cp *CellPosition) GetCol() int {
	return cp.Col
}

// SetRow sets the row index of the cell.
func (cp *CellPosition) SetRow(row int) {
	cp.Row = row
}

// SetCol sets the column index of the cell.
func (cp *CellPosition) SetCol(col int) {
	cp.Col = col
}

// Step returns the position one cell away in the given direction.
// The result is not bounds-checked.
func (cp CellPosition) Step(dir Direction) CellPosition {
	delta := dir.Delta()
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

// Move represents a movement from one cell to another in a specific direction.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Direction of the move
}

// GetFrom returns the starting cell's position of the move.
func (m *Move) GetFrom() CellPosition {
	return m.From
}

// GetTo returns the destination cell's position of the move.
func (m *Move) GetTo() CellPosition {
	return m.To
}

// GetDirection returns the direction of the move.
func (m *Move) GetDirection() Direction {
	return m.Direction
}

// SetFrom sets the starting cell's position of the move.
func (m *Move) SetFrom(from CellPosition) {
	m.From = from
}

// SetTo sets the destination cell's position of the move.
func (m *Move) SetTo(to CellPosition) {
	m.To = to
}

// SetDirection sets the direction of the move.
func (m *Move) SetDirection(direction Direction) {
	m.Direction = direction
}
