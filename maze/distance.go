package maze

// Manhattan returns the Manhattan distance between two cell positions: the
// number of unit steps separating them when movement is restricted to the
// four compass directions and no walls intervene.
func Manhattan(a, b CellPosition) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// NearestGoalDistance returns the minimum Manhattan distance from the
// position to any goal cell. It never overestimates the true walking cost,
// which is what makes it usable as a search heuristic.
func (m *GridMaze) NearestGoalDistance(pos CellPosition) int {
	best := -1
	for _, g := range m.Goals {
		d := Manhattan(pos, g)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// DistanceField returns the per-cell minimum Manhattan distance to the goal
// set, indexed [row][col]. Display layers overlay these numbers on the
// grid.
func (m *GridMaze) DistanceField() [][]int {
	field := make([][]int, m.Height)
	for row := range field {
		field[row] = make([]int, m.Width)
		for col := range field[row] {
			field[row][col] = m.NearestGoalDistance(CellPosition{Row: row, Col: col})
		}
	}
	return field
}
