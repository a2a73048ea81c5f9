package pathfinder

import "github.com/beka-birhanu/micromouse-api/maze"

// node is one open-set entry: a cell with its cost bookkeeping and a
// sequence stamp for deterministic tie-breaking.
type node struct {
	pos   maze.CellPosition
	g     int // steps walked from the start
	h     int // Manhattan estimate to the nearest goal
	seq   int // insertion order
	index int // heap slot, maintained by the queue
}

func (n *node) f() int {
	return n.g + n.h
}

// openQueue is an array-backed min-heap ordered by f, then h, then
// insertion order, so equal-cost frontiers always pop in the same
// sequence.
type openQueue []*node

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].f() != q[j].f() {
		return q[i].f() < q[j].f()
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openQueue) Push(x any) {
	n := len(*q)
	item := x.(*node)
	item.index = n
	*q = append(*q, item)
}

func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[0 : n-1]
	return item
}
