package heuristic

import (
	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
)

// infDist marks a cell with no push (or pull) path to the goal the table
// was built for.
const infDist = 1 << 30

// distTable holds, for one goal, the push-distance (or pull-distance) from
// every board cell to that goal, ignoring box occupancy and pusher
// reachability entirely: a BFS over the board using box-push semantics
// that ignores other boxes and assumes the pusher can always reach the
// standing cell a push needs.
type distTable struct {
	width, height int
	dist          []int // row-major, len == width*height
}

func (t *distTable) at(p bitset.Pos) int {
	return t.dist[int(p.Y())*t.width+p.X()]
}

// newPushTables builds one distTable per goal for forward (push) search, via
// backward BFS from each goal using the inverse of the push relation: the
// same predecessor relation board's computePushDeadMask walks, but kept
// here as a distance instead of a boolean, since the dead mask only needs
// reachability and the heuristic needs the hop count.
func newPushTables(b *board.Board) []*distTable {
	tables := make([]*distTable, len(b.Goals))
	for i, goal := range b.Goals {
		tables[i] = bfsPush(b, goal)
	}
	return tables
}

// newPullTables is the pull-direction analog, used by reverse search.
func newPullTables(b *board.Board) []*distTable {
	tables := make([]*distTable, len(b.Goals))
	for i, goal := range b.Goals {
		tables[i] = bfsPull(b, goal)
	}
	return tables
}

func newDistTable(b *board.Board) *distTable {
	t := &distTable{width: b.Width, height: b.Height}
	t.dist = make([]int, b.Width*b.Height)
	for i := range t.dist {
		t.dist[i] = infDist
	}
	return t
}

// bfsPush computes, for every cell, the number of pushes needed to move a
// box sitting there onto goal, ignoring occupancy and pusher reachability.
// It walks the push relation backward from goal: a box at predecessor q is
// one push away from a cell already at distance k if pushing q's box in
// the appropriate direction lands it on that cell, per board's Push
// semantics (destination = q.Neighbor(d), standing = q.Neighbor(d.Opposite())).
func bfsPush(b *board.Board, goal bitset.Pos) *distTable {
	t := newDistTable(b)
	t.dist[int(goal.Y())*b.Width+goal.X()] = 0

	queue := []bitset.Pos{goal}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		dq := t.at(q)

		for e := bitset.Dir(0); e < bitset.NumDirs; e++ {
			// Predecessor of q via a push in direction e.Opposite(): a box
			// at qp = q.Neighbor(e) is pushed to q when pushed in direction
			// e.Opposite(), requiring the standing cell qp.Neighbor(e) (the
			// far side, behind qp) to be on-board and non-wall.
			qp, ok := q.Neighbor(e, b.Width, b.Height)
			if !ok || b.At(qp) == board.Wall {
				continue
			}
			stand, ok := qp.Neighbor(e, b.Width, b.Height)
			if !ok || b.At(stand) == board.Wall {
				continue
			}
			idx := int(qp.Y())*b.Width + qp.X()
			if t.dist[idx] > dq+1 {
				t.dist[idx] = dq + 1
				queue = append(queue, qp)
			}
		}
	}
	return t
}

// bfsPull is the pull-direction analog, mirroring computePullDeadMask's
// predecessor relation.
func bfsPull(b *board.Board, goal bitset.Pos) *distTable {
	t := newDistTable(b)
	t.dist[int(goal.Y())*b.Width+goal.X()] = 0

	queue := []bitset.Pos{goal}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		dq := t.at(q)

		for e := bitset.Dir(0); e < bitset.NumDirs; e++ {
			// Predecessor of q via a pull in direction e: a box at
			// qp = q.Neighbor(e.Opposite()) is pulled to q in direction e,
			// requiring the pre-move standing cell (q itself) and the
			// post-move landing cell q.Neighbor(e) to be on-board and
			// non-wall.
			qp, ok := q.Neighbor(e.Opposite(), b.Width, b.Height)
			if !ok || b.At(qp) == board.Wall {
				continue
			}
			if b.At(q) == board.Wall {
				continue
			}
			landing, ok := q.Neighbor(e, b.Width, b.Height)
			if !ok || b.At(landing) == board.Wall {
				continue
			}
			idx := int(qp.Y())*b.Width + qp.X()
			if t.dist[idx] > dq+1 {
				t.dist[idx] = dq + 1
				queue = append(queue, qp)
			}
		}
	}
	return t
}
