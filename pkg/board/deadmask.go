package board

import "sisyphus/pkg/bitset"

// computePushDeadMask finds every cell from which no push sequence can
// place a box on some goal, ignoring all other boxes. It works by backward
// reachability from the goal set: starting at each goal, repeatedly ask
// "which cell could a box have been pushed from to reach a cell already
// known reachable", using the inverse of the push relation in §4.1.
//
// Push(box at p, dir d): box moves p -> p.Neighbor(d); requires the
// standing cell p.Neighbor(d.Opposite()) to be on-board and non-wall.
// So a box at predecessor q = p.Neighbor(d.Opposite()) can be pushed to p
// in direction d... equivalently: for a cell q already known reachable, its
// predecessors are q' = q.Neighbor(e) for each direction e (pushed to q in
// direction e.Opposite()), provided q' is on-board and non-wall and the
// standing cell q'.Neighbor(e) is on-board and non-wall.
func computePushDeadMask(b *Board) bitset.Bitboard64 {
	reach := backwardReachable(b, b.Goals)
	return complement(b, reach)
}

// computePullDeadMask is the pull-direction analog. A pull moves a box at
// p to p.Neighbor(d), requiring the pusher to stand at p.Neighbor(d) before
// the move and end at p.Neighbor(d).Neighbor(d) after. Predecessors of a
// reachable cell q are q' = q.Neighbor(e.Opposite()) such that the pull from q' in
// direction e lands on q and both the pre-move standing cell (q itself)
// and the post-move landing cell q.Neighbor(e) are on-board and non-wall.
func computePullDeadMask(b *Board) bitset.Bitboard64 {
	reach := backwardReachablePull(b, b.Goals)
	return complement(b, reach)
}

func backwardReachable(b *Board, seeds []bitset.Pos) bitset.Bitboard64 {
	var seen bitset.Bitboard64
	var queue []bitset.Pos
	for _, s := range seeds {
		if !seen.IsSet(s) {
			seen.Set(s)
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		for e := bitset.Dir(0); e < bitset.NumDirs; e++ {
			// Predecessor of q via a push in direction e.Opposite():
			// box at q' = q.Neighbor(e), pushed to q in direction e.Opposite().
			qp, ok := q.Neighbor(e, b.Width, b.Height)
			if !ok || b.At(qp) == Wall {
				continue
			}
			// Standing cell for that push: qp.Neighbor(e) (opposite of
			// e.Opposite() is e), i.e. the cell behind qp in direction e.
			stand, ok := qp.Neighbor(e, b.Width, b.Height)
			if !ok || b.At(stand) == Wall {
				continue
			}
			if !seen.IsSet(qp) {
				seen.Set(qp)
				queue = append(queue, qp)
			}
		}
	}
	return seen
}

func backwardReachablePull(b *Board, seeds []bitset.Pos) bitset.Bitboard64 {
	var seen bitset.Bitboard64
	var queue []bitset.Pos
	for _, s := range seeds {
		if !seen.IsSet(s) {
			seen.Set(s)
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		for e := bitset.Dir(0); e < bitset.NumDirs; e++ {
			// Predecessor of q via a pull in direction e: box at
			// q' = q.Neighbor(e.Opposite()), pulled to q in direction e.
			qp, ok := q.Neighbor(e.Opposite(), b.Width, b.Height)
			if !ok || b.At(qp) == Wall {
				continue
			}
			// The pull requires q itself (pre-move standing cell) and
			// q.Neighbor(e) (post-move landing cell) on-board and non-wall.
			if b.At(q) == Wall {
				continue
			}
			landing, ok := q.Neighbor(e, b.Width, b.Height)
			if !ok || b.At(landing) == Wall {
				continue
			}
			if !seen.IsSet(qp) {
				seen.Set(qp)
				queue = append(queue, qp)
			}
		}
	}
	return seen
}

func complement(b *Board, reach bitset.Bitboard64) bitset.Bitboard64 {
	var dead bitset.Bitboard64
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := bitset.NewPos(x, y)
			if b.At(p) == Wall {
				continue
			}
			if !reach.IsSet(p) {
				dead.Set(p)
			}
		}
	}
	return dead
}
