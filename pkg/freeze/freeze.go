// Package freeze implements the freeze-deadlock analyzer: a box is frozen
// once it cannot move along either axis, treating already-frozen boxes as
// additional walls. A frozen box not on a goal proves the state unsolvable.
package freeze

import (
	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
)

// ComputeFrozen returns the full set of frozen boxes in g, via a monotone
// fixpoint: repeatedly test each not-yet-frozen box against the current
// frozen set (acting as walls), adding any newly frozen box, until a pass
// adds nothing.
func ComputeFrozen(g *board.Game) bitset.Boxes {
	var frozen bitset.Boxes
	for {
		changed := false
		for i, p := range g.BoxPos {
			idx := bitset.BoxIdx(i)
			if frozen.Has(idx) {
				continue
			}
			if isFrozen(g, p, frozen) {
				frozen = frozen.Set(idx)
				changed = true
			}
		}
		if !changed {
			return frozen
		}
	}
}

// ComputeNewFrozen is an incremental variant anchored at the box that just
// moved: only that box and boxes orthogonally adjacent to its new cell can
// possibly have changed frozen status, so the fixpoint seed set is
// restricted to those candidates. lastFrozen seeds the result, since a push
// never removes a box or wall and previously frozen boxes cannot thaw.
func ComputeNewFrozen(g *board.Game, lastPushed bitset.BoxIdx, lastFrozen bitset.Boxes) bitset.Boxes {
	frozen := lastFrozen
	candidates := candidateSet(g, lastPushed)

	for {
		changed := false
		candidates.Iterate(func(idx bitset.BoxIdx) {
			if frozen.Has(idx) {
				return
			}
			if isFrozen(g, g.BoxPos[idx], frozen) {
				frozen = frozen.Set(idx)
				changed = true
			}
		})
		if !changed {
			return frozen
		}
	}
}

// candidateSet returns lastPushed plus every box orthogonally adjacent to
// its current cell, the only boxes whose frozen status the push could
// have changed.
func candidateSet(g *board.Game, lastPushed bitset.BoxIdx) bitset.Boxes {
	var out bitset.Boxes
	out = out.Set(lastPushed)

	p := g.BoxPos[lastPushed]
	for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
		n, ok := p.Neighbor(d, g.B.Width, g.B.Height)
		if !ok {
			continue
		}
		if idx, ok := boxIndexAt(g, n); ok {
			out = out.Set(idx)
		}
	}
	return out
}

// isFrozen reports whether a box at p is frozen on both axes, given boxes
// already known frozen (treated as additional walls for this test).
func isFrozen(g *board.Game, p bitset.Pos, frozen bitset.Boxes) bool {
	return axisFrozen(g, p, bitset.North, frozen) && axisFrozen(g, p, bitset.East, frozen)
}

// axisFrozen reports whether a box at p can never move along the axis
// spanned by d and d.Opposite(), in either direction, ever again.
//
// Pushing the box toward d needs its d-side clear to receive it and its
// opposite side clear for the pusher to stand on; pushing toward the
// opposite direction needs the reverse. A wall or permanently-frozen box
// on EITHER side therefore already rules out both directions: it is the
// unconditional side of one push's destination and the unconditional side
// of the other push's standing cell. A push-dead square only blocks the
// push that would land a box on it, not the push away from it, so a dead
// square alone must appear on both sides to freeze the axis. d is always
// North or East; the opposite direction is derived.
func axisFrozen(g *board.Game, p bitset.Pos, d bitset.Dir, frozen bitset.Boxes) bool {
	wallOrFrozen := func(dir bitset.Dir) bool {
		n, ok := p.Neighbor(dir, g.B.Width, g.B.Height)
		if !ok || g.B.At(n) == board.Wall {
			return true
		}
		if idx, ok := boxIndexAt(g, n); ok {
			return frozen.Has(idx)
		}
		return false
	}
	dead := func(dir bitset.Dir) bool {
		n, ok := p.Neighbor(dir, g.B.Width, g.B.Height)
		return ok && g.B.PushDeadMask.IsSet(n)
	}

	if wallOrFrozen(d) || wallOrFrozen(d.Opposite()) {
		return true
	}
	return dead(d) && dead(d.Opposite())
}

// boxIndexAt returns the index of the box sitting at p, if any.
func boxIndexAt(g *board.Game, p bitset.Pos) (bitset.BoxIdx, bool) {
	if !g.Occ.IsSet(p) {
		return 0, false
	}
	for i, q := range g.BoxPos {
		if q == p {
			return bitset.BoxIdx(i), true
		}
	}
	return 0, false
}

// IsDeadlock reports whether frozen contains any box not sitting on a goal.
func IsDeadlock(g *board.Game, frozen bitset.Boxes) bool {
	deadlocked := false
	frozen.Iterate(func(idx bitset.BoxIdx) {
		if g.B.At(g.BoxPos[idx]) != board.Goal {
			deadlocked = true
		}
	})
	return deadlocked
}
