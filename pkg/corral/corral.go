// Package corral implements PI-corral analysis: after a push, the cells the
// pusher cannot reach split into connected regions walled off by boxes and
// board edges. A corral bordering the just-pushed box is explored by a
// bounded local search that tries to push only its boundary boxes into the
// interior; if every such attempt dead-ends, the state is deadlocked even
// though no single box is frozen.
package corral

import (
	"math/bits"

	"github.com/seekerror/stdlib/pkg/util/mathx"

	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
	"sisyphus/pkg/freeze"
)

// DefaultMaxNodes is deadlock_max_nodes' default.
const DefaultMaxNodes = 20

// IsDeadlock reports whether the corral bordering lastPushed (if any) can be
// proven unsolvable by a bounded local search within maxNodes expansions.
// g is mutated and fully restored before returning.
func IsDeadlock(g *board.Game, lastPushed bitset.BoxIdx, maxNodes int) bool {
	region, ok := findRegion(g, lastPushed)
	if !ok {
		return false // the pushed box borders no unreachable cell: no corral to analyze
	}
	// A caller-supplied budget of zero or less would make the very first
	// dfs call treat the corral as already exhausted without ever looking
	// at a move; clamp it up to at least one real expansion.
	s := &searcher{g: g, region: region, budget: mathx.Max(1, maxNodes)}
	return s.dfs()
}

// findRegion flood-fills the unreachable, box-free, non-wall cells adjacent
// to the just-pushed box's current position. Any such region is a corral by
// construction: a cell adjacent to it that were floor and reachable would
// already have been swept into the pusher's reachable set by Reachable's
// own flood fill, so the region's only possible neighbors are walls, boxes,
// or more of itself.
func findRegion(g *board.Game, lastPushed bitset.BoxIdx) (*bitset.Bitboard64, bool) {
	reach := g.Reachable()
	p := g.BoxPos[lastPushed]

	var region bitset.Bitboard64
	var seeds []bitset.Pos
	for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
		n, ok := p.Neighbor(d, g.B.Width, g.B.Height)
		if !ok || g.B.At(n) == board.Wall || g.Occ.IsSet(n) || reach.IsSet(n) {
			continue
		}
		if !region.IsSet(n) {
			region.Set(n)
			seeds = append(seeds, n)
		}
	}
	if len(seeds) == 0 {
		return nil, false
	}

	queue := append([]bitset.Pos(nil), seeds...)
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
			n, ok := q.Neighbor(d, g.B.Width, g.B.Height)
			if !ok || g.B.At(n) == board.Wall || g.Occ.IsSet(n) || reach.IsSet(n) || region.IsSet(n) {
				continue
			}
			region.Set(n)
			queue = append(queue, n)
		}
	}
	return &region, true
}

// searcher holds the bounded-DFS state: the fixed corral region (cells, not
// boxes, so membership never changes during the search) and a shrinking
// node budget shared across the whole recursion.
type searcher struct {
	g      *board.Game
	region *bitset.Bitboard64
	nodes  int
	budget int
}

// dfs explores pushes of boxes bordering or inside the corral. It returns
// true once it has proven no reachable leaf solves the corral (every branch
// either freeze-deadlocks or recurses to a further proven-dead state), and
// false the moment it finds a branch that clears the corral or that the
// search budget ran out while an unexplored escape move still existed.
func (s *searcher) dfs() bool {
	if s.nodes >= s.budget {
		return !s.hasEscape()
	}
	s.nodes++

	moves := s.relevantPushes()
	if len(moves) == 0 {
		return !s.corralCleared()
	}

	for _, m := range moves {
		u := s.g.Push(m)
		frozen := freeze.ComputeFrozen(s.g)
		dead := freeze.IsDeadlock(s.g, frozen)
		cleared := !dead && s.corralCleared()
		proven := dead || (!cleared && s.dfs())
		s.g.UndoPush(u)

		if !proven {
			return false
		}
	}
	return true
}

// hasEscape reports whether any push affecting the corral is currently
// legal, used to decide the outcome when the node budget is exhausted
// without a solved subproblem: no escape move at all is itself a proof.
func (s *searcher) hasEscape() bool {
	return len(s.relevantPushes()) > 0
}

// corralCleared reports whether every cell of the original corral region is
// now resolved: either the pusher's reachable region has grown to cover it
// (the boundary box that walled it off moved out of the way), or a box has
// settled directly on a goal there (the cell's only remaining purpose was to
// host that box). A region cell left merely occupied by an off-goal box is
// not resolved; that box's own status is covered by the freeze check.
func (s *searcher) corralCleared() bool {
	reach := s.g.Reachable()
	cleared := true
	forEachSet(s.region, func(p bitset.Pos) {
		if reach.IsSet(p) {
			return
		}
		if s.g.Occ.IsSet(p) && s.g.B.At(p) == board.Goal {
			return
		}
		cleared = false
	})
	return cleared
}

// relevantPushes returns legal pushes of boxes currently inside the corral
// region or orthogonally adjacent to it: the only boxes whose movement can
// possibly affect this corral's solvability.
func (s *searcher) relevantPushes() []board.Move {
	moves := s.g.Pushes()
	var out []board.Move
	for i, p := range s.g.BoxPos {
		idx := bitset.BoxIdx(i)
		if !s.relevant(p) {
			continue
		}
		for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
			if moves.Has(idx, d) {
				out = append(out, board.Move{Box: idx, Dir: d})
			}
		}
	}
	return out
}

func (s *searcher) relevant(p bitset.Pos) bool {
	if s.region.IsSet(p) {
		return true
	}
	for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
		n, ok := p.Neighbor(d, s.g.B.Width, s.g.B.Height)
		if ok && s.region.IsSet(n) {
			return true
		}
	}
	return false
}

func forEachSet(b *bitset.Bitboard64, fn func(bitset.Pos)) {
	for y := 0; y < bitset.MaxBoard; y++ {
		row := b.Row(y)
		for row != 0 {
			x := bits.TrailingZeros64(row)
			fn(bitset.NewPos(x, y))
			row &^= uint64(1) << uint(x)
		}
	}
}
