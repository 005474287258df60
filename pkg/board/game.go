package board

import "sisyphus/pkg/bitset"

// Game is the mutable per-solve state: current box positions, their
// occupancy bitboard, the canonical pusher position, and the incrementally
// maintained Zobrist hash. A single Game is mutated in place during DFS
// expansion by a single Searcher; Undo tokens restore every field exactly.
type Game struct {
	B *Board

	BoxPos []bitset.Pos // index == BoxIdx
	Occ    bitset.Bitboard64

	PlayerPos bitset.Pos
	Hash      ZobristHash

	reach      *bitset.LazyBitboard64
	reachValid bool
}

// NewGame builds the initial mutable state for a level.
func NewGame(b *Board) *Game {
	g := &Game{
		B:      b,
		BoxPos: append([]bitset.Pos(nil), b.BoxStart...),
		reach:  bitset.NewLazyBitboard64(b.Height),
	}
	for _, p := range g.BoxPos {
		g.Occ.Set(p)
	}
	g.PlayerPos = g.canonicalize(b.PusherStart)
	g.Hash = b.ZT.Hash(g.BoxPos, g.PlayerPos)
	return g
}

// NewReverseRoot builds the synthetic goal state used to root reverse
// search: every box sits on a goal (box i on Goals[i]) and the pusher
// position is the SentinelPos, meaning any placement consistent with the
// solved box set is acceptable. The sentinel is replaced with a concrete
// canonical position by the first Pull applied to this Game.
func NewReverseRoot(b *Board) *Game {
	g := &Game{
		B:         b,
		BoxPos:    append([]bitset.Pos(nil), b.Goals...),
		PlayerPos: SentinelPos,
		reach:     bitset.NewLazyBitboard64(b.Height),
	}
	for _, p := range g.BoxPos {
		g.Occ.Set(p)
	}
	g.Hash = b.ZT.Hash(g.BoxPos, g.PlayerPos)
	return g
}

// Clone deep-copies the game state (used to seed an independent searcher,
// e.g. the reverse direction's root, without aliasing box-position slices).
func (g *Game) Clone() *Game {
	c := &Game{
		B:         g.B,
		BoxPos:    append([]bitset.Pos(nil), g.BoxPos...),
		Occ:       g.Occ,
		PlayerPos: g.PlayerPos,
		Hash:      g.Hash,
		reach:     bitset.NewLazyBitboard64(g.B.Height),
	}
	return c
}

// IsSolved reports whether every box sits on a goal cell.
func (g *Game) IsSolved() bool {
	for _, p := range g.BoxPos {
		if g.B.At(p) != Goal {
			return false
		}
	}
	return true
}

func (g *Game) boxAt(p bitset.Pos) bool {
	return g.Occ.IsSet(p)
}

// Reachable returns the set of cells the pusher can walk to from its
// current canonical position, without pushing any box. The result is
// memoized until invalidated by the next Push/Pull/UndoPush/UndoPull, so
// repeated calls to compute_pushes/compute_pulls and the corral analyzer
// share one flood fill per state.
func (g *Game) Reachable() *bitset.LazyBitboard64 {
	if g.reachValid {
		return g.reach
	}
	g.reach.Reset()
	if g.PlayerPos == SentinelPos {
		// The synthetic reverse root's pusher cell is unspecified and may
		// be any cell consistent with the solved box set: treat every
		// unoccupied, non-wall cell as reachable rather than restricting
		// to one connected component.
		g.markAllWalkable(g.reach)
	} else {
		g.floodFill(g.PlayerPos, g.reach)
	}
	g.reachValid = true
	return g.reach
}

func (g *Game) markAllWalkable(out *bitset.LazyBitboard64) {
	for y := 0; y < g.B.Height; y++ {
		for x := 0; x < g.B.Width; x++ {
			p := bitset.NewPos(x, y)
			if g.B.At(p) != Wall && !g.boxAt(p) {
				out.Set(p)
			}
		}
	}
}

func (g *Game) invalidateReachable() {
	g.reachValid = false
}

// floodFill walks every floor/goal cell reachable from seed without
// crossing a wall or a box, writing the visited set into out.
func (g *Game) floodFill(seed bitset.Pos, out *bitset.LazyBitboard64) {
	if seed == SentinelPos {
		return // unknown pusher position: callers use markAllWalkable instead.
	}
	if out.IsSet(seed) {
		return
	}
	queue := []bitset.Pos{seed}
	out.Set(seed)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
			n, ok := p.Neighbor(d, g.B.Width, g.B.Height)
			if !ok || g.B.At(n) == Wall || g.boxAt(n) || out.IsSet(n) {
				continue
			}
			out.Set(n)
			queue = append(queue, n)
		}
	}
}

// canonicalize returns the lexicographically smallest (y, x) cell reachable
// from actual, which is the equivalence-class representative used for the
// pusher component of the hash.
func (g *Game) canonicalize(actual bitset.Pos) bitset.Pos {
	if actual == SentinelPos {
		return SentinelPos
	}
	scratch := bitset.NewLazyBitboard64(g.B.Height)
	g.floodFill(actual, scratch)

	min := actual
	for y := 0; y < g.B.Height; y++ {
		for x := 0; x < g.B.Width; x++ {
			p := bitset.NewPos(x, y)
			if scratch.IsSet(p) && p < min {
				min = p
			}
		}
	}
	return min
}
