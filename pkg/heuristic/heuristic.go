// Package heuristic implements the lower-bound estimators the searcher
// uses to order and prune A* expansion: Null, Simple, Greedy and Hungarian,
// all built on per-goal push/pull distance tables computed once per board.
package heuristic

import (
	"math"

	"github.com/seekerror/stdlib/pkg/util/mathx"

	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
	"sisyphus/pkg/freeze"
	"sisyphus/pkg/hungarian"
)

// Kind selects a Heuristic strategy.
type Kind uint8

const (
	Null Kind = iota
	Simple
	Greedy
	Hungarian
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Simple:
		return "simple"
	case Greedy:
		return "greedy"
	case Hungarian:
		return "hungarian"
	default:
		return "?"
	}
}

// HungarianCutoff is the box count above which Hungarian transparently
// falls back to Simple. hungarian.MaxN (64) is only the hard cap the
// matcher's stack-allocated matrix can hold at all; recomputing an O(n^3)
// matching on every expanded node gets expensive well before that cap, so
// this cutoff sits much lower and is tuned for search throughput rather
// than the matcher's own ceiling.
const HungarianCutoff = 24

// Handle is a cached, direction-specific (push or pull) instance of a
// Heuristic strategy for one Board. Compute recomputes the lower bound only
// when the game's hash or its frozen-box set has changed since the last
// call.
type Handle struct {
	kind   Kind
	tables []*distTable // tables[goalIdx]
	goals  []bitset.Pos

	has        bool
	lastHash   board.ZobristHash
	lastFrozen bitset.Boxes
	lastValue  int
}

// NewPushHandle builds a cached handle for forward search.
func NewPushHandle(b *board.Board, kind Kind) *Handle {
	return &Handle{kind: kind, tables: newPushTables(b), goals: b.Goals}
}

// NewPullHandle builds a cached handle for reverse search.
func NewPullHandle(b *board.Board, kind Kind) *Handle {
	return &Handle{kind: kind, tables: newPullTables(b), goals: b.Goals}
}

// Compute returns the current lower bound on remaining pushes (or pulls)
// for g. Frozen boxes are computed internally, regardless of whether the
// caller's Searcher has freeze-deadlock pruning enabled, so that a
// non-goal frozen box always yields math.MaxInt rather than a silently
// inadmissible estimate. Callers must treat math.MaxInt as impossibility.
func (h *Handle) Compute(g *board.Game) int {
	frozen := freeze.ComputeFrozen(g)

	if h.has && h.lastHash == g.Hash && h.lastFrozen == frozen {
		return h.lastValue
	}

	v := h.computeFresh(g, frozen)

	h.has = true
	h.lastHash = g.Hash
	h.lastFrozen = frozen
	h.lastValue = v
	return v
}

func (h *Handle) computeFresh(g *board.Game, frozen bitset.Boxes) int {
	if freeze.IsDeadlock(g, frozen) {
		return math.MaxInt
	}

	switch h.kind {
	case Null:
		return 0
	case Simple:
		return h.simple(g, frozen)
	case Greedy:
		return h.greedy(g, frozen)
	case Hungarian:
		return h.hungarian(g, frozen)
	default:
		return h.simple(g, frozen)
	}
}

// covered returns the set of goal indices already occupied by a frozen box
// (necessarily on-goal, since a non-goal frozen box would have returned
// math.MaxInt above) and thus unavailable to match against any other box.
func (h *Handle) covered(g *board.Game, frozen bitset.Boxes) []bool {
	covered := make([]bool, len(h.goals))
	frozen.Iterate(func(idx bitset.BoxIdx) {
		p := g.BoxPos[idx]
		for gi, goal := range h.goals {
			if goal == p {
				covered[gi] = true
			}
		}
	})
	return covered
}

// minDist returns the smallest table distance from p to any uncovered
// goal, or infDist if none is reachable.
func (h *Handle) minDist(p bitset.Pos, covered []bool) int {
	best := infDist
	for gi, t := range h.tables {
		if covered[gi] {
			continue
		}
		if d := t.at(p); d < best {
			best = d
		}
	}
	return best
}

// simple sums, for each non-frozen box, the distance to its nearest
// uncovered goal. Admissible: each box must travel at least that far,
// independent of the others.
func (h *Handle) simple(g *board.Game, frozen bitset.Boxes) int {
	covered := h.covered(g, frozen)

	total := 0
	for i, p := range g.BoxPos {
		if frozen.Has(bitset.BoxIdx(i)) {
			continue
		}
		d := h.minDist(p, covered)
		if d >= infDist {
			return math.MaxInt
		}
		total += d
	}
	return total
}

// greedy assigns boxes to goals via a counting-sort bucketed greedy match:
// sort all (box, goal) distance triples, then walk them in increasing
// distance order, assigning the first unclaimed box to the first unclaimed
// goal it's paired with. Not admissible, but linear after the sort and
// fast enough to use as a move-ordering tiebreak on large levels.
func (h *Handle) greedy(g *board.Game, frozen bitset.Boxes) int {
	covered := h.covered(g, frozen)

	type triple struct {
		box, goal int
		dist      int
	}
	var triples []triple
	for i, p := range g.BoxPos {
		if frozen.Has(bitset.BoxIdx(i)) {
			continue
		}
		for gi, t := range h.tables {
			if covered[gi] {
				continue
			}
			if d := t.at(p); d < infDist {
				triples = append(triples, triple{box: i, goal: gi, dist: d})
			}
		}
	}
	maxDist := 0
	for _, tr := range triples {
		if tr.dist > maxDist {
			maxDist = tr.dist
		}
	}
	buckets := make([][]triple, maxDist+1)
	for _, tr := range triples {
		buckets[tr.dist] = append(buckets[tr.dist], tr)
	}
	triples = triples[:0]
	for _, bucket := range buckets {
		triples = append(triples, bucket...)
	}

	boxDone := make(map[int]bool)
	goalDone := make(map[int]bool)
	total := 0
	remaining := 0
	for i := range g.BoxPos {
		if !frozen.Has(bitset.BoxIdx(i)) {
			remaining++
		}
	}

	for _, tr := range triples {
		if boxDone[tr.box] || goalDone[tr.goal] {
			continue
		}
		boxDone[tr.box] = true
		goalDone[tr.goal] = true
		total += tr.dist
		remaining--
	}
	if remaining > 0 {
		return math.MaxInt // some non-frozen box has no reachable uncovered goal
	}
	return total
}

// hungarian computes the exact minimum-cost perfect matching between
// non-frozen boxes and uncovered goals. Admissible, and the default
// strategy. Falls back to Simple above HungarianCutoff boxes, where the
// O(n^3) matcher would be prohibitively slow.
func (h *Handle) hungarian(g *board.Game, frozen bitset.Boxes) int {
	covered := h.covered(g, frozen)

	var boxes []bitset.Pos
	for i, p := range g.BoxPos {
		if !frozen.Has(bitset.BoxIdx(i)) {
			boxes = append(boxes, p)
		}
	}
	var goals []int
	for gi := range h.goals {
		if !covered[gi] {
			goals = append(goals, gi)
		}
	}

	if len(boxes) != len(goals) {
		// Equal by construction (non-frozen boxes and uncovered goals are
		// always the same count, since frozen boxes sit on goals and both
		// started equal), but guard defensively against a malformed Game.
		return math.MaxInt
	}
	n := len(boxes)
	if n == 0 {
		return 0
	}
	if n > HungarianCutoff {
		return h.simple(g, frozen)
	}

	const inf = 1 << 20
	cost := func(i, j int) int {
		d := h.tables[goals[j]].at(boxes[i])
		return mathx.Min(d, inf)
	}
	assign := hungarian.Solve(n, cost)
	total := hungarian.Cost(n, cost, assign)
	if total >= inf {
		return math.MaxInt
	}
	return total
}
