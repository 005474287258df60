package search

import (
	"context"
	"math"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"sisyphus/pkg/board"
	"sisyphus/pkg/corral"
	"sisyphus/pkg/freeze"
	"sisyphus/pkg/pqueue"
)

// Options toggles the pruning layers a Searcher applies on top of plain
// bounded-A* expansion.
type Options struct {
	FreezeDeadlocks bool
	// DeadSquares is always on and cannot be disabled here: board.New
	// computes the push/pull dead masks once at construction time and
	// Game.Pushes/Pulls always filter destinations against them, so a
	// Board never hands the Searcher a dead-square move to consider in
	// the first place. The field is kept so every entry in the config
	// table has a matching Options field, not because setting it to
	// false has any effect.
	DeadSquares      bool
	PiCorrals        bool
	DeadlockMaxNodes int
}

// Outcome is the result kind a Step/Run call returns.
type Outcome uint8

const (
	Solved Outcome = iota
	Cutoff
	Impossible
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Cutoff:
		return "cutoff"
	case Impossible:
		return "impossible"
	default:
		return "unknown"
	}
}

// Result reports what one Step call produced.
type Result struct {
	Outcome Outcome

	// Path is set iff Outcome == Solved: the sequence of moves from root to
	// the goal (or, for a bidirectional meeting, from root to the meeting
	// state only; the Solver stitches the two halves together).
	Path []board.Move

	// NextT is the smallest frontier f seen above the threshold, the next
	// iterative-deepening bound to retry with. Meaningless unless
	// Outcome == Cutoff.
	NextT int

	// QuotaExhausted is true when Cutoff was returned because Step's node
	// quota ran out or ctx was cancelled, not because the frontier's
	// minimum f exceeded t. The
	// Solver should resume this Searcher at the same threshold rather than
	// raising it.
	QuotaExhausted bool

	// Meet is true when Solved was produced by discovering this searcher's
	// frontier hash already present in an opposite-direction table, rather
	// than by reaching this direction's own goal predicate.
	Meet     bool
	MeetHash board.ZobristHash

	Nodes int
}

// Searcher runs bounded-A* over one direction (forward push search, or
// reverse pull search) from a fixed root. It owns a priority queue and a
// transposition table for the lifetime of one iterative-deepening
// threshold: Reset seeds both from root, Step expands up to a node quota at
// a time so a Solver can interleave two Searchers, and a new threshold
// requires a fresh Reset.
type Searcher struct {
	dir  Direction
	opts Options

	root *board.Game
	pq   *pqueue.Queue
	tt   TranspositionTable
}

// New builds a Searcher for one direction. Call Reset before the first Step.
func New(dir Direction, opts Options) *Searcher {
	return &Searcher{dir: dir, opts: opts}
}

// TT exposes the searcher's transposition table, read by the Solver both
// for path reconstruction and as the opposite-direction cross-check table
// handed to the other Searcher.
func (s *Searcher) TT() TranspositionTable {
	return s.tt
}

func (s *Searcher) PeakQueueLen() int {
	if s.pq == nil {
		return 0
	}
	return s.pq.PeakLen()
}

// Reset discards any prior frontier and seeds a fresh one from root. Called
// once per iterative-deepening threshold, never mid-threshold.
func (s *Searcher) Reset(root *board.Game, ttSizeHint uint64) {
	s.root = root
	s.pq = pqueue.New()
	s.tt = NewTranspositionTable(ttSizeHint)

	h0 := s.dir.Heuristic.Compute(root)
	s.tt.Write(root.Hash, Entry{G: 0})
	s.pq.Push(pqueue.Item{Hash: root.Hash, G: 0, F: h0})
}

// Step expands up to quota frontier nodes at threshold t, checking opposite
// (if non-nil) after every pop for a bidirectional meeting point. It
// resumes exactly where the previous Step left off: the pq and tt persist
// across calls within one Reset.
func (s *Searcher) Step(ctx context.Context, t, quota int, opposite TranspositionTable) Result {
	expanded := 0
	for {
		if contextx.IsCancelled(ctx) {
			return Result{Outcome: Cutoff, NextT: t, QuotaExhausted: true, Nodes: expanded}
		}
		if expanded >= quota {
			return Result{Outcome: Cutoff, NextT: t, QuotaExhausted: true, Nodes: expanded}
		}

		it, ok := s.pq.Pop()
		if !ok {
			return Result{Outcome: Impossible, Nodes: expanded}
		}

		entry, _ := s.tt.Read(it.Hash)
		if it.G > entry.G {
			continue // stale: a cheaper path to this hash was recorded after it was queued
		}
		if it.F > t {
			return Result{Outcome: Cutoff, NextT: it.F, Nodes: expanded}
		}

		g := s.replay(it.Hash)
		expanded++

		if s.dir.Goal(g) {
			return Result{Outcome: Solved, Path: s.reconstructPath(it.Hash), Nodes: expanded}
		}
		if opposite != nil && opposite.Contains(it.Hash) {
			return Result{Outcome: Solved, Path: s.reconstructPath(it.Hash), Meet: true, MeetHash: it.Hash, Nodes: expanded}
		}

		s.expand(g, it)
	}
}

func (s *Searcher) expand(g *board.Game, it pqueue.Item) {
	moves := s.dir.Moves(g)
	moves.Iterate(func(m board.Move) {
		u := s.dir.Apply(g, m)
		newHash := g.Hash
		newG := it.G + 1

		admit := true
		if existing, found := s.tt.Read(newHash); found && existing.G <= newG {
			admit = false
		}
		if admit && s.opts.FreezeDeadlocks {
			frozen := freeze.ComputeFrozen(g)
			if freeze.IsDeadlock(g, frozen) {
				admit = false
			}
		}
		if admit && s.opts.PiCorrals {
			maxNodes := s.opts.DeadlockMaxNodes
			if maxNodes <= 0 {
				maxNodes = corral.DefaultMaxNodes
			}
			if corral.IsDeadlock(g, m.Box, maxNodes) {
				admit = false
			}
		}

		var hp int
		if admit {
			hp = s.dir.Heuristic.Compute(g)
			if hp >= math.MaxInt {
				admit = false
			}
		}
		if admit {
			s.tt.Write(newHash, Entry{Parent: it.Hash, HasParent: true, Move: m, G: newG})
			s.pq.Push(pqueue.Item{Hash: newHash, G: newG, F: newG + hp})
		}

		s.dir.Undo(g, u)
	})
}

// PathTo reconstructs this searcher's own path from its root to hash, for a
// Solver stitching together the two halves of a bidirectional meeting.
func (s *Searcher) PathTo(hash board.ZobristHash) []board.Move {
	return s.reconstructPath(hash)
}

// reconstructPath walks the transposition table's parent chain from hash
// back to the root, returning the moves in root-to-hash order.
func (s *Searcher) reconstructPath(hash board.ZobristHash) []board.Move {
	var moves []board.Move
	for {
		e, ok := s.tt.Read(hash)
		if !ok || !e.HasParent {
			break
		}
		moves = append(moves, e.Move)
		hash = e.Parent
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// replay rebuilds the Game at hash by cloning root and re-applying the path
// the transposition table recorded to reach it. The Searcher keeps no
// single mutated Game threaded across arbitrary frontier pops, since the
// open list can return nodes in any order; each pop pays an O(depth)
// replay instead.
func (s *Searcher) replay(hash board.ZobristHash) *board.Game {
	g := s.root.Clone()
	for _, m := range s.reconstructPath(hash) {
		s.dir.Apply(g, m)
	}
	return g
}
