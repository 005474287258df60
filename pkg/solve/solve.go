package solve

import (
	"context"

	"github.com/seekerror/logw"

	"sisyphus/pkg/board"
	"sisyphus/pkg/heuristic"
	"sisyphus/pkg/search"
)

// Solver drives one or two Searchers over a fixed Board to solve it. A
// Solver is single-use: build one per Solve call (it holds no state
// between calls).
type Solver struct {
	b    *board.Board
	opts Options
}

// New builds a Solver for b under opts.
func New(b *board.Board, opts Options) *Solver {
	return &Solver{b: b, opts: opts}
}

// Solve runs the configured search to completion (Solved/Impossible) or
// until the node budget is exhausted (Cutoff). ctx is checked cooperatively
// between expansions the same way board.Game.Push is never itself
// cancellable. The node budget, not ctx, is the core's primary
// cancellation primitive; ctx layers a caller's own deadline on top.
func (s *Solver) Solve(ctx context.Context) SolveResult {
	logw.Infof(ctx, "solving %vx%v board, %v boxes: direction=%v heuristic=%v max_nodes=%v",
		s.b.Width, s.b.Height, s.b.NumBoxes(), s.opts.Direction, s.opts.Heuristic, s.opts.maxNodes())

	switch s.opts.Direction {
	case DirectionReverse:
		return s.solveSingle(ctx, search.Reverse(heuristic.NewPullHandle(s.b, s.opts.Heuristic), s.forwardRootHash()), board.NewReverseRoot(s.b), true)
	case DirectionBidirectional:
		return s.solveBidirectional(ctx)
	default:
		return s.solveSingle(ctx, search.Forward(heuristic.NewPushHandle(s.b, s.opts.Heuristic)), board.NewGame(s.b), false)
	}
}

func (s *Solver) forwardRootHash() board.ZobristHash {
	return board.NewGame(s.b).Hash
}

func (s *Solver) searcherOptions() search.Options {
	return search.Options{
		FreezeDeadlocks:  s.opts.FreezeDeadlocks,
		DeadSquares:      s.opts.DeadSquares,
		PiCorrals:        s.opts.PiCorrals,
		DeadlockMaxNodes: s.opts.deadlockMaxNodes(),
	}
}

// solveSingle runs plain iterative deepening with one Searcher, either
// forward from the real start or reverse from the synthetic goal; reversed
// is only relevant for logging.
func (s *Solver) solveSingle(ctx context.Context, dir search.Direction, root *board.Game, reversed bool) SolveResult {
	sr := search.New(dir, s.searcherOptions())

	t := dir.Heuristic.Compute(root)
	budget := s.opts.maxNodes()
	iterations := 0
	totalNodes := 0

	for budget > 0 {
		sr.Reset(root, ttSizeHint(s.b))
		iterations++
		logw.Debugf(ctx, "iteration %v: threshold=%v budget_remaining=%v reversed=%v", iterations, t, budget, reversed)

		res := sr.Step(ctx, t, budget, nil)
		budget -= res.Nodes
		totalNodes += res.Nodes

		switch res.Outcome {
		case search.Solved:
			moves := res.Path
			if reversed {
				moves = invert(moves)
			}
			return SolveResult{
				Status: Solved,
				Moves:  moves,
				Stats:  s.singleStats(iterations, totalNodes, t, reversed, sr),
			}
		case search.Impossible:
			logw.Infof(ctx, "proved impossible after %v iterations, %v nodes", iterations, totalNodes)
			return SolveResult{Status: Impossible, Stats: s.singleStats(iterations, totalNodes, t, reversed, sr)}
		case search.Cutoff:
			if res.QuotaExhausted {
				logw.Warningf(ctx, "node budget exhausted at threshold=%v", t)
				return SolveResult{Status: Cutoff, Stats: s.singleStats(iterations, totalNodes, t, reversed, sr)}
			}
			t = res.NextT
		}
	}

	logw.Warningf(ctx, "node budget exhausted before reaching threshold=%v", t)
	return SolveResult{Status: Cutoff, Stats: s.singleStats(iterations, totalNodes, t, reversed, sr)}
}

func (s *Solver) singleStats(iterations, nodes, t int, reversed bool, sr *search.Searcher) Stats {
	used := float64(0)
	if tt := sr.TT(); tt != nil {
		used = tt.Used()
	}
	stats := Stats{
		Iterations:   iterations,
		PeakQueueLen: sr.PeakQueueLen(),
		TTUsed:       used,
	}
	if reversed {
		stats.ReverseNodes = nodes
		stats.ReverseThreshold = t
	} else {
		stats.ForwardNodes = nodes
		stats.ForwardThreshold = t
	}
	return stats
}

// solveBidirectional interleaves a forward and a reverse Searcher, each
// deepening its own threshold independently. If one side proves Impossible
// it is retired permanently and the other continues alone; the combined
// result is Impossible only once both have.
func (s *Solver) solveBidirectional(ctx context.Context) SolveResult {
	fh := heuristic.NewPushHandle(s.b, s.opts.Heuristic)
	rootHash := board.NewGame(s.b).Hash
	rh := heuristic.NewPullHandle(s.b, s.opts.Heuristic)

	root := board.NewGame(s.b)
	rroot := board.NewReverseRoot(s.b)

	fwd := search.New(search.Forward(fh), s.searcherOptions())
	rev := search.New(search.Reverse(rh, rootHash), s.searcherOptions())

	tf := fh.Compute(root)
	tr := rh.Compute(rroot)
	budget := s.opts.maxNodes()
	quota := s.opts.quota()

	var fwdImpossible, revImpossible bool
	var fwdNodes, revNodes int
	iterations := 0

	for budget > 0 && !(fwdImpossible && revImpossible) {
		if !fwdImpossible {
			fwd.Reset(root, ttSizeHint(s.b))
		}
		if !revImpossible {
			rev.Reset(rroot, ttSizeHint(s.b))
		}
		iterations++
		logw.Debugf(ctx, "bidirectional iteration %v: forward_t=%v reverse_t=%v budget_remaining=%v", iterations, tf, tr, budget)

		fwdDone, revDone := fwdImpossible, revImpossible
		for budget > 0 && !(fwdDone && revDone) {
			if !fwdDone {
				q := min(quota, budget)
				fr := fwd.Step(ctx, tf, q, rev.TT())
				budget -= fr.Nodes
				fwdNodes += fr.Nodes

				switch fr.Outcome {
				case search.Solved:
					var tail []board.Move
					if fr.Meet {
						tail = invert(rev.PathTo(fr.MeetHash))
					}
					return SolveResult{
						Status: Solved,
						Moves:  append(append([]board.Move(nil), fr.Path...), tail...),
						Stats:  s.bidiStats(iterations, fwdNodes, revNodes, tf, tr, fwd, rev),
					}
				case search.Impossible:
					fwdImpossible, fwdDone = true, true
				case search.Cutoff:
					if fr.QuotaExhausted {
						// shares the combined budget with reverse; just
						// loop back and let the outer budget check stop us.
					} else {
						tf, fwdDone = fr.NextT, true
					}
				}
			}
			if budget <= 0 {
				break
			}
			if !revDone {
				q := min(quota, budget)
				rr := rev.Step(ctx, tr, q, fwd.TT())
				budget -= rr.Nodes
				revNodes += rr.Nodes

				switch rr.Outcome {
				case search.Solved:
					var prefix []board.Move
					if rr.Meet {
						prefix = fwd.PathTo(rr.MeetHash)
					}
					return SolveResult{
						Status: Solved,
						Moves:  append(append([]board.Move(nil), prefix...), invert(rr.Path)...),
						Stats:  s.bidiStats(iterations, fwdNodes, revNodes, tf, tr, fwd, rev),
					}
				case search.Impossible:
					revImpossible, revDone = true, true
				case search.Cutoff:
					if rr.QuotaExhausted {
					} else {
						tr, revDone = rr.NextT, true
					}
				}
			}
		}
	}

	if fwdImpossible && revImpossible {
		logw.Infof(ctx, "proved impossible in both directions after %v iterations", iterations)
		return SolveResult{Status: Impossible, Stats: s.bidiStats(iterations, fwdNodes, revNodes, tf, tr, fwd, rev)}
	}
	logw.Warningf(ctx, "combined node budget exhausted at forward_t=%v reverse_t=%v", tf, tr)
	return SolveResult{Status: Cutoff, Stats: s.bidiStats(iterations, fwdNodes, revNodes, tf, tr, fwd, rev)}
}

func (s *Solver) bidiStats(iterations, fwdNodes, revNodes, tf, tr int, fwd, rev *search.Searcher) Stats {
	peak := fwd.PeakQueueLen()
	if p := rev.PeakQueueLen(); p > peak {
		peak = p
	}
	used := float64(0)
	if tt := fwd.TT(); tt != nil {
		used = tt.Used()
	}
	return Stats{
		Iterations:       iterations,
		ForwardNodes:     fwdNodes,
		ReverseNodes:     revNodes,
		PeakQueueLen:     peak,
		ForwardThreshold: tf,
		ReverseThreshold: tr,
		TTUsed:           used,
	}
}

// invert turns a reverse-search pull path into the forward push sequence
// it corresponds to: board/movegen.go's Pull(box, d) moves a box the same
// cell Push(box, d) would, but from the opposite side of the push the pull
// undoes, so recovering the forward sequence requires both reversing the
// move order and flipping each direction to its opposite.
func invert(pulls []board.Move) []board.Move {
	out := make([]board.Move, len(pulls))
	for i, m := range pulls {
		out[len(pulls)-1-i] = board.Move{Box: m.Box, Dir: m.Dir.Opposite()}
	}
	return out
}

// ttSizeHint picks an initial transposition table size proportional to the
// board, so small levels don't pay for the default growth-from-16 ladder
// and large ones don't over-allocate either.
func ttSizeHint(b *board.Board) uint64 {
	cells := uint64(b.Width) * uint64(b.Height)
	if cells < 64 {
		return 64
	}
	return cells * 4
}
