package solve

import "sisyphus/pkg/board"

// Status is the closed sum type a Solve call resolves to.
type Status uint8

const (
	// Solved: Moves holds a push sequence that solves the level.
	Solved Status = iota
	// Cutoff: the node budget was exhausted before solving or proving
	// impossibility. Non-fatal: a caller may retry with a larger
	// MaxNodes.
	Cutoff
	// Impossible: the entire reachable state space (under the given
	// deadlock-pruning flags) was exhausted without reaching a goal.
	// Fatal for this level: no larger MaxNodes will help.
	Impossible
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Cutoff:
		return "cutoff"
	case Impossible:
		return "impossible"
	default:
		return "?"
	}
}

// Stats reports how a solve went: nodes expanded, peak heap size, plus a
// per-direction breakdown and final threshold(s) when the solve used more
// than one searcher.
type Stats struct {
	Iterations int

	ForwardNodes int
	ReverseNodes int // zero unless Direction is Reverse or Bidirectional

	PeakQueueLen int // max(forward, reverse) peak frontier size

	ForwardThreshold int
	ReverseThreshold int // zero unless Direction is Reverse or Bidirectional

	TTUsed float64 // load factor of the searcher's table (the forward one when bidirectional)
}

func (s Stats) nodes() int {
	return s.ForwardNodes + s.ReverseNodes
}

// SolveResult is the output of one Solve call.
type SolveResult struct {
	Status Status
	Moves  []board.Move // non-nil only when Status == Solved
	Stats  Stats
}
