// Package solve implements the Solver: the iterative-deepening driver that
// raises a bounded-A* Searcher's threshold until a level is solved, proved
// impossible, or a node budget runs out, optionally interleaving a forward
// and a reverse Searcher and detecting when their frontiers meet.
package solve

import (
	"github.com/seekerror/build"
	"github.com/seekerror/stdlib/pkg/lang"

	"sisyphus/pkg/corral"
	"sisyphus/pkg/heuristic"
)

// Version stamps this package the way herohde-morlock/pkg/engine.version
// stamps the engine.
var Version = build.NewVersion(0, 1, 0)

// Direction selects which Searcher(s) a Solve call runs.
type Direction uint8

const (
	// DirectionForward runs only a push searcher from the level's start.
	// The default: always optimal for an admissible heuristic.
	DirectionForward Direction = iota
	// DirectionReverse runs only a pull searcher from the synthetic goal
	// state, matching against the real start by hash.
	DirectionReverse
	// DirectionBidirectional interleaves both and may return a solution
	// as soon as their frontiers meet. Known non-optimal: A* with a
	// non-BFS expansion order can join paths that are not jointly
	// shortest. Callers who need an optimal solution must use
	// DirectionForward.
	DirectionBidirectional
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionReverse:
		return "reverse"
	case DirectionBidirectional:
		return "bidirectional"
	default:
		return "?"
	}
}

// DefaultMaxNodes is the total node budget across all searchers, spanning
// every iterative-deepening threshold.
const DefaultMaxNodes = 5_000_000

// DefaultQuota is how many nodes each side of a bidirectional solve
// expands before control hands off to the other direction.
const DefaultQuota = 1000

// Options configures one Solve call.
type Options struct {
	Heuristic heuristic.Kind
	Direction Direction

	// MaxNodes is the total node budget across every searcher and every
	// iterative-deepening threshold. Zero means DefaultMaxNodes.
	MaxNodes int

	// Quota is the node slice each direction runs before handing control
	// to the other, under DirectionBidirectional. Zero means
	// DefaultQuota. Unused otherwise.
	Quota int

	FreezeDeadlocks bool
	DeadSquares     bool
	PiCorrals       bool

	// DeadlockMaxNodes overrides corral.DefaultMaxNodes when set.
	DeadlockMaxNodes lang.Optional[int]
}

func (o Options) maxNodes() int {
	if o.MaxNodes <= 0 {
		return DefaultMaxNodes
	}
	return o.MaxNodes
}

func (o Options) quota() int {
	if o.Quota <= 0 {
		return DefaultQuota
	}
	return o.Quota
}

func (o Options) deadlockMaxNodes() int {
	if v, ok := o.DeadlockMaxNodes.V(); ok && v > 0 {
		return v
	}
	return corral.DefaultMaxNodes
}
