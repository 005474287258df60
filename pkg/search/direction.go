package search

import (
	"sisyphus/pkg/board"
	"sisyphus/pkg/heuristic"
)

// Direction is the capability record that makes Searcher generic over
// forward (push) and reverse (pull) search, the same shape as morlock's
// Exploration/Selection function records in pkg/search/exploration.go and
// pkg/search/selection.go.
type Direction struct {
	Moves func(g *board.Game) board.Moves
	Apply func(g *board.Game, m board.Move) board.Undo
	Undo  func(g *board.Game, u board.Undo)
	Goal  func(g *board.Game) bool

	Heuristic *heuristic.Handle
}

// Forward builds the push-direction capability record: the searcher's goal
// predicate is the ordinary solved check.
func Forward(h *heuristic.Handle) Direction {
	return Direction{
		Moves:     func(g *board.Game) board.Moves { return g.Pushes() },
		Apply:     func(g *board.Game, m board.Move) board.Undo { return g.Push(m) },
		Undo:      func(g *board.Game, u board.Undo) { g.UndoPush(u) },
		Goal:      func(g *board.Game) bool { return g.IsSolved() },
		Heuristic: h,
	}
}

// Reverse builds the pull-direction capability record. rootHash is the
// hash of the original forward root; reverse search's goal predicate is
// "this state's hash equals the real starting position", since the
// synthetic reverse root (board.NewReverseRoot) represents every box
// already on a goal with the pusher position left as a sentinel. There is
// no structural "solved" check to run in reverse, only a hash match against
// where forward search began.
func Reverse(h *heuristic.Handle, rootHash board.ZobristHash) Direction {
	return Direction{
		Moves:     func(g *board.Game) board.Moves { return g.Pulls() },
		Apply:     func(g *board.Game, m board.Move) board.Undo { return g.Pull(m) },
		Undo:      func(g *board.Game, u board.Undo) { g.UndoPull(u) },
		Goal:      func(g *board.Game) bool { return g.Hash == rootHash },
		Heuristic: h,
	}
}
