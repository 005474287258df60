package board

import "fmt"

// Replay applies a solved push sequence to a fresh Game built from b and
// reports any illegal move as a plain error, never a panic. Callers use
// this to verify that a SolveResult actually reproduces the solved state;
// Game.Push itself does not check that a move is legal.
func Replay(b *Board, pushes []Move) (*Game, error) {
	g := NewGame(b)
	for i, m := range pushes {
		if !isLegalPush(g, m) {
			return nil, fmt.Errorf("board: replay: illegal push %v at step %v", m, i)
		}
		g.Push(m)
	}
	return g, nil
}

func isLegalPush(g *Game, m Move) bool {
	legal := false
	g.Pushes().Iterate(func(candidate Move) {
		if candidate == m {
			legal = true
		}
	})
	return legal
}
