package board

import "sisyphus/pkg/bitset"

// Pushes returns every legal push from the current state: for each box and
// direction, the destination must be on-board, non-wall, unoccupied and
// not dead-for-push, and the pusher must be able to reach the standing
// cell opposite the push direction without pushing any box.
func (g *Game) Pushes() Moves {
	var moves Moves
	reach := g.Reachable()

	for i, p := range g.BoxPos {
		box := bitset.BoxIdx(i)
		for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
			dest, ok := p.Neighbor(d, g.B.Width, g.B.Height)
			if !ok || g.B.At(dest) == Wall || g.boxAt(dest) || g.B.PushDeadMask.IsSet(dest) {
				continue
			}
			stand, ok := p.Neighbor(d.Opposite(), g.B.Width, g.B.Height)
			if !ok || g.B.At(stand) == Wall || g.boxAt(stand) {
				continue
			}
			if !reach.IsSet(stand) {
				continue
			}
			moves.Set(box, d)
		}
	}
	return moves
}

// Pulls is the reverse-search analog of Pushes: the box moves in direction
// d from p to p.Neighbor(d), the pusher must currently be able to reach
// p.Neighbor(d) (the "far side"), and the cell two steps away in direction
// d must be on-board, non-wall and unoccupied for the pusher to land on.
func (g *Game) Pulls() Moves {
	var moves Moves
	reach := g.Reachable()

	for i, p := range g.BoxPos {
		box := bitset.BoxIdx(i)
		for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
			dest, ok := p.Neighbor(d, g.B.Width, g.B.Height)
			if !ok || g.B.At(dest) == Wall || g.boxAt(dest) || g.B.PullDeadMask.IsSet(dest) {
				continue
			}
			if !reach.IsSet(dest) {
				continue
			}
			landing, ok := dest.Neighbor(d, g.B.Width, g.B.Height)
			if !ok || g.B.At(landing) == Wall || g.boxAt(landing) {
				continue
			}
			moves.Set(box, d)
		}
	}
	return moves
}

// Push applies a push move in place and returns an Undo token.
func (g *Game) Push(m Move) Undo {
	old := g.BoxPos[m.Box]
	dest, _ := old.Neighbor(m.Dir, g.B.Width, g.B.Height)
	oldPlayer := g.PlayerPos

	g.Hash ^= g.B.ZT.boxKey(m.Box, old)
	g.Occ.Clear(old)
	g.BoxPos[m.Box] = dest
	g.Occ.Set(dest)
	g.Hash ^= g.B.ZT.boxKey(m.Box, dest)

	g.invalidateReachable()
	newPlayer := g.canonicalize(old) // pusher moves into the box's old cell
	g.Hash ^= g.B.ZT.playerKey(oldPlayer)
	g.PlayerPos = newPlayer
	g.Hash ^= g.B.ZT.playerKey(newPlayer)
	g.invalidateReachable()

	return Undo{Box: m.Box, OldBoxPos: old, OldPlayer: oldPlayer}
}

// UndoPush reverses a Push applied via u, restoring box position, occupancy,
// canonical pusher position and hash exactly.
func (g *Game) UndoPush(u Undo) {
	cur := g.BoxPos[u.Box]

	g.Hash ^= g.B.ZT.boxKey(u.Box, cur)
	g.Occ.Clear(cur)
	g.BoxPos[u.Box] = u.OldBoxPos
	g.Occ.Set(u.OldBoxPos)
	g.Hash ^= g.B.ZT.boxKey(u.Box, u.OldBoxPos)

	g.Hash ^= g.B.ZT.playerKey(g.PlayerPos)
	g.PlayerPos = u.OldPlayer
	g.Hash ^= g.B.ZT.playerKey(g.PlayerPos)

	g.invalidateReachable()
}

// Pull applies a pull move in place and returns an Undo token.
func (g *Game) Pull(m Move) Undo {
	old := g.BoxPos[m.Box]
	dest, _ := old.Neighbor(m.Dir, g.B.Width, g.B.Height)
	landing, _ := dest.Neighbor(m.Dir, g.B.Width, g.B.Height)
	oldPlayer := g.PlayerPos

	g.Hash ^= g.B.ZT.boxKey(m.Box, old)
	g.Occ.Clear(old)
	g.BoxPos[m.Box] = dest
	g.Occ.Set(dest)
	g.Hash ^= g.B.ZT.boxKey(m.Box, dest)

	g.invalidateReachable()
	newPlayer := g.canonicalize(landing)
	g.Hash ^= g.B.ZT.playerKey(oldPlayer)
	g.PlayerPos = newPlayer
	g.Hash ^= g.B.ZT.playerKey(newPlayer)
	g.invalidateReachable()

	return Undo{Box: m.Box, OldBoxPos: old, OldPlayer: oldPlayer}
}

// UndoPull reverses a Pull applied via u.
func (g *Game) UndoPull(u Undo) {
	g.UndoPush(u) // the restoration logic is identical to UndoPush.
}
