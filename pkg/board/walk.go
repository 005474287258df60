package board

import "sisyphus/pkg/bitset"

// Walk returns the shortest sequence of plain pusher steps from one cell to
// another, without pushing any box, or false if no such path exists given
// the current box occupancy. The core never calls this itself: Solve
// returns pushes only, leaving walk materialization between them to a
// caller who wants the full move log.
func (g *Game) Walk(from, to bitset.Pos) ([]bitset.Dir, bool) {
	if from == to {
		return nil, true
	}

	type step struct {
		pos  bitset.Pos
		dir  bitset.Dir
		prev int
	}
	visited := bitset.NewLazyBitboard64(g.B.Height)
	trail := []step{{pos: from, prev: -1}}
	visited.Set(from)

	for i := 0; i < len(trail); i++ {
		cur := trail[i]
		if cur.pos == to {
			var dirs []bitset.Dir
			for j := i; trail[j].prev >= 0; j = trail[j].prev {
				dirs = append([]bitset.Dir{trail[j].dir}, dirs...)
			}
			return dirs, true
		}
		for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
			n, ok := cur.pos.Neighbor(d, g.B.Width, g.B.Height)
			if !ok || g.B.At(n) == Wall || g.boxAt(n) || visited.IsSet(n) {
				continue
			}
			visited.Set(n)
			trail = append(trail, step{pos: n, dir: d, prev: i})
		}
	}
	return nil, false
}
