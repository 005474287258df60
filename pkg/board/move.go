package board

import (
	"fmt"

	"sisyphus/pkg/bitset"
)

// Move is a single push or pull: which box, in which direction. The same
// type serves both directions; the Searcher's direction capability record
// decides how to apply/undo it.
type Move struct {
	Box bitset.BoxIdx
	Dir bitset.Dir
}

func (m Move) String() string {
	return fmt.Sprintf("box%v%v", m.Box, m.Dir)
}

// Moves is a bitset over up to 4*MaxBoxes (box, direction) pairs: one
// bitset.Boxes per direction, since a single uint64 cannot cover all four
// directions for 64 boxes at once.
type Moves struct {
	byDir [bitset.NumDirs]bitset.Boxes
}

func (m *Moves) Set(box bitset.BoxIdx, d bitset.Dir) {
	m.byDir[d] = m.byDir[d].Set(box)
}

func (m Moves) Has(box bitset.BoxIdx, d bitset.Dir) bool {
	return m.byDir[d].Has(box)
}

// Len returns the total number of (box, direction) pairs set.
func (m Moves) Len() int {
	n := 0
	for _, d := range m.byDir {
		n += d.PopCount()
	}
	return n
}

// Iterate calls fn for every move, direction-major then box-ascending.
func (m Moves) Iterate(fn func(Move)) {
	for d := bitset.Dir(0); d < bitset.NumDirs; d++ {
		m.byDir[d].Iterate(func(i bitset.BoxIdx) {
			fn(Move{Box: i, Dir: d})
		})
	}
}

// Undo carries the information needed to exactly reverse a Push or Pull:
// the box's previous position and the previous canonical pusher position.
// Both box-position and Zobrist-hash restoration are O(1) given this token.
type Undo struct {
	Box       bitset.BoxIdx
	OldBoxPos bitset.Pos
	OldPlayer bitset.Pos
}
