package board

import (
	"math/rand"

	"sisyphus/pkg/bitset"
)

// ZobristHash is a 64-bit state fingerprint: the XOR of per-box-position
// keys and a per-canonical-pusher-position key. See also:
// https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

const numCells = bitset.MaxBoard * bitset.MaxBoard

// sentinelSlot is the player-key index used for the reverse search's
// synthetic goal state, whose pusher cell is deliberately unspecified.
// It is one past the last real board cell, so it never collides with a
// genuine Pos.
const sentinelSlot = numCells

// SentinelPos is a pusher position that does not correspond to any real
// cell. It represents "any pusher placement consistent with the solved
// box set is acceptable" for the synthetic reverse root.
const SentinelPos bitset.Pos = bitset.Pos(0xffff)

// ZobristTable is a pseudo-randomized table for computing a Game hash.
type ZobristTable struct {
	box    [bitset.MaxBoxes][numCells]uint64
	player [numCells + 1]uint64 // +1 for the sentinel slot
}

// NewZobristTable builds a table from the given seed. The same seed always
// produces the same table, so hashes are reproducible across runs of the
// same process but not required to be stable across builds.
func NewZobristTable(seed int64) *ZobristTable {
	z := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for i := 0; i < bitset.MaxBoxes; i++ {
		for p := 0; p < numCells; p++ {
			z.box[i][p] = r.Uint64()
		}
	}
	for p := 0; p <= numCells; p++ {
		z.player[p] = r.Uint64()
	}
	return z
}

func (z *ZobristTable) boxKey(i bitset.BoxIdx, p bitset.Pos) ZobristHash {
	return ZobristHash(z.box[i][p])
}

func (z *ZobristTable) playerKey(p bitset.Pos) ZobristHash {
	if p == SentinelPos {
		return ZobristHash(z.player[sentinelSlot])
	}
	return ZobristHash(z.player[p])
}

// Hash computes the hash from scratch for the given box positions and
// canonical pusher position. Used to build the initial Game hash and, in
// tests, to check the incrementally maintained hash against a from-scratch
// recomputation.
func (z *ZobristTable) Hash(boxPos []bitset.Pos, canonicalPlayer bitset.Pos) ZobristHash {
	var h ZobristHash
	for i, p := range boxPos {
		h ^= z.boxKey(bitset.BoxIdx(i), p)
	}
	h ^= z.playerKey(canonicalPlayer)
	return h
}
