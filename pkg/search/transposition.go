// Package search implements the bounded-A* Searcher that a Solver drives
// through iterative deepening: a single f-threshold-limited expansion of
// the priority queue, writing discovered states into a transposition table
// for both duplicate pruning and solution-path reconstruction.
package search

import (
	"math/bits"

	"sisyphus/pkg/board"
)

// Entry is one transposition table record: the path cost to reach Hash, and
// enough of the parent link (Parent, Move) to walk the solution back to the
// root. HasParent is false only for the root entry.
type Entry struct {
	Parent    board.ZobristHash
	HasParent bool
	Move      board.Move
	G         int
}

// TranspositionTable records, for every hash the Searcher has reached, the
// cheapest known path to it. Unlike morlock's probabilistic, lossy
// TranspositionTable (github.com/herohde/morlock/pkg/search/transposition.go),
// this one must never lose an entry a correct solve depends on: collisions
// on distinct hashes are resolved by open addressing rather than overwritten.
// Equal hashes are treated as the same state, an accepted 64-bit collision
// risk.
type TranspositionTable interface {
	// Read returns the entry for hash, if present.
	Read(hash board.ZobristHash) (Entry, bool)
	// Write stores e for hash if no entry exists yet or the existing one has
	// a strictly greater G. Returns true if the table was updated.
	Write(hash board.ZobristHash, e Entry) bool
	// Contains reports whether hash has ever been written, regardless of G.
	// Used for bidirectional frontier-intersection checks.
	Contains(hash board.ZobristHash) bool

	Size() uint64
	Used() float64
}

type keyedEntry struct {
	hash  board.ZobristHash
	entry Entry
	valid bool
}

// table is an open-addressed TranspositionTable, linear-probed, growing by
// doubling (and rehashing) once it crosses a 0.75 load factor. Sized in
// powers of two via the same bit trick morlock's NewTranspositionTable uses
// to turn a byte budget into a slot count, adapted here from a fixed byte
// budget to an initial slot-count hint.
type table struct {
	slots []keyedEntry
	mask  uint64
	used  uint64
}

// NewTranspositionTable allocates a table of at least minSlots slots (and at
// least 16), rounded up to the next power of two. It grows once more than
// three quarters of those slots are in use.
func NewTranspositionTable(minSlots uint64) TranspositionTable {
	if minSlots < 16 {
		minSlots = 16
	}
	n := nextPow2(minSlots)
	return &table{
		slots: make([]keyedEntry, n),
		mask:  n - 1,
	}
}

func nextPow2(n uint64) uint64 {
	if n&(n-1) == 0 {
		return n
	}
	return uint64(1) << (64 - bits.LeadingZeros64(n))
}

func (t *table) Size() uint64 {
	return uint64(len(t.slots)) * 40 // hash + parent + move + g + bools, rounded
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.slots))
}

func (t *table) find(hash board.ZobristHash) int {
	idx := uint64(hash) & t.mask
	for {
		s := &t.slots[idx]
		if !s.valid || s.hash == hash {
			return int(idx)
		}
		idx = (idx + 1) & t.mask
	}
}

func (t *table) Read(hash board.ZobristHash) (Entry, bool) {
	idx := t.find(hash)
	s := &t.slots[idx]
	if !s.valid {
		return Entry{}, false
	}
	return s.entry, true
}

func (t *table) Contains(hash board.ZobristHash) bool {
	_, ok := t.Read(hash)
	return ok
}

func (t *table) Write(hash board.ZobristHash, e Entry) bool {
	idx := t.find(hash)
	s := &t.slots[idx]
	if s.valid && s.entry.G <= e.G {
		return false
	}
	if !s.valid {
		t.used++
	}
	s.valid = true
	s.hash = hash
	s.entry = e

	if float64(t.used)/float64(len(t.slots)) > 0.75 {
		t.grow()
	}
	return true
}

func (t *table) grow() {
	old := t.slots
	n := uint64(len(old)) * 2
	t.slots = make([]keyedEntry, n)
	t.mask = n - 1
	t.used = 0
	for _, s := range old {
		if s.valid {
			idx := t.find(s.hash)
			t.slots[idx] = s
			t.used++
		}
	}
}
