package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sisyphus/pkg/board"
	"sisyphus/pkg/search"
)

func TestReadOnEmptyTableReturnsFalse(t *testing.T) {
	tt := search.NewTranspositionTable(16)
	_, ok := tt.Read(board.ZobristHash(42))
	assert.False(t, ok)
	assert.False(t, tt.Contains(board.ZobristHash(42)))
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	tt := search.NewTranspositionTable(16)
	e := search.Entry{Parent: 1, HasParent: true, G: 3}
	assert.True(t, tt.Write(board.ZobristHash(7), e))

	got, ok := tt.Read(board.ZobristHash(7))
	assert.True(t, ok)
	assert.Equal(t, e, got)
	assert.True(t, tt.Contains(board.ZobristHash(7)))
}

func TestWriteRefusesToOverwriteWithAWorseOrEqualPath(t *testing.T) {
	tt := search.NewTranspositionTable(16)
	assert.True(t, tt.Write(board.ZobristHash(9), search.Entry{G: 2}))

	assert.False(t, tt.Write(board.ZobristHash(9), search.Entry{G: 2}), "equal cost doesn't replace the recorded path")
	assert.False(t, tt.Write(board.ZobristHash(9), search.Entry{G: 5}), "worse cost doesn't replace the recorded path")

	got, _ := tt.Read(board.ZobristHash(9))
	assert.Equal(t, 2, got.G)

	assert.True(t, tt.Write(board.ZobristHash(9), search.Entry{G: 1}), "cheaper path overwrites")
	got, _ = tt.Read(board.ZobristHash(9))
	assert.Equal(t, 1, got.G)
}

func TestDistinctHashesThatCollideOnTheSameSlotBothSurvive(t *testing.T) {
	// A table with 16 slots masks on the low 4 bits; these two hashes
	// collide on slot 0 and must both be retrievable via open-addressed
	// probing rather than one clobbering the other.
	tt := search.NewTranspositionTable(16)
	a, b := board.ZobristHash(16), board.ZobristHash(32)

	assert.True(t, tt.Write(a, search.Entry{G: 1}))
	assert.True(t, tt.Write(b, search.Entry{G: 2}))

	gotA, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, 1, gotA.G)

	gotB, ok := tt.Read(b)
	assert.True(t, ok)
	assert.Equal(t, 2, gotB.G)
}

func TestTableGrowsPastTheLoadFactorWithoutLosingEntries(t *testing.T) {
	tt := search.NewTranspositionTable(16)
	for i := 0; i < 64; i++ {
		tt.Write(board.ZobristHash(i), search.Entry{G: i})
	}
	for i := 0; i < 64; i++ {
		got, ok := tt.Read(board.ZobristHash(i))
		assert.True(t, ok, "entry %d should survive growth", i)
		assert.Equal(t, i, got.G)
	}
	assert.Less(t, tt.Used(), 0.76)
}

func TestSizeScalesWithSlotCount(t *testing.T) {
	small := search.NewTranspositionTable(16)
	large := search.NewTranspositionTable(1024)
	assert.Less(t, small.Size(), large.Size())
}
