package pqueue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sisyphus/pkg/board"
	"sisyphus/pkg/pqueue"
)

func TestPopOrdersByAscendingF(t *testing.T) {
	q := pqueue.New()
	q.Push(pqueue.Item{Hash: 3, G: 0, F: 5})
	q.Push(pqueue.Item{Hash: 1, G: 0, F: 1})
	q.Push(pqueue.Item{Hash: 2, G: 0, F: 3})

	var order []board.ZobristHash
	for q.Len() > 0 {
		it, ok := q.Pop()
		assert.True(t, ok)
		order = append(order, it.Hash)
	}
	assert.Equal(t, []board.ZobristHash{1, 2, 3}, order)
}

func TestEqualFTieBreaksTowardLargerG(t *testing.T) {
	q := pqueue.New()
	q.Push(pqueue.Item{Hash: 10, G: 1, F: 5})
	q.Push(pqueue.Item{Hash: 20, G: 3, F: 5})
	q.Push(pqueue.Item{Hash: 30, G: 2, F: 5})

	first, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint64(20), uint64(first.Hash), "larger g wins the tie")

	second, _ := q.Pop()
	assert.Equal(t, uint64(30), uint64(second.Hash))

	third, _ := q.Pop()
	assert.Equal(t, uint64(10), uint64(third.Hash))
}

func TestPopOnEmptyQueueReturnsFalse(t *testing.T) {
	q := pqueue.New()
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestPeakLenTracksHighWaterMark(t *testing.T) {
	q := pqueue.New()
	q.Push(pqueue.Item{Hash: 1, F: 1})
	q.Push(pqueue.Item{Hash: 2, F: 2})
	q.Push(pqueue.Item{Hash: 3, F: 3})
	assert.Equal(t, 3, q.PeakLen())

	q.Pop()
	q.Pop()
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 3, q.PeakLen(), "peak doesn't shrink when items are popped")

	q.Push(pqueue.Item{Hash: 4, F: 4})
	assert.Equal(t, 3, q.PeakLen(), "still below the earlier high-water mark")
}
