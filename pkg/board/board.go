// Package board contains the Sokoban board model: static level geometry
// (Board), mutable per-solve state (Game), move generation, and the
// Zobrist hashing used to canonicalize and memoize states.
package board

import (
	"fmt"

	"sisyphus/pkg/bitset"
)

// Cell is the static terrain of one board position.
type Cell uint8

const (
	Wall Cell = iota
	Floor
	Goal
)

// Board is immutable level geometry, built once per level: the grid of
// cells, the pusher's starting position, the fixed box-index assignment,
// and the dead-square masks used to prune unsolvable pushes/pulls.
type Board struct {
	Width, Height int

	cells [bitset.MaxBoard * bitset.MaxBoard]Cell

	PusherStart bitset.Pos
	BoxStart    []bitset.Pos // index == BoxIdx, fixed for the solve's lifetime
	Goals       []bitset.Pos

	// PushDeadMask holds cells from which no push sequence can move a box
	// to a goal; PullDeadMask is the analogous mask for pull/reverse search.
	PushDeadMask bitset.Bitboard64
	PullDeadMask bitset.Bitboard64

	ZT *ZobristTable
}

// At returns the static terrain at p. Cells outside [0,Width)x[0,Height)
// are Wall.
func (b *Board) At(p bitset.Pos) Cell {
	if p.X() >= b.Width || p.Y() >= b.Height {
		return Wall
	}
	return b.cells[p]
}

// NumBoxes returns the fixed number of boxes for this level.
func (b *Board) NumBoxes() int {
	return len(b.BoxStart)
}

// New validates and builds a Board from caller-supplied geometry. cells
// must be len(Width*Height), row-major (y*Width+x). Construction is the
// only place dead-square analysis runs; Board is read-only afterwards.
//
// Parsing an on-disk level (e.g. the XSB format) into these arguments is
// out of scope for this package; see Source.
func New(width, height int, cells []Cell, pusher bitset.Pos, boxes, goals []bitset.Pos, seed int64) (*Board, error) {
	if width < 1 || width > bitset.MaxBoard {
		return nil, fmt.Errorf("board: width %v out of [1,%v]", width, bitset.MaxBoard)
	}
	if height < 1 || height > bitset.MaxBoard {
		return nil, fmt.Errorf("board: height %v out of [1,%v]", height, bitset.MaxBoard)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("board: got %v cells, want %v", len(cells), width*height)
	}
	if len(boxes) != len(goals) {
		return nil, fmt.Errorf("board: %v boxes but %v goals", len(boxes), len(goals))
	}
	if len(boxes) > bitset.MaxBoxes {
		return nil, fmt.Errorf("board: %v boxes exceeds max %v", len(boxes), bitset.MaxBoxes)
	}

	b := &Board{
		Width:       width,
		Height:      height,
		PusherStart: pusher,
		BoxStart:    append([]bitset.Pos(nil), boxes...),
		Goals:       append([]bitset.Pos(nil), goals...),
		ZT:          NewZobristTable(seed),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.cells[bitset.NewPos(x, y)] = cells[y*width+x]
		}
	}

	b.PushDeadMask = computePushDeadMask(b)
	b.PullDeadMask = computePullDeadMask(b)
	return b, nil
}

// Source is the external collaborator that produces Board values from an
// on-disk level representation (e.g. XSB). It is specified here only as
// an interface: no implementation lives in this module. Parsing XSB text,
// the CLI front-end and console rendering are out of scope (see spec).
type Source interface {
	// Parse reads a level and returns a ready-to-solve Board.
	Parse() (*Board, error)
}
