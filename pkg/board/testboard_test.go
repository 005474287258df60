package board_test

import (
	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
)

// buildLiteral turns a small grid of XSB-style runes into a Board, for
// tests only. It is not the XSB parser named in the spec as out of scope
// (board.Source remains unimplemented); it exists purely so tests can
// express scenarios as literal grids instead of Go struct literals listing
// every cell by hand.
func buildLiteral(t interface{ Helper() }, rows []string, seed int64) *board.Board {
	t.Helper()

	height := len(rows)
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	cells := make([]board.Cell, width*height)
	var pusher bitset.Pos
	var boxes, goals []bitset.Pos

	for y, row := range rows {
		for x := 0; x < width; x++ {
			ch := byte(' ')
			if x < len(row) {
				ch = row[x]
			}
			p := bitset.NewPos(x, y)
			cell := board.Floor
			switch ch {
			case '#':
				cell = board.Wall
			case '.':
				cell = board.Goal
				goals = append(goals, p)
			case '$':
				boxes = append(boxes, p)
			case '*':
				cell = board.Goal
				goals = append(goals, p)
				boxes = append(boxes, p)
			case '@':
				pusher = p
			case '+':
				cell = board.Goal
				goals = append(goals, p)
				pusher = p
			}
			cells[y*width+x] = cell
		}
	}

	b, err := board.New(width, height, cells, pusher, boxes, goals, seed)
	if err != nil {
		panic(err) // test helper: caller passes known-good literals
	}
	return b
}
