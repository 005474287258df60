package corral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
	"sisyphus/pkg/corral"
)

func build(t *testing.T, rows []string, seed int64) *board.Board {
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
	require.NoError(t, err)
	return b
}

func TestNoAdjacentUnreachableCellIsNotDeadlock(t *testing.T) {
	b := build(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 1)
	g := board.NewGame(b)

	// Pushing the box straight onto the goal leaves no unreachable cell
	// bordering it at all, so there is no corral to analyze.
	var applied board.Move
	g.Pushes().Iterate(func(m board.Move) { applied = m })
	g.Push(applied)

	assert.False(t, corral.IsDeadlock(g, applied.Box, corral.DefaultMaxNodes))
}

func TestSinglePushClearingCorralIsNotDeadlock(t *testing.T) {
	// The cell east of the box is walled off on every other side, so it is
	// unreachable and forms a one-cell corral. But it is also the goal, and
	// the corral's one legal move (pushing the box onto it) immediately
	// resolves the corral, so the DFS's first branch already finds an
	// escape.
	b := build(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 2)
	g := board.NewGame(b)

	assert.False(t, corral.IsDeadlock(g, 0, corral.DefaultMaxNodes))
}

func TestCorralThatForcesAMutualFreezeIsDeadlock(t *testing.T) {
	// Box 0 sits in the only doorway into a one-cell corral; pushing it in
	// is the corral's one legal move, but the corral already holds box 1,
	// itself permanently wedged against the east wall. Box 0 entering the
	// corral cell wedges it against box 1 in turn, freezing both off-goal.
	b := build(t, []string{
		"########",
		"#..@$ $#",
		"########",
	}, 3)
	g := board.NewGame(b)

	assert.True(t, corral.IsDeadlock(g, 0, corral.DefaultMaxNodes))
}

func TestOneNodeBudgetAlreadyProvesThisCorralDead(t *testing.T) {
	// The corral has exactly one legal move (push box 0 east), and that
	// single expansion already freeze-deadlocks. No recursion needed, so
	// a budget of 1 is already enough to settle it.
	b := build(t, []string{
		"########",
		"#..@$ $#",
		"########",
	}, 4)
	g := board.NewGame(b)

	assert.True(t, corral.IsDeadlock(g, 0, 1))
}
