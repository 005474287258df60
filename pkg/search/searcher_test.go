package search_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
	"sisyphus/pkg/heuristic"
	"sisyphus/pkg/search"
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

func TestStepSolvesAOnePushLevelAtItsOwnHeuristicThreshold(t *testing.T) {
	b := build(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 1)
	g := board.NewGame(b)

	h := heuristic.NewPushHandle(b, heuristic.Simple)
	t0 := h.Compute(g)
	require.Equal(t, 1, t0)

	s := search.New(search.Forward(h), search.Options{})
	s.Reset(g, 16)

	res := s.Step(context.Background(), t0, 1000, nil)
	assert.Equal(t, search.Solved, res.Outcome)
	require.Len(t, res.Path, 1)
	assert.Equal(t, bitset.East, res.Path[0].Dir)
}

func TestStepReportsCutoffWhenThresholdIsBelowTheRootHeuristic(t *testing.T) {
	b := build(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 2)
	g := board.NewGame(b)

	h := heuristic.NewPushHandle(b, heuristic.Simple)
	s := search.New(search.Forward(h), search.Options{})
	s.Reset(g, 16)

	res := s.Step(context.Background(), 0, 1000, nil)
	assert.Equal(t, search.Cutoff, res.Outcome)
	assert.Equal(t, 1, res.NextT)
	assert.False(t, res.QuotaExhausted)
}

func TestStepReportsQuotaExhaustedWithoutConsumingTheFrontier(t *testing.T) {
	b := build(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 3)
	g := board.NewGame(b)

	h := heuristic.NewPushHandle(b, heuristic.Simple)
	s := search.New(search.Forward(h), search.Options{})
	s.Reset(g, 16)

	res := s.Step(context.Background(), 10, 0, nil)
	assert.Equal(t, search.Cutoff, res.Outcome)
	assert.True(t, res.QuotaExhausted)
	assert.Equal(t, 0, res.Nodes)

	// The frontier is untouched; a later Step with the same Reset can still
	// find the solution.
	res = s.Step(context.Background(), 10, 1000, nil)
	assert.Equal(t, search.Solved, res.Outcome)
}

func TestStepReportsImpossibleWhenTheGoalIsUnreachable(t *testing.T) {
	// Column 4 walls off rows 1-3, sealing the goal into its own room with
	// no door back to the box's room: no push sequence can ever reach it.
	b := build(t, []string{
		"#########",
		"#@$ #   #",
		"#   #   #",
		"#   # . #",
		"#########",
	}, 4)
	g := board.NewGame(b)

	h := heuristic.NewPushHandle(b, heuristic.Simple)
	s := search.New(search.Forward(h), search.Options{})
	s.Reset(g, 16)

	res := s.Step(context.Background(), math.MaxInt, 1000, nil)
	assert.Equal(t, search.Impossible, res.Outcome)
}

func TestFreezeDeadlockPruningSkipsAStateThatOtherwisePassesLower(t *testing.T) {
	// Two boxes side by side below an open top row. Pushing either box up
	// into the top row freezes it against the wall off-goal; freeze pruning
	// rejects that state as soon as it is generated, while without pruning
	// it is rejected only by the heuristic's own math.MaxInt (just useless).
	b := build(t, []string{
		"######",
		"#    #",
		"#@$$.#",
		"#.   #",
		"######",
	}, 5)
	g := board.NewGame(b)

	h := heuristic.NewPushHandle(b, heuristic.Simple)
	pruned := search.New(search.Forward(h), search.Options{FreezeDeadlocks: true})
	pruned.Reset(g, 16)

	unpruned := search.New(search.Forward(h), search.Options{})
	unpruned.Reset(g, 16)

	// Both must still find a solution; pruning must never exclude a
	// genuinely solvable path, only dead branches.
	rp := pruned.Step(context.Background(), 1<<20, 100000, nil)
	ru := unpruned.Step(context.Background(), 1<<20, 100000, nil)
	assert.Equal(t, search.Solved, rp.Outcome)
	assert.Equal(t, search.Solved, ru.Outcome)
}

func TestOppositeTableCrossCheckReportsAMeeting(t *testing.T) {
	b := build(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 6)
	g := board.NewGame(b)
	rg := board.NewReverseRoot(b)

	fh := heuristic.NewPushHandle(b, heuristic.Simple)
	rh := heuristic.NewPullHandle(b, heuristic.Simple)

	fwd := search.New(search.Forward(fh), search.Options{})
	fwd.Reset(g, 16)
	rev := search.New(search.Reverse(rh, g.Hash), search.Options{})
	rev.Reset(rg, 16)

	// Run the reverse searcher first so its table already contains the
	// shared hash when forward checks against it.
	rr := rev.Step(context.Background(), 1<<20, 100000, nil)
	require.NotEqual(t, search.Impossible, rr.Outcome)

	fr := fwd.Step(context.Background(), 1<<20, 100000, rev.TT())
	assert.Equal(t, search.Solved, fr.Outcome)
}
