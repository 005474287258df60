package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisyphus/pkg/bitset"
	"sisyphus/pkg/board"
)

func TestNewValidation(t *testing.T) {
	t.Run("rejects oversize board", func(t *testing.T) {
		_, err := board.New(65, 1, make([]board.Cell, 65), 0, nil, nil, 1)
		assert.Error(t, err)
	})

	t.Run("rejects mismatched box and goal counts", func(t *testing.T) {
		cells := []board.Cell{board.Floor, board.Floor, board.Floor}
		_, err := board.New(3, 1, cells, 0, []bitset.Pos{bitset.NewPos(0, 0)}, nil, 1)
		assert.Error(t, err)
	})

	t.Run("rejects wrong cell count", func(t *testing.T) {
		_, err := board.New(3, 1, []board.Cell{board.Floor}, 0, nil, nil, 1)
		assert.Error(t, err)
	})
}

func TestBuildLiteralRoundTrip(t *testing.T) {
	b := buildLiteral(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 1)

	require.Equal(t, 5, b.Width)
	require.Equal(t, 3, b.Height)
	require.Equal(t, 1, b.NumBoxes())
	require.Len(t, b.Goals, 1)
}

func TestAlreadySolved(t *testing.T) {
	b := buildLiteral(t, []string{
		"###",
		"#*#",
		"#@#",
		"###",
	}, 2)

	g := board.NewGame(b)
	assert.True(t, g.IsSolved())
}

func TestOnePushSolves(t *testing.T) {
	b := buildLiteral(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 3)

	g := board.NewGame(b)
	assert.False(t, g.IsSolved())

	pushes := g.Pushes()
	assert.Equal(t, 1, pushes.Len())

	var applied board.Move
	pushes.Iterate(func(m board.Move) { applied = m })

	g.Push(applied)
	assert.True(t, g.IsSolved())
}

func TestPushUndoRestoresExactly(t *testing.T) {
	b := buildLiteral(t, []string{
		"#######",
		"#  $  #",
		"#  .  #",
		"#  @  #",
		"#######",
	}, 4)

	g := board.NewGame(b)
	before := snapshot(g)

	moves := g.Pushes()
	require.True(t, moves.Len() > 0)

	var m board.Move
	moves.Iterate(func(mv board.Move) { m = mv })

	u := g.Push(m)
	assert.NotEqual(t, before.hash, g.Hash, "state must change after a push")

	g.UndoPush(u)
	after := snapshot(g)

	assert.Equal(t, before, after)
}

func TestPullIsInversePushUnderOppositeDirection(t *testing.T) {
	b := buildLiteral(t, []string{
		"#######",
		"#     #",
		"#  $  #",
		"#  +  #",
		"#     #",
		"#######",
	}, 5)

	fwd := board.NewGame(b)
	rev := board.NewGame(b)

	var m board.Move
	fwd.Pushes().Iterate(func(mv board.Move) { m = mv })

	fwd.Push(m)

	// Replaying the same push on rev, then pulling the box back in the
	// opposite direction, must restore the original state.
	rev.Push(m)
	pullMove := board.Move{Box: m.Box, Dir: m.Dir.Opposite()}

	pulls := rev.Pulls()
	assert.True(t, pulls.Has(pullMove.Box, pullMove.Dir), "inverse pull must be legal")

	rev.Pull(pullMove)

	orig := board.NewGame(b)
	assert.Equal(t, orig.Hash, rev.Hash)
	assert.Equal(t, orig.BoxPos, rev.BoxPos)
	assert.Equal(t, orig.PlayerPos, rev.PlayerPos)
}

func TestUnreachableBoxIsImpossible(t *testing.T) {
	b := buildLiteral(t, []string{
		"######",
		"#@#$.#",
		"######",
	}, 6)

	g := board.NewGame(b)
	moves := g.Pushes()
	assert.Equal(t, 0, moves.Len(), "pusher walled off from the box: no legal pushes")
}

func TestFreezeCornerHasNoEscapingPush(t *testing.T) {
	// Box wedged into a non-goal corner with walls on both axes: every push
	// direction is blocked by a wall or by the pusher being unable to reach
	// the standing cell.
	b := buildLiteral(t, []string{
		"#####",
		"#$  #",
		"# @.#",
		"#####",
	}, 7)

	g := board.NewGame(b)
	moves := g.Pushes()
	assert.Equal(t, 0, moves.Len())
}

func TestZobristFromScratchMatchesIncremental(t *testing.T) {
	b := buildLiteral(t, []string{
		"#######",
		"#     #",
		"# $ $ #",
		"#  @  #",
		"#  .. #",
		"#######",
	}, 8)

	g := board.NewGame(b)
	moves := g.Pushes()
	require.True(t, moves.Len() > 0)

	var applied board.Move
	moves.Iterate(func(m board.Move) { applied = m })
	g.Push(applied)

	scratch := b.ZT.Hash(g.BoxPos, g.PlayerPos)
	assert.Equal(t, scratch, g.Hash)
}

func TestReplayReproducesSolvedState(t *testing.T) {
	b := buildLiteral(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 9)

	g := board.NewGame(b)
	var applied board.Move
	g.Pushes().Iterate(func(m board.Move) { applied = m })

	replayed, err := board.Replay(b, []board.Move{applied})
	require.NoError(t, err)
	assert.True(t, replayed.IsSolved())
}

func TestReplayRejectsIllegalMove(t *testing.T) {
	b := buildLiteral(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}, 10)

	_, err := board.Replay(b, []board.Move{{Box: 0, Dir: bitset.North}})
	assert.Error(t, err)
}

type gameSnapshot struct {
	hash      board.ZobristHash
	boxes     string
	playerPos string
}

func snapshot(g *board.Game) gameSnapshot {
	s := gameSnapshot{hash: g.Hash, playerPos: g.PlayerPos.String()}
	for _, p := range g.BoxPos {
		s.boxes += p.String()
	}
	return s
}
