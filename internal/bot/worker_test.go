package bot

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourwide/tetrion/internal/board"
	"github.com/fourwide/tetrion/internal/pathfind"
)

func newTestHandle(bd board.Board, queue []board.PieceKind) *Handle {
	eval := DefaultEvaluator()
	h := NewHandle(bd, &eval, DefaultSettings(), zerolog.Nop())
	h.Reset(bd, queue)
	return h
}

func TestWorkerMoveFlow(t *testing.T) {
	bd := board.NewBoard()
	queue := []board.PieceKind{board.PieceL, board.PieceJ, board.PieceO}
	h := newTestHandle(bd, queue)
	defer h.Close()

	h.BeginThinking()
	time.Sleep(50 * time.Millisecond)
	mv, ok := h.NextMove()
	require.True(t, ok)
	require.NotNil(t, mv)
	assert.Positive(t, mv.Thinks)
	assert.Positive(t, mv.Elapsed)

	// The path replays onto the board the move was computed for.
	p := board.Spawn(&bd, mv.Piece.Kind)
	for _, step := range mv.Path {
		switch step {
		case pathfind.Left:
			p.ShiftLeft(&bd)
		case pathfind.Right:
			p.ShiftRight(&bd)
		case pathfind.RotLeft:
			p.RotateLeft(&bd)
		case pathfind.RotRight:
			p.RotateRight(&bd)
		case pathfind.SonicDrop:
			p.SonicDrop(&bd)
		}
	}
	p.SonicDrop(&bd)
	assert.Equal(t, mv.Piece.Cells(), p.Cells())
}

func TestWorkerNoMoveOnBlockedBoard(t *testing.T) {
	bd := board.NewBoard()
	// Wall off the spawn area completely.
	for y := 18; y < 23; y++ {
		bd.Rows[y] = board.BitRow(0b1111111111)
	}
	h := newTestHandle(bd, []board.PieceKind{board.PieceT})
	defer h.Close()

	h.BeginThinking()
	time.Sleep(10 * time.Millisecond)
	mv, ok := h.NextMove()
	require.True(t, ok)
	assert.Nil(t, mv)
}

func TestWorkerCommandsInOrder(t *testing.T) {
	bd := board.NewBoard()
	h := newTestHandle(bd, nil)
	defer h.Close()

	// Reset then pieces: indices must match send order, so the first
	// committed move is the first piece sent.
	h.Reset(bd, nil)
	h.AddPiece(board.PieceO)
	h.AddPiece(board.PieceI)
	h.BeginThinking()
	time.Sleep(20 * time.Millisecond)
	mv, ok := h.NextMove()
	require.True(t, ok)
	require.NotNil(t, mv)
	if !mv.UsesHold {
		assert.Equal(t, board.PieceO, mv.Piece.Kind)
	} else {
		assert.Equal(t, board.PieceI, mv.Piece.Kind)
	}
}

func TestWorkerConsecutiveMoves(t *testing.T) {
	bd := board.NewBoard()
	queue := []board.PieceKind{board.PieceL, board.PieceJ, board.PieceO, board.PieceS, board.PieceZ}
	h := newTestHandle(bd, queue)
	defer h.Close()

	for i := 0; i < 2; i++ {
		h.BeginThinking()
		time.Sleep(20 * time.Millisecond)
		mv, ok := h.NextMove()
		require.True(t, ok)
		require.NotNil(t, mv)
		bd.LockPiece(mv.Piece)
	}
}

func TestWorkerCloseStopsGoroutine(t *testing.T) {
	h := newTestHandle(board.NewBoard(), []board.PieceKind{board.PieceT})
	h.BeginThinking()
	h.Close()
	// The reply channel closes once the worker drains the command
	// channel and exits.
	_, ok := <-h.moves
	assert.False(t, ok)
}
