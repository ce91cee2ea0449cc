package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn(t *testing.T) {
	b := NewBoard()
	p := Spawn(&b, PieceT)
	// Spawn at (4, 20) then the initial soft drop.
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 19, p.Y)
	assert.Equal(t, uint8(0), p.R)
	assert.True(t, b.PieceFits(p))
}

func TestSpawnFitFail(t *testing.T) {
	b := NewBoard()
	b.Rows[20].Set(4, CellGarbage)
	b.Rows[20].Set(5, CellGarbage)
	b.recalcHeights()
	p := Spawn(&b, PieceT)
	assert.False(t, b.PieceFits(p), "blocked spawn must be reported for game over")
}

func TestShiftAndDrop(t *testing.T) {
	b := NewBoard()
	p := Spawn(&b, PieceJ)
	require.True(t, p.ShiftLeft(&b))
	assert.Equal(t, 3, p.X)
	require.True(t, p.ShiftRight(&b))
	require.True(t, p.ShiftRight(&b))
	assert.Equal(t, 5, p.X)
	require.True(t, p.SoftDrop(&b))
	assert.Equal(t, 18, p.Y)
	require.True(t, p.SonicDrop(&b))
	assert.Equal(t, 0, p.Y)
	assert.False(t, p.SoftDrop(&b))
}

func TestShiftBlockedAtWall(t *testing.T) {
	b := NewBoard()
	p := Spawn(&b, PieceO)
	for p.ShiftLeft(&b) {
	}
	assert.Equal(t, 0, p.X)
	assert.False(t, p.ShiftLeft(&b))
	for p.ShiftRight(&b) {
	}
	assert.Equal(t, 8, p.X)
}

func TestRotationUsesFirstFittingKick(t *testing.T) {
	b := NewBoard()
	p := Spawn(&b, PieceT)
	require.True(t, p.RotateRight(&b))
	// In open air the first kick of the JLSTZ table is the null offset.
	assert.Equal(t, uint8(1), p.R)
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 19, p.Y)
	require.True(t, p.RotateLeft(&b))
	assert.Equal(t, uint8(0), p.R)
}

func TestRotationFailsWhenNoKickFits(t *testing.T) {
	// Box the I piece into a flat 1x4 slot: no rotation can fit.
	b := NewBoard()
	b.Rows[1] = fullRow
	b.Rows[0] = rowExcept(3, 4, 5, 6)
	b.recalcHeights()
	p := Piece{Kind: PieceI, X: 4, Y: 0}
	require.True(t, b.PieceFits(p))
	assert.False(t, p.RotateRight(&b))
	assert.False(t, p.RotateLeft(&b))
	assert.Equal(t, uint8(0), p.R)
}

func TestMotionClearsTspin(t *testing.T) {
	b := NewBoard()
	p := Spawn(&b, PieceT)
	p.Tspin = TspinFull
	require.True(t, p.ShiftLeft(&b))
	assert.Equal(t, TspinNone, p.Tspin)
}

// tspinSingleBoard builds a notch where a T at (1,1) rotated from R1 to
// R2 lands with three corners filled.
func tspinSingleBoard(frontRight bool) Board {
	b := NewBoard()
	if frontRight {
		b.Rows[0] = rowExcept(1)
	} else {
		b.Rows[0] = rowExcept(1, 2)
		b.Rows[2].Set(2, CellGarbage)
	}
	b.Rows[1] = rowExcept(0, 1, 2)
	b.Rows[2].Set(0, CellGarbage)
	b.recalcHeights()
	return b
}

func TestTspinClassification(t *testing.T) {
	t.Run("full with both front corners", func(t *testing.T) {
		b := tspinSingleBoard(true)
		p := Piece{Kind: PieceT, X: 1, Y: 1, R: 1}
		require.True(t, b.PieceFits(p))
		require.True(t, p.RotateRight(&b))
		assert.Equal(t, uint8(2), p.R)
		assert.Equal(t, 1, p.X)
		assert.Equal(t, 1, p.Y)
		assert.Equal(t, TspinFull, p.Tspin)

		res := b.LockPiece(p)
		assert.Equal(t, int32(2), res.LinesCleared)
		assert.True(t, b.B2B)
	})

	t.Run("mini with one front corner", func(t *testing.T) {
		b := tspinSingleBoard(false)
		p := Piece{Kind: PieceT, X: 1, Y: 1, R: 1}
		require.True(t, b.PieceFits(p))
		require.True(t, p.RotateRight(&b))
		assert.Equal(t, TspinMini, p.Tspin)
	})

	t.Run("no spin with two corners", func(t *testing.T) {
		b := NewBoard()
		b.Rows[0] = rowExcept(1)
		b.Rows[1] = rowExcept(0, 1, 2)
		b.recalcHeights()
		p := Piece{Kind: PieceT, X: 1, Y: 1, R: 1}
		require.True(t, p.RotateRight(&b))
		assert.Equal(t, TspinNone, p.Tspin)
	})

	t.Run("non-T never spins", func(t *testing.T) {
		b := tspinSingleBoard(true)
		p := Piece{Kind: PieceJ, X: 4, Y: 10}
		require.True(t, p.RotateRight(&b))
		assert.Equal(t, TspinNone, p.Tspin)
	})
}

// tstBoard is a T-spin triple tower: the shaft at columns 2-3 feeds the
// last (fifth) kick of a clockwise rotation into the slot at (1,1).
func tstBoard() Board {
	b := NewBoard()
	b.Rows[0] = rowExcept(1)
	b.Rows[1] = rowExcept(1, 2)
	b.Rows[2] = rowExcept(1)
	b.Rows[4].Set(1, CellGarbage)
	b.recalcHeights()
	return b
}

func TestTspinTriple(t *testing.T) {
	b := tstBoard()
	p := Spawn(&b, PieceT)

	require.True(t, p.ShiftLeft(&b))
	require.True(t, p.SonicDrop(&b))
	require.Equal(t, Piece{Kind: PieceT, X: 3, Y: 3}, p)
	require.True(t, p.ShiftLeft(&b))
	require.True(t, p.RotateRight(&b))

	assert.Equal(t, Piece{Kind: PieceT, X: 1, Y: 1, R: 1, Tspin: TspinFull}, p)

	res := b.LockPiece(p)
	assert.Equal(t, int32(3), res.LinesCleared)
	assert.False(t, res.B2BBonus, "first qualifying clear carries no bonus")
	assert.True(t, b.B2B)
}
