// Package board implements the guideline playfield: SRS piece geometry,
// the 10x40 occupancy grid with combo and back-to-back bookkeeping, piece
// movement with T-spin classification, and the 7-bag piece queue.
package board

// LockResult reports the outcome of locking a piece.
type LockResult struct {
	LinesCleared int32
	Combo        int32
	B2BBonus     bool
	BlockOut     bool
}

// Board is the compressed playfield used by the search. Rows are indexed
// bottom-up; rows 0-19 are the visible playfield and 20-39 the buffer
// where pieces spawn. Board is a value type: assignment snapshots it.
type Board struct {
	Rows    [40]BitRow
	Heights [10]int32
	Hold    PieceKind
	Combo   int32
	B2B     bool
}

// NewBoard returns an empty board with no held piece.
func NewBoard() Board {
	return Board{Hold: PieceNone}
}

// Occupied reports whether the cell at (x, y) is occupied. Reads outside
// the board are Solid and count as occupied.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || x >= 10 || y < 0 || y >= 40 {
		return true
	}
	return b.Rows[y]&(1<<x) != 0
}

// PieceFits reports whether all four cells of p are empty and in bounds.
func (b *Board) PieceFits(p Piece) bool {
	for _, c := range p.Cells() {
		if b.Occupied(c[0], c[1]) {
			return false
		}
	}
	return true
}

// LockPiece writes p's cells into the grid, clears filled rows keeping
// the relative order of survivors, and updates the column heights, combo
// counter and back-to-back flag. A block-out is reported when every cell
// of p locked inside the buffer zone.
func (b *Board) LockPiece(p Piece) LockResult {
	blockOut := true
	for _, c := range p.Cells() {
		b.Rows[c[1]].Set(c[0], p.Kind.Cell())
		if c[1] < 20 {
			blockOut = false
		}
		if b.Heights[c[0]] < int32(c[1])+1 {
			b.Heights[c[0]] = int32(c[1]) + 1
		}
	}

	var cleared int32
	for y := 0; y < 40; y++ {
		if b.Rows[y].Filled() {
			cleared++
		} else if cleared > 0 {
			b.Rows[y-int(cleared)] = b.Rows[y]
		}
	}
	if cleared > 0 {
		for y := 40 - int(cleared); y < 40; y++ {
			b.Rows[y] = 0
		}
		b.recalcHeights()
	}

	bonus := false
	if cleared > 0 {
		b.Combo++
		qualifies := cleared == 4 || p.Tspin != TspinNone
		bonus = qualifies && b.B2B
		b.B2B = qualifies
	} else {
		b.Combo = 0
	}

	return LockResult{
		LinesCleared: cleared,
		Combo:        b.Combo,
		B2BBonus:     bonus,
		BlockOut:     blockOut,
	}
}

// AddGarbage shifts the playfield up by one row per entry and inserts a
// garbage row at the bottom whose only empty column is the entry. It
// reports whether any pre-existing filled cell was pushed past the top.
func (b *Board) AddGarbage(holes []int) bool {
	topOut := false
	for _, hole := range holes {
		if b.Rows[39] != 0 {
			topOut = true
		}
		copy(b.Rows[1:], b.Rows[:39])
		b.Rows[0] = fullRow &^ (1 << hole)
	}
	if len(holes) > 0 {
		b.recalcHeights()
	}
	return topOut
}

// HoldSwap exchanges the hold slot with the current kind. The second
// return is false when the slot was empty, in which case the caller must
// draw the next queue piece instead.
func (b *Board) HoldSwap(current PieceKind) (PieceKind, bool) {
	prev := b.Hold
	b.Hold = current
	if prev == PieceNone {
		return PieceNone, false
	}
	return prev, true
}

// Snapshot returns a value copy suitable for handing to a worker.
func (b *Board) Snapshot() Board {
	return *b
}

func (b *Board) recalcHeights() {
	for x := 0; x < 10; x++ {
		b.Heights[x] = 0
		for y := 39; y >= 0; y-- {
			if b.Rows[y]&(1<<x) != 0 {
				b.Heights[x] = int32(y) + 1
				break
			}
		}
	}
}

// ColorBoard is the per-cell colored playfield kept by a renderer. It is
// never consumed by the search directly; Snapshot compresses it.
type ColorBoard struct {
	Rows  [40]ColorRow
	Hold  PieceKind
	Combo int32
	B2B   bool
}

// NewColorBoard returns an empty colored board with no held piece.
func NewColorBoard() ColorBoard {
	return ColorBoard{Hold: PieceNone}
}

// Snapshot compresses the colored board into the search form.
func (b *ColorBoard) Snapshot() Board {
	out := Board{Hold: b.Hold, Combo: b.Combo, B2B: b.B2B}
	for y := range b.Rows {
		out.Rows[y] = b.Rows[y].Compress()
	}
	out.recalcHeights()
	return out
}
