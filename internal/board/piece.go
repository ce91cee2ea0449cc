package board

// Piece is a falling piece: kind, anchor position, rotation, and the spin
// class of the rotation that produced the current position. Tspin is only
// meaningful on the step that set it; any other motion clears it.
type Piece struct {
	Kind  PieceKind
	X, Y  int
	R     uint8
	Tspin TspinKind
}

// Spawn places a new piece of the given kind at the spawn position and
// applies the initial soft drop. Callers must check PieceFits on the
// result; a piece that does not fit at spawn ends the game.
func Spawn(b *Board, kind PieceKind) Piece {
	p := Piece{Kind: kind, X: 4, Y: 20}
	p.SoftDrop(b)
	return p
}

// Cells returns the four absolute cells occupied by the piece.
func (p Piece) Cells() [4][2]int {
	cells := CellsOf(p.Kind, p.R)
	for i := range cells {
		cells[i][0] += p.X
		cells[i][1] += p.Y
	}
	return cells
}

// ShiftLeft moves the piece one column left if it fits.
func (p *Piece) ShiftLeft(b *Board) bool {
	return p.tryMove(b, p.X-1, p.Y, p.R)
}

// ShiftRight moves the piece one column right if it fits.
func (p *Piece) ShiftRight(b *Board) bool {
	return p.tryMove(b, p.X+1, p.Y, p.R)
}

// SoftDrop moves the piece down one cell if it fits.
func (p *Piece) SoftDrop(b *Board) bool {
	return p.tryMove(b, p.X, p.Y-1, p.R)
}

// SonicDrop drops the piece to its resting position without locking. It
// reports whether the piece moved at all.
func (p *Piece) SonicDrop(b *Board) bool {
	moved := false
	for p.SoftDrop(b) {
		moved = true
	}
	return moved
}

// RotateLeft rotates counter-clockwise through the SRS kicks.
func (p *Piece) RotateLeft(b *Board) bool {
	return p.rotate(b, (p.R+3)&3)
}

// RotateRight rotates clockwise through the SRS kicks.
func (p *Piece) RotateRight(b *Board) bool {
	return p.rotate(b, (p.R+1)&3)
}

// cornerCells are the diagonal neighbors of the T anchor, and
// frontCorners the two on the side the T points toward per rotation.
var cornerCells = [4][2]int{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

var frontCorners = [4][2][2]int{
	{{-1, 1}, {1, 1}},
	{{1, 1}, {1, -1}},
	{{-1, -1}, {1, -1}},
	{{-1, -1}, {-1, 1}},
}

func (p *Piece) rotate(b *Board, to uint8) bool {
	from := OffsetsOf(p.Kind, p.R)
	dest := OffsetsOf(p.Kind, to)
	for i := range from {
		x := p.X + from[i][0] - dest[i][0]
		y := p.Y + from[i][1] - dest[i][1]
		if !p.tryMove(b, x, y, to) {
			continue
		}
		if p.Kind == PieceT {
			corners := 0
			for _, c := range cornerCells {
				if b.Occupied(x+c[0], y+c[1]) {
					corners++
				}
			}
			if corners > 2 {
				front := 0
				for _, c := range frontCorners[to] {
					if b.Occupied(x+c[0], y+c[1]) {
						front++
					}
				}
				if front >= 2 || i == 4 {
					p.Tspin = TspinFull
				} else {
					p.Tspin = TspinMini
				}
			}
		}
		return true
	}
	return false
}

func (p *Piece) tryMove(b *Board, x, y int, r uint8) bool {
	next := Piece{Kind: p.Kind, X: x, Y: y, R: r}
	if !b.PieceFits(next) {
		return false
	}
	*p = next
	return true
}
