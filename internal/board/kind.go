package board

// PieceKind represents one of the seven tetromino kinds.
type PieceKind uint8

const (
	PieceJ PieceKind = iota
	PieceL
	PieceS
	PieceT
	PieceZ
	PieceI
	PieceO
	PieceNone PieceKind = 7
)

// Kinds lists the seven kinds in bag order.
var Kinds = [7]PieceKind{PieceJ, PieceL, PieceS, PieceT, PieceZ, PieceI, PieceO}

// String returns the one-letter kind name.
func (k PieceKind) String() string {
	switch k {
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	default:
		return "-"
	}
}

// Cell returns the colored cell tag for the kind.
func (k PieceKind) Cell() CellState {
	return CellJ + CellState(k)
}

// CellState represents the content of a single board cell. The colored
// per-kind tags exist only for display; search consumes the compressed
// occupancy form where anything non-Empty reads as Garbage.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellGarbage
	CellSolid
	CellJ
	CellL
	CellS
	CellT
	CellZ
	CellI
	CellO
)

// TspinKind classifies the spin that produced a T placement.
type TspinKind uint8

const (
	TspinNone TspinKind = iota
	TspinMini
	TspinFull
)

// String returns the spin class name.
func (t TspinKind) String() string {
	switch t {
	case TspinMini:
		return "Mini"
	case TspinFull:
		return "Full"
	default:
		return "None"
	}
}
