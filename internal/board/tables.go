package board

// Static SRS geometry. Cells are (dx, dy) offsets from the piece anchor
// with y pointing up; offsets are the true-rotation kick tables. Rotation
// r runs 0 (spawn), 1 (clockwise), 2 (180), 3 (counter-clockwise).

// CellsOf returns the four occupied cell offsets for a kind at rotation r.
func CellsOf(k PieceKind, r uint8) [4][2]int {
	switch k {
	case PieceJ:
		return jStates[r]
	case PieceL:
		return lStates[r]
	case PieceS:
		return sStates[r]
	case PieceT:
		return tStates[r]
	case PieceZ:
		return zStates[r]
	case PieceI:
		return iStates[r]
	default:
		return oStates[r]
	}
}

// OffsetsOf returns the SRS offset row for a kind at rotation r: five
// entries for every kind except O, which has one.
func OffsetsOf(k PieceKind, r uint8) [][2]int {
	switch k {
	case PieceO:
		return oOffsets[r][:]
	case PieceI:
		return iOffsets[r][:]
	default:
		return jlstzOffsets[r][:]
	}
}

var jlstzOffsets = [4][5][2]int{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
}

var oOffsets = [4][1][2]int{
	{{0, 0}},
	{{0, -1}},
	{{-1, -1}},
	{{-1, 0}},
}

var iOffsets = [4][5][2]int{
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
	{{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
	{{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
	{{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
}

var jStates = [4][4][2]int{
	{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
	{{0, 1}, {0, 0}, {0, -1}, {1, 1}},
	{{-1, 0}, {0, 0}, {1, 0}, {1, -1}},
	{{-1, -1}, {0, 1}, {0, 0}, {0, -1}},
}

var lStates = [4][4][2]int{
	{{-1, 0}, {0, 0}, {1, 1}, {1, 0}},
	{{0, 1}, {0, 0}, {0, -1}, {1, -1}},
	{{-1, 0}, {-1, -1}, {0, 0}, {1, 0}},
	{{-1, 1}, {0, 1}, {0, 0}, {0, -1}},
}

var sStates = [4][4][2]int{
	{{-1, 0}, {0, 1}, {0, 0}, {1, 1}},
	{{0, 1}, {0, 0}, {1, 0}, {1, -1}},
	{{-1, -1}, {0, 0}, {0, -1}, {1, 0}},
	{{-1, 1}, {-1, 0}, {0, 0}, {0, -1}},
}

var tStates = [4][4][2]int{
	{{-1, 0}, {0, 1}, {0, 0}, {1, 0}},
	{{0, 1}, {0, 0}, {0, -1}, {1, 0}},
	{{-1, 0}, {0, 0}, {0, -1}, {1, 0}},
	{{-1, 0}, {0, 1}, {0, 0}, {0, -1}},
}

var zStates = [4][4][2]int{
	{{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
	{{0, 0}, {0, -1}, {1, 1}, {1, 0}},
	{{-1, 0}, {0, 0}, {0, -1}, {1, -1}},
	{{-1, 0}, {-1, -1}, {0, 1}, {0, 0}},
}

var iStates = [4][4][2]int{
	{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {0, 0}, {0, -1}, {0, -2}},
	{{-2, 0}, {-1, 0}, {0, 0}, {1, 0}},
	{{0, 2}, {0, 1}, {0, 0}, {0, -1}},
}

var oStates = [4][4][2]int{
	{{0, 1}, {0, 0}, {1, 1}, {1, 0}},
	{{0, 0}, {0, -1}, {1, 0}, {1, -1}},
	{{-1, 0}, {-1, -1}, {0, 0}, {0, -1}},
	{{-1, 1}, {-1, 0}, {0, 1}, {0, 0}},
}
