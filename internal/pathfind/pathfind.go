// Package pathfind enumerates every lock position a spawned piece can
// reach and reconstructs the cheapest input sequence to each. It runs a
// breadth-first traversal over the (x, y, rotation, spin) state space,
// costing shifts and rotations one input each and sonic drops their drop
// height.
package pathfind

import (
	"sort"

	"github.com/fourwide/tetrion/internal/board"
)

// Move is a single bot input.
type Move uint8

const (
	Left Move = iota
	Right
	RotLeft
	RotRight
	SonicDrop
)

// String returns the input name.
func (m Move) String() string {
	switch m {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case RotLeft:
		return "RotLeft"
	case RotRight:
		return "RotRight"
	default:
		return "SonicDrop"
	}
}

var allMoves = [5]Move{RotLeft, RotRight, Left, Right, SonicDrop}

// The O piece has no distinct rotations, so its rotation moves are
// omitted from the expansion.
var oMoves = [3]Move{Left, Right, SonicDrop}

// Placement is a reachable lock position together with its input cost
// from spawn. The cost includes the height of the sonic drop that lands
// the piece, even though PathTo leaves that drop to the final hard drop.
type Placement struct {
	Piece board.Piece
	Dist  int32
}

type visit struct {
	parent    board.Piece
	hasParent bool
	seen      bool
	mv        Move
	totalDist int32
	dist      int32
}

// Finder owns the dense visit table for the BFS. It is reused across
// calls and is not safe for concurrent use.
type Finder struct {
	field [10][40][4][3]visit
	queue []board.Piece
}

// NewFinder returns a Finder with an empty visit table.
func NewFinder() *Finder {
	return &Finder{queue: make([]board.Piece, 0, 1024)}
}

func (f *Finder) at(p board.Piece) *visit {
	return &f.field[p.X][p.Y][p.R][p.Tspin]
}

// Moves returns every distinct lock position reachable from the spawned
// piece, one representative per distinct set of four occupied cells,
// each holding the smallest input cost. The visit table is rebuilt, so a
// later PathTo refers to this call's results.
func (f *Finder) Moves(b *board.Board, spawned board.Piece) []Placement {
	f.field = [10][40][4][3]visit{}
	f.queue = f.queue[:0]
	if !b.PieceFits(spawned) {
		return nil
	}

	f.at(spawned).seen = true
	f.queue = append(f.queue, spawned)

	locks := make(map[lockKey]board.Piece, 64)

	for len(f.queue) > 0 {
		state := f.queue[0]
		f.queue = f.queue[1:]
		parent := *f.at(state)

		moves := allMoves[:]
		if state.Kind == board.PieceO {
			moves = oMoves[:]
		}
		for _, mv := range moves {
			piece := state
			var ok bool
			switch mv {
			case Left:
				ok = piece.ShiftLeft(b)
			case Right:
				ok = piece.ShiftRight(b)
			case RotLeft:
				ok = piece.RotateLeft(b)
			case RotRight:
				ok = piece.RotateRight(b)
			case SonicDrop:
				ok = piece.SonicDrop(b)
			}

			if ok {
				dist := int32(1)
				if mv == SonicDrop {
					dist = int32(state.Y - piece.Y)
				}
				entry := f.at(piece)
				if better(entry, parent, mv, dist) {
					*entry = visit{
						parent:    state,
						hasParent: true,
						seen:      true,
						mv:        mv,
						totalDist: parent.totalDist + dist,
						dist:      dist,
					}
					f.queue = append(f.queue, piece)
				}
			}

			// Whether or not the drop moved, the piece now rests on
			// support, which makes its cell set a lock position.
			if mv == SonicDrop {
				key := cellKey(piece)
				prev, dup := locks[key]
				if !dup || f.at(piece).totalDist < f.at(prev).totalDist {
					locks[key] = piece
				}
			}
		}
	}

	out := make([]Placement, 0, len(locks))
	for _, p := range locks {
		out = append(out, Placement{Piece: p, Dist: f.at(p).totalDist})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Piece, out[j].Piece
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.R != b.R {
			return a.R < b.R
		}
		return a.Tspin < b.Tspin
	})
	return out
}

// lockKey identifies a lock position by its four occupied cells,
// normalized so the same cell set always produces the same key no matter
// which rotation's table ordering reached it.
type lockKey [4][2]int

func cellKey(p board.Piece) lockKey {
	key := lockKey(p.Cells())
	sort.Slice(key[:], func(i, j int) bool {
		if key[i][0] != key[j][0] {
			return key[i][0] < key[j][0]
		}
		return key[i][1] < key[j][1]
	})
	return key
}

// better reports whether reaching a state via mv improves on the stored
// predecessor. Distances are compared with the cost of a final sonic
// drop excluded, so equally cheap lock positions differ only by shifts
// and rotations, never by arbitrary drop heights.
func better(entry *visit, parent visit, mv Move, dist int32) bool {
	if !entry.seen {
		return true
	}
	prevDist := entry.totalDist
	if entry.mv == SonicDrop {
		prevDist -= entry.dist
	}
	newDist := parent.totalDist
	if mv != SonicDrop {
		newDist += dist
	}
	return newDist < prevDist
}

// PathTo reconstructs the input sequence from spawn to the given lock
// position found by the previous Moves call. Trailing sonic drops are
// stripped; the caller finishes with a hard drop. Returns nil if the
// position was never visited.
func (f *Finder) PathTo(p board.Piece) []Move {
	entry := *f.at(p)
	if !entry.seen {
		return nil
	}
	var rev []Move
	skipping := true
	for entry.hasParent {
		if entry.mv != SonicDrop {
			skipping = false
		}
		if !skipping {
			rev = append(rev, entry.mv)
		}
		entry = *f.at(entry.parent)
	}
	out := make([]Move, len(rev))
	for i, m := range rev {
		out[len(rev)-1-i] = m
	}
	return out
}
