package bot

import (
	"github.com/fourwide/tetrion/internal/board"
)

// Evaluator scores a freshly expanded node. value estimates the
// resulting board, reward the transition that produced it. Implementations
// must be reentrant and side-effect free; the search calls them from its
// worker goroutine.
type Evaluator interface {
	Evaluate(node *Node, queue []board.PieceKind) (value, reward int32)
}

// StandardEvaluator is the hand-tuned linear evaluator. Weights are
// exported and YAML-taggable so a harness can load tuned sets.
type StandardEvaluator struct {
	Holes            int32 `yaml:"holes"`
	HolesSq          int32 `yaml:"holes_sq"`
	HoleDepths       int32 `yaml:"hole_depths"`
	HoleDepthsSq     int32 `yaml:"hole_depths_sq"`
	MoveHeight       int32 `yaml:"move_height"`
	MoveHeightSq     int32 `yaml:"move_height_sq"`
	MoveDist         int32 `yaml:"move_dist"`
	MaxHeight        int32 `yaml:"max_height"`
	MaxHeightSq      int32 `yaml:"max_height_sq"`
	Bumpiness        int32 `yaml:"bumpiness"`
	BumpinessSq      int32 `yaml:"bumpiness_sq"`
	RowTransitions   int32 `yaml:"row_transitions"`
	RowTransitionsSq int32 `yaml:"row_transitions_sq"`
	WellDepth        int32 `yaml:"well_depth"`
	MaxWellDepth     int32 `yaml:"max_well_depth"`

	LineClear  [5]int32 `yaml:"line_clear"`
	MiniClear  [3]int32 `yaml:"mini_clear"`
	TspinClear [4]int32 `yaml:"tspin_clear"`

	PerfectClear int32 `yaml:"perfect_clear"`
	ComboGarbage int32 `yaml:"combo_garbage"`
	WastedT      int32 `yaml:"wasted_t"`
	Tslot        int32 `yaml:"tslot"`
}

// comboTable maps the combo counter to garbage lines sent.
var comboTable = [13]int32{0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 4, 5}

// DefaultEvaluator returns the hand-tuned weight set.
func DefaultEvaluator() StandardEvaluator {
	return StandardEvaluator{
		Holes:            -203,
		HolesSq:          -8,
		HoleDepths:       -18,
		HoleDepthsSq:     -1,
		MoveHeight:       -18,
		MoveHeightSq:     -4,
		MoveDist:         -5,
		MaxHeight:        -8,
		MaxHeightSq:      0,
		Bumpiness:        -15,
		BumpinessSq:      -9,
		RowTransitions:   -20,
		RowTransitionsSq: 0,
		WellDepth:        55,
		MaxWellDepth:     10,
		LineClear:        [5]int32{7, -363, -293, -280, 554},
		MiniClear:        [3]int32{1, -194, 101},
		TspinClear:       [4]int32{-6, 108, 629, 1244},
		PerfectClear:     5000,
		ComboGarbage:     305,
		WastedT:          -268,
		Tslot:            301,
	}
}

// Evaluate scores the node's board and the placement that reached it.
// A block-out returns the minimum pair, which prunes the subtree.
func (e *StandardEvaluator) Evaluate(node *Node, queue []board.PieceKind) (int32, int32) {
	if node.Lock.BlockOut {
		return minScore, minScore
	}

	b := &node.Board
	var value, reward int32

	var holes, holeDepths, holeDepthsSq, tslots int32
	for x := 0; x < 10; x++ {
		height := int(b.Heights[x])
		for y := 0; y < height; y++ {
			if b.Occupied(x, y) {
				continue
			}
			depth := int32(height - y - 1)
			holes++
			holeDepths += depth
			holeDepthsSq += depth * depth
			if !b.Occupied(x-1, y) && !b.Occupied(x+1, y) && !b.Occupied(x, y-1) && !b.Occupied(x, y+1) &&
				b.Occupied(x-1, y-1) && b.Occupied(x+1, y-1) &&
				(b.Occupied(x-1, y+1) || b.Occupied(x+1, y+1)) {
				tslots++
			}
		}
	}
	value = satAdd(value, holes*e.Holes)
	value = satAdd(value, holes*holes*e.HolesSq)
	value = satAdd(value, holeDepths*e.HoleDepths)
	value = satAdd(value, holeDepthsSq*e.HoleDepthsSq)

	var maxHeight int32
	for _, h := range b.Heights {
		if h > maxHeight {
			maxHeight = h
		}
	}
	value = satAdd(value, maxHeight*e.MaxHeight)
	value = satAdd(value, maxHeight*maxHeight*e.MaxHeightSq)

	var bumpiness, bumpinessSq int32
	for x := 0; x < 9; x++ {
		diff := b.Heights[x] - b.Heights[x+1]
		if diff < 0 {
			diff = -diff
		}
		bumpiness += diff
		bumpinessSq += diff * diff
	}
	value = satAdd(value, bumpiness*e.Bumpiness)
	value = satAdd(value, bumpinessSq*e.BumpinessSq)

	// Reward prepared T slots, but only as many as there are T pieces
	// left to spend on them.
	var tPieces int32
	for _, k := range queue[min(node.Depth, len(queue)):] {
		if k == board.PieceT {
			tPieces++
		}
	}
	if b.Hold == board.PieceT {
		tPieces++
	}
	value = satAdd(value, min(tslots, tPieces)*e.Tslot)

	var rowTransitions int32
	for y := 0; y < 20; y++ {
		for x := 0; x < 11; x++ {
			if b.Occupied(x-1, y) != b.Occupied(x, y) {
				rowTransitions++
			}
		}
	}
	value = satAdd(value, rowTransitions*e.RowTransitions)
	value = satAdd(value, rowTransitions*rowTransitions*e.RowTransitionsSq)

	wellColumn := 0
	minHeight := b.Heights[0]
	for x := 1; x < 10; x++ {
		if b.Heights[x] < minHeight {
			wellColumn, minHeight = x, b.Heights[x]
		}
	}
	wellRow := board.BitRow(0b1111111111) &^ (1 << wellColumn)
	var wellDepth int32
	for y := int(minHeight); y < 40 && b.Rows[y] == wellRow; y++ {
		wellDepth++
	}
	value = satAdd(value, min(wellDepth, e.MaxWellDepth)*e.WellDepth)

	moveY := int32(node.Mv.Y)
	value = satAdd(value, moveY*e.MoveHeight)
	value = satAdd(value, moveY*moveY*e.MoveHeightSq)

	if node.Mv.Kind == board.PieceT && (node.Mv.Tspin == board.TspinNone || node.Lock.LinesCleared == 0) {
		reward = satAdd(reward, e.WastedT)
	}
	lines := node.Lock.LinesCleared
	switch node.Mv.Tspin {
	case board.TspinMini:
		reward = satAdd(reward, e.MiniClear[lines])
	case board.TspinFull:
		reward = satAdd(reward, e.TspinClear[lines])
	default:
		reward = satAdd(reward, e.LineClear[lines])
	}
	combo := node.Lock.Combo
	if combo > int32(len(comboTable)-1) {
		combo = int32(len(comboTable) - 1)
	}
	reward = satAdd(reward, comboTable[combo]*e.ComboGarbage)
	reward = satAdd(reward, node.MoveDist*e.MoveDist)

	perfect := true
	for _, h := range b.Heights {
		if h != 0 {
			perfect = false
			break
		}
	}
	if perfect {
		reward = satAdd(reward, e.PerfectClear)
	}

	return value, reward
}
