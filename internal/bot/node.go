// Package bot implements the best-first search over the piece queue: the
// node tree, the pluggable evaluator with its standard weight set, and a
// channel-driven worker that runs the search concurrently with its
// caller.
package bot

import (
	"math"

	"github.com/fourwide/tetrion/internal/board"
)

// Node is one explored board state. A node exclusively owns its
// children; re-rooting moves the chosen child into the root slot and
// drops the rest.
type Node struct {
	Board    board.Board
	Mv       board.Piece
	MoveDist int32
	Lock     board.LockResult
	UsesHold bool
	Depth    int

	Value          int32
	Reward         int32
	MaxChildReward int32
	Visits         uint32
	Finished       bool
	Children       []*Node
}

// Total is the node's selection score: its board value plus the
// accumulated transition rewards along the best known line below it.
func (n *Node) Total() int32 {
	return satAdd(satAdd(n.Value, n.Reward), n.MaxChildReward)
}

const minScore = math.MinInt32

// satAdd adds with saturation so extreme evaluator terms cannot wrap.
func satAdd(a, b int32) int32 {
	s := int64(a) + int64(b)
	if s > math.MaxInt32 {
		return math.MaxInt32
	}
	if s < math.MinInt32 {
		return math.MinInt32
	}
	return int32(s)
}

func satSub(a, b int32) int32 {
	s := int64(a) - int64(b)
	if s > math.MaxInt32 {
		return math.MaxInt32
	}
	if s < math.MinInt32 {
		return math.MinInt32
	}
	return int32(s)
}
