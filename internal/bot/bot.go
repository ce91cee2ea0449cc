package bot

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/fourwide/tetrion/internal/board"
	"github.com/fourwide/tetrion/internal/pathfind"
)

// Settings are the search knobs.
type Settings struct {
	UseHold     bool    `yaml:"use_hold"`
	Exploration float32 `yaml:"exploration_exploitation_constant"`
}

// DefaultSettings enables hold and uses sqrt(2) for exploration.
func DefaultSettings() Settings {
	return Settings{UseHold: true, Exploration: math32.Sqrt(2)}
}

// Bot owns the search tree over the piece queue. It is not safe for
// concurrent use; Handle wraps one in a worker goroutine.
type Bot struct {
	Queue []board.PieceKind
	Root  *Node

	finder   *pathfind.Finder
	eval     Evaluator
	settings Settings
}

// New creates a bot searching from the given board snapshot.
func New(b board.Board, eval Evaluator, settings Settings) *Bot {
	t := &Bot{finder: pathfind.NewFinder(), eval: eval, settings: settings}
	t.Reset(b, nil)
	return t
}

// UpdateQueue appends a future piece. The current tree is unaffected
// beyond lengthening the searchable depth.
func (t *Bot) UpdateQueue(kind board.PieceKind) {
	t.Queue = append(t.Queue, kind)
}

// Reset replaces the board and queue and rebuilds an empty root.
func (t *Bot) Reset(b board.Board, queue []board.PieceKind) {
	t.Queue = append(t.Queue[:0:0], queue...)
	t.Root = &Node{Board: b}
}

// Think performs one update pass from the root and reports whether the
// whole tree is finished. Further calls after that are no-ops.
func (t *Bot) Think() bool {
	t.update(t.Root)
	return t.Root.Finished
}

// update descends along the UCT-selected path, expanding at the first
// node without children, and back-propagates (value, reward, visits).
func (t *Bot) update(n *Node) (value, reward int32, visits uint32) {
	if child := t.selectChild(n); child != nil {
		v, r, vis := t.update(child)
		n.Visits += vis
		if satAdd(v, r) > satAdd(n.Value, n.MaxChildReward) {
			n.Value = v
			n.MaxChildReward = r
		}
		return v, satAdd(n.Reward, r), vis
	}
	if len(n.Children) == 0 && !n.Finished {
		return t.expand(n)
	}
	n.Finished = true
	return minScore, 0, 0
}

// selectChild picks the eligible child with the best UCT score, or nil
// when no child is eligible. The exploit term is normalized into [0, 1]
// so the explore term stays comparable regardless of evaluator scale.
func (t *Bot) selectChild(n *Node) *Node {
	minTotal := int32(0)
	found := false
	for _, c := range n.Children {
		if c.Finished || c.Lock.BlockOut {
			continue
		}
		if tot := c.Total(); !found || tot < minTotal {
			minTotal = tot
			found = true
		}
	}
	if !found {
		return nil
	}

	upper := float32(satSub(satAdd(n.Value, n.MaxChildReward), minTotal))
	if upper < 1 {
		upper = 1
	}
	lnVisits := math32.Log(float32(n.Visits))

	var best *Node
	var bestScore float32
	for _, c := range n.Children {
		if c.Finished || c.Lock.BlockOut {
			continue
		}
		score := float32(satSub(c.Total(), minTotal))/upper +
			t.settings.Exploration*math32.Sqrt(lnVisits/float32(c.Visits))
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// expand creates a child per reachable lock position of the next queue
// piece, plus the hold variants when enabled, evaluates them all, and
// back-propagates the best.
func (t *Bot) expand(n *Node) (int32, int32, uint32) {
	if n.Depth >= len(t.Queue) {
		n.Finished = true
		return minScore, 0, 0
	}
	kind := t.Queue[n.Depth]

	spawned := board.Spawn(&n.Board, kind)
	if n.Board.PieceFits(spawned) {
		for _, pl := range t.finder.Moves(&n.Board, spawned) {
			t.addChild(n, pl, n.Depth+1, false, n.Board)
		}
	}

	if t.settings.UseHold {
		holdBoard := n.Board
		childDepth := n.Depth + 1
		holdKind := holdBoard.Hold
		holdBoard.Hold = kind
		if holdKind == board.PieceNone {
			// Empty hold swallows the current piece, so the placement
			// spawns the one after it and consumes two queue pieces.
			childDepth++
			if n.Depth+1 < len(t.Queue) {
				holdKind = t.Queue[n.Depth+1]
			}
		}
		if holdKind != board.PieceNone {
			spawned := board.Spawn(&holdBoard, holdKind)
			if holdBoard.PieceFits(spawned) {
				for _, pl := range t.finder.Moves(&holdBoard, spawned) {
					t.addChild(n, pl, childDepth, true, holdBoard)
				}
			}
		}
	}

	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Total() < n.Children[j].Total()
	})

	var best *Node
	for _, c := range n.Children {
		if c.Lock.BlockOut {
			continue
		}
		if best == nil || satAdd(c.Value, c.Reward) > satAdd(best.Value, best.Reward) {
			best = c
		}
	}
	if best == nil {
		n.Finished = true
		return minScore, 0, 0
	}
	visits := uint32(len(n.Children))
	n.Visits += visits
	if satAdd(best.Value, best.Reward) > satAdd(n.Value, n.MaxChildReward) {
		n.Value = best.Value
		n.MaxChildReward = best.Reward
	}
	return best.Value, satAdd(n.Reward, best.Reward), visits
}

func (t *Bot) addChild(n *Node, pl pathfind.Placement, depth int, usesHold bool, base board.Board) {
	lock := base.LockPiece(pl.Piece)
	child := &Node{
		Board:    base,
		Mv:       pl.Piece,
		MoveDist: pl.Dist,
		Lock:     lock,
		UsesHold: usesHold,
		Depth:    depth,
	}
	child.Value, child.Reward = t.eval.Evaluate(child, t.Queue)
	child.Visits = 1
	child.Finished = depth >= len(t.Queue) || lock.BlockOut
	n.Children = append(n.Children, child)
}

// NextMove commits the best root child: the tree is re-rooted there, the
// consumed queue pieces are dropped, every surviving descendant's depth
// is decremented accordingly and its finished flag cleared so the search
// can re-enter it with the longer queue tail. Returns nil when no legal
// move exists.
func (t *Bot) NextMove() *Node {
	root := t.Root
	if root == nil || len(root.Children) == 0 {
		return nil
	}
	var best *Node
	for _, c := range root.Children {
		if c.Lock.BlockOut {
			continue
		}
		if best == nil || c.Total() > best.Total() {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	consumed := best.Depth
	t.Queue = append(t.Queue[:0:0], t.Queue[consumed:]...)
	t.Root = best
	reroot(best, consumed)
	return best
}

func reroot(n *Node, consumed int) {
	n.Finished = false
	n.Depth -= consumed
	for _, c := range n.Children {
		reroot(c, consumed)
	}
}
