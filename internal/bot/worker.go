package bot

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/fourwide/tetrion/internal/board"
	"github.com/fourwide/tetrion/internal/pathfind"
)

type cmdKind uint8

const (
	cmdReset cmdKind = iota
	cmdNewPiece
	cmdBeginThinking
	cmdNextMove
)

type command struct {
	kind  cmdKind
	piece board.PieceKind
	board board.Board
	queue []board.PieceKind
}

// Move is the worker's reply to NextMove: the chosen placement, the
// input path that reaches it from spawn (hard drop implied), and how
// much thinking it got.
type Move struct {
	Piece    board.Piece
	UsesHold bool
	Path     []pathfind.Move
	Thinks   int
	Elapsed  time.Duration
}

// Handle runs a Bot in its own goroutine. All communication happens
// over two bounded channels; commands carry board snapshots by value, so
// no caller state is shared with the worker. Handles are single-caller:
// one goroutine issues commands and reads replies.
type Handle struct {
	cmds  chan command
	moves chan *Move
}

// NewHandle spawns the worker. Close it to stop the goroutine.
func NewHandle(b board.Board, eval Evaluator, settings Settings, logger zerolog.Logger) *Handle {
	h := &Handle{
		cmds:  make(chan command, 16),
		moves: make(chan *Move, 1),
	}
	go h.run(New(b, eval, settings), logger)
	return h
}

func (h *Handle) run(t *Bot, logger zerolog.Logger) {
	defer close(h.moves)
	finder := pathfind.NewFinder()
	thinking := false
	start := time.Now()
	thinks := 0
	for {
		var c command
		var ok bool
		if thinking {
			thinking = !t.Think()
			thinks++
			select {
			case c, ok = <-h.cmds:
				if !ok {
					return
				}
			default:
				continue
			}
		} else if c, ok = <-h.cmds; !ok {
			return
		}

		switch c.kind {
		case cmdBeginThinking:
			start = time.Now()
			thinking = true
		case cmdNewPiece:
			t.UpdateQueue(c.piece)
		case cmdReset:
			t.Reset(c.board, c.queue)
			logger.Debug().Int("queue", len(c.queue)).Msg("bot reset")
		case cmdNextMove:
			thinking = false
			parent := t.Root.Board
			node := t.NextMove()
			if node == nil {
				logger.Debug().Int("thinks", thinks).Msg("no legal move")
				h.moves <- nil
			} else {
				spawned := board.Spawn(&parent, node.Mv.Kind)
				finder.Moves(&parent, spawned)
				mv := &Move{
					Piece:    node.Mv,
					UsesHold: node.UsesHold,
					Path:     finder.PathTo(node.Mv),
					Thinks:   thinks,
					Elapsed:  time.Since(start),
				}
				logger.Debug().
					Stringer("kind", node.Mv.Kind).
					Bool("hold", node.UsesHold).
					Int32("lines", node.Lock.LinesCleared).
					Int("thinks", thinks).
					Dur("elapsed", mv.Elapsed).
					Msg("move chosen")
				h.moves <- mv
			}
			thinks = 0
		}
	}
}

// Reset replaces the worker's board and queue.
func (h *Handle) Reset(b board.Board, queue []board.PieceKind) {
	q := make([]board.PieceKind, len(queue))
	copy(q, queue)
	h.cmds <- command{kind: cmdReset, board: b, queue: q}
}

// AddPiece appends a future piece to the worker's queue.
func (h *Handle) AddPiece(k board.PieceKind) {
	h.cmds <- command{kind: cmdNewPiece, piece: k}
}

// BeginThinking starts the think loop; it runs until NextMove or until
// the tree is exhausted.
func (h *Handle) BeginThinking() {
	h.cmds <- command{kind: cmdBeginThinking}
}

// NextMove stops thinking and returns the best move, or nil when no
// legal move exists. The second return is false once the worker is gone.
func (h *Handle) NextMove() (*Move, bool) {
	h.cmds <- command{kind: cmdNextMove}
	mv, ok := <-h.moves
	return mv, ok
}

// Close shuts the worker down. The handle must not be used afterwards.
func (h *Handle) Close() {
	close(h.cmds)
}
