// Command tetrion-stats runs self-play games with the search worker and
// reports the line-clear distribution and think rate. Options come from
// a YAML document; results accumulate in the local stats store.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fourwide/tetrion/internal/board"
	"github.com/fourwide/tetrion/internal/bot"
	"github.com/fourwide/tetrion/internal/config"
	"github.com/fourwide/tetrion/internal/storage"
)

var (
	configPath = flag.String("config", "", "YAML options file (default: built-in defaults)")
	games      = flag.Int("games", 0, "override number of games")
	seed       = flag.Int64("seed", 1, "base seed for the piece queues")
	noStore    = flag.Bool("nostore", false, "skip recording results in the stats store")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	opts := config.Default()
	if *configPath != "" {
		var err error
		opts, err = config.LoadFile(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("loading options")
		}
	}
	if *games > 0 {
		opts.Games = *games
	}

	logger.Info().
		Int("games", opts.Games).
		Int("pieces", opts.Pieces).
		Dur("think_time", opts.ThinkTime()).
		Msg("starting self-play")

	var (
		mu    sync.Mutex
		total storage.RunStats
	)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < opts.Games; i++ {
		gameSeed := *seed + int64(i)
		gameLog := logger.With().Int64("seed", gameSeed).Logger()
		g.Go(func() error {
			run := playGame(opts, gameSeed, gameLog)
			mu.Lock()
			total.Add(run)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("self-play failed")
	}

	printStats(&total)

	if !*noStore {
		store, err := storage.Open()
		if err != nil {
			logger.Fatal().Err(err).Msg("opening stats store")
		}
		defer store.Close()
		if err := store.Record(total); err != nil {
			logger.Fatal().Err(err).Msg("recording stats")
		}
		lifetime, err := store.Load()
		if err != nil {
			logger.Fatal().Err(err).Msg("loading lifetime stats")
		}
		logger.Info().
			Int64("games", lifetime.Games).
			Int64("pieces", lifetime.Pieces).
			Msg("lifetime totals")
	}
}

// playGame runs one self-play game to the configured piece count or
// until the bot has no legal move.
func playGame(opts config.Options, gameSeed int64, logger zerolog.Logger) storage.RunStats {
	rng := rand.New(rand.NewSource(gameSeed))
	queue := board.NewQueue(opts.Previews, rng)
	b := board.NewBoard()

	eval := opts.Evaluator
	h := bot.NewHandle(b, &eval, opts.Settings, logger)
	defer h.Close()
	h.Reset(b, queue.Previews())

	run := storage.RunStats{Games: 1}
	for i := 0; i < opts.Pieces; i++ {
		h.BeginThinking()
		time.Sleep(opts.ThinkTime())
		mv, ok := h.NextMove()
		if !ok || mv == nil {
			logger.Info().Int("pieces", i).Msg("game over")
			break
		}

		consumed := 1
		current := queue.Next()
		if mv.UsesHold {
			if b.Hold == board.PieceNone {
				b.Hold = current
				current = queue.Next()
				consumed = 2
			} else {
				b.Hold, current = current, b.Hold
			}
		}
		if current != mv.Piece.Kind {
			logger.Warn().
				Stringer("queued", current).
				Stringer("placed", mv.Piece.Kind).
				Msg("queue desync")
		}
		lock := b.LockPiece(mv.Piece)

		run.Pieces++
		run.Thinks += int64(mv.Thinks)
		run.ThinkTime += mv.Elapsed
		switch mv.Piece.Tspin {
		case board.TspinMini:
			run.MiniClears[lock.LinesCleared]++
		case board.TspinFull:
			run.TspinClears[lock.LinesCleared]++
		default:
			run.LineClears[lock.LinesCleared]++
		}

		// Each consumed piece dealt one replacement; feed the worker the
		// newly visible tail of the preview window.
		for j := opts.Previews - consumed; j < opts.Previews; j++ {
			h.AddPiece(queue.Get(j))
		}
	}
	return run
}

func printStats(s *storage.RunStats) {
	fmt.Printf("ms/think: %.3f\n", s.MsPerThink())
	for lines, n := range s.LineClears {
		fmt.Printf("Clear %d: %d\n", lines, n)
	}
	for lines, n := range s.MiniClears {
		fmt.Printf("T-spin mini %d: %d\n", lines, n)
	}
	for lines, n := range s.TspinClears {
		fmt.Printf("T-spin %d: %d\n", lines, n)
	}
}
