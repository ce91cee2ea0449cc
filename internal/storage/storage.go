package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const keyRunStats = "run_stats"

// RunStats accumulates self-play results across runs. Clear histograms
// are indexed by lines cleared per spin class.
type RunStats struct {
	Games  int64 `json:"games"`
	Pieces int64 `json:"pieces"`
	Thinks int64 `json:"thinks"`

	ThinkTime time.Duration `json:"think_time"`

	LineClears  [5]int64 `json:"line_clears"`
	MiniClears  [3]int64 `json:"mini_clears"`
	TspinClears [4]int64 `json:"tspin_clears"`
}

// Add merges another stats block into this one.
func (s *RunStats) Add(other RunStats) {
	s.Games += other.Games
	s.Pieces += other.Pieces
	s.Thinks += other.Thinks
	s.ThinkTime += other.ThinkTime
	for i, n := range other.LineClears {
		s.LineClears[i] += n
	}
	for i, n := range other.MiniClears {
		s.MiniClears[i] += n
	}
	for i, n := range other.TspinClears {
		s.TspinClears[i] += n
	}
}

// MsPerThink returns the average think step duration in milliseconds.
func (s *RunStats) MsPerThink() float64 {
	if s.Thinks == 0 {
		return 0
	}
	return float64(s.ThinkTime.Milliseconds()) / float64(s.Thinks)
}

// Store wraps BadgerDB for persistent statistics.
type Store struct {
	db *badger.DB
}

// Open opens the store under the platform data directory.
func Open() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, errors.Wrap(err, "resolving database dir")
	}
	return OpenAt(dir)
}

// OpenAt opens the store at an explicit directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening badger at %s", dir)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the accumulated stats, or an empty block if none were
// recorded yet.
func (s *Store) Load() (*RunStats, error) {
	stats := &RunStats{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyRunStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "loading run stats")
	}
	return stats, nil
}

// Record merges a run's results into the accumulated stats.
func (s *Store) Record(run RunStats) error {
	stats, err := s.Load()
	if err != nil {
		return err
	}
	stats.Add(run)

	data, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "encoding run stats")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyRunStats), data)
	})
	return errors.Wrap(err, "storing run stats")
}
