// Package config loads the YAML options document consumed by the
// harnesses: evaluator weights, search settings, deadlines and queue
// policy. The core library never reads configuration itself; harnesses
// load it here and pass the values through.
package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fourwide/tetrion/internal/bot"
)

// Options is the persisted configuration document.
type Options struct {
	Evaluator bot.StandardEvaluator `yaml:"evaluator"`
	Settings  bot.Settings          `yaml:"settings"`

	// Think deadline per piece, in milliseconds.
	ThinkTimeMs int `yaml:"think_time_ms"`
	// Previews visible to the bot.
	Previews int `yaml:"previews"`
	// Pieces placed per game before a game counts as survived.
	Pieces int `yaml:"pieces"`
	// Self-play games to run.
	Games int `yaml:"games"`
	// Probability that consecutive garbage rows share a hole column.
	GarbageSameColumn float64 `yaml:"garbage_same_column"`
}

// Default returns the options used when no document is supplied.
func Default() Options {
	return Options{
		Evaluator:         bot.DefaultEvaluator(),
		Settings:          bot.DefaultSettings(),
		ThinkTimeMs:       100,
		Previews:          5,
		Pieces:            1000,
		Games:             1,
		GarbageSameColumn: 0.7,
	}
}

// ThinkTime returns the per-piece think deadline.
func (o Options) ThinkTime() time.Duration {
	return time.Duration(o.ThinkTimeMs) * time.Millisecond
}

// Load decodes options from r on top of the defaults.
func Load(r io.Reader) (Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&opts); err != nil {
		if err == io.EOF {
			return opts, nil
		}
		return opts, errors.Wrap(err, "decoding options")
	}
	return opts, nil
}

// LoadFile decodes options from a YAML file on top of the defaults.
func LoadFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), errors.Wrapf(err, "opening options file %s", path)
	}
	defer f.Close()
	return Load(f)
}
