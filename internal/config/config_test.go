package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	opts := Default()
	assert.True(t, opts.Settings.UseHold)
	assert.InDelta(t, 1.414, opts.Settings.Exploration, 0.01)
	assert.Equal(t, int32(-203), opts.Evaluator.Holes)
	assert.Equal(t, 100*time.Millisecond, opts.ThinkTime())
	assert.Equal(t, 5, opts.Previews)
	assert.Equal(t, 0.7, opts.GarbageSameColumn)
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
think_time_ms: 250
games: 4
settings:
  use_hold: false
evaluator:
  holes: -500
  line_clear: [1, 2, 3, 4, 5]
`
	opts, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, opts.ThinkTime())
	assert.Equal(t, 4, opts.Games)
	assert.False(t, opts.Settings.UseHold)
	assert.Equal(t, int32(-500), opts.Evaluator.Holes)
	assert.Equal(t, [5]int32{1, 2, 3, 4, 5}, opts.Evaluator.LineClear)
	// Untouched fields keep their defaults.
	assert.Equal(t, int32(-18), opts.Evaluator.HoleDepths)
	assert.Equal(t, 5, opts.Previews)
}

func TestLoadEmptyDocument(t *testing.T) {
	opts, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadBadDocument(t *testing.T) {
	_, err := Load(strings.NewReader("games: [not an int"))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/options.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/options.yaml")
}
