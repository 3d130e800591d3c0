package stats

import (
	"testing"

	"GridironStatsApi/internal/assert"
)

func TestConfigHash(t *testing.T) {
	t.Run("equal configs share a hash", func(t *testing.T) {
		a := Config{IncludeQBKneelsRushing: true}
		b := Config{IncludeQBKneelsRushing: true}
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("one flag changes the hash", func(t *testing.T) {
		a := Config{}
		b := Config{IncludeQBSpikesSuccessRate: true}
		if a.Hash() == b.Hash() {
			t.Errorf("configs differ but hashes collide: %s", a.Hash())
		}
	})

	t.Run("hash is stable across calls", func(t *testing.T) {
		cfg := Config{IncludeQBKneelsSuccessRate: true, IncludeQBSpikesCompletion: true}
		assert.Equal(t, cfg.Hash(), cfg.Hash())
	})

	t.Run("hash length is fixed", func(t *testing.T) {
		assert.Equal(t, len(Config{}.Hash()), 32)
	})
}

func TestPresets(t *testing.T) {
	t.Run("official preset includes everything", func(t *testing.T) {
		cfg, err := Preset("nfl_official")
		assert.NilError(t, err)
		assert.Equal(t, cfg, Config{
			IncludeQBKneelsRushing:     true,
			IncludeQBKneelsSuccessRate: true,
			IncludeQBSpikesCompletion:  true,
			IncludeQBSpikesSuccessRate: true,
		})
	})

	t.Run("clean preset excludes everything", func(t *testing.T) {
		cfg, err := Preset("analytics_clean")
		assert.NilError(t, err)
		assert.Equal(t, cfg, Config{})
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := Preset("madden_mode")
		assert.ErrorIs(t, err, ErrUnknownPreset)
	})

	t.Run("names are sorted", func(t *testing.T) {
		assert.StringSliceEqual(t, PresetNames(), []string{"analytics_clean", "nfl_official"})
	})
}
