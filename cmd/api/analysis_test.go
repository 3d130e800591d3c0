package main

import (
	"net/http/httptest"
	"testing"

	"GridironStatsApi/internal/assert"
	"GridironStatsApi/internal/data"
	"GridironStatsApi/internal/stats"
	"GridironStatsApi/internal/validator"
)

func TestParseAnalysisRequest(t *testing.T) {
	app := &application{}

	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/analysis?team=ari&season=2024", nil)
		v := validator.New()

		req := app.parseAnalysisRequest(r, v)

		assert.Equal(t, v.Valid(), true)
		assert.Equal(t, req.Team, "ARI")
		assert.Equal(t, req.Season, 2024)
		assert.Equal(t, req.SeasonType, data.SeasonTypeReg)
		assert.Equal(t, req.Config, stats.Config{})
	})

	t.Run("preset with flag override", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/v1/analysis?team=BUF&season=2023&season_type=POST"+
				"&preset=nfl_official&include_qb_spikes_completion=false", nil)
		v := validator.New()

		req := app.parseAnalysisRequest(r, v)

		assert.Equal(t, v.Valid(), true)
		assert.Equal(t, req.SeasonType, data.SeasonTypePost)
		assert.Equal(t, req.Config, stats.Config{
			IncludeQBKneelsRushing:     true,
			IncludeQBKneelsSuccessRate: true,
			IncludeQBSpikesCompletion:  false,
			IncludeQBSpikesSuccessRate: true,
		})
	})

	t.Run("unknown preset", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/analysis?team=ARI&season=2024&preset=bogus", nil)
		v := validator.New()

		app.parseAnalysisRequest(r, v)

		assert.Equal(t, v.Valid(), false)
		if _, ok := v.Errors["preset"]; !ok {
			t.Errorf("expected a preset validation error, got %v", v.Errors)
		}
	})

	t.Run("bad season", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/analysis?team=ARI&season=twenty", nil)
		v := validator.New()

		app.parseAnalysisRequest(r, v)

		assert.Equal(t, v.Valid(), false)
	})
}
