package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"GridironStatsApi/internal/data"
)

// InvalidateSeasonCache drops every cached level for a season so the
// next request recomputes from the database. Meant to be called by the
// ingest job after new play data lands.
func (app *application) InvalidateSeasonCache(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil || season < data.MinSeason {
		app.badRequestResponse(w, r,
			fmt.Errorf("season must be an integer of %d or later", data.MinSeason))
		return
	}

	removed := app.orchestrator.InvalidateSeason(season)

	err = app.writeJSON(w, http.StatusOK, envelope{
		"season":          season,
		"entries_removed": removed,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
