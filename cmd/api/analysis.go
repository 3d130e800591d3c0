package main

import (
	"net/http"
	"strings"

	"GridironStatsApi/internal/analysis"
	"GridironStatsApi/internal/data"
	"GridironStatsApi/internal/rank"
	"GridironStatsApi/internal/stats"
	"GridironStatsApi/internal/validator"
)

// parseAnalysisRequest builds a pipeline request from query parameters.
// A preset sets the whole configuration; individual flags override on
// top of it.
func (app *application) parseAnalysisRequest(r *http.Request,
	v *validator.Validator) analysis.Request {
	qs := r.URL.Query()

	var req analysis.Request
	req.Team = strings.ToUpper(strings.TrimSpace(app.readString(qs, "team", "")))
	req.Season = app.readInt(qs, "season", 0, v)
	req.SeasonType = data.SeasonType(app.readString(qs, "season_type",
		string(data.SeasonTypeReg)))

	cfg := stats.Config{}
	if name := app.readString(qs, "preset", ""); name != "" {
		preset, err := stats.Preset(name)
		if err != nil {
			v.AddError("preset", "must be one of: "+strings.Join(stats.PresetNames(), ", "))
		} else {
			cfg = preset
		}
	}

	cfg.IncludeQBKneelsRushing = app.readBool(qs, "include_qb_kneels_rushing",
		cfg.IncludeQBKneelsRushing, v)
	cfg.IncludeQBKneelsSuccessRate = app.readBool(qs, "include_qb_kneels_success_rate",
		cfg.IncludeQBKneelsSuccessRate, v)
	cfg.IncludeQBSpikesCompletion = app.readBool(qs, "include_qb_spikes_completion",
		cfg.IncludeQBSpikesCompletion, v)
	cfg.IncludeQBSpikesSuccessRate = app.readBool(qs, "include_qb_spikes_success_rate",
		cfg.IncludeQBSpikesSuccessRate, v)
	req.Config = cfg

	return req
}

func (app *application) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	req := app.parseAnalysisRequest(r, v)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	result, err := app.orchestrator.Analyze(r.Context(), req, nil)
	if err != nil {
		app.analysisErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"analysis": result}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetPresets(w http.ResponseWriter, r *http.Request) {
	presets := make(map[string]stats.Config)
	for _, name := range stats.PresetNames() {
		cfg, err := stats.Preset(name)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		presets[name] = cfg
	}

	metrics := make([]map[string]any, 0, len(rank.Metrics()))
	for _, m := range rank.Metrics() {
		metrics = append(metrics, map[string]any{
			"name":            m.Name,
			"lower_is_better": m.LowerIsBetter,
		})
	}

	err := app.writeJSON(w, http.StatusOK, envelope{
		"presets": presets,
		"metrics": metrics,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams := make([]data.Team, 0, 32)
	for _, code := range data.TeamCodes() {
		team, err := data.LookupTeam(code)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		teams = append(teams, team)
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"teams": teams}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
