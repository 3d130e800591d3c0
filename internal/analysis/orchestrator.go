// Package analysis coordinates the full pipeline for one team-season
// request: resolve plays, filter, calculate, rank. Results are always
// whole; a failure at any stage yields an error and nothing else.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"GridironStatsApi/internal/cache"
	"GridironStatsApi/internal/clock"
	"GridironStatsApi/internal/data"
	"GridironStatsApi/internal/jsonlog"
	"GridironStatsApi/internal/rank"
	"GridironStatsApi/internal/stats"
	"GridironStatsApi/internal/validator"
)

// Data freshness cutoffs, measured from the latest ingest timestamp in
// the play set.
const (
	freshCutoff = 7 * 24 * time.Hour
	agingCutoff = 14 * 24 * time.Hour
)

type DataStatus string

const (
	DataFresh DataStatus = "fresh"
	DataAging DataStatus = "aging"
	DataStale DataStatus = "stale"
)

// PlaySource loads a season of play-by-play rows. Satisfied by
// data.PlayModel in production and by stubs in tests.
type PlaySource interface {
	GetSeason(season int) ([]data.Play, error)
}

// Request describes one analysis run.
type Request struct {
	Season     int
	SeasonType data.SeasonType
	Team       string
	Config     stats.Config
}

// Progress is one lifecycle transition, delivered in order.
type Progress struct {
	RequestID string       `json:"request_id"`
	State     RequestState `json:"state"`
	At        time.Time    `json:"at"`
}

type ProgressFunc func(Progress)

// Result is the complete output for one request. It is only ever
// returned whole.
type Result struct {
	RequestID  string          `json:"request_id"`
	Team       data.Team       `json:"team"`
	Season     int             `json:"season"`
	SeasonType data.SeasonType `json:"season_type"`
	ConfigHash string          `json:"config_hash"`

	SeasonStats stats.SeasonStats `json:"season_stats"`
	Games       []stats.GameStats `json:"games"`
	Record      data.TeamRecord   `json:"record"`

	Rankings       []rank.PerformanceRank `json:"rankings"`
	LeagueAverages map[string]float64     `json:"league_averages"`

	DataStatus      DataStatus `json:"data_status"`
	LatestIngestion time.Time  `json:"latest_ingestion"`
	GeneratedAt     time.Time  `json:"generated_at"`
}

// Orchestrator runs requests against one shared cache. Safe for
// concurrent use.
type Orchestrator struct {
	source PlaySource
	cache  *cache.LeagueCache
	clk    clock.Clock
	logger *jsonlog.Logger
}

func NewOrchestrator(source PlaySource, lc *cache.LeagueCache, clk clock.Clock,
	logger *jsonlog.Logger) *Orchestrator {
	return &Orchestrator{
		source: source,
		cache:  lc,
		clk:    clk,
		logger: logger,
	}
}

// Analyze runs the pipeline for one request. The optional progress sink
// receives every state transition, including the terminal one, before
// Analyze returns. On failure the returned error is always a *Error and
// the Result is nil.
func (o *Orchestrator) Analyze(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	requestID := uuid.NewString()

	emit := func(state RequestState) {
		if progress != nil {
			progress(Progress{RequestID: requestID, State: state, At: o.clk.Now()})
		}
	}

	fail := func(err *Error) (*Result, error) {
		emit(StateFailed)
		o.logger.PrintError(err, map[string]string{
			"request_id": requestID,
			"kind":       err.Kind.String(),
		})
		return nil, err
	}

	emit(StatePending)

	if err := o.validate(req); err != nil {
		return fail(err)
	}
	team, err := data.LookupTeam(req.Team)
	if err != nil {
		return fail(newError(KindValidation, "resolving team", err))
	}

	if err := ctx.Err(); err != nil {
		return fail(newError(KindDataUnavailable, "request cancelled", err))
	}

	emit(StateResolvingPlays)

	seasonPlays, err := o.cache.Plays(req.Season, func() ([]data.Play, error) {
		return o.source.GetSeason(req.Season)
	})
	if err != nil {
		if errors.Is(err, data.ErrSeasonUnavailable) {
			return fail(newError(KindDataUnavailable,
				fmt.Sprintf("no play data for the %d season", req.Season), err))
		}
		return fail(newError(KindDataUnavailable,
			fmt.Sprintf("loading plays for the %d season", req.Season), err))
	}

	emit(StateFiltering)

	filtered := stats.FilterSeasonType(seasonPlays, req.SeasonType)
	teamPlays := stats.TeamPlays(filtered, team.Code)

	if len(teamPlays) == 0 {
		if req.SeasonType == data.SeasonTypePost {
			return fail(newError(KindDataUnavailable,
				fmt.Sprintf("%s did not make the playoffs in %d", team.Code, req.Season), nil))
		}
		return fail(newError(KindDataUnavailable,
			fmt.Sprintf("no plays for %s in the %d season", team.Code, req.Season), nil))
	}

	emit(StateCalculating)

	league, err := o.leagueStats(req, filtered)
	if err != nil {
		return fail(o.classify(err))
	}

	games, err := stats.CalculateGameStats(teamPlays, team, req.Config)
	if err != nil {
		return fail(o.classify(err))
	}

	emit(StateRanking)

	rankings, err := o.cache.Rankings(req.Season, req.SeasonType, req.Config, func() (cache.RankEntry, error) {
		return cache.RankEntry{
			Rankings: leagueRankings(league),
			Averages: rank.LeagueAverages(league),
		}, nil
	})
	if err != nil {
		return fail(o.classify(err))
	}

	latest := data.LatestIngestion(teamPlays)

	result := &Result{
		RequestID:       requestID,
		Team:            team,
		Season:          req.Season,
		SeasonType:      req.SeasonType,
		ConfigHash:      req.Config.Hash(),
		SeasonStats:     league[team.Code],
		Games:           games,
		Record:          stats.CalculateTeamRecord(filtered, team.Code),
		Rankings:        rankings.Rankings[team.Code],
		LeagueAverages:  rankings.Averages,
		DataStatus:      o.freshness(latest),
		LatestIngestion: latest,
		GeneratedAt:     o.clk.Now(),
	}

	emit(StateReady)

	o.logger.PrintDebug("analysis complete", map[string]string{
		"request_id": requestID,
		"team":       team.Code,
		"season":     fmt.Sprintf("%d", req.Season),
	})

	return result, nil
}

// InvalidateSeason drops every cached level for a season.
func (o *Orchestrator) InvalidateSeason(season int) int {
	removed := o.cache.InvalidateSeason(season)
	o.logger.PrintInfo("cache invalidated", map[string]string{
		"season":  fmt.Sprintf("%d", season),
		"entries": fmt.Sprintf("%d", removed),
	})
	return removed
}

func (o *Orchestrator) validate(req Request) *Error {
	v := validator.New()

	currentYear := o.clk.Now().Year()
	v.Check(req.Season >= data.MinSeason, "season",
		fmt.Sprintf("must be %d or later", data.MinSeason))
	v.Check(req.Season <= currentYear, "season",
		fmt.Sprintf("must not be after %d", currentYear))

	if _, err := data.LookupTeam(req.Team); err != nil {
		v.AddError("team", "must be a valid team code")
	}

	v.Check(validator.PermittedValue(req.SeasonType,
		data.SeasonTypeAll, data.SeasonTypeReg, data.SeasonTypePost),
		"season_type", "must be one of ALL, REG, POST")

	if !v.Valid() {
		return validationError(v.Errors)
	}
	return nil
}

// leagueStats computes season stats for every team in cache, keyed by
// the request's season, type and config hash.
func (o *Orchestrator) leagueStats(req Request, filtered []data.Play) (map[string]stats.SeasonStats, error) {
	return o.cache.Stats(req.Season, req.SeasonType, req.Config, func() (map[string]stats.SeasonStats, error) {
		league := make(map[string]stats.SeasonStats, 32)
		for _, code := range data.TeamCodes() {
			team, err := data.LookupTeam(code)
			if err != nil {
				return nil, err
			}
			s, err := stats.CalculateSeasonStats(stats.TeamPlays(filtered, code),
				team, req.Season, req.SeasonType, req.Config)
			if err != nil {
				return nil, err
			}
			league[code] = s
		}
		return league, nil
	})
}

func leagueRankings(league map[string]stats.SeasonStats) map[string][]rank.PerformanceRank {
	out := make(map[string][]rank.PerformanceRank, len(league))
	for code := range league {
		out[code] = rank.TeamRankings(league, code)
	}
	return out
}

func (o *Orchestrator) classify(err error) *Error {
	switch {
	case errors.Is(err, stats.ErrInvalidDown):
		return newError(KindComputation, "aggregating play data", err)
	case errors.Is(err, cache.ErrInconsistent):
		return newError(KindCacheConsistency, "verifying cached results", err)
	default:
		return newError(KindComputation, "computing analysis", err)
	}
}

func (o *Orchestrator) freshness(latest time.Time) DataStatus {
	if latest.IsZero() {
		return DataStale
	}
	age := o.clk.Now().Sub(latest)
	switch {
	case age < freshCutoff:
		return DataFresh
	case age < agingCutoff:
		return DataAging
	default:
		return DataStale
	}
}
