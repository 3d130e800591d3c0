// Package rank turns per-team metric values into league-wide standings.
// Ranking is a pure function of the value set it is handed: it never loads
// data and never caches.
package rank

import (
	"errors"
	"fmt"
	"sort"

	"GridironStatsApi/internal/stats"
)

var ErrUnknownMetric = errors.New("unknown ranking metric")

// PerformanceRank places one team's metric value inside the league.
type PerformanceRank struct {
	Metric      string  `json:"metric"`
	Team        string  `json:"team"`
	Value       float64 `json:"value"`
	Rank        int     `json:"rank"`
	TotalTeams  int     `json:"total_teams"`
	Description string  `json:"description"`
}

// Metric is a rankable view over season stats. LowerIsBetter flips the
// sort for metrics where small numbers win, like turnovers.
type Metric struct {
	Name          string
	LowerIsBetter bool
	Extract       func(stats.SeasonStats) float64
}

var metrics = []Metric{
	{Name: "avg_yards_per_play", Extract: func(s stats.SeasonStats) float64 { return s.AvgYardsPerPlay }},
	{Name: "rush_ypc", Extract: func(s stats.SeasonStats) float64 { return s.RushYPC }},
	{Name: "points_per_drive", Extract: func(s stats.SeasonStats) float64 { return s.PointsPerDrive }},
	{Name: "success_rate", Extract: func(s stats.SeasonStats) float64 { return s.SuccessRate }},
	{Name: "third_down_pct", Extract: func(s stats.SeasonStats) float64 { return s.ThirdDownPct }},
	{Name: "completion_pct", Extract: func(s stats.SeasonStats) float64 { return s.CompletionPct }},
	{Name: "redzone_td_pct", Extract: func(s stats.SeasonStats) float64 { return s.RedZoneTDPct }},
	{Name: "first_downs_per_game", Extract: func(s stats.SeasonStats) float64 { return s.FirstDownsPerGame }},
	{Name: "turnovers_per_game", LowerIsBetter: true, Extract: func(s stats.SeasonStats) float64 { return s.TurnoversPerGame }},
	{Name: "sacks_per_game", LowerIsBetter: true, Extract: func(s stats.SeasonStats) float64 { return s.SacksPerGame }},
	{Name: "penalty_yards_per_game", LowerIsBetter: true, Extract: func(s stats.SeasonStats) float64 { return s.PenaltyYardsPerGame }},
}

// Metrics lists every rankable metric in registry order.
func Metrics() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// Lookup finds a metric by name.
func Lookup(name string) (Metric, error) {
	for _, m := range metrics {
		if m.Name == name {
			return m, nil
		}
	}
	return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// League ranks every team's value for one metric. Ties share the best
// position and the next distinct value skips past them, so values 10, 10,
// 8 rank 1, 1, 3. Output order is rank then team code, which makes the
// result deterministic for equal inputs.
func League(metric string, values map[string]float64, lowerIsBetter bool) []PerformanceRank {
	type entry struct {
		team  string
		value float64
	}

	entries := make([]entry, 0, len(values))
	for team, value := range values {
		entries = append(entries, entry{team: team, value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			if lowerIsBetter {
				return entries[i].value < entries[j].value
			}
			return entries[i].value > entries[j].value
		}
		return entries[i].team < entries[j].team
	})

	total := len(entries)
	ranks := make([]PerformanceRank, 0, total)
	for i, e := range entries {
		rank := i + 1
		if i > 0 && e.value == entries[i-1].value {
			rank = ranks[i-1].Rank
		}
		ranks = append(ranks, PerformanceRank{
			Metric:      metric,
			Team:        e.team,
			Value:       e.value,
			Rank:        rank,
			TotalTeams:  total,
			Description: describe(rank, total),
		})
	}

	return ranks
}

// TeamRankings ranks one team across every registered metric, given the
// full league's season stats.
func TeamRankings(league map[string]stats.SeasonStats, teamCode string) []PerformanceRank {
	out := make([]PerformanceRank, 0, len(metrics))
	for _, m := range metrics {
		values := make(map[string]float64, len(league))
		for code, s := range league {
			values[code] = m.Extract(s)
		}
		for _, r := range League(m.Name, values, m.LowerIsBetter) {
			if r.Team == teamCode {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// LeagueAverages computes the mean of every registered metric across the
// league's season stats.
func LeagueAverages(league map[string]stats.SeasonStats) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	if len(league) == 0 {
		return out
	}
	for _, m := range metrics {
		var sum float64
		for _, s := range league {
			sum += m.Extract(s)
		}
		out[m.Name] = sum / float64(len(league))
	}
	return out
}

// describe maps a rank position to a tier label. Thresholds scale with
// the field so partial leagues still read sensibly.
func describe(rank, total int) string {
	switch {
	case rank == 1:
		return "Best in NFL"
	case rank <= total/8:
		return "Elite"
	case rank <= total/4:
		return "Excellent"
	case rank <= total/2:
		return "Above Average"
	case rank <= total*3/4:
		return "Below Average"
	default:
		return "Poor"
	}
}
