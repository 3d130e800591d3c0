package cache

import (
	"errors"
	"fmt"

	"GridironStatsApi/internal/clock"
	"GridironStatsApi/internal/data"
	"GridironStatsApi/internal/rank"
	"GridironStatsApi/internal/stats"
)

// ErrInconsistent means a cached entry's stored configuration hash does
// not match the hash that keyed the lookup. The entry cannot be trusted
// and the caller should invalidate and recompute.
var ErrInconsistent = errors.New("cached entry does not match its configuration hash")

// StatsEntry is one league's computed season stats under one
// configuration. The hash travels with the value so reads can verify the
// entry against the key that found it.
type StatsEntry struct {
	ConfigHash string
	Teams      map[string]stats.SeasonStats
}

// RankEntry is the full league ranking output under one configuration.
type RankEntry struct {
	ConfigHash string
	Rankings   map[string][]rank.PerformanceRank
	Averages   map[string]float64
}

// LeagueCache layers three levels of derived results over one Cache:
// raw season plays, computed team stats, and league rankings. Lower
// levels are shared by every configuration; upper levels key on the
// configuration hash so different configs never collide.
type LeagueCache struct {
	cache *Cache
}

func NewLeagueCache(clk clock.Clock) *LeagueCache {
	return &LeagueCache{cache: New(clk)}
}

func playsKey(season int) string {
	return fmt.Sprintf("plays:%d", season)
}

func statsKey(season int, st data.SeasonType, hash string) string {
	return fmt.Sprintf("stats:%d:%s:%s", season, st, hash)
}

func rankKey(season int, st data.SeasonType, hash string) string {
	return fmt.Sprintf("rank:%d:%s:%s", season, st, hash)
}

// Plays returns the full season's plays, fetching once on a miss no
// matter how many callers arrive together. Season-type filtering happens
// above this level so every filter shares one fetch.
func (lc *LeagueCache) Plays(season int, fetch func() ([]data.Play, error)) ([]data.Play, error) {
	v, err := lc.cache.GetOrCompute(playsKey(season), func() (any, error) {
		return fetch()
	})
	if err != nil {
		return nil, err
	}
	return v.([]data.Play), nil
}

// Stats returns the league's season stats for one configuration,
// computing them on a miss.
func (lc *LeagueCache) Stats(season int, st data.SeasonType, cfg stats.Config,
	compute func() (map[string]stats.SeasonStats, error)) (map[string]stats.SeasonStats, error) {

	hash := cfg.Hash()
	key := statsKey(season, st, hash)

	v, err := lc.cache.GetOrCompute(key, func() (any, error) {
		teams, err := compute()
		if err != nil {
			return nil, err
		}
		return StatsEntry{ConfigHash: hash, Teams: teams}, nil
	})
	if err != nil {
		return nil, err
	}

	se := v.(StatsEntry)
	if se.ConfigHash != hash {
		lc.cache.Invalidate(key)
		return nil, fmt.Errorf("%w: key %s holds hash %s", ErrInconsistent, key, se.ConfigHash)
	}
	return se.Teams, nil
}

// Rankings returns the league ranking output for one configuration,
// computing it on a miss.
func (lc *LeagueCache) Rankings(season int, st data.SeasonType, cfg stats.Config,
	compute func() (RankEntry, error)) (RankEntry, error) {

	hash := cfg.Hash()
	key := rankKey(season, st, hash)

	v, err := lc.cache.GetOrCompute(key, func() (any, error) {
		re, err := compute()
		if err != nil {
			return nil, err
		}
		re.ConfigHash = hash
		return re, nil
	})
	if err != nil {
		return RankEntry{}, err
	}

	re := v.(RankEntry)
	if re.ConfigHash != hash {
		lc.cache.Invalidate(key)
		return RankEntry{}, fmt.Errorf("%w: key %s holds hash %s", ErrInconsistent, key, re.ConfigHash)
	}
	return re, nil
}

// InvalidateSeason drops every level for one season and returns the
// number of entries removed. Used after a fresh ingest lands.
func (lc *LeagueCache) InvalidateSeason(season int) int {
	removed := lc.cache.Invalidate(playsKey(season))
	removed += lc.cache.Invalidate(fmt.Sprintf("stats:%d:", season))
	removed += lc.cache.Invalidate(fmt.Sprintf("rank:%d:", season))
	return removed
}

// Len reports the number of live entries across all levels.
func (lc *LeagueCache) Len() int {
	return lc.cache.Len()
}
