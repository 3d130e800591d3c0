package stats

import "GridironStatsApi/internal/data"

// MetricCategory selects which family of metrics a play is being tested
// for. The same play can count toward one category and not another under
// the same configuration.
type MetricCategory int

const (
	// CategoryVolume covers total plays, total yards and yards per play.
	CategoryVolume MetricCategory = iota
	// CategoryRushing covers rush attempts and yards per carry.
	CategoryRushing
	// CategoryCompletion covers pass attempts and completion percentage.
	CategoryCompletion
	// CategorySuccessRate covers the down-threshold success metric.
	CategorySuccessRate
	// CategoryThirdDown covers third-down conversion attempts.
	CategoryThirdDown
)

type playPredicate func(p data.Play, cfg Config) bool

// Each category owns an ordered predicate list. Adding a metric category is
// a table entry, not a new code path.
var categoryPredicates = map[MetricCategory][]playPredicate{
	CategoryVolume:      {scrimmage},
	CategoryRushing:     {scrimmage, rushAttempt, kneelRushingGate},
	CategoryCompletion:  {scrimmage, passAttempt, notSack, spikeCompletionGate},
	CategorySuccessRate: {scrimmage, kneelSuccessGate, spikeSuccessGate},
	CategoryThirdDown:   {scrimmage, thirdDown, kneelSuccessGate},
}

// Included decides whether a play counts toward a metric category under a
// configuration. Pure: no inputs are mutated and no state is consulted.
func Included(p data.Play, category MetricCategory, cfg Config) bool {
	predicates, ok := categoryPredicates[category]
	if !ok {
		return false
	}
	for _, predicate := range predicates {
		if !predicate(p, cfg) {
			return false
		}
	}
	return true
}

// scrimmage is the base eligibility rule for every offensive metric: a rush
// or pass attempt that is not a two-point try. Two-point conversions are
// scored separately and never count as ordinary plays.
func scrimmage(p data.Play, _ Config) bool {
	return p.Scrimmage()
}

func rushAttempt(p data.Play, _ Config) bool {
	return p.RushAttempt
}

func passAttempt(p data.Play, _ Config) bool {
	return p.PassAttempt
}

func notSack(p data.Play, _ Config) bool {
	return !p.Sack
}

func thirdDown(p data.Play, _ Config) bool {
	return p.Down == 3
}

func kneelRushingGate(p data.Play, cfg Config) bool {
	return !p.QBKneel || cfg.IncludeQBKneelsRushing
}

func kneelSuccessGate(p data.Play, cfg Config) bool {
	return !p.QBKneel || cfg.IncludeQBKneelsSuccessRate
}

func spikeCompletionGate(p data.Play, cfg Config) bool {
	return !p.QBSpike || cfg.IncludeQBSpikesCompletion
}

func spikeSuccessGate(p data.Play, cfg Config) bool {
	return !p.QBSpike || cfg.IncludeQBSpikesSuccessRate
}
