package stats

import (
	"errors"
	"fmt"
	"sort"

	"GridironStatsApi/internal/data"
)

// ErrInvalidDown marks a play whose down survived upstream validation but
// is outside 0-4. It signals a programming or ingestion defect, never a
// normal data condition.
var ErrInvalidDown = errors.New("play has down outside valid range")

// Scoring values and thresholds for the success-rate rule.
const (
	touchdownPoints = 6
	extraPointValue = 1
	twoPointValue   = 2
	fieldGoalPoints = 3

	redZoneYardLine = 20

	firstDownSuccessShare  = 0.4
	secondDownSuccessShare = 0.6
	conversionSuccessShare = 1.0
)

// GameStats is one team's aggregate for a single game. Instances are
// derived values: recompute and replace, never mutate.
type GameStats struct {
	GameID   string `json:"game_id"`
	Week     int    `json:"week"`
	Opponent string `json:"opponent"`
	Home     bool   `json:"home"`

	TotalPlays     int     `json:"total_plays"`
	TotalYards     float64 `json:"total_yards"`
	YardsPerPlay   float64 `json:"yards_per_play"`
	Turnovers      int     `json:"turnovers"`
	CompletionPct  float64 `json:"completion_pct"`
	RushYPC        float64 `json:"rush_ypc"`
	SacksAllowed   int     `json:"sacks_allowed"`
	ThirdDownPct   float64 `json:"third_down_pct"`
	SuccessRate    float64 `json:"success_rate"`
	FirstDowns     int     `json:"first_downs"`
	PointsPerDrive float64 `json:"points_per_drive"`
	RedZoneTDPct   float64 `json:"redzone_td_pct"`
	PenaltyYards   float64 `json:"penalty_yards"`
}

// SeasonStats is the same metric set aggregated across a team's season,
// plus the raw totals the percentages are built from.
type SeasonStats struct {
	Team       data.Team       `json:"team"`
	Season     int             `json:"season"`
	SeasonType data.SeasonType `json:"season_type"`

	GamesPlayed int `json:"games_played"`

	TotalPlays      int     `json:"total_plays"`
	TotalYards      float64 `json:"total_yards"`
	AvgYardsPerPlay float64 `json:"avg_yards_per_play"`

	PassAttempts    int     `json:"pass_attempts"`
	PassCompletions int     `json:"pass_completions"`
	CompletionPct   float64 `json:"completion_pct"`

	RushAttempts int     `json:"rush_attempts"`
	RushYards    float64 `json:"rush_yards"`
	RushYPC      float64 `json:"rush_ypc"`

	Interceptions    int     `json:"interceptions"`
	FumblesLost      int     `json:"fumbles_lost"`
	TotalTurnovers   int     `json:"total_turnovers"`
	TurnoversPerGame float64 `json:"turnovers_per_game"`

	ThirdDowns               int     `json:"third_downs"`
	ThirdDownConversions     int     `json:"third_down_conversions"`
	ThirdDownRushConversions int     `json:"third_down_rush_conversions"`
	ThirdDownPassConversions int     `json:"third_down_pass_conversions"`
	ThirdDownPct             float64 `json:"third_down_pct"`

	SuccessRate float64 `json:"success_rate"`

	FirstDownSuccesses  int `json:"first_down_successes"`
	FirstDownAttempts   int `json:"first_down_attempts"`
	SecondDownSuccesses int `json:"second_down_successes"`
	SecondDownAttempts  int `json:"second_down_attempts"`
	LateDownSuccesses   int `json:"late_down_successes"`
	LateDownAttempts    int `json:"late_down_attempts"`

	FirstDowns        int     `json:"first_downs"`
	FirstDownsRush    int     `json:"first_downs_rush"`
	FirstDownsPass    int     `json:"first_downs_pass"`
	FirstDownsPenalty int     `json:"first_downs_penalty"`
	FirstDownsPerGame float64 `json:"first_downs_per_game"`

	Sacks        int     `json:"sacks"`
	SacksPerGame float64 `json:"sacks_per_game"`

	PenaltyYards        float64 `json:"penalty_yards"`
	PenaltyYardsPerGame float64 `json:"penalty_yards_per_game"`

	Drives              int     `json:"drives"`
	Touchdowns          int     `json:"touchdowns"`
	ExtraPoints         int     `json:"extra_points"`
	TwoPointConversions int     `json:"two_point_conversions"`
	FieldGoals          int     `json:"field_goals"`
	OffensivePoints     int     `json:"offensive_points"`
	PointsPerDrive      float64 `json:"points_per_drive"`

	RedZoneTrips      int     `json:"redzone_trips"`
	RedZoneTDs        int     `json:"redzone_tds"`
	RedZoneFieldGoals int     `json:"redzone_field_goals"`
	RedZoneFailed     int     `json:"redzone_failed"`
	RedZoneTDPct      float64 `json:"redzone_td_pct"`
}

// TeamPlays slices the plays a team had possession for, preserving order.
func TeamPlays(plays []data.Play, teamCode string) []data.Play {
	out := make([]data.Play, 0, len(plays)/16)
	for _, p := range plays {
		if p.PosTeam == teamCode {
			out = append(out, p)
		}
	}
	return out
}

// FilterSeasonType slices plays matching the season-type filter, preserving
// order.
func FilterSeasonType(plays []data.Play, st data.SeasonType) []data.Play {
	if st == data.SeasonTypeAll {
		return plays
	}
	out := make([]data.Play, 0, len(plays))
	for _, p := range plays {
		if st.Matches(p.SeasonType) {
			out = append(out, p)
		}
	}
	return out
}

// CalculateSeasonStats aggregates one team's plays for a season. An empty
// play set yields zero-valued stats and a nil error; only an internal
// invariant violation returns an error.
func CalculateSeasonStats(plays []data.Play, team data.Team, season int,
	st data.SeasonType, cfg Config) (SeasonStats, error) {
	stats := SeasonStats{Team: team, Season: season, SeasonType: st}

	t, err := aggregate(plays, team.Code, cfg)
	if err != nil {
		return SeasonStats{}, err
	}

	stats.GamesPlayed = len(t.games)

	stats.TotalPlays = t.plays
	stats.TotalYards = t.yards
	stats.AvgYardsPerPlay = ratio(t.yards, t.plays)

	stats.PassAttempts = t.passAttempts
	stats.PassCompletions = t.passCompletions
	stats.CompletionPct = percentage(t.passCompletions, t.passAttempts)

	stats.RushAttempts = t.rushAttempts
	stats.RushYards = t.rushYards
	stats.RushYPC = ratio(t.rushYards, t.rushAttempts)

	stats.Interceptions = t.interceptions
	stats.FumblesLost = t.fumblesLost
	stats.TotalTurnovers = t.turnovers
	stats.TurnoversPerGame = perGame(t.turnovers, stats.GamesPlayed)

	stats.ThirdDowns = t.thirdDowns
	stats.ThirdDownConversions = t.thirdDownConversions
	stats.ThirdDownRushConversions = t.thirdDownRushConversions
	stats.ThirdDownPassConversions = t.thirdDownPassConversions
	stats.ThirdDownPct = percentage(t.thirdDownConversions, t.thirdDowns)

	stats.SuccessRate = percentage(t.successes, t.successEligible)
	stats.FirstDownSuccesses = t.downSuccesses[0]
	stats.FirstDownAttempts = t.downAttempts[0]
	stats.SecondDownSuccesses = t.downSuccesses[1]
	stats.SecondDownAttempts = t.downAttempts[1]
	stats.LateDownSuccesses = t.downSuccesses[2]
	stats.LateDownAttempts = t.downAttempts[2]

	stats.FirstDowns = t.firstDowns
	stats.FirstDownsRush = t.firstDownsRush
	stats.FirstDownsPass = t.firstDownsPass
	stats.FirstDownsPenalty = t.firstDownsPenalty
	stats.FirstDownsPerGame = perGame(t.firstDowns, stats.GamesPlayed)

	stats.Sacks = t.sacks
	stats.SacksPerGame = perGame(t.sacks, stats.GamesPlayed)

	stats.PenaltyYards = t.penaltyYards
	stats.PenaltyYardsPerGame = ratio(t.penaltyYards, stats.GamesPlayed)

	stats.Drives = len(t.drives)
	stats.Touchdowns = t.touchdowns
	stats.ExtraPoints = t.extraPoints
	stats.TwoPointConversions = t.twoPointConversions
	stats.FieldGoals = t.fieldGoals
	stats.OffensivePoints = t.points
	stats.PointsPerDrive = ratio(float64(t.points), len(t.drives))

	stats.RedZoneTrips = len(t.redZoneTrips)
	for _, trip := range t.redZoneTrips {
		switch {
		case trip.touchdown:
			stats.RedZoneTDs++
		case trip.fieldGoal:
			stats.RedZoneFieldGoals++
		default:
			stats.RedZoneFailed++
		}
	}
	stats.RedZoneTDPct = percentage(stats.RedZoneTDs, stats.RedZoneTrips)

	return stats, nil
}

// CalculateGameStats produces a per-game log for one team's plays, ordered
// by week then game identifier.
func CalculateGameStats(plays []data.Play, team data.Team, cfg Config) ([]GameStats, error) {
	byGame := make(map[string][]data.Play)
	order := make([]string, 0)
	for _, p := range plays {
		if _, seen := byGame[p.GameID]; !seen {
			order = append(order, p.GameID)
		}
		byGame[p.GameID] = append(byGame[p.GameID], p)
	}

	games := make([]GameStats, 0, len(order))
	for _, gameID := range order {
		gamePlays := byGame[gameID]
		t, err := aggregate(gamePlays, team.Code, cfg)
		if err != nil {
			return nil, err
		}

		first := gamePlays[0]
		gs := GameStats{
			GameID:   gameID,
			Week:     first.Week,
			Opponent: first.DefTeam,
			Home:     first.HomeTeam == team.Code,

			TotalPlays:     t.plays,
			TotalYards:     t.yards,
			YardsPerPlay:   ratio(t.yards, t.plays),
			Turnovers:      t.turnovers,
			CompletionPct:  percentage(t.passCompletions, t.passAttempts),
			RushYPC:        ratio(t.rushYards, t.rushAttempts),
			SacksAllowed:   t.sacks,
			ThirdDownPct:   percentage(t.thirdDownConversions, t.thirdDowns),
			SuccessRate:    percentage(t.successes, t.successEligible),
			FirstDowns:     t.firstDowns,
			PointsPerDrive: ratio(float64(t.points), len(t.drives)),
			PenaltyYards:   t.penaltyYards,
		}

		var rzTDs, rzTrips int
		for _, trip := range t.redZoneTrips {
			rzTrips++
			if trip.touchdown {
				rzTDs++
			}
		}
		gs.RedZoneTDPct = percentage(rzTDs, rzTrips)

		games = append(games, gs)
	}

	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Week != games[j].Week {
			return games[i].Week < games[j].Week
		}
		return games[i].GameID < games[j].GameID
	})

	return games, nil
}

// CalculateTeamRecord derives the win/loss/tie record from the final play
// of each game the team possessed the ball in. Scores come from game
// outcomes, not play aggregation.
func CalculateTeamRecord(plays []data.Play, teamCode string) data.TeamRecord {
	type finalScore struct {
		playID    int64
		teamScore int
		oppScore  int
	}

	finals := make(map[string]finalScore)
	for _, p := range plays {
		if p.PosTeam != teamCode {
			continue
		}
		last, seen := finals[p.GameID]
		if !seen || p.PlayID > last.playID {
			finals[p.GameID] = finalScore{
				playID:    p.PlayID,
				teamScore: p.PosTeamScorePost,
				oppScore:  p.DefTeamScorePost,
			}
		}
	}

	var record data.TeamRecord
	for _, f := range finals {
		switch {
		case f.teamScore > f.oppScore:
			record.Wins++
		case f.teamScore < f.oppScore:
			record.Losses++
		default:
			record.Ties++
		}
	}
	return record
}

type driveRef struct {
	gameID  string
	driveID string
}

type redZoneTrip struct {
	touchdown bool
	fieldGoal bool
}

// tally accumulates every counter in a single pass over a play set.
type tally struct {
	plays int
	yards float64

	passAttempts    int
	passCompletions int

	rushAttempts int
	rushYards    float64

	interceptions int
	fumblesLost   int
	turnovers     int

	thirdDowns               int
	thirdDownConversions     int
	thirdDownRushConversions int
	thirdDownPassConversions int

	successEligible int
	successes       int
	downAttempts    [3]int // index 0: 1st down, 1: 2nd, 2: 3rd and 4th
	downSuccesses   [3]int

	firstDowns        int
	firstDownsRush    int
	firstDownsPass    int
	firstDownsPenalty int

	sacks        int
	penaltyYards float64

	games map[string]struct{}

	drives              map[driveRef]struct{}
	points              int
	touchdowns          int
	extraPoints         int
	twoPointConversions int
	fieldGoals          int

	redZoneTrips map[driveRef]*redZoneTrip
}

func aggregate(plays []data.Play, teamCode string, cfg Config) (*tally, error) {
	t := &tally{
		games:        make(map[string]struct{}),
		drives:       make(map[driveRef]struct{}),
		redZoneTrips: make(map[driveRef]*redZoneTrip),
	}

	for _, p := range plays {
		if p.Down < 0 || p.Down > 4 {
			return nil, fmt.Errorf("%w: down %d on play %d of game %s",
				ErrInvalidDown, p.Down, p.PlayID, p.GameID)
		}

		t.games[p.GameID] = struct{}{}

		if Included(p, CategoryVolume, cfg) {
			t.plays++
			t.yards += p.YardsGained
		}

		if Included(p, CategoryRushing, cfg) {
			t.rushAttempts++
			t.rushYards += p.YardsGained
		}

		if Included(p, CategoryCompletion, cfg) {
			t.passAttempts++
			if p.CompletePass {
				t.passCompletions++
			}
		}

		if p.Interception {
			t.interceptions++
		}
		if p.FumbleLost {
			t.fumblesLost++
		}
		// Logical OR so a pick fumbled on the return counts once.
		if p.Interception || p.FumbleLost {
			t.turnovers++
		}

		if Included(p, CategoryThirdDown, cfg) {
			t.thirdDowns++
			if p.FirstDown || p.Touchdown {
				t.thirdDownConversions++
				if p.RushAttempt {
					t.thirdDownRushConversions++
				}
				if p.PassAttempt {
					t.thirdDownPassConversions++
				}
			}
		}

		if p.Down >= 1 && Included(p, CategorySuccessRate, cfg) {
			t.successEligible++
			bucket := min(p.Down, 3) - 1
			t.downAttempts[bucket]++
			if successful(p) {
				t.successes++
				t.downSuccesses[bucket]++
			}
		}

		if p.FirstDownRush || p.FirstDownPass || p.FirstDownPenalty {
			t.firstDowns++
		}
		if p.FirstDownRush {
			t.firstDownsRush++
		}
		if p.FirstDownPass {
			t.firstDownsPass++
		}
		if p.FirstDownPenalty {
			t.firstDownsPenalty++
		}

		if p.Sack {
			t.sacks++
		}

		if p.Penalty && p.PenaltyTeam == teamCode && p.PosTeam == teamCode {
			t.penaltyYards += p.PenaltyYards
		}

		if p.DriveID != "" {
			ref := driveRef{gameID: p.GameID, driveID: p.DriveID}
			t.drives[ref] = struct{}{}

			offensiveTD := offensiveTouchdown(p, teamCode)
			if offensiveTD {
				t.touchdowns++
				t.points += touchdownPoints
			}
			if p.ExtraPointGood {
				t.extraPoints++
				t.points += extraPointValue
			}
			if p.TwoPointAttempt && p.TwoPointSuccess {
				t.twoPointConversions++
				t.points += twoPointValue
			}
			if p.FieldGoalMade {
				t.fieldGoals++
				t.points += fieldGoalPoints
			}

			// A red-zone trip is one contiguous drive grouping key with a
			// snap inside the opponent 20; play count never matters.
			if p.YardLine100 > 0 && p.YardLine100 <= redZoneYardLine {
				trip, seen := t.redZoneTrips[ref]
				if !seen {
					trip = &redZoneTrip{}
					t.redZoneTrips[ref] = trip
				}
				if offensiveTD {
					trip.touchdown = true
				}
				if p.FieldGoalMade {
					trip.fieldGoal = true
				}
			}
		}
	}

	return t, nil
}

// successful applies the down-threshold rule. Callers have already checked
// category eligibility and that the down is known.
func successful(p data.Play) bool {
	if p.Touchdown {
		return true
	}
	switch p.Down {
	case 1:
		return p.YardsGained >= firstDownSuccessShare*p.YardsToGo
	case 2:
		return p.YardsGained >= secondDownSuccessShare*p.YardsToGo
	default:
		return p.YardsGained >= conversionSuccessShare*p.YardsToGo
	}
}

// offensiveTouchdown excludes pick-sixes and return scores credited to the
// defense while the team had possession.
func offensiveTouchdown(p data.Play, teamCode string) bool {
	if !p.Touchdown {
		return false
	}
	if p.TouchdownTeam != "" {
		return p.TouchdownTeam == teamCode
	}
	return p.Scrimmage() || p.TwoPointAttempt
}

func percentage(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

func ratio(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func perGame(total, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(total) / float64(games)
}
