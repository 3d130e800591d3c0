package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var (
	ErrSeasonUnavailable = errors.New("season data unavailable")
	ErrInvalidSeasonType = errors.New("invalid season type")
)

// MinSeason is the first season with play-by-play coverage upstream.
const MinSeason = 1999

// SeasonType filters plays by the part of the season they belong to.
type SeasonType string

const (
	SeasonTypeAll  SeasonType = "ALL"
	SeasonTypeReg  SeasonType = "REG"
	SeasonTypePost SeasonType = "POST"
)

func ParseSeasonType(s string) (SeasonType, error) {
	switch SeasonType(s) {
	case SeasonTypeAll, SeasonTypeReg, SeasonTypePost:
		return SeasonType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSeasonType, s)
	}
}

// Matches reports whether a play tagged pt passes the filter st.
func (st SeasonType) Matches(pt SeasonType) bool {
	return st == SeasonTypeAll || st == pt
}

// Play is one row of play-by-play data. Boolean flags come through the
// ingest pipeline already normalised; a Down of 0 means no down was
// recorded (kickoffs, extra points, aborted snaps).
type Play struct {
	Season     int        `json:"season"`
	SeasonType SeasonType `json:"season_type"`
	Week       int        `json:"week"`
	GameID     string     `json:"game_id"`
	PlayID     int64      `json:"play_id"`

	PosTeam  string `json:"posteam"`
	DefTeam  string `json:"defteam"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	Down        int     `json:"down"`
	YardsToGo   float64 `json:"ydstogo"`
	YardLine100 int     `json:"yardline_100"`
	PlayType    string  `json:"play_type"`
	YardsGained float64 `json:"yards_gained"`

	Touchdown        bool   `json:"touchdown"`
	TouchdownTeam    string `json:"td_team"`
	FirstDown        bool   `json:"first_down"`
	FirstDownRush    bool   `json:"first_down_rush"`
	FirstDownPass    bool   `json:"first_down_pass"`
	FirstDownPenalty bool   `json:"first_down_penalty"`

	RushAttempt  bool `json:"rush_attempt"`
	PassAttempt  bool `json:"pass_attempt"`
	CompletePass bool `json:"complete_pass"`
	Sack         bool `json:"sack"`

	Interception bool `json:"interception"`
	FumbleLost   bool `json:"fumble_lost"`

	Penalty      bool    `json:"penalty"`
	PenaltyTeam  string  `json:"penalty_team"`
	PenaltyYards float64 `json:"penalty_yards"`

	QBKneel bool `json:"qb_kneel"`
	QBSpike bool `json:"qb_spike"`

	TwoPointAttempt bool `json:"two_point_attempt"`
	TwoPointSuccess bool `json:"two_point_success"`
	ExtraPointGood  bool `json:"extra_point_good"`
	FieldGoalMade   bool `json:"field_goal_made"`

	// Success is the upstream expected-points flag. It travels with the
	// play but local success-rate computation applies its own rule.
	Success bool `json:"success"`

	DriveID          string `json:"drive_id"`
	PosTeamScorePost int    `json:"posteam_score_post"`
	DefTeamScorePost int    `json:"defteam_score_post"`

	IngestedAt time.Time `json:"ingested_at"`
}

// Scrimmage reports whether the play is an ordinary offensive snap: a rush
// or pass attempt that is not a two-point try.
func (p Play) Scrimmage() bool {
	return (p.RushAttempt || p.PassAttempt) && !p.TwoPointAttempt
}

type PlayModel struct {
	db *sql.DB
}

// GetSeason loads every play for a season, ordered by game then play. The
// query runs on its own timeout rather than the caller's context so that
// waiters sharing the fetch are not cancelled when the first caller walks
// away.
func (m PlayModel) GetSeason(season int) ([]Play, error) {
	query := `
		SELECT season, season_type, week, game_id, play_id,
			posteam, defteam, home_team, away_team,
			down, ydstogo, yardline_100, play_type, yards_gained,
			touchdown, td_team, first_down,
			first_down_rush, first_down_pass, first_down_penalty,
			rush_attempt, pass_attempt, complete_pass, sack,
			interception, fumble_lost,
			penalty, penalty_team, penalty_yards,
			qb_kneel, qb_spike,
			two_point_attempt, two_point_success,
			extra_point_good, field_goal_made,
			success, drive_id,
			posteam_score_post, defteam_score_post,
			ingested_at
		FROM plays
		WHERE season = $1
		ORDER BY game_id, play_id`

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, query, season)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Class() == "42" {
			return nil, fmt.Errorf("plays schema error: %w", err)
		}
		return nil, err
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var (
			p            Play
			seasonType   string
			down         sql.NullInt64
			ydsToGo      sql.NullFloat64
			yardline     sql.NullInt64
			playType     sql.NullString
			yardsGained  sql.NullFloat64
			tdTeam       sql.NullString
			penaltyTeam  sql.NullString
			penaltyYards sql.NullFloat64
			driveID      sql.NullString
			posScorePost sql.NullInt64
			defScorePost sql.NullInt64
		)

		err := rows.Scan(
			&p.Season, &seasonType, &p.Week, &p.GameID, &p.PlayID,
			&p.PosTeam, &p.DefTeam, &p.HomeTeam, &p.AwayTeam,
			&down, &ydsToGo, &yardline, &playType, &yardsGained,
			&p.Touchdown, &tdTeam, &p.FirstDown,
			&p.FirstDownRush, &p.FirstDownPass, &p.FirstDownPenalty,
			&p.RushAttempt, &p.PassAttempt, &p.CompletePass, &p.Sack,
			&p.Interception, &p.FumbleLost,
			&p.Penalty, &penaltyTeam, &penaltyYards,
			&p.QBKneel, &p.QBSpike,
			&p.TwoPointAttempt, &p.TwoPointSuccess,
			&p.ExtraPointGood, &p.FieldGoalMade,
			&p.Success, &driveID,
			&posScorePost, &defScorePost,
			&p.IngestedAt,
		)
		if err != nil {
			return nil, err
		}

		p.SeasonType = SeasonType(seasonType)
		p.Down = int(down.Int64)
		p.YardsToGo = ydsToGo.Float64
		p.YardLine100 = int(yardline.Int64)
		p.PlayType = playType.String
		p.YardsGained = yardsGained.Float64
		p.TouchdownTeam = tdTeam.String
		p.PenaltyTeam = penaltyTeam.String
		p.PenaltyYards = penaltyYards.Float64
		p.DriveID = driveID.String
		p.PosTeamScorePost = int(posScorePost.Int64)
		p.DefTeamScorePost = int(defScorePost.Int64)

		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(plays) == 0 {
		return nil, fmt.Errorf("%w: season %d", ErrSeasonUnavailable, season)
	}

	return plays, nil
}

// LatestIngestion returns the most recent ingest timestamp in a play set,
// or the zero time when the set is empty.
func LatestIngestion(plays []Play) time.Time {
	var latest time.Time
	for _, p := range plays {
		if p.IngestedAt.After(latest) {
			latest = p.IngestedAt
		}
	}
	return latest
}
