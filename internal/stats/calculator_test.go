package stats

import (
	"testing"

	"GridironStatsApi/internal/assert"
	"GridironStatsApi/internal/data"
)

var cardinals = data.Team{Code: "ARI", Name: "Arizona Cardinals"}

func play(mutate func(*data.Play)) data.Play {
	p := data.Play{
		Season:     2024,
		SeasonType: data.SeasonTypeReg,
		Week:       1,
		GameID:     "2024_01_ARI_BUF",
		PlayID:     1,
		PosTeam:    "ARI",
		DefTeam:    "BUF",
		HomeTeam:   "BUF",
		AwayTeam:   "ARI",
		Down:       1,
		YardsToGo:  10,
		DriveID:    "1",
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestSuccessRule(t *testing.T) {
	tests := []struct {
		name    string
		down    int
		toGo    float64
		gained  float64
		td      bool
		success bool
	}{
		{name: "first down at exactly forty percent", down: 1, toGo: 10, gained: 4, success: true},
		{name: "first down just under forty percent", down: 1, toGo: 10, gained: 3.9, success: false},
		{name: "second down at exactly sixty percent", down: 2, toGo: 10, gained: 6, success: true},
		{name: "second down just under sixty percent", down: 2, toGo: 10, gained: 5.9, success: false},
		{name: "third down converted exactly", down: 3, toGo: 5, gained: 5, success: true},
		{name: "third down one short", down: 3, toGo: 5, gained: 4, success: false},
		{name: "fourth down converted", down: 4, toGo: 2, gained: 6, success: true},
		{name: "fourth down stuffed", down: 4, toGo: 2, gained: 1, success: false},
		{name: "touchdown is always successful", down: 3, toGo: 15, gained: 3, td: true, success: true},
		{name: "loss of yards on first down", down: 1, toGo: 10, gained: -2, success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := play(func(p *data.Play) {
				p.RushAttempt = true
				p.Down = tt.down
				p.YardsToGo = tt.toGo
				p.YardsGained = tt.gained
				p.Touchdown = tt.td
			})
			stats, err := CalculateSeasonStats([]data.Play{p}, cardinals, 2024, data.SeasonTypeReg, Config{})
			assert.NilError(t, err)
			want := 0.0
			if tt.success {
				want = 100.0
			}
			assert.Float64Equal(t, stats.SuccessRate, want)
		})
	}
}

func TestCalculateSeasonStats(t *testing.T) {
	plays := []data.Play{
		// Drive 1: three passes, one sacked, finishing with a red-zone TD
		// and the extra point.
		play(func(p *data.Play) {
			p.PlayID = 1
			p.PassAttempt, p.CompletePass = true, true
			p.YardsGained = 12
			p.FirstDown, p.FirstDownPass = true, true
		}),
		play(func(p *data.Play) {
			p.PlayID = 2
			p.PassAttempt, p.Sack = true, true
			p.YardsGained = -7
			p.Down = 2
		}),
		play(func(p *data.Play) {
			p.PlayID = 3
			p.PassAttempt, p.CompletePass = true, true
			p.Down = 3
			p.YardsToGo = 17
			p.YardsGained = 60
			p.YardLine100 = 77
			p.FirstDown, p.FirstDownPass = true, true
		}),
		play(func(p *data.Play) {
			p.PlayID = 4
			p.PassAttempt, p.CompletePass = true, true
			p.YardsToGo = 10
			p.YardsGained = 17
			p.YardLine100 = 17
			p.Touchdown = true
			p.TouchdownTeam = "ARI"
		}),
		play(func(p *data.Play) {
			p.PlayID = 5
			p.Down = 0
			p.YardsToGo = 0
			p.ExtraPointGood = true
		}),
		// Drive 2: a rush, an incompletion picked off.
		play(func(p *data.Play) {
			p.PlayID = 6
			p.DriveID = "2"
			p.RushAttempt = true
			p.YardsGained = 5
		}),
		play(func(p *data.Play) {
			p.PlayID = 7
			p.DriveID = "2"
			p.Down = 2
			p.YardsToGo = 5
			p.PassAttempt = true
			p.Interception = true
		}),
	}

	stats, err := CalculateSeasonStats(plays, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)

	assert.Equal(t, stats.GamesPlayed, 1)

	// Volume: the extra point is not a scrimmage play.
	assert.Equal(t, stats.TotalPlays, 6)
	assert.Float64Equal(t, stats.TotalYards, 87)
	assert.Float64Equal(t, stats.AvgYardsPerPlay, 14.5)

	// Completion: the sack never reaches the denominator.
	assert.Equal(t, stats.PassAttempts, 4)
	assert.Equal(t, stats.PassCompletions, 3)
	assert.Float64Equal(t, stats.CompletionPct, 75)

	assert.Equal(t, stats.RushAttempts, 1)
	assert.Float64Equal(t, stats.RushYPC, 5)

	assert.Equal(t, stats.Interceptions, 1)
	assert.Equal(t, stats.TotalTurnovers, 1)
	assert.Float64Equal(t, stats.TurnoversPerGame, 1)

	assert.Equal(t, stats.ThirdDowns, 1)
	assert.Equal(t, stats.ThirdDownConversions, 1)
	assert.Equal(t, stats.ThirdDownPassConversions, 1)
	assert.Float64Equal(t, stats.ThirdDownPct, 100)

	// Success: plays 1, 3, 4 and 6 succeed; 2 and 7 fail. Rush on play 6
	// gains 5 of 10 on first down, which clears forty percent.
	assert.Equal(t, stats.FirstDownAttempts, 3)
	assert.Equal(t, stats.FirstDownSuccesses, 3)
	assert.Equal(t, stats.SecondDownAttempts, 2)
	assert.Equal(t, stats.SecondDownSuccesses, 0)
	assert.Equal(t, stats.LateDownAttempts, 1)
	assert.Equal(t, stats.LateDownSuccesses, 1)
	assert.Float64Equal(t, stats.SuccessRate, 100.0*4/6)

	assert.Equal(t, stats.FirstDowns, 2)
	assert.Equal(t, stats.FirstDownsPass, 2)

	assert.Equal(t, stats.Sacks, 1)

	// Scoring: one TD plus the extra point over two drives.
	assert.Equal(t, stats.Drives, 2)
	assert.Equal(t, stats.Touchdowns, 1)
	assert.Equal(t, stats.ExtraPoints, 1)
	assert.Equal(t, stats.OffensivePoints, 7)
	assert.Float64Equal(t, stats.PointsPerDrive, 3.5)

	assert.Equal(t, stats.RedZoneTrips, 1)
	assert.Equal(t, stats.RedZoneTDs, 1)
	assert.Float64Equal(t, stats.RedZoneTDPct, 100)
}

func TestCalculateSeasonStatsEmpty(t *testing.T) {
	stats, err := CalculateSeasonStats(nil, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	assert.Equal(t, stats.GamesPlayed, 0)
	assert.Equal(t, stats.TotalPlays, 0)
	assert.Float64Equal(t, stats.AvgYardsPerPlay, 0)
	assert.Float64Equal(t, stats.CompletionPct, 0)
	assert.Float64Equal(t, stats.SuccessRate, 0)
	assert.Float64Equal(t, stats.PointsPerDrive, 0)
}

func TestCalculateSeasonStatsIdempotent(t *testing.T) {
	plays := []data.Play{
		play(func(p *data.Play) { p.RushAttempt = true; p.YardsGained = 4 }),
		play(func(p *data.Play) {
			p.PlayID = 2
			p.PassAttempt, p.CompletePass = true, true
			p.YardsGained = 11
		}),
	}

	first, err := CalculateSeasonStats(plays, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	second, err := CalculateSeasonStats(plays, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateSeasonStatsInvalidDown(t *testing.T) {
	p := play(func(p *data.Play) { p.Down = 5 })
	_, err := CalculateSeasonStats([]data.Play{p}, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.ErrorIs(t, err, ErrInvalidDown)
}

func TestTurnoverCountedOnce(t *testing.T) {
	// An interception fumbled on the return arrives with both flags set.
	p := play(func(p *data.Play) {
		p.PassAttempt = true
		p.Interception = true
		p.FumbleLost = true
	})
	stats, err := CalculateSeasonStats([]data.Play{p}, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	assert.Equal(t, stats.Interceptions, 1)
	assert.Equal(t, stats.FumblesLost, 1)
	assert.Equal(t, stats.TotalTurnovers, 1)
}

func TestKneelExcludedFromSuccessDenominator(t *testing.T) {
	plays := []data.Play{
		play(func(p *data.Play) {
			p.RushAttempt = true
			p.YardsGained = 6
		}),
		play(func(p *data.Play) {
			p.PlayID = 2
			p.RushAttempt = true
			p.QBKneel = true
			p.Down = 3
			p.YardsToGo = 8
			p.YardsGained = -1
		}),
	}

	clean, err := CalculateSeasonStats(plays, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	assert.Float64Equal(t, clean.SuccessRate, 100)
	assert.Equal(t, clean.ThirdDowns, 0)

	official, err := CalculateSeasonStats(plays, cardinals, 2024, data.SeasonTypeReg,
		Config{IncludeQBKneelsRushing: true, IncludeQBKneelsSuccessRate: true})
	assert.NilError(t, err)
	assert.Float64Equal(t, official.SuccessRate, 50)
	assert.Equal(t, official.ThirdDowns, 1)
}

func TestRedZoneTripsPerDrive(t *testing.T) {
	plays := []data.Play{
		// Three snaps inside the 20 on one drive are a single trip.
		play(func(p *data.Play) { p.RushAttempt = true; p.YardLine100 = 18; p.YardsGained = 3 }),
		play(func(p *data.Play) {
			p.PlayID = 2
			p.Down = 2
			p.PassAttempt = true
			p.YardLine100 = 15
		}),
		play(func(p *data.Play) {
			p.PlayID = 3
			p.Down = 3
			p.YardLine100 = 15
			p.FieldGoalMade = true
		}),
		// A second drive stalls at the 19 with no points.
		play(func(p *data.Play) {
			p.PlayID = 4
			p.DriveID = "2"
			p.PassAttempt = true
			p.YardLine100 = 19
		}),
	}

	stats, err := CalculateSeasonStats(plays, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	assert.Equal(t, stats.RedZoneTrips, 2)
	assert.Equal(t, stats.RedZoneTDs, 0)
	assert.Equal(t, stats.RedZoneFieldGoals, 1)
	assert.Equal(t, stats.RedZoneFailed, 1)
	assert.Float64Equal(t, stats.RedZoneTDPct, 0)
	assert.Equal(t, stats.FieldGoals, 1)
	assert.Equal(t, stats.OffensivePoints, 3)
}

func TestDefensiveTouchdownNotCredited(t *testing.T) {
	p := play(func(p *data.Play) {
		p.PassAttempt = true
		p.Interception = true
		p.Touchdown = true
		p.TouchdownTeam = "BUF"
		p.YardLine100 = 12
	})
	stats, err := CalculateSeasonStats([]data.Play{p}, cardinals, 2024, data.SeasonTypeReg, Config{})
	assert.NilError(t, err)
	assert.Equal(t, stats.Touchdowns, 0)
	assert.Equal(t, stats.OffensivePoints, 0)
	assert.Equal(t, stats.RedZoneTDs, 0)
	assert.Equal(t, stats.RedZoneFailed, 1)
}

func TestCalculateGameStats(t *testing.T) {
	week2 := func(p *data.Play) {
		p.Week = 2
		p.GameID = "2024_02_LA_ARI"
		p.DefTeam = "LA"
		p.HomeTeam = "ARI"
		p.AwayTeam = "LA"
	}

	plays := []data.Play{
		play(func(p *data.Play) { p.RushAttempt = true; p.YardsGained = 4 }),
		play(func(p *data.Play) {
			p.PlayID = 2
			p.PassAttempt, p.CompletePass = true, true
			p.YardsGained = 20
			p.FirstDown, p.FirstDownPass = true, true
		}),
		play(func(p *data.Play) {
			week2(p)
			p.PlayID = 1
			p.PassAttempt = true
		}),
	}

	games, err := CalculateGameStats(plays, cardinals, Config{})
	assert.NilError(t, err)
	assert.Equal(t, len(games), 2)

	assert.Equal(t, games[0].Week, 1)
	assert.Equal(t, games[0].Opponent, "BUF")
	assert.Equal(t, games[0].Home, false)
	assert.Equal(t, games[0].TotalPlays, 2)
	assert.Float64Equal(t, games[0].YardsPerPlay, 12)
	assert.Equal(t, games[0].FirstDowns, 1)

	assert.Equal(t, games[1].Week, 2)
	assert.Equal(t, games[1].Opponent, "LA")
	assert.Equal(t, games[1].Home, true)
	assert.Float64Equal(t, games[1].CompletionPct, 0)
}

func TestCalculateTeamRecord(t *testing.T) {
	game := func(id string, teamScore, oppScore int) []data.Play {
		return []data.Play{
			play(func(p *data.Play) { p.GameID = id; p.PlayID = 1 }),
			play(func(p *data.Play) {
				p.GameID = id
				p.PlayID = 150
				p.PosTeamScorePost = teamScore
				p.DefTeamScorePost = oppScore
			}),
		}
	}

	var plays []data.Play
	plays = append(plays, game("2024_01_ARI_BUF", 28, 10)...)
	plays = append(plays, game("2024_02_LA_ARI", 17, 20)...)
	plays = append(plays, game("2024_03_ARI_SF", 24, 24)...)
	// Opponent possessions never contribute to the record.
	plays = append(plays, play(func(p *data.Play) {
		p.GameID = "2024_04_SEA_ARI"
		p.PosTeam = "SEA"
		p.DefTeam = "ARI"
		p.PlayID = 99
		p.PosTeamScorePost = 30
	}))

	record := CalculateTeamRecord(plays, "ARI")
	assert.Equal(t, record, data.TeamRecord{Wins: 1, Losses: 1, Ties: 1})
	assert.Equal(t, record.Games(), 3)
}

func TestFilterSeasonType(t *testing.T) {
	plays := []data.Play{
		play(nil),
		play(func(p *data.Play) { p.PlayID = 2; p.SeasonType = data.SeasonTypePost }),
	}

	assert.Equal(t, len(FilterSeasonType(plays, data.SeasonTypeAll)), 2)
	assert.Equal(t, len(FilterSeasonType(plays, data.SeasonTypeReg)), 1)
	assert.Equal(t, len(FilterSeasonType(plays, data.SeasonTypePost)), 1)
}

func TestTeamPlays(t *testing.T) {
	plays := []data.Play{
		play(nil),
		play(func(p *data.Play) { p.PlayID = 2; p.PosTeam = "BUF"; p.DefTeam = "ARI" }),
	}

	mine := TeamPlays(plays, "ARI")
	assert.Equal(t, len(mine), 1)
	assert.Equal(t, mine[0].PlayID, int64(1))
}
