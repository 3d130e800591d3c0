package data

import (
	"errors"
	"sort"
	"strings"
)

var ErrTeamNotFound = errors.New("team not found")

// teamNames maps every current team code to its full name. Codes follow the
// upstream play-by-play feed ("LA" is the Rams).
var teamNames = map[string]string{
	"ARI": "Arizona Cardinals",
	"ATL": "Atlanta Falcons",
	"BAL": "Baltimore Ravens",
	"BUF": "Buffalo Bills",
	"CAR": "Carolina Panthers",
	"CHI": "Chicago Bears",
	"CIN": "Cincinnati Bengals",
	"CLE": "Cleveland Browns",
	"DAL": "Dallas Cowboys",
	"DEN": "Denver Broncos",
	"DET": "Detroit Lions",
	"GB":  "Green Bay Packers",
	"HOU": "Houston Texans",
	"IND": "Indianapolis Colts",
	"JAX": "Jacksonville Jaguars",
	"KC":  "Kansas City Chiefs",
	"LA":  "Los Angeles Rams",
	"LAC": "Los Angeles Chargers",
	"LV":  "Las Vegas Raiders",
	"MIA": "Miami Dolphins",
	"MIN": "Minnesota Vikings",
	"NE":  "New England Patriots",
	"NO":  "New Orleans Saints",
	"NYG": "New York Giants",
	"NYJ": "New York Jets",
	"PHI": "Philadelphia Eagles",
	"PIT": "Pittsburgh Steelers",
	"SEA": "Seattle Seahawks",
	"SF":  "San Francisco 49ers",
	"TB":  "Tampa Bay Buccaneers",
	"TEN": "Tennessee Titans",
	"WAS": "Washington Commanders",
}

type Team struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LookupTeam resolves a team code, tolerating lowercase and surrounding
// whitespace.
func LookupTeam(code string) (Team, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	name, ok := teamNames[normalized]
	if !ok {
		return Team{}, ErrTeamNotFound
	}
	return Team{Code: normalized, Name: name}, nil
}

// TeamCodes returns every known team code in sorted order.
func TeamCodes() []string {
	codes := make([]string, 0, len(teamNames))
	for code := range teamNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// TeamRecord is a win/loss/tie tuple derived from final game scores, not
// from play-level metrics.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

func (r TeamRecord) Games() int {
	return r.Wins + r.Losses + r.Ties
}
