package models

import "time"

// Unranked marks a team that has not been placed by either bracket.
const Unranked = 99

type PickRecord struct {
	Round    int
	Pick     int
	Team     string
	Player   string
	Position Position
}

type Standing struct {
	Team          string
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
}

type Matchup struct {
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore float64
	AwayScore float64
}

// Winner returns the home team only on a strictly higher score.
func (m Matchup) Winner() string {
	if m.HomeScore > m.AwayScore {
		return m.HomeTeam
	}
	return m.AwayTeam
}

type PlayoffRank struct {
	Team string
	Rank int
}

type BoardRow struct {
	Name      string
	Position  int
	ADP       float64
	Available int
}

type RosterRow struct {
	Slot          Slot
	Player        string
	ProTeam       string
	Position      Position
	Status        Status
	Projected     float64
	PointsPerGame float64
	PickNumber    int
}

type Trophy struct {
	Category string
	Team     string
	Value    float64
}

type WeekReport struct {
	Week     int
	Matchups []Matchup
	Trophies []Trophy
}

type TeamSummary struct {
	Name      string
	DraftPick int
	Strategy  DraftStrategy
	Roster    []RosterRow
}

type LeagueMetadata struct {
	ID          string
	Seed        int64
	Teams       int
	Weeks       int
	LastUpdated time.Time
}
