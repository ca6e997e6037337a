package league

import (
	"time"

	"github.com/omarshaarawi/leaguesim/internal/models"
)

// Result is a finished league, detached from the engines that produced it.
type Result struct {
	Metadata     models.LeagueMetadata
	Human        string
	Picks        []models.PickRecord
	Standings    []models.Standing
	PlayoffRanks []models.PlayoffRank
	Matchups     map[int][]models.Matchup
	Teams        []models.TeamSummary
	FreeAgents   []models.Player
}

// Champion is the team ranked first, or "" before the playoffs finish.
func (r *Result) Champion() string {
	for _, pr := range r.PlayoffRanks {
		if pr.Rank == 1 {
			return pr.Team
		}
	}
	return ""
}

// Team returns the summary of the named team.
func (r *Result) Team(name string) (models.TeamSummary, bool) {
	for _, t := range r.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return models.TeamSummary{}, false
}

// Result snapshots the league as it stands.
func (l *League) Result() *Result {
	res := &Result{
		Metadata: models.LeagueMetadata{
			ID:          l.ID,
			Seed:        l.cfg.Seed,
			Teams:       len(l.teams),
			LastUpdated: time.Now(),
		},
		Human:    l.cfg.Human,
		Picks:    l.draft.History(),
		Matchups: make(map[int][]models.Matchup),
	}
	for _, t := range l.draft.Teams() {
		res.Teams = append(res.Teams, models.TeamSummary{
			Name:      t.Name,
			DraftPick: t.DraftPick,
			Strategy:  t.Strategy,
			Roster:    t.Snapshot(),
		})
	}
	if l.season == nil {
		return res
	}

	for _, p := range l.market.Players() {
		res.FreeAgents = append(res.FreeAgents, *p)
	}
	res.Metadata.Weeks = l.season.Week()
	res.Standings = l.season.Standings()
	res.PlayoffRanks = l.season.PlayoffRanks()
	for week := 1; week <= l.season.Week(); week++ {
		res.Matchups[week] = l.season.Matchups(week)
	}
	return res
}
