package service

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/leaguesim/internal/league"
	"github.com/omarshaarawi/leaguesim/internal/models"
)

const (
	playerThreshold = 0.7
	teamThreshold   = 0.6
)

func similarity(query, candidate string) float64 {
	query, candidate = strings.ToLower(query), strings.ToLower(candidate)
	maxLen := float64(max(utf8.RuneCountInString(query), utf8.RuneCountInString(candidate)))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(query, candidate)
	return 1 - float64(distance)/maxLen
}

func findTeam(teams []models.TeamSummary, teamName string) (models.TeamSummary, bool) {
	var best models.TeamSummary
	bestScore := -1.0
	for _, t := range teams {
		score := similarity(teamName, t.Name)
		if score > teamThreshold && score > bestScore {
			best, bestScore = t, score
		}
	}
	return best, bestScore > 0
}

type playerHit struct {
	player models.Player
	team   string
	slot   models.Slot
}

// searchPlayers finds the closest rostered or free agent player to name.
func searchPlayers(res *league.Result, playerName string) (playerHit, bool) {
	var best playerHit
	bestScore := -1.0
	consider := func(hit playerHit) {
		score := similarity(playerName, hit.player.Name)
		if score > playerThreshold && score > bestScore {
			best, bestScore = hit, score
		}
	}

	for _, t := range res.Teams {
		for _, row := range t.Roster {
			if row.Player == "" {
				continue
			}
			consider(playerHit{player: rosterPlayer(row), team: t.Name, slot: row.Slot})
		}
	}
	for _, p := range res.FreeAgents {
		consider(playerHit{player: p})
	}
	return best, bestScore > 0
}

func rosterPlayer(row models.RosterRow) models.Player {
	return models.Player{
		Name:          row.Player,
		Team:          row.ProTeam,
		Position:      row.Position,
		Status:        row.Status,
		PointsPerGame: row.PointsPerGame,
		Projected:     row.Projected,
		PickNumber:    row.PickNumber,
	}
}
