package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omarshaarawi/leaguesim/internal/models"
)

func processScores(week int, scores []models.Matchup) models.WeekReport {
	report := models.WeekReport{Week: week, Matchups: make([]models.Matchup, len(scores))}
	copy(report.Matchups, scores)

	highScore, lowScore := -math.MaxFloat64, math.MaxFloat64
	biggestWin, closestWin := -math.MaxFloat64, math.MaxFloat64
	var highScoreTeam, lowScoreTeam, biggestWinTeam, closestWinTeam string

	for _, score := range scores {
		// High Score
		if score.HomeScore > highScore {
			highScore = score.HomeScore
			highScoreTeam = score.HomeTeam
		}
		if score.AwayScore > highScore {
			highScore = score.AwayScore
			highScoreTeam = score.AwayTeam
		}

		// Low Score
		if score.HomeScore < lowScore {
			lowScore = score.HomeScore
			lowScoreTeam = score.HomeTeam
		}
		if score.AwayScore < lowScore {
			lowScore = score.AwayScore
			lowScoreTeam = score.AwayTeam
		}

		// Biggest Win and Closest Win
		scoreDiff := math.Abs(score.HomeScore - score.AwayScore)
		if scoreDiff > biggestWin {
			biggestWin = scoreDiff
			biggestWinTeam = score.Winner()
		}
		if scoreDiff < closestWin {
			closestWin = scoreDiff
			closestWinTeam = score.Winner()
		}
	}

	report.Trophies = []models.Trophy{
		{Category: "High Score", Team: highScoreTeam, Value: highScore},
		{Category: "Low Score", Team: lowScoreTeam, Value: lowScore},
		{Category: "Biggest Win", Team: biggestWinTeam, Value: biggestWin},
		{Category: "Closest Win", Team: closestWinTeam, Value: closestWin},
	}
	return report
}

func formatWeekReport(report models.WeekReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Week %d Final Scores:*\n\n", report.Week))

	sort.SliceStable(report.Matchups, func(i, j int) bool {
		totalScoreI := report.Matchups[i].HomeScore + report.Matchups[i].AwayScore
		totalScoreJ := report.Matchups[j].HomeScore + report.Matchups[j].AwayScore
		return totalScoreI > totalScoreJ
	})

	for _, m := range report.Matchups {
		sb.WriteString(fmt.Sprintf("%s %.2f - %.2f %s\n", m.HomeTeam, m.HomeScore, m.AwayScore, m.AwayTeam))
	}

	sb.WriteString("\n🏆 *Trophies:*\n")
	for _, t := range report.Trophies {
		switch t.Category {
		case "High Score":
			sb.WriteString(fmt.Sprintf("Highest Score: %s (%.2f)\n", t.Team, t.Value))
		case "Low Score":
			sb.WriteString(fmt.Sprintf("Lowest Score: %s (%.2f)\n", t.Team, t.Value))
		case "Biggest Win":
			sb.WriteString(fmt.Sprintf("Biggest Win: %s (Margin: %.2f)\n", t.Team, t.Value))
		case "Closest Win":
			sb.WriteString(fmt.Sprintf("Closest Win: %s (Margin: %.2f)\n", t.Team, t.Value))
		}
	}

	return sb.String()
}
