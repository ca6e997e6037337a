package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/omarshaarawi/leaguesim/internal/league"
	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/repository/memory"
)

var ErrNoSimulation = errors.New("no simulation has been run yet")

// Simulator runs one complete league.
type Simulator interface {
	Simulate(ctx context.Context) (*league.Result, error)
}

type FantasyService struct {
	sim  Simulator
	repo *memory.Repository
}

func NewFantasyService(sim Simulator, repo *memory.Repository) *FantasyService {
	return &FantasyService{sim: sim, repo: repo}
}

func (s *FantasyService) getResult() (*league.Result, error) {
	res := s.repo.GetResult()
	if res == nil {
		return nil, ErrNoSimulation
	}
	return res, nil
}

// Simulate runs a fresh league, stores it and returns a summary.
func (s *FantasyService) Simulate(ctx context.Context) (string, error) {
	res, err := s.sim.Simulate(ctx)
	if err != nil {
		return "", fmt.Errorf("error simulating league: %w", err)
	}
	s.repo.SaveResult(res)
	slog.Info("Simulation saved", "league", res.Metadata.ID, "seed", res.Metadata.Seed, "champion", res.Champion())

	var sb strings.Builder
	sb.WriteString("🏈 *Season Simulated*\n\n")
	sb.WriteString(fmt.Sprintf("League: `%s`\n", res.Metadata.ID))
	sb.WriteString(fmt.Sprintf("Seed: %d\n", res.Metadata.Seed))
	sb.WriteString(fmt.Sprintf("Teams: %d, Weeks: %d\n\n", res.Metadata.Teams, res.Metadata.Weeks))
	sb.WriteString(fmt.Sprintf("🏆 Champion: *%s*\n", res.Champion()))
	if res.Human != "" {
		for _, pr := range res.PlayoffRanks {
			if pr.Team == res.Human {
				sb.WriteString(fmt.Sprintf("Your team (%s) finished #%d\n", pr.Team, pr.Rank))
			}
		}
	}
	return sb.String(), nil
}

func (s *FantasyService) GetStandings() (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Final Standings*\n\n")
	for i, team := range res.Standings {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", i+1, team.Team))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d\n", team.Wins, team.Losses))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.PointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", team.PointsAgainst))
	}
	return sb.String(), nil
}

var medals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func (s *FantasyService) GetPlayoffs() (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Final Ranks*\n\n")
	for _, pr := range res.PlayoffRanks {
		rank := fmt.Sprintf("%d.", pr.Rank)
		if pr.Rank == models.Unranked {
			rank = "-"
		}
		if m, ok := medals[pr.Rank]; ok {
			rank = m
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", rank, pr.Team))
	}
	return sb.String(), nil
}

// GetWeekReport formats the scores and trophies of week; zero means the last
// week played.
func (s *FantasyService) GetWeekReport(week int) (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}
	if week == 0 {
		week = res.Metadata.Weeks
	}

	matchups := res.Matchups[week]
	if len(matchups) == 0 {
		return "", fmt.Errorf("no games were played in week %d", week)
	}
	return formatWeekReport(processScores(week, matchups)), nil
}

func (s *FantasyService) GetTeamRoster(teamName string) (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}

	team, ok := findTeam(res.Teams, teamName)
	if !ok {
		return "", fmt.Errorf("no team found matching '%s'", teamName)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s's Roster*\n\n", team.Name))
	sb.WriteString(fmt.Sprintf("Strategy: %s\n\n", strategyLabel(team.Strategy)))

	sb.WriteString("*Starting Lineup:*\n")
	for _, row := range team.Roster {
		if row.Slot.IsStarting() {
			writeRosterRow(&sb, row)
		}
	}
	sb.WriteString("\n*Bench:*\n")
	for _, row := range team.Roster {
		if row.Slot.IsBench() && row.Player != "" {
			writeRosterRow(&sb, row)
		}
	}
	return sb.String(), nil
}

func writeRosterRow(sb *strings.Builder, row models.RosterRow) {
	if row.Player == "" {
		sb.WriteString(fmt.Sprintf("▫️ %s (empty)\n", row.Slot))
		return
	}
	statusStr := ""
	switch row.Status {
	case models.StatusOut:
		statusStr = " (O)"
	case models.StatusInactive:
		statusStr = " (BYE)"
	}
	sb.WriteString(fmt.Sprintf("▫️ %s %s%s - %.2f ppg\n", row.Slot, row.Player, statusStr, row.PointsPerGame))
}

func strategyLabel(d models.DraftStrategy) string {
	all := d.All()
	parts := make([]string, len(all))
	for i, s := range all {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func (s *FantasyService) WhoHas(playerName string) (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}

	hit, ok := searchPlayers(res, playerName)
	if !ok {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerName), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", hit.player.Name, hit.player.Position, hit.player.Team))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	if hit.team != "" {
		sb.WriteString(fmt.Sprintf("*%s*\n", hit.team))
		if hit.slot.IsBench() {
			sb.WriteString("Bench\n")
		} else {
			sb.WriteString(fmt.Sprintf("Starting (%s)\n", hit.slot))
		}
	} else {
		sb.WriteString("Free Agent\n")
	}
	sb.WriteString(fmt.Sprintf("\n%.2f ppg", hit.player.PointsPerGame))
	if hit.player.PickNumber > 0 {
		sb.WriteString(fmt.Sprintf("\nDrafted #%d", hit.player.PickNumber))
	}
	return sb.String(), nil
}

// GetDraftRecap lists one team's picks, or the whole first round when
// teamName is empty.
func (s *FantasyService) GetDraftRecap(teamName string) (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if teamName == "" {
		sb.WriteString("📝 *Draft Recap: Round 1*\n\n")
		for _, p := range res.Picks {
			if p.Round == 1 {
				sb.WriteString(fmt.Sprintf("%d. %s - %s %s\n", p.Pick, p.Team, p.Position, p.Player))
			}
		}
		return sb.String(), nil
	}

	team, ok := findTeam(res.Teams, teamName)
	if !ok {
		return "", fmt.Errorf("no team found matching '%s'", teamName)
	}
	sb.WriteString(fmt.Sprintf("📝 *%s's Draft*\n\n", team.Name))
	for _, p := range res.Picks {
		if p.Team == team.Name {
			sb.WriteString(fmt.Sprintf("R%d (#%d) %s %s\n", p.Round, p.Pick, p.Position, p.Player))
		}
	}
	return sb.String(), nil
}

func (s *FantasyService) GetPlayersToMonitor() (string, error) {
	res, err := s.getResult()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🚑 *Week %d Players to Monitor*\n\n", res.Metadata.Weeks))

	found := false
	for _, team := range res.Teams {
		var rows []models.RosterRow
		for _, row := range team.Roster {
			if row.Player != "" && row.Status == models.StatusOut {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		found = true
		sb.WriteString(fmt.Sprintf("*%s:*\n", team.Name))
		for _, row := range rows {
			sb.WriteString(fmt.Sprintf("  • %s %s - %s\n", row.Position, row.Player, row.Status))
		}
		sb.WriteString("\n")
	}
	if !found {
		sb.WriteString("No players to monitor at this time.")
	}
	return sb.String(), nil
}

// GetHistory lists every simulation run since startup.
func (s *FantasyService) GetHistory() (string, error) {
	runs := s.repo.History()
	if len(runs) == 0 {
		return "", ErrNoSimulation
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].LastUpdated.After(runs[j].LastUpdated)
	})

	var sb strings.Builder
	sb.WriteString("🗂 *Simulation History*\n\n")
	for _, md := range runs {
		sb.WriteString(fmt.Sprintf("`%s` seed %d - %s\n", md.ID[:8], md.Seed, md.LastUpdated.Format("Jan 2 15:04")))
	}
	return sb.String(), nil
}
