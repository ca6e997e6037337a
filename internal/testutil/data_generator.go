package testutil

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/omarshaarawi/leaguesim/internal/models"
)

var nflTeams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE", "DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG", "NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

// pointsScale is a rough weekly ceiling by position.
var pointsScale = map[models.Position]float64{
	models.QB: 24, models.RB: 20, models.WR: 20, models.TE: 14, models.K: 10, models.DST: 10,
}

// TestDataGenerator builds seeded leagues of fake players and weekly results.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	names map[string]bool
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
		names: make(map[string]bool),
	}
}

func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// PoolSize is a player count per position deep enough for teams to fill
// every roster slot with waiver depth left over.
func PoolSize(teams int) map[models.Position]int {
	return map[models.Position]int{
		models.QB:  teams*3 + 6,
		models.RB:  teams*5 + 10,
		models.WR:  teams*5 + 10,
		models.TE:  teams*3 + 6,
		models.K:   teams*2 + 6,
		models.DST: teams*2 + 6,
	}
}

func (g *TestDataGenerator) playerName(pos models.Position) string {
	if pos == models.DST {
		for {
			name := fmt.Sprintf("%s %s D/ST", g.faker.City(), g.faker.Animal())
			if !g.names[name] {
				g.names[name] = true
				return name
			}
		}
	}
	for {
		name := fmt.Sprintf("%s. %s", g.faker.FirstName()[:1], g.faker.LastName())
		if !g.names[name] {
			g.names[name] = true
			return name
		}
	}
}

// GeneratePlayers creates count players per position with ADPs spread over
// the whole board.
func (g *TestDataGenerator) GeneratePlayers(count map[models.Position]int) []models.Player {
	total := 0
	for _, n := range count {
		total += n
	}

	var players []models.Player
	for _, pos := range models.Positions {
		for i := 0; i < count[pos]; i++ {
			// Spread each position over the board with some noise.
			adp := float64(i)/float64(count[pos])*float64(total) + g.faker.Float64Range(1, 12)
			players = append(players, models.Player{
				Name:         g.playerName(pos),
				Team:         nflTeams[g.faker.Number(0, len(nflTeams)-1)],
				Position:     pos,
				ByeWeek:      g.faker.Number(5, 14),
				PositionRank: fmt.Sprintf("%s%d", pos, i+1),
				ADP:          math.Round(adp*10) / 10,
				Status:       models.StatusActive,
			})
		}
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].ADP < players[j].ADP })
	return players
}

// GeneratePool creates a player pool sized for a league of teams.
func (g *TestDataGenerator) GeneratePool(teams int) []models.Player {
	return g.GeneratePlayers(PoolSize(teams))
}

// GenerateWeekly creates a feed row for every player and week except the
// player's bye. Better drafted players project and score higher, and a few
// rows are injuries with no points.
func (g *TestDataGenerator) GenerateWeekly(players []models.Player, weeks int) []models.WeeklyEntry {
	maxADP := 1.0
	for _, p := range players {
		maxADP = math.Max(maxADP, p.ADP)
	}

	var entries []models.WeeklyEntry
	for _, p := range players {
		base := pointsScale[p.Position] * (1.1 - p.ADP/maxADP)
		for week := 1; week <= weeks; week++ {
			if week == p.ByeWeek {
				continue
			}
			e := models.WeeklyEntry{
				Name:      p.Name,
				Week:      week,
				Status:    models.StatusActive,
				Projected: math.Round(base*g.faker.Float64Range(0.8, 1.2)*100) / 100,
			}
			if g.faker.Number(1, 100) <= 6 {
				e.Status = models.StatusOut
				e.Projected = 0
			} else {
				e.Points = math.Round(base*g.faker.Float64Range(0, 2)*100) / 100
			}
			entries = append(entries, e)
		}
	}
	return entries
}

// PlayersCSV renders players in the player pool file layout.
func PlayersCSV(players []models.Player) string {
	out := "Name,Team,ByeWeek,Position,PositionRank,AverageDraftPositionPPR,Status\n"
	for _, p := range players {
		out += fmt.Sprintf("%s,%s,%d,%s,%s,%.1f,%s\n", p.Name, p.Team, p.ByeWeek, p.Position, p.PositionRank, p.ADP, p.Status)
	}
	return out
}

// WeeklyCSV renders entries in the weekly feed file layout.
func WeeklyCSV(entries []models.WeeklyEntry) string {
	out := "Name,Week,Status,ProjectedFantasyPoints,FantasyPoints\n"
	for _, e := range entries {
		out += fmt.Sprintf("%s,%d,%s,%.2f,%.2f\n", e.Name, e.Week, e.Status, e.Projected, e.Points)
	}
	return out
}
