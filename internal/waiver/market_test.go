package waiver

import (
	"fmt"
	"testing"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/roster"
	"github.com/omarshaarawi/leaguesim/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamKOnly streams kickers but keeps its drafted defense.
var streamKOnly = models.DraftStrategy{
	QB: models.MidRoundQB, RB: models.AnyRB, WR: models.AnyWR,
	TE: models.MidRoundTE, K: models.MidK, DST: models.EarlyDST,
}

func freeAgent(name string, pos models.Position, adp, proj float64, status models.Status) *models.Player {
	return &models.Player{
		Name:          name,
		Position:      pos,
		ADP:           adp,
		Status:        status,
		Projected:     proj,
		PointsPerGame: proj,
	}
}

func newTestMarket(week int) *Market {
	m := New(rules.Default(), []*models.Player{
		freeAgent("Player A", models.RB, 20, 10, models.StatusActive),
		freeAgent("Player B", models.WR, 30, 16, models.StatusActive),
		freeAgent("Player C", models.TE, 40, 8, models.StatusActive),
		freeAgent("Player D", models.QB, 50, 14, models.StatusOut),
		freeAgent("Player E", models.DST, 60, 5, models.StatusActive),
		freeAgent("Player F", models.RB, 100, 11, models.StatusActive),
	})
	m.SetWeek(week)
	return m
}

func newTestTeam(t *testing.T) *roster.Team {
	t.Helper()
	team := roster.NewWithStrategy("Test Team", 1, rules.Default(), streamKOnly)
	starters := []struct {
		name string
		pos  models.Position
	}{
		{"Player 1", models.RB},
		{"Player 2", models.WR},
		{"Player 3", models.QB},
		{"Player 4", models.TE},
	}
	for i, s := range starters {
		_, err := team.AddPick(&models.Player{Name: s.name, Position: s.pos, ADP: float64(10 * (i + 1)), Status: models.StatusActive}, i+1)
		require.NoError(t, err)
	}
	_, err := team.AddToBench(&models.Player{Name: "Player 5", Position: models.RB, ADP: 50, Projected: 5, Status: models.StatusActive})
	require.NoError(t, err)
	team.StartWeek(3)
	return team
}

// fillBench tops the bench up to seven with drafted players; the first
// filler is a waiver pickup.
func fillBench(t *testing.T, team *roster.Team) {
	t.Helper()
	positions := []models.Position{models.WR, models.WR, models.WR, models.TE, models.QB, models.K}
	for i, pos := range positions {
		p := &models.Player{
			Name:       fmt.Sprintf("Test Player %d", i),
			Position:   pos,
			ADP:        10.5,
			Projected:  float64(6 + i),
			Status:     models.StatusActive,
			PickNumber: i,
		}
		_, err := team.AddToBench(p)
		require.NoError(t, err)
	}
	require.True(t, team.BenchFull())
}

func names(players []*models.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}

func TestMarket_Sort(t *testing.T) {
	m := newTestMarket(3)
	assert.Equal(t, []string{"Player B", "Player D", "Player F", "Player A", "Player C", "Player E"}, names(m.Players()))
	assert.Equal(t, 6, m.Len())
	assert.True(t, m.Contains("Player C"))
	assert.Equal(t, 3, m.Week())
}

func TestDetermineAdd(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)

	p, err := m.DetermineAdd(team, models.RB)
	require.NoError(t, err)
	assert.Equal(t, "Player F", p.Name)

	team.Queue(p, nil, true)
	p, err = m.DetermineAdd(team, models.RB)
	require.NoError(t, err)
	assert.Equal(t, "Player A", p.Name, "a queued add is not offered twice")

	p, err = m.DetermineAdd(team, models.QB)
	require.NoError(t, err)
	assert.Equal(t, "Player D", p.Name, "injured players are fine when the slot is not a need")

	team.PositionsInNeed = []models.Slot{models.SlotQB}
	_, err = m.DetermineAdd(team, models.QB)
	assert.ErrorIs(t, err, models.ErrNoEligibleCandidate)

	_, err = m.DetermineAdd(team, models.K)
	assert.ErrorIs(t, err, models.ErrNoEligibleCandidate)
}

func TestDetermineDrop(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)

	drop, err := m.DetermineDrop(team, "")
	require.NoError(t, err)
	assert.Nil(t, drop, "no cut while the bench has room")

	fillBench(t, team)
	drop, err = m.DetermineDrop(team, "")
	require.NoError(t, err)
	assert.Equal(t, "Player 5", drop.Name)

	drop, err = m.DetermineDrop(team, models.WR)
	require.NoError(t, err)
	assert.Equal(t, "Test Player 0", drop.Name)

	drop, err = m.DetermineDrop(team, models.DST)
	require.NoError(t, err)
	assert.Equal(t, "Test Player 0", drop.Name, "falls back to the crowded position first in drop priority")
}

func TestDetermineDrop_NothingDroppable(t *testing.T) {
	m := newTestMarket(3)
	team := roster.NewWithStrategy("Drafted Only", 1, rules.Default(), streamKOnly)
	for i := 0; i < 7; i++ {
		_, err := team.AddToBench(&models.Player{Name: fmt.Sprintf("Early %d", i), Position: models.Positions[i%4], PickNumber: i + 1})
		require.NoError(t, err)
	}

	_, err := m.DetermineDrop(team, "")
	assert.ErrorIs(t, err, models.ErrNoEligibleCandidate)
}

func TestShouldAddDrop(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)

	mv, ok := m.ShouldAddDrop(team, models.SlotRB1)
	require.True(t, ok)
	assert.Equal(t, Move{Slot: models.SlotRB1, Add: mustFind(t, m, "Player F")}, mv)

	early := newTestMarket(2)
	_, ok = early.ShouldAddDrop(team, models.SlotRB1)
	assert.False(t, ok, "waivers are closed before week 3 for legal rosters")
}

func TestShouldAddDrop_FullBench(t *testing.T) {
	m := newTestMarket(5)
	team := newTestTeam(t)
	fillBench(t, team)
	team.Week = 5

	mv, ok := m.ShouldAddDrop(team, models.SlotWR1)
	require.True(t, ok)
	assert.Equal(t, "Player B", mv.Add.Name)
	assert.Equal(t, "Player 5", mv.Drop.Name, "lowest drop value among pickups and late picks")

	m.players = nil
	_, ok = m.ShouldAddDrop(team, models.SlotWR1)
	assert.False(t, ok)
}

func TestShouldAddDrop_Flex(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)

	mv, ok := m.ShouldAddDrop(team, models.SlotFlex)
	require.True(t, ok)
	assert.Equal(t, "Player B", mv.Add.Name)
	assert.Nil(t, mv.Drop)
}

func TestDetermineSwaps(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)
	team.PositionsInNeed = []models.Slot{models.SlotRB2, models.SlotWR2}
	team.Legal = false

	moves := m.DetermineSwaps(team)
	require.Len(t, moves, 2)
	assert.Equal(t, "Player F", moves[0].Add.Name)
	assert.Equal(t, models.SlotRB2, moves[0].Slot)
	assert.Equal(t, "Player B", moves[1].Add.Name)
	assert.Empty(t, team.PositionsInNeed)
	assert.Equal(t, 4, team.OpenBenchAfterQueue())
}

func TestDetermineSwaps_DistinctAdds(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)
	team.PositionsInNeed = []models.Slot{models.SlotRB1, models.SlotRB2}
	team.Legal = false

	moves := m.DetermineSwaps(team)
	require.Len(t, moves, 2)
	assert.Equal(t, "Player F", moves[0].Add.Name)
	assert.Equal(t, "Player A", moves[1].Add.Name)
}

func TestAddDrop(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)
	fillBench(t, team)

	add, err := m.DetermineAdd(team, models.WR)
	require.NoError(t, err)
	drop, err := m.DetermineDrop(team, "")
	require.NoError(t, err)
	team.WaiverActive = true

	mv := Move{Slot: models.SlotWR1, Drop: drop, Add: add}
	team.Queue(mv.Add, mv.Drop, true)
	require.NoError(t, m.AddDrop(team, mv))

	assert.True(t, team.Has("Player B"))
	assert.False(t, team.Has("Player 5"))
	assert.True(t, m.Contains("Player 5"))
	assert.False(t, m.Contains("Player B"))
	assert.Zero(t, add.PickNumber, "pickups carry no draft pick")
	assert.Equal(t, 0, team.OpenBenchAfterQueue())

	err = m.AddDrop(team, mv)
	assert.ErrorIs(t, err, models.ErrIllegalAction, "the same move cannot run twice")
}

func TestAddDrop_CapAndRoom(t *testing.T) {
	m := newTestMarket(3)
	team := newTestTeam(t)
	fillBench(t, team)

	err := m.AddDrop(team, Move{Slot: models.SlotTE, Add: mustFind(t, m, "Player C")})
	assert.ErrorIs(t, err, models.ErrIllegalAction, "no drop and a full bench")
	assert.True(t, m.Contains("Player C"))

	m2 := New(rules.Default(), []*models.Player{freeAgent("Sixth WR", models.WR, 90, 3, models.StatusActive)})
	wide := roster.NewWithStrategy("Wide", 2, rules.Default(), streamKOnly)
	for i := 0; i < 5; i++ {
		_, err := wide.AddToBench(&models.Player{Name: fmt.Sprintf("WR %d", i), Position: models.WR})
		require.NoError(t, err)
	}
	err = m2.AddDrop(wide, Move{Slot: models.SlotWR1, Add: mustFind(t, m2, "Sixth WR")})
	assert.ErrorIs(t, err, models.ErrIllegalAction)
	assert.Equal(t, 5, wide.Count(models.WR))
}

func TestStreamKicker(t *testing.T) {
	m := newTestMarket(2)
	m.put(freeAgent("Kicker X", models.K, 150, 7, models.StatusActive))
	m.put(freeAgent("Kicker Hurt", models.K, 140, 9, models.StatusOut))
	m.Sort()
	team := newTestTeam(t)
	team.StartWeek(2)

	moves := m.DetermineSwaps(team)
	require.Len(t, moves, 1)
	mv := moves[0]
	assert.True(t, mv.Stream)
	assert.Equal(t, "Kicker X", mv.Add.Name)

	require.NoError(t, m.AddDrop(team, mv))
	assert.Equal(t, "Kicker X", team.Get(models.SlotK).Name)
	assert.False(t, m.Contains("Kicker X"))

	m.put(freeAgent("Kicker Y", models.K, 160, 6, models.StatusActive))
	team.StartWeek(3)
	require.NoError(t, m.AddDrop(team, Move{Slot: models.SlotK, Add: mustFind(t, m, "Kicker Y"), Stream: true}))
	assert.Equal(t, "Kicker X", team.Get(models.SlotK).Name, "a worse projection keeps the starter")

	m.put(freeAgent("Kicker Z", models.K, 170, 8, models.StatusActive))
	require.NoError(t, m.AddDrop(team, Move{Slot: models.SlotK, Add: mustFind(t, m, "Kicker Z"), Stream: true}))
	assert.Equal(t, "Kicker Z", team.Get(models.SlotK).Name)
	assert.True(t, m.Contains("Kicker X"), "the replaced kicker returns to the pool")
}

func mustFind(t *testing.T, m *Market, name string) *models.Player {
	t.Helper()
	for _, p := range m.players {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("%s is not in the market", name)
	return nil
}
