package roster

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draftedPlayer struct {
	pos    models.Position
	name   string
	pick   int
	adp    float64
	team   string
	bye    int
	ppg    float64
	status models.Status
}

var mockDraft = []draftedPlayer{
	{models.WR, "C. Lamb", 9, 2, "Cowboys", 7, 22, models.StatusActive},
	{models.RB, "J. Gibbs", 12, 13, "Lions", 5, 15, models.StatusActive},
	{models.RB, "J. Jacobs", 29, 30, "Packers", 10, 18, models.StatusActive},
	{models.WR, "N. Collins", 32, 23, "Texans", 14, 23, models.StatusOut},
	{models.WR, "D. Smith", 49, 43, "Eagles", 5, 16, models.StatusActive},
	{models.QB, "C. Stroud", 52, 44, "Texans", 14, 22, models.StatusOut},
	{models.TE, "K. Pitts", 69, 64, "Falcons", 12, 15, models.StatusActive},
	{models.WR, "R. Rice", 72, 78, "Chiefs", 6, 0, models.StatusOut},
	{models.WR, "J. Reed", 89, 74, "Packers", 10, 12, models.StatusActive},
	{models.RB, "E. Elliot", 92, 130, "Cowboys", 7, 13, models.StatusActive},
	{models.RB, "A. Ekeler", 109, 85, "Commanders", 14, 16, models.StatusActive},
	{models.DST, "49ers D/ST", 112, 212, "49ers", 9, 10, models.StatusActive},
	{models.QB, "T. Lawrence", 129, 102, "Jaguars", 12, 19, models.StatusActive},
	{models.K, "B. Aubrey", 132, 121, "Cowboys", 7, 12, models.StatusActive},
	{models.TE, "C. Kmet", 149, 136, "Bears", 7, 20, models.StatusActive},
	{models.WR, "C. Samuel", 152, 106, "Bills", 12, 15, models.StatusActive},
}

func (d draftedPlayer) player() *models.Player {
	return &models.Player{
		Name:          d.name,
		Team:          d.team,
		Position:      d.pos,
		ByeWeek:       d.bye,
		ADP:           d.adp,
		Status:        d.status,
		PointsPerGame: d.ppg,
	}
}

func testStrategy() models.DraftStrategy {
	return models.DraftStrategy{
		QB: models.MidRoundQB, RB: models.AnyRB, WR: models.AnyWR,
		TE: models.MidRoundTE, K: models.MidK, DST: models.MidDST,
	}
}

func newTestTeam() *Team {
	return NewWithStrategy("Test Team", 1, rules.Default(), testStrategy())
}

// draftAll adds every pick except the names in skip and returns the errors
// keyed by player name.
func draftAll(t *Team, skip ...string) map[string]error {
	skipped := make(map[string]bool)
	for _, s := range skip {
		skipped[s] = true
	}
	errs := make(map[string]error)
	for _, d := range mockDraft {
		if skipped[d.name] {
			continue
		}
		if _, err := t.AddPick(d.player(), d.pick); err != nil {
			errs[d.name] = err
		}
	}
	return errs
}

func slotNames(t *Team) map[models.Slot]string {
	out := make(map[models.Slot]string)
	for s := models.Slot(0); s < models.NumSlots; s++ {
		if p := t.Get(s); p != nil {
			out[s] = p.Name
		}
	}
	return out
}

func TestNew_DrawsStrategy(t *testing.T) {
	team, err := New("Drawn", 3, rules.Default(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	assert.Equal(t, 3, team.DraftPick)
	assert.Len(t, team.Strategy.All(), len(models.Families))
	assert.Greater(t, team.WaiverActivity, 0.0)

	broken := rules.Default()
	broken.Strategies = nil
	_, err = New("Broken", 1, broken, rand.New(rand.NewSource(11)))
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestNewTeam(t *testing.T) {
	team := newTestTeam()

	assert.Equal(t, "Test Team", team.Name)
	assert.Equal(t, 1, team.DraftPick)
	assert.Equal(t, 0, team.Size())
	assert.Equal(t, 7, team.OpenBench())
	assert.True(t, team.StreamK)
	assert.True(t, team.StreamDST)
	assert.Equal(t, 2, team.PicksNeeded(models.StageMiddle))
	assert.Equal(t, 2, team.PicksNeeded(models.StageMidLate))
	assert.Equal(t, 0, team.PicksNeeded(models.StageEarly))
}

func TestAddPick_FirstRB(t *testing.T) {
	team := newTestTeam()

	slot, err := team.AddPick(&models.Player{Name: "Test Player", Position: models.RB, Status: models.StatusActive}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.SlotRB1, slot)
	assert.Equal(t, 1, team.Get(models.SlotRB1).PickNumber)
}

func TestAddPick_MockDraft(t *testing.T) {
	team := newTestTeam()
	errs := draftAll(team)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs["C. Samuel"], models.ErrIllegalAction, "a sixth WR breaks the cap")

	want := map[models.Slot]string{
		models.SlotQB:   "C. Stroud",
		models.SlotRB1:  "J. Gibbs",
		models.SlotRB2:  "J. Jacobs",
		models.SlotWR1:  "C. Lamb",
		models.SlotWR2:  "N. Collins",
		models.SlotTE:   "K. Pitts",
		models.SlotFlex: "D. Smith",
		models.SlotK:    "B. Aubrey",
		models.SlotDST:  "49ers D/ST",
		models.SlotBE1:  "R. Rice",
		models.SlotBE2:  "J. Reed",
		models.SlotBE3:  "E. Elliot",
		models.SlotBE4:  "A. Ekeler",
		models.SlotBE5:  "T. Lawrence",
		models.SlotBE6:  "C. Kmet",
	}
	if diff := cmp.Diff(want, slotNames(team)); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, team.Count(models.WR))
	assert.Equal(t, 15, team.Size())
	assert.Equal(t, 1, team.OpenBench())
}

func TestGetBench_MockDraft(t *testing.T) {
	team := newTestTeam()
	draftAll(team)

	var names []string
	var picks []int
	for _, p := range team.Bench() {
		names = append(names, p.Name)
		picks = append(picks, p.PickNumber)
	}
	assert.Equal(t, []string{"R. Rice", "J. Reed", "E. Elliot", "A. Ekeler", "T. Lawrence", "C. Kmet"}, names)
	assert.Equal(t, []int{72, 89, 92, 109, 129, 149}, picks)
}

func TestAddToBench(t *testing.T) {
	team := newTestTeam()

	slot, err := team.AddToBench(&models.Player{Name: "Test Player", Position: models.WR, Status: models.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, models.SlotBE1, slot)
	assert.Equal(t, "Test Player", team.Bench()[0].Name)
}

func TestAddRejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Team)
		player *models.Player
	}{
		{
			name:   "nil player",
			player: nil,
		},
		{
			name:   "invalid position",
			player: &models.Player{Name: "Nobody", Position: "LB"},
		},
		{
			name: "duplicate name",
			setup: func(tm *Team) {
				_, _ = tm.AddPick(&models.Player{Name: "Same", Position: models.RB}, 1)
			},
			player: &models.Player{Name: "Same", Position: models.RB},
		},
		{
			name: "kicker cap",
			setup: func(tm *Team) {
				_, _ = tm.AddPick(&models.Player{Name: "K1", Position: models.K}, 1)
				_, _ = tm.AddPick(&models.Player{Name: "K2", Position: models.K}, 2)
			},
			player: &models.Player{Name: "K3", Position: models.K},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := newTestTeam()
			if tt.setup != nil {
				tt.setup(team)
			}
			before := team.Size()

			_, err := team.AddPick(tt.player, 99)
			assert.ErrorIs(t, err, models.ErrIllegalAction)
			_, err = team.AddToBench(tt.player)
			assert.ErrorIs(t, err, models.ErrIllegalAction)
			assert.Equal(t, before, team.Size())
		})
	}
}

func TestBenchFull(t *testing.T) {
	team := newTestTeam()
	positions := []models.Position{models.WR, models.WR, models.RB, models.RB, models.QB, models.TE, models.K}
	for i, pos := range positions {
		_, err := team.AddToBench(&models.Player{Name: "Bench " + string(rune('A'+i)), Position: pos})
		require.NoError(t, err)
	}
	assert.True(t, team.BenchFull())

	_, err := team.AddToBench(&models.Player{Name: "Overflow", Position: models.DST})
	assert.ErrorIs(t, err, models.ErrIllegalAction)

	_, err = team.DropPlayer("Bench B")
	require.NoError(t, err)
	assert.False(t, team.BenchFull())
}

func TestDropPlayer(t *testing.T) {
	team := newTestTeam()
	draftAll(team)

	dropped, err := team.DropPlayer("C. Lamb")
	require.NoError(t, err)
	assert.Equal(t, "C. Lamb", dropped.Name)
	_, err = team.DropPlayer("J. Jacobs")
	require.NoError(t, err)

	assert.Nil(t, team.Get(models.SlotWR1))
	assert.Nil(t, team.Get(models.SlotRB2))
	assert.Equal(t, 4, team.Count(models.WR))
	assert.False(t, team.Has("C. Lamb"))

	_, err = team.DropPlayer("C. Lamb")
	assert.ErrorIs(t, err, models.ErrIllegalAction)
}

func TestInjuredPlayers(t *testing.T) {
	team := newTestTeam()
	_, _ = team.AddPick(&models.Player{Name: "Test Player 1", Position: models.RB, Status: models.StatusOut}, 1)
	_, _ = team.AddPick(&models.Player{Name: "Test Player 2", Position: models.RB, Status: models.StatusOut}, 2)
	_, _ = team.AddPick(&models.Player{Name: "Test Player 3", Position: models.WR, Status: models.StatusActive}, 3)

	injured := team.InjuredStarters()
	require.Len(t, injured, 2)
	assert.Equal(t, "Test Player 1", injured[0].Name)
	assert.Equal(t, "Test Player 2", injured[1].Name)
	assert.Len(t, team.InjuredPlayers(), 2)
}

func TestConsumeStrategyPick(t *testing.T) {
	team := newTestTeam()

	team.ConsumeStrategyPick(models.StageMiddle, models.WR)
	assert.Equal(t, 2, team.PicksNeeded(models.StageMiddle), "a WR does not satisfy MidRoundQB or MidRoundTE")

	team.ConsumeStrategyPick(models.StageMiddle, models.QB)
	assert.Equal(t, 1, team.PicksNeeded(models.StageMiddle))

	team.ConsumeStrategyPick(models.StageMiddle, models.TE)
	assert.Equal(t, 0, team.PicksNeeded(models.StageMiddle))

	team.ConsumeStrategyPick(models.StageMiddle, models.TE)
	assert.Equal(t, 0, team.PicksNeeded(models.StageMiddle), "never below zero")

	team.ConsumeStrategyPick(models.StageLateLate, models.K)
	assert.Equal(t, 2, team.PicksNeeded(models.StageMidLate), "picks only count in their own stage")
}

func TestQueueAndSettle(t *testing.T) {
	team := newTestTeam()
	team.StartWeek(5)
	add := &models.Player{Name: "Add", Position: models.WR}
	drop := &models.Player{Name: "Drop", Position: models.WR}

	team.Queue(add, nil, true)
	assert.Equal(t, 6, team.OpenBenchAfterQueue())
	assert.True(t, team.IsQueuedAdd("Add"))

	team.Settle(add, nil, true)
	assert.Equal(t, 7, team.OpenBenchAfterQueue())

	team.Settle(drop, nil, true)
	assert.Equal(t, 7, team.OpenBenchAfterQueue(), "settling a move that was never queued changes nothing")

	team.StartWeek(6)
	assert.False(t, team.IsQueuedAdd("Add"))
	assert.Equal(t, 6, team.Week)
}

func TestSnapshot(t *testing.T) {
	team := newTestTeam()
	draftAll(team)

	rows := team.Snapshot()
	require.Len(t, rows, int(models.NumSlots))
	assert.Equal(t, models.RosterRow{
		Slot:          models.SlotQB,
		Player:        "C. Stroud",
		ProTeam:       "Texans",
		Position:      models.QB,
		Status:        models.StatusOut,
		PointsPerGame: 22,
		PickNumber:    52,
	}, rows[models.SlotQB])
	assert.Equal(t, models.RosterRow{Slot: models.SlotBE7}, rows[models.SlotBE7])
}
