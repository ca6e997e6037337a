package league

import (
	"context"
	"testing"

	"github.com/omarshaarawi/leaguesim/internal/draft"
	"github.com/omarshaarawi/leaguesim/internal/feed"
	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/rules"
	"github.com/omarshaarawi/leaguesim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInputs(t *testing.T, teams int) ([]models.Player, *feed.Weekly) {
	t.Helper()
	gen := testutil.NewTestDataGenerator(2024)
	players := gen.GeneratePool(teams)
	return players, feed.NewWeekly(gen.GenerateWeekly(players, 17))
}

func TestNew_Errors(t *testing.T) {
	players, weekly := testInputs(t, 10)

	shared := DefaultMembers(8)
	shared[1].DraftPick = 1
	late := rules.Default()
	late.PlayoffStartWeek = 16

	tests := []struct {
		name string
		cfg  Config
		feed *feed.Weekly
	}{
		{name: "no members", cfg: Config{Rules: rules.Default()}, feed: weekly},
		{name: "unknown human", cfg: Config{Members: DefaultMembers(10), Human: "Team 11", Rules: rules.Default()}, feed: weekly},
		{name: "shared draft pick", cfg: Config{Members: shared, Rules: rules.Default()}, feed: weekly},
		{name: "nine teams", cfg: Config{Members: DefaultMembers(9), Rules: rules.Default()}, feed: weekly},
		{name: "fourteen teams", cfg: Config{Members: DefaultMembers(14), Rules: rules.Default()}, feed: weekly},
		{name: "playoffs do not fit", cfg: Config{Members: DefaultMembers(10), Rules: late}, feed: weekly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, players, tt.feed)
			assert.ErrorIs(t, err, models.ErrConfiguration)
		})
	}

	_, err := New(Config{Members: DefaultMembers(10), Rules: rules.Default()}, players, nil)
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestDefaultMembers(t *testing.T) {
	members := DefaultMembers(3)
	assert.Equal(t, []Member{
		{Name: "Team 1", DraftPick: 1},
		{Name: "Team 2", DraftPick: 2},
		{Name: "Team 3", DraftPick: 3},
	}, members)
}

func TestSimulate(t *testing.T) {
	players, weekly := testInputs(t, 10)
	hero := models.DraftStrategy{
		QB: models.LateRoundQB, RB: models.HeroRB, WR: models.AnyWR,
		TE: models.LateRoundTE, K: models.LateK, DST: models.LateDST,
	}
	members := DefaultMembers(10)
	members[4].Strategy = &hero
	cfg := Config{Members: members, Human: "Team 1", Rules: rules.Default(), Seed: 77}

	l, err := New(cfg, players, weekly)
	require.NoError(t, err)
	assert.Nil(t, l.Season())
	assert.Error(t, l.RunSeason(context.Background()), "no season before the draft")

	res, err := l.Simulate(context.Background(), draft.BestAvailable)
	require.NoError(t, err)

	assert.Equal(t, int64(77), res.Metadata.Seed)
	assert.Equal(t, 10, res.Metadata.Teams)
	assert.Equal(t, 17, res.Metadata.Weeks)
	assert.Equal(t, l.ID, res.Metadata.ID)
	assert.Equal(t, "Team 1", res.Human)
	assert.Len(t, res.Picks, 160)
	assert.Len(t, res.Standings, 10)
	assert.Len(t, res.PlayoffRanks, 10)
	assert.Len(t, res.Matchups, 17)
	assert.NotEmpty(t, res.Champion())
	assert.NotEmpty(t, res.FreeAgents)

	summary, ok := res.Team("Team 5")
	require.True(t, ok)
	assert.Equal(t, hero, summary.Strategy)
	assert.Len(t, summary.Roster, int(models.NumSlots))
	assert.Equal(t, models.RB, res.Picks[4].Position, "a hero RB team takes a back in round one")

	_, ok = res.Team("Team 42")
	assert.False(t, ok)
}

func TestSimulate_Deterministic(t *testing.T) {
	players, weekly := testInputs(t, 8)
	runner := &Runner{
		Config:  Config{Members: DefaultMembers(8), Human: "Team 2", Rules: rules.Default(), Seed: 31337},
		Players: players,
		Feed:    weekly,
	}

	first, err := runner.Simulate(context.Background())
	require.NoError(t, err)
	second, err := runner.Simulate(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Metadata.ID, second.Metadata.ID)
	assert.Equal(t, first.Picks, second.Picks)
	assert.Equal(t, first.Standings, second.Standings)
	assert.Equal(t, first.PlayoffRanks, second.PlayoffRanks)
	assert.Equal(t, first.Matchups, second.Matchups)

	assert.Zero(t, players[0].PickNumber, "the runner never mutates its inputs")
}

func TestResult_BeforeSeason(t *testing.T) {
	players, weekly := testInputs(t, 8)
	l, err := New(Config{Members: DefaultMembers(8), Rules: rules.Default(), Seed: 5}, players, weekly)
	require.NoError(t, err)

	res := l.Result()
	assert.Empty(t, res.Picks)
	assert.Empty(t, res.Champion())
	assert.Len(t, res.Teams, 8)
	assert.Nil(t, res.FreeAgents)
}
