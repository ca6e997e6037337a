package league

import (
	"context"
	"log/slog"

	"github.com/omarshaarawi/leaguesim/internal/draft"
	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/season"
)

// Runner simulates a fresh league from the same inputs on every call. Each
// run gets its own copy of the players, so runs never share state.
type Runner struct {
	Config  Config
	Players []models.Player
	Feed    season.Feed
	Picker  draft.Picker
	Logger  *slog.Logger
}

func (r *Runner) Simulate(ctx context.Context) (*Result, error) {
	players := make([]models.Player, len(r.Players))
	copy(players, r.Players)

	var opts []Option
	if r.Logger != nil {
		opts = append(opts, WithLogger(r.Logger))
	}
	l, err := New(r.Config, players, r.Feed, opts...)
	if err != nil {
		return nil, err
	}

	picker := r.Picker
	if picker == nil {
		picker = draft.BestAvailable
	}
	return l.Simulate(ctx, picker)
}
