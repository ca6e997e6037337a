package draft

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/roster"
)

// View is what an external picker sees when its team is on the clock.
type View struct {
	Round     int
	Pick      int
	Remaining int
	Team      *roster.Team
	Board     []*models.Player
}

// Picker chooses a player name for the human-managed team.
type Picker interface {
	Pick(ctx context.Context, v View) (string, error)
}

type PickerFunc func(ctx context.Context, v View) (string, error)

func (f PickerFunc) Pick(ctx context.Context, v View) (string, error) {
	return f(ctx, v)
}

// BestAvailable takes the highest ranked player the roster can hold, honoring
// the required-position floor.
var BestAvailable Picker = PickerFunc(func(_ context.Context, v View) (string, error) {
	forced := v.Team.Rules().RequiredPositions(v.Team.Counts(), v.Remaining)
	for _, p := range v.Board {
		if forced.Matches(p.Position) && v.Team.CanPlace(p.Position) {
			return p.Name, nil
		}
	}
	for _, p := range v.Board {
		if v.Team.CanPlace(p.Position) {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("%w: nothing left for %s", models.ErrNoEligibleCandidate, v.Team.Name)
})

func (e *Engine) view(team *roster.Team) View {
	return View{
		Round:     e.Round(),
		Pick:      e.Pick(),
		Remaining: e.rules.Rounds - e.Round() + 1,
		Team:      team,
		Board:     e.board.Available(),
	}
}

// Run drafts every remaining pick. Picks for the team named human come from
// picker; every other team drafts by strategy.
func (e *Engine) Run(ctx context.Context, human string, picker Picker) error {
	for !e.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		team, _ := e.OnTheClock()

		if human != "" && team.Name == human && picker != nil {
			name, err := picker.Pick(ctx, e.view(team))
			if err != nil {
				return fmt.Errorf("picker failed at pick %d: %w", e.Pick(), err)
			}
			if _, err := e.RunHumanStep(team, name); err != nil {
				return fmt.Errorf("human pick %d for %s: %w", e.Pick(), team.Name, err)
			}
			continue
		}

		if _, err := e.RunDraftStep(team); err != nil {
			return fmt.Errorf("round %d pick %d for %s: %w", e.Round(), e.Pick(), team.Name, err)
		}
	}
	e.logger.Info("Draft complete", "picks", len(e.history), "teams", len(e.teams))
	return nil
}
