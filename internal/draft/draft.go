package draft

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/pool"
	"github.com/omarshaarawi/leaguesim/internal/roster"
	"github.com/omarshaarawi/leaguesim/internal/rules"
)

type pickSlot struct {
	round int
	pick  int
	team  *roster.Team
}

// Engine runs a snake draft over a shared board. It is not safe for
// concurrent use; picks are made strictly one at a time.
type Engine struct {
	rules   rules.Rules
	board   *pool.Pool
	teams   []*roster.Team
	picks   []pickSlot
	cursor  int
	history []models.PickRecord
	logger  *slog.Logger
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func New(r rules.Rules, board *pool.Pool, teams []*roster.Team, opts ...Option) (*Engine, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: a draft needs at least two teams", models.ErrConfiguration)
	}

	ordered := make([]*roster.Team, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DraftPick < ordered[j].DraftPick
	})
	for i := 1; i < len(ordered); i++ {
		if ordered[i].DraftPick == ordered[i-1].DraftPick {
			return nil, fmt.Errorf("%w: %s and %s share draft pick %d",
				models.ErrConfiguration, ordered[i-1].Name, ordered[i].Name, ordered[i].DraftPick)
		}
	}

	e := &Engine{
		rules:  r,
		board:  board,
		teams:  ordered,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.picks = buildPickBoard(ordered, r.Rounds)
	return e, nil
}

// buildPickBoard lays out every pick of the draft, reversing the team order
// after each round.
func buildPickBoard(teams []*roster.Team, rounds int) []pickSlot {
	order := make([]*roster.Team, len(teams))
	copy(order, teams)

	picks := make([]pickSlot, 0, rounds*len(teams))
	n := 1
	for round := 1; round <= rounds; round++ {
		for _, t := range order {
			picks = append(picks, pickSlot{round: round, pick: n, team: t})
			n++
		}
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return picks
}

// Teams returns the teams in draft-pick order.
func (e *Engine) Teams() []*roster.Team {
	out := make([]*roster.Team, len(e.teams))
	copy(out, e.teams)
	return out
}

func (e *Engine) Board() *pool.Pool {
	return e.board
}

func (e *Engine) Done() bool {
	return e.cursor >= len(e.picks)
}

// OnTheClock returns the team holding the current pick.
func (e *Engine) OnTheClock() (*roster.Team, bool) {
	if e.Done() {
		return nil, false
	}
	return e.picks[e.cursor].team, true
}

// Round is the current 1-based round; after the draft it is Rounds+1.
func (e *Engine) Round() int {
	if e.Done() {
		return e.rules.Rounds + 1
	}
	return e.picks[e.cursor].round
}

// Pick is the current overall pick number.
func (e *Engine) Pick() int {
	return e.cursor + 1
}

func (e *Engine) Stage() models.Stage {
	return e.rules.StageOf(e.Round())
}

func (e *Engine) History() []models.PickRecord {
	out := make([]models.PickRecord, len(e.history))
	copy(out, e.history)
	return out
}

// RequiredPositions is the hard floor for a team with remaining rounds left.
func (e *Engine) RequiredPositions(team *roster.Team, remaining int) models.PositionSet {
	return e.rules.RequiredPositions(team.Counts(), remaining)
}

// FreeAgents returns the undrafted players with their weekly numbers cleared,
// ready to seed the waiver pool.
func (e *Engine) FreeAgents() []*models.Player {
	out := e.board.Available()
	for _, p := range out {
		p.PointsPerGame = 0
		p.Projected = 0
		p.Points = 0
		p.PickNumber = 0
	}
	return out
}

func (e *Engine) checkClock(team *roster.Team) error {
	current, ok := e.OnTheClock()
	if !ok {
		return fmt.Errorf("%w: the draft is complete", models.ErrIllegalAction)
	}
	if current != team {
		return fmt.Errorf("%w: %s is on the clock, not %s", models.ErrIllegalAction, current.Name, team.Name)
	}
	return nil
}

// RunDraftStep makes the current pick for a computer-managed team.
func (e *Engine) RunDraftStep(team *roster.Team) (*models.Player, error) {
	if err := e.checkClock(team); err != nil {
		return nil, err
	}
	p, err := e.OtherTeamSelection(team)
	if err != nil {
		return nil, err
	}
	e.cursor++
	return p, nil
}

// RunHumanStep makes the current pick with an externally chosen player.
func (e *Engine) RunHumanStep(team *roster.Team, name string) (*models.Player, error) {
	if err := e.checkClock(team); err != nil {
		return nil, err
	}
	p, err := e.MySelection(team, name)
	if err != nil {
		return nil, err
	}
	e.cursor++
	return p, nil
}

// MySelection drafts the named player for team without any strategy logic.
func (e *Engine) MySelection(team *roster.Team, name string) (*models.Player, error) {
	if e.Done() {
		return nil, fmt.Errorf("%w: the draft is complete", models.ErrIllegalAction)
	}
	p, ok := e.board.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: no player matches %q", models.ErrIllegalAction, name)
	}
	if !e.board.IsAvailable(p.Name) {
		return nil, fmt.Errorf("%w: %s has already been drafted", models.ErrIllegalAction, p.Name)
	}
	if err := e.take(team, p); err != nil {
		return nil, err
	}
	return p, nil
}

// OtherTeamSelection drafts for team following its strategy and the stage
// rules, without advancing the pick.
func (e *Engine) OtherTeamSelection(team *roster.Team) (*models.Player, error) {
	if e.Done() {
		return nil, fmt.Errorf("%w: the draft is complete", models.ErrIllegalAction)
	}
	round := e.Round()
	set := e.candidatePositions(team, round, e.rules.StageOf(round))

	p, err := e.selectTop(team, set)
	if err != nil && !set.Empty() {
		// Fallback: relax to any position when the candidate set cannot be
		// placed on this roster.
		e.logger.Debug("Relaxing draft candidate set", "team", team.Name, "round", round, "positions", set.String())
		p, err = e.selectTop(team, 0)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// selectTop takes the first available player in board order whose position
// is in set (any position when set is empty) and fits the roster.
func (e *Engine) selectTop(team *roster.Team, set models.PositionSet) (*models.Player, error) {
	for _, p := range e.board.Available() {
		if !set.Matches(p.Position) || !team.CanPlace(p.Position) {
			continue
		}
		if err := e.take(team, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: nothing on the board fits %s for %s", models.ErrNoEligibleCandidate, set, team.Name)
}

func (e *Engine) take(team *roster.Team, p *models.Player) error {
	slot, err := team.AddPick(p, e.Pick())
	if err != nil {
		return err
	}
	if err := e.board.MarkDrafted(p.Name); err != nil {
		_, _ = team.DropPlayer(p.Name)
		return err
	}

	round := e.Round()
	team.ConsumeStrategyPick(e.rules.StageOf(round), p.Position)
	e.history = append(e.history, models.PickRecord{
		Round:    round,
		Pick:     e.Pick(),
		Team:     team.Name,
		Player:   p.Name,
		Position: p.Position,
	})
	e.logger.Debug("Draft pick", "round", round, "pick", e.Pick(), "team", team.Name, "player", p.Name, "slot", slot.String())
	return nil
}
