package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/leaguesim/internal/draft"
	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/pool"
	"github.com/omarshaarawi/leaguesim/internal/roster"
	"github.com/omarshaarawi/leaguesim/internal/rules"
	"github.com/omarshaarawi/leaguesim/internal/season"
	"github.com/omarshaarawi/leaguesim/internal/waiver"
)

// Member is one seat at the draft. A nil Strategy is drawn from the rules.
type Member struct {
	Name      string
	DraftPick int
	Strategy  *models.DraftStrategy
}

type Config struct {
	Members []Member
	Human   string
	Rules   rules.Rules
	// Seed drives every random draw; zero picks one from the clock.
	Seed int64
}

// DefaultMembers returns "Team 1" through "Team n" picking in that order.
func DefaultMembers(n int) []Member {
	members := make([]Member, n)
	for i := range members {
		members[i] = Member{Name: fmt.Sprintf("Team %d", i+1), DraftPick: i + 1}
	}
	return members
}

// League wires one simulated season: the board, the teams, the draft and,
// once the draft is done, the waiver market and season.
type League struct {
	ID string

	cfg    Config
	rng    *rand.Rand
	board  *pool.Pool
	teams  []*roster.Team
	draft  *draft.Engine
	market *waiver.Market
	season *season.Engine
	feed   season.Feed
	logger *slog.Logger
}

type Option func(*League)

func WithLogger(l *slog.Logger) Option {
	return func(lg *League) {
		lg.logger = l
	}
}

func New(cfg Config, players []models.Player, feed season.Feed, opts ...Option) (*League, error) {
	if len(cfg.Members) == 0 {
		return nil, fmt.Errorf("%w: league has no members", models.ErrConfiguration)
	}
	if feed == nil {
		return nil, fmt.Errorf("%w: league needs a weekly feed", models.ErrConfiguration)
	}
	if err := season.ValidateLeague(cfg.Rules, len(cfg.Members)); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	l := &League{
		ID:     uuid.NewString(),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		feed:   feed,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("league", l.ID)

	board, err := pool.New(players)
	if err != nil {
		return nil, fmt.Errorf("building player pool: %w", err)
	}
	l.board = board

	human := false
	for _, m := range cfg.Members {
		var t *roster.Team
		if m.Strategy != nil {
			t = roster.NewWithStrategy(m.Name, m.DraftPick, cfg.Rules, *m.Strategy)
			t.WaiverActivity = cfg.Rules.DrawWaiverActivity(l.rng)
		} else {
			var err error
			if t, err = roster.New(m.Name, m.DraftPick, cfg.Rules, l.rng); err != nil {
				return nil, err
			}
		}
		l.teams = append(l.teams, t)
		human = human || m.Name == cfg.Human
	}
	if cfg.Human != "" && !human {
		return nil, fmt.Errorf("%w: human team %q is not a league member", models.ErrConfiguration, cfg.Human)
	}

	l.draft, err = draft.New(cfg.Rules, board, l.teams, draft.WithLogger(l.logger))
	if err != nil {
		return nil, fmt.Errorf("setting up draft: %w", err)
	}
	return l, nil
}

func (l *League) Seed() int64 {
	return l.cfg.Seed
}

func (l *League) Teams() []*roster.Team {
	return l.draft.Teams()
}

func (l *League) Draft() *draft.Engine {
	return l.draft
}

// Season is nil until the draft has finished.
func (l *League) Season() *season.Engine {
	return l.season
}

// RunDraft drafts every pick, then opens the waiver market with the
// undrafted players and sets up the season.
func (l *League) RunDraft(ctx context.Context, picker draft.Picker) error {
	if err := l.draft.Run(ctx, l.cfg.Human, picker); err != nil {
		return fmt.Errorf("running draft: %w", err)
	}

	l.market = waiver.New(l.cfg.Rules, l.draft.FreeAgents(), waiver.WithLogger(l.logger))
	s, err := season.New(l.cfg.Rules, l.teams, l.market, l.feed, l.rng, season.WithLogger(l.logger))
	if err != nil {
		return fmt.Errorf("setting up season: %w", err)
	}
	l.season = s
	return nil
}

func (l *League) RunSeason(ctx context.Context) error {
	if l.season == nil {
		return errors.New("season cannot start before the draft")
	}
	if err := l.season.Run(ctx); err != nil {
		return fmt.Errorf("running season: %w", err)
	}
	return nil
}

// Simulate runs the draft and the full season and returns the outcome.
func (l *League) Simulate(ctx context.Context, picker draft.Picker) (*Result, error) {
	start := time.Now()
	if err := l.RunDraft(ctx, picker); err != nil {
		return nil, err
	}
	if err := l.RunSeason(ctx); err != nil {
		return nil, err
	}
	res := l.Result()
	l.logger.Info("Simulation finished", "seed", l.cfg.Seed, "duration", time.Since(start).String())
	return res, nil
}
