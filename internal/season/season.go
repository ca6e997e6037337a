package season

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sort"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/roster"
	"github.com/omarshaarawi/leaguesim/internal/rules"
	"github.com/omarshaarawi/leaguesim/internal/waiver"
)

// Feed is the weekly performance data the season is played against.
type Feed interface {
	Entry(week int, name string) (models.WeeklyEntry, bool)
	History(name string, uptoWeek int) []models.WeeklyEntry
}

// Engine plays a season week by week. It owns the standings and brackets of
// one league and is not safe for concurrent use.
type Engine struct {
	rules  rules.Rules
	teams  []*roster.Team
	byName map[string]*roster.Team
	market *waiver.Market
	feed   Feed
	rng    *rand.Rand
	logger *slog.Logger

	shape     shape
	schedule  map[int][]Pairing
	standings []*models.Standing
	results   map[int][]models.Matchup
	winners   *bracket
	toilet    *bracket
	week      int
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// ValidateLeague reports whether a league of teams can be scheduled under r.
func ValidateLeague(r rules.Rules, teams int) error {
	_, err := checkShape(r, teams)
	return err
}

func checkShape(r rules.Rules, teams int) (shape, error) {
	sh, err := leagueShape(teams)
	if err != nil {
		return shape{}, err
	}
	if need := r.PlayoffStartWeek + bracketWeeks(sh.playoff) - 1; r.PlayoffStartWeek < 2 || need != sh.weeks {
		return shape{}, fmt.Errorf("%w: playoffs starting week %d do not fit a %d week season", models.ErrConfiguration, r.PlayoffStartWeek, sh.weeks)
	}
	return sh, nil
}

func New(r rules.Rules, teams []*roster.Team, market *waiver.Market, feed Feed, rng *rand.Rand, opts ...Option) (*Engine, error) {
	sh, err := checkShape(r, len(teams))
	if err != nil {
		return nil, err
	}
	if market == nil || feed == nil || rng == nil {
		return nil, fmt.Errorf("%w: season needs a waiver market, a weekly feed and a random source", models.ErrConfiguration)
	}

	e := &Engine{
		rules:   r,
		teams:   teams,
		byName:  make(map[string]*roster.Team, len(teams)),
		market:  market,
		feed:    feed,
		rng:     rng,
		logger:  slog.Default(),
		shape:   sh,
		results: make(map[int][]models.Matchup),
	}
	for _, opt := range opts {
		opt(e)
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		if _, dup := e.byName[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate team name %s", models.ErrConfiguration, t.Name)
		}
		e.byName[t.Name] = t
		names[i] = t.Name
		e.standings = append(e.standings, &models.Standing{Team: t.Name})
	}
	e.schedule = buildSchedule(names, r.PlayoffStartWeek)
	return e, nil
}

func (e *Engine) Weeks() int {
	return e.shape.weeks
}

// Week is the last completed week.
func (e *Engine) Week() int {
	return e.week
}

func (e *Engine) Schedule() map[int][]Pairing {
	out := make(map[int][]Pairing, len(e.schedule))
	for w, pairs := range e.schedule {
		out[w] = append([]Pairing(nil), pairs...)
	}
	return out
}

func (e *Engine) Matchups(week int) []models.Matchup {
	return append([]models.Matchup(nil), e.results[week]...)
}

func (e *Engine) Standings() []models.Standing {
	out := make([]models.Standing, len(e.standings))
	for i, s := range e.standings {
		out[i] = *s
	}
	return out
}

// PlayoffRanks returns every team's final rank, best first. Teams not yet
// placed carry models.Unranked.
func (e *Engine) PlayoffRanks() []models.PlayoffRank {
	ranks := make(map[string]int, len(e.teams))
	for _, t := range e.teams {
		ranks[t.Name] = models.Unranked
	}
	for _, b := range []*bracket{e.winners, e.toilet} {
		if b == nil {
			continue
		}
		for team, r := range b.ranks() {
			ranks[team] = r
		}
	}

	out := make([]models.PlayoffRank, 0, len(ranks))
	for team, r := range ranks {
		out = append(out, models.PlayoffRank{Team: team, Rank: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Run plays every remaining week.
func (e *Engine) Run(ctx context.Context) error {
	for week := e.week + 1; week <= e.shape.weeks; week++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.SimulateWeek(week); err != nil {
			return err
		}
	}
	e.logger.Info("Season complete", "weeks", e.shape.weeks, "champion", e.champion())
	return nil
}

func (e *Engine) champion() string {
	for _, r := range e.PlayoffRanks() {
		if r.Rank == 1 {
			return r.Team
		}
	}
	return ""
}

// SimulateWeek refreshes players, runs waivers, plays the week's games and
// updates rolling points per game.
func (e *Engine) SimulateWeek(week int) error {
	if week != e.week+1 {
		return fmt.Errorf("%w: week %d cannot follow week %d", models.ErrIllegalAction, week, e.week)
	}
	if week > e.shape.weeks {
		return fmt.Errorf("%w: the season has %d weeks", models.ErrIllegalAction, e.shape.weeks)
	}

	for _, t := range e.teams {
		t.StartWeek(week)
	}
	e.RefreshPlayers(week)
	e.market.SetWeek(week)
	e.RunWaivers(week)

	if week < e.rules.PlayoffStartWeek {
		e.ScoreWeek(week)
	} else {
		e.SimulatePlayoffs(week)
	}
	e.UpdatePointsPerGame(week)
	e.week = week
	e.logger.Info("Simulated week", "week", week, "games", len(e.results[week]))
	return nil
}

func (e *Engine) allPlayers() []*models.Player {
	var out []*models.Player
	for _, t := range e.teams {
		out = append(out, t.Players()...)
	}
	return append(out, e.market.Players()...)
}

// RefreshPlayers loads status and projections for week. Players on bye or
// missing from the feed are inactive with no projection.
func (e *Engine) RefreshPlayers(week int) {
	for _, p := range e.allPlayers() {
		if p.ByeWeek == week {
			p.Projected = 0
			p.Status = models.StatusInactive
			continue
		}
		if entry, ok := e.feed.Entry(week, p.Name); ok {
			p.Status = entry.Status
			p.Projected = entry.Projected
			continue
		}
		p.Projected = 0
		p.Status = models.StatusInactive
	}
}

// waiverOrder is the reverse of the standings.
func (e *Engine) waiverOrder() []*roster.Team {
	out := make([]*roster.Team, 0, len(e.standings))
	for i := len(e.standings) - 1; i >= 0; i-- {
		out = append(out, e.byName[e.standings[i].Team])
	}
	return out
}

// RunWaivers gives every team, worst first, its waiver cycle.
func (e *Engine) RunWaivers(week int) {
	for _, team := range e.waiverOrder() {
		team.RollWaiverActivity(e.rng)
		e.settleRoster(team)
	}
}

// settleRoster loops lineup updates and waiver moves until the roster is
// legal. The first pass also covers upgrades and K/DST streams; later passes
// only chase unmet needs and stop as soon as the needs stop changing.
func (e *Engine) settleRoster(team *roster.Team) {
	streamK, streamDST := team.StreamK, team.StreamDST
	defer func() {
		team.StreamK, team.StreamDST = streamK, streamDST
	}()

	var prev []models.Slot
	for pass := 0; pass < e.rules.MaxWaiverPasses; pass++ {
		legal := team.UpdateRoster()
		if legal && !team.WaiverActive && !team.StreamK && !team.StreamDST {
			return
		}
		if pass > 0 && slices.Equal(prev, team.PositionsInNeed) {
			break
		}
		prev = append(prev[:0], team.PositionsInNeed...)

		for _, mv := range e.market.DetermineSwaps(team) {
			if err := e.market.AddDrop(team, mv); err != nil {
				e.logger.Debug("Waiver move skipped", "team", team.Name, "error", err)
			}
		}
		team.WaiverActive = false
		team.StreamK = false
		team.StreamDST = false
	}

	if !team.UpdateRoster() {
		e.logger.Warn("Roster left illegal after waivers", "team", team.Name, "week", team.Week, "needs", fmt.Sprint(team.PositionsInNeed))
	}
}

// teamScore sums the week's actual points of the starting lineup.
func (e *Engine) teamScore(team *roster.Team, week int) float64 {
	var total float64
	for _, p := range team.Starters() {
		entry, ok := e.feed.Entry(week, p.Name)
		if !ok {
			p.Points = 0
			continue
		}
		p.Points = entry.Points
		total += entry.Points
	}
	return total
}

// ScoreWeek plays the regular season games for week.
func (e *Engine) ScoreWeek(week int) []models.Matchup {
	var out []models.Matchup
	for _, pair := range e.schedule[week] {
		m := models.Matchup{
			Week:      week,
			HomeTeam:  pair.Home,
			AwayTeam:  pair.Away,
			HomeScore: e.teamScore(e.byName[pair.Home], week),
			AwayScore: e.teamScore(e.byName[pair.Away], week),
		}
		e.record(m)
		out = append(out, m)
	}
	e.sortStandings()
	e.results[week] = out
	return out
}

func (e *Engine) standing(team string) *models.Standing {
	for _, s := range e.standings {
		if s.Team == team {
			return s
		}
	}
	return nil
}

func (e *Engine) record(m models.Matchup) {
	home, away := e.standing(m.HomeTeam), e.standing(m.AwayTeam)
	if m.Winner() == m.HomeTeam {
		home.Wins++
		away.Losses++
	} else {
		away.Wins++
		home.Losses++
	}
	home.PointsFor += m.HomeScore
	home.PointsAgainst += m.AwayScore
	away.PointsFor += m.AwayScore
	away.PointsAgainst += m.HomeScore
}

func (e *Engine) sortStandings() {
	sort.SliceStable(e.standings, func(i, j int) bool {
		a, b := e.standings[i], e.standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.Team < b.Team
	})
}

// SimulatePlayoffs seeds the brackets on the first playoff week and plays
// whatever games each bracket has scheduled for week.
func (e *Engine) SimulatePlayoffs(week int) []models.Matchup {
	if e.winners == nil {
		e.seedBrackets()
	}

	scores := make(map[string]float64)
	score := func(team string) float64 {
		if s, ok := scores[team]; ok {
			return s
		}
		s := e.teamScore(e.byName[team], week)
		scores[team] = s
		return s
	}

	var out []models.Matchup
	for _, b := range []*bracket{e.winners, e.toilet} {
		if week <= b.lastWeek() {
			out = append(out, b.play(week, score)...)
		}
	}
	e.results[week] = out
	return out
}

func (e *Engine) seedBrackets() {
	n := len(e.standings)
	top := make([]string, e.shape.playoff)
	for i := range top {
		top[i] = e.standings[i].Team
	}
	// The last place team is the toilet bowl's first seed.
	bottom := make([]string, e.shape.toilet)
	for i := range bottom {
		bottom[i] = e.standings[n-1-i].Team
	}

	start := e.rules.PlayoffStartWeek
	e.winners = newBracket("playoffs", top, start, func(p int) int { return p })
	toiletRank := func(p int) int { return n + 1 - p }
	if e.shape.toilet == 6 {
		toiletRank = sixTeamToiletRank(n)
	}
	e.toilet = newBracket("toilet bowl", bottom, start, toiletRank)
	e.logger.Info("Playoffs seeded", "playoffs", fmt.Sprint(top), "toilet_bowl", fmt.Sprint(bottom))
}

// UpdatePointsPerGame sets every player's rolling average over their last
// few games played through week. Players with fewer games get zero.
func (e *Engine) UpdatePointsPerGame(week int) {
	window := e.rules.PPGWindow
	for _, p := range e.allPlayers() {
		var played []models.WeeklyEntry
		for _, entry := range e.feed.History(p.Name, week) {
			if entry.Status != models.StatusOut {
				played = append(played, entry)
			}
		}
		if len(played) < window {
			p.PointsPerGame = 0
			continue
		}
		var sum float64
		for _, entry := range played[len(played)-window:] {
			sum += entry.Points
		}
		p.PointsPerGame = sum / float64(window)
	}
}
