package waiver

import (
	"log/slog"
	"sort"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/rules"
)

// Move is one queued transaction. A nil Drop means the bench had room.
// Stream moves replace the K or DST starter in place.
type Move struct {
	Slot   models.Slot
	Drop   *models.Player
	Add    *models.Player
	Stream bool
}

// Market is the league-wide free-agent pool.
type Market struct {
	rules   rules.Rules
	players []*models.Player
	week    int
	logger  *slog.Logger
}

type Option func(*Market)

func WithLogger(l *slog.Logger) Option {
	return func(m *Market) {
		m.logger = l
	}
}

func New(r rules.Rules, players []*models.Player, opts ...Option) *Market {
	m := &Market{
		rules:   r,
		players: append([]*models.Player(nil), players...),
		week:    1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Sort()
	return m
}

func (m *Market) Week() int {
	return m.week
}

// SetWeek advances the pool to week and re-sorts it.
func (m *Market) SetWeek(week int) {
	m.week = week
	m.Sort()
}

// Sort orders the pool best first by the weekly value key.
func (m *Market) Sort() {
	rank(m.players, m.value, true)
}

func (m *Market) value(p *models.Player) float64 {
	return m.rules.Value(m.week, p)
}

func (m *Market) dropValue(p *models.Player) float64 {
	return m.rules.DropValue(m.week, p)
}

func (m *Market) Players() []*models.Player {
	out := make([]*models.Player, len(m.players))
	copy(out, m.players)
	return out
}

func (m *Market) Len() int {
	return len(m.players)
}

func (m *Market) Contains(name string) bool {
	for _, p := range m.players {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (m *Market) put(p *models.Player) {
	m.players = append(m.players, p)
}

func (m *Market) remove(name string) {
	out := m.players[:0]
	for _, p := range m.players {
		if p.Name != name {
			out = append(out, p)
		}
	}
	m.players = out
}

// rank sorts players by key, best first when desc. Ties keep their order.
func rank(players []*models.Player, key func(*models.Player) float64, desc bool) {
	keys := make(map[*models.Player]float64, len(players))
	for _, p := range players {
		keys[p] = key(p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		if desc {
			return keys[players[i]] > keys[players[j]]
		}
		return keys[players[i]] < keys[players[j]]
	})
}
