package pool

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/leaguesim/internal/models"
)

const matchThreshold = 0.7

// Pool is the draft board: every player in one arena, ordered by ADP, with a
// name index and an availability flag per player.
type Pool struct {
	players   []*models.Player
	available []bool
	byName    map[string]int
}

func New(rows []models.Player) (*Pool, error) {
	p := &Pool{
		players:   make([]*models.Player, 0, len(rows)),
		available: make([]bool, len(rows)),
		byName:    make(map[string]int, len(rows)),
	}
	for i := range rows {
		row := rows[i]
		if row.Name == "" {
			return nil, fmt.Errorf("%w: player row %d has no name", models.ErrConfiguration, i+1)
		}
		if !row.Position.Valid() {
			return nil, fmt.Errorf("%w: player %s has position %q", models.ErrConfiguration, row.Name, row.Position)
		}
		if row.Status == "" {
			row.Status = models.StatusActive
		}
		p.players = append(p.players, &row)
	}

	sort.SliceStable(p.players, func(i, j int) bool {
		return p.players[i].ADP < p.players[j].ADP
	})

	for i, pl := range p.players {
		if _, dup := p.byName[pl.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate player %s", models.ErrConfiguration, pl.Name)
		}
		p.byName[pl.Name] = i
		p.available[i] = true
	}
	return p, nil
}

func (p *Pool) Len() int {
	return len(p.players)
}

func (p *Pool) Get(name string) (*models.Player, bool) {
	i, ok := p.byName[name]
	if !ok {
		return nil, false
	}
	return p.players[i], true
}

func (p *Pool) IsAvailable(name string) bool {
	i, ok := p.byName[name]
	return ok && p.available[i]
}

// MarkDrafted takes a player off the board.
func (p *Pool) MarkDrafted(name string) error {
	i, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: unknown player %s", models.ErrIllegalAction, name)
	}
	if !p.available[i] {
		return fmt.Errorf("%w: %s has already been drafted", models.ErrIllegalAction, name)
	}
	p.available[i] = false
	return nil
}

// Available returns the undrafted players in board order.
func (p *Pool) Available() []*models.Player {
	out := make([]*models.Player, 0, len(p.players))
	for i, pl := range p.players {
		if p.available[i] {
			out = append(out, pl)
		}
	}
	return out
}

// All returns every player in board order.
func (p *Pool) All() []*models.Player {
	out := make([]*models.Player, len(p.players))
	copy(out, p.players)
	return out
}

// Find resolves a name exactly, falling back to the closest fuzzy match.
func (p *Pool) Find(query string) (*models.Player, bool) {
	if pl, ok := p.Get(query); ok {
		return pl, true
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}

	var best *models.Player
	bestScore := -1.0
	for _, pl := range p.players {
		name := strings.ToLower(pl.Name)
		distance := fuzzy.LevenshteinDistance(q, name)
		maxLen := float64(max(utf8.RuneCountInString(q), utf8.RuneCountInString(name)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > matchThreshold && similarity > bestScore {
			bestScore = similarity
			best = pl
		}
	}
	return best, best != nil
}

// Snapshot encodes the board for external consumers.
func (p *Pool) Snapshot() []models.BoardRow {
	rows := make([]models.BoardRow, len(p.players))
	for i, pl := range p.players {
		avail := 0
		if p.available[i] {
			avail = 1
		}
		rows[i] = models.BoardRow{
			Name:      pl.Name,
			Position:  pl.Position.Code(),
			ADP:       pl.ADP,
			Available: avail,
		}
	}
	return rows
}
