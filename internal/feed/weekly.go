package feed

import (
	"fmt"
	"io"
	"sort"

	"github.com/omarshaarawi/leaguesim/internal/models"
)

var weeklyColumns = []string{"Name", "Week", "Status", "ProjectedFantasyPoints", "FantasyPoints"}

// Weekly is the per-week status, projection and actual points of every
// player, indexed by week and name.
type Weekly struct {
	byWeek   map[int]map[string]models.WeeklyEntry
	byPlayer map[string][]models.WeeklyEntry
	lastWeek int
}

// NewWeekly indexes entries. A later entry for the same week and player
// replaces an earlier one.
func NewWeekly(entries []models.WeeklyEntry) *Weekly {
	w := &Weekly{
		byWeek:   make(map[int]map[string]models.WeeklyEntry),
		byPlayer: make(map[string][]models.WeeklyEntry),
	}
	for _, e := range entries {
		names, ok := w.byWeek[e.Week]
		if !ok {
			names = make(map[string]models.WeeklyEntry)
			w.byWeek[e.Week] = names
		}
		names[e.Name] = e
		if e.Week > w.lastWeek {
			w.lastWeek = e.Week
		}
	}
	for _, names := range w.byWeek {
		for name, e := range names {
			w.byPlayer[name] = append(w.byPlayer[name], e)
		}
	}
	for _, list := range w.byPlayer {
		sort.Slice(list, func(i, j int) bool { return list[i].Week < list[j].Week })
	}
	return w
}

func (w *Weekly) Entry(week int, name string) (models.WeeklyEntry, bool) {
	e, ok := w.byWeek[week][name]
	return e, ok
}

// History returns name's entries for weeks 1 through uptoWeek in week order.
func (w *Weekly) History(name string, uptoWeek int) []models.WeeklyEntry {
	list := w.byPlayer[name]
	n := sort.Search(len(list), func(i int) bool { return list[i].Week > uptoWeek })
	return append([]models.WeeklyEntry(nil), list[:n]...)
}

// LastWeek is the highest week present in the feed.
func (w *Weekly) LastWeek() int {
	return w.lastWeek
}

func LoadWeekly(r io.Reader) (*Weekly, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return parseWeekly(records)
}

// OpenWeekly loads a .csv or .xlsx weekly feed from path.
func OpenWeekly(path string) (*Weekly, error) {
	records, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading weekly feed %s: %w", path, err)
	}
	w, err := parseWeekly(records)
	if err != nil {
		return nil, fmt.Errorf("loading weekly feed %s: %w", path, err)
	}
	return w, nil
}

func parseWeekly(records []record) (*Weekly, error) {
	t, err := newTable(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConfiguration, err)
	}
	if err := t.require(weeklyColumns...); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConfiguration, err)
	}

	entries := make([]models.WeeklyEntry, 0, len(t.rows))
	for _, rec := range t.rows {
		e, err := t.weeklyEntry(rec.cells)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", models.ErrConfiguration, rec.line, err)
		}
		entries = append(entries, e)
	}
	return NewWeekly(entries), nil
}

func (t *table) weeklyEntry(row []string) (models.WeeklyEntry, error) {
	week, err := t.integer(row, "Week")
	if err != nil {
		return models.WeeklyEntry{}, err
	}
	proj, err := t.decimal(row, "ProjectedFantasyPoints")
	if err != nil {
		return models.WeeklyEntry{}, err
	}
	pts, err := t.decimal(row, "FantasyPoints")
	if err != nil {
		return models.WeeklyEntry{}, err
	}

	e := models.WeeklyEntry{
		Name:      t.cell(row, "Name"),
		Week:      week,
		Status:    models.Status(t.cell(row, "Status")),
		Projected: proj,
		Points:    pts,
	}
	if e.Name == "" {
		return models.WeeklyEntry{}, fmt.Errorf("player name is empty")
	}
	if e.Week < 1 {
		return models.WeeklyEntry{}, fmt.Errorf("week %d is out of range", e.Week)
	}
	if e.Status == "" {
		e.Status = models.StatusActive
	}
	return e, nil
}
