package roster

import (
	"fmt"
	"math/rand"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/rules"
)

// Team is one league entry: its sixteen roster slots, draft strategy and the
// per-week waiver state.
type Team struct {
	Name      string
	DraftPick int
	Strategy  models.DraftStrategy

	// WaiverActivity is the team's appetite for speculative pickups, fixed
	// for the season.
	WaiverActivity float64
	WaiverActive   bool
	StreamK        bool
	StreamDST      bool

	PositionsInNeed []models.Slot
	Legal           bool
	Week            int

	rules       rules.Rules
	slots       [models.NumSlots]*models.Player
	index       map[string]models.Slot
	counts      map[models.Position]int
	picksNeeded [models.NumStages]int
	goingToAdd  map[string]bool
	goingToDrop map[string]bool
	benchQueued int
}

// New creates a team with a randomly drawn strategy and waiver appetite.
func New(name string, draftPick int, r rules.Rules, rng *rand.Rand) (*Team, error) {
	strategy, err := r.DrawStrategy(rng)
	if err != nil {
		return nil, fmt.Errorf("drawing strategy for %s: %w", name, err)
	}
	t := NewWithStrategy(name, draftPick, r, strategy)
	t.WaiverActivity = r.DrawWaiverActivity(rng)
	return t, nil
}

func NewWithStrategy(name string, draftPick int, r rules.Rules, strategy models.DraftStrategy) *Team {
	t := &Team{
		Name:        name,
		DraftPick:   draftPick,
		Strategy:    strategy,
		StreamK:     strategy.K != models.EarlyK,
		StreamDST:   strategy.DST != models.EarlyDST,
		Legal:       true,
		rules:       r,
		index:       make(map[string]models.Slot),
		counts:      make(map[models.Position]int),
		goingToAdd:  make(map[string]bool),
		goingToDrop: make(map[string]bool),
	}
	for _, s := range strategy.All() {
		if stage, ok := r.StrategyStage(s); ok {
			t.picksNeeded[stage]++
		}
	}
	return t
}

func (t *Team) Rules() rules.Rules {
	return t.rules
}

func (t *Team) Get(slot models.Slot) *models.Player {
	if !slot.Valid() {
		return nil
	}
	return t.slots[slot]
}

func (t *Team) SlotOf(name string) (models.Slot, bool) {
	s, ok := t.index[name]
	return s, ok
}

func (t *Team) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Team) Count(p models.Position) int {
	return t.counts[p]
}

func (t *Team) Counts() map[models.Position]int {
	out := make(map[models.Position]int, len(t.counts))
	for p, n := range t.counts {
		out[p] = n
	}
	return out
}

func (t *Team) Size() int {
	return len(t.index)
}

// Players returns the rostered players in slot order.
func (t *Team) Players() []*models.Player {
	out := make([]*models.Player, 0, len(t.index))
	for _, p := range t.slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (t *Team) Starters() []*models.Player {
	out := make([]*models.Player, 0, len(models.StartingSlots))
	for _, s := range models.StartingSlots {
		if p := t.slots[s]; p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (t *Team) Bench() []*models.Player {
	out := make([]*models.Player, 0, models.NumSlots-models.SlotBE1)
	for s := models.SlotBE1; s < models.NumSlots; s++ {
		if p := t.slots[s]; p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (t *Team) OpenBench() int {
	n := 0
	for s := models.SlotBE1; s < models.NumSlots; s++ {
		if t.slots[s] == nil {
			n++
		}
	}
	return n
}

func (t *Team) BenchFull() bool {
	return t.OpenBench() == 0
}

// InjuredPlayers lists rostered players whose status is Out.
func (t *Team) InjuredPlayers() []*models.Player {
	var out []*models.Player
	for _, p := range t.Players() {
		if p.Status == models.StatusOut {
			out = append(out, p)
		}
	}
	return out
}

// InjuredStarters lists starting-lineup players whose status is Out.
func (t *Team) InjuredStarters() []*models.Player {
	var out []*models.Player
	for _, p := range t.Starters() {
		if p.Status == models.StatusOut {
			out = append(out, p)
		}
	}
	return out
}

func (t *Team) PicksNeeded(stage models.Stage) int {
	if stage < 0 || stage >= models.NumStages {
		return 0
	}
	return t.picksNeeded[stage]
}

// ConsumeStrategyPick records that a pick at pos was made during stage and
// decrements the counter of any strategy it satisfies.
func (t *Team) ConsumeStrategyPick(stage models.Stage, pos models.Position) {
	for _, s := range t.Strategy.All() {
		st, ok := t.rules.StrategyStage(s)
		if !ok || st != stage {
			continue
		}
		if f, _ := s.Family(); f.Position() == pos && t.picksNeeded[stage] > 0 {
			t.picksNeeded[stage]--
		}
	}
}

// StartWeek resets the transient waiver state for a new week.
func (t *Team) StartWeek(week int) {
	t.Week = week
	t.PositionsInNeed = nil
	t.goingToAdd = make(map[string]bool)
	t.goingToDrop = make(map[string]bool)
	t.benchQueued = 0
}

// RollWaiverActivity decides whether the team chases upgrades this week.
func (t *Team) RollWaiverActivity(rng *rand.Rand) {
	t.WaiverActive = t.rules.DrawWeeklyActivity(rng) <= t.WaiverActivity
}

// Queue marks an add/drop pair as spoken for this cycle. usesBench is false
// for K/DST streaming moves that replace the starter in place.
func (t *Team) Queue(add, drop *models.Player, usesBench bool) {
	if add != nil {
		t.goingToAdd[add.Name] = true
		if usesBench {
			t.benchQueued++
		}
	}
	if drop != nil {
		t.goingToDrop[drop.Name] = true
		if usesBench {
			t.benchQueued--
		}
	}
}

func (t *Team) IsQueuedAdd(name string) bool {
	return t.goingToAdd[name]
}

func (t *Team) IsQueuedDrop(name string) bool {
	return t.goingToDrop[name]
}

// OpenBenchAfterQueue is the bench room left once queued moves execute.
func (t *Team) OpenBenchAfterQueue() int {
	return t.OpenBench() - t.benchQueued
}

// Settle releases the bench reservation of a queued move once it has run.
func (t *Team) Settle(add, drop *models.Player, usesBench bool) {
	if !usesBench {
		return
	}
	if add != nil && t.goingToAdd[add.Name] {
		t.benchQueued--
	}
	if drop != nil && t.goingToDrop[drop.Name] {
		t.benchQueued++
	}
}

func (t *Team) HasNeed(slot models.Slot) bool {
	for _, s := range t.PositionsInNeed {
		if s == slot {
			return true
		}
	}
	return false
}

func (t *Team) RemoveNeed(slot models.Slot) {
	out := t.PositionsInNeed[:0]
	for _, s := range t.PositionsInNeed {
		if s != slot {
			out = append(out, s)
		}
	}
	t.PositionsInNeed = out
}

// NeedPositions maps the unmet slots to player positions; FLEX contributes
// nothing since it is not a position.
func (t *Team) NeedPositions() models.PositionSet {
	var set models.PositionSet
	for _, s := range t.PositionsInNeed {
		set = set.Add(s.Position())
	}
	return set
}

func (t *Team) Snapshot() []models.RosterRow {
	rows := make([]models.RosterRow, 0, models.NumSlots)
	for s := models.Slot(0); s < models.NumSlots; s++ {
		row := models.RosterRow{Slot: s}
		if p := t.slots[s]; p != nil {
			row.Player = p.Name
			row.ProTeam = p.Team
			row.Position = p.Position
			row.Status = p.Status
			row.Projected = p.Projected
			row.PointsPerGame = p.PointsPerGame
			row.PickNumber = p.PickNumber
		}
		rows = append(rows, row)
	}
	return rows
}
