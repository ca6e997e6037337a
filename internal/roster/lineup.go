package roster

import (
	"fmt"
	"sort"

	"github.com/omarshaarawi/leaguesim/internal/models"
)

func (t *Team) underCap(pos models.Position) bool {
	return t.counts[pos] < t.rules.MaxPositions[pos]
}

// openSlotFor follows the placement precedence: primary slot, FLEX for
// RB/WR/TE, then the first open bench slot.
func (t *Team) openSlotFor(pos models.Position) (models.Slot, bool) {
	for _, s := range models.PrimarySlots(pos) {
		if t.slots[s] == nil {
			return s, true
		}
	}
	if pos.IsFlex() && t.slots[models.SlotFlex] == nil {
		return models.SlotFlex, true
	}
	return t.openBenchSlot()
}

func (t *Team) openBenchSlot() (models.Slot, bool) {
	for s := models.SlotBE1; s < models.NumSlots; s++ {
		if t.slots[s] == nil {
			return s, true
		}
	}
	return 0, false
}

// CanPlace reports whether a player at pos could be added right now.
func (t *Team) CanPlace(pos models.Position) bool {
	if !pos.Valid() || !t.underCap(pos) {
		return false
	}
	_, ok := t.openSlotFor(pos)
	return ok
}

func (t *Team) put(slot models.Slot, p *models.Player) {
	t.slots[slot] = p
	t.index[p.Name] = slot
}

func (t *Team) checkAdd(p *models.Player) error {
	if p == nil {
		return fmt.Errorf("%w: no player given", models.ErrIllegalAction)
	}
	if t.Has(p.Name) {
		return fmt.Errorf("%w: %s is already on %s", models.ErrIllegalAction, p.Name, t.Name)
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %s has no valid position", models.ErrIllegalAction, p.Name)
	}
	if !t.underCap(p.Position) {
		return fmt.Errorf("%w: %s already rosters %d %s", models.ErrIllegalAction, t.Name, t.counts[p.Position], p.Position)
	}
	return nil
}

// AddPick places a drafted player and stamps the overall pick number.
func (t *Team) AddPick(p *models.Player, pickNumber int) (models.Slot, error) {
	if err := t.checkAdd(p); err != nil {
		return 0, err
	}
	slot, ok := t.openSlotFor(p.Position)
	if !ok {
		return 0, fmt.Errorf("%w: no open slot for %s on %s", models.ErrIllegalAction, p.Name, t.Name)
	}
	p.PickNumber = pickNumber
	t.put(slot, p)
	t.counts[p.Position]++
	return slot, nil
}

func (t *Team) AddToBench(p *models.Player) (models.Slot, error) {
	if err := t.checkAdd(p); err != nil {
		return 0, err
	}
	slot, ok := t.openBenchSlot()
	if !ok {
		return 0, fmt.Errorf("%w: %s has no open bench slot", models.ErrIllegalAction, t.Name)
	}
	t.put(slot, p)
	t.counts[p.Position]++
	return slot, nil
}

func (t *Team) DropPlayer(name string) (*models.Player, error) {
	slot, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not on %s", models.ErrIllegalAction, name, t.Name)
	}
	p := t.slots[slot]
	t.slots[slot] = nil
	delete(t.index, name)
	t.counts[p.Position]--
	return p, nil
}

// ReplaceSlot puts p directly into slot, returning whoever was there.
func (t *Team) ReplaceSlot(slot models.Slot, p *models.Player) (*models.Player, error) {
	if !slot.Valid() || p == nil || !slot.Accepts(p.Position) {
		return nil, fmt.Errorf("%w: cannot place player in %s", models.ErrIllegalAction, slot)
	}
	if t.Has(p.Name) {
		return nil, fmt.Errorf("%w: %s is already on %s", models.ErrIllegalAction, p.Name, t.Name)
	}
	old := t.slots[slot]
	if old != nil {
		delete(t.index, old.Name)
		t.counts[old.Position]--
	}
	if !t.underCap(p.Position) {
		if old != nil {
			t.put(slot, old)
			t.counts[old.Position]++
		}
		return nil, fmt.Errorf("%w: %s already rosters %d %s", models.ErrIllegalAction, t.Name, t.counts[p.Position], p.Position)
	}
	t.put(slot, p)
	t.counts[p.Position]++
	return old, nil
}

var startingPairs = [][2]models.Slot{
	{models.SlotWR1, models.SlotWR2},
	{models.SlotRB1, models.SlotRB2},
}

func swapAllowed(a, b models.Slot, pa, pb *models.Player) bool {
	switch {
	case a.IsBench() != b.IsBench() && pa.Position == pb.Position:
		return true
	case a == models.SlotFlex && pb.Position.IsFlex(), b == models.SlotFlex && pa.Position.IsFlex():
		return true
	}
	for _, pair := range startingPairs {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return true
		}
	}
	return false
}

// SwapPlayers exchanges the occupants of two slots.
func (t *Team) SwapPlayers(a, b models.Slot) error {
	if !a.Valid() || !b.Valid() || a == b {
		return fmt.Errorf("%w: cannot swap %s and %s", models.ErrIllegalAction, a, b)
	}
	pa, pb := t.slots[a], t.slots[b]
	if pa == nil || pb == nil {
		return fmt.Errorf("%w: swap needs two occupied slots, got %s and %s", models.ErrIllegalAction, a, b)
	}
	if !swapAllowed(a, b, pa, pb) || !a.Accepts(pb.Position) || !b.Accepts(pa.Position) {
		return fmt.Errorf("%w: %s (%s) cannot swap with %s (%s)", models.ErrIllegalAction, pa.Name, a, pb.Name, b)
	}
	t.put(a, pb)
	t.put(b, pa)
	return nil
}

// move shifts a player into an empty starting slot.
func (t *Team) move(from, to models.Slot) error {
	p := t.slots[from]
	if p == nil || t.slots[to] != nil || !to.Accepts(p.Position) {
		return fmt.Errorf("%w: cannot move from %s to %s", models.ErrIllegalAction, from, to)
	}
	t.slots[from] = nil
	t.put(to, p)
	return nil
}

// rank orders players best first by the weekly value key, breaking ties by
// draft position and then name so the order does not depend on slot layout.
func (t *Team) rank(players []*models.Player) {
	week := t.Week
	sort.SliceStable(players, func(i, j int) bool {
		vi, vj := t.rules.Value(week, players[i]), t.rules.Value(week, players[j])
		if vi != vj {
			return vi > vj
		}
		if players[i].ADP != players[j].ADP {
			return players[i].ADP < players[j].ADP
		}
		return players[i].Name < players[j].Name
	})
}

// bestLineup picks the ideal occupant for every starting slot from the
// healthy players on the roster.
func (t *Team) bestLineup() map[models.Slot]*models.Player {
	byPos := make(map[models.Position][]*models.Player)
	for _, p := range t.Players() {
		if p.Healthy() {
			byPos[p.Position] = append(byPos[p.Position], p)
		}
	}
	for _, list := range byPos {
		t.rank(list)
	}

	top := make(map[models.Slot]*models.Player, len(models.StartingSlots))
	take := func(slot models.Slot, pos models.Position, i int) {
		if list := byPos[pos]; i < len(list) {
			top[slot] = list[i]
		}
	}
	take(models.SlotQB, models.QB, 0)
	take(models.SlotRB1, models.RB, 0)
	take(models.SlotRB2, models.RB, 1)
	take(models.SlotWR1, models.WR, 0)
	take(models.SlotWR2, models.WR, 1)
	take(models.SlotTE, models.TE, 0)
	take(models.SlotK, models.K, 0)
	take(models.SlotDST, models.DST, 0)

	var flex []*models.Player
	flex = append(flex, tail(byPos[models.WR], 2)...)
	flex = append(flex, tail(byPos[models.RB], 2)...)
	flex = append(flex, tail(byPos[models.TE], 1)...)
	if len(flex) > 0 {
		week := t.Week
		sort.SliceStable(flex, func(i, j int) bool {
			return t.rules.Value(week, flex[i]) > t.rules.Value(week, flex[j])
		})
		top[models.SlotFlex] = flex[0]
	}
	return top
}

func tail(list []*models.Player, from int) []*models.Player {
	if len(list) <= from {
		return nil
	}
	return list[from:]
}

func (t *Team) streamed(slot models.Slot) bool {
	return (slot == models.SlotK && t.StreamK) || (slot == models.SlotDST && t.StreamDST)
}

// UpdateRoster sets the best healthy lineup, records the starting slots it
// could not fill and reports whether the roster is legal.
func (t *Team) UpdateRoster() bool {
	legal, _ := t.updateLineup()
	return legal
}

func (t *Team) updateLineup() (bool, int) {
	top := t.bestLineup()
	t.PositionsInNeed = nil
	moves := 0

	for _, slot := range models.StartingSlots {
		want := top[slot]
		have := t.slots[slot]
		if want != nil && have == want {
			continue
		}
		if want != nil {
			from := t.index[want.Name]
			var err error
			if have != nil {
				err = t.SwapPlayers(slot, from)
			} else {
				err = t.move(from, slot)
			}
			if err == nil {
				moves++
				continue
			}
		}
		if !t.streamed(slot) {
			t.PositionsInNeed = append(t.PositionsInNeed, slot)
		}
	}

	t.Legal = len(t.PositionsInNeed) == 0
	return t.Legal, moves
}
