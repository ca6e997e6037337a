package waiver

import (
	"fmt"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/roster"
)

var offenseSlots = []models.Slot{models.SlotQB, models.SlotRB1, models.SlotWR1, models.SlotTE}

// DetermineDrop picks the bench player to cut. It returns nil with no error
// when the bench still has room after queued moves, and
// ErrNoEligibleCandidate when a cut is needed but nobody qualifies. Only
// waiver pickups and late picks are considered. An empty pos means any.
func (m *Market) DetermineDrop(team *roster.Team, pos models.Position) (*models.Player, error) {
	if team.OpenBenchAfterQueue() > 0 {
		return nil, nil
	}

	var pickups, late []*models.Player
	for _, p := range team.Bench() {
		if team.IsQueuedDrop(p.Name) {
			continue
		}
		switch {
		case p.PickNumber == 0:
			pickups = append(pickups, p)
		case p.PickNumber > m.rules.LatePickThreshold:
			late = append(late, p)
		}
	}
	cands := append(pickups, late...)

	if pos != "" {
		same := filterPosition(cands, pos)
		if len(same) == 0 && len(cands) > 0 {
			same = filterPosition(cands, m.crowdedPosition(cands))
		}
		cands = same
	}

	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: %s has no droppable bench player", models.ErrNoEligibleCandidate, team.Name)
	}
	rank(cands, m.dropValue, false)
	return cands[0], nil
}

// crowdedPosition is the most common bench position, ties broken by the
// configured drop priority.
func (m *Market) crowdedPosition(players []*models.Player) models.Position {
	counts := make(map[models.Position]int)
	for _, p := range players {
		counts[p.Position]++
	}
	var best models.Position
	for _, p := range m.rules.DropPriority {
		if counts[p] > counts[best] {
			best = p
		}
	}
	return best
}

func filterPosition(players []*models.Player, pos models.Position) []*models.Player {
	var out []*models.Player
	for _, p := range players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

// DetermineAdd returns the best free agent at pos that the team has not
// already queued. K, DST and positions the team is short at only consider
// healthy players.
func (m *Market) DetermineAdd(team *roster.Team, pos models.Position) (*models.Player, error) {
	healthyOnly := pos == models.K || pos == models.DST || team.NeedPositions().Has(pos)

	var cands []*models.Player
	for _, p := range m.players {
		if p.Position != pos || team.IsQueuedAdd(p.Name) {
			continue
		}
		if healthyOnly && !p.Healthy() {
			continue
		}
		cands = append(cands, p)
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: no free agent at %s for %s", models.ErrNoEligibleCandidate, pos, team.Name)
	}
	rank(cands, m.value, true)
	return cands[0], nil
}

// ShouldAddDrop decides whether a transaction for slot is worth making.
func (m *Market) ShouldAddDrop(team *roster.Team, slot models.Slot) (Move, bool) {
	streamSlot := slot == models.SlotK || slot == models.SlotDST
	if m.week < m.rules.WaiverOpenWeek && !streamSlot && team.Legal {
		return Move{}, false
	}
	if slot == models.SlotFlex {
		return m.flexMove(team)
	}

	pos := slot.Position()
	add, err := m.DetermineAdd(team, pos)
	if err != nil {
		return Move{}, false
	}
	if (pos == models.K && team.StreamK) || (pos == models.DST && team.StreamDST) {
		return Move{Slot: slot, Add: add, Stream: true}, true
	}

	var drop *models.Player
	if team.WaiverActive {
		drop, err = m.DetermineDrop(team, pos)
	} else {
		drop, err = m.DetermineDrop(team, "")
	}
	if err != nil {
		return Move{}, false
	}
	if drop == nil {
		return Move{Slot: slot, Add: add}, true
	}
	if m.value(add) > m.value(drop) || (!team.Legal && team.NeedPositions().Has(pos)) {
		return Move{Slot: slot, Drop: drop, Add: add}, true
	}
	return Move{}, false
}

func (m *Market) flexMove(team *roster.Team) (Move, bool) {
	var adds []*models.Player
	for _, pos := range []models.Position{models.RB, models.WR, models.TE} {
		if p, err := m.DetermineAdd(team, pos); err == nil {
			adds = append(adds, p)
		}
	}
	if len(adds) == 0 {
		return Move{}, false
	}
	drop, err := m.DetermineDrop(team, "")
	if err != nil {
		return Move{}, false
	}

	rank(adds, m.value, true)
	best := adds[0]
	if drop == nil {
		return Move{Slot: models.SlotFlex, Add: best}, true
	}
	if m.value(best) > m.value(drop) || (!team.Legal && team.HasNeed(models.SlotFlex)) {
		return Move{Slot: models.SlotFlex, Drop: drop, Add: best}, true
	}
	return Move{}, false
}

// DetermineSwaps runs one waiver cycle for team: unmet needs first, then
// upgrades when the team is active on waivers, then K and DST streams.
func (m *Market) DetermineSwaps(team *roster.Team) []Move {
	var moves []Move
	try := func(slot models.Slot) bool {
		mv, ok := m.ShouldAddDrop(team, slot)
		if !ok {
			return false
		}
		moves = append(moves, mv)
		team.Queue(mv.Add, mv.Drop, !mv.Stream)
		return true
	}

	if !team.Legal {
		needs := append([]models.Slot(nil), team.PositionsInNeed...)
		for _, slot := range needs {
			if try(slot) {
				team.RemoveNeed(slot)
			}
		}
	}
	if team.WaiverActive {
		for _, slot := range offenseSlots {
			try(slot)
		}
	}
	if team.StreamK {
		try(models.SlotK)
	}
	if team.StreamDST {
		try(models.SlotDST)
	}
	return moves
}

// AddDrop executes one move. Everything is validated before the roster or
// pool changes, so a failed move leaves both untouched.
func (m *Market) AddDrop(team *roster.Team, mv Move) error {
	if mv.Add == nil {
		return nil
	}
	defer team.Settle(mv.Add, mv.Drop, !mv.Stream)

	add := mv.Add
	if !m.Contains(add.Name) {
		return fmt.Errorf("%w: %s is not a free agent", models.ErrIllegalAction, add.Name)
	}
	if mv.Drop != nil && !team.Has(mv.Drop.Name) {
		return fmt.Errorf("%w: %s is not on %s", models.ErrIllegalAction, mv.Drop.Name, team.Name)
	}

	if add.Position == models.K || add.Position == models.DST {
		slot := models.PrimarySlots(add.Position)[0]
		current := -1.0
		if p := team.Get(slot); p != nil {
			current = p.Projected
		}
		if add.Projected <= current {
			return nil
		}
		if mv.Stream {
			old, err := team.ReplaceSlot(slot, add)
			if err != nil {
				return err
			}
			m.claim(add)
			if old != nil {
				m.put(old)
			}
			m.Sort()
			m.logger.Debug("Streamed starter", "team", team.Name, "slot", slot.String(), "add", add.Name)
			return nil
		}
	}

	room := team.OpenBench()
	count := team.Count(add.Position)
	if mv.Drop != nil {
		if s, _ := team.SlotOf(mv.Drop.Name); s.IsBench() {
			room++
		}
		if mv.Drop.Position == add.Position {
			count--
		}
	}
	if room == 0 {
		return fmt.Errorf("%w: no bench room on %s for %s", models.ErrIllegalAction, team.Name, add.Name)
	}
	if count >= m.rules.MaxPositions[add.Position] {
		return fmt.Errorf("%w: %s is full at %s", models.ErrIllegalAction, team.Name, add.Position)
	}

	if mv.Drop != nil {
		dropped, err := team.DropPlayer(mv.Drop.Name)
		if err != nil {
			return err
		}
		m.put(dropped)
	}
	if _, err := team.AddToBench(add); err != nil {
		return err
	}
	m.claim(add)
	m.Sort()
	m.logger.Debug("Waiver move", "team", team.Name, "add", add.Name, "drop", nameOf(mv.Drop))
	return nil
}

func (m *Market) claim(p *models.Player) {
	p.PickNumber = 0
	m.remove(p.Name)
}

func nameOf(p *models.Player) string {
	if p == nil {
		return ""
	}
	return p.Name
}
