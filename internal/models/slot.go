package models

import "fmt"

type Slot int

const (
	SlotQB Slot = iota
	SlotRB1
	SlotRB2
	SlotWR1
	SlotWR2
	SlotTE
	SlotFlex
	SlotK
	SlotDST
	SlotBE1
	SlotBE2
	SlotBE3
	SlotBE4
	SlotBE5
	SlotBE6
	SlotBE7
	NumSlots
)

// StartingSlots are the slots whose occupants score.
var StartingSlots = []Slot{SlotQB, SlotRB1, SlotRB2, SlotWR1, SlotWR2, SlotTE, SlotFlex, SlotK, SlotDST}

var slotNames = [NumSlots]string{
	"QB", "RB1", "RB2", "WR1", "WR2", "TE", "FLEX", "K", "DST",
	"BE1", "BE2", "BE3", "BE4", "BE5", "BE6", "BE7",
}

func (s Slot) String() string {
	if s < 0 || s >= NumSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", name)
}

func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

func (s Slot) IsBench() bool {
	return s >= SlotBE1 && s < NumSlots
}

func (s Slot) IsStarting() bool {
	return s >= SlotQB && s <= SlotDST
}

// Position is the position a starting slot is filled from. FLEX and bench
// slots report an empty position.
func (s Slot) Position() Position {
	switch s {
	case SlotQB:
		return QB
	case SlotRB1, SlotRB2:
		return RB
	case SlotWR1, SlotWR2:
		return WR
	case SlotTE:
		return TE
	case SlotK:
		return K
	case SlotDST:
		return DST
	}
	return ""
}

// Accepts reports whether a player at position p may occupy the slot.
func (s Slot) Accepts(p Position) bool {
	switch {
	case s.IsBench():
		return p.Valid()
	case s == SlotFlex:
		return p.IsFlex()
	default:
		return s.Position() == p
	}
}

// PrimarySlots returns the dedicated starting slots for a position in fill order.
func PrimarySlots(p Position) []Slot {
	switch p {
	case QB:
		return []Slot{SlotQB}
	case RB:
		return []Slot{SlotRB1, SlotRB2}
	case WR:
		return []Slot{SlotWR1, SlotWR2}
	case TE:
		return []Slot{SlotTE}
	case K:
		return []Slot{SlotK}
	case DST:
		return []Slot{SlotDST}
	}
	return nil
}
