package models

import "strings"

// PositionSet is a small bitset of positions.
type PositionSet uint8

func NewPositionSet(positions ...Position) PositionSet {
	var s PositionSet
	for _, p := range positions {
		s = s.Add(p)
	}
	return s
}

func (s PositionSet) Add(p Position) PositionSet {
	if c := p.Code(); c >= 0 {
		return s | 1<<c
	}
	return s
}

func (s PositionSet) Remove(p Position) PositionSet {
	if c := p.Code(); c >= 0 {
		return s &^ (1 << c)
	}
	return s
}

func (s PositionSet) Has(p Position) bool {
	c := p.Code()
	return c >= 0 && s&(1<<c) != 0
}

func (s PositionSet) Empty() bool {
	return s == 0
}

func (s PositionSet) Len() int {
	n := 0
	for _, p := range Positions {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// Matches reports whether p is in the set; an empty set matches everything.
func (s PositionSet) Matches(p Position) bool {
	return s.Empty() || s.Has(p)
}

func (s PositionSet) Slice() []Position {
	out := make([]Position, 0, len(Positions))
	for _, p := range Positions {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s PositionSet) String() string {
	parts := make([]string, 0, len(Positions))
	for _, p := range s.Slice() {
		parts = append(parts, string(p))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
