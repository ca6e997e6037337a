package models

import "fmt"

type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// Positions lists every draftable position in code order.
var Positions = []Position{QB, RB, WR, TE, K, DST}

// Code is the numeric encoding used in board and roster snapshots.
func (p Position) Code() int {
	for i, pos := range Positions {
		if pos == p {
			return i
		}
	}
	return -1
}

func (p Position) Valid() bool {
	return p.Code() >= 0
}

// IsFlex reports whether the position may occupy the FLEX slot.
func (p Position) IsFlex() bool {
	return p == RB || p == WR || p == TE
}

// ParsePosition accepts the labels used by the common projection feeds.
func ParsePosition(s string) (Position, error) {
	switch s {
	case "QB":
		return QB, nil
	case "RB":
		return RB, nil
	case "WR":
		return WR, nil
	case "TE":
		return TE, nil
	case "K", "PK":
		return K, nil
	case "DST", "D/ST", "DEF":
		return DST, nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

type Status string

const (
	StatusActive   Status = "ACT"
	StatusOut      Status = "Out"
	StatusInactive Status = "INA"
)

type Player struct {
	Name          string
	Team          string
	Position      Position
	ByeWeek       int
	PositionRank  string
	ADP           float64
	Status        Status
	PointsPerGame float64
	Projected     float64
	Points        float64
	PickNumber    int
}

func (p *Player) Healthy() bool {
	return p.Status == StatusActive
}

// WeeklyEntry is one row of the weekly performance feed.
type WeeklyEntry struct {
	Name      string
	Week      int
	Status    Status
	Projected float64
	Points    float64
}
