package models

import "fmt"

type Stage int

const (
	StageEarly Stage = iota
	StageMiddle
	StageEarlyLate
	StageMidLate
	StageLateLate
	NumStages
)

func (s Stage) String() string {
	switch s {
	case StageEarly:
		return "early"
	case StageMiddle:
		return "middle"
	case StageEarlyLate:
		return "earlyLate"
	case StageMidLate:
		return "midLate"
	case StageLateLate:
		return "lateLate"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Family is the position family a draft strategy applies to.
type Family int

const (
	FamilyQB Family = iota
	FamilyRB
	FamilyWR
	FamilyTE
	FamilyK
	FamilyDST
)

var Families = []Family{FamilyQB, FamilyRB, FamilyWR, FamilyTE, FamilyK, FamilyDST}

func (f Family) Position() Position {
	return Positions[f]
}

func (f Family) String() string {
	return string(f.Position())
}

type Strategy string

const (
	EarlyRoundQB Strategy = "EarlyRoundQB"
	MidRoundQB   Strategy = "MidRoundQB"
	LateRoundQB  Strategy = "LateRoundQB"

	ZeroRB Strategy = "ZeroRB"
	HeroRB Strategy = "HeroRB"
	AnyRB  Strategy = "AnyRB"

	ZeroWR Strategy = "ZeroWR"
	AnyWR  Strategy = "AnyWR"

	EarlyRoundTE Strategy = "EarlyRoundTE"
	MidRoundTE   Strategy = "MidRoundTE"
	LateRoundTE  Strategy = "LateRoundTE"

	EarlyK Strategy = "EarlyK"
	MidK   Strategy = "MidK"
	LateK  Strategy = "LateK"

	EarlyDST Strategy = "EarlyDST"
	MidDST   Strategy = "MidDST"
	LateDST  Strategy = "LateDST"
)

var strategyFamilies = map[Strategy]Family{
	EarlyRoundQB: FamilyQB, MidRoundQB: FamilyQB, LateRoundQB: FamilyQB,
	ZeroRB: FamilyRB, HeroRB: FamilyRB, AnyRB: FamilyRB,
	ZeroWR: FamilyWR, AnyWR: FamilyWR,
	EarlyRoundTE: FamilyTE, MidRoundTE: FamilyTE, LateRoundTE: FamilyTE,
	EarlyK: FamilyK, MidK: FamilyK, LateK: FamilyK,
	EarlyDST: FamilyDST, MidDST: FamilyDST, LateDST: FamilyDST,
}

func (s Strategy) Family() (Family, bool) {
	f, ok := strategyFamilies[s]
	return f, ok
}

func (s Strategy) Valid() bool {
	_, ok := strategyFamilies[s]
	return ok
}

// DraftStrategy holds one choice per position family.
type DraftStrategy struct {
	QB  Strategy `yaml:"qb"`
	RB  Strategy `yaml:"rb"`
	WR  Strategy `yaml:"wr"`
	TE  Strategy `yaml:"te"`
	K   Strategy `yaml:"k"`
	DST Strategy `yaml:"dst"`
}

func (d DraftStrategy) All() []Strategy {
	return []Strategy{d.QB, d.RB, d.WR, d.TE, d.K, d.DST}
}

func (d DraftStrategy) Has(s Strategy) bool {
	for _, v := range d.All() {
		if v == s {
			return true
		}
	}
	return false
}

// Set assigns the choice for the strategy's family.
func (d *DraftStrategy) Set(s Strategy) error {
	f, ok := s.Family()
	if !ok {
		return fmt.Errorf("%w: unknown strategy %q", ErrConfiguration, s)
	}
	switch f {
	case FamilyQB:
		d.QB = s
	case FamilyRB:
		d.RB = s
	case FamilyWR:
		d.WR = s
	case FamilyTE:
		d.TE = s
	case FamilyK:
		d.K = s
	case FamilyDST:
		d.DST = s
	}
	return nil
}
