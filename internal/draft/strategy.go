package draft

import (
	"github.com/omarshaarawi/leaguesim/internal/models"
	"github.com/omarshaarawi/leaguesim/internal/roster"
)

// candidatePositions builds the position set a computer-managed team may
// draft from this round. An empty set means any position.
func (e *Engine) candidatePositions(team *roster.Team, round int, stage models.Stage) models.PositionSet {
	s := team.Strategy
	counts := team.Counts()
	roundsLeft := e.rules.StageEnd(stage) - round + 1
	boxedIn := team.PicksNeeded(stage) == roundsLeft

	if stage >= models.StageEarlyLate {
		if forced := e.rules.RequiredPositions(counts, e.rules.Rounds-round+1); !forced.Empty() {
			return forced
		}
	}

	var need models.PositionSet
	want := func(ok bool, p models.Position) {
		if ok && counts[p] == 0 {
			need = need.Add(p)
		}
	}

	switch stage {
	case models.StageEarly:
		if s.RB == models.HeroRB && round == 1 {
			return models.NewPositionSet(models.RB)
		}
		want(s.QB == models.EarlyRoundQB, models.QB)
		want(s.TE == models.EarlyRoundTE, models.TE)
		if boxedIn {
			return need
		}
		set := need.Add(models.WR).Add(models.RB)
		if s.RB == models.ZeroRB || s.RB == models.HeroRB {
			set = set.Remove(models.RB)
		}
		if s.WR == models.ZeroWR {
			set = set.Remove(models.WR)
		}
		return set

	case models.StageMiddle:
		want(s.QB == models.MidRoundQB, models.QB)
		want(s.TE == models.MidRoundTE, models.TE)
		if boxedIn {
			return need
		}
		set := need.Add(models.WR).Add(models.RB)
		if s.TE == models.EarlyRoundTE {
			set = set.Add(models.TE)
		}
		return set

	case models.StageEarlyLate:
		want(s.QB == models.LateRoundQB, models.QB)
		want(s.TE == models.LateRoundTE, models.TE)
		want(s.K == models.EarlyK, models.K)
		want(s.DST == models.EarlyDST, models.DST)
		if boxedIn {
			return need
		}
		set := need.Add(models.WR).Add(models.RB)
		if s.TE == models.EarlyRoundTE || s.TE == models.MidRoundTE {
			set = set.Add(models.TE)
		}
		return set

	case models.StageMidLate:
		want(s.K == models.MidK, models.K)
		want(s.DST == models.MidDST, models.DST)
		if boxedIn {
			return need
		}
		return need.Add(models.WR).Add(models.RB).Add(models.TE).Add(models.QB)
	}

	return models.NewPositionSet(models.WR, models.RB, models.QB, models.TE)
}
