package season

import "github.com/omarshaarawi/leaguesim/internal/models"

type game struct {
	high string
	low  string
}

// bracket is a four or six team single elimination bracket with a two week
// final. Place p of the bracket maps to rankOf(p) in the league table.
type bracket struct {
	name   string
	seeds  []string
	start  int
	rankOf func(place int) int

	semis    []string
	final    game
	finalPts map[string]float64
	third    game
	fifth    game
	places   map[string]int
}

func newBracket(name string, seeds []string, start int, rankOf func(int) int) *bracket {
	return &bracket{
		name:     name,
		seeds:    seeds,
		start:    start,
		rankOf:   rankOf,
		finalPts: make(map[string]float64),
		places:   make(map[string]int),
	}
}

// decide returns the winner and loser of g; the higher seed needs a strictly
// higher score.
func decide(g game, score func(string) float64) (string, string, models.Matchup) {
	hs, ls := score(g.high), score(g.low)
	m := models.Matchup{HomeTeam: g.high, AwayTeam: g.low, HomeScore: hs, AwayScore: ls}
	if hs > ls {
		return g.high, g.low, m
	}
	return g.low, g.high, m
}

func (b *bracket) place(winner, loser string, place int) {
	b.places[winner] = place
	b.places[loser] = place + 1
}

func (b *bracket) seed(i int) string {
	return b.seeds[i-1]
}

// play runs the bracket's games for week and returns them.
func (b *bracket) play(week int, score func(string) float64) []models.Matchup {
	stage := week - b.start
	if len(b.seeds) == 4 {
		return b.playFour(stage, week, score)
	}
	return b.playSix(stage, week, score)
}

func (b *bracket) playFour(stage, week int, score func(string) float64) []models.Matchup {
	var out []models.Matchup
	switch stage {
	case 0:
		w1, l1, m1 := decide(game{b.seed(1), b.seed(4)}, score)
		w2, l2, m2 := decide(game{b.seed(2), b.seed(3)}, score)
		b.final = game{w1, w2}
		b.third = game{l1, l2}
		out = append(out, m1, m2)
	case 1:
		w, l, m := decide(b.third, score)
		b.place(w, l, 3)
		out = append(out, m, b.finalLeg(score))
	case 2:
		out = append(out, b.finish(score))
	}
	return b.stamp(week, out)
}

func (b *bracket) playSix(stage, week int, score func(string) float64) []models.Matchup {
	var out []models.Matchup
	switch stage {
	case 0:
		w36, l36, m1 := decide(game{b.seed(3), b.seed(6)}, score)
		w45, l45, m2 := decide(game{b.seed(4), b.seed(5)}, score)
		b.semis = []string{w36, w45}
		b.fifth = game{l36, l45}
		out = append(out, m1, m2)
	case 1:
		w1, l1, m1 := decide(game{b.seed(1), b.semis[1]}, score)
		w2, l2, m2 := decide(game{b.seed(2), b.semis[0]}, score)
		w5, l5, m5 := decide(b.fifth, score)
		b.place(w5, l5, 5)
		b.final = game{w1, w2}
		b.third = game{l1, l2}
		out = append(out, m1, m2, m5)
	case 2:
		w, l, m := decide(b.third, score)
		b.place(w, l, 3)
		out = append(out, m, b.finalLeg(score))
	case 3:
		out = append(out, b.finish(score))
	}
	return b.stamp(week, out)
}

func (b *bracket) finalLeg(score func(string) float64) models.Matchup {
	hs, ls := score(b.final.high), score(b.final.low)
	b.finalPts[b.final.high] = hs
	b.finalPts[b.final.low] = ls
	return models.Matchup{HomeTeam: b.final.high, AwayTeam: b.final.low, HomeScore: hs, AwayScore: ls}
}

func (b *bracket) finish(score func(string) float64) models.Matchup {
	total := func(team string) float64 {
		return b.finalPts[team] + score(team)
	}
	w, l, m := decide(b.final, total)
	b.place(w, l, 1)
	return m
}

func (b *bracket) stamp(week int, ms []models.Matchup) []models.Matchup {
	for i := range ms {
		ms[i].Week = week
	}
	return ms
}

// bracketWeeks is how many weeks a bracket of size teams takes to finish.
func bracketWeeks(teams int) int {
	if teams == 4 {
		return 3
	}
	return 4
}

// lastWeek is the week the bracket's final concludes.
func (b *bracket) lastWeek() int {
	return b.start + bracketWeeks(len(b.seeds)) - 1
}

// sixTeamToiletRank maps six team toilet bowl places to league ranks in a
// league of n teams. Each placement game's winner takes the better rank of
// its pair: the final goes n-1 and n, third place n-3 and n-2, fifth place
// n-5 and n-4.
func sixTeamToiletRank(n int) func(int) int {
	return func(place int) int {
		if place%2 == 1 {
			return n - place
		}
		return n + 2 - place
	}
}

// ranks returns the league rank of every placed team.
func (b *bracket) ranks() map[string]int {
	out := make(map[string]int, len(b.places))
	for team, p := range b.places {
		out[team] = b.rankOf(p)
	}
	return out
}
