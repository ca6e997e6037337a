package season

import (
	"fmt"

	"github.com/omarshaarawi/leaguesim/internal/models"
)

type Pairing struct {
	Home string
	Away string
}

// shape is the season layout for a league size.
type shape struct {
	weeks   int
	playoff int
	toilet  int
}

func leagueShape(teams int) (shape, error) {
	switch teams {
	case 8:
		return shape{weeks: 16, playoff: 4, toilet: 4}, nil
	case 10:
		return shape{weeks: 17, playoff: 6, toilet: 4}, nil
	case 12:
		return shape{weeks: 17, playoff: 6, toilet: 6}, nil
	}
	if teams%2 != 0 {
		return shape{}, fmt.Errorf("%w: round robin needs an even team count, got %d", models.ErrConfiguration, teams)
	}
	return shape{}, fmt.Errorf("%w: unsupported league size %d", models.ErrConfiguration, teams)
}

// ValidateLeagueSize reports whether teams is a league size with a season
// layout.
func ValidateLeagueSize(teams int) error {
	_, err := leagueShape(teams)
	return err
}

// roundRobin returns n-1 rounds in which every team meets every other once.
// The first team stays fixed while the rest rotate one place per round.
func roundRobin(names []string) [][]Pairing {
	n := len(names)
	rot := make([]string, n)
	copy(rot, names)

	rounds := make([][]Pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([]Pairing, 0, n/2)
		for j := 0; j < n/2; j++ {
			pairs = append(pairs, Pairing{Home: rot[j], Away: rot[n-1-j]})
		}
		rounds = append(rounds, pairs)

		last := rot[n-1]
		copy(rot[2:], rot[1:n-1])
		rot[1] = last
	}
	return rounds
}

// buildSchedule cycles the round robin through the regular season weeks.
func buildSchedule(names []string, playoffStart int) map[int][]Pairing {
	rounds := roundRobin(names)
	schedule := make(map[int][]Pairing, playoffStart-1)
	for week := 1; week < playoffStart; week++ {
		schedule[week] = rounds[(week-1)%len(rounds)]
	}
	return schedule
}
