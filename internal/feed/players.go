package feed

import (
	"fmt"
	"io"

	"github.com/omarshaarawi/leaguesim/internal/models"
)

var playerColumns = []string{"Name", "Team", "ByeWeek", "Position", "PositionRank", "AverageDraftPositionPPR"}

// LoadPlayerPool reads the preseason player table from CSV. Status is
// optional and defaults to active.
func LoadPlayerPool(r io.Reader) ([]models.Player, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return parsePlayers(records)
}

// OpenPlayerPool loads a .csv or .xlsx player table from path.
func OpenPlayerPool(path string) ([]models.Player, error) {
	records, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading player pool %s: %w", path, err)
	}
	players, err := parsePlayers(records)
	if err != nil {
		return nil, fmt.Errorf("loading player pool %s: %w", path, err)
	}
	return players, nil
}

func parsePlayers(records []record) ([]models.Player, error) {
	t, err := newTable(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConfiguration, err)
	}
	if err := t.require(playerColumns...); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConfiguration, err)
	}

	players := make([]models.Player, 0, len(t.rows))
	for _, rec := range t.rows {
		p, err := t.player(rec.cells)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", models.ErrConfiguration, rec.line, err)
		}
		players = append(players, p)
	}
	return players, nil
}

func (t *table) player(row []string) (models.Player, error) {
	pos, err := models.ParsePosition(t.cell(row, "Position"))
	if err != nil {
		return models.Player{}, err
	}
	bye, err := t.integer(row, "ByeWeek")
	if err != nil {
		return models.Player{}, err
	}
	adp, err := t.decimal(row, "AverageDraftPositionPPR")
	if err != nil {
		return models.Player{}, err
	}

	p := models.Player{
		Name:         t.cell(row, "Name"),
		Team:         t.cell(row, "Team"),
		Position:     pos,
		ByeWeek:      bye,
		PositionRank: t.cell(row, "PositionRank"),
		ADP:          adp,
		Status:       models.Status(t.cell(row, "Status")),
	}
	if p.Name == "" {
		return models.Player{}, fmt.Errorf("player name is empty")
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	return p, nil
}
