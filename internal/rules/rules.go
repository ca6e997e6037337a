package rules

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"

	"github.com/omarshaarawi/leaguesim/internal/models"
	"gopkg.in/yaml.v3"
)

// Thresholds are the last round of each draft stage; later rounds are lateLate.
type Thresholds struct {
	Early     int `yaml:"early"`
	Middle    int `yaml:"middle"`
	EarlyLate int `yaml:"early_late"`
	MidLate   int `yaml:"mid_late"`
}

type Weighted struct {
	Strategy models.Strategy `yaml:"strategy"`
	Weight   float64         `yaml:"weight"`
}

type Blend struct {
	PPG       float64 `yaml:"ppg"`
	Projected float64 `yaml:"projected"`
}

// Beta parameters must be positive integers so the draw can use order statistics.
type Beta struct {
	Alpha int `yaml:"alpha"`
	Beta  int `yaml:"beta"`
}

type Normal struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// Rules is the league rule set. It is passed by value into every engine and
// never mutated after Validate.
type Rules struct {
	Rounds            int                            `yaml:"rounds"`
	Stages            Thresholds                     `yaml:"stages"`
	MaxPositions      map[models.Position]int        `yaml:"max_positions"`
	MinPositions      map[models.Position]int        `yaml:"required_positions"`
	Strategies        map[models.Position][]Weighted `yaml:"strategies"`
	StageStrategies   map[string][]models.Strategy   `yaml:"stage_strategies"`
	PlayoffStartWeek  int                            `yaml:"playoff_start_week"`
	ProjectionWeeks   int                            `yaml:"projection_only_weeks"`
	WaiverOpenWeek    int                            `yaml:"waiver_open_week"`
	LatePickThreshold int                            `yaml:"late_pick_threshold"`
	PPGWindow         int                            `yaml:"ppg_window"`
	DropBlend         Blend                          `yaml:"drop_blend"`
	WaiverActivity    Beta                           `yaml:"waiver_activity"`
	WeeklyActivity    Normal                         `yaml:"weekly_activity"`
	MaxWaiverPasses   int                            `yaml:"max_waiver_passes"`
	DropPriority      []models.Position              `yaml:"drop_priority"`

	stageOf map[models.Strategy]models.Stage
}

func Default() Rules {
	r := Rules{
		Rounds: 16,
		Stages: Thresholds{Early: 4, Middle: 8, EarlyLate: 12, MidLate: 14},
		MaxPositions: map[models.Position]int{
			models.QB: 3, models.RB: 5, models.WR: 5, models.TE: 3, models.DST: 2, models.K: 2,
		},
		MinPositions: map[models.Position]int{
			models.QB: 1, models.RB: 3, models.WR: 3, models.TE: 2, models.DST: 1, models.K: 1,
		},
		Strategies: map[models.Position][]Weighted{
			models.QB:  {{models.EarlyRoundQB, .3}, {models.MidRoundQB, .6}, {models.LateRoundQB, .1}},
			models.TE:  {{models.EarlyRoundTE, .2}, {models.MidRoundTE, .75}, {models.LateRoundTE, .05}},
			models.RB:  {{models.ZeroRB, .25}, {models.HeroRB, .25}, {models.AnyRB, .5}},
			models.WR:  {{models.ZeroWR, .05}, {models.AnyWR, .95}},
			models.K:   {{models.EarlyK, .1}, {models.MidK, .5}, {models.LateK, .4}},
			models.DST: {{models.EarlyDST, .2}, {models.MidDST, .4}, {models.LateDST, .4}},
		},
		StageStrategies: map[string][]models.Strategy{
			models.StageEarly.String():     {models.HeroRB, models.EarlyRoundQB, models.EarlyRoundTE},
			models.StageMiddle.String():    {models.MidRoundQB, models.MidRoundTE},
			models.StageEarlyLate.String(): {models.LateRoundQB, models.LateRoundTE, models.EarlyK, models.EarlyDST},
			models.StageMidLate.String():   {models.MidK, models.MidDST},
			models.StageLateLate.String():  {models.LateK, models.LateDST},
		},
		PlayoffStartWeek:  14,
		ProjectionWeeks:   4,
		WaiverOpenWeek:    3,
		LatePickThreshold: 45,
		PPGWindow:         3,
		DropBlend:         Blend{PPG: 0.7, Projected: 0.3},
		WaiverActivity:    Beta{Alpha: 2, Beta: 6},
		WeeklyActivity:    Normal{Mean: 0.26, StdDev: 0.18},
		MaxWaiverPasses:   10,
		DropPriority:      []models.Position{models.DST, models.K, models.TE, models.WR, models.RB, models.QB},
	}
	r.index()
	return r
}

// Load overlays the YAML file at path on top of Default.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Rules, error) {
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("%w: parsing rules: %v", models.ErrConfiguration, err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

func (r *Rules) index() {
	r.stageOf = make(map[models.Strategy]models.Stage)
	for stage := models.StageEarly; stage < models.NumStages; stage++ {
		for _, s := range r.StageStrategies[stage.String()] {
			r.stageOf[s] = stage
		}
	}
}

func (r *Rules) Validate() error {
	if r.Rounds != int(models.NumSlots) {
		return fmt.Errorf("%w: %d rounds cannot fill %d roster slots", models.ErrConfiguration, r.Rounds, models.NumSlots)
	}
	t := r.Stages
	if !(0 < t.Early && t.Early < t.Middle && t.Middle < t.EarlyLate && t.EarlyLate < t.MidLate && t.MidLate < r.Rounds) {
		return fmt.Errorf("%w: stage thresholds must be increasing and below %d", models.ErrConfiguration, r.Rounds)
	}
	for _, p := range models.Positions {
		if r.MinPositions[p] > r.MaxPositions[p] {
			return fmt.Errorf("%w: %s requires more than its cap", models.ErrConfiguration, p)
		}
		choices := r.Strategies[p]
		if len(choices) == 0 {
			return fmt.Errorf("%w: no strategies for %s", models.ErrConfiguration, p)
		}
		var total float64
		for _, c := range choices {
			f, ok := c.Strategy.Family()
			if !ok || f.Position() != p {
				return fmt.Errorf("%w: strategy %q does not belong to %s", models.ErrConfiguration, c.Strategy, p)
			}
			if c.Weight < 0 {
				return fmt.Errorf("%w: negative weight for %s", models.ErrConfiguration, c.Strategy)
			}
			total += c.Weight
		}
		if math.Abs(total-1) > 1e-9 {
			return fmt.Errorf("%w: %s strategy weights sum to %.3f", models.ErrConfiguration, p, total)
		}
	}
	for name, list := range r.StageStrategies {
		if !validStage(name) {
			return fmt.Errorf("%w: unknown draft stage %q", models.ErrConfiguration, name)
		}
		for _, s := range list {
			if !s.Valid() {
				return fmt.Errorf("%w: unknown strategy %q", models.ErrConfiguration, s)
			}
		}
	}
	if r.PlayoffStartWeek < 2 || r.PPGWindow < 1 || r.MaxWaiverPasses < 1 {
		return fmt.Errorf("%w: season parameters out of range", models.ErrConfiguration)
	}
	if r.WaiverActivity.Alpha < 1 || r.WaiverActivity.Beta < 1 {
		return fmt.Errorf("%w: waiver activity parameters must be positive integers", models.ErrConfiguration)
	}
	if len(r.DropPriority) != len(models.Positions) {
		return fmt.Errorf("%w: drop priority must rank every position", models.ErrConfiguration)
	}
	r.index()
	return nil
}

func validStage(name string) bool {
	for stage := models.StageEarly; stage < models.NumStages; stage++ {
		if stage.String() == name {
			return true
		}
	}
	return false
}

// StageOf maps a 1-based draft round to its stage.
func (r Rules) StageOf(round int) models.Stage {
	switch {
	case round <= r.Stages.Early:
		return models.StageEarly
	case round <= r.Stages.Middle:
		return models.StageMiddle
	case round <= r.Stages.EarlyLate:
		return models.StageEarlyLate
	case round <= r.Stages.MidLate:
		return models.StageMidLate
	}
	return models.StageLateLate
}

// StageEnd is the last round of a stage.
func (r Rules) StageEnd(stage models.Stage) int {
	switch stage {
	case models.StageEarly:
		return r.Stages.Early
	case models.StageMiddle:
		return r.Stages.Middle
	case models.StageEarlyLate:
		return r.Stages.EarlyLate
	case models.StageMidLate:
		return r.Stages.MidLate
	}
	return r.Rounds
}

// StrategyStage is the stage in which a strategy demands its pick.
func (r Rules) StrategyStage(s models.Strategy) (models.Stage, bool) {
	stage, ok := r.stageOf[s]
	return stage, ok
}

// RequiredPositions returns the positions still short of their minimum when
// the total shortfall leaves no spare rounds; otherwise the empty set.
func (r Rules) RequiredPositions(counts map[models.Position]int, remaining int) models.PositionSet {
	var set models.PositionSet
	needed := 0
	for _, p := range models.Positions {
		if short := r.MinPositions[p] - counts[p]; short > 0 {
			needed += short
			set = set.Add(p)
		}
	}
	if needed >= remaining {
		return set
	}
	return 0
}

// Value is the key lineups and the waiver pool are ranked by.
func (r Rules) Value(week int, p *models.Player) float64 {
	if week < r.ProjectionWeeks || p.Projected != 0 {
		return p.Projected
	}
	return p.PointsPerGame
}

// DropValue ranks cut candidates; lower is cut first.
func (r Rules) DropValue(week int, p *models.Player) float64 {
	if week < r.ProjectionWeeks {
		return -p.ADP
	}
	if p.Projected == 0 {
		return p.PointsPerGame
	}
	return r.DropBlend.PPG*p.PointsPerGame + r.DropBlend.Projected*p.Projected
}

// DrawStrategy picks one weighted strategy per family.
func (r Rules) DrawStrategy(rng *rand.Rand) (models.DraftStrategy, error) {
	var d models.DraftStrategy
	for _, p := range models.Positions {
		choices := r.Strategies[p]
		if len(choices) == 0 {
			return d, fmt.Errorf("%w: no strategies for %s", models.ErrConfiguration, p)
		}
		x := rng.Float64()
		pick := choices[len(choices)-1].Strategy
		var acc float64
		for _, c := range choices {
			acc += c.Weight
			if x < acc {
				pick = c.Strategy
				break
			}
		}
		if err := d.Set(pick); err != nil {
			return d, err
		}
	}
	return d, nil
}

// DrawWaiverActivity samples Beta(alpha, beta) as the alpha-th smallest of
// alpha+beta-1 uniforms.
func (r Rules) DrawWaiverActivity(rng *rand.Rand) float64 {
	n := r.WaiverActivity.Alpha + r.WaiverActivity.Beta - 1
	u := make([]float64, n)
	for i := range u {
		u[i] = rng.Float64()
	}
	sort.Float64s(u)
	return u[r.WaiverActivity.Alpha-1]
}

func (r Rules) DrawWeeklyActivity(rng *rand.Rand) float64 {
	return rng.NormFloat64()*r.WeeklyActivity.StdDev + r.WeeklyActivity.Mean
}

// DropRank orders positions for the over-represented bench fallback; lower wins.
func (r Rules) DropRank(p models.Position) int {
	for i, q := range r.DropPriority {
		if q == p {
			return i
		}
	}
	return len(r.DropPriority)
}
