package risk

import (
	"errors"
	"sort"
)

var ErrInsufficientData = errors.New("insufficient data")
var ErrUnknownDisease = errors.New("unknown disease")

type Indicator struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Weight      float64     `json:"weight"`
	Baseline    float64     `json:"baseline"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	Orientation Orientation `json:"orientation"`
}

type ModelConfig struct {
	Disease    Disease
	Indicators []Indicator
	Thresholds Thresholds
}

type Contribution struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	Severity     float64 `json:"severity"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type RiskResult struct {
	Score         float64        `json:"score"`
	Contributions []Contribution `json:"contributions"`
}

// FullContributionModel returns every configured indicator, sorted by
// descending contribution.
type FullContributionModel interface {
	Score(inputs map[string]float64) RiskResult
}

// TopDriverModel returns only the score and at most three relative drivers.
type TopDriverModel interface {
	ScoreDrivers(inputs map[string]float64) DriverResult
}

func Score(inputs map[string]float64, config ModelConfig) RiskResult {
	contributions := make([]Contribution, 0, len(config.Indicators))
	weightedSum := 0.0
	totalWeight := 0.0

	for _, indicator := range config.Indicators {
		severity := 0.0
		if value, ok := inputs[indicator.Key]; ok {
			severity = Normalize(value, indicator.Baseline, indicator.Min, indicator.Max, indicator.Orientation)
		}
		contribution := severity * indicator.Weight

		weightedSum += contribution
		totalWeight += indicator.Weight
		contributions = append(contributions, Contribution{
			Key:          indicator.Key,
			Label:        indicator.Label,
			Severity:     severity,
			Weight:       indicator.Weight,
			Contribution: contribution,
		})
	}

	score := 0.0
	if totalWeight > 0 {
		score = clamp(100*weightedSum/totalWeight, 0, 100)
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Contribution > contributions[j].Contribution
	})

	return RiskResult{Score: score, Contributions: contributions}
}

func (config ModelConfig) Score(inputs map[string]float64) RiskResult {
	return Score(inputs, config)
}

func (config ModelConfig) Classify(score float64) Classification {
	return Classify(score, config.Thresholds)
}

func (config ModelConfig) TotalWeight() float64 {
	total := 0.0
	for _, indicator := range config.Indicators {
		total += indicator.Weight
	}
	return total
}
