package risk

import "sort"

const maxDrivers = 3

type Driver struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

type DriverResult struct {
	Score   float64  `json:"score"`
	Drivers []Driver `json:"drivers"`
}

// ScoreDrivers keeps a running weighted average over the configured
// indicators and reports up to three drivers, in table order, as a percentage
// of the strongest one.
func ScoreDrivers(inputs map[string]float64, config ModelConfig) DriverResult {
	type candidate struct {
		index        int
		indicator    Indicator
		contribution float64
	}

	average := 0.0
	weightSoFar := 0.0
	candidates := make([]candidate, 0, len(config.Indicators))
	for index, indicator := range config.Indicators {
		if indicator.Weight <= 0 {
			continue
		}
		severity := 0.0
		if value, ok := inputs[indicator.Key]; ok {
			severity = Normalize(value, indicator.Baseline, indicator.Min, indicator.Max, indicator.Orientation)
		}
		weightSoFar += indicator.Weight
		average += (severity - average) * indicator.Weight / weightSoFar

		contribution := severity * indicator.Weight
		if contribution > 0 {
			candidates = append(candidates, candidate{index: index, indicator: indicator, contribution: contribution})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].contribution > candidates[j].contribution
	})
	if len(candidates) > maxDrivers {
		candidates = candidates[:maxDrivers]
	}

	maxContribution := 0.0
	for _, entry := range candidates {
		if entry.contribution > maxContribution {
			maxContribution = entry.contribution
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	drivers := make([]Driver, 0, len(candidates))
	for _, entry := range candidates {
		drivers = append(drivers, Driver{
			Key:     entry.indicator.Key,
			Label:   entry.indicator.Label,
			Percent: roundTo(entry.contribution/maxContribution*100, 1),
		})
	}

	return DriverResult{
		Score:   clamp(average*100, 0, 100),
		Drivers: drivers,
	}
}

func (config ModelConfig) ScoreDrivers(inputs map[string]float64) DriverResult {
	return ScoreDrivers(inputs, config)
}
