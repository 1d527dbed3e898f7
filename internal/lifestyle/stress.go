package lifestyle

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
)

const stressLookbackDays = 7

type WeeklyStress struct {
	Week       string  `json:"week"`
	MeanStress float64 `json:"mean_stress"`
	FlareCount int     `json:"flare_count"`
}

type StressCorrelation struct {
	Correlation          float64        `json:"correlation"`
	AverageDaysToFlare   float64        `json:"average_days_to_flare"`
	HighStressFlareCount int            `json:"high_stress_flare_count"`
	MeanStress           float64        `json:"mean_stress"`
	Weeks                []WeeklyStress `json:"weeks"`
	Insufficient         bool           `json:"insufficient_data"`
	Message              string         `json:"message"`
}

func isoWeekKey(value time.Time) string {
	year, week := value.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// AnalyzeStress correlates weekly mean stress with weekly flare counts and
// measures how many days before a flare stress first rose above the overall
// mean.
func AnalyzeStress(flares []FlareRecord, stress []StressRecord) StressCorrelation {
	if len(flares) == 0 || len(stress) == 0 {
		return StressCorrelation{
			Weeks:        []WeeklyStress{},
			Insufficient: true,
			Message:      insufficientDataMessage,
		}
	}

	levels := lo.Map(stress, func(record StressRecord, _ int) float64 { return record.Level })
	globalMean := mean(levels)

	levelsByWeek := lo.GroupBy(stress, func(record StressRecord) string { return isoWeekKey(record.Date) })
	flaresByWeek := lo.CountValuesBy(flares, func(record FlareRecord) string { return isoWeekKey(record.Date) })

	weekKeys := lo.Keys(levelsByWeek)
	sort.Strings(weekKeys)

	weeks := make([]WeeklyStress, 0, len(weekKeys))
	meanSeries := make([]float64, 0, len(weekKeys))
	flareSeries := make([]float64, 0, len(weekKeys))
	highStressFlareCount := 0
	for _, key := range weekKeys {
		weekMean := mean(lo.Map(levelsByWeek[key], func(record StressRecord, _ int) float64 { return record.Level }))
		flareCount := flaresByWeek[key]

		weeks = append(weeks, WeeklyStress{Week: key, MeanStress: roundTo(weekMean, 2), FlareCount: flareCount})
		meanSeries = append(meanSeries, weekMean)
		flareSeries = append(flareSeries, float64(flareCount))
		if weekMean > globalMean {
			highStressFlareCount += flareCount
		}
	}

	maxLevelByDay := make(map[string]float64, len(stress))
	for _, record := range stress {
		key := dayKey(record.Date)
		if current, ok := maxLevelByDay[key]; !ok || record.Level > current {
			maxLevelByDay[key] = record.Level
		}
	}

	lags := make([]float64, 0, len(flares))
	for _, flare := range flares {
		for lag, key := range daysBefore(flare.Date, stressLookbackDays) {
			if level, ok := maxLevelByDay[key]; ok && level > globalMean {
				lags = append(lags, float64(lag+1))
				break
			}
		}
	}

	correlation := roundTo(Pearson(meanSeries, flareSeries), 2)
	averageLag := roundTo(mean(lags), 1)

	return StressCorrelation{
		Correlation:          correlation,
		AverageDaysToFlare:   averageLag,
		HighStressFlareCount: highStressFlareCount,
		MeanStress:           roundTo(globalMean, 2),
		Weeks:                weeks,
		Message:              stressMessage(correlation, averageLag, len(lags)),
	}
}

func stressMessage(correlation float64, averageLag float64, matchedFlares int) string {
	message := fmt.Sprintf("There is a %s link between your weekly stress and flares (r = %.2f).", describeCorrelation(correlation), correlation)
	if matchedFlares > 0 {
		message += fmt.Sprintf(" Stress tends to rise about %.1f days before a flare.", averageLag)
	}
	return message
}
