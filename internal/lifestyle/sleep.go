package lifestyle

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

const (
	sleepLookbackDays     = 3
	minRecommendedSleep   = 7.5
	recommendedSleepExtra = 0.5
)

type SleepCorrelation struct {
	Correlation          float64 `json:"correlation"`
	AverageHours         float64 `json:"average_hours"`
	PreFlareAverageHours float64 `json:"pre_flare_average_hours"`
	RecommendedHours     float64 `json:"recommended_hours"`
	PreFlareSamples      int     `json:"pre_flare_samples"`
	Insufficient         bool    `json:"insufficient_data"`
	Message              string  `json:"message"`
}

// RecommendedSleepHours is the larger of 7.5 hours and half an hour above the
// average logged sleep.
func RecommendedSleepHours(sleep []SleepRecord) float64 {
	if len(sleep) == 0 {
		return minRecommendedSleep
	}
	average := mean(lo.Map(sleep, func(record SleepRecord, _ int) float64 { return record.Hours }))
	return math.Max(minRecommendedSleep, average+recommendedSleepExtra)
}

// AnalyzeSleep correlates sleep duration in the three days before each flare
// with a flare indicator. Only pre-flare samples are collected, so every
// indicator is 1 and the coefficient stays 0 until negative samples exist.
func AnalyzeSleep(flares []FlareRecord, sleep []SleepRecord) SleepCorrelation {
	if len(flares) == 0 || len(sleep) == 0 {
		return SleepCorrelation{
			RecommendedHours: roundTo(RecommendedSleepHours(sleep), 1),
			Insufficient:     true,
			Message:          insufficientDataMessage,
		}
	}

	hoursByDay := lo.GroupBy(sleep, func(record SleepRecord) string { return dayKey(record.Date) })

	durations := make([]float64, 0, len(flares)*sleepLookbackDays)
	indicators := make([]float64, 0, len(flares)*sleepLookbackDays)
	for _, flare := range flares {
		for _, key := range daysBefore(flare.Date, sleepLookbackDays) {
			for _, record := range hoursByDay[key] {
				durations = append(durations, record.Hours)
				indicators = append(indicators, 1)
			}
		}
	}

	average := mean(lo.Map(sleep, func(record SleepRecord, _ int) float64 { return record.Hours }))
	preFlare := mean(durations)
	recommended := RecommendedSleepHours(sleep)

	result := SleepCorrelation{
		Correlation:          roundTo(Pearson(durations, indicators), 2),
		AverageHours:         roundTo(average, 1),
		PreFlareAverageHours: roundTo(preFlare, 1),
		RecommendedHours:     roundTo(recommended, 1),
		PreFlareSamples:      len(durations),
	}
	result.Message = sleepMessage(result)
	return result
}

func sleepMessage(result SleepCorrelation) string {
	message := fmt.Sprintf("You sleep %.1f hours on average; aim for %.1f hours.", result.AverageHours, result.RecommendedHours)
	if result.PreFlareSamples > 0 {
		message += fmt.Sprintf(" Before flares you slept %.1f hours on average.", result.PreFlareAverageHours)
	}
	return message
}
