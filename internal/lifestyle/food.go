package lifestyle

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
)

type FoodVerdict string

const (
	FoodAvoid    FoodVerdict = "avoid"
	FoodModerate FoodVerdict = "moderate"
	FoodSafe     FoodVerdict = "safe"
)

const (
	foodFlareWindow       = 48 * time.Hour
	foodTrailingDays      = 30
	avoidProbability      = 0.5
	moderateProbability   = 0.3
	avoidInflammatory     = 0.5
	moderateInflammatory  = 0.3
	reducedIntakeFraction = 0.5
)

// inflammatoryFoods scores common dietary triggers from 0 (neutral) to 1
// (strongly pro-inflammatory).
var inflammatoryFoods = map[string]float64{
	"sugar":          0.8,
	"soda":           0.8,
	"processed meat": 0.8,
	"fried food":     0.75,
	"fast food":      0.75,
	"alcohol":        0.7,
	"white bread":    0.6,
	"pastry":         0.6,
	"red meat":       0.55,
	"gluten":         0.55,
	"margarine":      0.55,
	"dairy":          0.4,
	"cheese":         0.4,
	"coffee":         0.35,
	"tomato":         0.35,
	"spicy food":     0.35,
}

var antiInflammatoryFoods = map[string]bool{
	"salmon":       true,
	"sardines":     true,
	"blueberries":  true,
	"strawberries": true,
	"spinach":      true,
	"kale":         true,
	"broccoli":     true,
	"olive oil":    true,
	"avocado":      true,
	"walnuts":      true,
	"almonds":      true,
	"turmeric":     true,
	"ginger":       true,
	"green tea":    true,
	"oats":         true,
	"sweet potato": true,
}

type FoodInsight struct {
	Food              string      `json:"food"`
	Occurrences       int         `json:"occurrences"`
	FlareProbability  float64     `json:"flare_probability"`
	AverageOnsetHours float64     `json:"average_onset_hours"`
	InflammatoryScore float64     `json:"inflammatory_score"`
	AntiInflammatory  bool        `json:"anti_inflammatory"`
	Verdict           FoodVerdict `json:"verdict"`
	Note              string      `json:"note,omitempty"`
}

type FoodAnalysis struct {
	Foods        []FoodInsight `json:"foods"`
	Insufficient bool          `json:"insufficient_data"`
	Message      string        `json:"message"`
}

// Verdict returns the verdict for a food tag, or false when it was never
// logged.
func (analysis FoodAnalysis) Verdict(food string) (FoodVerdict, bool) {
	tag := NormalizeFoodTag(food)
	for _, insight := range analysis.Foods {
		if insight.Food == tag {
			return insight.Verdict, true
		}
	}
	return "", false
}

func InflammatoryScore(food string) float64 {
	tag := NormalizeFoodTag(food)
	if antiInflammatoryFoods[tag] {
		return 0
	}
	return inflammatoryFoods[tag]
}

type foodTally struct {
	occurrences int
	followed    int
	onsetHours  []float64
	recent      int
}

// AnalyzeFood measures, for each logged food, how often a flare was dated
// within 48 hours after the meal, and combines that with a static
// inflammatory score. A flare dated before the meal never counts.
func AnalyzeFood(flares []FlareRecord, foods []FoodRecord, now time.Time) FoodAnalysis {
	if len(flares) == 0 || len(foods) == 0 {
		return FoodAnalysis{
			Foods:        []FoodInsight{},
			Insufficient: true,
			Message:      insufficientDataMessage,
		}
	}

	flareDays := lo.Map(flares, func(record FlareRecord, _ int) time.Time { return dateOnly(record.Date) })
	today := dateOnly(now)
	trailingStart := today.AddDate(0, 0, -foodTrailingDays)

	earliest := foods[0].Timestamp
	for _, record := range foods {
		if record.Timestamp.Before(earliest) {
			earliest = record.Timestamp
		}
	}
	historyDays := today.Sub(dateOnly(earliest)).Hours()/24 + 1

	tallies := make(map[string]*foodTally)
	for _, record := range foods {
		mealDay := dateOnly(record.Timestamp)
		windowEnd := record.Timestamp.Add(foodFlareWindow)
		followed := lo.ContainsBy(flareDays, func(flareDay time.Time) bool {
			return !flareDay.Before(record.Timestamp) && !flareDay.After(windowEnd)
		})
		recent := mealDay.After(trailingStart) && !mealDay.After(today)

		for _, tag := range lo.Uniq(lo.Map(record.Foods, func(food string, _ int) string { return NormalizeFoodTag(food) })) {
			if tag == "" {
				continue
			}
			tally, ok := tallies[tag]
			if !ok {
				tally = &foodTally{}
				tallies[tag] = tally
			}
			tally.occurrences++
			if followed {
				tally.followed++
			}
			if record.SymptomsAfter != nil {
				tally.onsetHours = append(tally.onsetHours, record.SymptomsAfter.OnsetHours)
			}
			if recent {
				tally.recent++
			}
		}
	}

	insights := make([]FoodInsight, 0, len(tallies))
	for tag, tally := range tallies {
		probability := roundTo(float64(tally.followed)/float64(tally.occurrences), 2)
		inflammatory := InflammatoryScore(tag)
		insight := FoodInsight{
			Food:              tag,
			Occurrences:       tally.occurrences,
			FlareProbability:  probability,
			AverageOnsetHours: roundTo(mean(tally.onsetHours), 1),
			InflammatoryScore: inflammatory,
			AntiInflammatory:  antiInflammatoryFoods[tag],
			Verdict:           foodVerdict(probability, inflammatory),
		}

		if historyDays > foodTrailingDays {
			historicalAverage := float64(tally.occurrences) / (historyDays / foodTrailingDays)
			if float64(tally.recent) < historicalAverage*reducedIntakeFraction {
				insight.Note = fmt.Sprintf("You have eaten %s less often in the last 30 days; cutting back on it may be linked to fewer flares.", tag)
			}
		}
		insights = append(insights, insight)
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].FlareProbability != insights[j].FlareProbability {
			return insights[i].FlareProbability > insights[j].FlareProbability
		}
		return insights[i].Food < insights[j].Food
	})

	avoid := lo.CountBy(insights, func(insight FoodInsight) bool { return insight.Verdict == FoodAvoid })
	return FoodAnalysis{
		Foods:   insights,
		Message: fmt.Sprintf("Analysed %d foods; %d may be linked to your flares.", len(insights), avoid),
	}
}

func foodVerdict(probability float64, inflammatory float64) FoodVerdict {
	switch {
	case probability > avoidProbability || inflammatory > avoidInflammatory:
		return FoodAvoid
	case probability > moderateProbability || inflammatory > moderateInflammatory:
		return FoodModerate
	default:
		return FoodSafe
	}
}
