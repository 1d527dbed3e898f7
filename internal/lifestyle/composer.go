package lifestyle

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

const (
	composerWindowDays     = 3
	highStressLevel        = 7.0
	sleepDeficitHours      = 1.0
	stressPoints           = 30
	sleepPoints            = 25
	foodPoints             = 25
	similarPatternPoints   = 20
	similarStressTolerance = 1.0
	similarSleepTolerance  = 1.0
	minSimilarDimensions   = 2
	maxRiskScore           = 100
)

type RiskFactors struct {
	Stress         bool `json:"stress"`
	Sleep          bool `json:"sleep"`
	Food           bool `json:"food"`
	SimilarPattern bool `json:"similar_pattern"`
}

type FlareRiskAnalysis struct {
	Score            int         `json:"score"`
	Level            RiskLevel   `json:"level"`
	Factors          RiskFactors `json:"factors"`
	RecentStress     float64     `json:"recent_stress"`
	RecentSleepHours float64     `json:"recent_sleep_hours"`
	RecentFoods      []string    `json:"recent_foods"`
	RiskyFoods       []string    `json:"risky_foods"`
	Message          string      `json:"message"`
	Recommendations  []string    `json:"recommendations"`
}

type Report struct {
	Stress StressCorrelation `json:"stress"`
	Food   FoodAnalysis      `json:"food"`
	Sleep  SleepCorrelation  `json:"sleep"`
	Risk   FlareRiskAnalysis `json:"risk"`
}

// Analyze runs the three correlations and composes the short-term risk from
// them.
func Analyze(records Records, now time.Time) Report {
	report := Report{
		Stress: AnalyzeStress(records.Flares, records.Stress),
		Food:   AnalyzeFood(records.Flares, records.Foods, now),
		Sleep:  AnalyzeSleep(records.Flares, records.Sleep),
	}
	report.Risk = ComposeRisk(records, report.Food, now)
	return report
}

type windowSummary struct {
	stress    float64
	hasStress bool
	sleep     float64
	hasSleep  bool
	foods     []string
}

func summarizeWindow(records Records, days map[string]bool) windowSummary {
	summary := windowSummary{}

	stress := lo.Filter(records.Stress, func(record StressRecord, _ int) bool { return days[dayKey(record.Date)] })
	if len(stress) > 0 {
		summary.hasStress = true
		summary.stress = mean(lo.Map(stress, func(record StressRecord, _ int) float64 { return record.Level }))
	}

	sleep := lo.Filter(records.Sleep, func(record SleepRecord, _ int) bool { return days[dayKey(record.Date)] })
	if len(sleep) > 0 {
		summary.hasSleep = true
		summary.sleep = mean(lo.Map(sleep, func(record SleepRecord, _ int) float64 { return record.Hours }))
	}

	foods := make([]string, 0)
	for _, record := range records.Foods {
		if !days[dayKey(record.Timestamp)] {
			continue
		}
		for _, food := range record.Foods {
			if tag := NormalizeFoodTag(food); tag != "" {
				foods = append(foods, tag)
			}
		}
	}
	summary.foods = lo.Uniq(foods)
	sort.Strings(summary.foods)
	return summary
}

func antecedentDays(flares []FlareRecord) (map[string]bool, bool) {
	if len(flares) == 0 {
		return nil, false
	}
	latest := lo.MaxBy(flares, func(candidate FlareRecord, current FlareRecord) bool {
		return candidate.Date.After(current.Date)
	})
	return lo.SliceToMap(daysBefore(latest.Date, composerWindowDays), func(key string) (string, bool) {
		return key, true
	}), true
}

func similarDimensions(recent windowSummary, before windowSummary) int {
	matches := 0
	if recent.hasStress && before.hasStress && math.Abs(recent.stress-before.stress) <= similarStressTolerance {
		matches++
	}
	if recent.hasSleep && before.hasSleep && math.Abs(recent.sleep-before.sleep) <= similarSleepTolerance {
		matches++
	}
	if len(lo.Intersect(recent.foods, before.foods)) > 0 {
		matches++
	}
	return matches
}

// ComposeRisk scores the last three calendar days (today included) against
// fixed stress, sleep and food rules, and adds a bonus when those days resemble
// the three days before the most recent flare. The sleep rule compares against
// the unrounded recommended duration.
func ComposeRisk(records Records, food FoodAnalysis, now time.Time) FlareRiskAnalysis {
	recent := summarizeWindow(records, trailingDays(now, composerWindowDays))
	recommendedSleep := RecommendedSleepHours(records.Sleep)

	analysis := FlareRiskAnalysis{
		RecentFoods: recent.foods,
		RiskyFoods:  []string{},
	}
	score := 0

	if recent.hasStress {
		analysis.RecentStress = roundTo(recent.stress, 1)
		if recent.stress > highStressLevel {
			analysis.Factors.Stress = true
			score += stressPoints
		}
	}

	if recent.hasSleep {
		analysis.RecentSleepHours = roundTo(recent.sleep, 1)
		if recent.sleep < recommendedSleep-sleepDeficitHours {
			analysis.Factors.Sleep = true
			score += sleepPoints
		}
	}

	for _, tag := range recent.foods {
		if verdict, ok := food.Verdict(tag); ok && verdict == FoodAvoid {
			analysis.RiskyFoods = append(analysis.RiskyFoods, tag)
		}
	}
	if len(analysis.RiskyFoods) > 0 {
		analysis.Factors.Food = true
		score += foodPoints
	}

	if days, ok := antecedentDays(records.Flares); ok {
		before := summarizeWindow(records, days)
		if similarDimensions(recent, before) >= minSimilarDimensions {
			analysis.Factors.SimilarPattern = true
			score += similarPatternPoints
		}
	}

	analysis.Score = min(score, maxRiskScore)
	analysis.Level = riskLevel(analysis.Score)
	analysis.Message = riskMessage(analysis.Level, analysis.Factors.SimilarPattern)
	analysis.Recommendations = riskRecommendations(analysis, recommendedSleep)
	return analysis
}

func riskLevel(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskCritical
	case score >= 50:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

func riskMessage(level RiskLevel, similarPattern bool) string {
	var message string
	switch level {
	case RiskCritical:
		message = "Your recent lifestyle strongly points to a flare in the coming days."
	case RiskHigh:
		message = "Several lifestyle triggers are active; your flare risk is high."
	case RiskMedium:
		message = "Some lifestyle triggers are active; keep an eye on your symptoms."
	default:
		message = "Your recent lifestyle shows few flare triggers."
	}
	if similarPattern {
		message += " The last few days look similar to the days before your most recent flare."
	}
	return message
}

func riskRecommendations(analysis FlareRiskAnalysis, recommendedSleep float64) []string {
	recommendations := make([]string, 0, 3)
	if analysis.Factors.Stress {
		recommendations = append(recommendations, fmt.Sprintf("Your stress has averaged %.1f over the last 3 days; plan rest and a relaxation routine.", analysis.RecentStress))
	}
	if analysis.Factors.Sleep {
		recommendations = append(recommendations, fmt.Sprintf("You slept %.1f hours on average; aim for %.1f hours tonight.", analysis.RecentSleepHours, recommendedSleep))
	}
	if analysis.Factors.Food {
		recommendations = append(recommendations, fmt.Sprintf("Avoid %s for the next few days.", strings.Join(analysis.RiskyFoods, ", ")))
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Keep up your current routine and continue logging.")
	}
	return recommendations
}
