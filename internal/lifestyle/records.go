package lifestyle

import (
	"strings"
	"time"
)

const insufficientDataMessage = "Not enough data yet. Keep logging to unlock this analysis."

type FlareRecord struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Severity     int       `json:"severity"`
	Symptoms     []string  `json:"symptoms"`
	DurationDays int       `json:"duration_days"`
	Notes        string    `json:"notes,omitempty"`
}

type StressRecord struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Level float64   `json:"level"`
	Notes string    `json:"notes,omitempty"`
}

type PostMealSymptoms struct {
	OnsetHours  float64  `json:"onset_hours"`
	Symptoms    []string `json:"symptoms,omitempty"`
	Severity    int      `json:"severity"`
	Description string   `json:"description,omitempty"`
}

type FoodRecord struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Foods         []string          `json:"foods"`
	SymptomsAfter *PostMealSymptoms `json:"symptoms_after,omitempty"`
}

// SleepRecord carries optional "15:04" bed and wake times next to the
// duration; only Hours feeds the analysis.
type SleepRecord struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Hours    float64   `json:"hours"`
	Quality  int       `json:"quality"`
	Bedtime  string    `json:"bedtime,omitempty"`
	WakeTime string    `json:"wake_time,omitempty"`
}

type Records struct {
	Flares []FlareRecord
	Stress []StressRecord
	Foods  []FoodRecord
	Sleep  []SleepRecord
}

// NormalizeFoodTag lowercases and trims a food tag so that "Milk " and "milk"
// count as the same food.
func NormalizeFoodTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func dayKey(value time.Time) string {
	return value.Format("2006-01-02")
}

// daysBefore returns the keys of the n calendar days preceding day, nearest
// first.
func daysBefore(day time.Time, n int) []string {
	keys := make([]string, 0, n)
	start := dateOnly(day)
	for offset := 1; offset <= n; offset++ {
		keys = append(keys, dayKey(start.AddDate(0, 0, -offset)))
	}
	return keys
}

// trailingDays returns today and the n-1 calendar days before it.
func trailingDays(now time.Time, n int) map[string]bool {
	keys := make(map[string]bool, n)
	today := dateOnly(now)
	for offset := 0; offset < n; offset++ {
		keys[dayKey(today.AddDate(0, 0, -offset))] = true
	}
	return keys
}
