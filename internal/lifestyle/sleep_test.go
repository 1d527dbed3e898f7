package lifestyle

import "testing"

func TestAnalyzeSleepPreFlareWindow(t *testing.T) {
	flares := []FlareRecord{{Date: mustParseDay(t, "2026-03-10")}}
	sleep := []SleepRecord{
		{Date: mustParseDay(t, "2026-03-01"), Hours: 8},
		{Date: mustParseDay(t, "2026-03-07"), Hours: 6},
		{Date: mustParseDay(t, "2026-03-08"), Hours: 5},
		{Date: mustParseDay(t, "2026-03-09"), Hours: 7},
	}

	result := AnalyzeSleep(flares, sleep)

	if result.Insufficient {
		t.Fatal("expected sufficient data")
	}
	if result.PreFlareSamples != 3 {
		t.Fatalf("expected 3 pre-flare samples, got %d", result.PreFlareSamples)
	}
	if result.PreFlareAverageHours != 6 {
		t.Fatalf("expected pre-flare average 6, got %v", result.PreFlareAverageHours)
	}
	if result.AverageHours != 6.5 {
		t.Fatalf("expected average 6.5, got %v", result.AverageHours)
	}
	if result.RecommendedHours != 7.5 {
		t.Fatalf("expected recommended 7.5, got %v", result.RecommendedHours)
	}
	if result.Correlation != 0 {
		t.Fatalf("expected correlation 0 for a single-class indicator series, got %v", result.Correlation)
	}
}

func TestRecommendedSleepHoursAboveAverage(t *testing.T) {
	sleep := []SleepRecord{
		{Date: mustParseDay(t, "2026-03-01"), Hours: 8},
		{Date: mustParseDay(t, "2026-03-02"), Hours: 8.5},
		{Date: mustParseDay(t, "2026-03-03"), Hours: 7.5},
	}

	if got := RecommendedSleepHours(sleep); got != 8.5 {
		t.Fatalf("expected recommended 8.5, got %v", got)
	}
	if got := RecommendedSleepHours(nil); got != 7.5 {
		t.Fatalf("expected recommended 7.5 without records, got %v", got)
	}
}

func TestAnalyzeSleepInsufficientData(t *testing.T) {
	result := AnalyzeSleep(nil, []SleepRecord{{Date: mustParseDay(t, "2026-03-01"), Hours: 6}})

	if !result.Insufficient {
		t.Fatal("expected insufficient data flag")
	}
	if result.Correlation != 0 || result.Message == "" {
		t.Fatalf("expected zero correlation with message, got %+v", result)
	}
	if result.RecommendedHours != 7.5 {
		t.Fatalf("expected recommended 7.5, got %v", result.RecommendedHours)
	}
}
