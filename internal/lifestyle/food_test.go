package lifestyle

import (
	"reflect"
	"testing"
	"time"
)

func foodFixture(t *testing.T) ([]FlareRecord, []FoodRecord) {
	t.Helper()
	flares := []FlareRecord{
		{Date: mustParseDay(t, "2026-03-02"), Severity: 3},
		{Date: mustParseDay(t, "2026-03-20"), Severity: 2},
	}
	foods := []FoodRecord{
		{
			Timestamp:     mustParseDay(t, "2026-03-01").Add(10 * time.Hour),
			Foods:         []string{"Milk", "bread"},
			SymptomsAfter: &PostMealSymptoms{OnsetHours: 2},
		},
		{
			Timestamp:     mustParseDay(t, "2026-03-10").Add(8 * time.Hour),
			Foods:         []string{"milk "},
			SymptomsAfter: &PostMealSymptoms{OnsetHours: 4},
		},
		{
			Timestamp: mustParseDay(t, "2026-03-19").Add(19 * time.Hour),
			Foods:     []string{"milk", "salmon"},
		},
		{
			Timestamp: mustParseDay(t, "2026-03-25").Add(13 * time.Hour),
			Foods:     []string{"salmon"},
		},
	}
	return flares, foods
}

func TestAnalyzeFoodInsufficientData(t *testing.T) {
	_, foods := foodFixture(t)

	result := AnalyzeFood(nil, foods, mustParseDay(t, "2026-03-31"))
	if !result.Insufficient || len(result.Foods) != 0 || result.Message == "" {
		t.Fatalf("expected insufficient result, got %+v", result)
	}
}

func TestAnalyzeFoodProbabilitiesAndVerdicts(t *testing.T) {
	flares, foods := foodFixture(t)

	result := AnalyzeFood(flares, foods, mustParseDay(t, "2026-03-31"))

	if len(result.Foods) != 3 {
		t.Fatalf("expected 3 foods, got %+v", result.Foods)
	}

	want := []struct {
		food        string
		occurrences int
		probability float64
		onset       float64
		verdict     FoodVerdict
	}{
		{food: "bread", occurrences: 1, probability: 1, onset: 2, verdict: FoodAvoid},
		{food: "milk", occurrences: 3, probability: 0.67, onset: 3, verdict: FoodAvoid},
		{food: "salmon", occurrences: 2, probability: 0.5, onset: 0, verdict: FoodModerate},
	}
	for index, expected := range want {
		got := result.Foods[index]
		if got.Food != expected.food {
			t.Fatalf("position %d: expected %s, got %s", index, expected.food, got.Food)
		}
		if got.Occurrences != expected.occurrences {
			t.Fatalf("%s: expected %d occurrences, got %d", got.Food, expected.occurrences, got.Occurrences)
		}
		if got.FlareProbability != expected.probability {
			t.Fatalf("%s: expected probability %v, got %v", got.Food, expected.probability, got.FlareProbability)
		}
		if got.AverageOnsetHours != expected.onset {
			t.Fatalf("%s: expected onset %v, got %v", got.Food, expected.onset, got.AverageOnsetHours)
		}
		if got.Verdict != expected.verdict {
			t.Fatalf("%s: expected verdict %s, got %s", got.Food, expected.verdict, got.Verdict)
		}
	}

	if !result.Foods[2].AntiInflammatory {
		t.Fatal("expected salmon to be on the anti-inflammatory list")
	}
	if result.Foods[0].Note == "" {
		t.Fatal("expected a reduced-intake note for bread")
	}
	if result.Foods[1].Note != "" {
		t.Fatalf("expected no note for milk, got %q", result.Foods[1].Note)
	}
}

func TestAnalyzeFoodIsIdempotent(t *testing.T) {
	flares, foods := foodFixture(t)
	now := mustParseDay(t, "2026-03-31")

	first := AnalyzeFood(flares, foods, now)
	second := AnalyzeFood(flares, foods, now)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestAnalyzeFoodUsesInflammatoryDatabase(t *testing.T) {
	flares := []FlareRecord{{Date: mustParseDay(t, "2026-01-01")}}
	foods := []FoodRecord{
		{Timestamp: mustParseDay(t, "2026-03-10"), Foods: []string{"Sugar", "coffee", "rice"}},
	}

	result := AnalyzeFood(flares, foods, mustParseDay(t, "2026-03-10"))

	verdicts := map[string]FoodVerdict{}
	for _, insight := range result.Foods {
		verdicts[insight.Food] = insight.Verdict
	}
	if verdicts["sugar"] != FoodAvoid {
		t.Fatalf("expected sugar to be avoided, got %s", verdicts["sugar"])
	}
	if verdicts["coffee"] != FoodModerate {
		t.Fatalf("expected coffee to be moderate, got %s", verdicts["coffee"])
	}
	if verdicts["rice"] != FoodSafe {
		t.Fatalf("expected rice to be safe, got %s", verdicts["rice"])
	}

	if verdict, ok := result.Verdict(" SUGAR "); !ok || verdict != FoodAvoid {
		t.Fatalf("expected Verdict lookup to normalise tags, got %s %v", verdict, ok)
	}
}

func TestAnalyzeFoodCountsOnlyFlaresAfterTheMeal(t *testing.T) {
	flares := []FlareRecord{{Date: mustParseDay(t, "2026-03-04"), Severity: 5}}

	tests := []struct {
		name        string
		meal        time.Time
		probability float64
		verdict     FoodVerdict
	}{
		{name: "meal later on the flare day", meal: mustParseDay(t, "2026-03-04").Add(21 * time.Hour), probability: 0, verdict: FoodSafe},
		{name: "meal the evening before", meal: mustParseDay(t, "2026-03-03").Add(23 * time.Hour), probability: 1, verdict: FoodAvoid},
		{name: "meal exactly 48 hours before", meal: mustParseDay(t, "2026-03-02"), probability: 1, verdict: FoodAvoid},
		{name: "meal 49 hours before", meal: mustParseDay(t, "2026-03-01").Add(23 * time.Hour), probability: 0, verdict: FoodSafe},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			foods := []FoodRecord{{Timestamp: testCase.meal, Foods: []string{"rice"}}}
			result := AnalyzeFood(flares, foods, mustParseDay(t, "2026-03-05"))

			if len(result.Foods) != 1 {
				t.Fatalf("expected one food, got %+v", result.Foods)
			}
			got := result.Foods[0]
			if got.FlareProbability != testCase.probability || got.Verdict != testCase.verdict {
				t.Fatalf("expected probability %v/%s, got %v/%s", testCase.probability, testCase.verdict, got.FlareProbability, got.Verdict)
			}
		})
	}
}
