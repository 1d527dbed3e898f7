package risk

import "testing"

func TestPredictProdromalWithoutSymptomsUsesSentinel(t *testing.T) {
	result := PredictProdromal(Observation{}, AllDiseases)

	if result.TotalScore != 0 {
		t.Fatalf("expected total 0, got %v", result.TotalScore)
	}
	if result.Level != ProdromalLow || result.Probability != 15 {
		t.Fatalf("expected low/15, got %s/%d", result.Level, result.Probability)
	}
	if len(result.ContributingSymptoms) != 1 || result.ContributingSymptoms[0] != NoNotableSymptoms {
		t.Fatalf("expected sentinel symptom list, got %#v", result.ContributingSymptoms)
	}
}

func TestPredictProdromalAddsCommonAndDiseasePoints(t *testing.T) {
	observation := Observation{
		Fatigue:          8,
		BodyTemperature:  38.6,
		JointPain:        6,
		Anxiety:          5,
		SleepDisturbance: 4,
		Details: map[Disease]Details{
			Lupus: LupusDetails{
				FacialRash:         true,
				OralUlcers:         true,
				ChestPain:          6,
				SunExposureMinutes: 90,
			},
		},
	}

	result := PredictProdromal(observation, []Disease{Lupus})

	wantCommon := CommonPoints{Fatigue: 4, Fever: 4, Pain: 3, Mood: 3, Sleep: 2}
	if result.Common != wantCommon {
		t.Fatalf("expected common points %+v, got %+v", wantCommon, result.Common)
	}
	if result.CommonScore != 16 {
		t.Fatalf("expected common score 16, got %d", result.CommonScore)
	}
	if result.DiseaseScore != 12 {
		t.Fatalf("expected lupus points 12, got %v", result.DiseaseScore)
	}
	if result.TotalScore != 28 || result.Level != ProdromalMedium || result.Probability != 40 {
		t.Fatalf("expected 28 medium/40, got %v %s/%d", result.TotalScore, result.Level, result.Probability)
	}
	if len(result.ContributingSymptoms) != 7 {
		t.Fatalf("expected 7 contributing symptoms, got %#v", result.ContributingSymptoms)
	}
}

func TestPredictProdromalReachesCriticalAcrossDiseases(t *testing.T) {
	observation := Observation{
		Fatigue:          8,
		BodyTemperature:  38.6,
		JointPain:        6,
		Anxiety:          5,
		SleepDisturbance: 4,
		Details: map[Disease]Details{
			Lupus: LupusDetails{FacialRash: true, OralUlcers: true, ChestPain: 6, SunExposureMinutes: 90},
			RheumatoidArthritis: RheumatoidDetails{
				PainLocations:  []string{"left wrist", "right wrist", "right knee"},
				MorningWorse:   true,
				JointSwelling:  6,
				JointStiffness: 6,
			},
		},
	}

	result := PredictProdromal(observation, []Disease{RheumatoidArthritis, Lupus})

	if result.TotalScore != 40 {
		t.Fatalf("expected total 40, got %v", result.TotalScore)
	}
	if result.Level != ProdromalCritical || result.Probability != 80 {
		t.Fatalf("expected critical/80, got %s/%d", result.Level, result.Probability)
	}
}

func TestPredictProdromalSkipsDiseasesWithoutSubRecord(t *testing.T) {
	observation := Observation{
		Details: map[Disease]Details{
			Thyroid: ThyroidDetails{HeatIntolerance: true, RestingHeartRate: 110},
		},
	}

	unselected := PredictProdromal(observation, []Disease{Crohns, Lupus})
	if unselected.DiseaseScore != 0 {
		t.Fatalf("expected no disease points, got %v", unselected.DiseaseScore)
	}

	selected := PredictProdromal(observation, []Disease{Thyroid})
	if selected.DiseaseScore != 4.5 {
		t.Fatalf("expected thyroid points 4.5, got %v", selected.DiseaseScore)
	}
}

func TestFeverPoints(t *testing.T) {
	tests := []struct {
		temperature float64
		want        int
	}{
		{temperature: 36.6, want: 0},
		{temperature: 37.3, want: 1},
		{temperature: 37.6, want: 2},
		{temperature: 38.0, want: 3},
		{temperature: 38.5, want: 4},
		{temperature: 39.0, want: 5},
		{temperature: 41.0, want: 5},
	}

	for _, tt := range tests {
		if got := feverPoints(tt.temperature); got != tt.want {
			t.Fatalf("feverPoints(%v) = %d, want %d", tt.temperature, got, tt.want)
		}
	}
}
