package risk

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAssessWithoutSubRecordIsInsufficient(t *testing.T) {
	observation := Observation{Fatigue: 9, JointPain: 8}

	_, err := Assess(observation, RheumatoidArthritis)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAssessMergesGenericAndDiseaseInputs(t *testing.T) {
	observation := Observation{
		JointPain: 8,
		Fatigue:   7,
		Details: map[Disease]Details{
			RheumatoidArthritis: RheumatoidDetails{
				JointSwelling:     7,
				JointStiffness:    8,
				MorningWorse:      true,
				SwollenJointCount: 6,
			},
		},
	}

	assessment, err := Assess(observation, RheumatoidArthritis)
	if err != nil {
		t.Fatalf("Assess() unexpected error: %v", err)
	}
	if len(assessment.Contributions) != len(rheumatoidConfig.Indicators) {
		t.Fatalf("expected full contribution list, got %d entries", len(assessment.Contributions))
	}
	if len(assessment.Drivers) != 0 {
		t.Fatalf("expected no drivers for a full contribution model, got %d", len(assessment.Drivers))
	}
	if assessment.Score <= 0 || assessment.Score > 100 {
		t.Fatalf("expected score in (0,100], got %v", assessment.Score)
	}
	if assessment.Classification != Classify(assessment.Score, RheumatoidThresholds) {
		t.Fatalf("expected rheumatoid thresholds to classify the score")
	}
}

func TestAssessTopDriverDisease(t *testing.T) {
	observation := Observation{
		Fatigue: 8,
		Details: map[Disease]Details{
			Sjogrens: SjogrensDetails{DryEyes: 9, DryMouth: 8, GlandSwelling: true},
		},
	}

	assessment, err := Assess(observation, Sjogrens)
	if err != nil {
		t.Fatalf("Assess() unexpected error: %v", err)
	}
	if len(assessment.Contributions) != 0 {
		t.Fatalf("expected no contribution list, got %d entries", len(assessment.Contributions))
	}
	if len(assessment.Drivers) != 3 {
		t.Fatalf("expected 3 drivers, got %d", len(assessment.Drivers))
	}
}

func TestAssessUnknownDisease(t *testing.T) {
	if _, err := Assess(Observation{}, Disease("gout")); !errors.Is(err, ErrUnknownDisease) {
		t.Fatalf("expected ErrUnknownDisease, got %v", err)
	}
}

func TestTopContributorsSkipsZeroEntries(t *testing.T) {
	result := Score(map[string]float64{KeyDryEyes: 9}, sjogrensConfig)

	top := TopContributors(result, 3)
	if len(top) != 1 || top[0].Key != KeyDryEyes {
		t.Fatalf("expected only dry eyes, got %#v", top)
	}
}

func TestDecodeDetailsMapSkipsMalformedEntries(t *testing.T) {
	raw := map[string]json.RawMessage{
		"lupus":          json.RawMessage(`{"facial_rash":true,"sun_exposure_minutes":90}`),
		"crohns":         json.RawMessage(`{"stool_frequency":"many"}`),
		"psoriasis":      json.RawMessage(`null`),
		"unknown_thing":  json.RawMessage(`{}`),
		"type1_diabetes": json.RawMessage(`{"glucose_variability":40}`),
	}

	decoded, failures := DecodeDetailsMap(raw)

	lupus, ok := decoded[Lupus].(LupusDetails)
	if !ok {
		t.Fatalf("expected lupus details, got %#v", decoded[Lupus])
	}
	if !lupus.FacialRash || lupus.SunExposureMinutes != 90 {
		t.Fatalf("unexpected lupus details: %#v", lupus)
	}
	if _, ok := decoded[Psoriasis]; ok {
		t.Fatal("expected null psoriasis payload to be skipped")
	}
	if _, ok := failures["crohns"]; !ok {
		t.Fatal("expected malformed crohn's payload to be reported")
	}
	if _, ok := failures["unknown_thing"]; !ok {
		t.Fatal("expected unknown disease key to be reported")
	}

	diabetes := decoded[Type1Diabetes].(DiabetesDetails)
	if _, ok := diabetes.Indicators()[KeyTimeInRange]; ok {
		t.Fatal("expected unreported time in range to be omitted")
	}
}

type stubContributionModel struct {
	result RiskResult
	inputs map[string]float64
}

func (model *stubContributionModel) Score(inputs map[string]float64) RiskResult {
	model.inputs = inputs
	return model.result
}

type stubDriverModel struct {
	result DriverResult
}

func (model stubDriverModel) ScoreDrivers(map[string]float64) DriverResult {
	return model.result
}

func TestAssessmentTakesResultFromModel(t *testing.T) {
	contributions := &stubContributionModel{result: RiskResult{
		Score:         42,
		Contributions: []Contribution{{Key: KeyFatigue, Contribution: 0.4}},
	}}
	assessment := Assessment{Drivers: []Driver{{Key: KeyTremor}}}
	assessment.applyContributions(contributions, map[string]float64{KeyFatigue: 6})

	if assessment.Score != 42 || len(assessment.Contributions) != 1 || assessment.Drivers != nil {
		t.Fatalf("expected contribution model result only, got %+v", assessment)
	}
	if contributions.inputs[KeyFatigue] != 6 {
		t.Fatalf("expected inputs to reach the model, got %v", contributions.inputs)
	}

	assessment.applyDrivers(stubDriverModel{result: DriverResult{
		Score:   17,
		Drivers: []Driver{{Key: KeyDryEyes, Percent: 100}},
	}}, nil)

	if assessment.Score != 17 || len(assessment.Drivers) != 1 || assessment.Contributions != nil {
		t.Fatalf("expected driver model result only, got %+v", assessment)
	}
}
