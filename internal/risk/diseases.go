package risk

import "fmt"

type Disease string

const (
	RheumatoidArthritis Disease = "rheumatoid_arthritis"
	Psoriasis           Disease = "psoriasis"
	Crohns              Disease = "crohns"
	Type1Diabetes       Disease = "type1_diabetes"
	MultipleSclerosis   Disease = "multiple_sclerosis"
	Lupus               Disease = "lupus"
	Sjogrens            Disease = "sjogrens"
	Thyroid             Disease = "thyroid"
)

var AllDiseases = []Disease{
	RheumatoidArthritis,
	Psoriasis,
	Crohns,
	Type1Diabetes,
	MultipleSclerosis,
	Lupus,
	Sjogrens,
	Thyroid,
}

func ParseDisease(raw string) (Disease, error) {
	for _, disease := range AllDiseases {
		if string(disease) == raw {
			return disease, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDisease, raw)
}

// UsesTopDrivers reports whether the disease summarises its score as a top-3
// driver list instead of the full contribution list.
func (disease Disease) UsesTopDrivers() bool {
	return disease == Sjogrens || disease == Thyroid
}

func (disease Disease) Config() (ModelConfig, error) {
	switch disease {
	case RheumatoidArthritis:
		return rheumatoidConfig, nil
	case Psoriasis:
		return psoriasisConfig, nil
	case Crohns:
		return crohnsConfig, nil
	case Type1Diabetes:
		return diabetesConfig, nil
	case MultipleSclerosis:
		return sclerosisConfig, nil
	case Lupus:
		return lupusConfig, nil
	case Sjogrens:
		return sjogrensConfig, nil
	case Thyroid:
		return thyroidConfig, nil
	default:
		return ModelConfig{}, fmt.Errorf("%w: %q", ErrUnknownDisease, string(disease))
	}
}

func higher(key string, label string, weight float64, baseline float64, min float64, max float64) Indicator {
	return Indicator{Key: key, Label: label, Weight: weight, Baseline: baseline, Min: min, Max: max, Orientation: HigherIsWorse}
}

func lower(key string, label string, weight float64, baseline float64, min float64, max float64) Indicator {
	return Indicator{Key: key, Label: label, Weight: weight, Baseline: baseline, Min: min, Max: max, Orientation: LowerIsWorse}
}

func flag(key string, label string, weight float64) Indicator {
	return Indicator{Key: key, Label: label, Weight: weight, Baseline: 0, Min: 0, Max: 1, Orientation: Binary}
}

var rheumatoidConfig = ModelConfig{
	Disease:    RheumatoidArthritis,
	Thresholds: RheumatoidThresholds,
	Indicators: []Indicator{
		higher(KeyJointPain, "Joint pain", 3.0, 3, 0, 10),
		higher(KeyJointSwelling, "Joint swelling", 3.0, 2, 0, 10),
		higher(KeyJointStiffness, "Joint stiffness", 2.5, 3, 0, 10),
		flag(KeyMorningWorse, "Worse in the morning", 1.5),
		higher(KeySwollenJointCount, "Swollen joints", 2.0, 1, 0, 28),
		higher(KeyFatigue, "Fatigue", 1.5, 4, 0, 10),
		higher(KeyFunctionLoss, "Loss of function", 2.0, 3, 0, 10),
	},
}

var psoriasisConfig = ModelConfig{
	Disease:    Psoriasis,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		higher(KeyPlaqueSeverity, "Plaque severity", 3.0, 3, 0, 10),
		higher(KeyAffectedArea, "Affected body area (%)", 2.5, 3, 0, 100),
		higher(KeyItchiness, "Itchiness", 2.5, 3, 0, 10),
		higher(KeyScaling, "Scaling", 2.0, 3, 0, 10),
		higher(KeySkinPain, "Skin pain", 2.0, 3, 0, 10),
		higher(KeyJointPain, "Joint pain", 1.5, 3, 0, 10),
		flag(KeyNailChanges, "Nail changes", 1.0),
		higher(KeyStress, "Stress", 1.0, 5, 0, 10),
	},
}

var crohnsConfig = ModelConfig{
	Disease:    Crohns,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		higher(KeyStoolFrequency, "Stool frequency", 3.0, 3, 0, 20),
		higher(KeyAbdominalPain, "Abdominal pain", 3.0, 3, 0, 10),
		flag(KeyBloodOrMucus, "Blood or mucus", 2.0),
		higher(KeyStoolConsistency, "Stool consistency (Bristol)", 1.5, 4, 1, 7),
		higher(KeyBodyTemperature, "Body temperature", 1.5, 37.5, 35, 42),
		higher(KeyWeightLoss, "Weight loss (kg)", 1.5, 0.5, 0, 10),
		higher(KeyFatigue, "Fatigue", 1.0, 4, 0, 10),
		flag(KeyAppetiteLoss, "Appetite loss", 1.0),
	},
}

var diabetesConfig = ModelConfig{
	Disease:    Type1Diabetes,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		higher(KeyGlucoseVariability, "Glucose variability (CV %)", 3.0, 36, 0, 100),
		higher(KeyHypoFrequency, "Hypoglycaemia episodes per week", 3.0, 1, 0, 14),
		higher(KeyHyperFrequency, "Hyperglycaemia episodes per week", 2.5, 2, 0, 14),
		lower(KeyTimeInRange, "Time in range (%)", 2.0, 70, 0, 100),
		flag(KeyKetones, "Ketones detected", 2.5),
		higher(KeyFatigue, "Fatigue", 1.0, 4, 0, 10),
		higher(KeyThirst, "Excessive thirst", 1.0, 3, 0, 10),
	},
}

var sclerosisConfig = ModelConfig{
	Disease:    MultipleSclerosis,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		higher(KeyNumbness, "Numbness or tingling", 3.0, 2, 0, 10),
		higher(KeyVisionProblems, "Vision problems", 3.0, 1, 0, 10),
		higher(KeyBalanceProblems, "Balance problems", 2.5, 2, 0, 10),
		higher(KeyMuscleWeakness, "Muscle weakness", 2.5, 2, 0, 10),
		higher(KeyFatigue, "Fatigue", 2.5, 4, 0, 10),
		flag(KeyHeatSensitivity, "Heat sensitivity", 1.5),
		higher(KeyCognitiveFog, "Cognitive fog", 1.5, 3, 0, 10),
		higher(KeyBladderUrgency, "Bladder urgency", 1.0, 2, 0, 10),
	},
}

var lupusConfig = ModelConfig{
	Disease:    Lupus,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		flag(KeyFacialRash, "Facial (butterfly) rash", 4.0),
		higher(KeySunExposure, "Sun exposure (minutes)", 3.0, 30, 0, 120),
		flag(KeyOralUlcers, "Oral ulcers", 3.0),
		higher(KeyChestPain, "Chest pain when breathing", 2.5, 1, 0, 10),
		higher(KeyJointPain, "Joint pain", 2.0, 3, 0, 10),
		higher(KeyFatigue, "Fatigue", 2.0, 4, 0, 10),
		higher(KeyBodyTemperature, "Body temperature", 2.0, 37.5, 35, 42),
		higher(KeyHairLoss, "Hair loss", 1.5, 2, 0, 10),
		flag(KeyRaynaud, "Raynaud's phenomenon", 1.5),
	},
}

var sjogrensConfig = ModelConfig{
	Disease:    Sjogrens,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		higher(KeyDryEyes, "Dry eyes", 3.0, 3, 0, 10),
		higher(KeyDryMouth, "Dry mouth", 3.0, 3, 0, 10),
		higher(KeyFatigue, "Fatigue", 2.0, 4, 0, 10),
		flag(KeyGlandSwelling, "Salivary gland swelling", 2.0),
		higher(KeyJointPain, "Joint pain", 1.5, 3, 0, 10),
		higher(KeyDrySkin, "Dry skin", 1.0, 3, 0, 10),
		higher(KeyDryCough, "Dry cough", 1.0, 2, 0, 10),
	},
}

var thyroidConfig = ModelConfig{
	Disease:    Thyroid,
	Thresholds: DefaultThresholds,
	Indicators: []Indicator{
		higher(KeyRestingHeartRate, "Resting heart rate (bpm)", 2.5, 80, 40, 160),
		higher(KeyWeightLoss, "Weight loss (kg)", 2.0, 1, 0, 15),
		higher(KeyTremor, "Tremor", 2.0, 1, 0, 10),
		flag(KeyHeatIntolerance, "Heat intolerance", 1.5),
		higher(KeyFatigue, "Fatigue", 1.5, 4, 0, 10),
		higher(KeyAnxiety, "Anxiety", 1.5, 4, 0, 10),
		higher(KeySleepDisturbance, "Sleep disturbance", 1.0, 4, 0, 10),
	},
}
