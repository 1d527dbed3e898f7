package risk

import (
	"fmt"
	"math"
)

const NoNotableSymptoms = "No notable symptoms"

type ProdromalLevel string

const (
	ProdromalLow      ProdromalLevel = "low"
	ProdromalMedium   ProdromalLevel = "medium"
	ProdromalHigh     ProdromalLevel = "high"
	ProdromalCritical ProdromalLevel = "critical"
)

type CommonPoints struct {
	Fatigue int `json:"fatigue"`
	Fever   int `json:"fever"`
	Pain    int `json:"pain"`
	Mood    int `json:"mood"`
	Sleep   int `json:"sleep"`
}

func (points CommonPoints) Total() int {
	return points.Fatigue + points.Fever + points.Pain + points.Mood + points.Sleep
}

type ProdromalResult struct {
	Common               CommonPoints   `json:"common"`
	CommonScore          int            `json:"common_score"`
	DiseaseScore         float64        `json:"disease_score"`
	TotalScore           float64        `json:"total_score"`
	Level                ProdromalLevel `json:"level"`
	Probability          int            `json:"probability"`
	ContributingSymptoms []string       `json:"contributing_symptoms"`
}

type prodromalScorer struct {
	points   float64
	symptoms []string
}

func (scorer *prodromalScorer) add(points float64, label string) {
	scorer.points += points
	scorer.symptoms = append(scorer.symptoms, label)
}

func (scorer *prodromalScorer) addIf(condition bool, points float64, label string) {
	if condition {
		scorer.add(points, label)
	}
}

type prodromalRules func(scorer *prodromalScorer, inputs map[string]float64, details Details)

var prodromalRulesByDisease = map[Disease]prodromalRules{
	RheumatoidArthritis: func(scorer *prodromalScorer, inputs map[string]float64, details Details) {
		if ra, ok := details.(RheumatoidDetails); ok {
			for _, location := range ra.PainLocations {
				scorer.add(2, fmt.Sprintf("Joint pain: %s", location))
			}
		}
		scorer.addIf(inputs[KeyMorningWorse] > 0, 3, "Symptoms worse in the morning")
		scorer.addIf(inputs[KeyJointSwelling] >= 5, 1.5, "Marked joint swelling")
		scorer.addIf(inputs[KeyJointStiffness] >= 5, 1.5, "Marked joint stiffness")
	},
	Psoriasis: func(scorer *prodromalScorer, inputs map[string]float64, details Details) {
		if psoriasis, ok := details.(PsoriasisDetails); ok {
			scorer.addIf(psoriasis.NewPlaques, 3, "New plaques appeared")
		}
		scorer.addIf(inputs[KeyAffectedArea] >= 10, 3, "Plaques cover a large area")
		scorer.addIf(inputs[KeyItchiness] >= 6, 1.5, "Strong itching")
		scorer.addIf(inputs[KeyScaling] >= 6, 1.5, "Heavy scaling")
	},
	Crohns: func(scorer *prodromalScorer, inputs map[string]float64, _ Details) {
		scorer.addIf(inputs[KeyBloodOrMucus] > 0, 3, "Blood or mucus in stool")
		scorer.addIf(inputs[KeyBodyTemperature] >= 38, 3, "Fever")
		scorer.addIf(inputs[KeyStoolFrequency] >= 6, 1.5, "Frequent bowel movements")
		scorer.addIf(inputs[KeyAbdominalPain] >= 6, 1.5, "Strong abdominal pain")
	},
	Type1Diabetes: func(scorer *prodromalScorer, inputs map[string]float64, _ Details) {
		scorer.addIf(inputs[KeyKetones] > 0, 3, "Ketones detected")
		scorer.addIf(inputs[KeyHypoFrequency] >= 3, 1.5, "Frequent hypoglycaemia")
		if timeInRange, ok := inputs[KeyTimeInRange]; ok {
			scorer.addIf(timeInRange < 50, 1.5, "Low time in range")
		}
		scorer.addIf(inputs[KeyGlucoseVariability] >= 36, 1.5, "High glucose variability")
	},
	MultipleSclerosis: func(scorer *prodromalScorer, inputs map[string]float64, _ Details) {
		scorer.addIf(inputs[KeyVisionProblems] >= 5, 3, "Vision disturbance")
		scorer.addIf(inputs[KeyNumbness] >= 5, 1.5, "Numbness or tingling")
		scorer.addIf(inputs[KeyBalanceProblems] >= 5, 1.5, "Balance problems")
		scorer.addIf(inputs[KeyMuscleWeakness] >= 5, 1.5, "Muscle weakness")
	},
	Lupus: func(scorer *prodromalScorer, inputs map[string]float64, _ Details) {
		scorer.addIf(inputs[KeyFacialRash] > 0, 3, "Facial rash present")
		scorer.addIf(inputs[KeyOralUlcers] > 0, 3, "Oral ulcers present")
		scorer.addIf(inputs[KeyChestPain] >= 5, 3, "Chest pain when breathing")
		scorer.addIf(inputs[KeyJointPain] >= 5, 1.5, "Joint pain")
		scorer.addIf(inputs[KeySunExposure] >= 60, 1.5, "Long sun exposure")
	},
	Sjogrens: func(scorer *prodromalScorer, inputs map[string]float64, _ Details) {
		scorer.addIf(inputs[KeyGlandSwelling] > 0, 3, "Salivary gland swelling")
		scorer.addIf(inputs[KeyDryEyes] >= 6, 1.5, "Severe dry eyes")
		scorer.addIf(inputs[KeyDryMouth] >= 6, 1.5, "Severe dry mouth")
	},
	Thyroid: func(scorer *prodromalScorer, inputs map[string]float64, _ Details) {
		scorer.addIf(inputs[KeyHeatIntolerance] > 0, 3, "Heat intolerance")
		scorer.addIf(inputs[KeyRestingHeartRate] >= 100, 1.5, "Fast resting heart rate")
		scorer.addIf(inputs[KeyTremor] >= 5, 1.5, "Tremor")
		scorer.addIf(inputs[KeyWeightLoss] >= 2, 1.5, "Unintended weight loss")
	},
}

// PredictProdromal adds integer points for five generic domains to rule-based
// disease points. Only diseases with a sub-record in the observation are
// evaluated.
func PredictProdromal(observation Observation, diseases []Disease) ProdromalResult {
	common := CommonPointsFor(observation)
	scorer := &prodromalScorer{}
	addCommonSymptoms(scorer, common)

	for _, disease := range diseases {
		rules, ok := prodromalRulesByDisease[disease]
		if !ok {
			continue
		}
		inputs, present := observation.Inputs(disease)
		if !present {
			continue
		}
		rules(scorer, inputs, observation.Details[disease])
	}

	commonScore := common.Total()
	total := float64(commonScore) + scorer.points
	level, probability := prodromalBand(total)

	symptoms := scorer.symptoms
	if len(symptoms) == 0 {
		symptoms = []string{NoNotableSymptoms}
	}

	return ProdromalResult{
		Common:               common,
		CommonScore:          commonScore,
		DiseaseScore:         scorer.points,
		TotalScore:           total,
		Level:                level,
		Probability:          probability,
		ContributingSymptoms: symptoms,
	}
}

func CommonPointsFor(observation Observation) CommonPoints {
	return CommonPoints{
		Fatigue: halfScalePoints(observation.Fatigue),
		Fever:   feverPoints(observation.BodyTemperature),
		Pain:    halfScalePoints(math.Max(math.Max(observation.Myalgia, observation.JointPain), math.Max(observation.AbdominalPain, observation.SkinPain))),
		Mood:    halfScalePoints(math.Max(observation.Anxiety, observation.Depression)),
		Sleep:   halfScalePoints(observation.SleepDisturbance),
	}
}

func halfScalePoints(value float64) int {
	points := int(math.Round(value / 2))
	if points < 0 {
		return 0
	}
	if points > 5 {
		return 5
	}
	return points
}

func feverPoints(temperature float64) int {
	switch {
	case temperature < 37.3:
		return 0
	case temperature < 37.6:
		return 1
	case temperature < 38:
		return 2
	case temperature < 38.5:
		return 3
	case temperature < 39:
		return 4
	default:
		return 5
	}
}

func addCommonSymptoms(scorer *prodromalScorer, common CommonPoints) {
	if common.Fatigue >= 4 {
		scorer.symptoms = append(scorer.symptoms, "Severe fatigue")
	}
	if common.Fever >= 3 {
		scorer.symptoms = append(scorer.symptoms, "Fever")
	}
	if common.Pain >= 4 {
		scorer.symptoms = append(scorer.symptoms, "Severe pain")
	}
	if common.Mood >= 4 {
		scorer.symptoms = append(scorer.symptoms, "Low mood or anxiety")
	}
	if common.Sleep >= 4 {
		scorer.symptoms = append(scorer.symptoms, "Poor sleep")
	}
}

func prodromalBand(total float64) (ProdromalLevel, int) {
	switch {
	case total >= 40:
		return ProdromalCritical, 80
	case total >= 30:
		return ProdromalHigh, 60
	case total >= 20:
		return ProdromalMedium, 40
	default:
		return ProdromalLow, 15
	}
}
