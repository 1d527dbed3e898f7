package risk

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	KeyFatigue          = "fatigue"
	KeyBodyTemperature  = "body_temperature"
	KeyMyalgia          = "myalgia"
	KeyAnxiety          = "anxiety"
	KeyDepression       = "depression"
	KeyStress           = "stress"
	KeySleepDisturbance = "sleep_disturbance"
	KeyAppetiteLoss     = "appetite_loss"
	KeyAbdominalPain    = "abdominal_pain"
	KeyJointPain        = "joint_pain"
	KeyFunctionLoss     = "function_loss"
	KeySkinPain         = "skin_pain"
	KeyItchiness        = "itchiness"

	KeyJointSwelling     = "joint_swelling"
	KeyJointStiffness    = "joint_stiffness"
	KeyMorningWorse      = "morning_worse"
	KeySwollenJointCount = "swollen_joint_count"

	KeyPlaqueSeverity = "plaque_severity"
	KeyAffectedArea   = "affected_area"
	KeyScaling        = "scaling"
	KeyNailChanges    = "nail_changes"

	KeyStoolFrequency   = "stool_frequency"
	KeyStoolConsistency = "stool_consistency"
	KeyBloodOrMucus     = "blood_or_mucus"
	KeyWeightLoss       = "weight_loss"

	KeyGlucoseVariability = "glucose_variability"
	KeyHypoFrequency      = "hypo_frequency"
	KeyHyperFrequency     = "hyper_frequency"
	KeyTimeInRange        = "time_in_range"
	KeyKetones            = "ketones"
	KeyThirst             = "thirst"

	KeyNumbness        = "numbness"
	KeyVisionProblems  = "vision_problems"
	KeyBalanceProblems = "balance_problems"
	KeyMuscleWeakness  = "muscle_weakness"
	KeyHeatSensitivity = "heat_sensitivity"
	KeyCognitiveFog    = "cognitive_fog"
	KeyBladderUrgency  = "bladder_urgency"

	KeyFacialRash  = "facial_rash"
	KeySunExposure = "sun_exposure"
	KeyOralUlcers  = "oral_ulcers"
	KeyChestPain   = "chest_pain"
	KeyHairLoss    = "hair_loss"
	KeyRaynaud     = "raynaud"

	KeyDryEyes       = "dry_eyes"
	KeyDryMouth      = "dry_mouth"
	KeyGlandSwelling = "gland_swelling"
	KeyDrySkin       = "dry_skin"
	KeyDryCough      = "dry_cough"

	KeyRestingHeartRate = "resting_heart_rate"
	KeyTremor           = "tremor"
	KeyHeatIntolerance  = "heat_intolerance"
)

// Observation is one dated snapshot of generic measurements plus optional
// per-disease sub-records. Zero means "not reported".
type Observation struct {
	Date             time.Time           `json:"date"`
	Fatigue          float64             `json:"fatigue"`
	BodyTemperature  float64             `json:"body_temperature"`
	Myalgia          float64             `json:"myalgia"`
	Anxiety          float64             `json:"anxiety"`
	Depression       float64             `json:"depression"`
	Stress           float64             `json:"stress"`
	SleepDisturbance float64             `json:"sleep_disturbance"`
	AppetiteLoss     bool                `json:"appetite_loss"`
	AbdominalPain    float64             `json:"abdominal_pain"`
	JointPain        float64             `json:"joint_pain"`
	FunctionLoss     float64             `json:"function_loss"`
	SkinPain         float64             `json:"skin_pain"`
	Itchiness        float64             `json:"itchiness"`
	Notes            string              `json:"notes,omitempty"`
	Details          map[Disease]Details `json:"-"`
}

type Details interface {
	Disease() Disease
	Indicators() map[string]float64
}

func (observation Observation) GenericIndicators() map[string]float64 {
	return map[string]float64{
		KeyFatigue:          observation.Fatigue,
		KeyBodyTemperature:  observation.BodyTemperature,
		KeyMyalgia:          observation.Myalgia,
		KeyAnxiety:          observation.Anxiety,
		KeyDepression:       observation.Depression,
		KeyStress:           observation.Stress,
		KeySleepDisturbance: observation.SleepDisturbance,
		KeyAppetiteLoss:     boolValue(observation.AppetiteLoss),
		KeyAbdominalPain:    observation.AbdominalPain,
		KeyJointPain:        observation.JointPain,
		KeyFunctionLoss:     observation.FunctionLoss,
		KeySkinPain:         observation.SkinPain,
		KeyItchiness:        observation.Itchiness,
	}
}

// Inputs merges the generic measurements with the disease sub-record. It
// reports false when the sub-record is absent.
func (observation Observation) Inputs(disease Disease) (map[string]float64, bool) {
	if !observation.HasDetails(disease) {
		return nil, false
	}
	details := observation.Details[disease]
	inputs := observation.GenericIndicators()
	for key, value := range details.Indicators() {
		inputs[key] = value
	}
	return inputs, true
}

func (observation Observation) HasDetails(disease Disease) bool {
	details, ok := observation.Details[disease]
	return ok && details != nil
}

// DetailDiseases lists the diseases with a sub-record, sorted by name.
func (observation Observation) DetailDiseases() []Disease {
	diseases := make([]Disease, 0, len(observation.Details))
	for disease, details := range observation.Details {
		if details != nil {
			diseases = append(diseases, disease)
		}
	}
	sort.Slice(diseases, func(i, j int) bool { return diseases[i] < diseases[j] })
	return diseases
}

func boolValue(value bool) float64 {
	if value {
		return 1
	}
	return 0
}

type RheumatoidDetails struct {
	JointSwelling     float64  `json:"joint_swelling"`
	JointStiffness    float64  `json:"joint_stiffness"`
	MorningWorse      bool     `json:"morning_worse"`
	SwollenJointCount float64  `json:"swollen_joint_count"`
	PainLocations     []string `json:"pain_locations"`
}

func (RheumatoidDetails) Disease() Disease { return RheumatoidArthritis }

func (details RheumatoidDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyJointSwelling:     details.JointSwelling,
		KeyJointStiffness:    details.JointStiffness,
		KeyMorningWorse:      boolValue(details.MorningWorse),
		KeySwollenJointCount: details.SwollenJointCount,
	}
}

type PsoriasisDetails struct {
	PlaqueSeverity float64 `json:"plaque_severity"`
	AffectedArea   float64 `json:"affected_area"`
	Scaling        float64 `json:"scaling"`
	NailChanges    bool    `json:"nail_changes"`
	NewPlaques     bool    `json:"new_plaques"`
}

func (PsoriasisDetails) Disease() Disease { return Psoriasis }

func (details PsoriasisDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyPlaqueSeverity: details.PlaqueSeverity,
		KeyAffectedArea:   details.AffectedArea,
		KeyScaling:        details.Scaling,
		KeyNailChanges:    boolValue(details.NailChanges),
	}
}

type CrohnsDetails struct {
	StoolFrequency   float64 `json:"stool_frequency"`
	StoolConsistency float64 `json:"stool_consistency"`
	BloodOrMucus     bool    `json:"blood_or_mucus"`
	WeightLoss       float64 `json:"weight_loss"`
}

func (CrohnsDetails) Disease() Disease { return Crohns }

func (details CrohnsDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyStoolFrequency:   details.StoolFrequency,
		KeyStoolConsistency: details.StoolConsistency,
		KeyBloodOrMucus:     boolValue(details.BloodOrMucus),
		KeyWeightLoss:       details.WeightLoss,
	}
}

type DiabetesDetails struct {
	GlucoseVariability float64  `json:"glucose_variability"`
	HypoFrequency      float64  `json:"hypo_frequency"`
	HyperFrequency     float64  `json:"hyper_frequency"`
	TimeInRange        *float64 `json:"time_in_range,omitempty"`
	Ketones            bool     `json:"ketones"`
	Thirst             float64  `json:"thirst"`
}

func (DiabetesDetails) Disease() Disease { return Type1Diabetes }

// Indicators omits time in range when it was not reported; a missing
// lower-is-worse reading must not count as maximal severity.
func (details DiabetesDetails) Indicators() map[string]float64 {
	indicators := map[string]float64{
		KeyGlucoseVariability: details.GlucoseVariability,
		KeyHypoFrequency:      details.HypoFrequency,
		KeyHyperFrequency:     details.HyperFrequency,
		KeyKetones:            boolValue(details.Ketones),
		KeyThirst:             details.Thirst,
	}
	if details.TimeInRange != nil {
		indicators[KeyTimeInRange] = *details.TimeInRange
	}
	return indicators
}

type SclerosisDetails struct {
	Numbness        float64 `json:"numbness"`
	VisionProblems  float64 `json:"vision_problems"`
	BalanceProblems float64 `json:"balance_problems"`
	MuscleWeakness  float64 `json:"muscle_weakness"`
	HeatSensitivity bool    `json:"heat_sensitivity"`
	CognitiveFog    float64 `json:"cognitive_fog"`
	BladderUrgency  float64 `json:"bladder_urgency"`
}

func (SclerosisDetails) Disease() Disease { return MultipleSclerosis }

func (details SclerosisDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyNumbness:        details.Numbness,
		KeyVisionProblems:  details.VisionProblems,
		KeyBalanceProblems: details.BalanceProblems,
		KeyMuscleWeakness:  details.MuscleWeakness,
		KeyHeatSensitivity: boolValue(details.HeatSensitivity),
		KeyCognitiveFog:    details.CognitiveFog,
		KeyBladderUrgency:  details.BladderUrgency,
	}
}

type LupusDetails struct {
	FacialRash         bool    `json:"facial_rash"`
	SunExposureMinutes float64 `json:"sun_exposure_minutes"`
	OralUlcers         bool    `json:"oral_ulcers"`
	ChestPain          float64 `json:"chest_pain"`
	HairLoss           float64 `json:"hair_loss"`
	Raynaud            bool    `json:"raynaud"`
}

func (LupusDetails) Disease() Disease { return Lupus }

func (details LupusDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyFacialRash:  boolValue(details.FacialRash),
		KeySunExposure: details.SunExposureMinutes,
		KeyOralUlcers:  boolValue(details.OralUlcers),
		KeyChestPain:   details.ChestPain,
		KeyHairLoss:    details.HairLoss,
		KeyRaynaud:     boolValue(details.Raynaud),
	}
}

type SjogrensDetails struct {
	DryEyes       float64 `json:"dry_eyes"`
	DryMouth      float64 `json:"dry_mouth"`
	GlandSwelling bool    `json:"gland_swelling"`
	DrySkin       float64 `json:"dry_skin"`
	DryCough      float64 `json:"dry_cough"`
}

func (SjogrensDetails) Disease() Disease { return Sjogrens }

func (details SjogrensDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyDryEyes:       details.DryEyes,
		KeyDryMouth:      details.DryMouth,
		KeyGlandSwelling: boolValue(details.GlandSwelling),
		KeyDrySkin:       details.DrySkin,
		KeyDryCough:      details.DryCough,
	}
}

type ThyroidDetails struct {
	RestingHeartRate float64 `json:"resting_heart_rate"`
	WeightLoss       float64 `json:"weight_loss"`
	Tremor           float64 `json:"tremor"`
	HeatIntolerance  bool    `json:"heat_intolerance"`
}

func (ThyroidDetails) Disease() Disease { return Thyroid }

func (details ThyroidDetails) Indicators() map[string]float64 {
	return map[string]float64{
		KeyRestingHeartRate: details.RestingHeartRate,
		KeyWeightLoss:       details.WeightLoss,
		KeyTremor:           details.Tremor,
		KeyHeatIntolerance:  boolValue(details.HeatIntolerance),
	}
}

// DecodeDetails decodes one disease sub-record from its stored JSON form.
func DecodeDetails(disease Disease, raw json.RawMessage) (Details, error) {
	var target Details
	switch disease {
	case RheumatoidArthritis:
		details := RheumatoidDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case Psoriasis:
		details := PsoriasisDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case Crohns:
		details := CrohnsDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case Type1Diabetes:
		details := DiabetesDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case MultipleSclerosis:
		details := SclerosisDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case Lupus:
		details := LupusDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case Sjogrens:
		details := SjogrensDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	case Thyroid:
		details := ThyroidDetails{}
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
		target = details
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDisease, string(disease))
	}
	return target, nil
}

// DecodeDetailsMap decodes every sub-record it can and returns the keys that
// failed alongside their errors.
func DecodeDetailsMap(raw map[string]json.RawMessage) (map[Disease]Details, map[string]error) {
	decoded := make(map[Disease]Details, len(raw))
	failures := make(map[string]error)
	for key, payload := range raw {
		disease, err := ParseDisease(key)
		if err != nil {
			failures[key] = err
			continue
		}
		if len(payload) == 0 || string(payload) == "null" {
			continue
		}
		details, err := DecodeDetails(disease, payload)
		if err != nil {
			failures[key] = err
			continue
		}
		decoded[disease] = details
	}
	return decoded, failures
}
