package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"github.com/terraincognita07/flarewatch/internal/risk"
)

const (
	dayLayout       = "2006-01-02"
	timestampLayout = time.RFC3339
)

type credentialsPayload struct {
	Email      string `json:"email" validate:"required,max=254"`
	Password   string `json:"password" validate:"required,max=128"`
	RememberMe bool   `json:"remember_me"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=128"`
}

type profilePayload struct {
	SelectedDiseases []string       `json:"selected_diseases" validate:"max=8,dive,required"`
	SeverityProfile  map[string]int `json:"severity_profile" validate:"omitempty,dive,gte=1,lte=10"`
}

// observationPayload carries the generic measurements of one day. Indicator
// values outside their range are clamped by the scoring models, so only
// negative numbers are rejected here.
type observationPayload struct {
	Fatigue          float64                    `json:"fatigue" validate:"gte=0"`
	BodyTemperature  float64                    `json:"body_temperature" validate:"omitempty,gte=30,lte=45"`
	Myalgia          float64                    `json:"myalgia" validate:"gte=0"`
	Anxiety          float64                    `json:"anxiety" validate:"gte=0"`
	Depression       float64                    `json:"depression" validate:"gte=0"`
	Stress           float64                    `json:"stress" validate:"gte=0"`
	SleepDisturbance float64                    `json:"sleep_disturbance" validate:"gte=0"`
	AppetiteLoss     bool                       `json:"appetite_loss"`
	AbdominalPain    float64                    `json:"abdominal_pain" validate:"gte=0"`
	JointPain        float64                    `json:"joint_pain" validate:"gte=0"`
	FunctionLoss     float64                    `json:"function_loss" validate:"gte=0"`
	SkinPain         float64                    `json:"skin_pain" validate:"gte=0"`
	Itchiness        float64                    `json:"itchiness" validate:"gte=0"`
	Notes            string                     `json:"notes" validate:"max=2000"`
	Details          map[string]json.RawMessage `json:"details" validate:"max=8"`
}

func (payload observationPayload) observation(day time.Time) (risk.Observation, error) {
	observation := risk.Observation{
		Date:             day,
		Fatigue:          payload.Fatigue,
		BodyTemperature:  payload.BodyTemperature,
		Myalgia:          payload.Myalgia,
		Anxiety:          payload.Anxiety,
		Depression:       payload.Depression,
		Stress:           payload.Stress,
		SleepDisturbance: payload.SleepDisturbance,
		AppetiteLoss:     payload.AppetiteLoss,
		AbdominalPain:    payload.AbdominalPain,
		JointPain:        payload.JointPain,
		FunctionLoss:     payload.FunctionLoss,
		SkinPain:         payload.SkinPain,
		Itchiness:        payload.Itchiness,
		Notes:            payload.Notes,
		Details:          make(map[risk.Disease]risk.Details, len(payload.Details)),
	}

	for key, raw := range payload.Details {
		disease, err := risk.ParseDisease(key)
		if err != nil {
			return risk.Observation{}, fmt.Errorf("unknown disease %q", key)
		}
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		details, err := risk.DecodeDetails(disease, raw)
		if err != nil {
			return risk.Observation{}, fmt.Errorf("invalid %s details", disease)
		}
		observation.Details[disease] = details
	}
	return observation, nil
}

type observationResponse struct {
	risk.Observation
	Details          map[risk.Disease]risk.Details `json:"details"`
	ReportedDiseases []risk.Disease                `json:"reported_diseases"`
}

func newObservationResponse(observation risk.Observation) observationResponse {
	details := observation.Details
	if details == nil {
		details = map[risk.Disease]risk.Details{}
	}
	return observationResponse{
		Observation:      observation,
		Details:          details,
		ReportedDiseases: observation.DetailDiseases(),
	}
}

type flarePayload struct {
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Severity     int      `json:"severity" validate:"gte=1,lte=10"`
	Symptoms     []string `json:"symptoms" validate:"max=32,dive,max=64"`
	DurationDays int      `json:"duration_days" validate:"gte=0,lte=365"`
	Notes        string   `json:"notes" validate:"max=2000"`
}

type stressPayload struct {
	Date  string  `json:"date" validate:"required,datetime=2006-01-02"`
	Level float64 `json:"level" validate:"gte=0,lte=10"`
	Notes string  `json:"notes" validate:"max=2000"`
}

type postMealPayload struct {
	OnsetHours  float64  `json:"onset_hours" validate:"gte=0,lte=72"`
	Symptoms    []string `json:"symptoms" validate:"max=32,dive,max=64"`
	Severity    int      `json:"severity" validate:"gte=0,lte=10"`
	Description string   `json:"description" validate:"max=500"`
}

type foodPayload struct {
	Timestamp     string           `json:"timestamp" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Foods         []string         `json:"foods" validate:"required,min=1,max=32,dive,max=64"`
	SymptomsAfter *postMealPayload `json:"symptoms_after" validate:"omitempty"`
}

func (payload foodPayload) record() (lifestyle.FoodRecord, error) {
	timestamp, err := time.Parse(timestampLayout, payload.Timestamp)
	if err != nil {
		return lifestyle.FoodRecord{}, err
	}
	entry := lifestyle.FoodRecord{Timestamp: timestamp, Foods: payload.Foods}
	if payload.SymptomsAfter != nil {
		entry.SymptomsAfter = &lifestyle.PostMealSymptoms{
			OnsetHours:  payload.SymptomsAfter.OnsetHours,
			Symptoms:    payload.SymptomsAfter.Symptoms,
			Severity:    payload.SymptomsAfter.Severity,
			Description: payload.SymptomsAfter.Description,
		}
	}
	return entry, nil
}

type sleepPayload struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Hours    float64 `json:"hours" validate:"gte=0,lte=24"`
	Quality  int     `json:"quality" validate:"gte=0,lte=10"`
	Bedtime  string  `json:"bedtime" validate:"omitempty,datetime=15:04"`
	WakeTime string  `json:"wake_time" validate:"omitempty,datetime=15:04"`
}

type uvSlotPayload struct {
	TimeRange string   `json:"time_range" validate:"required,oneof=06-09 09-12 12-15 15-18"`
	Index     *float64 `json:"index" validate:"omitempty,gte=0,lte=20"`
	Status    string   `json:"status" validate:"omitempty,oneof=low normal high veryHigh danger"`
}

type uvDayPayload struct {
	Date  string          `json:"date" validate:"required,datetime=2006-01-02"`
	Slots []uvSlotPayload `json:"slots" validate:"required,min=1,max=4,dive"`
}

type uvPayload struct {
	Forecast        []uvDayPayload `json:"forecast" validate:"required,min=1,max=2,dive"`
	ExposureMinutes *float64       `json:"exposure_minutes" validate:"omitempty,gte=0,lte=1440"`
}

// forecast converts the payload; a slot without an explicit status is
// classified from its index.
func (payload uvPayload) forecast() ([]risk.UVDay, error) {
	days := make([]risk.UVDay, 0, len(payload.Forecast))
	for _, day := range payload.Forecast {
		slots := make([]risk.UVSlot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			if slot.Index == nil && slot.Status == "" {
				return nil, fmt.Errorf("slot %s %s needs an index or a status", day.Date, slot.TimeRange)
			}
			converted := risk.UVSlot{TimeRange: slot.TimeRange, Status: risk.UVStatus(slot.Status)}
			if slot.Index != nil {
				converted.Index = *slot.Index
				if slot.Status == "" {
					converted.Status = risk.ClassifyUVIndex(*slot.Index)
				}
			}
			slots = append(slots, converted)
		}
		days = append(days, risk.UVDay{Date: day.Date, Slots: slots})
	}
	return days, nil
}
