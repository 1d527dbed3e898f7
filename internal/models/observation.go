package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/terraincognita07/flarewatch/internal/risk"
	"gorm.io/datatypes"
)

type SymptomObservation struct {
	ID               uint           `gorm:"primaryKey"`
	Date             time.Time      `gorm:"type:date;not null;uniqueIndex"`
	Fatigue          float64        `gorm:"not null;default:0"`
	BodyTemperature  float64        `gorm:"not null;default:0"`
	Myalgia          float64        `gorm:"not null;default:0"`
	Anxiety          float64        `gorm:"not null;default:0"`
	Depression       float64        `gorm:"not null;default:0"`
	Stress           float64        `gorm:"not null;default:0"`
	SleepDisturbance float64        `gorm:"not null;default:0"`
	AppetiteLoss     bool           `gorm:"not null;default:false"`
	AbdominalPain    float64        `gorm:"not null;default:0"`
	JointPain        float64        `gorm:"not null;default:0"`
	FunctionLoss     float64        `gorm:"not null;default:0"`
	SkinPain         float64        `gorm:"not null;default:0"`
	Itchiness        float64        `gorm:"not null;default:0"`
	Notes            string         `gorm:"not null;default:''"`
	DiseaseDetails   datatypes.JSON `gorm:"column:disease_details;not null;default:'{}'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewSymptomObservation flattens a core observation into its stored form.
func NewSymptomObservation(observation risk.Observation) (SymptomObservation, error) {
	details := make(map[string]risk.Details, len(observation.Details))
	for disease, entry := range observation.Details {
		if entry != nil {
			details[string(disease)] = entry
		}
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return SymptomObservation{}, fmt.Errorf("encode disease details: %w", err)
	}

	return SymptomObservation{
		Date:             observation.Date,
		Fatigue:          observation.Fatigue,
		BodyTemperature:  observation.BodyTemperature,
		Myalgia:          observation.Myalgia,
		Anxiety:          observation.Anxiety,
		Depression:       observation.Depression,
		Stress:           observation.Stress,
		SleepDisturbance: observation.SleepDisturbance,
		AppetiteLoss:     observation.AppetiteLoss,
		AbdominalPain:    observation.AbdominalPain,
		JointPain:        observation.JointPain,
		FunctionLoss:     observation.FunctionLoss,
		SkinPain:         observation.SkinPain,
		Itchiness:        observation.Itchiness,
		Notes:            observation.Notes,
		DiseaseDetails:   datatypes.JSON(encoded),
	}, nil
}

// Observation decodes the stored record. Sub-records that fail to decode are
// dropped and reported by disease key; a broken details column drops all of
// them.
func (record SymptomObservation) Observation() (risk.Observation, map[string]error) {
	observation := risk.Observation{
		Date:             record.Date,
		Fatigue:          record.Fatigue,
		BodyTemperature:  record.BodyTemperature,
		Myalgia:          record.Myalgia,
		Anxiety:          record.Anxiety,
		Depression:       record.Depression,
		Stress:           record.Stress,
		SleepDisturbance: record.SleepDisturbance,
		AppetiteLoss:     record.AppetiteLoss,
		AbdominalPain:    record.AbdominalPain,
		JointPain:        record.JointPain,
		FunctionLoss:     record.FunctionLoss,
		SkinPain:         record.SkinPain,
		Itchiness:        record.Itchiness,
		Notes:            record.Notes,
		Details:          map[risk.Disease]risk.Details{},
	}

	if len(record.DiseaseDetails) == 0 {
		return observation, nil
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(record.DiseaseDetails, &raw); err != nil {
		return observation, map[string]error{"disease_details": err}
	}

	details, failures := risk.DecodeDetailsMap(raw)
	observation.Details = details
	if len(failures) == 0 {
		return observation, nil
	}
	return observation, failures
}
