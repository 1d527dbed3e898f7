package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/terraincognita07/flarewatch/internal/activity"
	"github.com/terraincognita07/flarewatch/internal/models"
	"github.com/terraincognita07/flarewatch/internal/risk"
)

var (
	ErrObservationLoadFailed = errors.New("load observation failed")
	ErrObservationSaveFailed = errors.New("save observation failed")
	ErrObservationInvalid    = errors.New("invalid observation")
	ErrObservationDelete     = errors.New("delete observation failed")
)

const (
	noObservationMessage = "No symptom observation recorded yet."
	topContributorCount  = 3
)

type ObservationRepository interface {
	ListAll() ([]models.SymptomObservation, error)
	Latest() (models.SymptomObservation, bool, error)
	FindByDate(day time.Time) (models.SymptomObservation, bool, error)
	Upsert(observation *models.SymptomObservation) error
	DeleteByDate(day time.Time) (bool, error)
}

type DiseaseSelection interface {
	SelectedDiseases() ([]risk.Disease, error)
}

// DiseaseRisk is the assessment of one disease, or the reason it could not
// be scored.
type DiseaseRisk struct {
	Disease         risk.Disease        `json:"disease"`
	Insufficient    bool                `json:"insufficient_data"`
	Message         string              `json:"message,omitempty"`
	Assessment      *risk.Assessment    `json:"assessment,omitempty"`
	TopContributors []risk.Contribution `json:"top_contributors,omitempty"`
}

type ProdromalReport struct {
	Insufficient bool                  `json:"insufficient_data"`
	Message      string                `json:"message,omitempty"`
	Date         *time.Time            `json:"date,omitempty"`
	Result       *risk.ProdromalResult `json:"result,omitempty"`
}

type ObservationService struct {
	observations ObservationRepository
	selection    DiseaseSelection
	tracker      activity.Tracker
	location     *time.Location
}

func NewObservationService(observations ObservationRepository, selection DiseaseSelection, tracker activity.Tracker, location *time.Location) *ObservationService {
	if tracker == nil {
		tracker = activity.LogTracker{}
	}
	if location == nil {
		location = time.UTC
	}
	return &ObservationService{
		observations: observations,
		selection:    selection,
		tracker:      tracker,
		location:     location,
	}
}

// Save stores the observation for its calendar day, replacing any earlier
// observation of that day.
func (service *ObservationService) Save(observation risk.Observation, now time.Time) (risk.Observation, error) {
	if observation.Date.IsZero() {
		return risk.Observation{}, fmt.Errorf("%w: missing date", ErrObservationInvalid)
	}
	observation.Date = StorageDay(observation.Date, time.UTC)
	for disease, details := range observation.Details {
		if details == nil {
			delete(observation.Details, disease)
			continue
		}
		if details.Disease() != disease {
			return risk.Observation{}, fmt.Errorf("%w: %s record filed under %s", ErrObservationInvalid, details.Disease(), disease)
		}
	}

	record, err := models.NewSymptomObservation(observation)
	if err != nil {
		return risk.Observation{}, fmt.Errorf("%w: %v", ErrObservationSaveFailed, err)
	}
	if err := service.observations.Upsert(&record); err != nil {
		return risk.Observation{}, fmt.Errorf("%w: %v", ErrObservationSaveFailed, err)
	}

	ref := observation.Date.Format("2006-01-02")
	service.tracker.Track(activity.Event{Type: activity.ObservationSaved, At: now, Ref: ref})
	return observation, nil
}

// History lists every stored observation, oldest first.
func (service *ObservationService) History() ([]risk.Observation, error) {
	records, err := service.observations.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObservationLoadFailed, err)
	}
	observations := make([]risk.Observation, 0, len(records))
	for _, record := range records {
		observations = append(observations, decodeObservation(record))
	}
	return observations, nil
}

// Delete removes the observation of one calendar day. It reports false when
// that day had none.
func (service *ObservationService) Delete(day time.Time) (bool, error) {
	deleted, err := service.observations.DeleteByDate(StorageDay(day, time.UTC))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrObservationDelete, err)
	}
	return deleted, nil
}

func (service *ObservationService) Latest() (risk.Observation, bool, error) {
	record, found, err := service.observations.Latest()
	if err != nil {
		return risk.Observation{}, false, fmt.Errorf("%w: %v", ErrObservationLoadFailed, err)
	}
	if !found {
		return risk.Observation{}, false, nil
	}
	return decodeObservation(record), true, nil
}

func (service *ObservationService) FindByDate(day time.Time) (risk.Observation, bool, error) {
	record, found, err := service.observations.FindByDate(StorageDay(day, time.UTC))
	if err != nil {
		return risk.Observation{}, false, fmt.Errorf("%w: %v", ErrObservationLoadFailed, err)
	}
	if !found {
		return risk.Observation{}, false, nil
	}
	return decodeObservation(record), true, nil
}

func decodeObservation(record models.SymptomObservation) risk.Observation {
	observation, failures := record.Observation()
	for key, err := range failures {
		log.Printf("observations: skip malformed %s details for %s: %v", key, record.Date.Format("2006-01-02"), err)
	}
	return observation
}

// AssessDisease scores the latest observation for one disease. A missing
// observation or sub-record yields an insufficient result, not an error.
func (service *ObservationService) AssessDisease(disease risk.Disease) (DiseaseRisk, error) {
	if _, err := disease.Config(); err != nil {
		return DiseaseRisk{}, err
	}

	observation, found, err := service.Latest()
	if err != nil {
		return DiseaseRisk{}, err
	}
	if !found {
		return DiseaseRisk{Disease: disease, Insufficient: true, Message: noObservationMessage}, nil
	}
	return assessObservation(observation, disease)
}

func (service *ObservationService) AssessSelected() ([]DiseaseRisk, error) {
	diseases, err := service.selection.SelectedDiseases()
	if err != nil {
		return nil, err
	}

	observation, found, err := service.Latest()
	if err != nil {
		return nil, err
	}

	results := make([]DiseaseRisk, 0, len(diseases))
	for _, disease := range diseases {
		if !found {
			results = append(results, DiseaseRisk{Disease: disease, Insufficient: true, Message: noObservationMessage})
			continue
		}
		result, err := assessObservation(observation, disease)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func assessObservation(observation risk.Observation, disease risk.Disease) (DiseaseRisk, error) {
	assessment, err := risk.Assess(observation, disease)
	if errors.Is(err, risk.ErrInsufficientData) {
		return DiseaseRisk{
			Disease:      disease,
			Insufficient: true,
			Message:      fmt.Sprintf("The latest observation has no %s details.", disease),
		}, nil
	}
	if err != nil {
		return DiseaseRisk{}, err
	}
	result := DiseaseRisk{Disease: disease, Assessment: &assessment}
	if len(assessment.Contributions) > 0 {
		result.TopContributors = risk.TopContributors(risk.RiskResult{
			Score:         assessment.Score,
			Contributions: assessment.Contributions,
		}, topContributorCount)
	}
	return result, nil
}

func (service *ObservationService) Prodromal() (ProdromalReport, error) {
	diseases, err := service.selection.SelectedDiseases()
	if err != nil {
		return ProdromalReport{}, err
	}

	observation, found, err := service.Latest()
	if err != nil {
		return ProdromalReport{}, err
	}
	if !found {
		return ProdromalReport{Insufficient: true, Message: noObservationMessage}, nil
	}

	result := risk.PredictProdromal(observation, diseases)
	date := observation.Date
	return ProdromalReport{Date: &date, Result: &result}, nil
}

// PredictUV scores a UV forecast. Without an explicit exposure the lupus sun
// exposure of the latest observation is used.
func (service *ObservationService) PredictUV(forecast []risk.UVDay, exposureMinutes *float64) (risk.UVPrediction, error) {
	exposure := 0.0
	if exposureMinutes != nil {
		exposure = *exposureMinutes
	} else {
		observation, found, err := service.Latest()
		if err != nil {
			return risk.UVPrediction{}, err
		}
		if found {
			if details, ok := observation.Details[risk.Lupus].(risk.LupusDetails); ok {
				exposure = details.SunExposureMinutes
			}
		}
	}
	return risk.PredictUVFlare(forecast, exposure), nil
}
