package db

import (
	"time"

	"github.com/terraincognita07/flarewatch/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ObservationRepository struct {
	database *gorm.DB
}

func NewObservationRepository(database *gorm.DB) *ObservationRepository {
	return &ObservationRepository{database: database}
}

func (repo *ObservationRepository) ListAll() ([]models.SymptomObservation, error) {
	observations := make([]models.SymptomObservation, 0)
	if err := repo.database.Order("date ASC").Find(&observations).Error; err != nil {
		return nil, err
	}
	return observations, nil
}

func (repo *ObservationRepository) Latest() (models.SymptomObservation, bool, error) {
	observation := models.SymptomObservation{}
	result := repo.database.Order("date DESC").Limit(1).Find(&observation)
	if result.Error != nil {
		return models.SymptomObservation{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomObservation{}, false, nil
	}
	return observation, true, nil
}

func (repo *ObservationRepository) FindByDate(day time.Time) (models.SymptomObservation, bool, error) {
	observation := models.SymptomObservation{}
	result := repo.database.Where("date = ?", day).Limit(1).Find(&observation)
	if result.Error != nil {
		return models.SymptomObservation{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomObservation{}, false, nil
	}
	return observation, true, nil
}

// Upsert inserts the observation or overwrites the one stored for the same
// date.
func (repo *ObservationRepository) Upsert(observation *models.SymptomObservation) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"fatigue",
			"body_temperature",
			"myalgia",
			"anxiety",
			"depression",
			"stress",
			"sleep_disturbance",
			"appetite_loss",
			"abdominal_pain",
			"joint_pain",
			"function_loss",
			"skin_pain",
			"itchiness",
			"notes",
			"disease_details",
			"updated_at",
		}),
	}).Create(observation).Error
}

func (repo *ObservationRepository) DeleteByDate(day time.Time) (bool, error) {
	result := repo.database.Where("date = ?", day).Delete(&models.SymptomObservation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
