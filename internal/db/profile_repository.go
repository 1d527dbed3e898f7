package db

import (
	"github.com/terraincognita07/flarewatch/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) Load() (models.UserProfile, bool, error) {
	profile := models.UserProfile{}
	result := repo.database.Where("id = ?", models.ProfileID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.UserProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserProfile{}, false, nil
	}
	return profile, true, nil
}

func (repo *ProfileRepository) Save(profile *models.UserProfile) error {
	profile.ID = models.ProfileID
	return repo.database.Save(profile).Error
}

type SnapshotRepository struct {
	database *gorm.DB
}

func NewSnapshotRepository(database *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{database: database}
}

func (repo *SnapshotRepository) FindByKind(kind string) (models.RiskSnapshot, bool, error) {
	snapshot := models.RiskSnapshot{}
	result := repo.database.Where("kind = ?", kind).Limit(1).Find(&snapshot)
	if result.Error != nil {
		return models.RiskSnapshot{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.RiskSnapshot{}, false, nil
	}
	return snapshot, true, nil
}

func (repo *SnapshotRepository) Save(snapshot *models.RiskSnapshot) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"signature", "payload", "computed_at"}),
	}).Create(snapshot).Error
}

func (repo *SnapshotRepository) DeleteByKind(kind string) error {
	return repo.database.Where("kind = ?", kind).Delete(&models.RiskSnapshot{}).Error
}
