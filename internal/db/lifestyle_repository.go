package db

import (
	"log"

	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"github.com/terraincognita07/flarewatch/internal/models"
	"gorm.io/gorm"
)

type FlareRepository struct {
	collection[models.FlareRecord]
}

func NewFlareRepository(database *gorm.DB) *FlareRepository {
	return &FlareRepository{collection[models.FlareRecord]{database: database, order: "date ASC, id ASC"}}
}

type StressRepository struct {
	collection[models.StressRecord]
}

func NewStressRepository(database *gorm.DB) *StressRepository {
	return &StressRepository{collection[models.StressRecord]{database: database, order: "date ASC, id ASC"}}
}

type FoodRepository struct {
	collection[models.FoodRecord]
}

func NewFoodRepository(database *gorm.DB) *FoodRepository {
	return &FoodRepository{collection[models.FoodRecord]{database: database, order: "timestamp ASC, id ASC"}}
}

// ListEntries decodes every stored food record, skipping and logging those
// whose JSON columns are malformed.
func (repo *FoodRepository) ListEntries() ([]lifestyle.FoodRecord, error) {
	records, err := repo.ListAll()
	if err != nil {
		return nil, err
	}

	entries := make([]lifestyle.FoodRecord, 0, len(records))
	for _, record := range records {
		entry, err := record.Lifestyle()
		if err != nil {
			log.Printf("db: skip malformed food record %s: %v", record.ID, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type SleepRepository struct {
	collection[models.SleepRecord]
}

func NewSleepRepository(database *gorm.DB) *SleepRepository {
	return &SleepRepository{collection[models.SleepRecord]{database: database, order: "date ASC, id ASC"}}
}
