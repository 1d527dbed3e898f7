package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FlareRecord struct {
	ID           string                      `gorm:"primaryKey;size:36"`
	Date         time.Time                   `gorm:"type:date;not null;index"`
	Severity     int                         `gorm:"not null;default:0"`
	Symptoms     datatypes.JSONSlice[string] `gorm:"not null;default:'[]'"`
	DurationDays int                         `gorm:"not null;default:0"`
	Notes        string
	CreatedAt    time.Time
}

func (record *FlareRecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}

func (record FlareRecord) Lifestyle() lifestyle.FlareRecord {
	symptoms := []string(record.Symptoms)
	if symptoms == nil {
		symptoms = []string{}
	}
	return lifestyle.FlareRecord{
		ID:           record.ID,
		Date:         record.Date,
		Severity:     record.Severity,
		Symptoms:     symptoms,
		DurationDays: record.DurationDays,
		Notes:        record.Notes,
	}
}

type StressRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Level     float64   `gorm:"not null"`
	Notes     string
	CreatedAt time.Time
}

func (record *StressRecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}

func (record StressRecord) Lifestyle() lifestyle.StressRecord {
	return lifestyle.StressRecord{ID: record.ID, Date: record.Date, Level: record.Level, Notes: record.Notes}
}

type FoodRecord struct {
	ID            string         `gorm:"primaryKey;size:36"`
	Timestamp     time.Time      `gorm:"not null;index"`
	Foods         datatypes.JSON `gorm:"not null"`
	SymptomsAfter datatypes.JSON `gorm:"not null;default:'null'"`
	CreatedAt     time.Time
}

func (record *FoodRecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}

func NewFoodRecord(entry lifestyle.FoodRecord) (FoodRecord, error) {
	foods := entry.Foods
	if foods == nil {
		foods = []string{}
	}
	encodedFoods, err := json.Marshal(foods)
	if err != nil {
		return FoodRecord{}, fmt.Errorf("encode foods: %w", err)
	}

	record := FoodRecord{
		ID:            entry.ID,
		Timestamp:     entry.Timestamp,
		Foods:         datatypes.JSON(encodedFoods),
		SymptomsAfter: datatypes.JSON("null"),
	}
	if entry.SymptomsAfter != nil {
		encodedSymptoms, err := json.Marshal(entry.SymptomsAfter)
		if err != nil {
			return FoodRecord{}, fmt.Errorf("encode symptoms: %w", err)
		}
		record.SymptomsAfter = datatypes.JSON(encodedSymptoms)
	}
	return record, nil
}

// Lifestyle decodes the JSON columns; a malformed column makes the whole
// record unusable.
func (record FoodRecord) Lifestyle() (lifestyle.FoodRecord, error) {
	entry := lifestyle.FoodRecord{ID: record.ID, Timestamp: record.Timestamp, Foods: []string{}}
	if len(record.Foods) > 0 {
		if err := json.Unmarshal(record.Foods, &entry.Foods); err != nil {
			return lifestyle.FoodRecord{}, fmt.Errorf("decode foods: %w", err)
		}
	}
	if len(record.SymptomsAfter) > 0 && string(record.SymptomsAfter) != "null" {
		symptoms := lifestyle.PostMealSymptoms{}
		if err := json.Unmarshal(record.SymptomsAfter, &symptoms); err != nil {
			return lifestyle.FoodRecord{}, fmt.Errorf("decode symptoms: %w", err)
		}
		entry.SymptomsAfter = &symptoms
	}
	return entry, nil
}

type SleepRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Hours     float64   `gorm:"not null"`
	Quality   int       `gorm:"not null;default:0"`
	Bedtime   string    `gorm:"not null;default:''"`
	WakeTime  string    `gorm:"not null;default:''"`
	CreatedAt time.Time
}

func (record *SleepRecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}

func (record SleepRecord) Lifestyle() lifestyle.SleepRecord {
	return lifestyle.SleepRecord{
		ID:       record.ID,
		Date:     record.Date,
		Hours:    record.Hours,
		Quality:  record.Quality,
		Bedtime:  record.Bedtime,
		WakeTime: record.WakeTime,
	}
}
