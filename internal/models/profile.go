package models

import (
	"time"

	"gorm.io/datatypes"
)

const ProfileID = 1

// SeverityProfile holds the self-assessed typical flare severity (1-10) per
// disease. It is display data only.
type SeverityProfile map[string]int

type UserProfile struct {
	ID               uint                                `gorm:"primaryKey"`
	SelectedDiseases datatypes.JSONSlice[string]         `gorm:"not null"`
	SeverityProfile  datatypes.JSONType[SeverityProfile] `gorm:"not null"`
	UpdatedAt        time.Time
}

const SnapshotLifestyle = "lifestyle"

// RiskSnapshot caches a derived analysis together with the record-count
// signature it was computed from.
type RiskSnapshot struct {
	ID         uint           `gorm:"primaryKey"`
	Kind       string         `gorm:"not null;uniqueIndex"`
	Signature  string         `gorm:"not null"`
	Payload    datatypes.JSON `gorm:"not null"`
	ComputedAt time.Time      `gorm:"not null"`
}
