package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"
	"github.com/terraincognita07/flarewatch/internal/models"
	"github.com/terraincognita07/flarewatch/internal/risk"
	"gorm.io/datatypes"
)

var (
	ErrProfileLoadFailed      = errors.New("load profile failed")
	ErrProfileSaveFailed      = errors.New("save profile failed")
	ErrInvalidDiseaseSelected = errors.New("invalid disease selection")
	ErrInvalidSeverityProfile = errors.New("invalid severity profile")
)

const (
	minSelfSeverity = 1
	maxSelfSeverity = 10
)

type ProfileRepository interface {
	Load() (models.UserProfile, bool, error)
	Save(profile *models.UserProfile) error
}

type Profile struct {
	SelectedDiseases []risk.Disease `json:"selected_diseases"`
	SeverityProfile  map[string]int `json:"severity_profile"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (service *ProfileService) Get() (Profile, error) {
	stored, found, err := service.profiles.Load()
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	if !found {
		return Profile{SelectedDiseases: []risk.Disease{}, SeverityProfile: map[string]int{}}, nil
	}

	selected := make([]risk.Disease, 0, len(stored.SelectedDiseases))
	for _, raw := range stored.SelectedDiseases {
		disease, err := risk.ParseDisease(raw)
		if err != nil {
			log.Printf("profile: skip stored disease %q: %v", raw, err)
			continue
		}
		selected = append(selected, disease)
	}

	severity := map[string]int(stored.SeverityProfile.Data())
	if severity == nil {
		severity = map[string]int{}
	}
	updatedAt := stored.UpdatedAt
	return Profile{SelectedDiseases: selected, SeverityProfile: severity, UpdatedAt: &updatedAt}, nil
}

func (service *ProfileService) SelectedDiseases() ([]risk.Disease, error) {
	profile, err := service.Get()
	if err != nil {
		return nil, err
	}
	return profile.SelectedDiseases, nil
}

// Update replaces the disease selection and the self-assessed severity per
// disease. Severity entries must be 1-10 and refer to a known disease.
func (service *ProfileService) Update(selectedRaw []string, severity map[string]int) (Profile, error) {
	selected := make([]risk.Disease, 0, len(selectedRaw))
	for _, raw := range lo.Uniq(selectedRaw) {
		disease, err := risk.ParseDisease(raw)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %q", ErrInvalidDiseaseSelected, raw)
		}
		selected = append(selected, disease)
	}

	cleaned := make(models.SeverityProfile, len(severity))
	for key, value := range severity {
		disease, err := risk.ParseDisease(key)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: unknown disease %q", ErrInvalidSeverityProfile, key)
		}
		if value < minSelfSeverity || value > maxSelfSeverity {
			return Profile{}, fmt.Errorf("%w: %s severity %d", ErrInvalidSeverityProfile, key, value)
		}
		cleaned[string(disease)] = value
	}

	stored := models.UserProfile{
		SelectedDiseases: datatypes.JSONSlice[string](lo.Map(selected, func(disease risk.Disease, _ int) string { return string(disease) })),
		SeverityProfile:  datatypes.NewJSONType(cleaned),
	}
	if err := service.profiles.Save(&stored); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrProfileSaveFailed, err)
	}

	updatedAt := stored.UpdatedAt
	return Profile{SelectedDiseases: selected, SeverityProfile: map[string]int(cleaned), UpdatedAt: &updatedAt}, nil
}
