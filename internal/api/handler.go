package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/flarewatch/internal/activity"
	"github.com/terraincognita07/flarewatch/internal/db"
	"github.com/terraincognita07/flarewatch/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	now          func() time.Time
	loginLimiter *attemptLimiter

	authService        *services.AuthService
	profileService     *services.ProfileService
	observationService *services.ObservationService
	lifestyleService   *services.LifestyleService
	indexService       *services.IndexService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, cookieSecure bool, tracker activity.Tracker) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if location == nil {
		location = time.Local
	}
	if tracker == nil {
		tracker = activity.LogTracker{}
	}

	repositories := db.NewRepositories(database)
	profileService := services.NewProfileService(repositories.Profiles)
	observationService := services.NewObservationService(repositories.Observations, profileService, tracker, location)
	lifestyleService := services.NewLifestyleService(services.LifestyleRepositories{
		Flares:    repositories.Flares,
		Stress:    repositories.Stress,
		Foods:     repositories.Foods,
		Sleep:     repositories.Sleep,
		Snapshots: repositories.Snapshots,
	}, tracker, location)

	return &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		now:          time.Now,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),

		authService:        services.NewAuthService(repositories.Users),
		profileService:     profileService,
		observationService: observationService,
		lifestyleService:   lifestyleService,
		indexService:       services.NewIndexService(observationService, lifestyleService),
	}, nil
}
