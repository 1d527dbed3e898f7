package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Observations *ObservationRepository
	Flares       *FlareRepository
	Stress       *StressRepository
	Foods        *FoodRepository
	Sleep        *SleepRepository
	Profiles     *ProfileRepository
	Snapshots    *SnapshotRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Observations: NewObservationRepository(database),
		Flares:       NewFlareRepository(database),
		Stress:       NewStressRepository(database),
		Foods:        NewFoodRepository(database),
		Sleep:        NewSleepRepository(database),
		Profiles:     NewProfileRepository(database),
		Snapshots:    NewSnapshotRepository(database),
	}
}
