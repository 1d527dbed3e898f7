package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/flarewatch/internal/activity"
	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"github.com/terraincognita07/flarewatch/internal/models"
	"github.com/terraincognita07/flarewatch/internal/risk"
)

type recordingTracker struct {
	mu     sync.Mutex
	events []activity.Event
}

func (tracker *recordingTracker) Track(event activity.Event) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.events = append(tracker.events, event)
}

type stubSelection struct {
	diseases []risk.Disease
	err      error
}

func (selection stubSelection) SelectedDiseases() ([]risk.Disease, error) {
	return selection.diseases, selection.err
}

type stubObservationRepository struct {
	byDate map[string]models.SymptomObservation
	err    error
}

func newStubObservationRepository() *stubObservationRepository {
	return &stubObservationRepository{byDate: map[string]models.SymptomObservation{}}
}

func (repo *stubObservationRepository) Latest() (models.SymptomObservation, bool, error) {
	if repo.err != nil {
		return models.SymptomObservation{}, false, repo.err
	}
	latestKey := ""
	for key := range repo.byDate {
		if key > latestKey {
			latestKey = key
		}
	}
	if latestKey == "" {
		return models.SymptomObservation{}, false, nil
	}
	return repo.byDate[latestKey], true, nil
}

func (repo *stubObservationRepository) FindByDate(day time.Time) (models.SymptomObservation, bool, error) {
	record, ok := repo.byDate[day.Format("2006-01-02")]
	return record, ok, repo.err
}

func (repo *stubObservationRepository) ListAll() ([]models.SymptomObservation, error) {
	if repo.err != nil {
		return nil, repo.err
	}
	keys := make([]string, 0, len(repo.byDate))
	for key := range repo.byDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	records := make([]models.SymptomObservation, 0, len(keys))
	for _, key := range keys {
		records = append(records, repo.byDate[key])
	}
	return records, nil
}

func (repo *stubObservationRepository) DeleteByDate(day time.Time) (bool, error) {
	if repo.err != nil {
		return false, repo.err
	}
	key := day.Format("2006-01-02")
	_, ok := repo.byDate[key]
	delete(repo.byDate, key)
	return ok, nil
}

func (repo *stubObservationRepository) Upsert(observation *models.SymptomObservation) error {
	if repo.err != nil {
		return repo.err
	}
	repo.byDate[observation.Date.Format("2006-01-02")] = *observation
	return nil
}

type stubCollection[T any] struct {
	records   []T
	idOf      func(T) string
	setID     func(*T, string)
	listCalls int
	nextID    int
}

func (repo *stubCollection[T]) ListAll() ([]T, error) {
	repo.listCalls++
	return append([]T(nil), repo.records...), nil
}

func (repo *stubCollection[T]) Count() (int64, error) {
	return int64(len(repo.records)), nil
}

func (repo *stubCollection[T]) Create(record *T) error {
	repo.nextID++
	repo.setID(record, fmt.Sprintf("id-%d", repo.nextID))
	repo.records = append(repo.records, *record)
	return nil
}

func (repo *stubCollection[T]) DeleteByID(id string) (bool, error) {
	for index, record := range repo.records {
		if repo.idOf(record) == id {
			repo.records = append(repo.records[:index], repo.records[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubFoodRepository struct {
	stubCollection[models.FoodRecord]
}

func (repo *stubFoodRepository) ListEntries() ([]lifestyle.FoodRecord, error) {
	records, err := repo.ListAll()
	if err != nil {
		return nil, err
	}
	entries := make([]lifestyle.FoodRecord, 0, len(records))
	for _, record := range records {
		entry, err := record.Lifestyle()
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type stubSnapshotRepository struct {
	snapshots map[string]models.RiskSnapshot
	saves     int
}

func (repo *stubSnapshotRepository) FindByKind(kind string) (models.RiskSnapshot, bool, error) {
	snapshot, ok := repo.snapshots[kind]
	return snapshot, ok, nil
}

func (repo *stubSnapshotRepository) Save(snapshot *models.RiskSnapshot) error {
	repo.saves++
	repo.snapshots[snapshot.Kind] = *snapshot
	return nil
}

func (repo *stubSnapshotRepository) DeleteByKind(kind string) error {
	delete(repo.snapshots, kind)
	return nil
}

type lifestyleStubs struct {
	flares    *stubCollection[models.FlareRecord]
	stress    *stubCollection[models.StressRecord]
	foods     *stubFoodRepository
	sleep     *stubCollection[models.SleepRecord]
	snapshots *stubSnapshotRepository
}

func newLifestyleStubs() lifestyleStubs {
	return lifestyleStubs{
		flares: &stubCollection[models.FlareRecord]{
			idOf:  func(record models.FlareRecord) string { return record.ID },
			setID: func(record *models.FlareRecord, id string) { record.ID = id },
		},
		stress: &stubCollection[models.StressRecord]{
			idOf:  func(record models.StressRecord) string { return record.ID },
			setID: func(record *models.StressRecord, id string) { record.ID = id },
		},
		foods: &stubFoodRepository{stubCollection[models.FoodRecord]{
			idOf:  func(record models.FoodRecord) string { return record.ID },
			setID: func(record *models.FoodRecord, id string) { record.ID = id },
		}},
		sleep: &stubCollection[models.SleepRecord]{
			idOf:  func(record models.SleepRecord) string { return record.ID },
			setID: func(record *models.SleepRecord, id string) { record.ID = id },
		},
		snapshots: &stubSnapshotRepository{snapshots: map[string]models.RiskSnapshot{}},
	}
}

func (stubs lifestyleStubs) repositories() LifestyleRepositories {
	return LifestyleRepositories{
		Flares:    stubs.flares,
		Stress:    stubs.stress,
		Foods:     stubs.foods,
		Sleep:     stubs.sleep,
		Snapshots: stubs.snapshots,
	}
}

func mustDay(raw string) time.Time {
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return day
}
