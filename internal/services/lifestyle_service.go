package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/terraincognita07/flarewatch/internal/activity"
	"github.com/terraincognita07/flarewatch/internal/lifestyle"
	"github.com/terraincognita07/flarewatch/internal/models"
	"gorm.io/datatypes"
)

var (
	ErrLifestyleLoadFailed   = errors.New("load lifestyle records failed")
	ErrLifestyleSaveFailed   = errors.New("save lifestyle record failed")
	ErrLifestyleDeleteFailed = errors.New("delete lifestyle record failed")
	ErrLifestyleInvalid      = errors.New("invalid lifestyle record")
	ErrRecordNotFound        = errors.New("record not found")
)

const (
	minFlareSeverity = 1
	maxFlareSeverity = 10
	clockLayout      = "15:04"
)

type FlareRepository interface {
	ListAll() ([]models.FlareRecord, error)
	Count() (int64, error)
	Create(record *models.FlareRecord) error
	DeleteByID(id string) (bool, error)
}

type StressRepository interface {
	ListAll() ([]models.StressRecord, error)
	Count() (int64, error)
	Create(record *models.StressRecord) error
	DeleteByID(id string) (bool, error)
}

type FoodRepository interface {
	ListEntries() ([]lifestyle.FoodRecord, error)
	Count() (int64, error)
	Create(record *models.FoodRecord) error
	DeleteByID(id string) (bool, error)
}

type SleepRepository interface {
	ListAll() ([]models.SleepRecord, error)
	Count() (int64, error)
	Create(record *models.SleepRecord) error
	DeleteByID(id string) (bool, error)
}

type SnapshotRepository interface {
	FindByKind(kind string) (models.RiskSnapshot, bool, error)
	Save(snapshot *models.RiskSnapshot) error
	DeleteByKind(kind string) error
}

type LifestyleRepositories struct {
	Flares    FlareRepository
	Stress    StressRepository
	Foods     FoodRepository
	Sleep     SleepRepository
	Snapshots SnapshotRepository
}

type LifestyleService struct {
	flares    FlareRepository
	stress    StressRepository
	foods     FoodRepository
	sleep     SleepRepository
	snapshots SnapshotRepository
	tracker   activity.Tracker
	location  *time.Location
}

func NewLifestyleService(repositories LifestyleRepositories, tracker activity.Tracker, location *time.Location) *LifestyleService {
	if tracker == nil {
		tracker = activity.LogTracker{}
	}
	if location == nil {
		location = time.UTC
	}
	return &LifestyleService{
		flares:    repositories.Flares,
		stress:    repositories.Stress,
		foods:     repositories.Foods,
		sleep:     repositories.Sleep,
		snapshots: repositories.Snapshots,
		tracker:   tracker,
		location:  location,
	}
}

func (service *LifestyleService) ListFlares() ([]lifestyle.FlareRecord, error) {
	records, err := service.flares.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLifestyleLoadFailed, err)
	}
	return lo.Map(records, func(record models.FlareRecord, _ int) lifestyle.FlareRecord { return record.Lifestyle() }), nil
}

// AddFlare requires a severity from 1 to 10; symptom tags are normalised like
// food tags.
func (service *LifestyleService) AddFlare(entry lifestyle.FlareRecord, now time.Time) (lifestyle.FlareRecord, error) {
	if entry.Date.IsZero() {
		return lifestyle.FlareRecord{}, fmt.Errorf("%w: missing flare date", ErrLifestyleInvalid)
	}
	if entry.Severity < minFlareSeverity || entry.Severity > maxFlareSeverity {
		return lifestyle.FlareRecord{}, fmt.Errorf("%w: flare severity must be between %d and %d", ErrLifestyleInvalid, minFlareSeverity, maxFlareSeverity)
	}
	if entry.DurationDays < 0 {
		return lifestyle.FlareRecord{}, fmt.Errorf("%w: negative flare duration", ErrLifestyleInvalid)
	}
	record := models.FlareRecord{
		Date:         StorageDay(entry.Date, time.UTC),
		Severity:     entry.Severity,
		Symptoms:     normalizeTags(entry.Symptoms),
		DurationDays: entry.DurationDays,
		Notes:        strings.TrimSpace(entry.Notes),
	}
	if err := service.flares.Create(&record); err != nil {
		return lifestyle.FlareRecord{}, fmt.Errorf("%w: %v", ErrLifestyleSaveFailed, err)
	}
	service.recorded(activity.FlareLogged, record.ID, now)
	return record.Lifestyle(), nil
}

func (service *LifestyleService) DeleteFlare(id string) error {
	return service.deleted(service.flares.DeleteByID(id))
}

func (service *LifestyleService) ListStress() ([]lifestyle.StressRecord, error) {
	records, err := service.stress.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLifestyleLoadFailed, err)
	}
	return lo.Map(records, func(record models.StressRecord, _ int) lifestyle.StressRecord { return record.Lifestyle() }), nil
}

func (service *LifestyleService) AddStress(entry lifestyle.StressRecord, now time.Time) (lifestyle.StressRecord, error) {
	if entry.Date.IsZero() {
		return lifestyle.StressRecord{}, fmt.Errorf("%w: missing stress date", ErrLifestyleInvalid)
	}
	record := models.StressRecord{
		Date:  StorageDay(entry.Date, time.UTC),
		Level: entry.Level,
		Notes: strings.TrimSpace(entry.Notes),
	}
	if err := service.stress.Create(&record); err != nil {
		return lifestyle.StressRecord{}, fmt.Errorf("%w: %v", ErrLifestyleSaveFailed, err)
	}
	service.recorded(activity.StressLogged, record.ID, now)
	return record.Lifestyle(), nil
}

func (service *LifestyleService) DeleteStress(id string) error {
	return service.deleted(service.stress.DeleteByID(id))
}

func (service *LifestyleService) ListFood() ([]lifestyle.FoodRecord, error) {
	entries, err := service.foods.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLifestyleLoadFailed, err)
	}
	return entries, nil
}

// AddFood normalises the food tags; a meal needs at least one non-empty tag.
func (service *LifestyleService) AddFood(entry lifestyle.FoodRecord, now time.Time) (lifestyle.FoodRecord, error) {
	if entry.Timestamp.IsZero() {
		return lifestyle.FoodRecord{}, fmt.Errorf("%w: missing meal time", ErrLifestyleInvalid)
	}
	tags := normalizeTags(entry.Foods)
	if len(tags) == 0 {
		return lifestyle.FoodRecord{}, fmt.Errorf("%w: no foods listed", ErrLifestyleInvalid)
	}
	entry.Foods = tags
	if entry.SymptomsAfter != nil {
		symptoms := *entry.SymptomsAfter
		symptoms.Symptoms = normalizeTags(symptoms.Symptoms)
		symptoms.Description = strings.TrimSpace(symptoms.Description)
		entry.SymptomsAfter = &symptoms
	}

	record, err := models.NewFoodRecord(entry)
	if err != nil {
		return lifestyle.FoodRecord{}, fmt.Errorf("%w: %v", ErrLifestyleSaveFailed, err)
	}
	if err := service.foods.Create(&record); err != nil {
		return lifestyle.FoodRecord{}, fmt.Errorf("%w: %v", ErrLifestyleSaveFailed, err)
	}
	service.recorded(activity.FoodLogged, record.ID, now)

	entry.ID = record.ID
	return entry, nil
}

func (service *LifestyleService) DeleteFood(id string) error {
	return service.deleted(service.foods.DeleteByID(id))
}

func (service *LifestyleService) ListSleep() ([]lifestyle.SleepRecord, error) {
	records, err := service.sleep.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLifestyleLoadFailed, err)
	}
	return lo.Map(records, func(record models.SleepRecord, _ int) lifestyle.SleepRecord { return record.Lifestyle() }), nil
}

func (service *LifestyleService) AddSleep(entry lifestyle.SleepRecord, now time.Time) (lifestyle.SleepRecord, error) {
	if entry.Date.IsZero() {
		return lifestyle.SleepRecord{}, fmt.Errorf("%w: missing sleep date", ErrLifestyleInvalid)
	}
	bedtime, err := normalizeClockTime(entry.Bedtime)
	if err != nil {
		return lifestyle.SleepRecord{}, fmt.Errorf("%w: bedtime: %v", ErrLifestyleInvalid, err)
	}
	wakeTime, err := normalizeClockTime(entry.WakeTime)
	if err != nil {
		return lifestyle.SleepRecord{}, fmt.Errorf("%w: wake time: %v", ErrLifestyleInvalid, err)
	}
	record := models.SleepRecord{
		Date:     StorageDay(entry.Date, time.UTC),
		Hours:    entry.Hours,
		Quality:  entry.Quality,
		Bedtime:  bedtime,
		WakeTime: wakeTime,
	}
	if err := service.sleep.Create(&record); err != nil {
		return lifestyle.SleepRecord{}, fmt.Errorf("%w: %v", ErrLifestyleSaveFailed, err)
	}
	service.recorded(activity.SleepLogged, record.ID, now)
	return record.Lifestyle(), nil
}

func (service *LifestyleService) DeleteSleep(id string) error {
	return service.deleted(service.sleep.DeleteByID(id))
}

// normalizeTags lowercases, trims and de-duplicates tags, dropping empty ones.
func normalizeTags(raw []string) []string {
	return lo.Uniq(lo.Filter(
		lo.Map(raw, func(tag string, _ int) string { return lifestyle.NormalizeFoodTag(tag) }),
		func(tag string, _ int) bool { return tag != "" },
	))
}

// normalizeClockTime accepts an empty value or a "15:04" wall-clock time.
func normalizeClockTime(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	parsed, err := time.Parse(clockLayout, value)
	if err != nil {
		return "", err
	}
	return parsed.Format(clockLayout), nil
}

func (service *LifestyleService) recorded(eventType string, ref string, now time.Time) {
	service.invalidateAnalysis()
	service.tracker.Track(activity.Event{Type: eventType, At: now, Ref: ref})
}

func (service *LifestyleService) deleted(found bool, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLifestyleDeleteFailed, err)
	}
	if !found {
		return ErrRecordNotFound
	}
	service.invalidateAnalysis()
	return nil
}

func (service *LifestyleService) invalidateAnalysis() {
	if err := service.snapshots.DeleteByKind(models.SnapshotLifestyle); err != nil {
		log.Printf("lifestyle: invalidate cached analysis failed: %v", err)
	}
}

// Analysis returns the correlation report for the calendar day of now. The
// cached snapshot is reused while its signature (day plus record counts)
// still matches the store.
func (service *LifestyleService) Analysis(now time.Time) (lifestyle.Report, error) {
	signature, err := service.signature(now)
	if err != nil {
		return lifestyle.Report{}, err
	}

	if report, ok := service.cachedReport(signature); ok {
		return report, nil
	}

	records, err := service.loadRecords()
	if err != nil {
		return lifestyle.Report{}, err
	}
	report := lifestyle.Analyze(records, WallClockUTC(now, service.location))
	service.storeReport(signature, report, now)
	return report, nil
}

func (service *LifestyleService) signature(now time.Time) (string, error) {
	counts := make([]int64, 0, 4)
	for _, count := range []func() (int64, error){service.flares.Count, service.stress.Count, service.foods.Count, service.sleep.Count} {
		value, err := count()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrLifestyleLoadFailed, err)
		}
		counts = append(counts, value)
	}
	day := StorageDay(now, service.location).Format("2006-01-02")
	return fmt.Sprintf("%s|%d:%d:%d:%d", day, counts[0], counts[1], counts[2], counts[3]), nil
}

func (service *LifestyleService) cachedReport(signature string) (lifestyle.Report, bool) {
	snapshot, found, err := service.snapshots.FindByKind(models.SnapshotLifestyle)
	if err != nil {
		log.Printf("lifestyle: load cached analysis failed: %v", err)
		return lifestyle.Report{}, false
	}
	if !found || snapshot.Signature != signature {
		return lifestyle.Report{}, false
	}

	report := lifestyle.Report{}
	if err := json.Unmarshal(snapshot.Payload, &report); err != nil {
		log.Printf("lifestyle: skip malformed cached analysis: %v", err)
		return lifestyle.Report{}, false
	}
	return report, true
}

func (service *LifestyleService) storeReport(signature string, report lifestyle.Report, now time.Time) {
	payload, err := json.Marshal(report)
	if err != nil {
		log.Printf("lifestyle: encode analysis failed: %v", err)
		return
	}
	snapshot := models.RiskSnapshot{
		Kind:       models.SnapshotLifestyle,
		Signature:  signature,
		Payload:    datatypes.JSON(payload),
		ComputedAt: now.UTC(),
	}
	if err := service.snapshots.Save(&snapshot); err != nil {
		log.Printf("lifestyle: cache analysis failed: %v", err)
	}
}

// loadRecords reads every collection and moves meal timestamps onto the
// local wall clock so that all records share one calendar.
func (service *LifestyleService) loadRecords() (lifestyle.Records, error) {
	flares, err := service.ListFlares()
	if err != nil {
		return lifestyle.Records{}, err
	}
	stress, err := service.ListStress()
	if err != nil {
		return lifestyle.Records{}, err
	}
	foods, err := service.ListFood()
	if err != nil {
		return lifestyle.Records{}, err
	}
	sleep, err := service.ListSleep()
	if err != nil {
		return lifestyle.Records{}, err
	}

	for index := range foods {
		foods[index].Timestamp = WallClockUTC(foods[index].Timestamp, service.location)
	}
	return lifestyle.Records{Flares: flares, Stress: stress, Foods: foods, Sleep: sleep}, nil
}
