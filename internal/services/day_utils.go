package services

import (
	"time"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// StorageDay is the calendar day of value at location, expressed as UTC
// midnight. Every stored date uses this form so that equal days compare equal
// in the database.
func StorageDay(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// WallClockUTC keeps the local wall-clock reading of value and relabels it as
// UTC, so it shares a calendar with StorageDay values.
func WallClockUTC(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	local := value.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}

func ParseDayParam(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return StorageDay(parsed, location), nil
}
