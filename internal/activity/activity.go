package activity

import (
	"log"
	"time"
)

const (
	ObservationSaved = "observation_saved"
	FlareLogged      = "flare_logged"
	StressLogged     = "stress_logged"
	FoodLogged       = "food_logged"
	SleepLogged      = "sleep_logged"
)

// Event is a user action reported to the gamification side. Ref carries the
// record id or observation date.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Ref  string    `json:"ref,omitempty"`
}

// Tracker must never block or fail the caller.
type Tracker interface {
	Track(event Event)
}

type LogTracker struct{}

func (LogTracker) Track(event Event) {
	log.Printf("activity: %s ref=%s at=%s", event.Type, event.Ref, event.At.UTC().Format(time.RFC3339))
}
