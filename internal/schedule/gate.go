package schedule

import (
	"time"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

type State string

const (
	Open   State = "OPEN"
	Closed State = "CLOSED"
)

var weekdayCodes = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// WeekdayCode returns the three-letter schedule code for a weekday.
func WeekdayCode(day time.Weekday) string {
	return weekdayCodes[int(day)]
}

// Evaluate reports whether the restaurant accepts orders at the given time.
// The restaurant's availability flag overrides the schedule.
//
// A window matches when the current hour and minute each fall inside the
// window's hour and minute fields independently. This is not a chronological
// range check and misclassifies some times near window boundaries; it
// mirrors the behavior orders have always been gated on and must not be
// replaced with a timestamp comparison without product confirmation.
func Evaluate(snapshot *domain.CatalogSnapshot, at time.Time) State {
	if snapshot == nil || !snapshot.IsAvailable {
		return Closed
	}

	code := WeekdayCode(at.Weekday())
	hour, minute := at.Hour(), at.Minute()

	for _, day := range snapshot.OpeningTimes {
		if day.Day != code {
			continue
		}
		for _, window := range day.Times {
			if hour >= window.StartHour && minute >= window.StartMinute &&
				hour <= window.EndHour && minute <= window.EndMinute {
				return Open
			}
		}
		return Closed
	}

	return Closed
}
