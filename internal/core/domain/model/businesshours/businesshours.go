// Package businesshours checks a pick-up time against a customer's weekly
// opening windows.
package businesshours

import (
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

var (
	ErrNoOrderBeforeOpenAt = errs.NewValueIsInvalidError("no order before open at")
	ErrNoOrderAfterCloseAt = errs.NewValueIsInvalidError("no order after close at")
	ErrNoOrderOnDayOff     = errs.NewValueIsInvalidError("no order on day off")
)

// TimeOfDay is a wall-clock time at minute precision.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
		}
	}
	return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause("time of day", fmt.Errorf("%q is not HH:MM", s))
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Window is one weekday's opening hours. A nil bound is open-ended.
type Window struct {
	Weekday  time.Weekday
	OpenAt   *TimeOfDay
	CloseAt  *TimeOfDay
	IsDayOff bool
}

// Schedule is a customer's week, evaluated in its own time zone. Weekdays
// without a window are treated as open all day.
type Schedule struct {
	location *time.Location
	windows  map[time.Weekday]Window
}

func NewSchedule(location *time.Location, windows ...Window) Schedule {
	if location == nil {
		location = time.UTC
	}
	byDay := make(map[time.Weekday]Window, len(windows))
	for _, w := range windows {
		byDay[w.Weekday] = w
	}
	return Schedule{location: location, windows: byDay}
}

// Check returns one of the ErrNoOrder* errors, wrapped with detail, when at
// falls outside the schedule.
func (s Schedule) Check(at time.Time) error {
	local := at.In(s.location)
	w, ok := s.windows[local.Weekday()]
	if !ok {
		return nil
	}

	if w.IsDayOff {
		return fmt.Errorf("%w: %s", ErrNoOrderOnDayOff, local.Weekday())
	}

	minute := local.Hour()*60 + local.Minute()
	if w.OpenAt != nil && minute < w.OpenAt.minutes {
		return fmt.Errorf("%w: %s opens at %s", ErrNoOrderBeforeOpenAt, local.Weekday(), w.OpenAt)
	}
	if w.CloseAt != nil && minute > w.CloseAt.minutes {
		return fmt.Errorf("%w: %s closes at %s", ErrNoOrderAfterCloseAt, local.Weekday(), w.CloseAt)
	}
	return nil
}
