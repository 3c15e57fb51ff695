package availability

import (
	"strings"
	"time"
)

const (
	intervalSeparator = " | "
	boundSeparator    = " - "
)

// WeeklySchedule is the ordered list of day entries carried in a record's
// working_hours field. A nil or empty schedule means the record had no usable
// schedule.
type WeeklySchedule []DaySchedule

// DaySchedule describes the opening hours of one weekday.
type DaySchedule struct {
	Day     string `json:"day"`
	Enabled bool   `json:"enabled"`
	Hours   string `json:"hours"`
}

// Interval is one "HH:MM - HH:MM" range of a day. Bounds are kept as the
// zero-padded strings found in the schedule.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether clock (HH:MM) lies within the interval, both bounds included.
func (i Interval) Contains(clock string) bool {
	return i.Start <= clock && clock <= i.End
}

// WeekdayNames maps time.Weekday to the canonical day identifier used by a schedule.
type WeekdayNames [7]string

var (
	French = WeekdayNames{
		time.Sunday:    "dimanche",
		time.Monday:    "lundi",
		time.Tuesday:   "mardi",
		time.Wednesday: "mercredi",
		time.Thursday:  "jeudi",
		time.Friday:    "vendredi",
		time.Saturday:  "samedi",
	}
	English = WeekdayNames{
		time.Sunday:    "sunday",
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
	}
)

// NamesForLocale returns the weekday table for a locale code. Unknown codes
// fall back to French, the locale schedules are authored in.
func NamesForLocale(locale string) WeekdayNames {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en", "en-us", "en-gb", "english":
		return English
	default:
		return French
	}
}

// Name returns the identifier of wd.
func (n WeekdayNames) Name(wd time.Weekday) string {
	return n[wd]
}

// Find returns the first entry whose day matches name, ignoring case.
func (s WeeklySchedule) Find(name string) (DaySchedule, bool) {
	for _, day := range s {
		if strings.EqualFold(day.Day, name) {
			return day, true
		}
	}
	return DaySchedule{}, false
}

func (s WeeklySchedule) anyEnabled() bool {
	for _, day := range s {
		if day.Enabled {
			return true
		}
	}
	return false
}

// Intervals parses the hours string. Pieces missing a bound are dropped.
func (d DaySchedule) Intervals() []Interval {
	return ParseIntervals(d.Hours)
}

// OpenIntervals returns the day's intervals, or nil when the day is disabled.
func (d DaySchedule) OpenIntervals() []Interval {
	if !d.Enabled {
		return nil
	}
	return d.Intervals()
}

// ParseIntervals splits "HH:MM - HH:MM | HH:MM - HH:MM" into intervals,
// keeping the listed order.
func ParseIntervals(hours string) []Interval {
	if strings.TrimSpace(hours) == "" {
		return nil
	}

	var intervals []Interval
	for _, piece := range strings.Split(hours, intervalSeparator) {
		bounds := strings.Split(piece, boundSeparator)
		if len(bounds) < 2 {
			continue
		}
		start := strings.TrimSpace(bounds[0])
		end := strings.TrimSpace(bounds[1])
		if start == "" || end == "" {
			continue
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals
}

// ClockOf formats t as the HH:MM string schedules are compared against.
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}
