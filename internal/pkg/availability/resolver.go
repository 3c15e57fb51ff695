package availability

import (
	"strings"
	"time"
)

// OpeningPolicy selects which of today's remaining intervals is reported when
// the subject opens later the same day.
type OpeningPolicy string

const (
	// FirstListed reports the first interval, in listed order, that starts
	// after now. Schedules whose intervals are not stored chronologically can
	// therefore report a later opening than the real next one.
	FirstListed OpeningPolicy = "first_listed"
	// Earliest reports the smallest start among the intervals starting after now.
	Earliest OpeningPolicy = "earliest"
)

// ParseOpeningPolicy maps a configuration value to a policy, defaulting to FirstListed.
func ParseOpeningPolicy(value string) OpeningPolicy {
	if OpeningPolicy(strings.ToLower(strings.TrimSpace(value))) == Earliest {
		return Earliest
	}
	return FirstListed
}

type options struct {
	names  WeekdayNames
	policy OpeningPolicy
}

type Option func(*options)

// WithNames sets the weekday table used to name today and the scanned days.
func WithNames(names WeekdayNames) Option {
	return func(o *options) {
		o.names = names
	}
}

// WithPolicy overrides the opening-later-today policy.
func WithPolicy(policy OpeningPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// Resolve computes the availability of schedule at now. It never fails:
// unusable input yields an Unavailable status.
func Resolve(now time.Time, schedule WeeklySchedule, opts ...Option) Status {
	o := options{names: French, policy: FirstListed}
	for _, opt := range opts {
		opt(&o)
	}

	if len(schedule) == 0 {
		return Unavailable(ReasonNoSchedule)
	}
	if !schedule.anyEnabled() {
		return Unavailable(ReasonFullyClosed)
	}

	today := now.Weekday()
	entry, ok := schedule.Find(o.names.Name(today))
	if !ok {
		return Unavailable(ReasonClosedToday)
	}
	intervals := entry.OpenIntervals()
	if len(intervals) == 0 {
		return Unavailable(ReasonClosedToday)
	}

	clock := ClockOf(now)
	for _, interval := range intervals {
		if interval.Contains(clock) {
			return Available(interval.End)
		}
	}

	if opensAt, ok := nextOpening(intervals, clock, o.policy); ok {
		return OpensLaterToday(opensAt)
	}

	for offset := 1; offset < 7; offset++ {
		name := o.names.Name(time.Weekday((int(today) + offset) % 7))
		day, ok := schedule.Find(name)
		if !ok {
			continue
		}
		if next := day.OpenIntervals(); len(next) > 0 {
			return OpensNextDay(name, next[0].Start)
		}
	}

	return Unavailable(ReasonFullyClosed)
}

func nextOpening(intervals []Interval, clock string, policy OpeningPolicy) (string, bool) {
	opensAt := ""
	for _, interval := range intervals {
		if interval.Start <= clock {
			continue
		}
		if policy != Earliest {
			return interval.Start, true
		}
		if opensAt == "" || interval.Start < opensAt {
			opensAt = interval.Start
		}
	}
	return opensAt, opensAt != ""
}

// Resolver binds a clock and naming options so callers can ask for the
// current status without threading time through their code.
type Resolver struct {
	Clock  func() time.Time
	Names  WeekdayNames
	Policy OpeningPolicy
}

// NewResolver returns a Resolver reading the wall clock in loc.
func NewResolver(loc *time.Location, names WeekdayNames, policy OpeningPolicy) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{
		Clock:  func() time.Time { return time.Now().In(loc) },
		Names:  names,
		Policy: policy,
	}
}

// Current resolves schedule at the resolver's current time.
func (r *Resolver) Current(schedule WeeklySchedule) Status {
	return r.At(r.now(), schedule)
}

// At resolves schedule at now using the resolver's options.
func (r *Resolver) At(now time.Time, schedule WeeklySchedule) Status {
	return Resolve(now, schedule, r.options()...)
}

// Now returns the resolver's current time.
func (r *Resolver) Now() time.Time {
	return r.now()
}

func (r *Resolver) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

func (r *Resolver) options() []Option {
	opts := make([]Option, 0, 2)
	if r.Names != (WeekdayNames{}) {
		opts = append(opts, WithNames(r.Names))
	}
	if r.Policy != "" {
		opts = append(opts, WithPolicy(r.Policy))
	}
	return opts
}
