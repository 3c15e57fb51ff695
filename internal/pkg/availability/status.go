package availability

// Kind tags the variant held by a Status.
type Kind string

const (
	KindUnavailable     Kind = "unavailable"
	KindAvailable       Kind = "available"
	KindOpensLaterToday Kind = "opens_later_today"
	KindOpensNextDay    Kind = "opens_next_day"
)

// Reason explains an unavailable status.
type Reason string

const (
	ReasonNoSchedule  Reason = "no-schedule"
	ReasonClosedToday Reason = "closed-today"
	ReasonFullyClosed Reason = "fully-closed"
)

// Status is the result of resolving a schedule at a given instant. Only the
// fields relevant to Kind are set:
//
//	unavailable        Reason
//	available          ClosesAt
//	opens_later_today  OpensAt
//	opens_next_day     Day, OpensAt
type Status struct {
	Kind     Kind   `json:"kind"`
	Reason   Reason `json:"reason,omitempty"`
	ClosesAt string `json:"closes_at,omitempty"`
	OpensAt  string `json:"opens_at,omitempty"`
	Day      string `json:"day,omitempty"`
}

func Unavailable(reason Reason) Status {
	return Status{Kind: KindUnavailable, Reason: reason}
}

func Available(closesAt string) Status {
	return Status{Kind: KindAvailable, ClosesAt: closesAt}
}

func OpensLaterToday(opensAt string) Status {
	return Status{Kind: KindOpensLaterToday, OpensAt: opensAt}
}

func OpensNextDay(day, opensAt string) Status {
	return Status{Kind: KindOpensNextDay, Day: day, OpensAt: opensAt}
}

// IsAvailable reports whether the subject can be reached right now.
func (s Status) IsAvailable() bool {
	return s.Kind == KindAvailable
}
