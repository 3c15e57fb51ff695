package requests

import "encoding/json"

type FindPhysiciansAvailability struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type ResolveAvailability struct {
	// Either the schedule array or a JSON string holding it.
	WorkingHours json.RawMessage `json:"working_hours"`
	Now          string          `json:"now" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Locale       string          `json:"locale" validate:"weekday_locale"`
	Policy       string          `json:"policy" validate:"opening_policy"`
}

type WorkingHoursChanged struct {
	SubjectType  string          `json:"subject_type" validate:"required,subject_type"`
	SubjectID    string          `json:"subject_id" validate:"required"`
	WorkingHours json.RawMessage `json:"working_hours,omitempty"`
}
