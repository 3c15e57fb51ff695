package responses

import (
	"medirdv-service/internal/pkg/availability"
	"time"
)

type Availability struct {
	SubjectType string              `json:"subject_type"`
	SubjectID   string              `json:"subject_id"`
	DisplayName string              `json:"display_name,omitempty"`
	Status      availability.Status `json:"status"`
	ResolvedAt  time.Time           `json:"resolved_at"`
}

type AvailabilityFailure struct {
	SubjectID string `json:"subject_id"`
	Message   string `json:"message"`
}

type BatchAvailability struct {
	Items    []Availability        `json:"items"`
	Failures []AvailabilityFailure `json:"failures,omitempty"`
}

type ResolvedSchedule struct {
	Status     availability.Status `json:"status"`
	ResolvedAt time.Time           `json:"resolved_at"`
	Locale     string              `json:"locale"`
	Policy     string              `json:"policy"`
}

type Snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Physicians  []Availability `json:"physicians"`
	Clinics     []Availability `json:"clinics"`
}

type SnapshotPublished struct {
	Bucket      string    `json:"bucket"`
	ObjectName  string    `json:"object_name"`
	GeneratedAt time.Time `json:"generated_at"`
	Count       int       `json:"count"`
}

type AvailabilityChangedEvent struct {
	Event       string              `json:"event"`
	SubjectType string              `json:"subject_type"`
	SubjectID   string              `json:"subject_id"`
	Status      availability.Status `json:"status"`
	OccurredAt  time.Time           `json:"occurred_at"`
}
