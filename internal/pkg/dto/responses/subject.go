package responses

import (
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/constvars"
)

// Physician is the part of a backend physician record the service reads.
type Physician struct {
	ID           string                      `json:"id"`
	FirstName    string                      `json:"first_name"`
	LastName     string                      `json:"last_name"`
	Specialty    string                      `json:"specialty,omitempty"`
	WorkingHours availability.WeeklySchedule `json:"working_hours"`
}

func (p *Physician) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Clinic is the part of a backend clinic record the service reads.
type Clinic struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	City         string                      `json:"city,omitempty"`
	WorkingHours availability.WeeklySchedule `json:"working_hours"`
}

// Subject is a physician or a clinic reduced to what availability needs.
// It is the value cached in redis.
type Subject struct {
	Type         string                      `json:"type"`
	ID           string                      `json:"id"`
	DisplayName  string                      `json:"display_name"`
	WorkingHours availability.WeeklySchedule `json:"working_hours"`
}

func SubjectFromPhysician(p *Physician) *Subject {
	return &Subject{
		Type:         constvars.SubjectTypePhysician,
		ID:           p.ID,
		DisplayName:  p.DisplayName(),
		WorkingHours: p.WorkingHours,
	}
}

func SubjectFromClinic(c *Clinic) *Subject {
	return &Subject{
		Type:         constvars.SubjectTypeClinic,
		ID:           c.ID,
		DisplayName:  c.Name,
		WorkingHours: c.WorkingHours,
	}
}
