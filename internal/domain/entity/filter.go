package entity

import "github.com/google/uuid"

// Filters are domain-level query shapes used by the repository layer to avoid
// coupling with delivery DTOs. Page is 1-based; Limit is already clamped by
// the usecase.

// DoctorFilter narrows the public doctor directory.
type DoctorFilter struct {
	Specialization string // ILIKE
	City           string // ILIKE
	Area           string // ILIKE
	Name           string // ILIKE over first + last name
	Page           int
	Limit          int
}

// AppointmentFilter selects appointments visible to one participant.
// A nil PatientID and DoctorID means no participant restriction (admin).
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    AppointmentStatus
	Page      int
	Limit     int
}

// ProviderFilter narrows the provider directory.
type ProviderFilter struct {
	Type      ProviderType
	Specialty string
	Area      string
	City      string
	Search    string
	Emergency *bool
	Featured  *bool
	Verified  *bool
	Page      int
	Limit     int
}

// AuditLogFilter pages through the audit trail.
type AuditLogFilter struct {
	Action string
	Page   int
	Limit  int
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
