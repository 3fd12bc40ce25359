package dto

import "github.com/google/uuid"

// Request DTOs

type AvailabilityRequest struct {
	Day       string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" validate:"required,yyyymmdd"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type VacationRequest struct {
	StartDate string `json:"start_date" validate:"required,yyyymmdd"`
	EndDate   string `json:"end_date" validate:"required,yyyymmdd"`
	Reason    string `json:"reason" validate:"omitempty,max=255"`
}

// UpdateScheduleRequest replaces the whole weekly template.
type UpdateScheduleRequest struct {
	Availability []AvailabilityRequest `json:"availability" validate:"dive"`
	BlockedDates []BlockedDateRequest  `json:"blocked_dates" validate:"dive"`
	Vacations    []VacationRequest     `json:"vacations" validate:"dive"`
}

// Response DTOs

type AvailabilityResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BlockedDateResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

type VacationResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

type WeeklyTemplateResponse struct {
	DoctorID     uuid.UUID              `json:"doctor_id"`
	Availability []AvailabilityResponse `json:"availability"`
	BlockedDates []BlockedDateResponse  `json:"blocked_dates"`
	Vacations    []VacationResponse     `json:"vacations"`
}
