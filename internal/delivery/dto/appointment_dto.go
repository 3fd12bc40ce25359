package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID              uuid.UUID  `json:"doctor_id" validate:"required"`
	ProviderID            *uuid.UUID `json:"provider_id" validate:"omitempty"`
	AppointmentType       string     `json:"appointment_type" validate:"required,oneof=consultation follow-up emergency routine-checkup specialist-consultation laboratory-test imaging procedure"`
	ScheduledDate         string     `json:"scheduled_date" validate:"required,yyyymmdd"`
	ScheduledTime         string     `json:"scheduled_time" validate:"required,hhmm"`
	Duration              *int       `json:"duration" validate:"omitempty,gte=15,lte=240"`
	Symptoms              string     `json:"symptoms" validate:"omitempty,max=2000"`
	Notes                 string     `json:"notes" validate:"omitempty,max=2000"`
	FollowUpReason        string     `json:"follow_up_reason" validate:"omitempty,max=1000"`
	PreviousAppointmentID *uuid.UUID `json:"previous_appointment_id" validate:"omitempty"`
}

type AppointmentListRequest struct {
	Status string `validate:"omitempty,oneof=scheduled confirmed in-progress completed cancelled no-show"`
	PageQuery
}

type UpdateAppointmentStatusRequest struct {
	Status             string `json:"status" validate:"required,oneof=scheduled confirmed in-progress completed cancelled no-show"`
	CancellationReason string `json:"cancellation_reason" validate:"omitempty,max=500"`
}

// UpdateAppointmentDetailsRequest records clinical notes; nil fields are left untouched.
type UpdateAppointmentDetailsRequest struct {
	Diagnosis           *string `json:"diagnosis" validate:"omitempty,max=5000"`
	Prescription        *string `json:"prescription" validate:"omitempty,max=5000"`
	Recommendations     *string `json:"recommendations" validate:"omitempty,max=5000"`
	NextAppointmentDate *string `json:"next_appointment_date" validate:"omitempty,yyyymmdd"`
}

// Response DTOs

type AvailableSlotsResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	Date           string    `json:"date"`
	Day            string    `json:"day"`
	AvailableSlots []string  `json:"available_slots"`
}

type ParticipantResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
}

type CancellationResponse struct {
	CancelledBy string    `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
	Reason      string    `json:"reason,omitempty"`
}

type AppointmentResponse struct {
	ID                    uuid.UUID             `json:"id"`
	Patient               ParticipantResponse   `json:"patient"`
	Doctor                ParticipantResponse   `json:"doctor"`
	ProviderID            *uuid.UUID            `json:"provider_id,omitempty"`
	ProviderName          string                `json:"provider_name,omitempty"`
	AppointmentType       string                `json:"appointment_type"`
	Status                string                `json:"status"`
	ScheduledDate         string                `json:"scheduled_date"`
	ScheduledTime         string                `json:"scheduled_time"`
	DurationMinutes       int                   `json:"duration_minutes"`
	Symptoms              string                `json:"symptoms,omitempty"`
	Notes                 string                `json:"notes,omitempty"`
	FollowUpReason        string                `json:"follow_up_reason,omitempty"`
	PreviousAppointmentID *uuid.UUID            `json:"previous_appointment_id,omitempty"`
	ConsultationFee       decimal.Decimal       `json:"consultation_fee"`
	PaymentStatus         string                `json:"payment_status"`
	Diagnosis             string                `json:"diagnosis,omitempty"`
	Prescription          string                `json:"prescription,omitempty"`
	Recommendations       string                `json:"recommendations,omitempty"`
	NextAppointmentDate   string                `json:"next_appointment_date,omitempty"`
	Cancellation          *CancellationResponse `json:"cancellation,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}
