package entity

import (
	"errors"
	"time"

	"healthcare-portal/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrClinicalNotesRequired   = errors.New("diagnosis or prescription is required before completing an appointment")
	ErrOutsideBookingWindow    = errors.New("appointment time must be between 06:00 and 22:00")
	ErrInvalidDuration         = errors.New("duration must be between 15 and 240 minutes")
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no-show"
)

// ActiveAppointmentStatuses hold a slot; the conflict indexes cover exactly these.
var ActiveAppointmentStatuses = []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusConfirmed}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled:  {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusConfirmed:  {AppointmentStatusInProgress, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusInProgress: {AppointmentStatusCompleted},
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled || s == AppointmentStatusNoShow
}

// IsActive reports whether the status occupies its time slot.
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AppointmentType enumerates the kinds of visit a patient can book
type AppointmentType string

const (
	AppointmentTypeConsultation           AppointmentType = "consultation"
	AppointmentTypeFollowUp               AppointmentType = "follow-up"
	AppointmentTypeEmergency              AppointmentType = "emergency"
	AppointmentTypeRoutineCheckup         AppointmentType = "routine-checkup"
	AppointmentTypeSpecialistConsultation AppointmentType = "specialist-consultation"
	AppointmentTypeLaboratoryTest         AppointmentType = "laboratory-test"
	AppointmentTypeImaging                AppointmentType = "imaging"
	AppointmentTypeProcedure              AppointmentType = "procedure"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case AppointmentTypeConsultation, AppointmentTypeFollowUp, AppointmentTypeEmergency,
		AppointmentTypeRoutineCheckup, AppointmentTypeSpecialistConsultation,
		AppointmentTypeLaboratoryTest, AppointmentTypeImaging, AppointmentTypeProcedure:
		return true
	}
	return false
}

// PaymentStatus of the consultation fee
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusWaived  PaymentStatus = "waived"
)

// CancelledBy records which party cancelled
type CancelledBy string

const (
	CancelledByPatient  CancelledBy = "patient"
	CancelledByDoctor   CancelledBy = "doctor"
	CancelledByProvider CancelledBy = "provider"
	CancelledBySystem   CancelledBy = "system"
)

// Appointment duration bounds, in minutes
const (
	DefaultAppointmentDuration = 30
	MinAppointmentDuration     = 15
	MaxAppointmentDuration     = 240
)

var (
	bookingWindowOpen  = timeslot.MustParse("06:00")
	bookingWindowClose = timeslot.MustParse("22:00")
)

// ValidateBookingWindow rejects times before 06:00 or after 22:00.
func ValidateBookingWindow(c timeslot.Clock) error {
	if c < bookingWindowOpen || c > bookingWindowClose {
		return ErrOutsideBookingWindow
	}
	return nil
}

// ValidateDuration enforces the [15, 240] minute bound.
func ValidateDuration(minutes int) error {
	if minutes < MinAppointmentDuration || minutes > MaxAppointmentDuration {
		return ErrInvalidDuration
	}
	return nil
}

// Appointment represents a patient booking with a doctor
type Appointment struct {
	ID                    uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ProviderID            *uuid.UUID        `gorm:"type:uuid;index" json:"provider_id,omitempty"`
	AppointmentType       AppointmentType   `gorm:"type:varchar(30);not null" json:"appointment_type"`
	Status                AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	ScheduledDate         time.Time         `gorm:"type:date;not null" json:"scheduled_date"`
	ScheduledTime         string            `gorm:"type:varchar(5);not null" json:"scheduled_time"`
	DurationMinutes       int               `gorm:"not null;default:30" json:"duration_minutes"`
	Symptoms              string            `gorm:"type:text" json:"symptoms,omitempty"`
	Notes                 string            `gorm:"type:text" json:"notes,omitempty"`
	FollowUpReason        string            `gorm:"type:text" json:"follow_up_reason,omitempty"`
	PreviousAppointmentID *uuid.UUID        `gorm:"type:uuid" json:"previous_appointment_id,omitempty"`
	ConsultationFee       decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	PaymentStatus         PaymentStatus     `gorm:"type:varchar(10);not null;default:'pending'" json:"payment_status"`
	Diagnosis             string            `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription          string            `gorm:"type:text" json:"prescription,omitempty"`
	Recommendations       string            `gorm:"type:text" json:"recommendations,omitempty"`
	NextAppointmentDate   *time.Time        `gorm:"type:date" json:"next_appointment_date,omitempty"`
	CancelledBy           *CancelledBy      `gorm:"type:varchar(10)" json:"cancelled_by,omitempty"`
	CancelledAt           *time.Time        `json:"cancelled_at,omitempty"`
	CancellationReason    string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  User      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor   User      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Provider *Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsParty reports whether userID is the patient or the assigned doctor.
func (a *Appointment) IsParty(userID uuid.UUID) bool {
	return a.PatientID == userID || a.DoctorID == userID
}

// HasClinicalNotes reports whether a diagnosis or prescription was recorded.
func (a *Appointment) HasClinicalNotes() bool {
	return a.Diagnosis != "" || a.Prescription != ""
}

// StatusChange is a requested move through the status machine.
type StatusChange struct {
	To     AppointmentStatus
	By     CancelledBy
	Reason string
	At     time.Time
}

// Transition applies change if the status machine allows it. Cancelling
// stamps who, when and why.
func (a *Appointment) Transition(change StatusChange) error {
	if a.Status.IsTerminal() || !a.Status.CanTransitionTo(change.To) {
		return ErrInvalidStatusTransition
	}

	switch change.To {
	case AppointmentStatusCompleted:
		if !a.HasClinicalNotes() {
			return ErrClinicalNotesRequired
		}
	case AppointmentStatusCancelled:
		by := change.By
		if by == "" {
			by = CancelledBySystem
		}
		at := change.At
		a.CancelledBy = &by
		a.CancelledAt = &at
		a.CancellationReason = change.Reason
	}

	a.Status = change.To
	return nil
}
