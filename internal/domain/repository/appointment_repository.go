package repository

import (
	"time"

	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	// FindBookedTimes lists scheduled_time of the doctor's active appointments on date.
	FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error)
	// FindConflict returns an active appointment held by the doctor or the patient at date/time.
	FindConflict(db *gorm.DB, doctorID, patientID uuid.UUID, date time.Time, at string) (*entity.Appointment, error)
	// UpdateStatus persists the status and cancellation columns only if the row
	// still has status `from`.
	UpdateStatus(db *gorm.DB, appointment *entity.Appointment, from entity.AppointmentStatus) (int64, error)
	UpdateDetails(db *gorm.DB, appointment *entity.Appointment, from entity.AppointmentStatus) (int64, error)
	// DeleteScheduled removes the row only while it is still scheduled.
	DeleteScheduled(db *gorm.DB, id uuid.UUID) (int64, error)
}
