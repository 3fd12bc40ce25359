package repository

import (
	"errors"
	"time"

	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor", "Provider").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Preload("Patient").
		Preload("Doctor").Preload("Doctor.DoctorProfile").
		Preload("Provider").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})
	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	page := query.
		Preload("Patient").
		Preload("Doctor").Preload("Doctor.DoctorProfile").
		Preload("Provider").
		Order("scheduled_date ASC, scheduled_time ASC")
	if filter != nil && filter.Limit > 0 {
		page = page.Limit(filter.Limit).Offset(entity.Offset(filter.Page, filter.Limit))
	}
	if err := page.Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND scheduled_date = ? AND status IN ?", doctorID, date.Format("2006-01-02"), entity.ActiveAppointmentStatuses).
		Order("scheduled_time ASC").
		Pluck("scheduled_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FindConflict(db *gorm.DB, doctorID, patientID uuid.UUID, date time.Time, at string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("scheduled_date = ? AND scheduled_time = ? AND status IN ?", date.Format("2006-01-02"), at, entity.ActiveAppointmentStatuses).
		Where("(doctor_id = ? OR patient_id = ?)", doctorID, patientID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, appointment *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, from).
		Updates(map[string]interface{}{
			"status":              appointment.Status,
			"cancelled_by":        appointment.CancelledBy,
			"cancelled_at":        appointment.CancelledAt,
			"cancellation_reason": appointment.CancellationReason,
			"updated_at":          time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateDetails(db *gorm.DB, appointment *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, from).
		Updates(map[string]interface{}{
			"status":                appointment.Status,
			"diagnosis":             appointment.Diagnosis,
			"prescription":          appointment.Prescription,
			"recommendations":       appointment.Recommendations,
			"next_appointment_date": appointment.NextAppointmentDate,
			"updated_at":            time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteScheduled(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
