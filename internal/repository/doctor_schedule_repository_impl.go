package repository

import (
	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorScheduleRepository struct{}

func NewDoctorScheduleRepository() domainRepo.DoctorScheduleRepository {
	return &doctorScheduleRepository{}
}

func (r *doctorScheduleRepository) FindTemplate(db *gorm.DB, doctorID uuid.UUID) (*entity.WeeklyTemplate, error) {
	template := &entity.WeeklyTemplate{DoctorID: doctorID}

	err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&template.Availability).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("doctor_id = ?", doctorID).
		Order("blocked_date ASC").
		Find(&template.BlockedDates).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("doctor_id = ?", doctorID).
		Order("start_date ASC").
		Find(&template.Vacations).Error
	if err != nil {
		return nil, err
	}

	return template, nil
}

// ReplaceTemplate deletes every entry of the doctor and inserts the new set.
// Callers run it inside a transaction.
func (r *doctorScheduleRepository) ReplaceTemplate(db *gorm.DB, template *entity.WeeklyTemplate) error {
	doctorID := template.DoctorID

	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorAvailability{}).Error; err != nil {
		return err
	}
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorBlockedDate{}).Error; err != nil {
		return err
	}
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorVacation{}).Error; err != nil {
		return err
	}

	for i := range template.Availability {
		template.Availability[i].DoctorID = doctorID
	}
	for i := range template.BlockedDates {
		template.BlockedDates[i].DoctorID = doctorID
	}
	for i := range template.Vacations {
		template.Vacations[i].DoctorID = doctorID
	}

	if len(template.Availability) > 0 {
		if err := db.Create(&template.Availability).Error; err != nil {
			return err
		}
	}
	if len(template.BlockedDates) > 0 {
		if err := db.Create(&template.BlockedDates).Error; err != nil {
			return err
		}
	}
	if len(template.Vacations) > 0 {
		if err := db.Create(&template.Vacations).Error; err != nil {
			return err
		}
	}
	return nil
}
