package repository

import (
	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorScheduleRepository interface {
	// FindTemplate never returns nil; a doctor without entries gets an empty template.
	FindTemplate(db *gorm.DB, doctorID uuid.UUID) (*entity.WeeklyTemplate, error)
	ReplaceTemplate(db *gorm.DB, template *entity.WeeklyTemplate) error
}
