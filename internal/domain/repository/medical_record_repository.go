package repository

import (
	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	// Create inserts the record together with its attachments.
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error)
}
