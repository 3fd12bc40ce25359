package repository

import (
	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	// FindByUserID returns only doctors whose account is active; nil when missing.
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, int64, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
	CreateReview(db *gorm.DB, review *entity.DoctorReview) error
	RefreshRating(db *gorm.DB, doctorID uuid.UUID) error
}
