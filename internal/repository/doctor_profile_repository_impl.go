package repository

import (
	"errors"

	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User", "Availability").Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.
		Joins("User").
		Where("doctor_profiles.user_id = ? AND \"User\".is_active = ?", doctorID, true).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll lists active doctors ordered by rating, then name.
func (r *doctorProfileRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	query := db.Model(&entity.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if filter != nil {
		if filter.Specialization != "" {
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
		if filter.City != "" {
			query = query.Where("doctor_profiles.city ILIKE ?", "%"+filter.City+"%")
		}
		if filter.Area != "" {
			query = query.Where("doctor_profiles.area ILIKE ?", "%"+filter.Area+"%")
		}
		if filter.Name != "" {
			query = query.Where("(users.first_name || ' ' || users.last_name) ILIKE ?", "%"+filter.Name+"%")
		}
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.DoctorProfile
	page := query.Preload("User").
		Order("doctor_profiles.rating_average DESC, users.last_name ASC, users.first_name ASC")
	if filter != nil && filter.Limit > 0 {
		page = page.Limit(filter.Limit).Offset(entity.Offset(filter.Page, filter.Limit))
	}
	if err := page.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User", "Availability").Save(profile).Error
}

func (r *doctorProfileRepository) CreateReview(db *gorm.DB, review *entity.DoctorReview) error {
	return db.Omit("Patient").Create(review).Error
}

// RefreshRating recomputes the cached average (one decimal) and count from reviews.
func (r *doctorProfileRepository) RefreshRating(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Exec(`
		UPDATE doctor_profiles SET
			rating_average = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM doctor_reviews WHERE doctor_id = ?), 0),
			rating_count = (SELECT COUNT(*) FROM doctor_reviews WHERE doctor_id = ?)
		WHERE user_id = ?`, doctorID, doctorID, doctorID).Error
}
