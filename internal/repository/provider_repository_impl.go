package repository

import (
	"errors"

	"healthcare-portal/internal/domain/entity"
	domainRepo "healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type providerRepository struct{}

func NewProviderRepository() domainRepo.ProviderRepository {
	return &providerRepository{}
}

func (r *providerRepository) Create(db *gorm.DB, provider *entity.Provider) error {
	return db.Omit("Reviews").Create(provider).Error
}

func (r *providerRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.Where("id = ? AND active = ?", id, true).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) FindByIDWithReviews(db *gorm.DB, id uuid.UUID) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.User").
		Where("id = ? AND active = ?", id, true).
		First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

// applyFilter narrows the directory to active providers matching filter.
func (r *providerRepository) applyFilter(db *gorm.DB, filter *entity.ProviderFilter) *gorm.DB {
	query := db.Model(&entity.Provider{}).Where("active = ?", true)
	if filter == nil {
		return query
	}

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Specialty != "" {
		query = query.Where("specialty ILIKE ?", "%"+filter.Specialty+"%")
	}
	if filter.Area != "" {
		query = query.Where("area ILIKE ?", "%"+filter.Area+"%")
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ? OR specialty ILIKE ?)", like, like, like)
	}
	if filter.Emergency != nil {
		query = query.Where("emergency_services = ?", *filter.Emergency)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	return query
}

func (r *providerRepository) FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.Provider, error) {
	var providers []entity.Provider
	query := r.applyFilter(db, filter).Order("featured DESC, rating_average DESC, name ASC")
	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(entity.Offset(filter.Page, filter.Limit))
	}
	if err := query.Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *providerRepository) Count(db *gorm.DB, filter *entity.ProviderFilter) (int64, error) {
	var total int64
	err := r.applyFilter(db, filter).Count(&total).Error
	return total, err
}

func (r *providerRepository) Categories(db *gorm.DB) ([]entity.ProviderCategory, error) {
	var categories []entity.ProviderCategory
	err := db.Model(&entity.Provider{}).
		Select("type, COUNT(*) AS count, COALESCE(ROUND(AVG(rating_average)::numeric, 1), 0) AS average_rating").
		Where("active = ?", true).
		Group("type").
		Order("count DESC").
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *providerRepository) PopularAreas(db *gorm.DB, limit int) ([]entity.PopularArea, error) {
	var areas []entity.PopularArea
	err := db.Model(&entity.Provider{}).
		Select("area, city, COUNT(*) AS count").
		Where("active = ?", true).
		Group("area, city").
		Order("count DESC, area ASC").
		Limit(limit).
		Scan(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *providerRepository) CreateReview(db *gorm.DB, review *entity.ProviderReview) error {
	return db.Omit("User").Create(review).Error
}

func (r *providerRepository) RefreshRating(db *gorm.DB, providerID uuid.UUID) error {
	return db.Exec(`
		UPDATE providers SET
			rating_average = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM provider_reviews WHERE provider_id = ?), 0),
			rating_count = (SELECT COUNT(*) FROM provider_reviews WHERE provider_id = ?),
			updated_at = NOW()
		WHERE id = ?`, providerID, providerID, providerID).Error
}
