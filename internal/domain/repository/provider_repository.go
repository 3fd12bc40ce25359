package repository

import (
	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderRepository interface {
	Create(db *gorm.DB, provider *entity.Provider) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Provider, error)
	FindByIDWithReviews(db *gorm.DB, id uuid.UUID) (*entity.Provider, error)
	FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.Provider, error)
	Count(db *gorm.DB, filter *entity.ProviderFilter) (int64, error)
	Categories(db *gorm.DB) ([]entity.ProviderCategory, error)
	PopularAreas(db *gorm.DB, limit int) ([]entity.PopularArea, error)
	CreateReview(db *gorm.DB, review *entity.ProviderReview) error
	RefreshRating(db *gorm.DB, providerID uuid.UUID) error
}
