package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProviderType classifies entries in the provider directory
type ProviderType string

const (
	ProviderTypeHospital            ProviderType = "hospital"
	ProviderTypeClinic              ProviderType = "clinic"
	ProviderTypePharmacy            ProviderType = "pharmacy"
	ProviderTypeLaboratory          ProviderType = "laboratory"
	ProviderTypeSpecialist          ProviderType = "specialist"
	ProviderTypeGeneralPractitioner ProviderType = "general-practitioner"
	ProviderTypeUrgentCare          ProviderType = "urgent-care"
	ProviderTypeDental              ProviderType = "dental"
	ProviderTypeEyeCare             ProviderType = "eye-care"
	ProviderTypeMentalHealth        ProviderType = "mental-health"
	ProviderTypeMedicalEquipment    ProviderType = "medical-equipment"
)

// ProviderTypes lists every directory category.
var ProviderTypes = []ProviderType{
	ProviderTypeHospital, ProviderTypeClinic, ProviderTypePharmacy, ProviderTypeLaboratory,
	ProviderTypeSpecialist, ProviderTypeGeneralPractitioner, ProviderTypeUrgentCare,
	ProviderTypeDental, ProviderTypeEyeCare, ProviderTypeMentalHealth, ProviderTypeMedicalEquipment,
}

func (t ProviderType) IsValid() bool {
	for _, known := range ProviderTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Provider is a hospital, clinic, pharmacy or other care facility
type Provider struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	Type              ProviderType    `gorm:"type:varchar(30);not null;index" json:"type"`
	Specialty         string          `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	Description       string          `gorm:"type:text" json:"description,omitempty"`
	Street            string          `gorm:"type:varchar(255)" json:"street,omitempty"`
	Area              string          `gorm:"type:varchar(100);not null;index" json:"area"`
	City              string          `gorm:"type:varchar(100);not null;default:'Mumbai'" json:"city"`
	State             string          `gorm:"type:varchar(100)" json:"state,omitempty"`
	Pincode           string          `gorm:"type:varchar(10)" json:"pincode,omitempty"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	Phone             string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email             string          `gorm:"type:varchar(255)" json:"email,omitempty"`
	Website           string          `gorm:"type:varchar(255)" json:"website,omitempty"`
	ConsultationFee   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	EmergencyServices bool            `gorm:"not null;default:false" json:"emergency_services"`
	Verified          bool            `gorm:"not null;default:false" json:"verified"`
	Featured          bool            `gorm:"not null;default:false" json:"featured"`
	Active            bool            `gorm:"not null;default:true;index" json:"active"`
	RatingAverage     float64         `gorm:"not null;default:0" json:"rating_average"`
	RatingCount       int             `gorm:"not null;default:0" json:"rating_count"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Reviews []ProviderReview `gorm:"foreignKey:ProviderID" json:"reviews,omitempty"`
}

func (Provider) TableName() string {
	return "providers"
}

// ProviderReview is a user's rating of a provider, one per user.
type ProviderReview struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_provider_reviews_provider_user" json:"provider_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_provider_reviews_provider_user" json:"user_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProviderReview) TableName() string {
	return "provider_reviews"
}

// Rating bounds shared by provider and doctor reviews
const (
	MinRating = 1
	MaxRating = 5
)

// ProviderCategory is an aggregate row of the directory grouped by type.
type ProviderCategory struct {
	Type          ProviderType `json:"type"`
	Count         int64        `json:"count"`
	AverageRating float64      `json:"average_rating"`
}

// PopularArea is an aggregate row of the directory grouped by area.
type PopularArea struct {
	Area  string `json:"area"`
	City  string `json:"city"`
	Count int64  `json:"count"`
}
