package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ProviderListRequest struct {
	Type      string `validate:"omitempty,oneof=hospital clinic pharmacy laboratory specialist general-practitioner urgent-care dental eye-care mental-health medical-equipment"`
	Specialty string
	Area      string
	City      string
	Search    string
	Emergency *bool
	Featured  *bool
	Verified  *bool
	PageQuery
}

type CreateProviderRequest struct {
	Name              string   `json:"name" validate:"required,min=2,max=255"`
	Type              string   `json:"type" validate:"required,oneof=hospital clinic pharmacy laboratory specialist general-practitioner urgent-care dental eye-care mental-health medical-equipment"`
	Specialty         string   `json:"specialty" validate:"omitempty,max=100"`
	Description       string   `json:"description" validate:"omitempty"`
	Street            string   `json:"street" validate:"omitempty,max=255"`
	Area              string   `json:"area" validate:"required,max=100"`
	City              string   `json:"city" validate:"omitempty,max=100"`
	State             string   `json:"state" validate:"omitempty,max=100"`
	Pincode           string   `json:"pincode" validate:"omitempty,max=10"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Phone             string   `json:"phone" validate:"omitempty,min=10,max=20"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Website           string   `json:"website" validate:"omitempty,url"`
	ConsultationFee   float64  `json:"consultation_fee" validate:"gte=0"`
	EmergencyServices bool     `json:"emergency_services"`
	Verified          bool     `json:"verified"`
	Featured          bool     `json:"featured"`
}

// Response DTOs

type ProviderResponse struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	Specialty         string           `json:"specialty,omitempty"`
	Description       string           `json:"description,omitempty"`
	Street            string           `json:"street,omitempty"`
	Area              string           `json:"area"`
	City              string           `json:"city"`
	State             string           `json:"state,omitempty"`
	Pincode           string           `json:"pincode,omitempty"`
	Latitude          *float64         `json:"latitude,omitempty"`
	Longitude         *float64         `json:"longitude,omitempty"`
	Phone             string           `json:"phone,omitempty"`
	Email             string           `json:"email,omitempty"`
	Website           string           `json:"website,omitempty"`
	ConsultationFee   decimal.Decimal  `json:"consultation_fee"`
	EmergencyServices bool             `json:"emergency_services"`
	Verified          bool             `json:"verified"`
	Featured          bool             `json:"featured"`
	RatingAverage     float64          `json:"rating_average"`
	RatingCount       int              `json:"rating_count"`
	Reviews           []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Total     int64              `json:"total"`
}

type ProviderCategoryResponse struct {
	Type          string  `json:"type"`
	Count         int64   `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

type PopularAreaResponse struct {
	Area  string `json:"area"`
	City  string `json:"city"`
	Count int64  `json:"count"`
}
