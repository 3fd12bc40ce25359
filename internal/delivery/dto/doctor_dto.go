package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type DoctorListRequest struct {
	Specialization string
	City           string
	Area           string
	Name           string
	PageQuery
}

// UpdateDoctorSelfRequest is a partial update; nil fields are left untouched.
type UpdateDoctorSelfRequest struct {
	FirstName           *string  `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName            *string  `json:"last_name" validate:"omitempty,min=1,max=100"`
	Specialization      *string  `json:"specialization" validate:"omitempty,min=2,max=100"`
	Qualifications      *string  `json:"qualifications" validate:"omitempty"`
	ExperienceYears     *int     `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	HospitalAffiliation *string  `json:"hospital_affiliation" validate:"omitempty,max=255"`
	ConsultationFee     *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
	Biography           *string  `json:"biography" validate:"omitempty"`
	City                *string  `json:"city" validate:"omitempty,max=100"`
	Area                *string  `json:"area" validate:"omitempty,max=100"`
	Password            *string  `json:"password" validate:"omitempty,min=6"`
	OldPassword         *string  `json:"old_password" validate:"required_with=Password"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// Response DTOs

// DoctorProfileResponse is the doctor variant of a user
type DoctorProfileResponse struct {
	LicenseNumber       string          `json:"license_number"`
	Specialization      string          `json:"specialization"`
	Qualifications      string          `json:"qualifications,omitempty"`
	ExperienceYears     int             `json:"experience_years"`
	HospitalAffiliation string          `json:"hospital_affiliation,omitempty"`
	ConsultationFee     decimal.Decimal `json:"consultation_fee"`
	Biography           string          `json:"biography,omitempty"`
	City                string          `json:"city,omitempty"`
	Area                string          `json:"area,omitempty"`
	RatingAverage       float64         `json:"rating_average"`
	RatingCount         int             `json:"rating_count"`
}

type DoctorResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	DoctorProfileResponse
}

type DoctorDetailResponse struct {
	DoctorResponse
	Schedule *WeeklyTemplateResponse `json:"schedule"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int64            `json:"total"`
}

type ReviewResponse struct {
	ID           int64     `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	ReviewerID   uuid.UUID `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
