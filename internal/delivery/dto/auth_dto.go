package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterPatientRequest creates a user with the patient variant
type RegisterPatientRequest struct {
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required,min=6"`
	FirstName             string `json:"first_name" validate:"required,min=2,max=100"`
	LastName              string `json:"last_name" validate:"required,min=1,max=100"`
	DateOfBirth           string `json:"date_of_birth" validate:"omitempty,yyyymmdd"`
	Gender                string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone                 string `json:"phone" validate:"omitempty,min=10,max=20"`
	Street                string `json:"street" validate:"omitempty,max=255"`
	Area                  string `json:"area" validate:"omitempty,max=100"`
	City                  string `json:"city" validate:"omitempty,max=100"`
	State                 string `json:"state" validate:"omitempty,max=100"`
	Pincode               string `json:"pincode" validate:"omitempty,max=10"`
	BloodType             string `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,min=10,max=20"`
}

// RegisterDoctorRequest creates a user with the doctor variant
type RegisterDoctorRequest struct {
	Email               string  `json:"email" validate:"required,email"`
	Password            string  `json:"password" validate:"required,min=6"`
	FirstName           string  `json:"first_name" validate:"required,min=2,max=100"`
	LastName            string  `json:"last_name" validate:"required,min=1,max=100"`
	LicenseNumber       string  `json:"license_number" validate:"required,max=50"`
	Specialization      string  `json:"specialization" validate:"required,max=100"`
	Qualifications      string  `json:"qualifications" validate:"omitempty"`
	ExperienceYears     int     `json:"experience_years" validate:"gte=0,lte=80"`
	HospitalAffiliation string  `json:"hospital_affiliation" validate:"omitempty,max=255"`
	ConsultationFee     float64 `json:"consultation_fee" validate:"gte=0"`
	Biography           string  `json:"biography" validate:"omitempty"`
	City                string  `json:"city" validate:"omitempty,max=100"`
	Area                string  `json:"area" validate:"omitempty,max=100"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserResponse carries at most one of DoctorProfile or PatientProfile,
// matching the account's role.
type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	FirstName      string                  `json:"first_name"`
	LastName       string                  `json:"last_name"`
	FullName       string                  `json:"full_name"`
	Role           string                  `json:"role"`
	IsActive       bool                    `json:"is_active"`
	DoctorProfile  *DoctorProfileResponse  `json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// Admin

type UpdateUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
