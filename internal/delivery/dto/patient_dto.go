package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdatePatientSelfRequest is a partial update; nil fields are left untouched.
type UpdatePatientSelfRequest struct {
	FirstName             *string           `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName              *string           `json:"last_name" validate:"omitempty,min=1,max=100"`
	DateOfBirth           *string           `json:"date_of_birth" validate:"omitempty,yyyymmdd"`
	Gender                *string           `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone                 *string           `json:"phone" validate:"omitempty,min=10,max=20"`
	Street                *string           `json:"street" validate:"omitempty,max=255"`
	Area                  *string           `json:"area" validate:"omitempty,max=100"`
	City                  *string           `json:"city" validate:"omitempty,min=2,max=100"`
	State                 *string           `json:"state" validate:"omitempty,max=100"`
	Pincode               *string           `json:"pincode" validate:"omitempty,max=10"`
	BloodType             *string           `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	EmergencyContactName  *string           `json:"emergency_contact_name" validate:"omitempty,max=255"`
	EmergencyContactPhone *string           `json:"emergency_contact_phone" validate:"omitempty,min=10,max=20"`
	Allergies             *[]string         `json:"allergies" validate:"omitempty,max=50,dive,min=1,max=100"`
	MedicalConditions     *[]string         `json:"medical_conditions" validate:"omitempty,max=50,dive,min=1,max=100"`
	Insurance             *InsuranceRequest `json:"insurance"`
	Password              *string           `json:"password" validate:"omitempty,min=6"`
	OldPassword           *string           `json:"old_password" validate:"required_with=Password"`
}

// InsuranceRequest replaces the stored coverage as a whole.
type InsuranceRequest struct {
	Provider       string `json:"provider" validate:"omitempty,max=255"`
	PolicyNumber   string `json:"policy_number" validate:"omitempty,max=100"`
	CoverageType   string `json:"coverage_type" validate:"omitempty,max=100"`
	EffectiveDate  string `json:"effective_date" validate:"omitempty,yyyymmdd"`
	ExpirationDate string `json:"expiration_date" validate:"omitempty,yyyymmdd"`
	Status         string `json:"status" validate:"omitempty,oneof=active expired pending"`
}

type InsuranceResponse struct {
	Provider       string `json:"provider,omitempty"`
	PolicyNumber   string `json:"policy_number,omitempty"`
	CoverageType   string `json:"coverage_type,omitempty"`
	EffectiveDate  string `json:"effective_date,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	Status         string `json:"status"`
}

// PatientProfileResponse is the patient variant of a user
type PatientProfileResponse struct {
	DateOfBirth           string            `json:"date_of_birth,omitempty"`
	Gender                string            `json:"gender,omitempty"`
	Phone                 string            `json:"phone,omitempty"`
	Street                string            `json:"street,omitempty"`
	Area                  string            `json:"area,omitempty"`
	City                  string            `json:"city"`
	State                 string            `json:"state,omitempty"`
	Pincode               string            `json:"pincode,omitempty"`
	BloodType             string            `json:"blood_type,omitempty"`
	EmergencyContactName  string            `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string            `json:"emergency_contact_phone,omitempty"`
	Allergies             []string          `json:"allergies"`
	MedicalConditions     []string          `json:"medical_conditions"`
	Insurance             InsuranceResponse `json:"insurance"`
}

type PatientResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	PatientProfileResponse
	UpdatedAt time.Time `json:"updated_at"`
}

type MedicalRecordAttachmentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required,url,max=2048"`
	Type string `json:"type" validate:"omitempty,oneof=pdf image document"`
}

type CreateMedicalRecordRequest struct {
	Title       string                           `json:"title" validate:"required,max=255"`
	Date        string                           `json:"date" validate:"required,yyyymmdd"`
	Doctor      string                           `json:"doctor" validate:"required,max=255"`
	Type        string                           `json:"type" validate:"omitempty,max=50"`
	Summary     string                           `json:"summary" validate:"omitempty,max=5000"`
	Status      string                           `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Attachments []MedicalRecordAttachmentRequest `json:"attachments" validate:"omitempty,max=20,dive"`
}

type MedicalRecordAttachmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

type MedicalRecordResponse struct {
	ID          int64                             `json:"id"`
	Title       string                            `json:"title"`
	Date        string                            `json:"date"`
	Doctor      string                            `json:"doctor"`
	Type        string                            `json:"type,omitempty"`
	Summary     string                            `json:"summary,omitempty"`
	Status      string                            `json:"status"`
	Attachments []MedicalRecordAttachmentResponse `json:"attachments"`
	CreatedAt   time.Time                         `json:"created_at"`
}

type MedicalRecordListResponse struct {
	MedicalRecords []MedicalRecordResponse `json:"medical_records"`
}
