package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrInvalidInsurancePeriod = errors.New("insurance effective date must not be after expiration date")

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"user_id"`
	DateOfBirth           *time.Time       `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender                string           `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Phone                 string           `gorm:"type:varchar(20);index" json:"phone,omitempty"`
	Street                string           `gorm:"type:varchar(255)" json:"street,omitempty"`
	Area                  string           `gorm:"type:varchar(100)" json:"area,omitempty"`
	City                  string           `gorm:"type:varchar(100);not null;default:'Mumbai'" json:"city"`
	State                 string           `gorm:"type:varchar(100)" json:"state,omitempty"`
	Pincode               string           `gorm:"type:varchar(10)" json:"pincode,omitempty"`
	BloodType             string           `gorm:"type:varchar(3)" json:"blood_type,omitempty"`
	EmergencyContactName  string           `gorm:"type:varchar(255)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string           `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	Allergies             pq.StringArray   `gorm:"type:text[];not null;default:'{}'" json:"allergies"`
	MedicalConditions     pq.StringArray   `gorm:"type:text[];not null;default:'{}'" json:"medical_conditions"`
	Insurance             PatientInsurance `gorm:"embedded;embeddedPrefix:insurance_" json:"insurance"`
	UpdatedAt             time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// PatientInsurance is the coverage a patient presents at booking time.
type PatientInsurance struct {
	Provider       string     `gorm:"type:varchar(255)" json:"provider,omitempty"`
	PolicyNumber   string     `gorm:"type:varchar(100)" json:"policy_number,omitempty"`
	CoverageType   string     `gorm:"type:varchar(100)" json:"coverage_type,omitempty"`
	EffectiveDate  *time.Time `gorm:"type:date" json:"effective_date,omitempty"`
	ExpirationDate *time.Time `gorm:"type:date" json:"expiration_date,omitempty"`
	Status         string     `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
}

// Insurance status constants
const (
	InsuranceStatusActive  = "active"
	InsuranceStatusExpired = "expired"
	InsuranceStatusPending = "pending"
)

// Validate rejects a coverage period that ends before it starts.
func (i *PatientInsurance) Validate() error {
	if i.EffectiveDate != nil && i.ExpirationDate != nil && i.EffectiveDate.After(*i.ExpirationDate) {
		return ErrInvalidInsurancePeriod
	}
	return nil
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// DefaultCity is used when a patient registers without an address.
const DefaultCity = "Mumbai"
