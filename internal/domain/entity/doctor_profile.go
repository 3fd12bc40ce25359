package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization      string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualifications      string          `gorm:"type:text" json:"qualifications,omitempty"`
	ExperienceYears     int             `gorm:"not null;default:0" json:"experience_years"`
	HospitalAffiliation string          `gorm:"type:varchar(255)" json:"hospital_affiliation,omitempty"`
	ConsultationFee     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Biography           string          `gorm:"type:text" json:"biography,omitempty"`
	City                string          `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Area                string          `gorm:"type:varchar(100);index" json:"area,omitempty"`
	RatingAverage       float64         `gorm:"not null;default:0" json:"rating_average"`
	RatingCount         int             `gorm:"not null;default:0" json:"rating_count"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"availability,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// DoctorReview is a patient's rating of a doctor, one per patient.
type DoctorReview struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_doctor_reviews_doctor_patient" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_doctor_reviews_doctor_patient" json:"patient_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DoctorReview) TableName() string {
	return "doctor_reviews"
}
