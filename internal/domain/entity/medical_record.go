package entity

import (
	"time"

	"github.com/google/uuid"
)

type MedicalRecordStatus string

const (
	MedicalRecordStatusPending   MedicalRecordStatus = "pending"
	MedicalRecordStatusCompleted MedicalRecordStatus = "completed"
	MedicalRecordStatusCancelled MedicalRecordStatus = "cancelled"
)

// MedicalRecord is a document a patient keeps in their own history, such as a
// lab report or a discharge summary. DoctorName is free text because records
// often come from outside the portal.
type MedicalRecord struct {
	ID         int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	Title      string              `gorm:"type:varchar(255);not null" json:"title"`
	RecordDate time.Time           `gorm:"type:date;not null" json:"record_date"`
	DoctorName string              `gorm:"type:varchar(255);not null" json:"doctor_name"`
	RecordType string              `gorm:"type:varchar(50)" json:"record_type,omitempty"`
	Summary    string              `gorm:"type:text" json:"summary,omitempty"`
	Status     MedicalRecordStatus `gorm:"type:varchar(10);not null;default:'completed'" json:"status"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`

	Attachments []MedicalRecordAttachment `gorm:"foreignKey:RecordID" json:"attachments,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "patient_medical_records"
}

type MedicalRecordAttachment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RecordID int64  `gorm:"not null;index" json:"record_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	URL      string `gorm:"type:varchar(2048);not null" json:"url"`
	FileType string `gorm:"type:varchar(10)" json:"file_type,omitempty"`
}

func (MedicalRecordAttachment) TableName() string {
	return "patient_medical_record_attachments"
}
