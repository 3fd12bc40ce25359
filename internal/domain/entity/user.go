package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountKind identifies which role variant a User carries.
type AccountKind string

const (
	AccountAdmin   AccountKind = RoleAdmin
	AccountDoctor  AccountKind = RoleDoctor
	AccountPatient AccountKind = RolePatient
)

// User represents the centralized authentication table. Role specific data
// lives in exactly one of DoctorProfile or PatientProfile; admins carry none.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role           Role            `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name the way they are shown to patients.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Kind reports the role variant of the account.
func (u *User) Kind() AccountKind {
	switch u.RoleID {
	case RoleIDAdmin:
		return AccountAdmin
	case RoleIDDoctor:
		return AccountDoctor
	default:
		return AccountPatient
	}
}
