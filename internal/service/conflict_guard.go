package service

import (
	"errors"
	"time"

	"healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSlotAlreadyBooked = errors.New("time slot is already booked")

// BookingProposal is the identity of a requested appointment slot.
type BookingProposal struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      time.Time
	Time      string
}

// ConflictGuard rejects a proposal when the doctor or the patient already
// holds an active appointment at the same date and time.
type ConflictGuard struct {
	apptRepo repository.AppointmentRepository
}

func NewConflictGuard(apptRepo repository.AppointmentRepository) *ConflictGuard {
	return &ConflictGuard{apptRepo: apptRepo}
}

// Check must run on the same transaction as the insert it protects.
func (g *ConflictGuard) Check(tx *gorm.DB, p BookingProposal) error {
	existing, err := g.apptRepo.FindConflict(tx, p.DoctorID, p.PatientID, p.Date, p.Time)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSlotAlreadyBooked
	}
	return nil
}
