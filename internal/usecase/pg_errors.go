package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Partial unique indexes over active appointments
const (
	doctorActiveSlotIndex  = "uq_appointments_doctor_active_slot"
	patientActiveSlotIndex = "uq_appointments_patient_active_slot"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	return hasPgCode(err, pgUniqueViolation, constraintName)
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	return hasPgCode(err, pgForeignKeyViolation, constraintName)
}

// isActiveSlotConflict reports whether an insert lost the race for a doctor or patient slot.
func isActiveSlotConflict(err error) bool {
	return isDuplicateKeyError(err, doctorActiveSlotIndex) || isDuplicateKeyError(err, patientActiveSlotIndex)
}

func hasPgCode(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return false
}
