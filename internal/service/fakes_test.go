package service

import (
	"errors"
	"io"
	"sync"
	"time"

	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
	err     error
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error { return nil }
func (r *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.doctors[userID], nil
}
func (r *fakeDoctorRepo) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	return nil, 0, nil
}
func (r *fakeDoctorRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error     { return nil }
func (r *fakeDoctorRepo) CreateReview(db *gorm.DB, review *entity.DoctorReview) error { return nil }
func (r *fakeDoctorRepo) RefreshRating(db *gorm.DB, doctorID uuid.UUID) error         { return nil }

type fakeScheduleRepo struct {
	templates map[uuid.UUID]*entity.WeeklyTemplate
}

func (r *fakeScheduleRepo) FindTemplate(db *gorm.DB, doctorID uuid.UUID) (*entity.WeeklyTemplate, error) {
	if t, ok := r.templates[doctorID]; ok {
		return t, nil
	}
	return &entity.WeeklyTemplate{DoctorID: doctorID}, nil
}
func (r *fakeScheduleRepo) ReplaceTemplate(db *gorm.DB, template *entity.WeeklyTemplate) error {
	return nil
}

// fakeAppointmentRepo mirrors the active-status filtering of the gorm implementation.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []entity.Appointment
}

func sameDay(a, b time.Time) bool {
	return timeslot.DateOnly(a).Equal(timeslot.DateOnly(b))
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.appointments = append(r.appointments, *a)
	return nil
}
func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}
func (r *fakeAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return nil, 0, nil
}
func (r *fakeAppointmentRepo) FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var times []string
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && sameDay(a.ScheduledDate, date) && a.Status.IsActive() {
			times = append(times, a.ScheduledTime)
		}
	}
	return times, nil
}
func (r *fakeAppointmentRepo) FindConflict(db *gorm.DB, doctorID, patientID uuid.UUID, date time.Time, at string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.appointments {
		if (a.DoctorID == doctorID || a.PatientID == patientID) &&
			sameDay(a.ScheduledDate, date) && a.ScheduledTime == at && a.Status.IsActive() {
			return &r.appointments[i], nil
		}
	}
	return nil, nil
}
func (r *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, a *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	return 0, nil
}
func (r *fakeAppointmentRepo) UpdateDetails(db *gorm.DB, a *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	return 0, nil
}
func (r *fakeAppointmentRepo) DeleteScheduled(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeAuditRepo struct {
	logs []entity.AuditLog
	err  error
}

func (r *fakeAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, *log)
	return nil
}
func (r *fakeAuditRepo) FindAll(db *gorm.DB, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *fakeAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) { return nil, nil }

var errStoreDown = errors.New("store unavailable")
