package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"healthcare-portal/internal/delivery/http/middleware"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newMockDB returns a gorm session over sqlmock. Repositories are faked, so
// the only statements that reach the driver are BEGIN, COMMIT and ROLLBACK.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return db, mock
}

func asUser(id uuid.UUID, roleID int) context.Context {
	return middleware.WithIdentity(context.Background(), id, roleID)
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]entity.Appointment
	createErr    error
	// stale makes guarded updates report zero affected rows
	stale   bool
	created []entity.Appointment
}

func newFakeAppointmentRepo(existing ...entity.Appointment) *fakeAppointmentRepo {
	r := &fakeAppointmentRepo{appointments: make(map[uuid.UUID]entity.Appointment)}
	for _, a := range existing {
		r.appointments[a.ID] = a
	}
	return r
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = uuid.New()
	r.appointments[a.ID] = *a
	r.created = append(r.created, *a)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return nil, 0, nil
}

func (r *fakeAppointmentRepo) FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindConflict(db *gorm.DB, doctorID, patientID uuid.UUID, date time.Time, at string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if (a.DoctorID == doctorID || a.PatientID == patientID) &&
			a.ScheduledDate.Equal(date) && a.ScheduledTime == at && a.Status.IsActive() {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) guardedSave(a *entity.Appointment, from entity.AppointmentStatus) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[a.ID]
	if r.stale || !ok || stored.Status != from {
		return 0
	}
	r.appointments[a.ID] = *a
	return 1
}

func (r *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, a *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	return r.guardedSave(a, from), nil
}

func (r *fakeAppointmentRepo) UpdateDetails(db *gorm.DB, a *entity.Appointment, from entity.AppointmentStatus) (int64, error) {
	return r.guardedSave(a, from), nil
}

func (r *fakeAppointmentRepo) DeleteScheduled(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.Status != entity.AppointmentStatusScheduled {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

type fakeDoctorProfileRepo struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
}

func (r *fakeDoctorProfileRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error { return nil }
func (r *fakeDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return r.doctors[userID], nil
}
func (r *fakeDoctorProfileRepo) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	return nil, 0, nil
}
func (r *fakeDoctorProfileRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error { return nil }
func (r *fakeDoctorProfileRepo) CreateReview(db *gorm.DB, review *entity.DoctorReview) error {
	return nil
}
func (r *fakeDoctorProfileRepo) RefreshRating(db *gorm.DB, doctorID uuid.UUID) error { return nil }

type fakeProviderRepo struct {
	providers map[uuid.UUID]*entity.Provider
}

func (r *fakeProviderRepo) Create(db *gorm.DB, provider *entity.Provider) error { return nil }
func (r *fakeProviderRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Provider, error) {
	return r.providers[id], nil
}
func (r *fakeProviderRepo) FindByIDWithReviews(db *gorm.DB, id uuid.UUID) (*entity.Provider, error) {
	return r.providers[id], nil
}
func (r *fakeProviderRepo) FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.Provider, error) {
	return nil, nil
}
func (r *fakeProviderRepo) Count(db *gorm.DB, filter *entity.ProviderFilter) (int64, error) {
	return 0, nil
}
func (r *fakeProviderRepo) Categories(db *gorm.DB) ([]entity.ProviderCategory, error) {
	return nil, nil
}
func (r *fakeProviderRepo) PopularAreas(db *gorm.DB, limit int) ([]entity.PopularArea, error) {
	return nil, nil
}
func (r *fakeProviderRepo) CreateReview(db *gorm.DB, review *entity.ProviderReview) error {
	return nil
}
func (r *fakeProviderRepo) RefreshRating(db *gorm.DB, providerID uuid.UUID) error { return nil }

type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (r *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.logs = append(r.logs, *log)
	return nil
}
func (r *fakeAuditLogRepo) FindAll(db *gorm.DB, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}
func (r *fakeAuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return nil, nil
}

type fakeSlotLocker struct {
	err      error
	acquired []string
	released int
}

func (l *fakeSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, at string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, service.SlotLockKey(doctorID, date, at))
	return func() { l.released++ }, nil
}

type fakeNotifier struct {
	sent []service.Notification
}

func (n *fakeNotifier) Publish(ctx context.Context, notification service.Notification) error {
	n.sent = append(n.sent, notification)
	return nil
}

type fakeUserRepo struct{}

func (r *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error { return nil }
func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error              { return nil }
func (r *fakeUserRepo) UpdateActive(db *gorm.DB, id uuid.UUID, active bool) (int64, error) {
	return 0, nil
}

type fakePatientProfileRepo struct {
	profiles map[uuid.UUID]*entity.PatientProfile
	updated  *entity.PatientProfile
}

func (r *fakePatientProfileRepo) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	return nil
}
func (r *fakePatientProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakePatientProfileRepo) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	r.updated = profile
	return nil
}

type fakeMedicalRecordRepo struct {
	records []entity.MedicalRecord
	nextID  int64
}

func (r *fakeMedicalRecordRepo) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	r.nextID++
	record.ID = r.nextID
	for i := range record.Attachments {
		record.Attachments[i].ID = int64(i + 1)
		record.Attachments[i].RecordID = record.ID
	}
	r.records = append(r.records, *record)
	return nil
}
func (r *fakeMedicalRecordRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	var out []entity.MedicalRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].PatientID == patientID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}
