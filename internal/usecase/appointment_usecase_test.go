package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/service"
	"healthcare-portal/pkg/timeslot"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	fixedNow   = time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	doctorID   = uuid.MustParse("4f1a8a7e-6d4f-4a53-9a2c-8d1b3f0c2e11")
	patientID  = uuid.MustParse("9b2e6c1d-3a7f-4e58-8c0b-5d6e7f8a9b01")
	strangerID = uuid.MustParse("0c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f")
	providerID = uuid.MustParse("7e8f9a0b-1c2d-4e3f-8a4b-5c6d7e8f9a0b")
)

type appointmentFixture struct {
	usecase      *appointmentUsecase
	mock         sqlmock.Sqlmock
	appointments *fakeAppointmentRepo
	audits       *fakeAuditLogRepo
	locker       *fakeSlotLocker
	notifier     *fakeNotifier
}

func newAppointmentFixture(t *testing.T, existing ...entity.Appointment) *appointmentFixture {
	t.Helper()

	db, mock := newMockDB(t)
	log := silentLogger()
	appointments := newFakeAppointmentRepo(existing...)
	audits := &fakeAuditLogRepo{}
	locker := &fakeSlotLocker{}
	notifier := &fakeNotifier{}

	doctors := &fakeDoctorProfileRepo{doctors: map[uuid.UUID]*entity.DoctorProfile{
		doctorID: {UserID: doctorID, ConsultationFee: decimal.NewFromInt(500)},
	}}
	providers := &fakeProviderRepo{providers: map[uuid.UUID]*entity.Provider{
		providerID: {ID: providerID, Name: "City Clinic", ConsultationFee: decimal.NewFromInt(750)},
	}}

	u := &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointments,
		doctorProfileRepo: doctors,
		providerRepo:      providers,
		conflictGuard:     service.NewConflictGuard(appointments),
		slotLocker:        locker,
		notifier:          notifier,
		auditService:      service.NewAuditService(log, audits),
		now:               func() time.Time { return fixedNow },
		loc:               time.UTC,
	}

	return &appointmentFixture{
		usecase:      u,
		mock:         mock,
		appointments: appointments,
		audits:       audits,
		locker:       locker,
		notifier:     notifier,
	}
}

func (f *appointmentFixture) verify(t *testing.T) {
	t.Helper()
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("transaction expectations: %v", err)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := timeslot.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func bookingRequest() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentType: string(entity.AppointmentTypeConsultation),
		ScheduledDate:   "2025-06-17",
		ScheduledTime:   "09:30",
		Symptoms:        "headache",
	}
}

func TestCreateAppointmentRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.CreateAppointmentRequest)
		wantErr error
	}{
		{
			name:    "earlier today",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.ScheduledDate = "2025-06-16"; req.ScheduledTime = "07:30" },
			wantErr: ErrAppointmentInPast,
		},
		{
			name:    "yesterday",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.ScheduledDate = "2025-06-15" },
			wantErr: ErrAppointmentInPast,
		},
		{
			name:    "before opening",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.ScheduledTime = "05:59" },
			wantErr: entity.ErrOutsideBookingWindow,
		},
		{
			name:    "after closing",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.ScheduledTime = "22:01" },
			wantErr: entity.ErrOutsideBookingWindow,
		},
		{
			name:    "signed clock",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.ScheduledTime = "+9:30" },
			wantErr: timeslot.ErrInvalidClock,
		},
		{
			name:    "unknown type",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.AppointmentType = "surgery" },
			wantErr: ErrInvalidAppointmentType,
		},
		{
			name:    "unknown doctor",
			mutate:  func(req *dto.CreateAppointmentRequest) { req.DoctorID = strangerID },
			wantErr: ErrDoctorNotFound,
		},
		{
			name: "unknown provider",
			mutate: func(req *dto.CreateAppointmentRequest) {
				id := strangerID
				req.ProviderID = &id
			},
			wantErr: ErrProviderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			req := bookingRequest()
			tt.mutate(req)

			_, err := f.usecase.CreateAppointment(asUser(patientID, entity.RoleIDPatient), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(f.locker.acquired) != 0 {
				t.Fatalf("slot lock taken for a rejected request")
			}
			if len(f.appointments.created) != 0 {
				t.Fatalf("appointment stored for a rejected request")
			}
			f.verify(t)
		})
	}
}

func TestCreateAppointmentConflicts(t *testing.T) {
	tests := []struct {
		name      string
		existing  []entity.Appointment
		createErr error
		wantErr   error
	}{
		{
			name: "doctor already booked",
			existing: []entity.Appointment{{
				ID: uuid.New(), DoctorID: doctorID, PatientID: strangerID,
				Status: entity.AppointmentStatusConfirmed, ScheduledDate: mustDate(t, "2025-06-17"), ScheduledTime: "09:30",
			}},
			wantErr: service.ErrSlotAlreadyBooked,
		},
		{
			name: "patient already booked elsewhere",
			existing: []entity.Appointment{{
				ID: uuid.New(), DoctorID: strangerID, PatientID: patientID,
				Status: entity.AppointmentStatusScheduled, ScheduledDate: mustDate(t, "2025-06-17"), ScheduledTime: "09:30",
			}},
			wantErr: service.ErrSlotAlreadyBooked,
		},
		{
			name:      "insert loses the race on the doctor index",
			createErr: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: doctorActiveSlotIndex},
			wantErr:   service.ErrSlotAlreadyBooked,
		},
		{
			name:      "insert loses the race on the patient index",
			createErr: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: patientActiveSlotIndex},
			wantErr:   service.ErrSlotAlreadyBooked,
		},
		{
			name:      "dangling reference",
			createErr: &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "fk_appointments_provider"},
			wantErr:   ErrInvalidAppointmentRefers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t, tt.existing...)
			f.appointments.createErr = tt.createErr
			f.mock.ExpectBegin()
			f.mock.ExpectRollback()

			_, err := f.usecase.CreateAppointment(asUser(patientID, entity.RoleIDPatient), bookingRequest())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if f.locker.released != 1 {
				t.Fatalf("slot lock released %d times, want 1", f.locker.released)
			}
			if len(f.audits.logs) != 0 || len(f.notifier.sent) != 0 {
				t.Fatalf("failed booking was audited or announced")
			}
			f.verify(t)
		})
	}
}

func TestCreateAppointmentSlotLocked(t *testing.T) {
	f := newAppointmentFixture(t)
	f.locker.err = service.ErrSlotLocked

	_, err := f.usecase.CreateAppointment(asUser(patientID, entity.RoleIDPatient), bookingRequest())
	if !errors.Is(err, service.ErrSlotLocked) {
		t.Fatalf("err = %v, want ErrSlotLocked", err)
	}
	f.verify(t)
}

func TestCreateAppointment(t *testing.T) {
	t.Run("doctor fee", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		got, err := f.usecase.CreateAppointment(asUser(patientID, entity.RoleIDPatient), bookingRequest())
		if err != nil {
			t.Fatalf("CreateAppointment() error = %v", err)
		}
		if got.Status != string(entity.AppointmentStatusScheduled) {
			t.Fatalf("status = %q, want scheduled", got.Status)
		}
		if got.DurationMinutes != entity.DefaultAppointmentDuration {
			t.Fatalf("duration = %d, want %d", got.DurationMinutes, entity.DefaultAppointmentDuration)
		}
		if !got.ConsultationFee.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("fee = %s, want 500", got.ConsultationFee)
		}
		if got.PaymentStatus != string(entity.PaymentStatusPending) {
			t.Fatalf("payment status = %q, want pending", got.PaymentStatus)
		}

		wantKey := service.SlotLockKey(doctorID, mustDate(t, "2025-06-17"), "09:30")
		if len(f.locker.acquired) != 1 || f.locker.acquired[0] != wantKey {
			t.Fatalf("locks = %v, want [%s]", f.locker.acquired, wantKey)
		}
		if f.locker.released != 1 {
			t.Fatalf("slot lock released %d times, want 1", f.locker.released)
		}
		if len(f.audits.logs) != 1 || f.audits.logs[0].Action != entity.AuditActionAppointmentCreate {
			t.Fatalf("audit logs = %+v", f.audits.logs)
		}
		if len(f.notifier.sent) != 1 || f.notifier.sent[0].Event != service.EventAppointmentCreated {
			t.Fatalf("notifications = %+v", f.notifier.sent)
		}
		f.verify(t)
	})

	t.Run("provider fee wins", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		req := bookingRequest()
		id := providerID
		req.ProviderID = &id
		duration := 60
		req.Duration = &duration

		got, err := f.usecase.CreateAppointment(asUser(patientID, entity.RoleIDPatient), req)
		if err != nil {
			t.Fatalf("CreateAppointment() error = %v", err)
		}
		if !got.ConsultationFee.Equal(decimal.NewFromInt(750)) {
			t.Fatalf("fee = %s, want 750", got.ConsultationFee)
		}
		if got.DurationMinutes != 60 {
			t.Fatalf("duration = %d, want 60", got.DurationMinutes)
		}
		f.verify(t)
	})

	t.Run("closing time is bookable", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		req := bookingRequest()
		req.ScheduledTime = "22:00"
		if _, err := f.usecase.CreateAppointment(asUser(patientID, entity.RoleIDPatient), req); err != nil {
			t.Fatalf("CreateAppointment() error = %v", err)
		}
		f.verify(t)
	})
}

func TestCreateAppointmentRequiresIdentity(t *testing.T) {
	f := newAppointmentFixture(t)
	if _, err := f.usecase.CreateAppointment(context.Background(), bookingRequest()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func seededAppointment(status entity.AppointmentStatus) entity.Appointment {
	return entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentType: entity.AppointmentTypeConsultation,
		Status:          status,
		ScheduledDate:   time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		ScheduledTime:   "09:30",
		DurationMinutes: 30,
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     entity.AppointmentStatus
		caller     uuid.UUID
		role       int
		target     entity.AppointmentStatus
		stale      bool
		missing    bool
		wantErr    error
		wantStatus entity.AppointmentStatus
		wantBy     entity.CancelledBy
	}{
		{
			name: "patient cannot confirm", status: entity.AppointmentStatusScheduled,
			caller: patientID, role: entity.RoleIDPatient, target: entity.AppointmentStatusConfirmed,
			wantErr: ErrStatusNotPermitted,
		},
		{
			name: "patient cannot complete", status: entity.AppointmentStatusInProgress,
			caller: patientID, role: entity.RoleIDPatient, target: entity.AppointmentStatusCompleted,
			wantErr: ErrStatusNotPermitted,
		},
		{
			name: "patient cancels", status: entity.AppointmentStatusConfirmed,
			caller: patientID, role: entity.RoleIDPatient, target: entity.AppointmentStatusCancelled,
			wantStatus: entity.AppointmentStatusCancelled, wantBy: entity.CancelledByPatient,
		},
		{
			name: "doctor confirms", status: entity.AppointmentStatusScheduled,
			caller: doctorID, role: entity.RoleIDDoctor, target: entity.AppointmentStatusConfirmed,
			wantStatus: entity.AppointmentStatusConfirmed,
		},
		{
			name: "doctor cancels", status: entity.AppointmentStatusScheduled,
			caller: doctorID, role: entity.RoleIDDoctor, target: entity.AppointmentStatusCancelled,
			wantStatus: entity.AppointmentStatusCancelled, wantBy: entity.CancelledByDoctor,
		},
		{
			name: "doctor skips a step", status: entity.AppointmentStatusScheduled,
			caller: doctorID, role: entity.RoleIDDoctor, target: entity.AppointmentStatusInProgress,
			wantErr: entity.ErrInvalidStatusTransition,
		},
		{
			name: "stranger", status: entity.AppointmentStatusScheduled,
			caller: strangerID, role: entity.RoleIDPatient, target: entity.AppointmentStatusCancelled,
			wantErr: ErrNotAppointmentParty,
		},
		{
			name: "row changed underneath", status: entity.AppointmentStatusScheduled,
			caller: doctorID, role: entity.RoleIDDoctor, target: entity.AppointmentStatusConfirmed, stale: true,
			wantErr: entity.ErrInvalidStatusTransition,
		},
		{
			name: "unknown appointment", status: entity.AppointmentStatusScheduled, missing: true,
			caller: doctorID, role: entity.RoleIDDoctor, target: entity.AppointmentStatusConfirmed,
			wantErr: ErrAppointmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := seededAppointment(tt.status)
			f := newAppointmentFixture(t, seed)
			f.appointments.stale = tt.stale
			id := seed.ID
			if tt.missing {
				id = uuid.New()
			}

			f.mock.ExpectBegin()
			if tt.wantErr == nil {
				f.mock.ExpectCommit()
			} else {
				f.mock.ExpectRollback()
			}

			req := &dto.UpdateAppointmentStatusRequest{Status: string(tt.target), CancellationReason: "travelling"}
			got, err := f.usecase.UpdateStatus(asUser(tt.caller, tt.role), id, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			f.verify(t)

			stored := f.appointments.appointments[seed.ID]
			if tt.wantErr != nil {
				if stored.Status != tt.status {
					t.Fatalf("stored status = %q, want unchanged %q", stored.Status, tt.status)
				}
				if len(f.notifier.sent) != 0 {
					t.Fatalf("rejected change was announced")
				}
				return
			}

			if got.Status != string(tt.wantStatus) || stored.Status != tt.wantStatus {
				t.Fatalf("status = %q / stored %q, want %q", got.Status, stored.Status, tt.wantStatus)
			}
			if tt.wantBy != "" {
				if stored.CancelledBy == nil || *stored.CancelledBy != tt.wantBy {
					t.Fatalf("cancelled by = %v, want %q", stored.CancelledBy, tt.wantBy)
				}
				if stored.CancelledAt == nil || !stored.CancelledAt.Equal(fixedNow) {
					t.Fatalf("cancelled at = %v, want %v", stored.CancelledAt, fixedNow)
				}
				if stored.CancellationReason != "travelling" {
					t.Fatalf("reason = %q", stored.CancellationReason)
				}
			}
			if len(f.notifier.sent) != 1 || f.notifier.sent[0].Event != service.EventAppointmentStatusChanged {
				t.Fatalf("notifications = %+v", f.notifier.sent)
			}
		})
	}
}

func TestUpdateDetails(t *testing.T) {
	diagnosis := "migraine"

	tests := []struct {
		name       string
		status     entity.AppointmentStatus
		caller     uuid.UUID
		req        *dto.UpdateAppointmentDetailsRequest
		wantErr    error
		wantStatus entity.AppointmentStatus
		wantEvent  string
	}{
		{
			name: "in progress with diagnosis completes", status: entity.AppointmentStatusInProgress, caller: doctorID,
			req:        &dto.UpdateAppointmentDetailsRequest{Diagnosis: &diagnosis},
			wantStatus: entity.AppointmentStatusCompleted, wantEvent: service.EventAppointmentStatusChanged,
		},
		{
			name: "in progress with recommendations only", status: entity.AppointmentStatusInProgress, caller: doctorID,
			req:        &dto.UpdateAppointmentDetailsRequest{Recommendations: &diagnosis},
			wantStatus: entity.AppointmentStatusInProgress, wantEvent: service.EventAppointmentUpdated,
		},
		{
			name: "confirmed keeps its status", status: entity.AppointmentStatusConfirmed, caller: doctorID,
			req:        &dto.UpdateAppointmentDetailsRequest{Diagnosis: &diagnosis},
			wantStatus: entity.AppointmentStatusConfirmed, wantEvent: service.EventAppointmentUpdated,
		},
		{
			name: "closed appointment", status: entity.AppointmentStatusCompleted, caller: doctorID,
			req:     &dto.UpdateAppointmentDetailsRequest{Diagnosis: &diagnosis},
			wantErr: ErrAppointmentClosed,
		},
		{
			name: "patient", status: entity.AppointmentStatusInProgress, caller: patientID,
			req:     &dto.UpdateAppointmentDetailsRequest{Diagnosis: &diagnosis},
			wantErr: ErrNotAssignedDoctor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := seededAppointment(tt.status)
			f := newAppointmentFixture(t, seed)
			f.mock.ExpectBegin()
			if tt.wantErr == nil {
				f.mock.ExpectCommit()
			} else {
				f.mock.ExpectRollback()
			}

			got, err := f.usecase.UpdateDetails(asUser(tt.caller, entity.RoleIDDoctor), seed.ID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			f.verify(t)
			if tt.wantErr != nil {
				return
			}

			if got.Status != string(tt.wantStatus) {
				t.Fatalf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if stored := f.appointments.appointments[seed.ID]; stored.Status != tt.wantStatus {
				t.Fatalf("stored status = %q, want %q", stored.Status, tt.wantStatus)
			}
			if len(f.notifier.sent) != 1 || f.notifier.sent[0].Event != tt.wantEvent {
				t.Fatalf("notifications = %+v, want %s", f.notifier.sent, tt.wantEvent)
			}
		})
	}
}

func TestDeleteAppointment(t *testing.T) {
	t.Run("scheduled", func(t *testing.T) {
		seed := seededAppointment(entity.AppointmentStatusScheduled)
		f := newAppointmentFixture(t, seed)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		if err := f.usecase.DeleteAppointment(asUser(patientID, entity.RoleIDPatient), seed.ID); err != nil {
			t.Fatalf("DeleteAppointment() error = %v", err)
		}
		if _, ok := f.appointments.appointments[seed.ID]; ok {
			t.Fatalf("appointment still stored")
		}
		if len(f.audits.logs) != 1 || f.audits.logs[0].Action != entity.AuditActionAppointmentDelete {
			t.Fatalf("audit logs = %+v", f.audits.logs)
		}
		f.verify(t)
	})

	t.Run("confirmed", func(t *testing.T) {
		seed := seededAppointment(entity.AppointmentStatusConfirmed)
		f := newAppointmentFixture(t, seed)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		err := f.usecase.DeleteAppointment(asUser(patientID, entity.RoleIDPatient), seed.ID)
		if !errors.Is(err, ErrAppointmentNotDeletable) {
			t.Fatalf("err = %v, want ErrAppointmentNotDeletable", err)
		}
		if _, ok := f.appointments.appointments[seed.ID]; !ok {
			t.Fatalf("confirmed appointment was removed")
		}
		f.verify(t)
	})
}
