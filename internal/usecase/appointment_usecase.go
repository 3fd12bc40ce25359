package usecase

import (
	"context"
	"errors"
	"time"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"
	"healthcare-portal/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrAppointmentInPast        = errors.New("appointment date and time must be in the future")
	ErrInvalidAppointmentType   = errors.New("invalid appointment type")
	ErrNotAppointmentParty      = errors.New("you are not a participant of this appointment")
	ErrStatusNotPermitted       = errors.New("you are not allowed to set this appointment status")
	ErrNotAssignedDoctor        = errors.New("only the assigned doctor can update appointment details")
	ErrAppointmentClosed        = errors.New("appointment is already closed")
	ErrAppointmentNotDeletable  = errors.New("cannot delete appointment that is not scheduled")
	ErrInvalidAppointmentRefers = errors.New("referenced doctor, provider or appointment does not exist")
)

const (
	// DefaultAppointmentPageLimit is smaller than the directory default.
	DefaultAppointmentPageLimit = 10

	notifyTimeout = 5 * time.Second
)

type AppointmentUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, req *dto.AppointmentListRequest) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	providerRepo      repository.ProviderRepository
	slotCalculator    *service.SlotCalculator
	conflictGuard     *service.ConflictGuard
	slotLocker        service.SlotLocker
	notifier          service.Notifier
	auditService      service.AuditService

	now func() time.Time
	loc *time.Location
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	providerRepo repository.ProviderRepository,
	slotCalculator *service.SlotCalculator,
	conflictGuard *service.ConflictGuard,
	slotLocker service.SlotLocker,
	notifier service.Notifier,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		providerRepo:      providerRepo,
		slotCalculator:    slotCalculator,
		conflictGuard:     conflictGuard,
		slotLocker:        slotLocker,
		notifier:          notifier,
		auditService:      auditService,
		now:               time.Now,
		loc:               time.UTC,
	}
}

func (u *appointmentUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := timeslot.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	result, err := u.slotCalculator.Calculate(ctx, u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		if errors.Is(err, service.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	return &dto.AvailableSlotsResponse{
		DoctorID:       doctorID,
		DoctorName:     result.Doctor.User.FullName(),
		Date:           result.Date.Format(timeslot.DateLayout),
		Day:            result.Day,
		AvailableSlots: result.Slots,
	}, nil
}

// CreateAppointment books a slot for the calling patient. The slot lock keeps
// concurrent requests for the same doctor slot apart; the conflict check and
// the insert share one transaction, and the partial unique indexes catch
// anything that still slips through.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointmentType := entity.AppointmentType(req.AppointmentType)
	if !appointmentType.IsValid() {
		return nil, ErrInvalidAppointmentType
	}

	date, err := timeslot.ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	clock, err := timeslot.Parse(req.ScheduledTime)
	if err != nil {
		return nil, err
	}
	if err := entity.ValidateBookingWindow(clock); err != nil {
		return nil, err
	}

	duration := entity.DefaultAppointmentDuration
	if req.Duration != nil {
		duration = *req.Duration
	}
	if err := entity.ValidateDuration(duration); err != nil {
		return nil, err
	}

	if timeslot.At(date, clock, u.loc).Before(u.now()) {
		return nil, ErrAppointmentInPast
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	fee := doctor.ConsultationFee
	if req.ProviderID != nil {
		provider, err := u.providerRepo.FindByID(db, *req.ProviderID)
		if err != nil {
			u.log.Warnf("Failed to find provider: %+v", err)
			return nil, err
		}
		if provider == nil {
			return nil, ErrProviderNotFound
		}
		fee = provider.ConsultationFee
	}

	if req.PreviousAppointmentID != nil {
		previous, err := u.appointmentRepo.FindByID(db, *req.PreviousAppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find previous appointment: %+v", err)
			return nil, err
		}
		if previous == nil || previous.PatientID != caller.ID {
			return nil, ErrAppointmentNotFound
		}
	}

	at := clock.String()
	release, err := u.slotLocker.Acquire(ctx, req.DoctorID, date, at)
	if err != nil {
		return nil, err
	}
	defer release()

	appointment := &entity.Appointment{
		PatientID:             caller.ID,
		DoctorID:              req.DoctorID,
		ProviderID:            req.ProviderID,
		AppointmentType:       appointmentType,
		Status:                entity.AppointmentStatusScheduled,
		ScheduledDate:         date,
		ScheduledTime:         at,
		DurationMinutes:       duration,
		Symptoms:              req.Symptoms,
		Notes:                 req.Notes,
		FollowUpReason:        req.FollowUpReason,
		PreviousAppointmentID: req.PreviousAppointmentID,
		ConsultationFee:       fee,
		PaymentStatus:         entity.PaymentStatusPending,
	}

	tx := db.Begin()
	defer tx.Rollback()

	proposal := service.BookingProposal{
		DoctorID:  appointment.DoctorID,
		PatientID: appointment.PatientID,
		Date:      date,
		Time:      at,
	}
	if err := u.conflictGuard.Check(tx, proposal); err != nil {
		if !errors.Is(err, service.ErrSlotAlreadyBooked) {
			u.log.Warnf("Failed to check slot conflict: %+v", err)
		}
		return nil, err
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isActiveSlotConflict(err) {
			return nil, service.ErrSlotAlreadyBooked
		}
		if isForeignKeyError(err, "") {
			return nil, ErrInvalidAppointmentRefers
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionAppointmentCreate, "appointments", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notify(appointment, service.EventAppointmentCreated, "New appointment scheduled")

	created, err := u.appointmentRepo.FindByID(db, appointment.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	return converter.AppointmentToResponse(created), nil
}

// ListAppointments shows patients and doctors their own appointments; admins see every one.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, req *dto.AppointmentListRequest) (*dto.AppointmentListResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := &entity.AppointmentFilter{
		Status: entity.AppointmentStatus(req.Status),
		Page:   req.Page,
		Limit:  req.Limit,
	}
	switch caller.RoleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		filter.DoctorID = &caller.ID
	default:
		filter.PatientID = &caller.ID
	}

	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsParty(caller.ID) {
		return nil, ErrNotAppointmentParty
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus moves an appointment through the status machine. A patient may
// only cancel; the assigned doctor drives every other transition.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	target := entity.AppointmentStatus(req.Status)
	if !target.IsValid() {
		return nil, entity.ErrInvalidStatusTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsParty(caller.ID) {
		return nil, ErrNotAppointmentParty
	}

	by := entity.CancelledByDoctor
	if appointment.DoctorID != caller.ID {
		if target != entity.AppointmentStatusCancelled {
			return nil, ErrStatusNotPermitted
		}
		by = entity.CancelledByPatient
	}

	from := appointment.Status
	now := u.now()
	change := entity.StatusChange{
		To:     target,
		By:     by,
		Reason: req.CancellationReason,
		At:     now,
	}
	if err := appointment.Transition(change); err != nil {
		return nil, err
	}

	affectedRows, err := u.appointmentRepo.UpdateStatus(tx, appointment, from)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		// someone else moved the appointment since it was read
		return nil, entity.ErrInvalidStatusTransition
	}
	appointment.UpdatedAt = now

	response := converter.AppointmentToResponse(appointment)
	oldValue := map[string]string{"status": string(from)}
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionAppointmentStatus, "appointments", id.String(), oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notify(appointment, service.EventAppointmentStatusChanged, "Appointment is now "+string(target))

	return response, nil
}

// UpdateDetails records clinical notes. An in-progress appointment that ends
// up with a diagnosis or prescription is completed in the same write.
func (u *appointmentUsecase) UpdateDetails(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != caller.ID {
		return nil, ErrNotAssignedDoctor
	}
	if appointment.Status.IsTerminal() {
		return nil, ErrAppointmentClosed
	}

	oldValue := converter.AppointmentToResponse(appointment)
	from := appointment.Status

	if req.Diagnosis != nil {
		appointment.Diagnosis = *req.Diagnosis
	}
	if req.Prescription != nil {
		appointment.Prescription = *req.Prescription
	}
	if req.Recommendations != nil {
		appointment.Recommendations = *req.Recommendations
	}
	if req.NextAppointmentDate != nil {
		next, err := timeslot.ParseDate(*req.NextAppointmentDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.NextAppointmentDate = &next
	}

	now := u.now()
	if from == entity.AppointmentStatusInProgress && appointment.HasClinicalNotes() {
		if err := appointment.Transition(entity.StatusChange{To: entity.AppointmentStatusCompleted, By: entity.CancelledByDoctor, At: now}); err != nil {
			return nil, err
		}
	}

	affectedRows, err := u.appointmentRepo.UpdateDetails(tx, appointment, from)
	if err != nil {
		u.log.Warnf("Failed to update appointment details: %+v", err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, entity.ErrInvalidStatusTransition
	}
	appointment.UpdatedAt = now

	response := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionAppointmentDetails, "appointments", id.String(), oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if appointment.Status != from {
		u.notify(appointment, service.EventAppointmentStatusChanged, "Appointment is now "+string(appointment.Status))
	} else {
		u.notify(appointment, service.EventAppointmentUpdated, "Appointment details updated")
	}

	return response, nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !appointment.IsParty(caller.ID) {
		return ErrNotAppointmentParty
	}
	if appointment.Status != entity.AppointmentStatusScheduled {
		return ErrAppointmentNotDeletable
	}

	affectedRows, err := u.appointmentRepo.DeleteScheduled(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrAppointmentNotDeletable
	}

	if err := u.auditService.LogDelete(ctx, tx, &caller.ID, entity.AuditActionAppointmentDelete, "appointments", id.String(), converter.AppointmentToResponse(appointment)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.notify(appointment, service.EventAppointmentDeleted, "Appointment deleted")

	return nil
}

// notify runs after commit. It outlives the request context and never fails the caller.
func (u *appointmentUsecase) notify(appointment *entity.Appointment, event, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	n := service.Notification{
		Event:         event,
		AppointmentID: appointment.ID,
		RecipientIDs:  []uuid.UUID{appointment.PatientID, appointment.DoctorID},
		Status:        string(appointment.Status),
		Message:       message,
		OccurredAt:    u.now().UTC(),
	}
	if err := u.notifier.Publish(ctx, n); err != nil {
		u.log.Warnf("Failed to notify %s for appointment %s: %+v", event, appointment.ID, err)
	}
}
