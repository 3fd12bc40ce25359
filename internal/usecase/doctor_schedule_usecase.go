package usecase

import (
	"context"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"
	"healthcare-portal/pkg/timeslot"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorScheduleUsecase interface {
	GetMySchedule(ctx context.Context) (*dto.WeeklyTemplateResponse, error)
	ReplaceMySchedule(ctx context.Context, req *dto.UpdateScheduleRequest) (*dto.WeeklyTemplateResponse, error)
}

type doctorScheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	scheduleRepo      repository.DoctorScheduleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:                db,
		log:               log,
		scheduleRepo:      scheduleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorScheduleUsecase) GetMySchedule(ctx context.Context) (*dto.WeeklyTemplateResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	template, err := u.scheduleRepo.FindTemplate(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find schedule of doctor %s: %+v", caller.ID, err)
		return nil, err
	}

	return converter.WeeklyTemplateToResponse(template), nil
}

// ReplaceMySchedule swaps the caller's whole weekly template in one transaction.
func (u *doctorScheduleUsecase) ReplaceMySchedule(ctx context.Context, req *dto.UpdateScheduleRequest) (*dto.WeeklyTemplateResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	template, err := templateFromRequest(req)
	if err != nil {
		return nil, err
	}
	template.DoctorID = caller.ID

	if err := template.Validate(); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	old, err := u.scheduleRepo.FindTemplate(tx, caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find schedule of doctor %s: %+v", caller.ID, err)
		return nil, err
	}

	if err := u.scheduleRepo.ReplaceTemplate(tx, template); err != nil {
		u.log.Warnf("Failed to replace schedule of doctor %s: %+v", caller.ID, err)
		return nil, err
	}

	response := converter.WeeklyTemplateToResponse(template)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionScheduleUpdate, "doctor_schedules", caller.ID.String(), converter.WeeklyTemplateToResponse(old), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func templateFromRequest(req *dto.UpdateScheduleRequest) (*entity.WeeklyTemplate, error) {
	template := &entity.WeeklyTemplate{}

	for _, a := range req.Availability {
		template.Availability = append(template.Availability, entity.DoctorAvailability{
			DayOfWeek: a.Day,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		})
	}

	for _, b := range req.BlockedDates {
		date, err := timeslot.ParseDate(b.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		template.BlockedDates = append(template.BlockedDates, entity.DoctorBlockedDate{
			BlockedDate: date,
			Reason:      b.Reason,
		})
	}

	for _, v := range req.Vacations {
		start, err := timeslot.ParseDate(v.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		end, err := timeslot.ParseDate(v.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		template.Vacations = append(template.Vacations, entity.DoctorVacation{
			StartDate: start,
			EndDate:   end,
			Reason:    v.Reason,
		})
	}

	return template, nil
}
