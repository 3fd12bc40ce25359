package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"
	"healthcare-portal/pkg/timeslot"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient profile not found")
)

type PatientProfileUsecase interface {
	GetSelfProfile(ctx context.Context) (*dto.PatientResponse, error)
	UpdateSelfProfile(ctx context.Context, req *dto.UpdatePatientSelfRequest) (*dto.PatientResponse, error)
	ListMedicalRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error)
	CreateMedicalRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	medicalRecordRepo  repository.MedicalRecordRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		medicalRecordRepo:  medicalRecordRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetSelfProfile(ctx context.Context) (*dto.PatientResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile, &profile.User), nil
}

// UpdateSelfProfile applies only the fields present in req. Changing the
// password requires the current one.
func (u *patientProfileUsecase) UpdateSelfProfile(ctx context.Context, req *dto.UpdatePatientSelfRequest) (*dto.PatientResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}
	user := &profile.User

	oldValue := converter.PatientProfileToResponse(profile, user)
	userChanged := false

	if req.Password != nil {
		if req.OldPassword == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.OldPassword)) != nil {
			return nil, ErrInvalidOldPassword
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
		userChanged = true
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
		userChanged = true
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
		userChanged = true
	}
	if req.DateOfBirth != nil {
		dob, err := timeslot.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = &dob
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&profile.Gender, req.Gender)
	assign(&profile.Phone, req.Phone)
	assign(&profile.Street, req.Street)
	assign(&profile.Area, req.Area)
	assign(&profile.City, req.City)
	assign(&profile.State, req.State)
	assign(&profile.Pincode, req.Pincode)
	assign(&profile.BloodType, req.BloodType)
	assign(&profile.EmergencyContactName, req.EmergencyContactName)
	assign(&profile.EmergencyContactPhone, req.EmergencyContactPhone)

	if req.Allergies != nil {
		profile.Allergies = *req.Allergies
	}
	if req.MedicalConditions != nil {
		profile.MedicalConditions = *req.MedicalConditions
	}
	if req.Insurance != nil {
		insurance, err := insuranceFromRequest(req.Insurance)
		if err != nil {
			return nil, err
		}
		profile.Insurance = insurance
	}

	if userChanged {
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}

	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	newValue := converter.PatientProfileToResponse(profile, user)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionProfileUpdate, "patient_profiles", caller.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func insuranceFromRequest(req *dto.InsuranceRequest) (entity.PatientInsurance, error) {
	insurance := entity.PatientInsurance{
		Provider:     req.Provider,
		PolicyNumber: req.PolicyNumber,
		CoverageType: req.CoverageType,
		Status:       req.Status,
	}
	if insurance.Status == "" {
		insurance.Status = entity.InsuranceStatusActive
	}

	parse := func(raw string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		d, err := timeslot.ParseDate(raw)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		return &d, nil
	}
	var err error
	if insurance.EffectiveDate, err = parse(req.EffectiveDate); err != nil {
		return insurance, err
	}
	if insurance.ExpirationDate, err = parse(req.ExpirationDate); err != nil {
		return insurance, err
	}

	return insurance, insurance.Validate()
}

func (u *patientProfileUsecase) ListMedicalRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := u.medicalRecordRepo.FindByPatientID(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		MedicalRecords: converter.MedicalRecordsToResponses(records),
	}, nil
}

// CreateMedicalRecord stores a record and its attachments for the calling patient.
func (u *patientProfileUsecase) CreateMedicalRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	recordDate, err := timeslot.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	status := entity.MedicalRecordStatus(req.Status)
	if status == "" {
		status = entity.MedicalRecordStatusCompleted
	}

	record := &entity.MedicalRecord{
		PatientID:   caller.ID,
		Title:       req.Title,
		RecordDate:  recordDate,
		DoctorName:  req.Doctor,
		RecordType:  req.Type,
		Summary:     req.Summary,
		Status:      status,
		Attachments: make([]entity.MedicalRecordAttachment, len(req.Attachments)),
	}
	for i, a := range req.Attachments {
		record.Attachments[i] = entity.MedicalRecordAttachment{
			Name:     a.Name,
			URL:      a.URL,
			FileType: a.Type,
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.medicalRecordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	response := converter.MedicalRecordToResponse(record)
	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionMedicalRecordAdd, "patient_medical_records", strconv.FormatInt(record.ID, 10), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}
