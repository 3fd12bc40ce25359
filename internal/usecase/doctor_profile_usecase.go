package usecase

import (
	"context"
	"errors"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidOldPassword  = errors.New("invalid old password")
	ErrReviewAlreadyExists = errors.New("you have already reviewed this entry")
)

type DoctorProfileUsecase interface {
	ListDoctors(ctx context.Context, req *dto.DoctorListRequest) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDetailResponse, error)
	UpdateSelfProfile(ctx context.Context, req *dto.UpdateDoctorSelfRequest) (*dto.DoctorResponse, error)
	CreateReview(ctx context.Context, doctorID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	scheduleRepo      repository.DoctorScheduleRepository
	auditService      service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		scheduleRepo:      scheduleRepo,
		auditService:      auditService,
	}
}

func (u *doctorProfileUsecase) ListDoctors(ctx context.Context, req *dto.DoctorListRequest) (*dto.DoctorListResponse, error) {
	filter := &entity.DoctorFilter{
		Specialization: req.Specialization,
		City:           req.City,
		Area:           req.Area,
		Name:           req.Name,
		Page:           req.Page,
		Limit:          req.Limit,
	}

	profiles, total, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all doctor profiles: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   total,
	}, nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDetailResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	template, err := u.scheduleRepo.FindTemplate(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedule of doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.DoctorDetailResponse{
		DoctorResponse: *converter.DoctorProfileToResponse(profile),
		Schedule:       converter.WeeklyTemplateToResponse(template),
	}, nil
}

// UpdateSelfProfile applies only the fields present in req.
func (u *doctorProfileUsecase) UpdateSelfProfile(ctx context.Context, req *dto.UpdateDoctorSelfRequest) (*dto.DoctorResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
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

	oldValue := converter.DoctorProfileToResponse(profile)
	userChanged := false

	if req.Password != nil {
		if req.OldPassword == nil || bcrypt.CompareHashAndPassword([]byte(profile.User.Password), []byte(*req.OldPassword)) != nil {
			return nil, ErrInvalidOldPassword
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		profile.User.Password = string(hashedPassword)
		userChanged = true
	}
	if req.FirstName != nil {
		profile.User.FirstName = *req.FirstName
		userChanged = true
	}
	if req.LastName != nil {
		profile.User.LastName = *req.LastName
		userChanged = true
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.Qualifications != nil {
		profile.Qualifications = *req.Qualifications
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}
	if req.HospitalAffiliation != nil {
		profile.HospitalAffiliation = *req.HospitalAffiliation
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = decimal.NewFromFloat(*req.ConsultationFee).Round(2)
	}
	if req.Biography != nil {
		profile.Biography = *req.Biography
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Area != nil {
		profile.Area = *req.Area
	}

	if userChanged {
		if err := u.userRepo.Update(tx, &profile.User); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	newValue := converter.DoctorProfileToResponse(profile)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionProfileUpdate, "doctor_profiles", caller.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// CreateReview stores the caller's rating and refreshes the doctor's cached average.
func (u *doctorProfileUsecase) CreateReview(ctx context.Context, doctorID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	review := &entity.DoctorReview{
		DoctorID:  doctorID,
		PatientID: caller.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := u.doctorProfileRepo.CreateReview(tx, review); err != nil {
		if isDuplicateKeyError(err, "uq_doctor_reviews_doctor_patient") {
			return nil, ErrReviewAlreadyExists
		}
		u.log.Warnf("Failed to create doctor review: %+v", err)
		return nil, err
	}

	if err := u.doctorProfileRepo.RefreshRating(tx, doctorID); err != nil {
		u.log.Warnf("Failed to refresh rating of doctor %s: %+v", doctorID, err)
		return nil, err
	}

	response := converter.DoctorReviewToResponse(review)
	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionReviewCreate, "doctor_reviews", doctorID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}
