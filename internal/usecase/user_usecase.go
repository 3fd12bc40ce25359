package usecase

import (
	"context"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	SetActive(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserActiveRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tokens       tokenStore
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tokens:       tokenStore{redisClient: redisClient},
		auditService: auditService,
	}
}

// SetActive toggles an account. Deactivation also revokes every live token.
func (u *userUsecase) SetActive(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserActiveRequest) (*dto.UserResponse, error) {
	admin, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	active := *req.IsActive

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affectedRows, err := u.userRepo.UpdateActive(tx, userID, active)
	if err != nil {
		u.log.Warnf("Failed to update user %s activation: %+v", userID, err)
		return nil, err
	}
	if affectedRows == 0 {
		return nil, ErrUserNotFound
	}

	newValue := map[string]bool{"is_active": active}
	if err := u.auditService.LogUpdate(ctx, tx, &admin.ID, entity.AuditActionUserActivation, "users", userID.String(), nil, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if !active {
		if err := u.tokens.revokeAll(ctx, userID); err != nil {
			u.log.Errorf("Failed to revoke tokens of deactivated user %s: %+v", userID, err)
			return nil, err
		}
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}
