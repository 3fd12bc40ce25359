package usecase

import (
	"context"
	"errors"
	"strings"

	"healthcare-portal/internal/converter"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrProviderNotFound    = errors.New("provider not found")
	ErrSearchQueryRequired = errors.New("search query is required")
)

// PopularAreaLimit caps the popular areas listing.
const PopularAreaLimit = 20

type ProviderUsecase interface {
	ListProviders(ctx context.Context, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error)
	SearchProviders(ctx context.Context, query string, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error)
	GetCategories(ctx context.Context) ([]dto.ProviderCategoryResponse, error)
	GetPopularAreas(ctx context.Context) ([]dto.PopularAreaResponse, error)
	ListByArea(ctx context.Context, area string, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error)
	GetProvider(ctx context.Context, id uuid.UUID) (*dto.ProviderResponse, error)
	CreateProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	CreateReview(ctx context.Context, providerID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
}

type providerUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderRepository
	auditService service.AuditService
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	auditService service.AuditService,
) ProviderUsecase {
	return &providerUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
		auditService: auditService,
	}
}

func providerFilter(req *dto.ProviderListRequest) *entity.ProviderFilter {
	return &entity.ProviderFilter{
		Type:      entity.ProviderType(req.Type),
		Specialty: req.Specialty,
		Area:      req.Area,
		City:      req.City,
		Search:    req.Search,
		Emergency: req.Emergency,
		Featured:  req.Featured,
		Verified:  req.Verified,
		Page:      req.Page,
		Limit:     req.Limit,
	}
}

// list fetches one page and the total count concurrently.
func (u *providerUsecase) list(ctx context.Context, filter *entity.ProviderFilter) (*dto.ProviderListResponse, error) {
	var (
		providers []entity.Provider
		total     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		providers, err = u.providerRepo.FindAll(u.db.WithContext(gctx), filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.providerRepo.Count(u.db.WithContext(gctx), filter)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to list providers: %+v", err)
		return nil, err
	}

	return &dto.ProviderListResponse{
		Providers: converter.ProvidersToResponses(providers),
		Total:     total,
	}, nil
}

func (u *providerUsecase) ListProviders(ctx context.Context, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error) {
	return u.list(ctx, providerFilter(req))
}

func (u *providerUsecase) SearchProviders(ctx context.Context, query string, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	filter := providerFilter(req)
	filter.Search = query
	return u.list(ctx, filter)
}

func (u *providerUsecase) GetCategories(ctx context.Context) ([]dto.ProviderCategoryResponse, error) {
	categories, err := u.providerRepo.Categories(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to aggregate provider categories: %+v", err)
		return nil, err
	}
	return converter.ProviderCategoriesToResponses(categories), nil
}

func (u *providerUsecase) GetPopularAreas(ctx context.Context) ([]dto.PopularAreaResponse, error) {
	areas, err := u.providerRepo.PopularAreas(u.db.WithContext(ctx), PopularAreaLimit)
	if err != nil {
		u.log.Warnf("Failed to aggregate popular areas: %+v", err)
		return nil, err
	}
	return converter.PopularAreasToResponses(areas), nil
}

func (u *providerUsecase) ListByArea(ctx context.Context, area string, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error) {
	filter := providerFilter(req)
	filter.Area = area
	return u.list(ctx, filter)
}

func (u *providerUsecase) GetProvider(ctx context.Context, id uuid.UUID) (*dto.ProviderResponse, error) {
	provider, err := u.providerRepo.FindByIDWithReviews(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) CreateProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	city := req.City
	if city == "" {
		city = entity.DefaultCity
	}

	provider := &entity.Provider{
		Name:              req.Name,
		Type:              entity.ProviderType(req.Type),
		Specialty:         req.Specialty,
		Description:       req.Description,
		Street:            req.Street,
		Area:              req.Area,
		City:              city,
		State:             req.State,
		Pincode:           req.Pincode,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Phone:             req.Phone,
		Email:             req.Email,
		Website:           req.Website,
		ConsultationFee:   decimal.NewFromFloat(req.ConsultationFee).Round(2),
		EmergencyServices: req.EmergencyServices,
		Verified:          req.Verified,
		Featured:          req.Featured,
		Active:            true,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.providerRepo.Create(tx, provider); err != nil {
		u.log.Warnf("Failed to create provider: %+v", err)
		return nil, err
	}

	response := converter.ProviderToResponse(provider)
	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionProviderCreate, "providers", provider.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *providerUsecase) CreateReview(ctx context.Context, providerID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	provider, err := u.providerRepo.FindByID(tx, providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider: %+v", err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	review := &entity.ProviderReview{
		ProviderID: providerID,
		UserID:     caller.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := u.providerRepo.CreateReview(tx, review); err != nil {
		if isDuplicateKeyError(err, "uq_provider_reviews_provider_user") {
			return nil, ErrReviewAlreadyExists
		}
		u.log.Warnf("Failed to create provider review: %+v", err)
		return nil, err
	}

	if err := u.providerRepo.RefreshRating(tx, providerID); err != nil {
		u.log.Warnf("Failed to refresh rating of provider %s: %+v", providerID, err)
		return nil, err
	}

	response := converter.ProviderReviewToResponse(review)
	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionReviewCreate, "provider_reviews", providerID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}
