package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/response"
	"healthcare-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProviderHandler struct {
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

func providerListRequest(r *http.Request) dto.ProviderListRequest {
	q := r.URL.Query()
	return dto.ProviderListRequest{
		Type:      q.Get("type"),
		Specialty: q.Get("specialty"),
		Area:      q.Get("area"),
		City:      q.Get("city"),
		Search:    q.Get("search"),
		Emergency: boolQuery(r, "emergency"),
		Featured:  boolQuery(r, "featured"),
		Verified:  boolQuery(r, "verified"),
		PageQuery: pageQuery(r, dto.DefaultPageLimit),
	}
}

func (h *ProviderHandler) writeList(w http.ResponseWriter, req dto.ProviderListRequest, result *dto.ProviderListResponse) {
	meta := response.NewMeta(req.Page, req.Limit, result.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Providers retrieved successfully", result.Providers, meta)
}

// ListProviders handles the provider directory
// @Summary List providers
// @Tags Providers
// @Produce json
// @Param type query string false "Provider type"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /providers [get]
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	req := providerListRequest(r)
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.providerUsecase.ListProviders(r.Context(), &req)
	if err != nil {
		internalError(w, err, "Failed to get providers")
		return
	}

	h.writeList(w, req, result)
}

func (h *ProviderHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	req := providerListRequest(r)
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.providerUsecase.SearchProviders(r.Context(), r.URL.Query().Get("q"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrSearchQueryRequired) {
			response.BadRequest(w, "Search query is required")
			return
		}
		internalError(w, err, "Failed to search providers")
		return
	}

	h.writeList(w, req, result)
}

func (h *ProviderHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.providerUsecase.GetCategories(r.Context())
	if err != nil {
		internalError(w, err, "Failed to get provider categories")
		return
	}

	response.Success(w, http.StatusOK, "Provider categories retrieved successfully", categories)
}

func (h *ProviderHandler) GetPopularAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.providerUsecase.GetPopularAreas(r.Context())
	if err != nil {
		internalError(w, err, "Failed to get popular areas")
		return
	}

	response.Success(w, http.StatusOK, "Popular areas retrieved successfully", areas)
}

func (h *ProviderHandler) ListByArea(w http.ResponseWriter, r *http.Request) {
	req := providerListRequest(r)
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.providerUsecase.ListByArea(r.Context(), mux.Vars(r)["area"], &req)
	if err != nil {
		internalError(w, err, "Failed to get providers")
		return
	}

	h.writeList(w, req, result)
}

func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	provider, err := h.providerUsecase.GetProvider(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrProviderNotFound) {
			response.NotFound(w, "Provider not found")
			return
		}
		internalError(w, err, "Failed to get provider")
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", provider)
}

// CreateProvider handles adding a directory entry
// @Summary Create provider
// @Tags Providers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateProviderRequest true "Create Provider Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /providers [post]
func (h *ProviderHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.CreateProvider(r.Context(), &req)
	if err != nil {
		internalError(w, err, "Failed to create provider")
		return
	}

	response.Success(w, http.StatusCreated, "Provider created successfully", provider)
}

func (h *ProviderHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.providerUsecase.CreateReview(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProviderNotFound):
			response.NotFound(w, "Provider not found")
		case errors.Is(err, usecase.ErrReviewAlreadyExists):
			response.BadRequest(w, err.Error())
		default:
			internalError(w, err, "Failed to create review")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}
