package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errStoreFailure = errors.New("connection refused")

type fakeProviderUsecase struct {
	lastList  *dto.ProviderListRequest
	lastQuery string
	err       error
}

func (f *fakeProviderUsecase) ListProviders(ctx context.Context, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error) {
	f.lastList = req
	return &dto.ProviderListResponse{Providers: []dto.ProviderResponse{}, Total: 3}, f.err
}

func (f *fakeProviderUsecase) SearchProviders(ctx context.Context, query string, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error) {
	f.lastQuery = query
	if strings.TrimSpace(query) == "" {
		return nil, usecase.ErrSearchQueryRequired
	}
	return &dto.ProviderListResponse{Providers: []dto.ProviderResponse{}}, f.err
}

func (f *fakeProviderUsecase) GetCategories(ctx context.Context) ([]dto.ProviderCategoryResponse, error) {
	return []dto.ProviderCategoryResponse{{Type: "clinic", Count: 2}}, f.err
}

func (f *fakeProviderUsecase) GetPopularAreas(ctx context.Context) ([]dto.PopularAreaResponse, error) {
	return []dto.PopularAreaResponse{}, f.err
}

func (f *fakeProviderUsecase) ListByArea(ctx context.Context, area string, req *dto.ProviderListRequest) (*dto.ProviderListResponse, error) {
	f.lastQuery = area
	return &dto.ProviderListResponse{Providers: []dto.ProviderResponse{}}, f.err
}

func (f *fakeProviderUsecase) GetProvider(ctx context.Context, id uuid.UUID) (*dto.ProviderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ProviderResponse{ID: id}, nil
}

func (f *fakeProviderUsecase) CreateProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	return &dto.ProviderResponse{Name: req.Name}, f.err
}

func (f *fakeProviderUsecase) CreateReview(ctx context.Context, providerID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ReviewResponse{Rating: req.Rating}, nil
}

func TestListProvidersParsesFilters(t *testing.T) {
	fake := &fakeProviderUsecase{}
	h := NewProviderHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers?type=clinic&area=Bandra&emergency=true&featured=maybe&limit=5", nil)
	rec := httptest.NewRecorder()
	h.ListProviders(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	got := fake.lastList
	if got.Type != "clinic" || got.Area != "Bandra" || got.Limit != 5 || got.Page != 1 {
		t.Errorf("request = %+v", got)
	}
	if got.Emergency == nil || !*got.Emergency {
		t.Errorf("emergency = %v, want true", got.Emergency)
	}
	if got.Featured != nil {
		t.Errorf("unparseable featured should be ignored, got %v", *got.Featured)
	}
}

func TestListProvidersRejectsUnknownType(t *testing.T) {
	h := NewProviderHandler(&fakeProviderUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers?type=spa", nil)
	rec := httptest.NewRecorder()
	h.ListProviders(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchProvidersRequiresQuery(t *testing.T) {
	h := NewProviderHandler(&fakeProviderUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.SearchProviders(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/search", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.SearchProviders(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/search?q=cardio", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGetProviderNotFound(t *testing.T) {
	h := NewProviderHandler(&fakeProviderUsecase{err: usecase.ErrProviderNotFound}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/x", nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.GetProvider(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateProviderReview(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"ok", `{"rating":4,"comment":"clean"}`, nil, http.StatusCreated},
		{"rating out of range", `{"rating":6}`, nil, http.StatusBadRequest},
		{"duplicate", `{"rating":4}`, usecase.ErrReviewAlreadyExists, http.StatusBadRequest},
		{"unknown provider", `{"rating":4}`, usecase.ErrProviderNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewProviderHandler(&fakeProviderUsecase{err: tc.err}, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/x/reviews", strings.NewReader(tc.body))
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			rec := httptest.NewRecorder()
			h.CreateReview(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}
