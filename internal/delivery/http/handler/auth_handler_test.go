package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthcare-portal/config"
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/delivery/http/middleware"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/jwt"
	"healthcare-portal/pkg/validator"

	"github.com/google/uuid"
)

type fakeAuthUsecase struct {
	err           error
	logoutUserID  uuid.UUID
	logoutAccess  string
	logoutRefresh string
}

func (f *fakeAuthUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.UserResponse{Email: req.Email, Role: entity.RolePatient}, nil
}

func (f *fakeAuthUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.UserResponse{Email: req.Email, Role: entity.RoleDoctor}, nil
}

func (f *fakeAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	f.logoutUserID, f.logoutAccess, f.logoutRefresh = userID, accessTokenID, refreshTokenID
	return f.err
}

func (f *fakeAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return nil, f.err
}

func (f *fakeAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.UserResponse{ID: userID}, nil
}

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "handler-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestRegisterPatient(t *testing.T) {
	valid := `{"email":"p@example.com","password":"secret1","first_name":"Meera","last_name":"Shah","date_of_birth":"1990-02-01"}`

	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"ok", valid, nil, http.StatusCreated},
		{"bad email", strings.Replace(valid, "p@example.com", "nope", 1), nil, http.StatusBadRequest},
		{"bad birth date", strings.Replace(valid, "1990-02-01", "01/02/1990", 1), nil, http.StatusBadRequest},
		{"duplicate email", valid, usecase.ErrEmailAlreadyExists, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthUsecase{err: tc.err}, validator.NewValidator(), testJWTService())

			rec := httptest.NewRecorder()
			h.RegisterPatient(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register/patient", strings.NewReader(tc.body)))

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestRegisterDoctorDuplicateLicense(t *testing.T) {
	body := `{"email":"d@example.com","password":"secret1","first_name":"Arjun","last_name":"Iyer","license_number":"MH-1","specialization":"Cardiology","consultation_fee":800}`
	h := NewAuthHandler(&fakeAuthUsecase{err: usecase.ErrLicenseAlreadyExists}, validator.NewValidator(), testJWTService())

	rec := httptest.NewRecorder()
	h.RegisterDoctor(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register/doctor", strings.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLoginErrors(t *testing.T) {
	body := `{"email":"p@example.com","password":"secret1"}`
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"wrong password", usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"deactivated", usecase.ErrAccountInactive, http.StatusUnauthorized},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthUsecase{err: tc.err}, validator.NewValidator(), testJWTService())

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestLogoutRevokesOwnRefreshToken(t *testing.T) {
	jwtService := testJWTService()
	userID := uuid.New()
	refresh, refreshID, err := jwtService.GenerateRefreshToken(userID, "p@example.com", entity.RoleIDPatient)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	foreign, _, err := jwtService.GenerateRefreshToken(uuid.New(), "x@example.com", entity.RoleIDPatient)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cases := []struct {
		name        string
		body        string
		wantRefresh string
	}{
		{"own refresh token", `{"refresh_token":"` + refresh + `"}`, refreshID},
		{"someone else's refresh token", `{"refresh_token":"` + foreign + `"}`, ""},
		{"no body", ``, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAuthUsecase{}
			h := NewAuthHandler(fake, validator.NewValidator(), jwtService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", strings.NewReader(tc.body))
			ctx := middleware.WithIdentity(req.Context(), userID, entity.RoleIDPatient)
			ctx = context.WithValue(ctx, middleware.TokenIDKey, "access-jti")
			rec := httptest.NewRecorder()
			h.Logout(rec, req.WithContext(ctx))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if fake.logoutUserID != userID || fake.logoutAccess != "access-jti" {
				t.Errorf("logout called with %s/%s", fake.logoutUserID, fake.logoutAccess)
			}
			if fake.logoutRefresh != tc.wantRefresh {
				t.Errorf("refresh token id = %q, want %q", fake.logoutRefresh, tc.wantRefresh)
			}
		})
	}
}

func TestGetCurrentUserRequiresIdentity(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUsecase{}, validator.NewValidator(), testJWTService())

	rec := httptest.NewRecorder()
	h.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
