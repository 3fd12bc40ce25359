package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/service"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeAppointmentUsecase struct {
	slots   func(doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	create  func(req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	list    func(req *dto.AppointmentListRequest) (*dto.AppointmentListResponse, error)
	get     func(id uuid.UUID) (*dto.AppointmentResponse, error)
	status  func(id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	details func(id uuid.UUID, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error)
	del     func(id uuid.UUID) error
}

func (f *fakeAppointmentUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	return f.slots(doctorID, date)
}

func (f *fakeAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.create(req)
}

func (f *fakeAppointmentUsecase) ListAppointments(ctx context.Context, req *dto.AppointmentListRequest) (*dto.AppointmentListResponse, error) {
	return f.list(req)
}

func (f *fakeAppointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return f.get(id)
}

func (f *fakeAppointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	return f.status(id, req)
}

func (f *fakeAppointmentUsecase) UpdateDetails(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error) {
	return f.details(id, req)
}

func (f *fakeAppointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return f.del(id)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func validCreateBody(doctorID uuid.UUID, at string) string {
	return fmt.Sprintf(`{"doctor_id":%q,"appointment_type":"consultation","scheduled_date":"2030-06-17","scheduled_time":%q}`, doctorID, at)
}

func TestGetAvailableSlots(t *testing.T) {
	doctorID := uuid.New()
	fake := &fakeAppointmentUsecase{
		slots: func(id uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
			if id != doctorID {
				return nil, usecase.ErrDoctorNotFound
			}
			return &dto.AvailableSlotsResponse{
				DoctorID:       id,
				DoctorName:     "Asha Rao",
				Date:           date,
				Day:            "monday",
				AvailableSlots: []string{"09:00", "10:00", "10:30"},
			}, nil
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"missing doctor", "?date=2025-06-16", http.StatusBadRequest},
		{"missing date", "?doctorId=" + doctorID.String(), http.StatusBadRequest},
		{"malformed doctor", "?doctorId=abc&date=2025-06-16", http.StatusBadRequest},
		{"unknown doctor", "?doctorId=" + uuid.NewString() + "&date=2025-06-16", http.StatusNotFound},
		{"ok", "?doctorId=" + doctorID.String() + "&date=2025-06-16", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/available-slots"+tc.query, nil)
			rec := httptest.NewRecorder()

			h.GetAvailableSlots(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/available-slots?doctorId="+doctorID.String()+"&date=2025-06-16", nil)
	rec := httptest.NewRecorder()
	h.GetAvailableSlots(rec, req)

	var data dto.AvailableSlotsResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if strings.Join(data.AvailableSlots, ",") != "09:00,10:00,10:30" {
		t.Errorf("available_slots = %v", data.AvailableSlots)
	}
	if data.DoctorName != "Asha Rao" {
		t.Errorf("doctor_name = %q", data.DoctorName)
	}
}

func TestCreateAppointmentErrors(t *testing.T) {
	doctorID := uuid.New()

	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"malformed body", `{"doctor_id":`, nil, http.StatusBadRequest},
		{"unknown type", strings.Replace(validCreateBody(doctorID, "09:30"), "consultation", "massage", 1), nil, http.StatusBadRequest},
		{"bad time format", validCreateBody(doctorID, "9h30"), nil, http.StatusBadRequest},
		{"slot already booked", validCreateBody(doctorID, "09:30"), service.ErrSlotAlreadyBooked, http.StatusBadRequest},
		{"slot locked by concurrent request", validCreateBody(doctorID, "09:30"), service.ErrSlotLocked, http.StatusBadRequest},
		{"outside booking window", validCreateBody(doctorID, "05:59"), entity.ErrOutsideBookingWindow, http.StatusBadRequest},
		{"in the past", validCreateBody(doctorID, "09:30"), usecase.ErrAppointmentInPast, http.StatusBadRequest},
		{"doctor missing", validCreateBody(doctorID, "09:30"), usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"provider missing", validCreateBody(doctorID, "09:30"), usecase.ErrProviderNotFound, http.StatusNotFound},
		{"store timeout", validCreateBody(doctorID, "09:30"), context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"store failure", validCreateBody(doctorID, "09:30"), errStoreFailure, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			fake := &fakeAppointmentUsecase{
				create: func(req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
					called = true
					return nil, tc.err
				},
			}
			h := NewAppointmentHandler(fake, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.CreateAppointment(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
			if tc.err == nil && called {
				t.Errorf("usecase should not run for an invalid request")
			}
			if tc.want == http.StatusServiceUnavailable && rec.Header().Get("Retry-After") == "" {
				t.Errorf("503 must carry Retry-After")
			}
		})
	}
}

func TestCreateAppointmentSucceeds(t *testing.T) {
	doctorID := uuid.New()
	fake := &fakeAppointmentUsecase{
		create: func(req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			if req.DoctorID != doctorID || req.ScheduledTime != "21:59" {
				t.Errorf("unexpected request %+v", req)
			}
			return &dto.AppointmentResponse{
				ID:            uuid.New(),
				Status:        string(entity.AppointmentStatusScheduled),
				ScheduledDate: req.ScheduledDate,
				ScheduledTime: req.ScheduledTime,
			}, nil
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validCreateBody(doctorID, "21:59")))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var data dto.AppointmentResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled", data.Status)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"unknown status", `{"status":"archived"}`, nil, http.StatusBadRequest},
		{"not a party", `{"status":"cancelled"}`, usecase.ErrNotAppointmentParty, http.StatusForbidden},
		{"patient confirming", `{"status":"confirmed"}`, usecase.ErrStatusNotPermitted, http.StatusForbidden},
		{"terminal state", `{"status":"confirmed"}`, entity.ErrInvalidStatusTransition, http.StatusBadRequest},
		{"completing without notes", `{"status":"completed"}`, entity.ErrClinicalNotesRequired, http.StatusBadRequest},
		{"unknown appointment", `{"status":"cancelled"}`, usecase.ErrAppointmentNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAppointmentUsecase{
				status: func(id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
					return nil, tc.err
				},
			}
			h := NewAppointmentHandler(fake, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/x/status", strings.NewReader(tc.body))
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			rec := httptest.NewRecorder()
			h.UpdateStatus(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestUpdateStatusRejectsBadID(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/nope/status", strings.NewReader(`{"status":"cancelled"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListAppointmentsMeta(t *testing.T) {
	var got *dto.AppointmentListRequest
	fake := &fakeAppointmentUsecase{
		list: func(req *dto.AppointmentListRequest) (*dto.AppointmentListResponse, error) {
			got = req
			return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}, Total: 25}, nil
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?status=scheduled&page=2&limit=500", nil)
	rec := httptest.NewRecorder()
	h.ListAppointments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.Status != "scheduled" || got.Page != 2 || got.Limit != dto.MaxPageLimit {
		t.Errorf("request = %+v", got)
	}
	env := decodeEnvelope(t, rec)
	if env.Meta == nil || env.Meta.Total != 25 || env.Meta.TotalPages != 1 {
		t.Errorf("meta = %+v", env.Meta)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec = httptest.NewRecorder()
	h.ListAppointments(rec, req)
	if got.Page != 1 || got.Limit != usecase.DefaultAppointmentPageLimit {
		t.Errorf("defaults = %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/appointments?status=archived", nil)
	rec = httptest.NewRecorder()
	h.ListAppointments(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status filter: status = %d, want 400", rec.Code)
	}
}

func TestDeleteAppointment(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"deleted", nil, http.StatusOK},
		{"not scheduled", usecase.ErrAppointmentNotDeletable, http.StatusBadRequest},
		{"not a party", usecase.ErrNotAppointmentParty, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAppointmentUsecase{del: func(id uuid.UUID) error { return tc.err }}
			h := NewAppointmentHandler(fake, validator.NewValidator())

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/x", nil)
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			rec := httptest.NewRecorder()
			h.DeleteAppointment(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestUpdateDetailsNotAssignedDoctor(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		details: func(id uuid.UUID, req *dto.UpdateAppointmentDetailsRequest) (*dto.AppointmentResponse, error) {
			if req.Diagnosis == nil || *req.Diagnosis != "flu" {
				t.Errorf("diagnosis not decoded: %+v", req)
			}
			return nil, usecase.ErrNotAssignedDoctor
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/x", strings.NewReader(`{"diagnosis":"flu"}`))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.UpdateDetails(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
