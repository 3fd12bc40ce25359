package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/response"
	"healthcare-portal/pkg/timeslot"
	"healthcare-portal/pkg/validator"
)

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *DoctorScheduleHandler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.scheduleUsecase.GetMySchedule(r.Context())
	if err != nil {
		internalError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// ReplaceMySchedule handles replacing the caller's weekly template
// @Summary Replace weekly schedule
// @Tags Doctor Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateScheduleRequest true "Schedule Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/me/schedule [put]
func (h *DoctorScheduleHandler) ReplaceMySchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.ReplaceMySchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, entity.ErrInvalidWeekday),
			errors.Is(err, entity.ErrInvalidTimeRange),
			errors.Is(err, entity.ErrRangeOutsideHours),
			errors.Is(err, entity.ErrInvalidVacationSet),
			errors.Is(err, timeslot.ErrInvalidClock),
			errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, err.Error())
		default:
			internalError(w, err, "Failed to update schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}
