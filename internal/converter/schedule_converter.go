package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/pkg/timeslot"
)

// WeeklyTemplateToResponse converts a WeeklyTemplate to its DTO. Empty
// sections are emitted as [] rather than null.
func WeeklyTemplateToResponse(template *entity.WeeklyTemplate) *dto.WeeklyTemplateResponse {
	if template == nil {
		return nil
	}

	response := &dto.WeeklyTemplateResponse{
		DoctorID:     template.DoctorID,
		Availability: make([]dto.AvailabilityResponse, len(template.Availability)),
		BlockedDates: make([]dto.BlockedDateResponse, len(template.BlockedDates)),
		Vacations:    make([]dto.VacationResponse, len(template.Vacations)),
	}

	for i, a := range template.Availability {
		response.Availability[i] = dto.AvailabilityResponse{
			Day:       a.DayOfWeek,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		}
	}
	for i, b := range template.BlockedDates {
		response.BlockedDates[i] = dto.BlockedDateResponse{
			Date:   b.BlockedDate.Format(timeslot.DateLayout),
			Reason: b.Reason,
		}
	}
	for i, v := range template.Vacations {
		response.Vacations[i] = dto.VacationResponse{
			StartDate: v.StartDate.Format(timeslot.DateLayout),
			EndDate:   v.EndDate.Format(timeslot.DateLayout),
			Reason:    v.Reason,
		}
	}

	return response
}
