package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/pkg/timeslot"
)

func participant(user *entity.User) dto.ParticipantResponse {
	p := dto.ParticipantResponse{
		ID:       user.ID,
		FullName: user.FullName(),
		Email:    user.Email,
	}
	if user.DoctorProfile != nil {
		p.Specialization = user.DoctorProfile.Specialization
	}
	return p
}

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Patient and Doctor fall back to bare ids when the relations are not loaded.
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                    a.ID,
		Patient:               participant(&a.Patient),
		Doctor:                participant(&a.Doctor),
		ProviderID:            a.ProviderID,
		AppointmentType:       string(a.AppointmentType),
		Status:                string(a.Status),
		ScheduledDate:         a.ScheduledDate.Format(timeslot.DateLayout),
		ScheduledTime:         a.ScheduledTime,
		DurationMinutes:       a.DurationMinutes,
		Symptoms:              a.Symptoms,
		Notes:                 a.Notes,
		FollowUpReason:        a.FollowUpReason,
		PreviousAppointmentID: a.PreviousAppointmentID,
		ConsultationFee:       a.ConsultationFee,
		PaymentStatus:         string(a.PaymentStatus),
		Diagnosis:             a.Diagnosis,
		Prescription:          a.Prescription,
		Recommendations:       a.Recommendations,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
	response.Patient.ID = a.PatientID
	response.Doctor.ID = a.DoctorID

	if a.Provider != nil {
		response.ProviderName = a.Provider.Name
	}
	if a.NextAppointmentDate != nil {
		response.NextAppointmentDate = a.NextAppointmentDate.Format(timeslot.DateLayout)
	}
	if a.Status == entity.AppointmentStatusCancelled && a.CancelledBy != nil && a.CancelledAt != nil {
		response.Cancellation = &dto.CancellationResponse{
			CancelledBy: string(*a.CancelledBy),
			CancelledAt: *a.CancelledAt,
			Reason:      a.CancellationReason,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
