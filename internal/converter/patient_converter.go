package converter

import (
	"time"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/pkg/timeslot"
)

func patientProfileFields(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		Gender:                profile.Gender,
		Phone:                 profile.Phone,
		Street:                profile.Street,
		Area:                  profile.Area,
		City:                  profile.City,
		State:                 profile.State,
		Pincode:               profile.Pincode,
		BloodType:             profile.BloodType,
		EmergencyContactName:  profile.EmergencyContactName,
		EmergencyContactPhone: profile.EmergencyContactPhone,
		Allergies:             nonNilStrings(profile.Allergies),
		MedicalConditions:     nonNilStrings(profile.MedicalConditions),
		Insurance: dto.InsuranceResponse{
			Provider:       profile.Insurance.Provider,
			PolicyNumber:   profile.Insurance.PolicyNumber,
			CoverageType:   profile.Insurance.CoverageType,
			EffectiveDate:  formatDate(profile.Insurance.EffectiveDate),
			ExpirationDate: formatDate(profile.Insurance.ExpirationDate),
			Status:         profile.Insurance.Status,
		},
	}
	response.DateOfBirth = formatDate(profile.DateOfBirth)
	return response
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeslot.DateLayout)
}

// PatientProfileToResponse converts a PatientProfile entity + User entity to PatientResponse DTO
func PatientProfileToResponse(profile *entity.PatientProfile, user *entity.User) *dto.PatientResponse {
	if profile == nil || user == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                     user.ID,
		Email:                  user.Email,
		FullName:               user.FullName(),
		PatientProfileResponse: *patientProfileFields(profile),
		UpdatedAt:              profile.UpdatedAt,
	}
}

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:          record.ID,
		Title:       record.Title,
		Date:        record.RecordDate.Format(timeslot.DateLayout),
		Doctor:      record.DoctorName,
		Type:        record.RecordType,
		Summary:     record.Summary,
		Status:      string(record.Status),
		Attachments: make([]dto.MedicalRecordAttachmentResponse, len(record.Attachments)),
		CreatedAt:   record.CreatedAt,
	}
	for i, a := range record.Attachments {
		response.Attachments[i] = dto.MedicalRecordAttachmentResponse{
			ID:   a.ID,
			Name: a.Name,
			URL:  a.URL,
			Type: a.FileType,
		}
	}
	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to slice of MedicalRecordResponse DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
