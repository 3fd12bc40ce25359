package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
)

func doctorProfileFields(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		LicenseNumber:       profile.LicenseNumber,
		Specialization:      profile.Specialization,
		Qualifications:      profile.Qualifications,
		ExperienceYears:     profile.ExperienceYears,
		HospitalAffiliation: profile.HospitalAffiliation,
		ConsultationFee:     profile.ConsultationFee,
		Biography:           profile.Biography,
		City:                profile.City,
		Area:                profile.Area,
		RatingAverage:       profile.RatingAverage,
		RatingCount:         profile.RatingCount,
	}
}

// DoctorProfileToResponse converts a DoctorProfile entity (with User loaded) to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                    profile.UserID,
		Email:                 profile.User.Email,
		FullName:              profile.User.FullName(),
		DoctorProfileResponse: *doctorProfileFields(profile),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

// DoctorReviewToResponse converts a DoctorReview entity to ReviewResponse DTO
func DoctorReviewToResponse(review *entity.DoctorReview) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:           review.ID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		ReviewerID:   review.PatientID,
		ReviewerName: review.Patient.FullName(),
		CreatedAt:    review.CreatedAt,
	}
}
