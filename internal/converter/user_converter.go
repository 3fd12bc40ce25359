package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Only the profile matching the account kind is emitted, and only if loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleNameByID(user.RoleID)
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Role:      role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	switch user.Kind() {
	case entity.AccountDoctor:
		response.DoctorProfile = doctorProfileFields(user.DoctorProfile)
	case entity.AccountPatient:
		response.PatientProfile = patientProfileFields(user.PatientProfile)
	}

	return response
}
