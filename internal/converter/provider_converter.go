package converter

import (
	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/domain/entity"
)

// ProviderToResponse converts a Provider entity to ProviderResponse DTO, including reviews if loaded
func ProviderToResponse(p *entity.Provider) *dto.ProviderResponse {
	if p == nil {
		return nil
	}

	response := &dto.ProviderResponse{
		ID:                p.ID,
		Name:              p.Name,
		Type:              string(p.Type),
		Specialty:         p.Specialty,
		Description:       p.Description,
		Street:            p.Street,
		Area:              p.Area,
		City:              p.City,
		State:             p.State,
		Pincode:           p.Pincode,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		Phone:             p.Phone,
		Email:             p.Email,
		Website:           p.Website,
		ConsultationFee:   p.ConsultationFee,
		EmergencyServices: p.EmergencyServices,
		Verified:          p.Verified,
		Featured:          p.Featured,
		RatingAverage:     p.RatingAverage,
		RatingCount:       p.RatingCount,
		CreatedAt:         p.CreatedAt,
	}

	if len(p.Reviews) > 0 {
		response.Reviews = make([]dto.ReviewResponse, len(p.Reviews))
		for i := range p.Reviews {
			response.Reviews[i] = *ProviderReviewToResponse(&p.Reviews[i])
		}
	}

	return response
}

func ProvidersToResponses(providers []entity.Provider) []dto.ProviderResponse {
	responses := make([]dto.ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = *ProviderToResponse(&providers[i])
	}
	return responses
}

func ProviderReviewToResponse(review *entity.ProviderReview) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:           review.ID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		ReviewerID:   review.UserID,
		ReviewerName: review.User.FullName(),
		CreatedAt:    review.CreatedAt,
	}
}

func ProviderCategoriesToResponses(categories []entity.ProviderCategory) []dto.ProviderCategoryResponse {
	responses := make([]dto.ProviderCategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = dto.ProviderCategoryResponse{
			Type:          string(c.Type),
			Count:         c.Count,
			AverageRating: c.AverageRating,
		}
	}
	return responses
}

func PopularAreasToResponses(areas []entity.PopularArea) []dto.PopularAreaResponse {
	responses := make([]dto.PopularAreaResponse, len(areas))
	for i, a := range areas {
		responses[i] = dto.PopularAreaResponse{
			Area:  a.Area,
			City:  a.City,
			Count: a.Count,
		}
	}
	return responses
}
