package converter

import (
	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity and its owning
// User to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile, user *entity.User, mediaBase string) *dto.DoctorResponse {
	if profile == nil || user == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		User:            *UserToResponse(user, mediaBase),
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		ClinicName:      profile.ClinicName,
		ClinicAddress:   profile.ClinicAddress,
		PhoneNumber:     profile.PhoneNumber,
		ExperienceYears: profile.ExperienceYears,
		Bio:             profile.Bio,
		IsVerified:      profile.IsVerified,
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}
}

// DoctorProfilesToResponses expects each profile's User to be preloaded
func DoctorProfilesToResponses(profiles []entity.DoctorProfile, mediaBase string) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i], &profiles[i].User, mediaBase)
	}
	return responses
}
