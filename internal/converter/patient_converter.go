package converter

import (
	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/domain/entity"
	"health-connect-api/pkg/validator"
)

// PatientProfileToResponse converts a PatientProfile entity and its owning
// User to PatientResponse DTO
func PatientProfileToResponse(profile *entity.PatientProfile, user *entity.User, mediaBase string) *dto.PatientResponse {
	if profile == nil || user == nil {
		return nil
	}

	var dateOfBirth *string
	if profile.DateOfBirth != nil {
		formatted := profile.DateOfBirth.Format(validator.DateLayout)
		dateOfBirth = &formatted
	}

	return &dto.PatientResponse{
		ID:               profile.UserID,
		User:             *UserToResponse(user, mediaBase),
		MedicalHistory:   profile.MedicalHistory,
		Allergies:        profile.Allergies,
		EmergencyContact: profile.EmergencyContact,
		PhoneNumber:      profile.PhoneNumber,
		DateOfBirth:      dateOfBirth,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
}

// PatientProfilesToResponses expects each profile's User to be preloaded
func PatientProfilesToResponses(profiles []entity.PatientProfile, mediaBase string) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientProfileToResponse(&profiles[i], &profiles[i].User, mediaBase)
	}
	return responses
}
