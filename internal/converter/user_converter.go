package converter

import (
	"strings"

	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. mediaBase is the
// absolute URL prefix for stored image references, e.g.
// "https://api.example.com/media/".
func UserToResponse(user *entity.User, mediaBase string) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		ProfilePicture:    user.ProfilePicture,
		ProfilePictureURL: ProfilePictureURL(user.ProfilePicture, mediaBase),
		UserType:          user.UserType.String(),
		AddressLine1:      user.AddressLine1,
		City:              user.City,
		State:             user.State,
		Pincode:           user.Pincode,
		DateJoined:        user.DateJoined,
	}
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User, mediaBase string) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i], mediaBase)
	}
	return responses
}

// ProfilePictureURL resolves a stored image reference to an absolute URL.
// References that already carry a scheme are returned unchanged.
func ProfilePictureURL(ref *string, mediaBase string) *string {
	if ref == nil || *ref == "" {
		return nil
	}

	if strings.HasPrefix(*ref, "http://") || strings.HasPrefix(*ref, "https://") {
		url := *ref
		return &url
	}

	url := strings.TrimSuffix(mediaBase, "/") + "/" + strings.TrimPrefix(*ref, "/")
	return &url
}
