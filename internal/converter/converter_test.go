package converter

import (
	"testing"
	"time"

	"health-connect-api/internal/domain/entity"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestProfilePictureURL(t *testing.T) {
	tests := []struct {
		name string
		ref  *string
		want *string
	}{
		{"nil", nil, nil},
		{"empty", strPtr(""), nil},
		{"relative", strPtr("profile_pictures/jdoe_profile.png"), strPtr("http://api.test/media/profile_pictures/jdoe_profile.png")},
		{"leading slash", strPtr("/profile_pictures/a.png"), strPtr("http://api.test/media/profile_pictures/a.png")},
		{"absolute", strPtr("https://cdn.test/a.png"), strPtr("https://cdn.test/a.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfilePictureURL(tt.ref, "http://api.test/media/")
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("got %q, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("got %v, want %q", got, *tt.want)
			}
		})
	}
}

func TestPatientProfileToResponse(t *testing.T) {
	id := uuid.New()
	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	user := &entity.User{ID: id, Username: "jdoe", Password: "hash", UserType: entity.UserTypePatient}
	profile := &entity.PatientProfile{UserID: id, Allergies: "pollen", DateOfBirth: &dob}

	got := PatientProfileToResponse(profile, user, "/media/")

	if got.ID != id || got.User.Username != "jdoe" || got.User.UserType != "patient" {
		t.Errorf("unexpected response: %+v", got)
	}
	if got.DateOfBirth == nil || *got.DateOfBirth != "1990-05-01" {
		t.Errorf("date_of_birth = %v, want 1990-05-01", got.DateOfBirth)
	}
	if got.Allergies != "pollen" {
		t.Errorf("allergies = %q", got.Allergies)
	}
}

func TestDoctorProfilesToResponses(t *testing.T) {
	id := uuid.New()
	profiles := []entity.DoctorProfile{{
		UserID:         id,
		LicenseNumber:  "LIC-1",
		Specialization: entity.SpecializationNeurology,
		IsVerified:     true,
		User:           entity.User{ID: id, Username: "doc1", UserType: entity.UserTypeDoctor},
	}}

	got := DoctorProfilesToResponses(profiles, "/media/")

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].User.Username != "doc1" || !got[0].IsVerified || got[0].LicenseNumber != "LIC-1" {
		t.Errorf("unexpected response: %+v", got[0])
	}
}
