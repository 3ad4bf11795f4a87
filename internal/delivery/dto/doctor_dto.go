package dto

import (
	"time"

	"github.com/google/uuid"
)

// DoctorUpdateSelfRequest is a partial update of the caller's own profile.
// is_verified is intentionally absent.
type DoctorUpdateSelfRequest struct {
	LicenseNumber   *string `json:"license_number" mapstructure:"license_number" validate:"omitempty,notblank,max=50"`
	Specialization  *string `json:"specialization" mapstructure:"specialization" validate:"omitempty,oneof=cardiology dermatology neurology orthopedics general"`
	ClinicName      *string `json:"clinic_name" mapstructure:"clinic_name" validate:"omitempty,max=200"`
	ClinicAddress   *string `json:"clinic_address" mapstructure:"clinic_address"`
	PhoneNumber     *string `json:"phone_number" mapstructure:"phone_number" validate:"omitempty,max=15"`
	ExperienceYears *int    `json:"experience_years" mapstructure:"experience_years" validate:"omitempty,integer,gte=0"`
	Bio             *string `json:"bio" mapstructure:"bio"`
}

// DoctorResponse represents a doctor profile with its account
type DoctorResponse struct {
	ID              uuid.UUID    `json:"id"`
	User            UserResponse `json:"user"`
	LicenseNumber   string       `json:"license_number"`
	Specialization  string       `json:"specialization"`
	ClinicName      string       `json:"clinic_name"`
	ClinicAddress   string       `json:"clinic_address"`
	PhoneNumber     string       `json:"phone_number"`
	ExperienceYears int          `json:"experience_years"`
	Bio             string       `json:"bio"`
	IsVerified      bool         `json:"is_verified"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
