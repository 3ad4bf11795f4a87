package dto

import (
	"time"

	"github.com/google/uuid"
)

// PatientUpdateSelfRequest is a partial update; nil fields are left as is.
// An empty date_of_birth clears it.
type PatientUpdateSelfRequest struct {
	MedicalHistory   *string `json:"medical_history" mapstructure:"medical_history"`
	Allergies        *string `json:"allergies" mapstructure:"allergies"`
	EmergencyContact *string `json:"emergency_contact" mapstructure:"emergency_contact" validate:"omitempty,max=150"`
	PhoneNumber      *string `json:"phone_number" mapstructure:"phone_number" validate:"omitempty,max=15"`
	DateOfBirth      *string `json:"date_of_birth" mapstructure:"date_of_birth"`
}

// PatientResponse represents a patient profile with its account
type PatientResponse struct {
	ID               uuid.UUID    `json:"id"`
	User             UserResponse `json:"user"`
	MedicalHistory   string       `json:"medical_history"`
	Allergies        string       `json:"allergies"`
	EmergencyContact string       `json:"emergency_contact"`
	PhoneNumber      string       `json:"phone_number"`
	DateOfBirth      *string      `json:"date_of_birth"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
