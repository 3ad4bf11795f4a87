package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
}

// RegisterRequest holds the account fields shared by both roles. It is
// decoded from the normalized signup mapping, so every field is a string.
type RegisterRequest struct {
	Username       string  `json:"username" mapstructure:"username" validate:"required,notblank,max=150"`
	Email          string  `json:"email" mapstructure:"email" validate:"required,email,max=254"`
	Password       string  `json:"password" mapstructure:"password" validate:"required,notblank"`
	FirstName      string  `json:"first_name" mapstructure:"first_name" validate:"required,notblank,max=30"`
	LastName       string  `json:"last_name" mapstructure:"last_name" validate:"required,notblank,max=30"`
	ProfilePicture *string `json:"profile_picture" mapstructure:"profile_picture" validate:"omitempty,max=255"`
	AddressLine1   string  `json:"address_line1" mapstructure:"address_line1" validate:"max=255"`
	City           string  `json:"city" mapstructure:"city" validate:"max=100"`
	State          string  `json:"state" mapstructure:"state" validate:"max=100"`
	Pincode        string  `json:"pincode" mapstructure:"pincode" validate:"max=10"`
}

// RegisterPatientRequest adds the optional medical fields of a patient.
type RegisterPatientRequest struct {
	RegisterRequest  `mapstructure:",squash"`
	PhoneNumber      string  `json:"phone_number" mapstructure:"phone_number" validate:"max=15"`
	DateOfBirth      *string `json:"date_of_birth" mapstructure:"date_of_birth" validate:"omitempty,date"` // Format: YYYY-MM-DD
	MedicalHistory   string  `json:"medical_history" mapstructure:"medical_history"`
	Allergies        string  `json:"allergies" mapstructure:"allergies"`
	EmergencyContact string  `json:"emergency_contact" mapstructure:"emergency_contact" validate:"max=150"`
}

// RegisterDoctorRequest adds the professional fields of a doctor.
type RegisterDoctorRequest struct {
	RegisterRequest `mapstructure:",squash"`
	LicenseNumber   string `json:"license_number" mapstructure:"license_number" validate:"required,max=50"`
	Specialization  string `json:"specialization" mapstructure:"specialization" validate:"required,oneof=cardiology dermatology neurology orthopedics general"`
	PhoneNumber     string `json:"phone_number" mapstructure:"phone_number" validate:"max=15"`
	ClinicName      string `json:"clinic_name" mapstructure:"clinic_name" validate:"max=200"`
	ClinicAddress   string `json:"clinic_address" mapstructure:"clinic_address"`
	ExperienceYears string `json:"experience_years" mapstructure:"experience_years" validate:"omitempty,integer,nonnegative"`
	Bio             string `json:"bio" mapstructure:"bio"`
}

// Response DTOs

type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	ProfilePicture    *string   `json:"profile_picture"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	UserType          string    `json:"user_type"`
	AddressLine1      string    `json:"address_line1"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	Pincode           string    `json:"pincode"`
	DateJoined        time.Time `json:"date_joined"`
}

type SignupResponse struct {
	Token    string       `json:"token"`
	User     UserResponse `json:"user"`
	UserType string       `json:"user_type"`

	// Profile is set for the role-specific create endpoints.
	Patient *PatientResponse `json:"-"`
	Doctor  *DoctorResponse  `json:"-"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     UserResponse `json:"user"`
	UserType string       `json:"user_type"`
	Message  string       `json:"message"`
}
