package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string    `gorm:"type:varchar(50);not null;index" json:"specialization"`
	ClinicName      string    `gorm:"type:varchar(200);not null;default:''" json:"clinic_name"`
	ClinicAddress   string    `gorm:"type:text;not null;default:''" json:"clinic_address"`
	PhoneNumber     string    `gorm:"type:varchar(15);not null;default:''" json:"phone_number"`
	ExperienceYears int       `gorm:"not null;default:0" json:"experience_years"`
	Bio             string    `gorm:"type:text;not null;default:''" json:"bio"`
	IsVerified      bool      `gorm:"not null;default:false;index" json:"is_verified"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

func (d *DoctorProfile) OwnerID() uuid.UUID { return d.UserID }

func (d *DoctorProfile) Role() UserType { return UserTypeDoctor }

// Specialization values accepted for a doctor profile.
const (
	SpecializationCardiology  = "cardiology"
	SpecializationDermatology = "dermatology"
	SpecializationNeurology   = "neurology"
	SpecializationOrthopedics = "orthopedics"
	SpecializationGeneral     = "general"
)

var Specializations = []string{
	SpecializationCardiology,
	SpecializationDermatology,
	SpecializationNeurology,
	SpecializationOrthopedics,
	SpecializationGeneral,
}
