package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	MedicalHistory   string     `gorm:"type:text;not null;default:''" json:"medical_history"`
	Allergies        string     `gorm:"type:text;not null;default:''" json:"allergies"`
	EmergencyContact string     `gorm:"type:varchar(150);not null;default:''" json:"emergency_contact"`
	PhoneNumber      string     `gorm:"type:varchar(15);not null;default:''" json:"phone_number"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

func (p *PatientProfile) OwnerID() uuid.UUID { return p.UserID }

func (p *PatientProfile) Role() UserType { return UserTypePatient }
